package entities

import "regexp"

// Technical phrases not covered by the skill dictionary.
var techPhrases = []string{
	"login bug", "login issue", "home page", "landing page", "dashboard",
	"api response", "database migration", "null pointer", "timeout error",
	"performance issue",
}

var relativeTimePhrases = []string{
	"day after tomorrow", "this evening", "this morning", "this afternoon",
	"this week", "this month", "next week", "next month", "next quarter",
	"end of this week", "end of the week", "by eod", "by end of day",
}

var simpleTimeWords = []string{"today", "tomorrow", "tonight", "yesterday"}

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var (
	weekdayRes = func() []*regexp.Regexp {
		out := make([]*regexp.Regexp, len(weekdays))
		for i, d := range weekdays {
			out[i] = regexp.MustCompile(`\b` + d + `\b`)
		}
		return out
	}()
	simpleTimeRes = func() []*regexp.Regexp {
		out := make([]*regexp.Regexp, len(simpleTimeWords))
		for i, w := range simpleTimeWords {
			out[i] = regexp.MustCompile(`\b` + w + `\b`)
		}
		return out
	}()
	byBeforeRe = regexp.MustCompile(`\b(?:by|before)\s+(?:next\s+)?(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday|week|month)\b`)
)
