package deadline

import (
	"strings"
	"time"

	"github.com/okian/meetmind/internal/domain/textnorm"
)

var weekdays = []struct {
	name string
	day  time.Weekday
}{
	{"monday", time.Monday},
	{"tuesday", time.Tuesday},
	{"wednesday", time.Wednesday},
	{"thursday", time.Thursday},
	{"friday", time.Friday},
	{"saturday", time.Saturday},
	{"sunday", time.Sunday},
}

// EndOfDay returns 23:59:59 on t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

func atHour(t time.Time, hour int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, t.Location())
}

// lastDayOfMonth returns end of day on the last day of the month that is
// offset months after ref's month.
func lastDayOfMonth(ref time.Time, offset int) time.Time {
	y, m, _ := ref.Date()
	return time.Date(y, m+time.Month(offset)+1, 0, 23, 59, 59, 0, ref.Location())
}

// lastDayOfQuarter returns end of day on the last day of the calendar
// quarter that is offset quarters after ref's quarter.
func lastDayOfQuarter(ref time.Time, offset int) time.Time {
	q := (int(ref.Month()) - 1) / 3
	lastMonth := (q+offset+1)*3 + 1
	return time.Date(ref.Year(), time.Month(lastMonth), 0, 23, 59, 59, 0, ref.Location())
}

func upcomingFriday(ref time.Time) time.Time {
	days := (int(time.Friday) - int(ref.Weekday()) + 7) % 7
	return EndOfDay(ref.AddDate(0, 0, days))
}

func followingMonday(ref time.Time) time.Time {
	days := (int(time.Monday) - int(ref.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return EndOfDay(ref.AddDate(0, 0, days))
}

// Relative resolves a relative time expression against ref.
func Relative(expr string, ref time.Time) (time.Time, bool) {
	e := textnorm.Normalize(expr)
	switch e {
	case "today", "tonight", "eod", "end of day", "end of the day":
		return EndOfDay(ref), true
	case "tomorrow", "tomorrow night":
		return EndOfDay(ref.AddDate(0, 0, 1)), true
	case "day after tomorrow", "the day after tomorrow":
		return EndOfDay(ref.AddDate(0, 0, 2)), true
	case "this morning":
		return atHour(ref, 12), true
	case "this afternoon":
		return atHour(ref, 17), true
	case "this evening":
		return atHour(ref, 20), true
	case "this week", "eow", "end of week", "end of the week", "end of this week":
		return upcomingFriday(ref), true
	case "next week":
		return followingMonday(ref), true
	case "this month", "eom", "end of month", "end of the month":
		return lastDayOfMonth(ref, 0), true
	case "next month":
		return lastDayOfMonth(ref, 1), true
	case "this quarter", "end of quarter", "end of the quarter":
		return lastDayOfQuarter(ref, 0), true
	case "next quarter":
		return lastDayOfQuarter(ref, 1), true
	}

	for _, wd := range weekdays {
		if !strings.Contains(e, wd.name) {
			continue
		}
		next := textnorm.ContainsWord(e, "next")
		ahead := (int(wd.day) - int(ref.Weekday()) + 7) % 7
		switch {
		case ahead == 0 && !next:
			return EndOfDay(ref), true
		case ahead == 0:
			ahead = 7
		case next:
			ahead += 7
		}
		return EndOfDay(ref.AddDate(0, 0, ahead)), true
	}
	return time.Time{}, false
}
