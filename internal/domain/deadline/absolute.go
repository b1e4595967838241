package deadline

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var months = []string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

var (
	numericDateRe  = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})$`)
	trailingYearRe = regexp.MustCompile(`[\s,]+(\d{4}|\d{2})$`)
	digitRe        = regexp.MustCompile(`\d`)
)

func newParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

func validDate(y, m, d int, loc *time.Location) (time.Time, bool) {
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 23, 59, 59, 0, loc)
	if t.Day() != d || int(t.Month()) != m {
		return time.Time{}, false
	}
	return t, true
}

func fullYear(y int) int {
	switch {
	case y >= 100:
		return y
	case y < 50:
		return y + 2000
	default:
		return y + 1900
	}
}

// parseNumeric handles MM/DD/YYYY first and DD/MM/YYYY second.
func parseNumeric(s string, loc *time.Location) (time.Time, bool) {
	m := numericDateRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	year = fullYear(year)
	if t, ok := validDate(year, a, b, loc); ok {
		return t, true
	}
	return validDate(year, b, a, loc)
}

// splitYear cuts a trailing year off a written date. A two digit tail
// only counts when a day number precedes it.
func splitYear(s string) (string, int, bool) {
	m := trailingYearRe.FindStringSubmatchIndex(s)
	if m == nil {
		return s, 0, false
	}
	rest := s[:m[0]]
	tok := s[m[2]:m[3]]
	if len(tok) == 2 && !digitRe.MatchString(rest) {
		return s, 0, false
	}
	y, _ := strconv.Atoi(tok)
	return rest, fullYear(y), true
}

func monthIn(s string) time.Month {
	for _, w := range strings.Fields(strings.ToLower(s)) {
		for i, name := range months {
			if strings.HasPrefix(w, name) {
				return time.Month(i + 1)
			}
		}
	}
	return 0
}

// parseWritten resolves "5 march 2027", "march 5th, 2027" and friends.
// The month and day come from the natural language parser; the year is
// taken from the trailing token or the reference.
func (r *Resolver) parseWritten(s string) (time.Time, bool) {
	loc := r.ref.Location()
	rest, year, hasYear := splitYear(s)
	if !hasYear {
		year = r.ref.In(loc).Year()
	}
	base := time.Date(year, time.January, 1, 12, 0, 0, 0, loc)
	res, err := r.parser.Parse(strings.TrimRight(rest, " ,"), base)
	if err != nil || res == nil {
		return time.Time{}, false
	}
	month := monthIn(res.Text)
	if month == 0 || len(strings.Fields(res.Text)) < 2 {
		return time.Time{}, false
	}
	got := res.Time.In(loc)
	if got.Month() != month || got.Year() != year {
		return time.Time{}, false
	}
	return validDate(year, int(month), got.Day(), loc)
}

// Absolute parses a numeric or textual calendar date. The result is
// promoted to end of day.
func (r *Resolver) Absolute(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if numericDateRe.MatchString(s) {
		return parseNumeric(s, r.ref.Location())
	}
	return r.parseWritten(s)
}
