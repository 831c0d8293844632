// file: internals/helpers/dates/award_date.go
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Patterns accepted for human-entered award dates. Two-group patterns
// resolve to the first day of the month.
var awardDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`),
	regexp.MustCompile(`^(\d{4})/(\d{1,2})/(\d{1,2})$`),
	regexp.MustCompile(`^(\d{4})年(\d{1,2})月(\d{1,2})日$`),
	regexp.MustCompile(`^(\d{4})年(\d{1,2})月$`),
	regexp.MustCompile(`^(\d{4})-(\d{1,2})$`),
}

// ParseAwardDate parses an award date string into a calendar date.
// Empty or unparseable input yields nil, never an error.
func ParseAwardDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, re := range awardDatePatterns {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day := 1
		if len(m) == 4 {
			day, _ = strconv.Atoi(m[3])
		}
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return nil
		}
		d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		return &d
	}

	// last resort: leading YYYY-MM-DD of a longer string
	if len(s) >= 10 {
		if d, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return &d
		}
	}
	return nil
}

// FormatAwardDate renders a calendar date back to YYYY-MM-DD, empty when nil.
func FormatAwardDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
