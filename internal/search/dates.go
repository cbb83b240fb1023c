package search

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateRange is an inclusive [StartMillis, EndMillis] window in epoch millis,
// computed in the local time zone. A day range spans local midnight to
// 23:59:59.999.
type DateRange struct {
	StartMillis int64 `json:"start_millis"`
	EndMillis   int64 `json:"end_millis"`
}

// Contains reports whether the timestamp falls inside the range.
func (r DateRange) Contains(millis int64) bool {
	return millis >= r.StartMillis && millis <= r.EndMillis
}

var (
	isoDateRe   = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	slashDateRe = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{2,4})\b`)

	// "may" alone is almost always the verb, so it only counts as a month
	// when followed by a day number.
	mayDayRe = regexp.MustCompile(`\bmay\s+\d{1,2}\b`)

	monthNameRe = regexp.MustCompile(
		`\b(january|february|march|april|june|july|august|september|october|november|december)\b`)
)

// monthPattern holds precompiled day/day-year patterns for one month name.
type monthPattern struct {
	name      string
	month     time.Month
	dayRe     *regexp.Regexp // "<month> <day>"
	dayYearRe *regexp.Regexp // "<month> <day>, <year>"
}

// monthNames lists lowercase month names in calendar order for deterministic
// scanning.
var monthNames = buildMonthPatterns()

func buildMonthPatterns() []monthPattern {
	names := []struct {
		name  string
		month time.Month
	}{
		{"january", time.January},
		{"february", time.February},
		{"march", time.March},
		{"april", time.April},
		{"may", time.May},
		{"june", time.June},
		{"july", time.July},
		{"august", time.August},
		{"september", time.September},
		{"october", time.October},
		{"november", time.November},
		{"december", time.December},
	}

	patterns := make([]monthPattern, len(names))
	for i, n := range names {
		patterns[i] = monthPattern{
			name:      n.name,
			month:     n.month,
			dayRe:     regexp.MustCompile(`\b` + n.name + `\s+(\d{1,2})\b`),
			dayYearRe: regexp.MustCompile(`\b` + n.name + `\s+(\d{1,2}),?\s+(\d{4})\b`),
		}
	}
	return patterns
}

// IsDateQuery reports whether the text looks like a calendar expression:
// an ISO or slash date, a month name (bare "may" excluded unless followed by
// a day number), "yesterday", or "last week"/"last month"/"last year".
func IsDateQuery(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}

	if isoDateRe.MatchString(q) || slashDateRe.MatchString(q) {
		return true
	}
	if strings.Contains(q, "yesterday") {
		return true
	}
	if strings.Contains(q, "last week") || strings.Contains(q, "last month") || strings.Contains(q, "last year") {
		return true
	}
	if monthNameRe.MatchString(q) {
		return true
	}
	return mayDayRe.MatchString(q)
}

// ParseDateRange resolves a free-text calendar expression against the current
// local time. Returns nil if no date expression is recognized; malformed or
// ambiguous input degrades to nil rather than erroring.
func ParseDateRange(query string) *DateRange {
	return ParseDateRangeAt(query, time.Now())
}

// ParseDateRangeAt is ParseDateRange with an explicit "now", resolved in
// now's location. Exposed for deterministic tests.
func ParseDateRangeAt(query string, now time.Time) *DateRange {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	loc := now.Location()

	if strings.Contains(q, "yesterday") {
		r := dayRange(now.AddDate(0, 0, -1))
		return &r
	}

	if strings.Contains(q, "last week") {
		// Monday-Sunday range of the week before the current one.
		daysSinceMonday := (int(now.Weekday()) + 6) % 7
		thisMonday := startOfDay(now).AddDate(0, 0, -daysSinceMonday)
		lastMonday := thisMonday.AddDate(0, 0, -7)
		return &DateRange{
			StartMillis: lastMonday.UnixMilli(),
			EndMillis:   thisMonday.UnixMilli() - 1,
		}
	}

	if strings.Contains(q, "last month") {
		firstOfThis := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		firstOfLast := firstOfThis.AddDate(0, -1, 0)
		return &DateRange{
			StartMillis: firstOfLast.UnixMilli(),
			EndMillis:   firstOfThis.UnixMilli() - 1,
		}
	}

	if strings.Contains(q, "last year") {
		firstOfLast := time.Date(now.Year()-1, time.January, 1, 0, 0, 0, 0, loc)
		firstOfThis := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return &DateRange{
			StartMillis: firstOfLast.UnixMilli(),
			EndMillis:   firstOfThis.UnixMilli() - 1,
		}
	}

	if m := isoDateRe.FindStringSubmatch(q); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if validDate(year, month, day) {
			r := dayRange(time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc))
			return &r
		}
		// Invalid calendar date: fall through to remaining checks.
	}

	if m := slashDateRe.FindStringSubmatch(q); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
		if validDate(year, month, day) {
			r := dayRange(time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc))
			return &r
		}
	}

	for _, mn := range monthNames {
		if !strings.Contains(q, mn.name) {
			continue
		}
		// Bare "may" is the verb, not the month; require a trailing day number.
		if mn.name == "may" && !mayDayRe.MatchString(q) {
			continue
		}

		// "<month> <day>, <year>"
		if m := mn.dayYearRe.FindStringSubmatch(q); m != nil {
			day, _ := strconv.Atoi(m[1])
			year, _ := strconv.Atoi(m[2])
			if validDate(year, int(mn.month), day) {
				r := dayRange(time.Date(year, mn.month, day, 0, 0, 0, 0, loc))
				return &r
			}
			continue
		}

		// "<month> <day>" (current year)
		if m := mn.dayRe.FindStringSubmatch(q); m != nil {
			day, _ := strconv.Atoi(m[1])
			if validDate(now.Year(), int(mn.month), day) {
				r := dayRange(time.Date(now.Year(), mn.month, day, 0, 0, 0, 0, loc))
				return &r
			}
			continue
		}

		// Bare month name: the whole month in the current year.
		if mn.name != "may" {
			first := time.Date(now.Year(), mn.month, 1, 0, 0, 0, 0, loc)
			firstOfNext := first.AddDate(0, 1, 0)
			return &DateRange{
				StartMillis: first.UnixMilli(),
				EndMillis:   firstOfNext.UnixMilli() - 1,
			}
		}
	}

	return nil
}

// DayRange returns the inclusive range covering t's local calendar day.
func DayRange(t time.Time) DateRange {
	return dayRange(t)
}

func dayRange(t time.Time) DateRange {
	start := startOfDay(t)
	end := start.AddDate(0, 0, 1)
	return DateRange{
		StartMillis: start.UnixMilli(),
		EndMillis:   end.UnixMilli() - 1,
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// validDate reports whether year/month/day form a real calendar date.
// time.Date normalizes overflow (Feb 30 becomes Mar 2), so a round-trip
// comparison catches invalid combinations.
func validDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}
	dt := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return dt.Year() == year && int(dt.Month()) == month && dt.Day() == day
}
