package timestamp

import (
	"regexp"
	"strconv"
	"time"
)

// pattern pairs a syntactic matcher with a parser. The parser may reject
// a syntactic match on semantic grounds (month 13, day 32), in which case
// resolution falls through to the next pattern rather than failing.
type pattern struct {
	re    *regexp.Regexp
	parse func(groups []string) (time.Time, bool)
}

// Patterns are ordered by priority. The unix-tagged runs are tried
// longest-first so that a 16-digit value is never misread as a 13- or
// 10-digit one, and before the untagged date patterns so that an epoch
// run is never misread as a calendar date.
var patterns = []pattern{
	{regexp.MustCompile(`unix[_-]?(\d{16})`), parseEpoch16},
	{regexp.MustCompile(`unix[_-]?(\d{13})`), parseEpochMillis},
	{regexp.MustCompile(`unix[_-]?(\d{10})`), parseEpochSeconds},
	{regexp.MustCompile(`(\d{4})[-_]?(\d{2})[-_]?(\d{2})[-_]?(\d{2})[-_]?(\d{2})[-_]?(\d{2})`), parseDateTime},
	{regexp.MustCompile(`(\d{4})[-_]?(\d{2})[-_]?(\d{2})`), parseDate},
}

// Resolve extracts a timestamp from a file name. It is a pure function of
// the name string; no I/O is performed. The boolean reports whether any
// pattern matched and parsed to a valid instant.
func Resolve(filename string) (time.Time, bool) {
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(filename)
		if m == nil {
			continue
		}
		if t, ok := p.parse(m[1:]); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseEpoch16 handles 16-digit runs where only the leading 10 digits are
// significant (trailing digits are a sub-second sequence counter).
func parseEpoch16(groups []string) (time.Time, bool) {
	sec, err := strconv.ParseInt(groups[0][:10], 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(sec, 0), true
}

func parseEpochMillis(groups []string) (time.Time, bool) {
	ms, err := strconv.ParseInt(groups[0], 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

func parseEpochSeconds(groups []string) (time.Time, bool) {
	sec, err := strconv.ParseInt(groups[0], 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(sec, 0), true
}

func parseDateTime(groups []string) (time.Time, bool) {
	return calendarTime(groups[0], groups[1], groups[2], groups[3], groups[4], groups[5])
}

func parseDate(groups []string) (time.Time, bool) {
	return calendarTime(groups[0], groups[1], groups[2], "00", "00", "00")
}

// calendarTime builds a local-time instant from fixed-width digit fields,
// rejecting any field outside its valid calendar range. time.Date would
// silently normalize month 13 into January of the next year, so validity
// is checked by comparing the constructed time against the inputs.
func calendarTime(yearS, monthS, dayS, hourS, minS, secS string) (time.Time, bool) {
	year := mustAtoi(yearS)
	month := mustAtoi(monthS)
	day := mustAtoi(dayS)
	hour := mustAtoi(hourS)
	min := mustAtoi(minS)
	sec := mustAtoi(secS)

	t := time.Date(year, time.Month(month), day, hour, min, sec, 0, time.Local)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day ||
		t.Hour() != hour || t.Minute() != min || t.Second() != sec {
		return time.Time{}, false
	}
	return t, true
}

// mustAtoi parses a digit-only string captured by one of the patterns.
// The regexps guarantee the input is all ASCII digits.
func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
