package infer

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// boolTokens is the closed set of scalar spellings recognized as booleans,
// matched case-insensitively. trueTokens is the subset that means true.
var boolTokens = map[string]bool{
	"true": true, "false": false,
	"yes": true, "no": false,
	"on": true, "off": false,
	"y": true, "n": false,
	"t": true, "f": false,
}

// Format lists for temporal detection. Order matters: the first format that
// parses the full text wins.
var (
	dateFormats = []string{
		"2006-01-02",
		"2006/01/02",
		"2006.01.02",
	}
	timeFormats = []string{
		"15:04:05.999999999",
		"15:04:05",
	}
	timestampFormats = []string{
		"2006-01-02T15:04:05.999999999Z07:00",
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05.999999999Z07:00",
		"2006-01-02 15:04:05.999999999",
	}
)

// IsNullText reports whether raw scalar text is one of the null spellings
// (empty, ~, null).
func IsNullText(s string) bool {
	return s == "" || s == "~" || strings.EqualFold(s, "null")
}

// ParseBool interprets scalar text against the closed boolean token set.
func ParseBool(s string) (value, ok bool) {
	v, ok := boolTokens[strings.ToLower(s)]
	return v, ok
}

// ParseInteger parses scalar text as a base-10 integer and reports the
// smallest bit width that holds the value.
func ParseInteger(s string) (value int64, width int, ok bool) {
	if strings.ContainsRune(s, '_') {
		return 0, 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return v, integerWidth(v), true
}

func integerWidth(v int64) int {
	switch {
	case v >= math.MinInt8 && v <= math.MaxInt8:
		return 8
	case v >= math.MinInt16 && v <= math.MaxInt16:
		return 16
	case v >= math.MinInt32 && v <= math.MaxInt32:
		return 32
	default:
		return 64
	}
}

// ParseDouble parses scalar text as a floating-point literal, including the
// inf, -inf and nan spellings.
func ParseDouble(s string) (float64, bool) {
	if strings.ContainsAny(s, "_xX") {
		// Keep detection to plain base-10 literals; strconv would also
		// accept hex floats and digit separators.
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseDate parses scalar text against the date format list.
func ParseDate(s string) (time.Time, bool) {
	return parseAny(s, dateFormats)
}

// ParseTime parses scalar text against the time-of-day format list.
func ParseTime(s string) (time.Time, bool) {
	return parseAny(s, timeFormats)
}

// ParseTimestamp parses scalar text against the timestamp format list.
func ParseTimestamp(s string) (time.Time, bool) {
	return parseAny(s, timestampFormats)
}

func parseAny(s string, formats []string) (time.Time, bool) {
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DetectScalar infers a type from raw scalar text. Candidates are tried in
// fixed priority order: null, boolean, integer, double, date, time,
// timestamp, and finally string as the catch-all.
func DetectScalar(s string) Type {
	if IsNullText(s) {
		return Null
	}
	if _, ok := ParseBool(s); ok {
		return Boolean
	}
	if _, width, ok := ParseInteger(s); ok {
		return Integer(width)
	}
	if _, ok := ParseDouble(s); ok {
		return Double
	}
	if _, ok := ParseDate(s); ok {
		return Date
	}
	if _, ok := ParseTime(s); ok {
		return Time
	}
	if _, ok := ParseTimestamp(s); ok {
		return Timestamp
	}
	return String
}
