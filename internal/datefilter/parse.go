package datefilter

import (
	"encoding/json"
	"math"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
	"github.com/tartampluch/go-salon/internal/config"
)

// maxEpochMillis bounds numeric timestamps to the ±100,000,000 day range a
// JSON client can represent as a date.
const maxEpochMillis = 8.64e15

// ParseDate returns the first field of record holding a valid date.
// Fields are probed in order; absent, empty or unparsable values are skipped.
func ParseDate(record Record, fields ...string) (time.Time, bool) {
	for _, f := range fields {
		v, ok := record[f]
		if !ok {
			continue
		}
		if t, ok := ParseValue(v); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseValue converts a single date-like value to a UTC time.
// Strict construction is attempted first (time values, epoch milliseconds,
// ISO-8601 layouts), then a lenient textual parse. It never panics.
func ParseValue(v any) (time.Time, bool) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if x.IsZero() {
			return time.Time{}, false
		}
		return x.UTC(), true
	case *time.Time:
		if x == nil || x.IsZero() {
			return time.Time{}, false
		}
		return x.UTC(), true
	case string:
		return parseString(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return fromMillis(f)
	case float64:
		return fromMillis(x)
	case float32:
		return fromMillis(float64(x))
	case int:
		return fromMillis(float64(x))
	case int32:
		return fromMillis(float64(x))
	case int64:
		return fromMillis(float64(x))
	case uint:
		return fromMillis(float64(x))
	case uint32:
		return fromMillis(float64(x))
	case uint64:
		return fromMillis(float64(x))
	default:
		return time.Time{}, false
	}
}

func parseString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range config.StrictDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	if !datelikeWords(s) {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil || t.Year() < config.MinDateYear || t.Year() > config.MaxDateYear {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// datelikeWords reports whether every word of s is a month or weekday name,
// a meridiem, an ordinal suffix or a zone abbreviation.
func datelikeWords(s string) bool {
	words := strings.FieldsFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
	for _, w := range words {
		if isZoneAbbrev(w) {
			continue
		}
		if !slices.Contains(config.DateWords, strings.ToLower(w)) {
			return false
		}
	}
	return true
}

func isZoneAbbrev(w string) bool {
	if len(w) < 3 || len(w) > 4 {
		return false
	}
	return strings.ToUpper(w) == w
}

func fromMillis(ms float64) (time.Time, bool) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || math.Abs(ms) > maxEpochMillis {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)).UTC(), true
}

// candidateFields returns dateField followed by the default fallbacks,
// without duplicates. An empty dateField means "date".
func candidateFields(dateField string) []string {
	if dateField == "" {
		dateField = config.FieldDate
	}
	fields := make([]string, 0, len(config.DateCandidateFields))
	fields = append(fields, dateField)
	for _, f := range config.DateCandidateFields[1:] {
		if f != dateField {
			fields = append(fields, f)
		}
	}
	return fields
}
