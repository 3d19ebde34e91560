package datefilter

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/go-salon/internal/config"
)

// Kind selects how records are restricted by date.
type Kind string

const (
	KindAll   Kind = config.FilterAll
	KindDay   Kind = config.FilterDay
	KindDate  Kind = config.FilterDate
	KindMonth Kind = config.FilterMonth
	KindYear  Kind = config.FilterYear
)

// NeedsValue reports whether the kind restricts records only once a value is supplied.
func (k Kind) NeedsValue() bool {
	switch k {
	case KindDay, KindDate, KindMonth, KindYear:
		return true
	default:
		return false
	}
}

var (
	monthPattern = regexp.MustCompile(config.PatternMonth)
	dayPattern   = regexp.MustCompile(config.PatternDay)
)

// FilterByDate returns the records whose date matches kind and value.
//
// Bad input never hides data: an unknown kind, a missing or malformed value,
// or a record set in which no record carries a parsable date all return
// records unchanged. Surviving records keep their relative order.
func FilterByDate(records []Record, dateField string, kind Kind, value string) []Record {
	if len(records) == 0 || kind == KindAll {
		return records
	}

	fields := candidateFields(dateField)
	if !anyDated(records, fields) {
		return records
	}

	match, ok := predicate(kind, strings.TrimSpace(value))
	if !ok {
		return records
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		t, ok := ParseDate(r, fields...)
		if ok && match(t) {
			out = append(out, r)
		}
	}
	return out
}

// predicate compiles kind and value into a date matcher.
// The boolean is false when the pair cannot filter anything.
func predicate(kind Kind, value string) (func(time.Time) bool, bool) {
	switch kind {
	case KindYear:
		year, err := strconv.Atoi(value)
		if err != nil {
			return nil, false
		}
		return func(t time.Time) bool { return t.Year() == year }, true

	case KindMonth:
		if !monthPattern.MatchString(value) {
			return nil, false
		}
		year, _ := strconv.Atoi(value[:4])
		month, _ := strconv.Atoi(value[5:7])
		return func(t time.Time) bool {
			return t.Year() == year && int(t.Month()) == month
		}, true

	case KindDay, KindDate:
		if !dayPattern.MatchString(value) {
			return nil, false
		}
		return func(t time.Time) bool {
			return t.UTC().Format(config.LayoutISODay) == value
		}, true

	default:
		return nil, false
	}
}

func anyDated(records []Record, fields []string) bool {
	for _, r := range records {
		if _, ok := ParseDate(r, fields...); ok {
			return true
		}
	}
	return false
}
