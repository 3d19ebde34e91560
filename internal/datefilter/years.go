package datefilter

import "sort"

// AvailableYears returns the distinct calendar years found in records,
// most recent first. Records without a parsable date are ignored.
func AvailableYears(records []Record, dateField string) []int {
	fields := candidateFields(dateField)
	seen := make(map[int]struct{})
	years := make([]int, 0)

	for _, r := range records {
		t, ok := ParseDate(r, fields...)
		if !ok {
			continue
		}
		if _, dup := seen[t.Year()]; dup {
			continue
		}
		seen[t.Year()] = struct{}{}
		years = append(years, t.Year())
	}

	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
