// Package viewstate holds the state shared by every mounted dashboard page:
// the active date filter, the export rows and available years each page
// registered, and the booking list other pages derive from.
package viewstate

import (
	"github.com/tartampluch/go-salon/internal/config"
	"github.com/tartampluch/go-salon/internal/datefilter"
)

// FilterSpec is the date filter currently applied to every page.
// An empty Value means no value has been chosen yet.
type FilterSpec struct {
	Kind  datefilter.Kind
	Value string
}

// AllTime is the filter a fresh store starts with.
var AllTime = FilterSpec{Kind: datefilter.KindAll}

// Complete reports whether the filter restricts records.
func (f FilterSpec) Complete() bool {
	return f.Kind != datefilter.KindAll && f.Kind != "" && f.Value != ""
}

// Apply filters records with this spec.
func (f FilterSpec) Apply(records []datefilter.Record, dateField string) []datefilter.Record {
	kind := f.Kind
	if kind == "" {
		kind = datefilter.KindAll
	}
	return datefilter.FilterByDate(records, dateField, kind, f.Value)
}

// Cell is one labelled value of an export row.
type Cell struct {
	Label string
	Value any
}

// ExportRow is an ordered list of cells; cell order is column order.
type ExportRow []Cell

// Labels returns the column labels of the row, in order.
func (r ExportRow) Labels() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.Label
	}
	return out
}

// Get returns the value stored under label.
func (r ExportRow) Get(label string) (any, bool) {
	for _, c := range r {
		if c.Label == label {
			return c.Value, true
		}
	}
	return nil, false
}

// Field identifies which slot of the store changed.
type Field string

const (
	FieldExportRows Field = "export_rows"
	FieldYears      Field = "available_years"
	FieldFilter     Field = "filter"
	FieldBookings   Field = "shared_bookings"
	FieldActiveView Field = "active_view"
)

// Change is delivered to subscribers after every write.
// View is empty for the global slots (filter, bookings).
type Change struct {
	Field Field
	View  string
}

// DefaultView is the view id used before any page is activated.
const DefaultView = config.DefaultRoute
