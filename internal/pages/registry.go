// Package pages defines the dashboard pages and the controller that keeps
// each page's rows, years and bookings registered in the shared store.
package pages

import (
	"github.com/tartampluch/go-salon/internal/config"
	"github.com/tartampluch/go-salon/internal/datefilter"
	"github.com/tartampluch/go-salon/internal/export"
)

// Definition describes one dashboard page.
type Definition struct {
	Route     string
	Resource  string // backend collection; empty for derived pages
	DateField string
	Columns   []Column

	// TotalField names a money field summed under the table.
	TotalField string

	// PublishesBookings marks the page whose records become the shared bookings.
	PublishesBookings bool

	// Derive builds the page from the shared bookings instead of fetching.
	Derive func(bookings []datefilter.Record) []datefilter.Record
}

// Name is the display name used in export file names.
func (d Definition) Name() string {
	return export.PageName(d.Route)
}

var bookingColumns = []Column{
	{Label: config.ColDate, Field: config.FieldDate, Format: FormatDate},
	{Label: config.ColTime, Field: config.FieldTime},
	{Label: config.ColCustomer, Field: config.FieldCustomer},
	{Label: config.ColService, Field: config.FieldService},
	{Label: config.ColStylist, Field: config.FieldStylist},
	{Label: config.ColPrice, Field: config.FieldPrice, Format: FormatMoney},
	{Label: config.ColStatus, Field: config.FieldStatus},
}

// Registry lists every page in navigation order.
var Registry = []Definition{
	{
		Route:      config.RouteDashboard,
		DateField:  config.FieldDate,
		Columns:    bookingColumns,
		TotalField: config.FieldPrice,
		Derive:     func(b []datefilter.Record) []datefilter.Record { return b },
	},
	{
		Route:             config.RouteBookings,
		Resource:          config.ResourceBookings,
		DateField:         config.FieldDate,
		Columns:           bookingColumns,
		TotalField:        config.FieldPrice,
		PublishesBookings: true,
	},
	{
		Route:     config.RouteStylists,
		Resource:  config.ResourceStylists,
		DateField: config.FieldCreatedAt,
		Columns: []Column{
			{Label: config.ColName, Field: config.FieldName},
			{Label: config.ColSpecialty, Field: config.FieldSpecialty},
			{Label: config.ColPhone, Field: config.FieldPhone},
			{Label: config.ColEmail, Field: config.FieldEmail},
			{Label: config.ColAdded, Field: config.FieldCreatedAt, Format: FormatDate},
		},
	},
	{
		Route:     config.RouteServices,
		Resource:  config.ResourceServices,
		DateField: config.FieldCreatedAt,
		Columns: []Column{
			{Label: config.ColName, Field: config.FieldName},
			{Label: config.ColCategory, Field: config.FieldCategory},
			{Label: config.ColDuration, Field: config.FieldDuration},
			{Label: config.ColPrice, Field: config.FieldPrice, Format: FormatMoney},
		},
	},
	{
		Route:     config.RouteInventory,
		Resource:  config.ResourceInventory,
		DateField: config.FieldDateAdded,
		Columns: []Column{
			{Label: config.ColName, Field: config.FieldName},
			{Label: config.ColCategory, Field: config.FieldCategory},
			{Label: config.ColQuantity, Field: config.FieldQuantity},
			{Label: config.ColPrice, Field: config.FieldPrice, Format: FormatMoney},
			{Label: config.ColAdded, Field: config.FieldDateAdded, Format: FormatDate},
		},
	},
	{
		Route:     config.RouteExpenses,
		Resource:  config.ResourceExpenses,
		DateField: config.FieldDate,
		Columns: []Column{
			{Label: config.ColDate, Field: config.FieldDate, Format: FormatDate},
			{Label: config.ColCategory, Field: config.FieldCategory},
			{Label: config.ColDescription, Field: config.FieldNote},
			{Label: config.ColAmount, Field: config.FieldAmount, Format: FormatMoney},
		},
		TotalField: config.FieldAmount,
	},
	{
		Route:     config.RoutePendingPayments,
		DateField: config.FieldDate,
		Columns: []Column{
			{Label: config.ColDate, Field: config.FieldDate, Format: FormatDate},
			{Label: config.ColCustomer, Field: config.FieldCustomer},
			{Label: config.ColService, Field: config.FieldService},
			{Label: config.ColPrice, Field: config.FieldPrice, Format: FormatMoney},
			{Label: config.ColPaid, Field: config.FieldPaid, Format: FormatMoney},
			{Label: config.ColBalance, Field: config.FieldBalance, Format: FormatMoney},
		},
		TotalField: config.FieldBalance,
		Derive:     PendingPayments,
	},
}

// Lookup returns the page registered for route.
func Lookup(route string) (Definition, bool) {
	for _, d := range Registry {
		if d.Route == route {
			return d, true
		}
	}
	return Definition{}, false
}

// PendingPayments keeps bookings whose amount paid is below the price and
// adds the outstanding balance. Input records are not modified.
func PendingPayments(bookings []datefilter.Record) []datefilter.Record {
	out := make([]datefilter.Record, 0)
	for _, b := range bookings {
		price, ok := Money(b[config.FieldPrice])
		if !ok {
			continue
		}
		paid, _ := Money(b[config.FieldPaid])
		balance := price.Sub(paid)
		if !balance.IsPositive() {
			continue
		}
		r := make(datefilter.Record, len(b)+1)
		for k, v := range b {
			r[k] = v
		}
		r[config.FieldBalance] = balance
		out = append(out, r)
	}
	return out
}
