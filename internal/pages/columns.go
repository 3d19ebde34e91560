package pages

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tartampluch/go-salon/internal/config"
	"github.com/tartampluch/go-salon/internal/datefilter"
	"github.com/tartampluch/go-salon/internal/viewstate"
)

// Format selects how a column value is rendered.
type Format int

const (
	FormatText Format = iota
	FormatDate
	FormatDateTime
	FormatMoney
)

// Column maps a record field onto a labelled table and export column.
type Column struct {
	Label  string
	Field  string
	Format Format
}

// Value returns the typed value written to the workbook.
// Money stays numeric so spreadsheet formulas keep working.
func (c Column) Value(r datefilter.Record) any {
	switch c.Format {
	case FormatDate:
		return datefilter.FormatDisplayDate(r[c.Field], false)
	case FormatDateTime:
		return datefilter.FormatDisplayDate(r[c.Field], true)
	case FormatMoney:
		if d, ok := Money(r[c.Field]); ok {
			return d
		}
		return ""
	default:
		return r.Label(c.Field)
	}
}

// Text renders the cell as shown in the dashboard table.
func (c Column) Text(r datefilter.Record) string {
	if c.Format == FormatMoney {
		if d, ok := Money(r[c.Field]); ok {
			return d.StringFixed(config.MoneyDecimals)
		}
		return ""
	}
	return fmt.Sprint(c.Value(r))
}

// Money parses a monetary amount without going through float64.
func Money(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return x, true
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(x), true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		return d, err == nil
	default:
		return decimal.Zero, false
	}
}

// Total sums the money field across records, skipping unparsable values.
func Total(records []datefilter.Record, field string) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range records {
		if d, ok := Money(r[field]); ok {
			sum = sum.Add(d)
		}
	}
	return sum
}

// ExportRows builds one export row per record, columns in definition order.
func ExportRows(columns []Column, records []datefilter.Record) []viewstate.ExportRow {
	rows := make([]viewstate.ExportRow, 0, len(records))
	for _, r := range records {
		row := make(viewstate.ExportRow, len(columns))
		for i, c := range columns {
			row[i] = viewstate.Cell{Label: c.Label, Value: c.Value(r)}
		}
		rows = append(rows, row)
	}
	return rows
}
