package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tartampluch/go-salon/internal/config"
	"github.com/tartampluch/go-salon/internal/viewstate"
	"github.com/xuri/excelize/v2"
)

// BuildWorkbook serializes rows into a single-sheet workbook.
// The first row's labels become the header; every row is then laid out in
// header order, leaving cells blank for labels a row does not carry.
func BuildWorkbook(rows []viewstate.ExportRow) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(config.ExportDefaultSheet, config.ExportSheetName); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrWorkbookBuild, err)
	}

	headers := rows[0].Labels()
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := setRow(f, 1, header); err != nil {
		return nil, err
	}

	// An unstyled header is still a usable workbook.
	if err := styleHeader(f); err != nil {
		slog.Debug(config.ErrWorkbookStyle,
			config.LogKeyComponent, config.CompExport,
			config.LogKeyError, err,
		)
	}

	for i, r := range rows {
		values := make([]any, len(headers))
		for j, h := range headers {
			v, _ := r.Get(h)
			values[j] = cellValue(v)
		}
		if err := setRow(f, i+2, values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrWorkbookBuild, err)
	}
	return buf.Bytes(), nil
}

// styleHeader makes the first row of the report sheet bold.
func styleHeader(f *excelize.File) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrWorkbookStyle, err)
	}
	if err := f.SetRowStyle(config.ExportSheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("%s: %w", config.ErrWorkbookStyle, err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrWorkbookBuild, err)
	}
	if err := f.SetSheetRow(config.ExportSheetName, cell, &values); err != nil {
		return fmt.Errorf("%s: %w", config.ErrWorkbookBuild, err)
	}
	return nil
}

// cellValue maps record values onto types excelize writes natively.
func cellValue(v any) any {
	switch x := v.(type) {
	case nil:
		return ""
	case decimal.Decimal:
		return x.InexactFloat64()
	case time.Time:
		return x.UTC()
	case string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return x
	default:
		return fmt.Sprint(x)
	}
}
