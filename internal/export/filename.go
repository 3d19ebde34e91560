package export

import (
	"strings"

	"github.com/tartampluch/go-salon/internal/config"
	"github.com/tartampluch/go-salon/internal/viewstate"
)

// PageName returns the display name of a route, or the default report name.
func PageName(view string) string {
	if name, ok := config.PageNames[view]; ok {
		return name
	}
	return config.DefaultPageName
}

// FileName derives the workbook name for an export.
//
// An explicit name wins and only gets the .xlsx extension appended when
// missing. Otherwise the name is the page name, followed by the filter kind
// and value when a filter is applied: "Expenses_month_2024-01.xlsx".
func FileName(explicit, view string, filter viewstate.FilterSpec) string {
	if name := strings.TrimSpace(explicit); name != "" {
		if !strings.HasSuffix(strings.ToLower(name), config.ExportExt) {
			name += config.ExportExt
		}
		return sanitize(name)
	}

	parts := []string{PageName(view)}
	if filter.Complete() {
		parts = append(parts, string(filter.Kind), filter.Value)
	}
	name := strings.Join(parts, config.FileNameSeparator)
	return sanitize(strings.ReplaceAll(name, " ", config.FileNameSeparator)) + config.ExportExt
}

var unsafeName = strings.NewReplacer("/", "-", `\`, "-", ":", "-")

func sanitize(name string) string {
	return unsafeName.Replace(name)
}
