package datefilter

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-salon/internal/config"
)

// FormatDisplayDate renders value as DD/MM/YYYY, or DD/MM/YYYY HH:MM when
// includeTime is set. Absent values (nil, "", false) render as "".
// Values that cannot be parsed are returned as their text form; 0 is the
// Unix epoch, not an absent value.
func FormatDisplayDate(value any, includeTime bool) string {
	if absent(value) {
		return ""
	}
	t, ok := ParseValue(value)
	if !ok {
		return fmt.Sprint(value)
	}
	if includeTime {
		return t.UTC().Format(config.LayoutDispTS)
	}
	return t.UTC().Format(config.LayoutDisplay)
}

func absent(value any) bool {
	switch x := value.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case time.Time:
		return x.IsZero()
	case *time.Time:
		return x == nil
	default:
		return false
	}
}
