// Package datefilter parses, filters and formats the dates of backend records.
//
// All calendar computations use UTC: a record dated "2024-03-05" belongs to
// March 5th regardless of the operator's local timezone, and display strings
// are rendered in UTC as well.
package datefilter

import (
	"fmt"
	"strings"

	"github.com/tartampluch/go-salon/internal/config"
)

// Record is a backend entity (booking, stylist, expense, ...) decoded from JSON.
// The core only ever looks at its date fields.
type Record map[string]any

// String returns the field rendered as text, or "" when absent.
func (r Record) String(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return fmt.Sprint(v)
}

// ID returns the record identifier, accepting both "_id" and "id".
func (r Record) ID() string {
	if id := r.String(config.FieldID); id != "" {
		return id
	}
	return r.String(config.FieldIDAlt)
}

// Label renders a field for display. Populated references such as
// {"_id": "...", "name": "Cut"} resolve to their name.
func (r Record) Label(field string) string {
	if ref, ok := r[field].(map[string]any); ok {
		return Record(ref).String(config.FieldName)
	}
	return r.String(field)
}
