package ui

import (
	"fmt"
	"strings"

	"github.com/tartampluch/go-salon/internal/config"
	"github.com/tartampluch/go-salon/internal/datefilter"
	"github.com/tartampluch/go-salon/internal/viewstate"
)

// FilterBar is the state behind the filter toolbar: the active kind, the
// picker currently open and the last value chosen for each kind.
//
// Values are kept per kind, so switching from month to year and back
// restores the month previously chosen. Whenever the active kind holds a
// complete value the filter is published to the store; there is no apply step.
// FilterBar is driven from the UI goroutine and is not safe for concurrent use.
type FilterBar struct {
	store *viewstate.Store

	kind  datefilter.Kind
	open  datefilter.Kind
	day   string
	month string // "01".."12"
	year  string
}

// NewFilterBar creates a bar reflecting the store's current filter.
func NewFilterBar(store *viewstate.Store) *FilterBar {
	b := &FilterBar{store: store, kind: datefilter.KindAll}

	spec := store.Filter()
	switch spec.Kind {
	case datefilter.KindDay, datefilter.KindDate:
		b.kind, b.day = datefilter.KindDay, spec.Value
	case datefilter.KindMonth:
		b.kind = datefilter.KindMonth
		if y, m, ok := strings.Cut(spec.Value, "-"); ok {
			b.year, b.month = y, m
		}
	case datefilter.KindYear:
		b.kind, b.year = datefilter.KindYear, spec.Value
	}
	return b
}

// Kind returns the active kind.
func (b *FilterBar) Kind() datefilter.Kind { return b.kind }

// OpenPicker returns the kind whose value picker is open, or "" when closed.
func (b *FilterBar) OpenPicker() datefilter.Kind { return b.open }

func (b *FilterBar) Day() string   { return b.day }
func (b *FilterBar) Month() string { return b.month }
func (b *FilterBar) Year() string  { return b.year }

// SelectKind makes kind active. "all" publishes immediately and closes any
// picker; other kinds open their picker and publish when a value is already known.
func (b *FilterBar) SelectKind(kind datefilter.Kind) {
	if kind == datefilter.KindDate {
		kind = datefilter.KindDay
	}
	if !kind.NeedsValue() {
		kind = datefilter.KindAll
	}
	b.kind = kind
	b.open = ""
	if kind != datefilter.KindAll {
		b.open = kind
	}
	b.commit()
}

// SetDay records the chosen day (YYYY-MM-DD).
func (b *FilterBar) SetDay(day string) {
	b.day = strings.TrimSpace(day)
	if b.kind == datefilter.KindDay {
		b.commit()
	}
}

// SetMonth records the chosen month, 1 to 12.
func (b *FilterBar) SetMonth(month int) {
	if month < 1 || month > config.MonthsInYear {
		b.month = ""
	} else {
		b.month = fmt.Sprintf("%02d", month)
	}
	if b.kind == datefilter.KindMonth {
		b.commit()
	}
}

// SetYear records the chosen year. The month filter uses it too.
func (b *FilterBar) SetYear(year string) {
	b.year = strings.TrimSpace(year)
	if b.kind == datefilter.KindYear || b.kind == datefilter.KindMonth {
		b.commit()
	}
}

// Dismiss closes the open picker. The published filter is left as is.
func (b *FilterBar) Dismiss() {
	b.open = ""
}

// Pending returns the filter the active kind and its chosen values describe.
// Value is empty while the kind still lacks a complete value.
func (b *FilterBar) Pending() viewstate.FilterSpec {
	spec := viewstate.FilterSpec{Kind: b.kind}
	switch b.kind {
	case datefilter.KindDay:
		spec.Value = b.day
	case datefilter.KindMonth:
		if b.month != "" && b.year != "" {
			spec.Value = b.year + "-" + b.month
		}
	case datefilter.KindYear:
		spec.Value = b.year
	}
	return spec
}

func (b *FilterBar) commit() {
	spec := b.Pending()
	if spec.Kind != datefilter.KindAll && spec.Value == "" {
		return
	}
	b.store.SetFilter(spec)
}
