package ui

import (
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// FilteredEntry is an Entry that only accepts the runes Allow lets through.
// Pasted text bypasses the filter; attach a Validator for that case.
type FilteredEntry struct {
	widget.Entry
	Allow func(r rune) bool
}

func newFilteredEntry(allow func(rune) bool) *FilteredEntry {
	entry := &FilteredEntry{Allow: allow}
	entry.ExtendBaseWidget(entry)
	return entry
}

// NewNumericalEntry accepts digits only. Used for the server port.
func NewNumericalEntry() *FilteredEntry {
	return newFilteredEntry(isDigit)
}

// NewDateEntry accepts digits and dashes, enough to type YYYY-MM-DD.
func NewDateEntry() *FilteredEntry {
	return newFilteredEntry(func(r rune) bool { return isDigit(r) || r == '-' })
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// TypedRune drops runes rejected by Allow.
func (e *FilteredEntry) TypedRune(r rune) {
	if e.Allow == nil || e.Allow(r) {
		e.Entry.TypedRune(r)
	}
}

// Keyboard shows the numeric keypad on mobile devices.
func (e *FilteredEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}
