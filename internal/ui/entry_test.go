package ui_test

import (
	"testing"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-salon/internal/ui"
)

func TestFilteredEntry_TypedRune(t *testing.T) {
	tests := []struct {
		name  string
		entry *ui.FilteredEntry
		input string
		want  string
	}{
		{"Numerical_Digits", ui.NewNumericalEntry(), "18090", "18090"},
		{"Numerical_RejectsDash", ui.NewNumericalEntry(), "80-80", "8080"},
		{"Numerical_RejectsLetters", ui.NewNumericalEntry(), "a1b2", "12"},
		{"Date_ISO", ui.NewDateEntry(), "2024-03-05", "2024-03-05"},
		{"Date_RejectsSlash", ui.NewDateEntry(), "05/03/2024", "05032024"},
		{"Date_RejectsSpace", ui.NewDateEntry(), "2024 03", "202403"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := test.NewWindow(tt.entry)
			defer window.Close()

			test.Type(tt.entry, tt.input)
			assert.Equal(t, tt.want, tt.entry.Text)
		})
	}
}

func TestFilteredEntry_Keyboard(t *testing.T) {
	assert.Equal(t, mobile.NumberKeyboard, ui.NewNumericalEntry().Keyboard())
	assert.Equal(t, mobile.NumberKeyboard, ui.NewDateEntry().Keyboard())
}

// SetText bypasses the rune filter; validation happens separately.
func TestFilteredEntry_DirectSetText(t *testing.T) {
	entry := ui.NewDateEntry()
	entry.SetText("abc")
	assert.Equal(t, "abc", entry.Text)
}
