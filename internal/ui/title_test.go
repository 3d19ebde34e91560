package ui_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-salon/internal/datefilter"
	"github.com/tartampluch/go-salon/internal/ui"
	"github.com/tartampluch/go-salon/internal/viewstate"
)

func TestTitle(t *testing.T) {
	en := ui.NewTranslator("en")
	fr := ui.NewTranslator("fr")

	tests := []struct {
		name   string
		spec   viewstate.FilterSpec
		tr     *ui.Translator
		expect string
	}{
		{"All", viewstate.AllTime, en, "All Time Overview"},
		{"EmptyKind", viewstate.FilterSpec{}, en, "All Time Overview"},
		{"Day", viewstate.FilterSpec{Kind: datefilter.KindDay, Value: "2024-03-05"}, en, "05/03/2024"},
		{"DateAlias", viewstate.FilterSpec{Kind: datefilter.KindDate, Value: "2024-03-05"}, en, "05/03/2024"},
		{"Month", viewstate.FilterSpec{Kind: datefilter.KindMonth, Value: "2024-01"}, en, "January 2024"},
		{"Year", viewstate.FilterSpec{Kind: datefilter.KindYear, Value: "2024"}, en, "2024 Overview"},
		{"MonthFrench", viewstate.FilterSpec{Kind: datefilter.KindMonth, Value: "2024-08"}, fr, "août 2024"},
		{"YearFrench", viewstate.FilterSpec{Kind: datefilter.KindYear, Value: "2024"}, fr, "Bilan 2024"},
		{"DayMissing", viewstate.FilterSpec{Kind: datefilter.KindDay}, en, "Overview"},
		{"DayMalformed", viewstate.FilterSpec{Kind: datefilter.KindDay, Value: "2024-13-45"}, en, "Overview"},
		{"MonthMalformed", viewstate.FilterSpec{Kind: datefilter.KindMonth, Value: "2024"}, en, "Overview"},
		{"YearMalformed", viewstate.FilterSpec{Kind: datefilter.KindYear, Value: "twenty"}, en, "Overview"},
		{"UnknownKind", viewstate.FilterSpec{Kind: "week", Value: "12"}, en, "Overview"},
		{"NoTranslatorMonth", viewstate.FilterSpec{Kind: datefilter.KindMonth, Value: "2024-02"}, nil, "February 2024"},
		{"NoTranslatorAll", viewstate.AllTime, nil, "All Time Overview"},
		{"NoTranslatorYear", viewstate.FilterSpec{Kind: datefilter.KindYear, Value: "2024"}, nil, "2024 Overview"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, ui.Title(tt.spec, tt.tr))
		})
	}
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "December", ui.MonthName(ui.NewTranslator("en"), time.December))
	assert.Equal(t, "décembre", ui.MonthName(ui.NewTranslator("fr"), time.December))
	assert.Equal(t, "March", ui.MonthName(nil, time.March))
}
