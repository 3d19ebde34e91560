package ui

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/tartampluch/go-salon/internal/config"
	"github.com/tartampluch/go-salon/internal/datefilter"
	"github.com/tartampluch/go-salon/internal/viewstate"
)

var dayValue = regexp.MustCompile(config.PatternDay)

// Title returns the page heading for spec. tr may be nil, in which case the
// English fallbacks are used.
func Title(spec viewstate.FilterSpec, tr *Translator) string {
	switch spec.Kind {
	case datefilter.KindAll, "":
		return translate(tr, config.TKeyTitleAll, nil, config.FallbackTitleAll)

	case datefilter.KindDay, datefilter.KindDate:
		if dayValue.MatchString(spec.Value) {
			if _, err := time.Parse(config.LayoutISODay, spec.Value); err == nil {
				return datefilter.FormatDisplayDate(spec.Value, false)
			}
		}

	case datefilter.KindMonth:
		if t, err := time.Parse(config.LayoutISOMon, spec.Value); err == nil {
			month := MonthName(tr, t.Month())
			year := strconv.Itoa(t.Year())
			return translate(tr, config.TKeyTitleMonth,
				map[string]any{"Month": month, "Year": year},
				fmt.Sprintf(config.FallbackTitleMonth, month, year))
		}

	case datefilter.KindYear:
		if y, err := strconv.Atoi(spec.Value); err == nil {
			year := strconv.Itoa(y)
			return translate(tr, config.TKeyTitleYear,
				map[string]any{"Year": year},
				fmt.Sprintf(config.FallbackTitleYear, year))
		}
	}
	return translate(tr, config.TKeyTitleGeneric, nil, config.FallbackTitleGeneric)
}

// MonthName returns the localized name of m.
func MonthName(tr *Translator, m time.Month) string {
	return translate(tr, config.TKeyMonthPrefix+strconv.Itoa(int(m)), nil, m.String())
}

func translate(tr *Translator, key string, data map[string]any, fallback string) string {
	if msg := tr.MsgData(key, data); msg != key {
		return msg
	}
	return fallback
}
