package ui

import (
	"errors"
	"slices"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-salon/internal/config"
	"github.com/tartampluch/go-salon/internal/datefilter"
	"github.com/tartampluch/go-salon/internal/viewstate"
)

// kindOrder is the order of the kind selector options.
var kindOrder = []datefilter.Kind{
	datefilter.KindAll,
	datefilter.KindDay,
	datefilter.KindMonth,
	datefilter.KindYear,
}

var kindKeys = map[datefilter.Kind]string{
	datefilter.KindAll:   config.TKeyFilterAll,
	datefilter.KindDay:   config.TKeyFilterDay,
	datefilter.KindMonth: config.TKeyFilterMonth,
	datefilter.KindYear:  config.TKeyFilterYear,
}

// filterToolbar renders a FilterBar: the page title, the kind selector, a
// pop-up value picker and the export button.
type filterToolbar struct {
	app *SalonApp
	bar *FilterBar

	title    *widget.Label
	kinds    *widget.Select
	exportBt *widget.Button
	popup    *pickerOverlay
	years    *widget.Select // year select of the open picker, if any

	content fyne.CanvasObject
}

func newFilterToolbar(app *SalonApp, bar *FilterBar) *filterToolbar {
	t := &filterToolbar{app: app, bar: bar}

	t.title = widget.NewLabel("")
	t.title.TextStyle = fyne.TextStyle{Bold: true}

	t.kinds = widget.NewSelect(t.kindLabels(), nil)
	t.kinds.SetSelectedIndex(slices.Index(kindOrder, bar.Kind()))
	t.kinds.OnChanged = func(string) {
		i := t.kinds.SelectedIndex()
		if i < 0 {
			return
		}
		t.bar.SelectKind(kindOrder[i])
		t.showPicker()
	}

	t.exportBt = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnExport), theme.DownloadIcon(), t.export)
	t.exportBt.Importance = widget.HighImportance

	t.content = container.NewBorder(nil, nil, t.title, container.NewHBox(t.kinds, t.exportBt))
	t.refreshTitle()
	return t
}

// onStoreChange keeps the title and year options in step with the store.
// It may be called from any goroutine.
func (t *filterToolbar) onStoreChange(c viewstate.Change) {
	switch c.Field {
	case viewstate.FieldFilter:
		fyne.Do(t.refreshTitle)
	case viewstate.FieldYears, viewstate.FieldActiveView:
		fyne.Do(t.refreshYears)
	}
}

func (t *filterToolbar) kindLabels() []string {
	labels := make([]string, len(kindOrder))
	for i, k := range kindOrder {
		labels[i] = t.app.GetMsg(kindKeys[k])
	}
	return labels
}

// Relabel applies the current language.
func (t *filterToolbar) Relabel() {
	i := t.kinds.SelectedIndex()
	onChanged := t.kinds.OnChanged
	t.kinds.OnChanged = nil
	t.kinds.Options = t.kindLabels()
	if i >= 0 {
		t.kinds.SetSelectedIndex(i)
	}
	t.kinds.OnChanged = onChanged
	t.kinds.Refresh()

	t.exportBt.SetText(t.app.GetMsg(config.TKeyBtnExport))
	t.refreshTitle()
}

func (t *filterToolbar) refreshTitle() {
	t.title.SetText(Title(t.app.Store.Filter(), t.app.Translator))
}

func (t *filterToolbar) refreshYears() {
	if t.years == nil {
		return
	}
	onChanged := t.years.OnChanged
	t.years.OnChanged = nil
	t.years.Options = t.yearOptions()
	t.years.Selected = t.bar.Year()
	t.years.OnChanged = onChanged
	t.years.Refresh()
}

// yearOptions lists the years the active page reported, keeping the chosen
// year selectable. With no dated records the current year is offered.
func (t *filterToolbar) yearOptions() []string {
	var opts []string
	for _, y := range t.app.Store.AvailableYears() {
		opts = append(opts, strconv.Itoa(y))
	}
	if y := t.bar.Year(); y != "" && !slices.Contains(opts, y) {
		opts = append(opts, y)
	}
	if len(opts) == 0 {
		opts = append(opts, strconv.Itoa(time.Now().UTC().Year()))
	}
	return opts
}

// showPicker opens the value picker of the active kind below the selector.
func (t *filterToolbar) showPicker() {
	t.hidePopup()

	var content fyne.CanvasObject
	switch t.bar.OpenPicker() {
	case datefilter.KindDay:
		content = t.dayPicker()
	case datefilter.KindMonth:
		content = t.monthPicker()
	case datefilter.KindYear:
		content = t.yearPicker()
	default:
		return
	}

	c := fyne.CurrentApp().Driver().CanvasForObject(t.kinds)
	if c == nil {
		return
	}
	pos := fyne.CurrentApp().Driver().AbsolutePositionForObject(t.kinds)
	t.popup = newPickerOverlay(content, c, pos.Add(fyne.NewPos(0, t.kinds.Size().Height)), t.Dismiss)
	t.popup.Show()
}

// Dismiss closes the picker; the published filter stays.
// Tapping outside the picker closes it the same way.
func (t *filterToolbar) Dismiss() {
	t.hidePopup()
	t.bar.Dismiss()
}

func (t *filterToolbar) hidePopup() {
	if t.popup != nil {
		t.popup.Hide()
		t.popup = nil
	}
	t.years = nil
}

func (t *filterToolbar) dayPicker() fyne.CanvasObject {
	entry := NewDateEntry()
	entry.PlaceHolder = t.app.GetMsg(config.TKeyPhDay)
	entry.SetText(t.bar.Day())
	entry.Validator = func(s string) error {
		if !dayValue.MatchString(s) {
			return errors.New(t.app.GetMsg(config.TKeyErrDayFormat))
		}
		if _, err := time.Parse(config.LayoutISODay, s); err != nil {
			return errors.New(t.app.GetMsg(config.TKeyErrDayFormat))
		}
		return nil
	}
	entry.OnChanged = func(s string) {
		if entry.Validator(s) == nil {
			t.bar.SetDay(s)
		}
	}
	entry.OnSubmitted = func(string) { t.Dismiss() }

	return container.NewVBox(widget.NewLabel(t.app.GetMsg(config.TKeyLblSelectDay)), entry)
}

func (t *filterToolbar) monthPicker() fyne.CanvasObject {
	names := make([]string, config.MonthsInYear)
	for i := range names {
		names[i] = MonthName(t.app.Translator, time.Month(i+1))
	}
	months := widget.NewSelect(names, nil)
	if m, err := strconv.Atoi(t.bar.Month()); err == nil {
		months.SetSelectedIndex(m - 1)
	}
	months.OnChanged = func(string) { t.bar.SetMonth(months.SelectedIndex() + 1) }

	t.years = t.newYearSelect()
	return container.NewVBox(
		widget.NewLabel(t.app.GetMsg(config.TKeyLblSelectMonth)),
		container.NewGridWithColumns(config.LayoutColumnsDouble, months, t.years),
	)
}

func (t *filterToolbar) yearPicker() fyne.CanvasObject {
	t.years = t.newYearSelect()
	return container.NewVBox(widget.NewLabel(t.app.GetMsg(config.TKeyLblSelectYear)), t.years)
}

func (t *filterToolbar) newYearSelect() *widget.Select {
	years := widget.NewSelect(t.yearOptions(), nil)
	if y := t.bar.Year(); y != "" {
		years.SetSelected(y)
	}
	years.OnChanged = t.bar.SetYear
	return years
}

// export runs the materializer off the UI goroutine; the outcome is
// reported by the exporter's notifier.
func (t *filterToolbar) export() {
	t.exportBt.Disable()
	go func() {
		defer fyne.Do(t.exportBt.Enable)
		_, _ = t.app.Exporter.ExportCurrentView(t.app.Ctx, "")
	}()
}
