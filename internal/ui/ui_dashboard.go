package ui

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-salon/internal/config"
	"github.com/tartampluch/go-salon/internal/export"
	"github.com/tartampluch/go-salon/internal/pages"
)

// buildMainWindow assembles the navigation list, the filter toolbar and the
// records table.
func (app *SalonApp) buildMainWindow() fyne.Window {
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	w.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))

	content := app.buildDashboard()
	unsubscribe := app.Store.Subscribe(app.toolbar.onStoreChange)

	w.SetContent(content)
	w.SetOnClosed(unsubscribe)
	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			app.toolbar.Dismiss()
		}
	})
	return w
}

// buildDashboard creates the dashboard widgets and returns the root object.
func (app *SalonApp) buildDashboard() fyne.CanvasObject {
	app.filters = NewFilterBar(app.Store)
	app.toolbar = newFilterToolbar(app, app.filters)

	app.nav = widget.NewList(
		func() int { return len(pages.Registry) },
		func() fyne.CanvasObject { return widget.NewLabel(config.TablePlaceholder) },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(app.pageLabel(pages.Registry[id]))
		},
	)
	app.nav.OnSelected = func(id widget.ListItemID) {
		if route := pages.Registry[id].Route; route != app.Store.ActiveView() {
			app.ShowPage(route)
		}
	}

	app.table = widget.NewTable(
		func() (int, int) { return len(app.rows), len(app.columns) },
		func() fyne.CanvasObject { return widget.NewLabel(config.TablePlaceholder) },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row >= len(app.rows) || id.Col >= len(app.columns) {
				return
			}
			r := app.rows[id.Row]
			label.TextStyle.Bold = app.selected[r.ID()]
			label.SetText(app.columns[id.Col].Text(r))
		},
	)
	app.table.ShowHeaderRow = true
	app.table.CreateHeader = func() fyne.CanvasObject {
		l := widget.NewLabel(config.TablePlaceholder)
		l.TextStyle = fyne.TextStyle{Bold: true}
		return l
	}
	app.table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		if id.Col >= 0 && id.Col < len(app.columns) {
			o.(*widget.Label).SetText(app.columns[id.Col].Label)
		}
	}
	app.table.OnSelected = func(id widget.TableCellID) {
		app.table.UnselectAll()
		app.toggleSelection(id.Row)
	}

	app.summary = widget.NewLabel("")

	app.deleteBt = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnDelete), theme.DeleteIcon(), app.confirmDelete)
	app.deleteBt.Importance = widget.DangerImportance
	app.deleteBt.Disable()

	refreshBt := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnRefresh), theme.ViewRefreshIcon(), func() {
		if v := app.currentView(); v != nil {
			go app.refresh(v)
		}
	})
	settingsBt := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSettings), theme.SettingsIcon(), app.ShowSettingsWindow)

	app.relabelButtons = func() {
		app.deleteBt.SetText(app.GetMsg(config.TKeyBtnDelete))
		refreshBt.SetText(app.GetMsg(config.TKeyBtnRefresh))
		settingsBt.SetText(app.GetMsg(config.TKeyBtnSettings))
	}

	footer := container.NewHBox(app.summary, layout.NewSpacer(), app.deleteBt, refreshBt, settingsBt)
	main := container.NewBorder(container.NewPadded(app.toolbar.content), footer, nil, nil, app.table)

	split := container.NewHSplit(app.nav, main)
	split.Offset = config.NavOffset
	return split
}

// pageKey returns the translation key of a page name.
func pageKey(route string) string {
	if route == config.RouteDashboard {
		return config.TKeyPagePrefix + config.TKeyPageDashboard
	}
	return config.TKeyPagePrefix + strings.TrimPrefix(route, "/")
}

func (app *SalonApp) pageLabel(def pages.Definition) string {
	return translate(app.Translator, pageKey(def.Route), nil, def.Name())
}

// ShowPage activates the page registered for route, falling back to the
// dashboard. The previous page is unmounted unless it feeds the bookings.
func (app *SalonApp) ShowPage(route string) {
	def, ok := pages.Lookup(route)
	if !ok {
		def = pages.Registry[0]
	}

	app.viewsMu.Lock()
	prev := app.current
	v := app.viewFor(def)
	app.current = v
	keep := prev == app.bookings
	app.viewsMu.Unlock()

	if prev != nil && prev != v && !keep {
		prev.Unmount()
	}

	slog.Info(config.MsgPageSelected,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyView, def.Route)

	app.Store.SetActiveView(def.Route)
	app.Preferences.SetString(config.PrefLastRoute, def.Route)
	clear(app.selected)

	if app.nav != nil {
		app.nav.Select(slices.IndexFunc(pages.Registry, func(d pages.Definition) bool {
			return d.Route == def.Route
		}))
	}
	app.refreshTableFor(v)

	if !v.Mounted() {
		go app.mount(v)
	}
}

func (app *SalonApp) currentView() *pages.View {
	app.viewsMu.Lock()
	defer app.viewsMu.Unlock()
	return app.current
}

// refreshTableFor redraws the table when v is the page on screen.
func (app *SalonApp) refreshTableFor(v *pages.View) {
	if app.table == nil || v != app.currentView() {
		return
	}

	app.rows = v.Visible()
	app.columns = v.Def.Columns
	for i := range app.columns {
		app.table.SetColumnWidth(i, config.TableColumnWidth)
	}
	app.table.Refresh()

	text := app.Translator.MsgData(config.TKeyLblRecords, map[string]any{"Count": len(app.rows)})
	if total, ok := v.Total(); ok {
		text += "   " + app.Translator.MsgData(config.TKeyLblTotal,
			map[string]any{"Total": total.StringFixed(config.MoneyDecimals)})
	}
	app.summary.SetText(text)
	app.updateDeleteButton()
}

// Snapshot captures the table on screen, for exports of pages that
// registered no rows.
func (app *SalonApp) Snapshot(ctx context.Context) (*export.Table, error) {
	v := app.currentView()
	if v == nil {
		return nil, nil
	}

	table := &export.Table{}
	for _, c := range v.Def.Columns {
		table.Headers = append(table.Headers, c.Label)
	}
	for _, r := range v.Visible() {
		cells := make([]string, len(v.Def.Columns))
		for i, c := range v.Def.Columns {
			cells[i] = c.Text(r)
		}
		table.Rows = append(table.Rows, cells)
	}
	return table, nil
}

// toggleSelection marks or unmarks the record shown on row for deletion.
func (app *SalonApp) toggleSelection(row int) {
	if row < 0 || row >= len(app.rows) {
		return
	}
	id := app.rows[row].ID()
	if id == "" {
		return
	}
	if app.selected[id] {
		delete(app.selected, id)
	} else {
		app.selected[id] = true
	}
	app.table.Refresh()
	app.updateDeleteButton()
}

func (app *SalonApp) updateDeleteButton() {
	if app.deleteBt == nil {
		return
	}
	v := app.currentView()
	if len(app.selected) > 0 && v != nil && v.Def.Resource != "" {
		app.deleteBt.Enable()
	} else {
		app.deleteBt.Disable()
	}
}

func (app *SalonApp) confirmDelete() {
	v := app.currentView()
	if v == nil || len(app.selected) == 0 {
		return
	}
	ids := slices.Sorted(maps.Keys(app.selected))
	msg := app.Translator.MsgData(config.TKeyDlgDelete, map[string]any{"Count": len(ids)})
	dialog.ShowConfirm(app.GetMsg(config.TKeyBtnDelete), msg, func(ok bool) {
		if ok {
			app.deleteRecords(v, ids)
		}
	}, app.Window)
}

// deleteRecords removes ids from the page's collection, one request per id,
// then reloads the page. Partial failures are reported and not rolled back.
func (app *SalonApp) deleteRecords(v *pages.View, ids []string) {
	clear(app.selected)
	app.updateDeleteButton()

	go func() {
		log := slog.With(
			config.LogKeyComponent, config.CompUI,
			config.LogKeyResource, v.Def.Resource,
			config.LogKeyCount, len(ids))

		if err := app.client().DeleteMany(app.Ctx, v.Def.Resource, ids); err != nil {
			log.Error(config.ErrBulkDelete, config.LogKeyError, err)
			app.notify(config.TKeyNotifDeleteErr, map[string]any{"Error": err.Error()})
		} else {
			log.Info(config.MsgRecordsDeleted)
		}
		app.refresh(v)
	}()
}
