package ui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-salon/internal/backend"
	"github.com/tartampluch/go-salon/internal/config"
	"github.com/tartampluch/go-salon/internal/datefilter"
	"github.com/tartampluch/go-salon/internal/export"
	"github.com/tartampluch/go-salon/internal/feeds"
	"github.com/tartampluch/go-salon/internal/pages"
	"github.com/tartampluch/go-salon/internal/server"
	"github.com/tartampluch/go-salon/internal/viewstate"
)

// Backend is the part of the backend client the dashboard uses.
type Backend interface {
	pages.Lister
	DeleteMany(ctx context.Context, resource string, ids []string) error
}

// TokenStore keeps the backend API token.
type TokenStore interface {
	Token() (string, error)
	SetToken(token string) error
}

// SalonApp encapsulates the UI state, preferences, and the services behind the dashboard.
type SalonApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	Translator  *Translator
	Ctx         context.Context
	Settings    config.Settings

	Store    *viewstate.Store
	Server   *server.DocumentServer
	Exporter *export.Exporter
	Feeds    *feeds.Feeds
	Tokens   TokenStore

	// NewBackend builds the backend client for a base URL. Tests replace it.
	NewBackend func(baseURL string, tokens TokenStore) Backend

	settingsWindow fyne.Window

	viewsMu  sync.Mutex
	backend  Backend
	views    map[string]*pages.View
	current  *pages.View
	bookings *pages.View

	// Widgets and their data; UI goroutine only.
	filters  *FilterBar
	toolbar  *filterToolbar
	nav      *widget.List
	table    *widget.Table
	summary  *widget.Label
	deleteBt *widget.Button
	rows     []datefilter.Record
	columns  []pages.Column
	selected map[string]bool

	relabelButtons func()
}

// NewSalonApp constructs the application and wires dependencies.
func NewSalonApp(a fyne.App, ctx context.Context, settings config.Settings, srv *server.DocumentServer) *SalonApp {
	store := viewstate.NewStore()

	app := &SalonApp{
		App:         a,
		Preferences: a.Preferences(),
		Ctx:         ctx,
		Settings:    settings,
		Store:       store,
		Server:      srv,
		Tokens:      backend.DefaultKeyringToken(),
		NewBackend: func(baseURL string, tokens TokenStore) Backend {
			return backend.NewClient(baseURL, tokens)
		},
		views:    make(map[string]*pages.View),
		selected: make(map[string]bool),
	}

	app.Exporter = &export.Exporter{
		Store:     store,
		Tables:    app,
		OutputDir: app.exportDir,
		Publisher: srv,
	}
	app.Feeds = &feeds.Feeds{Store: store, Publisher: srv}
	return app
}

// SetupI18n loads the translations and the notifier that depends on them.
func (app *SalonApp) SetupI18n() {
	app.Translator = NewTranslator(app.language())
	app.Exporter.Notifier = desktopNotifier{app: app.App, tr: app.Translator}
}

// UpdateLocalizer refreshes the translator based on the user's language preference.
func (app *SalonApp) UpdateLocalizer() {
	app.Translator.SetLanguage(app.language())
}

// relabel applies a language change to the open main window.
func (app *SalonApp) relabel() {
	if app.Window != nil {
		app.Window.SetTitle(app.GetMsg(config.TKeyWinTitle))
	}
	if app.toolbar != nil {
		app.toolbar.Relabel()
	}
	if app.nav != nil {
		app.nav.Refresh()
	}
	if app.relabelButtons != nil {
		app.relabelButtons()
	}
	if v := app.currentView(); v != nil {
		app.refreshTableFor(v)
	}
}

// GetMsg is a helper to translate a key safely.
func (app *SalonApp) GetMsg(key string) string {
	return app.Translator.Msg(key)
}

// Run launches the application services and the main UI loop.
func (app *SalonApp) Run() {
	app.SetupI18n()

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyPort, app.Server.Port,
			config.LogKeyComponent, config.CompUI)

		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	stopFeeds := app.Feeds.Watch(app.Ctx)
	defer stopFeeds()

	app.Window = app.buildMainWindow()
	app.startBookings()
	app.ShowPage(app.Preferences.StringWithFallback(config.PrefLastRoute, config.DefaultRoute))

	app.Window.ShowAndRun()
}

func (app *SalonApp) language() string {
	return app.Preferences.StringWithFallback(config.PrefLanguage, app.Settings.UI.Language)
}

func (app *SalonApp) backendURL() string {
	return app.Preferences.StringWithFallback(config.PrefBackendURL, app.Settings.Backend.URL)
}

func (app *SalonApp) exportDir() string {
	return app.Preferences.StringWithFallback(config.PrefExportDir, app.Settings.Export.Dir)
}

func (app *SalonApp) notify(key string, data map[string]any) {
	app.App.SendNotification(fyne.NewNotification(config.AppName, app.Translator.MsgData(key, data)))
}

// client returns the backend client, creating it on first use.
func (app *SalonApp) client() Backend {
	app.viewsMu.Lock()
	defer app.viewsMu.Unlock()
	return app.clientLocked()
}

func (app *SalonApp) clientLocked() Backend {
	if app.backend == nil {
		app.backend = app.NewBackend(app.backendURL(), app.Tokens)
	}
	return app.backend
}

// viewFor returns the cached controller of def. Callers hold viewsMu.
func (app *SalonApp) viewFor(def pages.Definition) *pages.View {
	if v, ok := app.views[def.Route]; ok {
		return v
	}
	v := pages.NewView(def, app.Store, app.clientLocked())
	v.OnUpdate = func() {
		fyne.Do(func() { app.refreshTableFor(v) })
	}
	v.OnRecords = app.onRecords
	app.views[def.Route] = v
	return v
}

// onRecords publishes the stylist roster whenever the stylists page loads.
func (app *SalonApp) onRecords(def pages.Definition, records []datefilter.Record) {
	if def.Route != config.RouteStylists {
		return
	}
	if err := app.Feeds.PublishRoster(app.Ctx, records); err != nil {
		slog.Error(config.MsgRosterFailed,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
	}
}

// startBookings mounts the bookings page in the background. It stays mounted
// so the shared bookings, the calendar feed and the derived pages stay current.
func (app *SalonApp) startBookings() {
	def, _ := pages.Lookup(config.RouteBookings)

	app.viewsMu.Lock()
	app.bookings = app.viewFor(def)
	v := app.bookings
	app.viewsMu.Unlock()

	go app.mount(v)
}

func (app *SalonApp) mount(v *pages.View) {
	if err := v.Mount(app.Ctx); err != nil {
		app.reportFetchError(v, err)
	}
}

func (app *SalonApp) refresh(v *pages.View) {
	if err := v.Refresh(app.Ctx); err != nil {
		app.reportFetchError(v, err)
	}
}

func (app *SalonApp) reportFetchError(v *pages.View, err error) {
	slog.Error(config.ErrPageFetch,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyView, v.Def.Route,
		config.LogKeyError, err)
	app.notify(config.TKeyNotifFetchErr, map[string]any{"Error": err.Error()})
}

// resetViews drops every controller and the backend client, e.g. after the
// backend URL changed, and reloads the bookings and the active page.
func (app *SalonApp) resetViews() {
	app.viewsMu.Lock()
	old := app.views
	active := app.Store.ActiveView()
	app.views = make(map[string]*pages.View)
	app.backend = nil
	app.current = nil
	app.bookings = nil
	app.viewsMu.Unlock()

	for _, v := range old {
		v.Unmount()
	}
	app.startBookings()
	app.ShowPage(active)
}
