package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-salon/internal/config"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect *widget.Select
	urlEntry   *widget.Entry
	tokenEntry *widget.Entry
	portEntry  *FilteredEntry
	dirEntry   *widget.Entry
}

// ShowSettingsWindow displays the configuration dialog allowing users to manage settings.
func (app *SalonApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug(config.MsgSettingsFocus, config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgSettingsOpen, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := app.newSettingsWidgets()

	browseBtn := widget.NewButton(app.GetMsg(config.TKeyBtnBrowse), func() {
		dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
			if err == nil && dir != nil {
				sw.dirEntry.SetText(dir.Path())
			}
		}, w)
	})

	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblBackend), sw.urlEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblToken), sw.tokenEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.portEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblExportDir), container.NewBorder(nil, nil, nil, browseBtn, sw.dirEntry)),
	)
	card := widget.NewCard(app.GetMsg(config.TKeyWinSettings), "", form)

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		if err := sw.validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw)
		w.Close()
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewPadded(container.NewVBox(
		card,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	w.SetContent(content)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, content.MinSize().Height))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })
	w.Show()
}

// newSettingsWidgets creates the form fields, filled from preferences,
// settings defaults and the keyring.
func (app *SalonApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.Translator.Languages, nil)
	sw.langSelect.SetSelected(app.language())

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.PlaceHolder = config.PlaceholderURL
	sw.urlEntry.SetText(app.backendURL())
	sw.urlEntry.Validator = func(s string) error { return validateBackendURL(app.Translator, s) }

	sw.tokenEntry = widget.NewPasswordEntry()
	if token, err := app.Tokens.Token(); err == nil {
		sw.tokenEntry.SetText(token)
	} else {
		slog.Debug(config.MsgTokenFail, config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
	}

	sw.portEntry = NewNumericalEntry()
	sw.portEntry.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, app.Settings.PortString()))
	sw.portEntry.Validator = func(s string) error { return validatePort(app.Translator, s) }

	sw.dirEntry = widget.NewEntry()
	sw.dirEntry.SetText(app.exportDir())

	return sw
}

// validate checks the fields that block saving.
func (sw *settingsWidgets) validate() error {
	if err := sw.portEntry.Validate(); err != nil {
		return err
	}
	return sw.urlEntry.Validate()
}

func validatePort(tr *Translator, s string) error {
	if s == "" {
		return errors.New(tr.Msg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(tr.Msg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(tr.Msg(config.TKeyErrPortRange))
	}
	return nil
}

func validateBackendURL(tr *Translator, s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Host == "" {
		return fmt.Errorf("%s: %s", config.ErrInvalidURL, s)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}
	return nil
}

// saveSettings persists the form and applies it to the running application.
func (app *SalonApp) saveSettings(sw *settingsWidgets) {
	slog.Info(config.MsgSettingsSaving, config.LogKeyComponent, config.CompUISet)

	oldURL := app.backendURL()
	newURL := strings.TrimSpace(sw.urlEntry.Text)

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetString(config.PrefBackendURL, newURL)
	app.Preferences.SetString(config.PrefServerPort, sw.portEntry.Text)
	app.Preferences.SetString(config.PrefExportDir, strings.TrimSpace(sw.dirEntry.Text))

	if err := app.Tokens.SetToken(sw.tokenEntry.Text); err != nil {
		slog.Error(config.ErrTokenStore, config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
	}

	app.UpdateLocalizer()
	app.relabel()

	// A new backend means new clients; the token is read per request.
	if newURL != oldURL {
		app.resetViews()
	}
}
