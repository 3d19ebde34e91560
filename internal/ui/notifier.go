package ui

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"github.com/tartampluch/go-salon/internal/config"
	"github.com/tartampluch/go-salon/internal/export"
)

// desktopNotifier reports export outcomes as desktop notifications.
type desktopNotifier struct {
	app fyne.App
	tr  *Translator
}

func (n desktopNotifier) ExportSucceeded(res export.Result) {
	msg := translate(n.tr, config.TKeyNotifExportOK,
		map[string]any{"File": res.FileName, "Count": res.Rows},
		fmt.Sprintf(config.FallbackExportOK, res.FileName, res.Rows))
	n.app.SendNotification(fyne.NewNotification(config.TitleExport, msg))
}

func (n desktopNotifier) ExportFailed(err error) {
	var msg string
	if errors.Is(err, export.ErrNoData) {
		msg = translate(n.tr, config.TKeyNotifNoData, nil, config.FallbackNoData)
	} else {
		msg = translate(n.tr, config.TKeyNotifExportErr,
			map[string]any{"Error": err.Error()},
			fmt.Sprintf(config.FallbackExportErr, err))
	}
	n.app.SendNotification(fyne.NewNotification(config.TitleExport, msg))
}
