// Package export turns what the active page shows into an .xlsx workbook.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/tartampluch/go-salon/internal/config"
	"github.com/tartampluch/go-salon/internal/viewstate"
)

// ErrNoData is returned when neither registered rows nor a rendered table
// provide anything to export.
var ErrNoData = errors.New(config.ErrNoExportData)

// Result describes a written workbook.
type Result struct {
	ID       uuid.UUID
	FileName string
	Path     string
	Rows     int
	Source   string // config.ExportSourceRows or config.ExportSourceTable
}

// Notifier reports export outcomes to the user.
type Notifier interface {
	ExportSucceeded(res Result)
	ExportFailed(err error)
}

// Publisher receives every workbook written, e.g. to serve it over HTTP.
type Publisher interface {
	Publish(name, contentType string, body []byte)
}

// Exporter materializes the active view of a store.
type Exporter struct {
	Store *viewstate.Store

	// Tables is consulted when the active view registered no rows.
	Tables TableSnapshotSource

	// OutputDir returns the directory workbooks are written to.
	OutputDir func() string

	Notifier  Notifier
	Publisher Publisher
}

// ExportCurrentView writes the active view's rows to a workbook.
// explicitName overrides the derived file name when non-empty.
// Failures are reported through the Notifier and returned; they never panic.
func (e *Exporter) ExportCurrentView(ctx context.Context, explicitName string) (Result, error) {
	start := time.Now()
	res := Result{ID: uuid.New()}
	view := e.Store.ActiveView()
	res.FileName = FileName(explicitName, view, e.Store.Filter())

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompExport),
		slog.String(config.LogKeyExportID, res.ID.String()),
		slog.String(config.LogKeyView, view),
	)
	log.Info(config.MsgExportStarted, slog.String(config.LogKeyFile, res.FileName))

	res, err := e.export(ctx, log, view, res)
	if err != nil {
		log.Error(config.MsgExportFailed, slog.String(config.LogKeyError, err.Error()))
		if e.Notifier != nil {
			e.Notifier.ExportFailed(err)
		}
		return res, err
	}

	log.Info(config.MsgExportDone,
		slog.String(config.LogKeyPath, res.Path),
		slog.Int(config.LogKeyCount, res.Rows),
		slog.String(config.LogKeySource, res.Source),
		slog.Int64(config.LogKeyDuration, time.Since(start).Milliseconds()),
	)
	if e.Notifier != nil {
		e.Notifier.ExportSucceeded(res)
	}
	return res, nil
}

func (e *Exporter) export(ctx context.Context, log *slog.Logger, view string, res Result) (Result, error) {
	rows := e.Store.ExportRowsFor(view)
	res.Source = config.ExportSourceRows

	if len(rows) == 0 && e.Tables != nil {
		log.Debug(config.MsgExportFallback)
		table, err := e.Tables.Snapshot(ctx)
		if err != nil {
			return res, fmt.Errorf("%s: %w", config.ErrTableSnapshot, err)
		}
		rows = table.ExportRows()
		res.Source = config.ExportSourceTable
	}
	if len(rows) == 0 {
		return res, ErrNoData
	}
	res.Rows = len(rows)

	data, err := BuildWorkbook(rows)
	if err != nil {
		return res, err
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	dir := e.dir()
	path, err := writeAtomic(dir, res.FileName, data)
	if err != nil {
		return res, err
	}
	res.Path = path

	if e.Publisher != nil {
		e.Publisher.Publish(config.ReportDocumentName, config.MimeXLSX, data)
	}
	return res, nil
}

func (e *Exporter) dir() string {
	if e.OutputDir != nil {
		if d := e.OutputDir(); d != "" {
			return d
		}
	}
	return "."
}

// writeAtomic writes data next to its final name and renames it into place,
// so a failed export never leaves a truncated workbook behind.
func writeAtomic(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrExportDir, err)
	}

	tmp, err := os.CreateTemp(dir, config.ExportTempPattern)
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrWorkbookWrite, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", fmt.Errorf("%s: %w", config.ErrWorkbookWrite, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", fmt.Errorf("%s: %w", config.ErrWorkbookWrite, err)
	}
	if err := os.Chmod(tmpName, config.FilePermShared); err != nil {
		cleanup()
		return "", fmt.Errorf("%s: %w", config.ErrWorkbookWrite, err)
	}

	final := filepath.Join(dir, name)
	if err := os.Rename(tmpName, final); err != nil {
		cleanup()
		return "", fmt.Errorf("%s: %w", config.ErrWorkbookWrite, err)
	}
	return final, nil
}
