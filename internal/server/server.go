package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-salon/internal/config"
)

// document is one published file and its metadata for HTTP caching.
type document struct {
	data         []byte
	contentType  string
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// DocumentServer serves the latest export workbook and feeds on localhost.
type DocumentServer struct {
	// docs holds an immutable name → document map, replaced wholesale on
	// every publish so readers never take a lock.
	docs    atomic.Pointer[map[string]*document]
	writeMu sync.Mutex

	Port string
}

// KnownDocuments are answered with 503 until first published, any other
// name with 404.
var KnownDocuments = []string{
	config.ReportDocumentName,
	config.CalendarDocumentName,
	config.RosterDocumentName,
}

// NewDocumentServer creates a new instance of the server.
func NewDocumentServer(port string) *DocumentServer {
	s := &DocumentServer{Port: port}
	empty := map[string]*document{}
	s.docs.Store(&empty)
	return s
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *DocumentServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Handler returns the HTTP handler serving published documents.
func (s *DocumentServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.handleDocument)
	return mux
}

// Publish atomically replaces the document served under name.
func (s *DocumentServer) Publish(name, contentType string, data []byte) {
	hash := sha256.Sum256(data)
	doc := &document{
		data:         data,
		contentType:  contentType,
		etag:         fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}

	s.writeMu.Lock()
	next := maps.Clone(*s.docs.Load())
	next[name] = doc
	s.docs.Store(&next)
	s.writeMu.Unlock()

	slog.Debug(config.MsgDocPublished,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyDocument, name,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, doc.etag,
	)
}

func (s *DocumentServer) lookup(name string) (*document, bool) {
	doc, ok := (*s.docs.Load())[name]
	return doc, ok
}

// handleDocument serves /<name> with HTTP caching support.
func (s *DocumentServer) handleDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, config.RouteRoot)
	item, ok := s.lookup(name)
	if !ok {
		for _, known := range KnownDocuments {
			if name == known {
				w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
				http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
				return
			}
		}
		http.Error(w, config.HTTPMsgNotFound, http.StatusNotFound)
		return
	}

	w.Header().Set(config.HeaderContentType, item.contentType)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)
	if item.contentType == config.MimeXLSX {
		w.Header().Set(config.HeaderContentDisp, fmt.Sprintf(config.FormatAttachment, name))
	}

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}
