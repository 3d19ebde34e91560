// Package backend talks to the salon REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/tartampluch/go-salon/internal/config"
	"github.com/tartampluch/go-salon/internal/datefilter"
)

// TokenSource provides the bearer token sent with every request.
// An empty token means the backend is called anonymously.
type TokenSource interface {
	Token() (string, error)
}

// Client is a minimal JSON client for the backend's collection endpoints.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  TokenSource
}

// NewClient creates a client with the standard timeout.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: config.HTTPTimeout},
		Tokens:  tokens,
	}
}

// List fetches every record of resource. Both a bare JSON array and an
// object wrapping the array under "data" are accepted.
func (c *Client) List(ctx context.Context, resource string) ([]datefilter.Record, error) {
	body, err := c.do(ctx, http.MethodGet, resource)
	if err != nil {
		return nil, err
	}
	records, err := decodeRecords(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrBackendDecode, err)
	}
	return records, nil
}

// Delete removes a single record.
func (c *Client) Delete(ctx context.Context, resource, id string) error {
	_, err := c.do(ctx, http.MethodDelete, resource, id)
	return err
}

// DeleteMany removes every id, one request each. Deletions that succeed are
// not rolled back; failures are joined into the returned error.
func (c *Client) DeleteMany(ctx context.Context, resource string, ids []string) error {
	var errs []error
	for _, id := range ids {
		if err := c.Delete(ctx, resource, id); err != nil {
			slog.Warn(config.MsgDeleteFailed,
				slog.String(config.LogKeyComponent, config.CompBackend),
				slog.String(config.LogKeyResource, resource),
				slog.String(config.LogKeyID, id),
				slog.String(config.LogKeyError, err.Error()),
			)
			errs = append(errs, fmt.Errorf("%s %s: %w", resource, id, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s: %w", config.ErrBulkDelete, errors.Join(errs...))
	}
	return nil
}

func (c *Client) endpoint(parts ...string) (*url.URL, error) {
	if strings.TrimSpace(c.BaseURL) == "" {
		return nil, errors.New(config.ErrBackendMissing)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}
	return u.JoinPath(parts...), nil
}

func (c *Client) do(ctx context.Context, method string, parts ...string) ([]byte, error) {
	u, err := c.endpoint(parts...)
	if err != nil {
		return nil, err
	}

	// Query strings are left out of logs; they may carry credentials.
	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompBackend),
		slog.String(config.LogKeyURL, u.Scheme+"://"+u.Host+u.Path),
	)
	log.Debug(config.MsgBackendRequest, slog.String(config.LogKeyMethod, method))

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, config.MimeJSON)

	if c.Tokens != nil {
		if token, err := c.Tokens.Token(); err == nil && token != "" {
			req.Header.Set(config.HeaderAuthorization, config.BearerPrefix+token)
		} else if err != nil {
			log.Debug(config.MsgTokenFail, slog.String(config.LogKeyError, err.Error()))
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Warn(config.MsgBackendBadState, slog.Int(config.LogKeyStatus, resp.StatusCode))
		return nil, fmt.Errorf("%s: %d %s", config.ErrBackendStatus, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return io.ReadAll(io.LimitReader(resp.Body, config.MaxHTTPResponseSize))
}

// decodeRecords keeps numbers as json.Number so money columns survive
// without float rounding.
func decodeRecords(body []byte) ([]datefilter.Record, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []datefilter.Record{}, nil
	}

	if body[0] == '{' {
		var envelope map[string]json.RawMessage
		if err := newDecoder(body).Decode(&envelope); err != nil {
			return nil, err
		}
		inner, ok := envelope[config.EnvelopeData]
		if !ok {
			return nil, fmt.Errorf("missing %q array", config.EnvelopeData)
		}
		body = inner
	}

	var records []datefilter.Record
	if err := newDecoder(body).Decode(&records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []datefilter.Record{}
	}
	return records, nil
}

func newDecoder(b []byte) *json.Decoder {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	return dec
}
