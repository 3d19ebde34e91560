package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-salon/internal/backend"
	"github.com/tartampluch/go-salon/internal/config"
	"github.com/zalando/go-keyring"
)

type staticToken string

func (s staticToken) Token() (string, error) { return string(s), nil }

// TestClient_List_Array verifies headers and decoding of a bare JSON array.
func TestClient_List_Array(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/expenses", r.URL.Path)
		assert.Equal(t, config.UserAgent, r.Header.Get(config.HeaderUserAgent))
		assert.Equal(t, "Bearer s3cret", r.Header.Get(config.HeaderAuthorization))
		_, _ = w.Write([]byte(`[{"_id":"1","date":"2024-01-15","amount":100.10},{"_id":"2"}]`))
	}))
	defer ts.Close()

	c := backend.NewClient(ts.URL+"/api", staticToken("s3cret"))
	records, err := c.List(context.Background(), config.ResourceExpenses)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0].ID())
	assert.Equal(t, json.Number("100.10"), records[0]["amount"], "numbers keep their exact text")
}

// TestClient_List_Envelope verifies the {"data": [...]} form.
func TestClient_List_Envelope(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get(config.HeaderAuthorization), "anonymous when no token")
		_, _ = w.Write([]byte(`{"success":true,"data":[{"_id":"a","name":"Ana"}]}`))
	}))
	defer ts.Close()

	records, err := backend.NewClient(ts.URL, nil).List(context.Background(), config.ResourceStylists)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Ana", records[0].String(config.FieldName))
}

func TestClient_List_DecodeErrors(t *testing.T) {
	for name, body := range map[string]string{
		"Not JSON":        `<html>`,
		"Object no data":  `{"items":[]}`,
		"Data not array":  `{"data":{"x":1}}`,
		"Array of scalar": `[1,2,3]`,
	} {
		t.Run(name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer ts.Close()

			_, err := backend.NewClient(ts.URL, nil).List(context.Background(), "bookings")
			require.Error(t, err)
			assert.Contains(t, err.Error(), config.ErrBackendDecode)
		})
	}
}

func TestClient_List_EmptyBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer ts.Close()

	records, err := backend.NewClient(ts.URL, nil).List(context.Background(), "bookings")
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestClient_StatusErrors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    string
	}{
		{"NotFound", http.StatusNotFound, "404"},
		{"ServerError", http.StatusInternalServerError, "500"},
		{"Unauthorized", http.StatusUnauthorized, "401"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer ts.Close()

			_, err := backend.NewClient(ts.URL, nil).List(context.Background(), "bookings")
			require.Error(t, err)
			assert.Contains(t, err.Error(), config.ErrBackendStatus)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := backend.NewClient(ts.URL, nil).List(ctx, "bookings")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_URLValidation(t *testing.T) {
	_, err := backend.NewClient("", nil).List(context.Background(), "bookings")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrBackendMissing)

	_, err = backend.NewClient("ftp://example.com", nil).List(context.Background(), "bookings")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrProtocol)

	_, err = backend.NewClient(string([]byte{0x7f}), nil).List(context.Background(), "bookings")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrInvalidURL)
}

func TestClient_DeleteMany_PartialFailure(t *testing.T) {
	var mu sync.Mutex
	var deleted []string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		id := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		if id == "bad" {
			w.WriteHeader(http.StatusConflict)
			return
		}
		mu.Lock()
		deleted = append(deleted, id)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c := backend.NewClient(ts.URL, nil)
	err := c.DeleteMany(context.Background(), config.ResourceBookings, []string{"a", "bad", "b"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrBulkDelete)
	assert.Contains(t, err.Error(), "bookings bad")
	assert.Equal(t, []string{"a", "b"}, deleted, "successful deletes are kept")

	assert.NoError(t, c.DeleteMany(context.Background(), config.ResourceBookings, []string{"c"}))
	assert.NoError(t, c.DeleteMany(context.Background(), config.ResourceBookings, nil))
}

func TestKeyringToken(t *testing.T) {
	keyring.MockInit()
	k := backend.DefaultKeyringToken()

	token, err := k.Token()
	require.NoError(t, err)
	assert.Empty(t, token, "missing entry is not an error")

	require.NoError(t, k.SetToken("abc"))
	token, err = k.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	require.NoError(t, k.SetToken(""))
	token, err = k.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
}
