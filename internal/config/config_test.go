package config_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-salon/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ExportSheetName", config.ExportSheetName},
		{"DefaultPageName", config.DefaultPageName},
		{"ICalProdid", config.ICalProdid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

func TestDateCandidateFields_Order(t *testing.T) {
	assert.Equal(t, []string{"date", "createdAt", "dateAdded"}, config.DateCandidateFields)
}

func TestPageNames_CoverRoutes(t *testing.T) {
	for _, route := range []string{
		config.RouteDashboard,
		config.RouteBookings,
		config.RouteStylists,
		config.RouteServices,
		config.RouteInventory,
		config.RouteExpenses,
		config.RoutePendingPayments,
	} {
		assert.NotEmpty(t, config.PageNames[route], "route %s has no page name", route)
	}
}

func TestFilterPatterns(t *testing.T) {
	month := regexp.MustCompile(config.PatternMonth)
	day := regexp.MustCompile(config.PatternDay)

	assert.True(t, month.MatchString("2024-01"))
	assert.False(t, month.MatchString("2024-1"))
	assert.True(t, day.MatchString("2024-01-15"))
	assert.False(t, day.MatchString("2024-01-15T00:00"))
}

func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-Salon/"))
}

func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.HTTPTimeout, 0*time.Second)
	assert.LessOrEqual(t, config.HTTPTimeout, 2*time.Minute)
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second)
	assert.Greater(t, config.MaxHTTPResponseSize, 0)
}

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := config.LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultBackendURL, s.Backend.URL)
	assert.Equal(t, config.DefaultPort, s.PortString())
	assert.Equal(t, config.DefaultLanguage, s.UI.Language)
	assert.NotEmpty(t, s.Export.Dir)
}

func TestLoadSettings_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "salon.yaml")
	content := `
backend:
  url: https://salon.example.com/api
server:
  port: 19000
export:
  dir: /tmp/reports
ui:
  language: fr
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv(config.EnvPrefix+"EXPORT_DIR", "/srv/exports")

	s, err := config.LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "https://salon.example.com/api", s.Backend.URL)
	assert.Equal(t, "19000", s.PortString())
	assert.Equal(t, "/srv/exports", s.Export.Dir, "environment overrides the file")
	assert.Equal(t, "fr", s.UI.Language)
}

func TestLoadSettings_Errors(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		_, err := config.LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), config.ErrSettingsRead)
	})

	t.Run("BadPortEnv", func(t *testing.T) {
		t.Setenv(config.EnvPrefix+"SERVER_PORT", "not-a-port")
		_, err := config.LoadSettings("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), config.ErrSettingsEnvPort)
	})
}

func TestSettings_PortStringOutOfRange(t *testing.T) {
	s := config.DefaultSettings()
	s.Server.Port = 70000
	assert.Equal(t, config.DefaultPort, s.PortString())
}

func TestLoadSettings_EnvPortOutOfRange(t *testing.T) {
	t.Setenv(config.EnvPrefix+"SERVER_PORT", "70000")
	_, err := config.LoadSettings("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrPortRange)
}
