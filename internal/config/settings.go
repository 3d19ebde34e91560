package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Settings holds the runtime defaults that seed the UI preferences.
// Values come from an optional YAML file, then GOSALON_* environment variables.
type Settings struct {
	Backend BackendSettings `yaml:"backend"`
	Server  ServerSettings  `yaml:"server"`
	Export  ExportSettings  `yaml:"export"`
	UI      UISettings      `yaml:"ui"`
}

type BackendSettings struct {
	URL string `yaml:"url"`
}

type ServerSettings struct {
	Port int `yaml:"port"`
}

type ExportSettings struct {
	Dir string `yaml:"dir"`
}

type UISettings struct {
	Language string `yaml:"language"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	port, _ := strconv.Atoi(DefaultPort)
	return Settings{
		Backend: BackendSettings{URL: DefaultBackendURL},
		Server:  ServerSettings{Port: port},
		Export:  ExportSettings{Dir: defaultExportDir()},
		UI:      UISettings{Language: DefaultLanguage},
	}
}

// LoadSettings reads configuration from an optional YAML file and environment variables.
// An empty path skips the file.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	if path != "" {
		if err := loadSettingsFile(path, &s); err != nil {
			return Settings{}, err
		}
	}

	if v := os.Getenv(EnvPrefix + "BACKEND_URL"); v != "" {
		s.Backend.URL = v
	}
	if v := os.Getenv(EnvPrefix + "SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Settings{}, fmt.Errorf("%s: %s: %w", ErrSettingsEnvPort, ErrPortNumber, err)
		}
		if port < MinPort || port > MaxPort {
			return Settings{}, fmt.Errorf("%s: %s: %d", ErrSettingsEnvPort, ErrPortRange, port)
		}
		s.Server.Port = port
	}
	if v := os.Getenv(EnvPrefix + "EXPORT_DIR"); v != "" {
		s.Export.Dir = v
	}
	if v := os.Getenv(EnvPrefix + "LANGUAGE"); v != "" {
		s.UI.Language = v
	}

	return s, nil
}

// PortString returns the server port in the string form stored in preferences.
func (s Settings) PortString() string {
	if s.Server.Port < MinPort || s.Server.Port > MaxPort {
		return DefaultPort
	}
	return strconv.Itoa(s.Server.Port)
}

func loadSettingsFile(path string, s *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsRead, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsParse, err)
	}
	return nil
}

func defaultExportDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home + string(os.PathSeparator) + "Downloads"
}
