// Package config loads project settings from settings.yaml with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/brickyard/brickyard-cli/pkg/models"
)

const (
	EnvPrefix  = "BRICKYARD"
	configName = "settings"
	configType = "yaml"
)

// Load reads <dir>/settings.yaml over the defaults. A missing file is not an
// error. Environment variables such as BRICKYARD_EXPORT_THEME override both.
func Load(dir string) (*models.Settings, error) {
	defaults := models.DefaultSettings()

	v := viper.New()
	v.SetDefault("export.filename", defaults.Export.Filename)
	v.SetDefault("export.title", defaults.Export.Title)
	v.SetDefault("export.theme", defaults.Export.Theme)
	v.SetDefault("history.capacity", defaults.History.Capacity)
	v.SetDefault("ui.toast_duration_ms", defaults.UI.ToastDurationMs)
	v.SetDefault("ui.delete_delay_ms", defaults.UI.DeleteDelayMs)
	v.SetDefault("ui.nested_delete_delay_ms", defaults.UI.NestedDeleteDelayMs)
	v.SetDefault("ui.show_code", defaults.UI.ShowCode)
	v.SetDefault("preview.addr", defaults.Preview.Addr)
	v.SetDefault("log.level", defaults.Log.Level)

	if dir != "" {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read settings: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	settings := &models.Settings{
		Export: models.ExportSettings{
			Filename: v.GetString("export.filename"),
			Title:    v.GetString("export.title"),
			Theme:    v.GetString("export.theme"),
		},
		History: models.HistorySettings{
			Capacity: v.GetInt("history.capacity"),
		},
		UI: models.UISettings{
			ToastDurationMs:     v.GetInt("ui.toast_duration_ms"),
			DeleteDelayMs:       v.GetInt("ui.delete_delay_ms"),
			NestedDeleteDelayMs: v.GetInt("ui.nested_delete_delay_ms"),
			ShowCode:            v.GetBool("ui.show_code"),
		},
		Preview: models.PreviewSettings{
			Addr: v.GetString("preview.addr"),
		},
		Log: models.LogSettings{
			Level: v.GetString("log.level"),
		},
	}

	sanitize(settings, defaults)
	return settings, nil
}

// sanitize replaces out-of-range values with their defaults
func sanitize(s, defaults *models.Settings) {
	if s.History.Capacity < 1 {
		s.History.Capacity = defaults.History.Capacity
	}
	if s.UI.ToastDurationMs < 0 {
		s.UI.ToastDurationMs = defaults.UI.ToastDurationMs
	}
	if s.UI.DeleteDelayMs < 0 {
		s.UI.DeleteDelayMs = defaults.UI.DeleteDelayMs
	}
	if s.UI.NestedDeleteDelayMs < 0 {
		s.UI.NestedDeleteDelayMs = defaults.UI.NestedDeleteDelayMs
	}
	if strings.TrimSpace(s.Export.Filename) == "" {
		s.Export.Filename = defaults.Export.Filename
	}
	if strings.TrimSpace(s.Export.Theme) == "" {
		s.Export.Theme = defaults.Export.Theme
	}
	if s.Preview.Addr == "" {
		s.Preview.Addr = defaults.Preview.Addr
	}
}

// Save writes settings to <dir>/settings.yaml
func Save(dir string, settings *models.Settings) error {
	content, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	path := filepath.Join(dir, configName+"."+configType)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
