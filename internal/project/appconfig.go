// Package project persists user preferences, the material price inventory and
// backups under ~/.woodbom.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/WoodBOM/internal/model"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. WOODBOM_SETTINGS_SAW_KERF=3.
const EnvPrefix = "WOODBOM"

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.woodbom/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".woodbom")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from a JSON, YAML or TOML file, chosen by
// extension, and applies WOODBOM_* environment overrides on top. Keys the file
// leaves out keep their DefaultAppConfig value. If the file does not exist, the
// defaults (plus environment) are returned with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return model.AppConfig{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg model.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.OutputFormats == nil {
		cfg.OutputFormats = []string{}
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := model.DefaultAppConfig()

	v.SetDefault("settings.price_per_m3", d.Settings.PricePerM3)
	v.SetDefault("settings.currency", d.Settings.Currency)
	v.SetDefault("settings.saw_kerf", d.Settings.SawKerf)
	v.SetDefault("settings.max_raw_length", d.Settings.MaxRawLength)
	v.SetDefault("settings.stock_sizes", d.Settings.StockSizes)
	v.SetDefault("settings.use_snapping", d.Settings.UseSnapping)
	v.SetDefault("settings.snap_interval", d.Settings.SnapInterval)
	v.SetDefault("settings.algorithm", string(d.Settings.Algorithm))
	v.SetDefault("settings.min_offcut_length", d.Settings.MinOffcutLength)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.development", d.Log.Development)

	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("report_name", d.ReportName)
	v.SetDefault("output_formats", d.OutputFormats)
	v.SetDefault("stl_unit_scale", d.STLUnitScale)
}
