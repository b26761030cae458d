package model

// LogConfig controls the structured logger.
type LogConfig struct {
	Level       string `json:"level" mapstructure:"level"`   // debug, info, warn, error
	Format      string `json:"format" mapstructure:"format"` // "json" or "console"
	Development bool   `json:"development" mapstructure:"development"`
}

// AppConfig holds application-wide preferences and the default settings
// applied to every report run.
type AppConfig struct {
	Settings Settings  `json:"settings" mapstructure:"settings"`
	Log      LogConfig `json:"log" mapstructure:"log"`

	// Report output
	OutputDir     string   `json:"output_dir" mapstructure:"output_dir"`         // "" = ~/Desktop
	ReportName    string   `json:"report_name" mapstructure:"report_name"`       // base file name without extension
	OutputFormats []string `json:"output_formats" mapstructure:"output_formats"` // csv, xlsx, pdf, labels, dxf

	// STL import
	STLUnitScale float64 `json:"stl_unit_scale" mapstructure:"stl_unit_scale"` // STL units to cm
}

// DefaultAppConfig returns an AppConfig populated with the defaults of
// DefaultSettings().
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Settings: DefaultSettings(),
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		OutputDir:     "",
		ReportName:    "Wood_Cost_Report",
		OutputFormats: []string{"csv"},
		STLUnitScale:  0.1, // STL files are usually millimetres
	}
}

// ApplyToSettings copies the configured defaults into s, leaving fields the
// config does not set untouched. UseSnapping and a zero kerf are always
// copied, so c.Settings should start from DefaultSettings as LoadAppConfig
// and DefaultAppConfig do.
func (c AppConfig) ApplyToSettings(s *Settings) {
	d := c.Settings
	if d.PricePerM3 > 0 {
		s.PricePerM3 = d.PricePerM3
	}
	if d.Currency != "" {
		s.Currency = d.Currency
	}
	if d.SawKerf >= 0 {
		s.SawKerf = d.SawKerf
	}
	if d.MaxRawLength > 0 {
		s.MaxRawLength = d.MaxRawLength
	}
	if len(d.StockSizes) > 0 {
		s.StockSizes = append([]int(nil), d.StockSizes...)
	}
	s.UseSnapping = d.UseSnapping
	if d.SnapInterval > 0 {
		s.SnapInterval = d.SnapInterval
	}
	if d.Algorithm != "" {
		s.Algorithm = d.Algorithm
	}
	if d.MinOffcutLength >= 0 {
		s.MinOffcutLength = d.MinOffcutLength
	}
}
