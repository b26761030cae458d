// Package app wires import, measurement, optimization and export into the
// report pipeline driven by the command line.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/WoodBOM/internal/bom"
	"github.com/piwi3910/WoodBOM/internal/engine"
	"github.com/piwi3910/WoodBOM/internal/export"
	"github.com/piwi3910/WoodBOM/internal/importer"
	"github.com/piwi3910/WoodBOM/internal/model"
	"go.uber.org/zap"
)

// ErrNothingImported is returned when the input file yields no bodies.
var ErrNothingImported = errors.New("nothing imported")

// App holds the configuration, price inventory and logger of one run.
type App struct {
	Config    model.AppConfig
	Inventory *model.Inventory
	Logger    *zap.Logger

	// Material assigned to STL meshes, which carry none.
	Material string
}

// New creates an App. inventory and logger may be nil.
func New(config model.AppConfig, inventory *model.Inventory, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	// a config without a settings section, such as the zero AppConfig,
	// runs with the built-in settings
	if config.Settings.MaxRawLength == 0 {
		config.Settings = model.DefaultSettings()
	}
	return &App{Config: config, Inventory: inventory, Logger: logger, Material: "Unknown"}
}

// Settings returns the run settings: the built-in defaults overlaid with the
// configured ones.
func (a *App) Settings() model.Settings {
	s := model.DefaultSettings()
	a.Config.ApplyToSettings(&s)
	return s
}

// RunResult is what Run produced.
type RunResult struct {
	Report model.Report
	Paths  []string // written files, in format order
}

// Run builds the report for the input file and writes it in every configured
// output format.
func (a *App) Run(ctx context.Context, input string) (RunResult, error) {
	rep, err := a.BuildReport(ctx, input)
	if err != nil {
		return RunResult{}, err
	}

	formats := a.Config.OutputFormats
	if len(formats) == 0 {
		formats = []string{export.FormatCSV}
	}
	dir := a.outputDir()
	base := a.reportBase(rep)

	paths, err := export.ExportAll(dir, base, formats, rep)
	if err != nil {
		return RunResult{Report: rep, Paths: paths}, err
	}
	for _, p := range paths {
		a.Logger.Info("report written", zap.String("path", p))
	}
	return RunResult{Report: rep, Paths: paths}, nil
}

// BuildReport imports the input file, measures every visible solid and
// prices and optimizes the result.
func (a *App) BuildReport(ctx context.Context, input string) (model.Report, error) {
	settings := a.Settings()
	if err := settings.Validate(); err != nil {
		return model.Report{}, fmt.Errorf("invalid settings: %w", err)
	}

	scene, err := a.importScene(input)
	if err != nil {
		return model.Report{}, err
	}

	b := bom.NewBuilder(settings, a.Inventory, a.Logger)
	added, err := b.ScanScene(ctx, scene)
	if err != nil {
		return model.Report{}, fmt.Errorf("scan interrupted after %d bodies: %w", added, err)
	}
	if skipped := b.Skipped(); len(skipped) > 0 {
		a.Logger.Warn("bodies skipped", zap.Int("count", len(skipped)), zap.Strings("bodies", skipped))
	}

	rep, err := b.Report()
	if err != nil {
		return model.Report{}, err
	}
	rep.Name = scene.Name
	return rep, nil
}

// Compare imports the input and packs its stock groups under the default
// what-if scenarios.
func (a *App) Compare(ctx context.Context, input string) ([]engine.ComparisonResult, error) {
	settings := a.Settings()
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	scene, err := a.importScene(input)
	if err != nil {
		return nil, err
	}

	b := bom.NewBuilder(settings, a.Inventory, a.Logger)
	if _, err := b.ScanScene(ctx, scene); err != nil {
		return nil, err
	}
	groups := b.Groups()
	if len(groups) == 0 {
		return nil, bom.ErrNoParts
	}
	return engine.CompareScenarios(engine.BuildDefaultScenarios(settings), groups), nil
}

func (a *App) importScene(input string) (model.Scene, error) {
	result := importer.ImportFile(input, importer.Options{
		Material: a.Material,
		STLScale: a.Config.STLUnitScale,
	})
	for _, w := range result.Warnings {
		a.Logger.Warn("import warning", zap.String("file", input), zap.String("warning", w))
	}

	if result.BodyCount() == 0 {
		if len(result.Errors) > 0 {
			return model.Scene{}, fmt.Errorf("failed to import %s: %s", filepath.Base(input), strings.Join(result.Errors, "; "))
		}
		return model.Scene{}, fmt.Errorf("%s: %w", filepath.Base(input), ErrNothingImported)
	}
	for _, e := range result.Errors {
		a.Logger.Warn("import error", zap.String("file", input), zap.String("error", e))
	}

	scene := result.Scene
	if scene.Name == "" {
		scene.Name = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}
	a.Logger.Debug("imported", zap.String("file", input), zap.Int("bodies", result.BodyCount()))
	return scene, nil
}

// outputDir returns the configured directory, else the desktop when it
// exists, else the working directory.
func (a *App) outputDir() string {
	if a.Config.OutputDir != "" {
		return a.Config.OutputDir
	}
	if home, err := os.UserHomeDir(); err == nil {
		desktop := filepath.Join(home, "Desktop")
		if info, err := os.Stat(desktop); err == nil && info.IsDir() {
			return desktop
		}
	}
	return "."
}

func (a *App) reportBase(rep model.Report) string {
	if a.Config.ReportName != "" {
		return a.Config.ReportName
	}
	if rep.Name != "" {
		return rep.Name
	}
	return "Wood_Cost_Report"
}
