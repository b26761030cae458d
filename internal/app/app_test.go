package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/WoodBOM/internal/bom"
	"github.com/piwi3910/WoodBOM/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const tableCSV = "Name,Material,Length,Height,Width,Qty\n" +
	"Leg,Pine,720,45,45,4\n" +
	"Top,Oak,1200,600,20,1\n"

func writeInput(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func newTestApp(t *testing.T) *App {
	cfg := model.DefaultAppConfig()
	cfg.OutputDir = t.TempDir()
	return New(cfg, nil, zaptest.NewLogger(t))
}

func TestSettings_AppliesConfig(t *testing.T) {
	cfg := model.DefaultAppConfig()
	cfg.Settings.SawKerf = 3
	cfg.Settings.Algorithm = model.AlgorithmBestFit

	s := New(cfg, nil, nil).Settings()
	assert.Equal(t, 3, s.SawKerf)
	assert.Equal(t, model.AlgorithmBestFit, s.Algorithm)
	assert.Equal(t, 6000, s.MaxRawLength)
}

func TestSettings_ZeroConfigKeepsDefaults(t *testing.T) {
	s := New(model.AppConfig{}, nil, nil).Settings()
	assert.Equal(t, model.DefaultSettings(), s)
}

func TestBuildReport_CSV(t *testing.T) {
	a := newTestApp(t)

	rep, err := a.BuildReport(context.Background(), writeInput(t, "table.csv", tableCSV))
	require.NoError(t, err)

	assert.Equal(t, "table", rep.Name)
	require.Len(t, rep.Parts, 2)
	assert.Equal(t, "Leg", rep.Parts[0].Key.Name)
	assert.Equal(t, 4, rep.Parts[0].Quantity)
	assert.Equal(t, model.BOMKey{
		Name: "Top", Material: "Oak", Length: 1200, Height: 600, Width: 20,
		Angle1: "0.0°", Angle2: "0.0°",
	}, rep.Parts[1].Key)
	assert.Equal(t, 2, rep.TotalBoards())
	assert.Equal(t, "NIS", rep.Currency)
}

func TestBuildReport_InventoryPrice(t *testing.T) {
	a := newTestApp(t)
	a.Inventory = &model.Inventory{Materials: []model.MaterialPrice{model.NewMaterialPrice("Oak", 3600)}}

	rep, err := a.BuildReport(context.Background(), writeInput(t, "table.csv", tableCSV))
	require.NoError(t, err)
	require.Len(t, rep.Parts, 2)
	assert.Equal(t, "51.84", rep.Parts[1].Cost.StringFixed(model.CostPlaces))
}

func TestBuildReport_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestApp(t).BuildReport(ctx, writeInput(t, "table.csv", tableCSV))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildReport_InvalidSettings(t *testing.T) {
	a := newTestApp(t)
	a.Config.Settings.Algorithm = "zigzag"

	_, err := a.BuildReport(context.Background(), writeInput(t, "table.csv", tableCSV))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid settings")
}

func TestBuildReport_ImportErrors(t *testing.T) {
	a := newTestApp(t)

	_, err := a.BuildReport(context.Background(), writeInput(t, "model.step", "ISO-10303-21;"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unsupported file type")

	_, err = a.BuildReport(context.Background(), writeInput(t, "broken.csv",
		"Name,Material,Length,Height,Width,Qty\nLeg,Pine,abc,45,45,1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.csv")
}

func TestBuildReport_NoMeasurableParts(t *testing.T) {
	scene := `{"name": "Sketches", "root_bodies": [{"name": "Sketch", "box": [100, 100, 1], "solid": false}]}`

	_, err := newTestApp(t).BuildReport(context.Background(), writeInput(t, "sketch.json", scene))
	assert.True(t, errors.Is(err, bom.ErrNoParts))
}

func TestRun_WritesFiles(t *testing.T) {
	a := newTestApp(t)
	a.Config.OutputFormats = []string{"csv", "xlsx", "dxf"}

	res, err := a.Run(context.Background(), writeInput(t, "table.csv", tableCSV))
	require.NoError(t, err)
	require.Len(t, res.Paths, 3)
	assert.Equal(t, filepath.Join(a.Config.OutputDir, "Wood_Cost_Report.csv"), res.Paths[0])
	for _, p := range res.Paths {
		assert.FileExists(t, p)
	}
	assert.Equal(t, 5, res.Report.TotalParts())
}

func TestRun_ReportNameFromInput(t *testing.T) {
	a := newTestApp(t)
	a.Config.ReportName = ""
	a.Config.OutputFormats = nil

	res, err := a.Run(context.Background(), writeInput(t, "bench.csv", tableCSV))
	require.NoError(t, err)
	require.Len(t, res.Paths, 1)
	assert.Equal(t, "bench.csv", filepath.Base(res.Paths[0]))
}

func TestCompare(t *testing.T) {
	results, err := newTestApp(t).Compare(context.Background(), writeInput(t, "table.csv", tableCSV))
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "Current Settings", results[0].Scenario.Name)
	assert.Equal(t, 2, results[0].BoardsUsed)
	assert.Equal(t, 3000+2400, results[0].PurchaseLength)
}
