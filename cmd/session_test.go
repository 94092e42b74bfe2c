package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/massymassy/gosea/config"
	"github.com/massymassy/gosea/inputs"
	"github.com/massymassy/gosea/options"
	"github.com/massymassy/gosea/params"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"
)

func testCommand(opts *options.SeaOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Float64Var(opts.CameraHeight, "camera-height", *opts.CameraHeight, "")
	return cmd
}

func TestLogDestination(t *testing.T) {
	opts := options.Defaults()
	assert.Equal(t, "", logDestination(opts))

	*opts.Panel = true
	assert.Equal(t, defaultPanelLog, logDestination(opts))

	*opts.LogFile = "sea.log"
	assert.Equal(t, "sea.log", logDestination(opts))
}

func TestLoadStoreWithoutPreset(t *testing.T) {
	opts := options.Defaults()
	store, height, err := loadStore(testCommand(opts), opts)
	require.NoError(t, err)
	assert.Equal(t, 0.23, height)
	v, _ := store.Get(params.ColorMultiplier)
	assert.Equal(t, float32(9), v.Float())
}

func TestLoadStoreMissingPresetUsesDefaults(t *testing.T) {
	opts := options.Defaults()
	*opts.ConfigFile = filepath.Join(t.TempDir(), "later.yaml")
	_, height, err := loadStore(testCommand(opts), opts)
	require.NoError(t, err)
	assert.Equal(t, 0.23, height)
}

func TestLoadStoreAppliesPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storm.yaml")
	require.NoError(t, config.Save(path, &config.Preset{
		CameraHeight: 0.6,
		Parameters:   map[string]any{params.BigWaveElevation: 0.9},
	}))

	opts := options.Defaults()
	*opts.ConfigFile = path
	store, height, err := loadStore(testCommand(opts), opts)
	require.NoError(t, err)
	assert.Equal(t, 0.6, height)
	v, _ := store.Get(params.BigWaveElevation)
	assert.InDelta(t, 0.9, v.Float(), 1e-6)

	cmd := testCommand(opts)
	require.NoError(t, cmd.Flags().Set("camera-height", "1.5"))
	_, height, err = loadStore(cmd, opts)
	require.NoError(t, err)
	assert.Equal(t, 1.5, height)
}

func TestLoadStoreRejectsBrokenPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("parameters: [oops"), 0644))

	opts := options.Defaults()
	*opts.ConfigFile = path
	_, _, err := loadStore(testCommand(opts), opts)
	assert.Error(t, err)
}

func TestSavePreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	store := params.NewOceanStore()
	_, err := store.Set(params.SmallWaveSpeed, params.Scalar(1.25))
	require.NoError(t, err)

	require.NoError(t, savePreset(store, 0.4, path))

	p, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.4, p.CameraHeight)
	assert.Equal(t, 1.25, p.Parameters[params.SmallWaveSpeed])
}

func TestRunPresetToStdout(t *testing.T) {
	opts := options.Defaults()
	cmd := testCommand(opts)
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, runPreset(cmd, opts, nil))

	var p config.Preset
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &p))
	assert.Equal(t, 0.23, p.CameraHeight)
	assert.Equal(t, "#66c1f9", p.Parameters[params.SurfaceColor])
}

func TestLoadSkyDefault(t *testing.T) {
	img, filter, err := loadSky(options.Defaults())
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dy())
	assert.Equal(t, inputs.FilterLinear, filter)
}

func TestLoadSkyRejectsUnknownFilter(t *testing.T) {
	opts := options.Defaults()
	*opts.SkyFilter = "cubic"
	_, _, err := loadSky(opts)
	assert.ErrorContains(t, err, "cubic")
}

func TestReportErrorWithoutLogger(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, errors.New("no window"), false)
	assert.Equal(t, "Error: no window\n", buf.String())
}

func TestReportErrorThroughLogger(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	defer zap.ReplaceGlobals(zap.New(core))()

	var buf bytes.Buffer
	reportError(&buf, errors.New("no window"), true)
	assert.Empty(t, buf.String())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "no window", logs.All()[0].Message)
}
