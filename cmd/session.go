package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/massymassy/gosea/animation"
	"github.com/massymassy/gosea/camera"
	"github.com/massymassy/gosea/config"
	"github.com/massymassy/gosea/encoder"
	"github.com/massymassy/gosea/glfwcontext"
	"github.com/massymassy/gosea/inputs"
	"github.com/massymassy/gosea/logging"
	"github.com/massymassy/gosea/options"
	"github.com/massymassy/gosea/panel"
	"github.com/massymassy/gosea/params"
	"github.com/massymassy/gosea/renderer"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	defaultPanelLog = "gosea.log"
	defaultPreset   = "ocean.yaml"
)

// logDestination keeps the log off the terminal while the panel owns it.
func logDestination(opts *options.SeaOptions) string {
	if *opts.LogFile != "" {
		return *opts.LogFile
	}
	if *opts.Panel {
		return defaultPanelLog
	}
	return ""
}

func setupLogger(opts *options.SeaOptions) (func(), error) {
	logger, err := logging.New(logging.Config{Level: *opts.LogLevel, File: logDestination(opts)})
	if err != nil {
		return nil, err
	}
	undo := zap.ReplaceGlobals(logger)
	return func() {
		_ = logger.Sync()
		undo()
	}, nil
}

// loadStore builds the parameter store, applies the --config preset if present
// and returns the camera height to use. An explicit --camera-height wins over the
// preset's.
func loadStore(cmd *cobra.Command, opts *options.SeaOptions) (*params.Store, float64, error) {
	store := params.NewOceanStore()
	height := *opts.CameraHeight
	path := *opts.ConfigFile
	if path == "" {
		return store, height, nil
	}

	p, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		zap.S().Infof("Preset %s does not exist yet, using defaults", path)
		return store, height, nil
	}
	if err != nil {
		return nil, 0, err
	}
	if err := p.Apply(store); err != nil {
		zap.S().Warnf("Preset %s partially applied: %v", path, err)
	}
	if !cmd.Flags().Changed("camera-height") {
		height = p.CameraHeight
	}
	zap.S().Infof("Loaded preset %s", path)
	return store, height, nil
}

// loadSky decodes the background image and validates its filter before any GL
// state exists.
func loadSky(opts *options.SeaOptions) (image.Image, inputs.Filter, error) {
	filter, err := inputs.ParseFilter(*opts.SkyFilter)
	if err != nil {
		return nil, "", err
	}
	if *opts.SkyTexture == "" {
		return inputs.DefaultSky(), filter, nil
	}
	img, err := inputs.DecodeImage(*opts.SkyTexture)
	if err != nil {
		return nil, "", err
	}
	zap.S().Infof("Loaded sky texture %s (%dx%d)", *opts.SkyTexture, img.Bounds().Dx(), img.Bounds().Dy())
	return img, filter, nil
}

// reportError prints a command failure once: through the logger when it is set up,
// straight to w otherwise.
func reportError(w io.Writer, err error, logged bool) {
	if logged {
		zap.S().Errorf("%v", err)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func savePreset(store *params.Store, height float64, path string) error {
	if path == "" {
		path = defaultPreset
	}
	if err := config.Save(path, config.FromStore(store, height)); err != nil {
		return fmt.Errorf("failed to save preset %s: %w", path, err)
	}
	zap.S().Infof("Saved preset to %s", path)
	return nil
}

func runInteractive(cmd *cobra.Command, opts *options.SeaOptions) error {
	store, height, err := loadStore(cmd, opts)
	if err != nil {
		return err
	}
	sky, filter, err := loadSky(opts)
	if err != nil {
		return err
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		return fmt.Errorf("failed to initialize graphics: %w", err)
	}
	defer glfwcontext.TerminateGraphics()

	win, err := glfwcontext.New(opts, true)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Shutdown()

	r, err := renderer.NewRenderer(*opts.Width, *opts.Height, false, win)
	if err != nil {
		return err
	}
	defer r.Shutdown()

	scene, err := r.LoadScene(store, sky, filter)
	if err != nil {
		return err
	}
	defer scene.Destroy()

	driver := animation.NewDriver(store, animation.WithCameraHeight(float32(height)))

	win.RegisterKeyCallback(glfw.KeyR, func() {
		store.ResetAll()
		zap.S().Infof("Parameters reset to defaults")
	})
	win.RegisterKeyCallback(glfw.KeyS, func() {
		if err := savePreset(store, height, *opts.ConfigFile); err != nil {
			zap.S().Errorf("%v", err)
		}
	})

	var changes renderer.ChangeSource
	if *opts.Panel {
		binding, err := panel.NewBinding(store)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithCancel(cmd.Context())
		panelDone := binding.Start(ctx, tea.WithAltScreen())
		defer func() {
			cancel()
			select {
			case err := <-panelDone:
				if err != nil {
					zap.S().Errorf("Panel failed: %v", err)
				}
			case <-time.After(2 * time.Second):
				zap.S().Warnf("Panel did not shut down")
			}
		}()
		changes = binding
	}

	zap.S().Infof("Starting interactive render loop...")
	return r.Run(scene, driver, changes)
}

func runRecord(cmd *cobra.Command, opts *options.SeaOptions) error {
	enc, err := encoder.NewFFmpegEncoder(opts)
	if err != nil {
		return err
	}
	store, height, err := loadStore(cmd, opts)
	if err != nil {
		return err
	}
	sky, filter, err := loadSky(opts)
	if err != nil {
		return err
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		return fmt.Errorf("failed to initialize graphics: %w", err)
	}
	defer glfwcontext.TerminateGraphics()

	win, err := glfwcontext.New(opts, false)
	if err != nil {
		return fmt.Errorf("failed to create hidden window: %w", err)
	}
	defer win.Shutdown()

	r, err := renderer.NewRenderer(*opts.Width, *opts.Height, true, win)
	if err != nil {
		return err
	}
	defer r.Shutdown()

	scene, err := r.LoadScene(store, sky, filter)
	if err != nil {
		return err
	}
	defer scene.Destroy()

	driver := animation.NewDriver(store,
		animation.WithCameraHeight(float32(height)),
		animation.WithViewport(camera.NewViewport(*opts.Width, *opts.Height, 1)))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	zap.S().Infof("Starting offscreen render loop...")
	if err := r.RunOffscreen(ctx, scene, driver, enc); err != nil {
		return fmt.Errorf("offscreen rendering failed: %w", err)
	}
	zap.S().Infof("Successfully rendered to %s", *opts.OutputFile)
	return nil
}

func runPreset(cmd *cobra.Command, opts *options.SeaOptions, args []string) error {
	store, height, err := loadStore(cmd, opts)
	if err != nil {
		return err
	}
	p := config.FromStore(store, height)
	if len(args) == 1 {
		if err := config.Save(args[0], p); err != nil {
			return err
		}
		zap.S().Infof("Wrote preset to %s", args[0])
		return nil
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	defer enc.Close()
	return enc.Encode(p)
}
