package main

import (
	"os"
	"runtime"

	"github.com/massymassy/gosea/options"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := options.Defaults()
	var syncLog func()

	rootCmd := &cobra.Command{
		Use:           "gosea",
		Short:         "animated ocean surface",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			syncLog, err = setupLogger(opts)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, opts)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.IntVar(opts.Width, "width", *opts.Width, "window or video width")
	pf.IntVar(opts.Height, "height", *opts.Height, "window or video height")
	pf.StringVar(opts.SkyTexture, "sky", *opts.SkyTexture, "background image (png, jpeg, gif, bmp, webp); default is a gradient")
	pf.StringVar(opts.SkyFilter, "sky-filter", *opts.SkyFilter, "sky texture filter: linear, nearest or mipmap")
	pf.StringVar(opts.ConfigFile, "config", *opts.ConfigFile, "YAML preset to load, and to write with the S key")
	pf.Float64Var(opts.CameraHeight, "camera-height", *opts.CameraHeight, "camera height above the surface")
	pf.StringVar(opts.LogLevel, "log-level", *opts.LogLevel, "debug, info, warn or error")
	pf.StringVar(opts.LogFile, "log-file", *opts.LogFile, "write the log to this file instead of stderr")

	rootCmd.Flags().BoolVar(opts.Panel, "panel", *opts.Panel, "show the terminal control panel")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "render the ocean offscreen to a video file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(cmd, opts)
		},
	}
	recordCmd.Flags().Float64Var(opts.Duration, "duration", *opts.Duration, "seconds to record")
	recordCmd.Flags().IntVar(opts.FPS, "fps", *opts.FPS, "frames per second")
	recordCmd.Flags().StringVar(opts.OutputFile, "output", *opts.OutputFile, "output video file")
	recordCmd.Flags().StringVar(opts.Codec, "codec", *opts.Codec, "h264 or hevc")
	recordCmd.Flags().StringVar(opts.FFMPEGPath, "ffmpeg", *opts.FFMPEGPath, "path to the ffmpeg executable")

	presetCmd := &cobra.Command{
		Use:   "preset [file]",
		Short: "write the current preset as YAML",
		Long:  "Writes the preset given by --config, or the defaults, to file or stdout.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreset(cmd, opts, args)
		},
	}

	rootCmd.AddCommand(recordCmd, presetCmd)

	err := rootCmd.Execute()
	if err != nil {
		reportError(os.Stderr, err, syncLog != nil)
	}
	if syncLog != nil {
		syncLog()
	}
	if err != nil {
		os.Exit(1)
	}
}
