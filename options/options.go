package options

// SeaOptions carries the command line settings. Fields are pointers so they can be
// bound straight to flags; unset fields fall back to Defaults.
type SeaOptions struct {
	Width        *int
	Height       *int
	SkyTexture   *string // image file for the background; empty uses the built-in gradient
	SkyFilter    *string // linear, nearest or mipmap
	ConfigFile   *string // YAML preset loaded at startup and written by the save key
	Panel        *bool   // show the terminal tweak panel
	CameraHeight *float64
	LogLevel     *string
	LogFile      *string

	// Record options
	Duration   *float64
	FPS        *int
	OutputFile *string
	Codec      *string
	FFMPEGPath *string
}

// Defaults returns a fully populated option set.
func Defaults() *SeaOptions {
	return &SeaOptions{
		Width:        ptr(1280),
		Height:       ptr(720),
		SkyTexture:   ptr(""),
		SkyFilter:    ptr("linear"),
		ConfigFile:   ptr(""),
		Panel:        ptr(false),
		CameraHeight: ptr(0.23),
		LogLevel:     ptr("info"),
		LogFile:      ptr(""),
		Duration:     ptr(10.0),
		FPS:          ptr(60),
		OutputFile:   ptr("ocean.mp4"),
		Codec:        ptr("h264"),
		FFMPEGPath:   ptr(""),
	}
}

// Fill replaces nil fields of o with defaults.
func (o *SeaOptions) Fill() *SeaOptions {
	d := Defaults()
	fill(&o.Width, d.Width)
	fill(&o.Height, d.Height)
	fill(&o.SkyTexture, d.SkyTexture)
	fill(&o.SkyFilter, d.SkyFilter)
	fill(&o.ConfigFile, d.ConfigFile)
	fill(&o.Panel, d.Panel)
	fill(&o.CameraHeight, d.CameraHeight)
	fill(&o.LogLevel, d.LogLevel)
	fill(&o.LogFile, d.LogFile)
	fill(&o.Duration, d.Duration)
	fill(&o.FPS, d.FPS)
	fill(&o.OutputFile, d.OutputFile)
	fill(&o.Codec, d.Codec)
	fill(&o.FFMPEGPath, d.FFMPEGPath)
	return o
}

func ptr[T any](v T) *T { return &v }

func fill[T any](dst **T, def *T) {
	if *dst == nil {
		*dst = def
	}
}
