package params

const (
	Time               = "time"
	BigWaveElevation   = "bigWaveElevation"
	BigWaveFrequency   = "bigWaveFrequency"
	BigWaveSpeed       = "bigWaveSpeed"
	SmallWaveElevation = "smallWaveElevation"
	SmallWaveFrequency = "smallWaveFrequency"
	SmallWaveSpeed     = "smallWaveSpeed"
	DepthColor         = "depthColor"
	SurfaceColor       = "surfaceColor"
	ColorOffset        = "colorOffset"
	ColorMultiplier    = "colorMultiplier"
)

func ranged(min, max float32) *Range {
	return &Range{Min: min, Max: max, Step: 0.001}
}

// OceanDefinitions lists the ocean shader inputs with their defaults and ranges.
func OceanDefinitions() []Definition {
	return []Definition{
		{Name: Time, Label: "time", Uniform: "uTime", Kind: KindScalar, Default: Scalar(0)},
		{Name: BigWaveElevation, Label: "wave height", Uniform: "uBigWaveElevation", Kind: KindScalar, Default: Scalar(0.38), Range: ranged(0, 1)},
		{Name: BigWaveFrequency, Label: "wave frequency", Uniform: "uBigWaveFrequency", Kind: KindVec2, Default: Vec2(6.6, 3.5), Range: ranged(0, 10)},
		{Name: BigWaveSpeed, Label: "wave speed", Uniform: "uBigWaveSpeed", Kind: KindScalar, Default: Scalar(0.75), Range: ranged(0, 5)},
		{Name: SmallWaveElevation, Label: "ripple height", Uniform: "uSmallWaveElevation", Kind: KindScalar, Default: Scalar(0.15), Range: ranged(0, 1)},
		{Name: SmallWaveFrequency, Label: "ripple frequency", Uniform: "uSmallWaveFrequency", Kind: KindScalar, Default: Scalar(3.0), Range: ranged(0, 30)},
		{Name: SmallWaveSpeed, Label: "ripple speed", Uniform: "uSmallWaveSpeed", Kind: KindScalar, Default: Scalar(0.2), Range: ranged(0, 4)},
		{Name: DepthColor, Label: "depth color", Uniform: "uDepthColor", Kind: KindColor, Default: MustHex("#2d81ae")},
		{Name: SurfaceColor, Label: "surface color", Uniform: "uSurfaceColor", Kind: KindColor, Default: MustHex("#66c1f9")},
		{Name: ColorOffset, Label: "color offset", Uniform: "uColorOffset", Kind: KindScalar, Default: Scalar(0.03), Range: ranged(0, 1)},
		{Name: ColorMultiplier, Label: "color multiplier", Uniform: "uColorMultiplier", Kind: KindScalar, Default: Scalar(9.0), Range: ranged(0, 10)},
	}
}

// NewOceanStore returns a store populated with OceanDefinitions.
func NewOceanStore() *Store {
	s, err := NewStore(OceanDefinitions()...)
	if err != nil {
		panic(err)
	}
	return s
}
