package resample

const (
	// DefaultRealTaps is the per-partition filter length used for real
	// element types when WithTaps is not given.
	DefaultRealTaps = 128

	// DefaultComplexTaps is the per-partition filter length for complex
	// element types. Complex streams usually carry modulated spectrum
	// right up to the band edge, so they default to a sharper filter.
	DefaultComplexTaps = 384

	// defaultPathCapacity seeds the path table at construction. The
	// table grows to the largest output size seen and never shrinks.
	defaultPathCapacity = 128
)
