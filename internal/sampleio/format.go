// Package sampleio maps sample-format tags to element codecs and moves
// raw little-endian sample blocks in ratio-aligned groups.
package sampleio

// Format describes one raw stream format: its tag as spelled on the
// command line, a human-readable element name, the encoded element width
// in bytes, and whether elements are complex pairs.
type Format struct {
	Tag     string
	Desc    string
	Bytes   int
	Complex bool
}

// Formats lists the supported formats, real scalars first, in the order
// help output presents them.
var Formats = []Format{
	{Tag: "s8", Desc: "int8", Bytes: 1},
	{Tag: "s16", Desc: "int16", Bytes: 2},
	{Tag: "s32", Desc: "int32", Bytes: 4},
	{Tag: "s64", Desc: "int64", Bytes: 8},
	{Tag: "f32", Desc: "float32", Bytes: 4},
	{Tag: "f64", Desc: "float64", Bytes: 8},
	{Tag: "sc8", Desc: "complex int8", Bytes: 2, Complex: true},
	{Tag: "sc16", Desc: "complex int16", Bytes: 4, Complex: true},
	{Tag: "sc32", Desc: "complex int32", Bytes: 8, Complex: true},
	{Tag: "sc64", Desc: "complex int64", Bytes: 16, Complex: true},
	{Tag: "fc32", Desc: "complex float32", Bytes: 8, Complex: true},
	{Tag: "fc64", Desc: "complex float64", Bytes: 16, Complex: true},
}

// FormatByTag looks up a format by its tag.
func FormatByTag(tag string) (Format, bool) {
	for _, f := range Formats {
		if f.Tag == tag {
			return f, true
		}
	}
	return Format{}, false
}
