package main

// Default command-line flag values
const (
	defaultTypeTag = "fc32" // complex float32, the common SDR wire format
	defaultTaps    = 0      // 0 selects the per-type default filter length
)

const version = "0.1.0"
