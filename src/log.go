package mkaudio

import (
	"os"

	"github.com/charmbracelet/log"
)

// Log is the package-level structured logger. WAV/AIFF decoding and DSP
// preset loading write debug lines to it; encoding and buffer operations do
// not log. The real-time DSP hot paths (Convolution.Process,
// Saturator.Process, Compressor.Process, Limiter.Process, Delay.Process,
// Circuit.Step) never touch it, since charmbracelet/log allocates.
var Log = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "mkaudio",
})

// SetLogLevel adjusts verbosity at runtime. Callers embedding this library
// in a larger application typically wire this to their own config.
func SetLogLevel(level log.Level) {
	Log.SetLevel(level)
}
