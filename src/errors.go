package mkaudio

import "errors"

// Sentinel errors for the codec and buffer layers, matching the Kind table
// in spec.md §7. Wrap these with fmt.Errorf("%w: ...") for context and
// unwrap with errors.Is.
var (
	ErrIO                    = errors.New("mkaudio: io error")
	ErrBadMagic              = errors.New("mkaudio: bad container magic")
	ErrBadFormat             = errors.New("mkaudio: inconsistent format header")
	ErrUnsupportedCodec      = errors.New("mkaudio: unsupported audio codec")
	ErrUnsupportedBitDepth   = errors.New("mkaudio: unsupported bit depth")
	ErrUnsupportedSampleRate = errors.New("mkaudio: unsupported sample rate")
	ErrTruncated             = errors.New("mkaudio: truncated file")
	ErrChunkNotFound         = errors.New("mkaudio: required chunk not found")
	ErrInvalidParameter      = errors.New("mkaudio: invalid parameter")
	ErrInvalidUse            = errors.New("mkaudio: invalid use")
)
