package mkaudio

import (
	"fmt"
	"math"
)

// AudioFile is a fully decoded audio file: one []float64 per channel, all
// normalized to [-1, 1] regardless of the source bit depth, plus the
// metadata needed to re-encode it. Channels[c] holds channel c's samples in
// frame order.
type AudioFile struct {
	Channels   [][]float64
	SampleRate int
	BitDepth   int
	Format     FileFormat
	IXML       string
	BWF        *BWFMetadata
}

// NumChannels reports how many channels the file has.
func (a *AudioFile) NumChannels() int { return len(a.Channels) }

// Length reports the frame count, taken from channel 0. SetChannels and
// SetBufferSize keep channels equal-length; SetSamples does not check, and
// Encode rejects a file whose channels differ in length.
func (a *AudioFile) Length() int {
	if len(a.Channels) == 0 {
		return 0
	}
	return len(a.Channels[0])
}

// IsMono reports whether the file has exactly one channel.
func (a *AudioFile) IsMono() bool { return a.NumChannels() == 1 }

// IsStereo reports whether the file has exactly two channels.
func (a *AudioFile) IsStereo() bool { return a.NumChannels() == 2 }

// Duration reports playback length in seconds, 0 if SampleRate is 0.
func (a *AudioFile) Duration() float64 {
	if a.SampleRate == 0 {
		return 0
	}
	return float64(a.Length()) / float64(a.SampleRate)
}

// SetChannels resizes the channel count, truncating or appending
// zero-filled channels of the current frame length.
func (a *AudioFile) SetChannels(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: channel count must be >= 1, got %d", ErrInvalidParameter, n)
	}
	frames := a.Length()
	for len(a.Channels) < n {
		a.Channels = append(a.Channels, make([]float64, frames))
	}
	a.Channels = a.Channels[:n]
	return nil
}

// SetSamples replaces channel c's sample data outright. All channels must
// stay equal length; callers resizing a multi-channel file should call
// SetBufferSize afterward, or use SetSamples on every channel.
func (a *AudioFile) SetSamples(channel int, samples []float64) error {
	if channel < 0 || channel >= len(a.Channels) {
		return fmt.Errorf("%w: channel index %d out of range", ErrInvalidParameter, channel)
	}
	a.Channels[channel] = samples
	return nil
}

// SetBitDepth changes the bit depth used on the next Encode call. It does
// not requantize already-decoded sample data, which stays in floating
// point until encoded.
func (a *AudioFile) SetBitDepth(bits int) error {
	if _, err := peakMagnitude(bits); err != nil {
		return err
	}
	a.BitDepth = bits
	return nil
}

// SetSampleRate changes the nominal sample rate used on the next Encode
// call. It does not resample existing sample data.
func (a *AudioFile) SetSampleRate(rate int) error {
	if rate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidParameter, rate)
	}
	a.SampleRate = rate
	return nil
}

// SetBufferSize resizes every channel to exactly frames samples, truncating
// or zero-padding as needed.
func (a *AudioFile) SetBufferSize(frames int) error {
	if frames < 0 {
		return fmt.Errorf("%w: frame count must be >= 0, got %d", ErrInvalidParameter, frames)
	}
	for c := range a.Channels {
		switch {
		case len(a.Channels[c]) > frames:
			a.Channels[c] = a.Channels[c][:frames]
		case len(a.Channels[c]) < frames:
			grown := make([]float64, frames)
			copy(grown, a.Channels[c])
			a.Channels[c] = grown
		}
	}
	return nil
}

// RatioToDB converts a linear amplitude ratio to decibels.
func RatioToDB(ratio float64) float64 {
	if ratio <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(ratio)
}

// DBToRatio converts decibels to a linear amplitude ratio.
func DBToRatio(db float64) float64 {
	return math.Pow(10, db/20)
}

// Decode inspects data's container magic and parses it as WAV or AIFF.
func Decode(data []byte) (*AudioFile, error) {
	format, err := DetermineFormat(data)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatWav:
		return decodeWav(data)
	case FormatAiff:
		return decodeAiff(data)
	default:
		return nil, fmt.Errorf("%w: unrecognized container", ErrBadMagic)
	}
}

// Encode serializes af according to af.Format.
func Encode(af *AudioFile) ([]byte, error) {
	if len(af.Channels) == 0 {
		return nil, fmt.Errorf("%w: no channels to encode", ErrInvalidUse)
	}
	frames := af.Length()
	for i, ch := range af.Channels {
		if len(ch) != frames {
			return nil, fmt.Errorf("%w: channel %d has %d frames, want %d", ErrInvalidUse, i, len(ch), frames)
		}
	}
	switch af.Format {
	case FormatWav:
		return encodeWav(af)
	case FormatAiff:
		return encodeAiff(af)
	default:
		return nil, fmt.Errorf("%w: AudioFile has no target container format set", ErrInvalidUse)
	}
}
