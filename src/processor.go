package mkaudio

// ChannelLayout names how channels in an AudioIO block are arranged.
type ChannelLayout int

const (
	ChannelLayoutMono ChannelLayout = iota
	ChannelLayoutStereo
	ChannelLayoutInterleaved
	ChannelLayoutPlanar
)

// AudioIO is the buffer shape real-time callbacks exchange with a
// Processor: one []float64 per channel, paired with the layout and frame
// count the caller should honor.
type AudioIO struct {
	Channels [][]float64
	Layout   ChannelLayout
	Frames   int
}

// Processor is implemented by anything that consumes and produces one
// block of audio in place. It is the seam between this library's DSP
// components and whatever drives the real-time callback in realtime.go.
type Processor interface {
	Process(io *AudioIO) error
	Reset()
}
