package mkaudio

import "time"

// Api identifies a native audio backend a real-time host might bind to.
// This library defines the shape of that collaborator only; no concrete
// backend (hardware I/O is out of scope here) is wired in.
type Api int

const (
	ApiUnspecified Api = iota
	ApiWASAPI
	ApiCoreAudio
	ApiALSA
	ApiJACK
)

// DeviceInfo describes an audio device the way a host would enumerate it.
type DeviceInfo struct {
	Name              string
	Api               Api
	MaxInputChannels  int
	MaxOutputChannels int
	DefaultSampleRate float64
}

// AudioCallback is invoked by a real-time host once per block.
type AudioCallback func(io *AudioIO, timestamp time.Duration) error

// StreamState is the lifecycle a real-time audio stream moves through.
type StreamState int

const (
	StreamStateClosed StreamState = iota
	StreamStateOpen
	StreamStateRunning
	StreamStateStopped
)

// Stream is the real-time I/O collaborator a host application supplies
// around a Processor. This library declares the interface a host must
// satisfy but never implements it: opening hardware devices is the host's
// responsibility, not this library's.
type Stream interface {
	State() StreamState
	Start(callback AudioCallback) error
	Stop() error
	Close() error
	Info() DeviceInfo
}
