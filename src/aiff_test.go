package mkaudio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestAiffSampleRateTableRoundTrip(t *testing.T) {
	for _, rate := range []int{8000, 11025, 16000, 22050, 32000, 37800, 44056, 44100,
		47250, 48000, 50000, 50400, 88200, 96000, 176400, 192000, 352800, 2822400, 5644800} {
		var buf [10]byte
		ok := aiffSampleRateToBytes(rate, buf[:])
		require.True(t, ok, "rate %d", rate)
		got, ok := aiffSampleRateFromBytes(buf[:])
		require.True(t, ok, "rate %d", rate)
		assert.Equal(t, rate, got)
	}
}

func TestAiffSampleRateRejectsUnlistedRate(t *testing.T) {
	var buf [10]byte
	assert.False(t, aiffSampleRateToBytes(12345, buf[:]))

	_, ok := aiffSampleRateFromBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	assert.False(t, ok)
}

func TestAiffRoundTripPCM16(t *testing.T) {
	af := newTestAudioFile(FormatAiff, 2, 300, 16, 44100)
	data, err := Encode(af)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, af.SampleRate, decoded.SampleRate)
	assert.Equal(t, af.NumChannels(), decoded.NumChannels())
	require.Equal(t, af.Length(), decoded.Length())
	for c := range af.Channels {
		for f := range af.Channels[c] {
			assert.InDelta(t, af.Channels[c][f], decoded.Channels[c][f], 1.0/32767.0*2)
		}
	}
}

func TestAiffRejectsUnknownFormType(t *testing.T) {
	data := []byte("FORM\x00\x00\x00\x00AIFX")
	_, err := decodeAiff(data)
	assert.ErrorIs(t, err, ErrBadFormat)
}

func TestAiffEncodeRejectsUnsupportedSampleRate(t *testing.T) {
	af := newTestAudioFile(FormatAiff, 1, 16, 16, 44123)
	_, err := Encode(af)
	assert.ErrorIs(t, err, ErrUnsupportedSampleRate)
}

func TestAiffSampleRatePropertyRoundTrip(t *testing.T) {
	tableRates := []int{8000, 11025, 16000, 22050, 32000, 37800, 44056, 44100,
		47250, 48000, 50000, 50400, 88200, 96000, 176400, 192000, 352800, 2822400, 5644800}
	rapid.Check(t, func(t *rapid.T) {
		rate := rapid.SampledFrom(tableRates).Draw(t, "rate")
		af := newTestAudioFile(FormatAiff, 1, 16, 16, rate)
		data, err := Encode(af)
		require.NoError(t, err)
		decoded, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, rate, decoded.SampleRate)
	})
}
