package mkaudio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudioFileIsMonoIsStereo(t *testing.T) {
	af := newTestAudioFile(FormatWav, 1, 10, 16, 44100)
	assert.True(t, af.IsMono())
	assert.False(t, af.IsStereo())

	af2 := newTestAudioFile(FormatWav, 2, 10, 16, 44100)
	assert.False(t, af2.IsMono())
	assert.True(t, af2.IsStereo())
}

func TestAudioFileSetChannelsGrowsAndShrinks(t *testing.T) {
	af := newTestAudioFile(FormatWav, 1, 10, 16, 44100)
	require.NoError(t, af.SetChannels(3))
	assert.Equal(t, 3, af.NumChannels())
	assert.Equal(t, 10, af.Length())

	require.NoError(t, af.SetChannels(1))
	assert.Equal(t, 1, af.NumChannels())
}

func TestAudioFileSetChannelsRejectsZero(t *testing.T) {
	af := newTestAudioFile(FormatWav, 1, 10, 16, 44100)
	assert.ErrorIs(t, af.SetChannels(0), ErrInvalidParameter)
}

func TestAudioFileSetBufferSizeTruncatesAndPads(t *testing.T) {
	af := newTestAudioFile(FormatWav, 2, 10, 16, 44100)
	require.NoError(t, af.SetBufferSize(5))
	assert.Equal(t, 5, af.Length())

	require.NoError(t, af.SetBufferSize(20))
	assert.Equal(t, 20, af.Length())
	assert.Equal(t, float64(0), af.Channels[0][19])
}

func TestAudioFileSetBitDepthValidates(t *testing.T) {
	af := newTestAudioFile(FormatWav, 1, 10, 16, 44100)
	assert.ErrorIs(t, af.SetBitDepth(17), ErrUnsupportedBitDepth)
	require.NoError(t, af.SetBitDepth(24))
	assert.Equal(t, 24, af.BitDepth)
}

func TestAudioFileDuration(t *testing.T) {
	af := newTestAudioFile(FormatWav, 1, 44100, 16, 44100)
	assert.InDelta(t, 1.0, af.Duration(), 1e-9)
}

func TestAudioFileSetSamplesRejectsBadChannel(t *testing.T) {
	af := newTestAudioFile(FormatWav, 1, 10, 16, 44100)
	assert.ErrorIs(t, af.SetSamples(5, nil), ErrInvalidParameter)
}
