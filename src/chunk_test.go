package mkaudio

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineFormat(t *testing.T) {
	wav, err := DetermineFormat([]byte("RIFF\x00\x00\x00\x00WAVEfmt "))
	require.NoError(t, err)
	assert.Equal(t, FormatWav, wav)

	aiff, err := DetermineFormat([]byte("FORM\x00\x00\x00\x00AIFFCOMM"))
	require.NoError(t, err)
	assert.Equal(t, FormatAiff, aiff)

	_, err = DetermineFormat([]byte("bogus-magic-header"))
	assert.ErrorIs(t, err, ErrBadMagic)

	_, err = DetermineFormat([]byte("tiny"))
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestScanChunksFindsAllTopLevelChunks(t *testing.T) {
	data := append([]byte("RIFF\x00\x00\x00\x00WAVE"), buildChunk("fmt ", make([]byte, 16))...)
	data = append(data, buildChunk("data", []byte{1, 2, 3})...) // odd length, needs padding

	chunks, err := scanChunks(data, binary.LittleEndian)
	require.NoError(t, err)
	_, ok := findChunk(chunks, "fmt ")
	assert.True(t, ok)
	_, ok = findChunk(chunks, "data")
	assert.True(t, ok)
}

func TestScanChunksDetectsTruncation(t *testing.T) {
	data := []byte("RIFF\x00\x00\x00\x00WAVE")
	data = append(data, []byte("data")...)
	data = append(data, 100, 0, 0, 0) // declares 100 bytes but none follow

	_, err := scanChunks(data, binary.LittleEndian)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestRequireChunkMissing(t *testing.T) {
	chunks := map[string]chunkHeader{}
	_, err := requireChunk(chunks, "fmt ")
	assert.ErrorIs(t, err, ErrChunkNotFound)
}

func TestTrimNULAndPadNUL(t *testing.T) {
	assert.Equal(t, "hello", trimNUL([]byte("hello\x00\x00\x00")))

	dst := make([]byte, 8)
	padNUL(dst, "hi")
	assert.Equal(t, "hi\x00\x00\x00\x00\x00\x00", string(dst))
}

func buildChunk(id string, payload []byte) []byte {
	out := []byte(id)
	var size [4]byte
	binary.LittleEndian.PutUint32(size[:], uint32(len(payload)))
	out = append(out, size[:]...)
	out = append(out, payload...)
	if len(payload)%2 == 1 {
		out = append(out, 0)
	}
	return out
}
