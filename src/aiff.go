package mkaudio

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// aiffSampleRateTable is the exhaustive set of sample rates this module's
// AIFF/AIFC codec supports, keyed by the exact 10-byte IEEE-754 80-bit
// extended-precision encoding the COMM chunk carries for that rate. AIFF's
// rate field is, in principle, an arbitrary extended-precision float, but
// in practice every encoder emits one of a small fixed set of standard
// rates; this module follows that convention rather than implementing a
// general 80-bit float codec.
var aiffSampleRateTable = []struct {
	rate int
	enc  [10]byte
}{
	{8000, [10]byte{64, 11, 250, 0, 0, 0, 0, 0, 0, 0}},
	{11025, [10]byte{64, 12, 172, 68, 0, 0, 0, 0, 0, 0}},
	{16000, [10]byte{64, 12, 250, 0, 0, 0, 0, 0, 0, 0}},
	{22050, [10]byte{64, 13, 172, 68, 0, 0, 0, 0, 0, 0}},
	{32000, [10]byte{64, 13, 250, 0, 0, 0, 0, 0, 0, 0}},
	{37800, [10]byte{64, 14, 147, 168, 0, 0, 0, 0, 0, 0}},
	{44056, [10]byte{64, 14, 172, 24, 0, 0, 0, 0, 0, 0}},
	{44100, [10]byte{64, 14, 172, 68, 0, 0, 0, 0, 0, 0}},
	{47250, [10]byte{64, 14, 184, 146, 0, 0, 0, 0, 0, 0}},
	{48000, [10]byte{64, 14, 187, 128, 0, 0, 0, 0, 0, 0}},
	{50000, [10]byte{64, 14, 195, 80, 0, 0, 0, 0, 0, 0}},
	{50400, [10]byte{64, 14, 196, 224, 0, 0, 0, 0, 0, 0}},
	{88200, [10]byte{64, 15, 172, 68, 0, 0, 0, 0, 0, 0}},
	{96000, [10]byte{64, 15, 187, 128, 0, 0, 0, 0, 0, 0}},
	{176400, [10]byte{64, 16, 172, 68, 0, 0, 0, 0, 0, 0}},
	{192000, [10]byte{64, 16, 187, 128, 0, 0, 0, 0, 0, 0}},
	{352800, [10]byte{64, 17, 172, 68, 0, 0, 0, 0, 0, 0}},
	{2822400, [10]byte{64, 20, 172, 68, 0, 0, 0, 0, 0, 0}},
	{5644800, [10]byte{64, 21, 172, 68, 0, 0, 0, 0, 0, 0}},
}

// aiffSampleRateFromBytes maps a COMM chunk's 10-byte extended-precision
// rate field to an integer sample rate, returning ok=false for any
// encoding outside the fixed table above.
func aiffSampleRateFromBytes(b []byte) (int, bool) {
	for _, e := range aiffSampleRateTable {
		if bytes.Equal(b, e.enc[:]) {
			return e.rate, true
		}
	}
	return 0, false
}

// aiffSampleRateToBytes is the inverse of aiffSampleRateFromBytes.
func aiffSampleRateToBytes(rate int, dst []byte) bool {
	for _, e := range aiffSampleRateTable {
		if e.rate == rate {
			copy(dst, e.enc[:])
			return true
		}
	}
	return false
}

func decodeAiff(data []byte) (*AudioFile, error) {
	if len(data) < 12 {
		return nil, fmt.Errorf("%w: aiff header shorter than 12 bytes", ErrTruncated)
	}
	formType := string(data[8:12])
	if formType != "AIFF" && formType != "AIFC" {
		return nil, fmt.Errorf("%w: FORM type %q", ErrBadFormat, formType)
	}

	chunks, err := scanChunks(data, binary.BigEndian)
	if err != nil {
		return nil, err
	}

	commC, err := requireChunk(chunks, "COMM")
	if err != nil {
		return nil, err
	}
	if commC.size < 18 {
		return nil, fmt.Errorf("%w: COMM chunk shorter than 18 bytes", ErrBadFormat)
	}
	cb := data[commC.offset : commC.offset+int(commC.size)]

	channels := int(binary.BigEndian.Uint16(cb[0:2]))
	numFrames := int(binary.BigEndian.Uint32(cb[2:6]))
	bitsPerSample := int(binary.BigEndian.Uint16(cb[6:8]))
	sampleRate, ok := aiffSampleRateFromBytes(cb[8:18])
	if !ok {
		return nil, ErrUnsupportedSampleRate
	}

	compressionType := "NONE"
	if formType == "AIFC" && len(cb) >= 22 {
		compressionType = string(cb[18:22])
	}

	if channels < 1 || channels > 128 {
		return nil, fmt.Errorf("%w: channel count %d out of range [1, 128]", ErrBadFormat, channels)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d is not positive", ErrBadFormat, sampleRate)
	}
	if _, err := peakMagnitude(bitsPerSample); err != nil {
		return nil, err
	}

	isFloat := false
	littleEndianSamples := false
	switch compressionType {
	case "NONE":
	case "twos":
	case "sowt":
		littleEndianSamples = true
	case "fl32", "FL32":
		if bitsPerSample != 32 {
			return nil, fmt.Errorf("%w: fl32 compression requires a 32-bit sample size", ErrBadFormat)
		}
		isFloat = true
	default:
		return nil, fmt.Errorf("%w: AIFC compression %q", ErrUnsupportedCodec, compressionType)
	}
	order := binary.ByteOrder(binary.BigEndian)
	if littleEndianSamples {
		order = binary.LittleEndian
	}

	ssndC, err := requireChunk(chunks, "SSND")
	if err != nil {
		return nil, err
	}
	if ssndC.size < 8 {
		return nil, fmt.Errorf("%w: SSND chunk shorter than 8 bytes", ErrBadFormat)
	}
	sb := data[ssndC.offset : ssndC.offset+int(ssndC.size)]
	soundOffset := binary.BigEndian.Uint32(sb[0:4])
	if 8+uint64(soundOffset) > uint64(len(sb)) {
		return nil, fmt.Errorf("%w: SSND data offset past end of chunk", ErrTruncated)
	}
	soundData := sb[8+soundOffset:]

	sampleBytes := bytesPerSample(bitsPerSample)
	frameSize := sampleBytes * channels
	if frameSize == 0 {
		return nil, fmt.Errorf("%w: zero-width frame", ErrBadFormat)
	}
	if needed := numFrames * frameSize; needed > len(soundData) {
		return nil, fmt.Errorf("%w: SSND payload holds fewer than %d declared frames", ErrTruncated, numFrames)
	}

	channelData := make([][]float64, channels)
	for c := range channelData {
		channelData[c] = make([]float64, numFrames)
	}

	for frame := 0; frame < numFrames; frame++ {
		base := frame * frameSize
		for c := 0; c < channels; c++ {
			off := base + c*sampleBytes
			chunk := soundData[off : off+sampleBytes]
			if isFloat {
				channelData[c][frame] = decodeFloat32(chunk, order)
				continue
			}
			v, err := decodeInt(chunk, bitsPerSample, order)
			if err != nil {
				return nil, err
			}
			channelData[c][frame] = v
		}
	}

	Log.Debug("decoded aiff", "channels", channels, "frames", numFrames, "bits", bitsPerSample, "rate", sampleRate, "compression", compressionType)
	return &AudioFile{
		Channels:   channelData,
		SampleRate: sampleRate,
		BitDepth:   bitsPerSample,
		Format:     FormatAiff,
	}, nil
}

// encodeAiff always emits classic big-endian linear PCM under a plain AIFF
// FORM type (never AIFC), mirroring encodeWav's PCM-only scope.
func encodeAiff(af *AudioFile) ([]byte, error) {
	bits := af.BitDepth
	if bits == 0 {
		bits = 16
	}
	if _, err := peakMagnitude(bits); err != nil {
		return nil, err
	}
	channels := af.NumChannels()
	frames := af.Length()
	sampleBytes := bytesPerSample(bits)
	frameSize := sampleBytes * channels

	var buf bytes.Buffer
	buf.WriteString("FORM")
	buf.Write(make([]byte, 4))
	buf.WriteString("AIFF")

	commPayload := make([]byte, 18)
	binary.BigEndian.PutUint16(commPayload[0:2], uint16(channels))
	binary.BigEndian.PutUint32(commPayload[2:6], uint32(frames))
	binary.BigEndian.PutUint16(commPayload[6:8], uint16(bits))
	if !aiffSampleRateToBytes(af.SampleRate, commPayload[8:18]) {
		return nil, ErrUnsupportedSampleRate
	}
	appendChunk(&buf, binary.BigEndian, "COMM", commPayload)

	soundData := make([]byte, 8+frames*frameSize)
	for frame := 0; frame < frames; frame++ {
		base := 8 + frame*frameSize
		for c := 0; c < channels; c++ {
			off := base + c*sampleBytes
			if err := encodeInt(af.Channels[c][frame], bits, binary.BigEndian, soundData[off:off+sampleBytes]); err != nil {
				return nil, err
			}
		}
	}
	appendChunk(&buf, binary.BigEndian, "SSND", soundData)

	out := buf.Bytes()
	binary.BigEndian.PutUint32(out[4:8], uint32(len(out)-8))

	if err := verifyChunkSizes(out, binary.BigEndian); err != nil {
		return nil, err
	}
	return out, nil
}
