package mkaudio

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

func decodeWav(data []byte) (*AudioFile, error) {
	chunks, err := scanChunks(data, binary.LittleEndian)
	if err != nil {
		return nil, err
	}

	fmtC, err := requireChunk(chunks, "fmt ")
	if err != nil {
		return nil, err
	}
	if fmtC.size < 16 {
		return nil, fmt.Errorf("%w: fmt chunk shorter than 16 bytes", ErrBadFormat)
	}
	fb := data[fmtC.offset : fmtC.offset+int(fmtC.size)]

	audioFormat := WavAudioFormat(binary.LittleEndian.Uint16(fb[0:2]))
	channels := int(binary.LittleEndian.Uint16(fb[2:4]))
	sampleRate := int(binary.LittleEndian.Uint32(fb[4:8]))
	avgBytesPerSec := binary.LittleEndian.Uint32(fb[8:12])
	bitsPerSample := int(binary.LittleEndian.Uint16(fb[14:16]))

	if channels < 1 || channels > 128 {
		return nil, fmt.Errorf("%w: channel count %d out of range [1, 128]", ErrBadFormat, channels)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d is not positive", ErrBadFormat, sampleRate)
	}
	if _, err := peakMagnitude(bitsPerSample); err != nil {
		return nil, err
	}
	if audioFormat != WavFormatPCM && audioFormat != WavFormatIEEEFloat {
		return nil, fmt.Errorf("%w: fmt code 0x%04x", ErrUnsupportedCodec, uint16(audioFormat))
	}

	expectedAvg := uint32(channels) * uint32(sampleRate) * uint32(bitsPerSample) / 8
	if avgBytesPerSec != expectedAvg {
		return nil, fmt.Errorf("%w: avg bytes/sec %d, expected %d from channels/rate/depth", ErrBadFormat, avgBytesPerSec, expectedAvg)
	}

	dataC, err := requireChunk(chunks, "data")
	if err != nil {
		return nil, err
	}

	sampleBytes := bytesPerSample(bitsPerSample)
	frameSize := sampleBytes * channels
	if frameSize == 0 {
		return nil, fmt.Errorf("%w: zero-width frame", ErrBadFormat)
	}
	numFrames := int(dataC.size) / frameSize
	payload := data[dataC.offset : dataC.offset+int(dataC.size)]

	channelData := make([][]float64, channels)
	for c := range channelData {
		channelData[c] = make([]float64, numFrames)
	}

	isFloat := audioFormat == WavFormatIEEEFloat && bitsPerSample == 32
	for frame := 0; frame < numFrames; frame++ {
		base := frame * frameSize
		for c := 0; c < channels; c++ {
			off := base + c*sampleBytes
			sb := payload[off : off+sampleBytes]
			if isFloat {
				channelData[c][frame] = decodeFloat32(sb, binary.LittleEndian)
				continue
			}
			v, err := decodeInt(sb, bitsPerSample, binary.LittleEndian)
			if err != nil {
				return nil, err
			}
			channelData[c][frame] = v
		}
	}

	af := &AudioFile{
		Channels:   channelData,
		SampleRate: sampleRate,
		BitDepth:   bitsPerSample,
		Format:     FormatWav,
	}

	if c, ok := findChunk(chunks, "iXML"); ok {
		af.IXML = trimNUL(data[c.offset : c.offset+int(c.size)])
	}

	bwf, err := parseBWF(data, chunks, binary.LittleEndian)
	if err != nil {
		return nil, err
	}
	af.BWF = bwf

	Log.Debug("decoded wav", "channels", channels, "frames", numFrames, "bits", bitsPerSample, "rate", sampleRate)
	return af, nil
}

// encodeWav always emits integer PCM (8, 16, 24 or 32 bit); spec.md §4.4.6 scopes
// float-point WAV output out of the encoder.
func encodeWav(af *AudioFile) ([]byte, error) {
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
	buf.WriteString("RIFF")
	buf.Write(make([]byte, 4)) // size placeholder, patched below
	buf.WriteString("WAVE")

	if af.BWF != nil && af.BWF.Bext != nil {
		writeBextChunk(&buf, binary.LittleEndian, af.BWF.Bext)
	}

	fmtPayload := make([]byte, 16)
	binary.LittleEndian.PutUint16(fmtPayload[0:2], uint16(WavFormatPCM))
	binary.LittleEndian.PutUint16(fmtPayload[2:4], uint16(channels))
	binary.LittleEndian.PutUint32(fmtPayload[4:8], uint32(af.SampleRate))
	binary.LittleEndian.PutUint32(fmtPayload[8:12], uint32(channels*af.SampleRate*bits/8))
	binary.LittleEndian.PutUint16(fmtPayload[12:14], uint16(frameSize))
	binary.LittleEndian.PutUint16(fmtPayload[14:16], uint16(bits))
	appendChunk(&buf, binary.LittleEndian, "fmt ", fmtPayload)

	var markers []Marker
	if af.BWF != nil {
		markers = af.BWF.Markers.Markers()
	}
	if len(markers) > 0 {
		writeCueChunk(&buf, binary.LittleEndian, markers)
		hasLabel := false
		for _, m := range markers {
			if m.Label != "" {
				hasLabel = true
				break
			}
		}
		if hasLabel {
			writeAdtlChunk(&buf, binary.LittleEndian, markers)
		}
	}
	if af.BWF != nil && af.BWF.Acid != nil {
		writeAcidChunk(&buf, binary.LittleEndian, af.BWF.Acid)
	}

	dataPayload := make([]byte, frames*frameSize)
	for frame := 0; frame < frames; frame++ {
		base := frame * frameSize
		for c := 0; c < channels; c++ {
			off := base + c*sampleBytes
			if err := encodeInt(af.Channels[c][frame], bits, binary.LittleEndian, dataPayload[off:off+sampleBytes]); err != nil {
				return nil, err
			}
		}
	}
	appendChunk(&buf, binary.LittleEndian, "data", dataPayload)

	if af.IXML != "" {
		appendChunk(&buf, binary.LittleEndian, "iXML", []byte(af.IXML))
	}

	out := buf.Bytes()
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(out)-8))

	if err := verifyChunkSizes(out, binary.LittleEndian); err != nil {
		return nil, err
	}
	return out, nil
}

// verifyChunkSizes re-scans freshly assembled container bytes and confirms
// every declared chunk size actually fits within the buffer, catching
// assembly mistakes before a malformed file is returned to the caller.
func verifyChunkSizes(data []byte, order binary.ByteOrder) error {
	_, err := scanChunks(data, order)
	return err
}
