package mkaudio

import (
	"encoding/binary"
	"fmt"
	"math"
)

// WavAudioFormat is the `fmt ` chunk's audio-format code.
type WavAudioFormat uint16

const (
	WavFormatPCM        WavAudioFormat = 1
	WavFormatIEEEFloat  WavAudioFormat = 3
	WavFormatALaw       WavAudioFormat = 6
	WavFormatULaw       WavAudioFormat = 7
	WavFormatExtensible WavAudioFormat = 0xFFFE
)

// peakMagnitude returns the integer full-scale magnitude used to
// normalize/quantize samples at the given bit depth (spec.md §6.2).
func peakMagnitude(bits int) (int64, error) {
	switch bits {
	case 8:
		return 127, nil
	case 16:
		return 32767, nil
	case 24:
		return 8388607, nil
	case 32:
		return 2147483647, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bits)
	}
}

// decodeInt decodes one sample of the given bit depth (8/16/24/32, integer
// PCM) from b using byte order order, normalizing into [-1, 1].
func decodeInt(b []byte, bits int, order binary.ByteOrder) (float64, error) {
	switch bits {
	case 8:
		// 8-bit PCM is conventionally unsigned on disk, but spec.md §4.4.3
		// mandates signed interpretation normalized by 127 for this codec.
		return float64(int8(b[0])) / 127.0, nil
	case 16:
		return float64(int16(order.Uint16(b))) / 32767.0, nil
	case 24:
		var v int32
		if order == binary.LittleEndian {
			v = int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
		} else {
			v = int32(b[2]) | int32(b[1])<<8 | int32(b[0])<<16
		}
		if v&0x800000 != 0 {
			v |= ^0xFFFFFF // sign-extend
		}
		return float64(v) / 8388607.0, nil
	case 32:
		return float64(int32(order.Uint32(b))) / 2147483647.0, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bits)
	}
}

// decodeFloat32 reinterprets four bytes as an IEEE-754 float32 (WAV/AIFF
// IEEE-Float data), already in [-1, 1] by convention.
func decodeFloat32(b []byte, order binary.ByteOrder) float64 {
	return float64(math.Float32frombits(order.Uint32(b)))
}

// encodeInt quantizes a normalized sample into bits-wide integer PCM,
// clamping to [-1, 1] first and truncating toward zero (not rounding),
// matching spec.md §4.4.6.
func encodeInt(x float64, bits int, order binary.ByteOrder, dst []byte) error {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	peak, err := peakMagnitude(bits)
	if err != nil {
		return err
	}
	v := int64(x * float64(peak))
	switch bits {
	case 8:
		dst[0] = byte(int8(v))
	case 16:
		order.PutUint16(dst, uint16(int16(v)))
	case 24:
		iv := int32(v)
		if order == binary.LittleEndian {
			dst[0] = byte(iv)
			dst[1] = byte(iv >> 8)
			dst[2] = byte(iv >> 16)
		} else {
			dst[0] = byte(iv >> 16)
			dst[1] = byte(iv >> 8)
			dst[2] = byte(iv)
		}
	case 32:
		order.PutUint32(dst, uint32(int32(v)))
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bits)
	}
	return nil
}

// bytesPerSample returns how many bytes one channel's sample occupies on
// disk at the given bit depth.
func bytesPerSample(bits int) int { return bits / 8 }
