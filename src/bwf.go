package mkaudio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// bextFixedSize is the fixed portion of a BWF "bext" chunk (EBU Tech 3285):
// description(256) + originator(32) + originatorRef(32) + date(10) +
// time(8) + timeRef(8) + version(2) + umid(64) + loudness fields(5*2) +
// reserved(180), before the variable-length coding-history tail.
const bextFixedSize = 256 + 32 + 32 + 10 + 8 + 8 + 2 + 64 + 2 + 2 + 2 + 2 + 2 + 180

// BextInfo mirrors a BWF "bext" chunk's broadcast metadata.
type BextInfo struct {
	Description   string
	Originator    string
	OriginatorRef string
	Date          string
	Time          string
	TimeReference uint64
	Version       uint16
	UMID          [64]byte
	LoudnessValue int16
	LoudnessRange int16
	MaxTruePeak   int16
	MaxMomentary  int16
	MaxShortTerm  int16
	CodingHistory string
}

// AcidInfo mirrors an "acid" chunk's loop/tempo metadata.
type AcidInfo struct {
	TypeFlags  uint32
	RootNote   uint16
	NumBeats   uint32
	MeterDenom uint16
	MeterNum   uint16
	Tempo      float32
}

// BWFMetadata groups the optional broadcast-extension chunks a WAV file may
// carry, per spec.md §4.4.5.
type BWFMetadata struct {
	Bext    *BextInfo
	Markers MarkerList
	Acid    *AcidInfo
}

func parseBWF(data []byte, chunks map[string]chunkHeader, order binary.ByteOrder) (*BWFMetadata, error) {
	var bwf *BWFMetadata
	ensure := func() *BWFMetadata {
		if bwf == nil {
			bwf = &BWFMetadata{}
		}
		return bwf
	}

	if c, ok := findChunk(chunks, "bext"); ok {
		b := data[c.offset : c.offset+int(c.size)]
		if len(b) < bextFixedSize {
			return nil, fmt.Errorf("%w: bext chunk shorter than %d bytes", ErrBadFormat, bextFixedSize)
		}
		bext := &BextInfo{
			Description:   trimNUL(b[0:256]),
			Originator:    trimNUL(b[256:288]),
			OriginatorRef: trimNUL(b[288:320]),
			Date:          trimNUL(b[320:330]),
			Time:          trimNUL(b[330:338]),
			TimeReference: order.Uint64(b[338:346]),
			Version:       order.Uint16(b[346:348]),
			LoudnessValue: int16(order.Uint16(b[412:414])),
			LoudnessRange: int16(order.Uint16(b[414:416])),
			MaxTruePeak:   int16(order.Uint16(b[416:418])),
			MaxMomentary:  int16(order.Uint16(b[418:420])),
			MaxShortTerm:  int16(order.Uint16(b[420:422])),
		}
		copy(bext.UMID[:], b[348:412])
		if len(b) > bextFixedSize {
			bext.CodingHistory = trimNUL(b[bextFixedSize:])
		}
		ensure().Bext = bext
	}

	if c, ok := findChunk(chunks, "cue "); ok {
		b := data[c.offset : c.offset+int(c.size)]
		if len(b) < 4 {
			return nil, fmt.Errorf("%w: cue chunk shorter than 4 bytes", ErrBadFormat)
		}
		n := order.Uint32(b[0:4])
		ml := &ensure().Markers
		for i := uint32(0); i < n; i++ {
			off := 4 + int(i)*24
			if off+24 > len(b) {
				break
			}
			e := b[off : off+24]
			ml.markers = append(ml.markers, Marker{
				ID:           order.Uint32(e[0:4]),
				Position:     order.Uint32(e[4:8]),
				ChunkStart:   order.Uint32(e[12:16]),
				BlockStart:   order.Uint32(e[16:20]),
				SampleOffset: order.Uint32(e[20:24]),
			})
		}
	}

	if c, ok := findChunk(chunks, "LIST"); ok {
		b := data[c.offset : c.offset+int(c.size)]
		if len(b) >= 4 && string(b[0:4]) == "adtl" && bwf != nil {
			pos := 4
			for pos+8 <= len(b) {
				subID := string(b[pos : pos+4])
				subSize := int(order.Uint32(b[pos+4 : pos+8]))
				payloadStart := pos + 8
				if payloadStart+subSize > len(b) {
					break
				}
				payload := b[payloadStart : payloadStart+subSize]
				if (subID == "labl" || subID == "note") && len(payload) >= 4 {
					cueID := order.Uint32(payload[0:4])
					label := trimNUL(payload[4:])
					for i := range bwf.Markers.markers {
						if bwf.Markers.markers[i].ID == cueID {
							bwf.Markers.markers[i].Label = label
						}
					}
				}
				advance := subSize
				if advance%2 == 1 {
					advance++
				}
				pos = payloadStart + advance
			}
		}
	}

	if c, ok := findChunk(chunks, "acid"); ok {
		b := data[c.offset : c.offset+int(c.size)]
		if len(b) < 24 {
			return nil, fmt.Errorf("%w: acid chunk shorter than 24 bytes", ErrBadFormat)
		}
		ensure().Acid = &AcidInfo{
			TypeFlags:  order.Uint32(b[0:4]),
			RootNote:   order.Uint16(b[4:6]),
			NumBeats:   order.Uint32(b[12:16]),
			MeterDenom: order.Uint16(b[16:18]),
			MeterNum:   order.Uint16(b[18:20]),
			Tempo:      math.Float32frombits(order.Uint32(b[20:24])),
		}
	}

	if bwf != nil {
		bwf.Markers.resort()
	}
	return bwf, nil
}

// appendChunk writes a RIFF/AIFF sub-chunk: 4-byte id, size, payload, and a
// NUL pad byte if the payload length is odd.
func appendChunk(buf *bytes.Buffer, order binary.ByteOrder, id string, payload []byte) {
	buf.WriteString(id)
	var sizeBuf [4]byte
	order.PutUint32(sizeBuf[:], uint32(len(payload)))
	buf.Write(sizeBuf[:])
	buf.Write(payload)
	if len(payload)%2 == 1 {
		buf.WriteByte(0)
	}
}

func writeBextChunk(buf *bytes.Buffer, order binary.ByteOrder, b *BextInfo) {
	payload := make([]byte, bextFixedSize+len(b.CodingHistory))
	padNUL(payload[0:256], b.Description)
	padNUL(payload[256:288], b.Originator)
	padNUL(payload[288:320], b.OriginatorRef)
	padNUL(payload[320:330], b.Date)
	padNUL(payload[330:338], b.Time)
	order.PutUint64(payload[338:346], b.TimeReference)
	order.PutUint16(payload[346:348], b.Version)
	copy(payload[348:412], b.UMID[:])
	order.PutUint16(payload[412:414], uint16(b.LoudnessValue))
	order.PutUint16(payload[414:416], uint16(b.LoudnessRange))
	order.PutUint16(payload[416:418], uint16(b.MaxTruePeak))
	order.PutUint16(payload[418:420], uint16(b.MaxMomentary))
	order.PutUint16(payload[420:422], uint16(b.MaxShortTerm))
	copy(payload[bextFixedSize:], b.CodingHistory)
	appendChunk(buf, order, "bext", payload)
}

func writeCueChunk(buf *bytes.Buffer, order binary.ByteOrder, markers []Marker) {
	payload := make([]byte, 4+24*len(markers))
	order.PutUint32(payload[0:4], uint32(len(markers)))
	for i, m := range markers {
		off := 4 + i*24
		e := payload[off : off+24]
		order.PutUint32(e[0:4], m.ID)
		order.PutUint32(e[4:8], m.Position)
		copy(e[8:12], "data")
		order.PutUint32(e[12:16], m.ChunkStart)
		order.PutUint32(e[16:20], m.BlockStart)
		order.PutUint32(e[20:24], m.SampleOffset)
	}
	appendChunk(buf, order, "cue ", payload)
}

func writeAdtlChunk(buf *bytes.Buffer, order binary.ByteOrder, markers []Marker) {
	var inner bytes.Buffer
	inner.WriteString("adtl")
	for _, m := range markers {
		if m.Label == "" {
			continue
		}
		labelPayload := make([]byte, 4+len(m.Label)+1)
		order.PutUint32(labelPayload[0:4], m.ID)
		copy(labelPayload[4:], m.Label)
		appendChunk(&inner, order, "labl", labelPayload)
	}
	appendChunk(buf, order, "LIST", inner.Bytes())
}

func writeAcidChunk(buf *bytes.Buffer, order binary.ByteOrder, a *AcidInfo) {
	payload := make([]byte, 24)
	order.PutUint32(payload[0:4], a.TypeFlags)
	order.PutUint16(payload[4:6], a.RootNote)
	order.PutUint32(payload[12:16], a.NumBeats)
	order.PutUint16(payload[16:18], a.MeterDenom)
	order.PutUint16(payload[18:20], a.MeterNum)
	order.PutUint32(payload[20:24], math.Float32bits(a.Tempo))
	appendChunk(buf, order, "acid", payload)
}
