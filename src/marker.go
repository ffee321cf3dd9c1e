package mkaudio

import "sort"

// Marker is one BWF cue point, optionally labeled via a LIST/adtl "labl"
// sub-chunk. Its logical position on the timeline is Position +
// SampleOffset, per spec.md §4.4.5.
type Marker struct {
	ID           uint32
	Position     uint32
	ChunkStart   uint32
	BlockStart   uint32
	SampleOffset uint32
	Label        string
}

// LogicalPosition is where this marker actually sits on the sample
// timeline.
func (m Marker) LogicalPosition() uint32 { return m.Position + m.SampleOffset }

// MarkerList keeps markers ordered by logical position.
type MarkerList struct {
	markers []Marker
}

// Markers returns the markers in position order. The returned slice is
// owned by the list; callers must not mutate it.
func (l *MarkerList) Markers() []Marker { return l.markers }

// Add inserts marker, assigning it an id if marker.ID is 0 (one past the
// current maximum, or 1 if the list is empty), then re-sorts by position.
func (l *MarkerList) Add(marker Marker) {
	if marker.ID == 0 {
		var maxID uint32
		for _, m := range l.markers {
			if m.ID > maxID {
				maxID = m.ID
			}
		}
		marker.ID = maxID + 1
	}
	l.markers = append(l.markers, marker)
	sort.Slice(l.markers, func(i, j int) bool {
		return l.markers[i].LogicalPosition() < l.markers[j].LogicalPosition()
	})
}

// RemoveByID deletes the marker with the given id, reporting whether one
// was found.
func (l *MarkerList) RemoveByID(id uint32) bool {
	for i, m := range l.markers {
		if m.ID == id {
			l.markers = append(l.markers[:i], l.markers[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the marker list.
func (l *MarkerList) Clear() { l.markers = nil }

func (l *MarkerList) resort() {
	sort.Slice(l.markers, func(i, j int) bool {
		return l.markers[i].LogicalPosition() < l.markers[j].LogicalPosition()
	})
}
