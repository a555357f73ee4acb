package frontend

import (
	"bytes"
	"sync"
)

// markerScanner watches a byte stream for the first occurrence of a literal
// marker substring, tolerating matches split across chunk boundaries.
type markerScanner struct {
	marker []byte
	tail   []byte
	once   sync.Once
	found  chan struct{}
}

func newMarkerScanner(marker string) *markerScanner {
	return &markerScanner{
		marker: []byte(marker),
		found:  make(chan struct{}),
	}
}

// Found is closed once the marker has been seen.
func (s *markerScanner) Found() <-chan struct{} {
	return s.found
}

// Scan feeds the next output chunk to the scanner.
func (s *markerScanner) Scan(chunk []byte) {
	select {
	case <-s.found:
		return
	default:
	}

	s.tail = append(s.tail, chunk...)
	if bytes.Contains(s.tail, s.marker) {
		s.once.Do(func() { close(s.found) })
		s.tail = nil
		return
	}

	// Keep only enough bytes to complete a match that straddles the next
	// chunk boundary.
	if keep := len(s.marker) - 1; len(s.tail) > keep {
		s.tail = s.tail[len(s.tail)-keep:]
	}
}
