package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func isFound(s *markerScanner) bool {
	select {
	case <-s.Found():
		return true
	default:
		return false
	}
}

func TestScanner_SingleChunk(t *testing.T) {
	s := newMarkerScanner("[watch] build finished")
	s.Scan([]byte("> esbuild\n[watch] build finished\n"))
	assert.True(t, isFound(s))
}

func TestScanner_MarkerSplitAcrossChunks(t *testing.T) {
	s := newMarkerScanner("[watch] build finished")
	s.Scan([]byte("[watch] bui"))
	assert.False(t, isFound(s))
	s.Scan([]byte("ld fini"))
	assert.False(t, isFound(s))
	s.Scan([]byte("shed\n"))
	assert.True(t, isFound(s))
}

func TestScanner_ByteByByte(t *testing.T) {
	s := newMarkerScanner("ready")
	for _, b := range []byte("almost ready now") {
		s.Scan([]byte{b})
	}
	assert.True(t, isFound(s))
}

func TestScanner_NoMatch(t *testing.T) {
	s := newMarkerScanner("ready")
	s.Scan([]byte("building...\nstill building...\n"))
	assert.False(t, isFound(s))
}

func TestScanner_FoundIsOneShot(t *testing.T) {
	s := newMarkerScanner("ready")
	s.Scan([]byte("ready"))
	assert.True(t, isFound(s))
	// Further chunks after a match are ignored.
	s.Scan([]byte("ready again"))
	assert.True(t, isFound(s))
}
