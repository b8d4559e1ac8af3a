package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWrapsCodeAndCause(t *testing.T) {
	root := stdErrors.New("short read")
	err := New("chunk.readByte", CodeOpenTrack, root)

	var e *Error
	require.True(t, stdErrors.As(err, &e))
	assert.Equal(t, CodeOpenTrack, e.Code)
	assert.Equal(t, "chunk.readByte", e.Op)
	assert.True(t, stdErrors.Is(err, root))
}

func TestNewWithoutCause(t *testing.T) {
	err := New("event.decodeMeta", CodeBadEOT, nil)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "event.decodeMeta")
	assert.Contains(t, err.Error(), Translate(CodeBadEOT))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNone, CodeOf(nil))
	assert.Equal(t, CodeIO, CodeOf(stdErrors.New("opaque")))

	wrapped := fmt.Errorf("reading varint: %w", New("chunk.readVarint", CodeLongVarint, nil))
	assert.Equal(t, CodeLongVarint, CodeOf(wrapped))
}

func TestTranslateKnownAndUnknown(t *testing.T) {
	for code := range names {
		assert.NotEmpty(t, Translate(code))
	}
	assert.Contains(t, Translate(Code(-999)), "unknown error code")
}

func TestCodesAreNegativeAndStable(t *testing.T) {
	// Every code except CodeNone must be a negative, distinct integer; this
	// is the contract spec.md §6 pins client code against.
	seen := map[Code]bool{}
	for code := range names {
		if code == CodeNone {
			continue
		}
		assert.Less(t, int(code), 0, "code %v must be negative", code)
		assert.False(t, seen[code], "duplicate code %v", code)
		seen[code] = true
	}
}
