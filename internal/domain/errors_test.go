package domain

import (
	"errors"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSentinelErrors verifies sentinel errors are defined
func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check string
	}{
		{"ErrPlacementFailed", ErrPlacementFailed, "placement failed"},
		{"ErrNoSourceDirs", ErrNoSourceDirs, "at least one package directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.Contains(t, tt.err.Error(), tt.check)
		})
	}
}

// TestPlacementError tests PlacementError methods
func TestPlacementError(t *testing.T) {
	t.Run("Error contains all parts", func(t *testing.T) {
		err := NewPlacementError("copy", "pkg-1.0-0.tar.bz2", "/out/free/linux-64", errors.New("disk full"))

		msg := err.Error()
		assert.Contains(t, msg, "placement failed")
		assert.Contains(t, msg, "copy")
		assert.Contains(t, msg, "pkg-1.0-0.tar.bz2")
		assert.Contains(t, msg, "/out/free/linux-64")
		assert.Contains(t, msg, "disk full")
	})

	t.Run("matches sentinel and underlying error", func(t *testing.T) {
		pathErr := &fs.PathError{Op: "open", Path: "/src/pkg", Err: os.ErrPermission}
		err := error(NewPlacementError("open", "pkg", "/out", pathErr))

		assert.True(t, errors.Is(err, ErrPlacementFailed))
		assert.True(t, errors.Is(err, os.ErrPermission))

		var target *fs.PathError
		require.True(t, errors.As(err, &target))
		assert.Equal(t, "/src/pkg", target.Path)
	})

	t.Run("errors.As finds PlacementError through wrapping", func(t *testing.T) {
		err := NewPlacementError("mkdir", "pkg", "/out", os.ErrExist)
		wrapped := errors.Join(errors.New("distribute"), err)

		var target *PlacementError
		require.True(t, errors.As(wrapped, &target))
		assert.Equal(t, "mkdir", target.Op)
	})
}

// TestValidationError tests ValidationError
func TestValidationError(t *testing.T) {
	err := NewValidationError("index.command", "must not be empty")

	assert.Equal(t, "index.command", err.Field)
	assert.Equal(t, "validation error for index.command: must not be empty", err.Error())
}
