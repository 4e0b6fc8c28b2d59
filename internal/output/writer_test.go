package output

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/quantmind-br/chuukaibutsu/internal/domain"
	"github.com/quantmind-br/chuukaibutsu/internal/utils"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewWriter tests creating a new writer
func TestNewWriter(t *testing.T) {
	tests := []struct {
		name  string
		opts  WriterOptions
		check func(t *testing.T, w *Writer)
	}{
		{
			name: "with all options",
			opts: WriterOptions{
				Fs:       afero.NewMemMapFs(),
				Prefix:   "/out",
				DryRun:   true,
				Progress: &bytes.Buffer{},
			},
			check: func(t *testing.T, w *Writer) {
				assert.Equal(t, "/out", w.prefix)
				assert.True(t, w.dryRun)
				assert.NotNil(t, w.logger)
			},
		},
		{
			name: "empty options use defaults",
			opts: WriterOptions{},
			check: func(t *testing.T, w *Writer) {
				assert.Equal(t, "local", w.prefix)
				assert.Equal(t, os.Stdout, w.progress)
				assert.NotNil(t, w.fs)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, NewWriter(tt.opts))
		})
	}
}

func newMemWriter(t *testing.T, dryRun bool) (*Writer, afero.Fs, *bytes.Buffer) {
	t.Helper()

	fs := afero.NewMemMapFs()
	var progress bytes.Buffer
	w := NewWriter(WriterOptions{
		Fs:       fs,
		Prefix:   "/out",
		DryRun:   dryRun,
		Progress: &progress,
	})
	return w, fs, &progress
}

// TestWriter_Place covers the basic copy scenario
func TestWriter_Place(t *testing.T) {
	w, fs, progress := newMemWriter(t, false)
	require.NoError(t, afero.WriteFile(fs, "/pkgsA/pkg-1.0-0.tar.bz2", []byte("payload"), 0644))

	loc := domain.Location{Channel: "free", Subdir: "linux-64"}
	p, err := w.Place(context.Background(), "/pkgsA/pkg-1.0-0.tar.bz2", loc)
	require.NoError(t, err)

	assert.Equal(t, "pkg-1.0-0.tar.bz2", p.Name)
	assert.Equal(t, "/pkgsA", p.SourceDir)
	assert.Equal(t, filepath.Join("/out", "free", "linux-64", "pkg-1.0-0.tar.bz2"), p.Destination)
	assert.Equal(t, filepath.Join("/out", "free"), p.ChannelRoot())
	assert.Equal(t, int64(len("payload")), p.Size)
	assert.False(t, p.DryRun)

	data, err := afero.ReadFile(fs, p.Destination)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	assert.Equal(t, "Copying pkg-1.0-0.tar.bz2 to "+filepath.Join("/out", "free", "linux-64")+"\n", progress.String())
}

// TestWriter_Place_Idempotent places into the same directory twice; the
// second copy wins and nothing errors.
func TestWriter_Place_Idempotent(t *testing.T) {
	w, fs, _ := newMemWriter(t, false)
	loc := domain.Location{Channel: "A", Subdir: "noarch"}

	require.NoError(t, afero.WriteFile(fs, "/pkgs1/pkg.tar.bz2", []byte("first"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/pkgs2/pkg.tar.bz2", []byte("second"), 0644))

	_, err := w.Place(context.Background(), "/pkgs1/pkg.tar.bz2", loc)
	require.NoError(t, err)
	p, err := w.Place(context.Background(), "/pkgs2/pkg.tar.bz2", loc)
	require.NoError(t, err)

	entries, err := afero.ReadDir(fs, "/out/A")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "noarch", entries[0].Name())

	files, err := afero.ReadDir(fs, "/out/A/noarch")
	require.NoError(t, err)
	assert.Len(t, files, 1)

	data, err := afero.ReadFile(fs, p.Destination)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestWriter_Place_PreExistingDirectory(t *testing.T) {
	w, fs, _ := newMemWriter(t, false)
	require.NoError(t, fs.MkdirAll("/out/free/linux-64", 0755))
	require.NoError(t, afero.WriteFile(fs, "/out/free/linux-64/other.tar.bz2", []byte("keep"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/pkgs/pkg.tar.bz2", []byte("x"), 0644))

	_, err := w.Place(context.Background(), "/pkgs/pkg.tar.bz2", domain.Location{Channel: "free", Subdir: "linux-64"})
	require.NoError(t, err)

	files, err := afero.ReadDir(fs, "/out/free/linux-64")
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestWriter_Place_DryRun(t *testing.T) {
	w, fs, progress := newMemWriter(t, true)
	require.NoError(t, afero.WriteFile(fs, "/pkgs/pkg.tar.bz2", []byte("abc"), 0644))

	p, err := w.Place(context.Background(), "/pkgs/pkg.tar.bz2", domain.Location{Channel: "free", Subdir: "noarch"})
	require.NoError(t, err)
	assert.True(t, p.DryRun)
	assert.Equal(t, int64(3), p.Size)
	assert.Contains(t, progress.String(), "Would copy pkg.tar.bz2 to ")

	exists, err := afero.DirExists(fs, "/out")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestWriter_Place_Errors(t *testing.T) {
	t.Run("missing source", func(t *testing.T) {
		w, _, _ := newMemWriter(t, false)

		_, err := w.Place(context.Background(), "/pkgs/missing.tar.bz2", domain.Location{Channel: "free", Subdir: "noarch"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrPlacementFailed)
		assert.ErrorIs(t, err, os.ErrNotExist)

		var pe *domain.PlacementError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "copy", pe.Op)
	})

	t.Run("read-only prefix", func(t *testing.T) {
		base := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(base, "/pkgs/pkg.tar.bz2", []byte("x"), 0644))
		w := NewWriter(WriterOptions{
			Fs:       afero.NewReadOnlyFs(base),
			Prefix:   "/out",
			Progress: &bytes.Buffer{},
		})

		_, err := w.Place(context.Background(), "/pkgs/pkg.tar.bz2", domain.Location{Channel: "free", Subdir: "noarch"})
		require.Error(t, err)

		var pe *domain.PlacementError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "mkdir", pe.Op)
	})

	t.Run("source already in place", func(t *testing.T) {
		w, fs, _ := newMemWriter(t, false)
		dest := "/out/free/linux-64/pkg-1.0-0.tar.bz2"
		require.NoError(t, afero.WriteFile(fs, dest, []byte("PAYLOAD"), 0644))

		_, err := w.Place(context.Background(), dest, domain.Location{Channel: "free", Subdir: "linux-64"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrPlacementFailed)
		assert.ErrorIs(t, err, utils.ErrSameFile)

		var pe *domain.PlacementError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "copy", pe.Op)

		data, err := afero.ReadFile(fs, dest)
		require.NoError(t, err)
		assert.Equal(t, "PAYLOAD", string(data))
	})

	t.Run("cancelled context", func(t *testing.T) {
		w, fs, progress := newMemWriter(t, false)
		require.NoError(t, afero.WriteFile(fs, "/pkgs/pkg.tar.bz2", []byte("x"), 0644))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := w.Place(ctx, "/pkgs/pkg.tar.bz2", domain.Location{Channel: "free", Subdir: "noarch"})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, progress.String())
	})
}

func TestWriter_Stats(t *testing.T) {
	w, fs, _ := newMemWriter(t, false)
	require.NoError(t, afero.WriteFile(fs, "/out/free/linux-64/a.tar.bz2", []byte("12345"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/out/main/noarch/b.conda", []byte("123"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/out/.chuukaibutsu-state.json", []byte("{}"), 0644))

	count, size, err := w.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, int64(8), size)
}
