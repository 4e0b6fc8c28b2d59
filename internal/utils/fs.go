package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrSameFile is returned by CopyFile when src and dst name the same file
var ErrSameFile = errors.New("source and destination are the same file")

// DirPerm is the permission used for directories created in the channel tree
const DirPerm = 0755

// EnsureDir creates dir and any missing parents. Existing directories are
// not an error.
func EnsureDir(fs afero.Fs, dir string) error {
	return fs.MkdirAll(dir, DirPerm)
}

// CopyFile copies the contents and permission bits of src to dst,
// truncating dst if it already exists. It returns the number of bytes
// written. Copying a file onto itself fails with ErrSameFile and leaves
// the file untouched.
func CopyFile(fs afero.Fs, src, dst string) (int64, error) {
	in, err := fs.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, err
	}
	if info.IsDir() {
		return 0, &os.PathError{Op: "copy", Path: src, Err: fmt.Errorf("is a directory")}
	}

	if out, err := fs.Stat(dst); err == nil && sameFile(src, dst, info, out) {
		return 0, &os.PathError{Op: "copy", Path: dst, Err: ErrSameFile}
	}

	perm := info.Mode().Perm()
	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		return n, err
	}
	if err := out.Close(); err != nil {
		return n, err
	}

	// OpenFile only applies perm on creation, so an overwritten file keeps
	// its old mode unless we reset it.
	if err := fs.Chmod(dst, perm); err != nil {
		return n, err
	}

	return n, nil
}

// sameFile reports whether two existing paths are one file. os.SameFile
// only recognises infos from the OS filesystem, so other afero backends
// fall back to comparing absolute paths.
func sameFile(a, b string, ai, bi os.FileInfo) bool {
	if os.SameFile(ai, bi) {
		return true
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// IsWritableDir reports whether a file can be created inside dir
func IsWritableDir(fs afero.Fs, dir string) bool {
	f, err := afero.TempFile(fs, dir, ".chuukaibutsu-write-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	_ = fs.Remove(name)
	return true
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}
