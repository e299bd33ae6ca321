package fileutil

import (
	"os"
	"path/filepath"

	"github.com/digipres-tools/droidsig/core/errors"
)

// WriteFileAtomic writes data to path via a temporary file in the same
// directory and a rename, so a failed run never leaves a truncated
// document behind.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &errors.IOError{Operation: "create temp file", Path: dir, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &errors.IOError{Operation: "write", Path: tmpName, Err: err}
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &errors.IOError{Operation: "chmod", Path: tmpName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &errors.IOError{Operation: "close", Path: tmpName, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &errors.IOError{Operation: "rename", Path: path, Err: err}
	}
	return nil
}
