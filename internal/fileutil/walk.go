// Package fileutil provides filesystem helpers for the signature build:
// report enumeration, transparent xz decompression, atomic output writes
// and content digests.
package fileutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/digipres-tools/droidsig/core/errors"
)

// ListReports enumerates every regular file under dir, sorted by path.
// The sorted order is what makes two runs over the same export produce
// the same document.
func ListReports(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &errors.IOError{Operation: "stat", Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &errors.IOError{Operation: "list", Path: dir, Err: errors.ErrInvalidInput}
	}

	var reports []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			reports = append(reports, path)
		}
		return nil
	})
	if err != nil {
		return nil, &errors.IOError{Operation: "walk", Path: dir, Err: err}
	}
	sort.Strings(reports)
	return reports, nil
}
