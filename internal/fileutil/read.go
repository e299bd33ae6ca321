package fileutil

import (
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/digipres-tools/droidsig/core/errors"
)

// ReadReport reads one report file. Files with an .xz suffix are
// decompressed transparently; large PRONOM exports commonly ship
// compressed.
func ReadReport(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &errors.IOError{Operation: "open", Path: path, Err: err}
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xzr, err := xz.NewReader(f)
		if err != nil {
			return nil, &errors.IOError{Operation: "decompress", Path: path, Err: err}
		}
		reader = xzr
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, &errors.IOError{Operation: "read", Path: path, Err: err}
	}
	return data, nil
}
