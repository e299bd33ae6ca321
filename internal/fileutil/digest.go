package fileutil

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Blake3Hex returns the BLAKE3-256 digest of data as lower-case hex. The
// build logs this for the written signature file so a release can be
// pinned to its content.
func Blake3Hex(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
