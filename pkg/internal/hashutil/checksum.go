// Package hashutil fingerprints produced archives.
package hashutil

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// Digest is the size and sha256 of a file.
type Digest struct {
	Size     int64
	Checksum string // "sha256:<hex>"
}

// FileDigest reads path once and returns its size and checksum.
func FileDigest(path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, err
	}
	defer func() {
		_ = file.Close()
	}()

	hash := sha256.New()
	n, err := io.Copy(hash, file)
	if err != nil {
		return Digest{}, err
	}

	return Digest{
		Size:     n,
		Checksum: fmt.Sprintf("sha256:%x", hash.Sum(nil)),
	}, nil
}
