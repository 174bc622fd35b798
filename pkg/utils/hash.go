package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// hashChunkSize is the read buffer used when digesting files, so memory use
// stays bounded regardless of file size.
const hashChunkSize = 1024 * 1024 // 1 MiB

// HashFile computes the SHA-256 hex digest of a file, streamed in 1 MiB
// chunks. Open and read failures are returned to the caller; there is no
// degenerate fallback value.
func HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := sha256.New()
	buf := make([]byte, hashChunkSize)
	if _, err := io.CopyBuffer(hash, file, buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
