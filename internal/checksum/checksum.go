// Package checksum decides whether two files have byte-identical content
// before any JSON work is attempted.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/mcncl/jdiff/internal/errors"
)

// FileDigest returns the lowercase hex SHA-256 digest of the file at path.
func FileDigest(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewInputError(fmt.Sprintf("file '%s' not found", path), errors.ErrFileNotFound)
		}
		return "", errors.NewInputError(fmt.Sprintf("failed to open file '%s'", path), err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", errors.NewInputError(fmt.Sprintf("failed to read file '%s'", path), err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SameContent reports whether the files at pathA and pathB hash identically.
func SameContent(pathA, pathB string) (bool, error) {
	a, err := FileDigest(pathA)
	if err != nil {
		return false, err
	}
	b, err := FileDigest(pathB)
	if err != nil {
		return false, err
	}
	return a == b, nil
}
