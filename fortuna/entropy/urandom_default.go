//go:build !linux

package entropy

import (
	"crypto/rand"
	"io"
)

func readOS(p []byte) error {
	_, err := io.ReadFull(rand.Reader, p)
	return err
}
