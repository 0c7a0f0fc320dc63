package entropy

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

func readOS(p []byte) error {
	for n := 0; n < len(p); {
		read, err := unix.Getrandom(p[n:], 0)
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case err != nil:
			return fmt.Errorf("getrandom: %w", err)
		}
		n += read
	}
	return nil
}
