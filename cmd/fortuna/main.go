package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/safing/portrng/info"
	"github.com/safing/portrng/log"
	_ "github.com/safing/portrng/metrics"
	"github.com/safing/portrng/rng"
	"github.com/safing/portrng/run"
)

const chunkSize = 4 * 1024

func main() {
	// Set Info
	info.Set("Fortuna", "0.1.0", "GPLv3")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [AMOUNT]\n\nWrites AMOUNT random bytes to stdout, or endlessly if omitted.\nAMOUNT may have a K, M or G suffix.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	limit, limited, err := parseArgs(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Run
	os.Exit(run.Run(func(ctx context.Context) error {
		return stream(ctx, os.Stdout, limit, limited)
	}))
}

// stream writes random data to w in chunks until limit bytes are written, or forever if not limited.
func stream(ctx context.Context, w io.Writer, limit uint64, limited bool) error {
	buf := make([]byte, chunkSize)
	for !limited || limit > 0 {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		chunk := buf
		if limited && limit < chunkSize {
			chunk = buf[:limit]
		}

		if _, err := rng.Read(chunk); err != nil {
			return fmt.Errorf("failed to get random data: %w", err)
		}
		if _, err := w.Write(chunk); err != nil {
			if errors.Is(err, syscall.EPIPE) {
				log.Debug("main: output closed")
				return nil
			}
			return fmt.Errorf("failed to write random data: %w", err)
		}

		if limited {
			limit -= uint64(len(chunk))
		}
	}
	return nil
}
