package fortuna

import "errors"

// Errors.
var (
	// ErrNotReady is returned when random data is requested before the generator was seeded for the first time.
	ErrNotReady = errors.New("fortuna: generator not seeded yet")
	// ErrInterrupted is returned when waiting for entropy was canceled.
	ErrInterrupted = errors.New("fortuna: interrupted while waiting")
	// ErrAlreadyStarted is returned when a source is added to an accumulator that is already running.
	ErrAlreadyStarted = errors.New("fortuna: accumulator already started")
	// ErrShutdownTimeout is returned when entropy sources did not finish within the shutdown timeout.
	ErrShutdownTimeout = errors.New("fortuna: timed out waiting for entropy sources")
	// ErrRequestTooLarge is returned when more than MaxRequestSize bytes are requested from a Generator at once.
	ErrRequestTooLarge = errors.New("fortuna: request exceeds maximum generator request size")
	// ErrInvalidBitCount is returned when less than 1 or more than 32 bits are requested.
	ErrInvalidBitCount = errors.New("fortuna: bit count must be between 1 and 32")
)
