package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	logOutput     io.Writer = os.Stderr
	logOutputLock sync.Mutex
	useColor      = true
)

// SetOutput replaces the writer that log lines are written to. Coloring is disabled for anything but stderr.
func SetOutput(w io.Writer) {
	logOutputLock.Lock()
	defer logOutputLock.Unlock()

	logOutput = w
	useColor = w == os.Stderr
}

func writeLine(line *logLine, duplicates uint64) {
	// lines queued before start did not pass the level check yet
	if !pkgLevelsActive.IsSet() && line.level < GetLogLevel() {
		return
	}

	logOutputLock.Lock()
	defer logOutputLock.Unlock()

	fmt.Fprintln(logOutput, formatLine(line, duplicates, useColor))
}

func writer() {
	defer shutdownWaitGroup.Done()

	var line *logLine
	var lastLine *logLine
	var duplicates uint64

	for {
		// wait until logs need to be processed
		select {
		case <-logsWaiting:
			logsWaitingFlag.UnSet()
		case <-forceEmptyingOfBuffer:
		case <-time.After(100 * time.Millisecond):
		case <-shutdownSignal:
			finalizeWriting()
			return
		}

		// write all the logs!
	writeLoop:
		for {
			select {
			case line = <-logBuffer:
				// look-ahead for deduplication
				if lastLine != nil && line.Equal(lastLine) {
					duplicates++
					continue writeLoop
				}
				if lastLine != nil {
					writeLine(lastLine, duplicates)
					duplicates = 0
				}
				lastLine = line
			default:
				if lastLine != nil {
					writeLine(lastLine, duplicates)
					lastLine = nil
					duplicates = 0
				}
				break writeLoop
			}
		}
	}
}

func finalizeWriting() {
	for {
		select {
		case line := <-logBuffer:
			writeLine(line, 0)
		default:
			writeLine(&logLine{
				msg:       "===== LOGGING STOPPED =====",
				level:     CriticalLevel,
				timestamp: time.Now(),
			}, 0)
			return
		}
	}
}

// Equal returns whether the two log lines carry the same message from the same place.
func (ll *logLine) Equal(other *logLine) bool {
	switch {
	case ll.msg != other.msg:
		return false
	case ll.file != other.file:
		return false
	case ll.line != other.line:
		return false
	case ll.level != other.level:
		return false
	}
	return true
}
