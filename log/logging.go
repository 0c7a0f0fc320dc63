package log

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tevino/abool"
)

// concept
/*
- Logging function:
  - check if package-based levelling enabled
    - if yes, check if level is active on this package
  - check if level is active
  - send data to backend via big buffered channel
- Backend:
  - wait until there is something to write
  - write logs to stderr, stdout is reserved for program output
- Channel overbuffering protection:
  - if buffer is full, trigger write
- Anti-Importing-Loop:
  - everything imports logging
  - logging imports nothing of this repository
*/

// Severity describes a log level.
type Severity uint32

type logLine struct {
	msg       string
	level     Severity
	timestamp time.Time
	file      string
	line      int
}

// Log Levels.
const (
	TraceLevel    Severity = 1
	DebugLevel    Severity = 2
	InfoLevel     Severity = 3
	WarningLevel  Severity = 4
	ErrorLevel    Severity = 5
	CriticalLevel Severity = 6
)

var (
	logBuffer             chan *logLine
	forceEmptyingOfBuffer = make(chan struct{})

	logLevelInt = uint32(InfoLevel)
	logLevel    = &logLevelInt

	pkgLevelsActive = abool.NewBool(false)
	pkgLevels       = make(map[string]Severity)
	pkgLevelsLock   sync.Mutex

	logsWaiting     = make(chan struct{}, 1)
	logsWaitingFlag = abool.NewBool(false)

	shutdownFlag      = abool.NewBool(false)
	shutdownSignal    = make(chan struct{})
	shutdownWaitGroup sync.WaitGroup

	initializing  = abool.NewBool(false)
	started       = abool.NewBool(false)
	startedSignal = make(chan struct{})
)

// SetPkgLevels sets individual log levels for packages. Only effective after Start().
func SetPkgLevels(levels map[string]Severity) {
	pkgLevelsLock.Lock()
	pkgLevels = levels
	pkgLevelsLock.Unlock()
	pkgLevelsActive.Set()
}

// UnSetPkgLevels removes all individual log levels for packages.
func UnSetPkgLevels() {
	pkgLevelsActive.UnSet()
}

// GetLogLevel returns the current log level.
func GetLogLevel() Severity {
	return Severity(atomic.LoadUint32(logLevel))
}

// SetLogLevel sets a new log level. Only effective after Start().
func SetLogLevel(level Severity) {
	atomic.StoreUint32(logLevel, uint32(level))
}

// Name returns the name of the log level.
func (s Severity) Name() string {
	switch s {
	case TraceLevel:
		return "trace"
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarningLevel:
		return "warning"
	case ErrorLevel:
		return "error"
	case CriticalLevel:
		return "critical"
	default:
		return "none"
	}
}

// ParseLevel returns the level severity of a log level name.
func ParseLevel(level string) Severity {
	switch strings.ToLower(level) {
	case "trace":
		return TraceLevel
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warning":
		return WarningLevel
	case "error":
		return ErrorLevel
	case "critical":
		return CriticalLevel
	}
	return 0
}

func init() {
	logBuffer = make(chan *logLine, 1024)
}

// Start starts the logging system. Must be called in order to see logs.
func Start() (err error) {
	if !initializing.SetToIf(false, true) {
		return nil
	}

	// set initial log level
	initialLogLevel := ParseLevel(logLevelFlag)
	if initialLogLevel > 0 {
		SetLogLevel(initialLogLevel)
	} else {
		err = fmt.Errorf("log warning: invalid log level \"%s\", falling back to level info", logLevelFlag)
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
	}

	// get and set package log levels
	if pkgLogLevelsFlag != "" {
		newPkgLevels, pkgErr := parsePkgLevels(pkgLogLevelsFlag)
		if pkgErr != nil {
			fmt.Fprintf(os.Stderr, "log warning: %s\n", pkgErr)
			if err == nil {
				err = pkgErr
			}
		}
		SetPkgLevels(newPkgLevels)
	}

	shutdownWaitGroup.Add(1)
	go writer()

	started.Set()
	close(startedSignal)

	return err
}

func parsePkgLevels(definition string) (map[string]Severity, error) {
	levels := make(map[string]Severity)
	var invalid []string

	for _, pair := range strings.Split(definition, ",") {
		splitted := strings.Split(pair, "=")
		if len(splitted) != 2 {
			invalid = append(invalid, pair)
			continue
		}
		pkgLevel := ParseLevel(splitted[1])
		if pkgLevel == 0 {
			invalid = append(invalid, pair)
			continue
		}
		levels[splitted[0]] = pkgLevel
	}

	if len(invalid) > 0 {
		return levels, errors.New("invalid package log levels: " + strings.Join(invalid, ", "))
	}
	return levels, nil
}

// Shutdown writes remaining log lines and then stops all logging.
func Shutdown() {
	if shutdownFlag.SetToIf(false, true) {
		close(shutdownSignal)
	}
	shutdownWaitGroup.Wait()
}
