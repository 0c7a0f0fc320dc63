package log

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

type lockedBuffer struct {
	sync.Mutex
	buf bytes.Buffer
}

func (lb *lockedBuffer) Write(p []byte) (int, error) {
	lb.Lock()
	defer lb.Unlock()
	return lb.buf.Write(p)
}

func (lb *lockedBuffer) String() string {
	lb.Lock()
	defer lb.Unlock()
	return lb.buf.String()
}

func TestLogging(t *testing.T) {
	out := &lockedBuffer{}
	SetOutput(out)

	err := Start()
	if err != nil {
		t.Errorf("start failed: %s", err)
	}

	// set levels (static random)
	SetLogLevel(WarningLevel)
	SetLogLevel(InfoLevel)
	SetLogLevel(ErrorLevel)
	SetLogLevel(DebugLevel)
	SetLogLevel(CriticalLevel)
	SetLogLevel(TraceLevel)

	// log
	Trace("Trace")
	Debug("Debug")
	Info("Info")
	Warning("Warning")
	Error("Error")
	Critical("Critical")

	// logf
	Tracef("Trace %s", "f")
	Debugf("Debug %s", "f")
	Infof("Info %s", "f")
	Warningf("Warning %s", "f")
	Errorf("Error %s", "f")
	Criticalf("Critical %s", "f")

	// play with levels
	SetLogLevel(CriticalLevel)
	Warning("Suppressed Warning")
	SetLogLevel(TraceLevel)

	// log invalid level
	log(0xFF, "msg")

	// wait for logs to be written
	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(out.String(), "Critical f") && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	written := out.String()
	for _, expected := range []string{"Trace", "Debug f", "Info", "Warning f", "Error", "Critical f"} {
		if !strings.Contains(written, expected) {
			t.Errorf("expected %q to be written", expected)
		}
	}
	if strings.Contains(written, "Suppressed Warning") {
		t.Error("warning should have been suppressed by critical log level")
	}

	// just for show
	UnSetPkgLevels()

	// do not really shut down, we may need logging for other tests
	// Shutdown()
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for _, level := range []Severity{TraceLevel, DebugLevel, InfoLevel, WarningLevel, ErrorLevel, CriticalLevel} {
		if ParseLevel(level.Name()) != level {
			t.Errorf("level %s did not survive parsing", level.Name())
		}
	}
	if ParseLevel("verbose") != 0 {
		t.Error("unknown level should parse to 0")
	}
}

func TestParsePkgLevels(t *testing.T) {
	t.Parallel()

	levels, err := parsePkgLevels("fortuna=trace,rng=debug")
	if err != nil {
		t.Fatal(err)
	}
	if levels["fortuna"] != TraceLevel || levels["rng"] != DebugLevel {
		t.Errorf("unexpected package levels: %v", levels)
	}

	levels, err = parsePkgLevels("fortuna=trace,broken,rng=loud")
	if err == nil {
		t.Error("invalid definitions should be reported")
	}
	if len(levels) != 1 {
		t.Errorf("valid definitions should still be applied, got %v", levels)
	}
}
