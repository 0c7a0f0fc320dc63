package modules

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tevino/abool"

	"github.com/safing/portrng/log"
)

const moduleStartTimeout = 30 * time.Second

var (
	startComplete       = abool.NewBool(false)
	startCompleteSignal = make(chan struct{})
)

// StartCompleted returns whether starting has completed.
func StartCompleted() bool {
	return startComplete.IsSet()
}

// WaitForStartCompletion returns as soon as starting has completed.
func WaitForStartCompletion() <-chan struct{} {
	return startCompleteSignal
}

// Start starts all modules in the correct order. In case of an error, it will automatically shutdown again.
func Start() error {
	modulesLock.RLock()
	defer modulesLock.RUnlock()

	// inter-link modules
	err := initDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: failed to initialize modules: %s\n", err)
		return err
	}

	// parse flags
	err = parseFlags()
	if err != nil {
		if !errors.Is(err, ErrCleanExit) {
			fmt.Fprintf(os.Stderr, "CRITICAL ERROR: failed to parse flags: %s\n", err)
		}
		return err
	}

	// prep modules
	err = runInDependencyOrder("prep", func(m *Module) bool { return m.readyToPrep() }, func(m *Module) error {
		err := m.runCtrlFnWithTimeout("prep module", moduleStartTimeout, m.prepFn)
		if err == nil {
			m.Prepped.Set()
		}
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrCleanExit) {
			fmt.Fprintf(os.Stderr, "CRITICAL ERROR: %s\n", err)
		}
		return err
	}

	// start logging
	err = log.Start()
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: failed to start logging: %s\n", err)
		return err
	}

	// start modules
	log.Info("modules: initiating...")
	err = runInDependencyOrder("start", func(m *Module) bool { return m.readyToStart() }, func(m *Module) error {
		err := m.runCtrlFnWithTimeout("start module", moduleStartTimeout, m.startFn)
		if err == nil {
			m.Started.Set()
		}
		return err
	})
	if err != nil {
		log.Critical(err.Error())
		return err
	}

	// complete startup
	log.Infof("modules: started %d modules", len(modules))
	if startComplete.SetToIf(false, true) {
		close(startCompleteSignal)
	}

	return nil
}

// runInDependencyOrder executes the given action on all modules that are
// ready, until no more modules are ready. Modules that are not done after
// that are part of a dependency loop.
func runInDependencyOrder(stage string, ready func(*Module) bool, action func(*Module) error) error {
	done := 0
	for {
		progressed := false
		for _, m := range modules {
			if !ready(m) {
				continue
			}

			m.inTransition.Set()
			err := action(m)
			m.inTransition.UnSet()
			if err != nil {
				if errors.Is(err, ErrCleanExit) {
					return ErrCleanExit
				}
				return fmt.Errorf("failed to %s module %s: %w", stage, m.Name, err)
			}

			done++
			progressed = true
		}

		switch {
		case done == len(modules):
			return nil
		case !progressed:
			return fmt.Errorf("failed to %s modules: dependency loop detected (%d of %d modules done)", stage, done, len(modules))
		}
	}
}
