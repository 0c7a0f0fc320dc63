package modules

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/tevino/abool"

	"github.com/safing/portrng/log"
)

var (
	shutdownSignal         = make(chan struct{})
	shutdownSignalClosed   = abool.NewBool(false)
	shutdownCompleteSignal = make(chan struct{})
)

// ErrShutdownInProgress is returned by Shutdown if it was already called.
var ErrShutdownInProgress = errors.New("shutdown already initiated")

// ShuttingDown returns a channel read on the global shutdown signal.
func ShuttingDown() <-chan struct{} {
	return shutdownSignal
}

// IsShuttingDown returns whether the global shutdown is in progress.
func IsShuttingDown() bool {
	return shutdownSignalClosed.IsSet()
}

// Shutdown stops all modules in the correct order.
func Shutdown() error {
	// lock mgmt
	if !shutdownSignalClosed.SetToIf(false, true) {
		return ErrShutdownInProgress
	}
	close(shutdownSignal)

	if startComplete.IsSet() {
		log.Warning("modules: starting shutdown...")
	} else {
		log.Warning("modules: aborting, shutting down...")
	}

	err := stopModules()
	if err != nil {
		log.Errorf("modules: shutdown completed with error: %s", err)
		SetExitStatusCode(1)
	} else {
		log.Info("modules: shutdown completed")
	}

	log.Shutdown()
	close(shutdownCompleteSignal)

	return err
}

func stopModules() error {
	modulesLock.RLock()
	defer modulesLock.RUnlock()

	var result *multierror.Error
	for {
		progressed := false
		for _, m := range modules {
			if !m.readyToStop() {
				continue
			}

			m.inTransition.Set()
			if err := m.stop(); err != nil {
				result = multierror.Append(result, fmt.Errorf("failed to stop module %s: %w", m.Name, err))
			}
			m.Stopped.Set()
			m.inTransition.UnSet()
			progressed = true
		}

		if !progressed {
			break
		}
	}

	// stop workers of modules that never started
	for _, m := range modules {
		if !m.Started.IsSet() {
			m.stopFlag.Set()
			m.cancelCtx()
		}
	}

	return result.ErrorOrNil()
}
