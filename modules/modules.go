package modules

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tevino/abool"

	"github.com/safing/portrng/log"
)

var (
	modulesLock sync.RWMutex
	modules     = make(map[string]*Module)

	// ErrCleanExit is returned by Start() when the program is interrupted before starting. This can happen for example, when using the "--help" flag.
	ErrCleanExit = errors.New("clean exit requested")
)

const moduleStopTimeout = 10 * time.Second

// Module represents a module.
type Module struct {
	Name string

	// lifecycle mgmt
	Prepped      *abool.AtomicBool
	Started      *abool.AtomicBool
	Stopped      *abool.AtomicBool
	inTransition *abool.AtomicBool

	// lifecycle callback functions
	prepFn  func() error
	startFn func() error
	stopFn  func() error

	// shutdown mgmt
	Ctx         context.Context
	cancelCtx   func()
	stopFlag    *abool.AtomicBool
	workerGroup sync.WaitGroup

	// dependency mgmt
	depNames   []string
	depModules []*Module
	depReverse []*Module
}

// IsStopping returns whether the module has started shutting down. In most cases, you should use Stopping instead.
func (m *Module) IsStopping() bool {
	return m.stopFlag.IsSet()
}

// Stopping returns a channel that is closed when the module starts shutting down.
func (m *Module) Stopping() <-chan struct{} {
	return m.Ctx.Done()
}

func (m *Module) stop() error {
	// signal shutdown
	m.stopFlag.Set()
	m.cancelCtx()

	// wait for workers
	done := make(chan struct{})
	go func() {
		m.workerGroup.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(moduleStopTimeout):
		log.Warningf("%s: timed out while waiting for workers to finish", m.Name)
	}

	// call shutdown function
	return m.runCtrlFnWithTimeout("stop module", moduleStopTimeout, m.stopFn)
}

// Register registers a new module. The control functions `prep`, `start` and `stop` are technically optional. `stop` is called _after_ all added module workers finished.
func Register(name string, prep, start, stop func() error, dependencies ...string) *Module {
	newModule := initNewModule(name, prep, start, stop, dependencies...)

	modulesLock.Lock()
	defer modulesLock.Unlock()

	// check for already existing module
	if _, ok := modules[name]; ok {
		panic(fmt.Sprintf("modules: module %s is already registered", name))
	}
	modules[name] = newModule

	return newModule
}

func initNewModule(name string, prep, start, stop func() error, dependencies ...string) *Module {
	ctx, cancelCtx := context.WithCancel(context.Background())

	return &Module{
		Name:         name,
		Prepped:      abool.NewBool(false),
		Started:      abool.NewBool(false),
		Stopped:      abool.NewBool(false),
		inTransition: abool.NewBool(false),
		Ctx:          ctx,
		cancelCtx:    cancelCtx,
		stopFlag:     abool.NewBool(false),
		prepFn:       prep,
		startFn:      start,
		stopFn:       stop,
		depNames:     dependencies,
	}
}

func initDependencies() error {
	for _, m := range modules {
		m.depModules = nil
		m.depReverse = nil
	}

	for _, m := range modules {
		for _, depName := range m.depNames {

			// get dependency
			depModule, ok := modules[depName]
			if !ok {
				return fmt.Errorf("module %s declares dependency \"%s\", but this module has not been registered", m.Name, depName)
			}

			// link together
			m.depModules = append(m.depModules, depModule)
			depModule.depReverse = append(depModule.depReverse, m)
		}
	}

	return nil
}

// readyToPrep returns whether all dependencies are ready for this module to prep.
func (m *Module) readyToPrep() bool {
	if m.inTransition.IsSet() || m.Prepped.IsSet() {
		return false
	}

	for _, dep := range m.depModules {
		if !dep.Prepped.IsSet() {
			return false
		}
	}

	return true
}

// readyToStart returns whether all dependencies are ready for this module to start.
func (m *Module) readyToStart() bool {
	if m.inTransition.IsSet() || m.Started.IsSet() {
		return false
	}

	for _, dep := range m.depModules {
		if !dep.Started.IsSet() {
			return false
		}
	}

	return true
}

// readyToStop returns whether all dependencies are ready for this module to stop.
func (m *Module) readyToStop() bool {
	if !m.Started.IsSet() || m.inTransition.IsSet() || m.Stopped.IsSet() {
		return false
	}

	for _, revDep := range m.depReverse {
		// not ready if a reverse dependency was started, but not yet stopped
		if revDep.Started.IsSet() && !revDep.Stopped.IsSet() {
			return false
		}
	}

	return true
}
