package run

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/safing/portrng/log"
	"github.com/safing/portrng/modules"
)

var (
	printStackOnExit bool

	// ErrInterrupted is returned by the main function context when the program received a signal.
	ErrInterrupted = errors.New("interrupted by signal")

	forcedShutdownTimeout = 3 * time.Minute
)

func init() {
	flag.BoolVar(&printStackOnExit, "print-stack-on-exit", false, "prints the stack before of shutting down")
}

// Run starts all modules, runs fn until it returns or the program is interrupted, and shuts down all modules again.
// fn must return when its context is canceled. The returned exit code should be passed to os.Exit.
func Run(fn func(ctx context.Context) error) int {
	// Start
	err := modules.Start()
	if err != nil {
		if errors.Is(err, modules.ErrCleanExit) {
			return 0
		}

		if printStackOnExit {
			printStackTo(os.Stderr)
		}

		modules.SetExitStatusCode(1)
		_ = modules.Shutdown()
		return modules.GetExitStatusCode()
	}

	signalCh := make(chan os.Signal, 1)
	signal.Notify(
		signalCh,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer signal.Stop(signalCh)

	mainCtx, cancelMain := context.WithCancel(context.Background())
	defer cancelMain()
	group, ctx := errgroup.WithContext(mainCtx)
	group.Go(func() error {
		// the main function finishing ends the program
		defer cancelMain()

		if fn == nil {
			<-ctx.Done()
			return nil
		}
		return fn(ctx)
	})
	group.Go(func() error {
		select {
		case sig := <-signalCh:
			fmt.Fprintf(os.Stderr, " <%s>\n", sig)
			log.Warning("main: program was interrupted, shutting down.")
			go forceExitOnRepeatedSignals(signalCh)
			return ErrInterrupted
		case <-modules.ShuttingDown():
			return modules.ErrShutdownInProgress
		case <-ctx.Done():
			return nil
		}
	})

	// wait for the main function, an interrupt or a module initiated shutdown
	err = group.Wait()
	switch {
	case err == nil,
		errors.Is(err, ErrInterrupted),
		errors.Is(err, modules.ErrShutdownInProgress),
		errors.Is(err, context.Canceled):
	default:
		log.Errorf("main: %s", err)
		modules.SetExitStatusCode(1)
	}

	if printStackOnExit {
		printStackTo(os.Stderr)
	}

	go func() {
		time.Sleep(forcedShutdownTimeout)
		fmt.Fprintln(os.Stderr, "===== TAKING TOO LONG FOR SHUTDOWN =====")
		printStackTo(os.Stderr)
		os.Exit(1)
	}()

	_ = modules.Shutdown()
	return modules.GetExitStatusCode()
}

func forceExitOnRepeatedSignals(signalCh chan os.Signal) {
	forceCnt := 5
	for {
		<-signalCh
		forceCnt--
		if forceCnt > 0 {
			fmt.Fprintf(os.Stderr, " <INTERRUPT> again, but already shutting down. %d more to force.\n", forceCnt)
		} else {
			fmt.Fprintln(os.Stderr, "===== FORCED EXIT =====")
			printStackTo(os.Stderr)
			os.Exit(1)
		}
	}
}

func printStackTo(writer io.Writer) {
	fmt.Fprintln(writer, "=== PRINTING TRACES ===")
	fmt.Fprintln(writer, "=== GOROUTINES ===")
	_ = pprof.Lookup("goroutine").WriteTo(writer, 1)
	fmt.Fprintln(writer, "=== BLOCKING ===")
	_ = pprof.Lookup("block").WriteTo(writer, 1)
	fmt.Fprintln(writer, "=== MUTEXES ===")
	_ = pprof.Lookup("mutex").WriteTo(writer, 1)
	fmt.Fprintln(writer, "=== END TRACES ===")
}
