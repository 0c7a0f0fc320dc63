package metrics

import (
	"errors"
	"flag"
	"os"

	"github.com/safing/portrng/modules"
)

var (
	module *modules.Module

	dumpOnExitFlag bool
)

func init() {
	module = modules.Register("metrics", prep, start, stop)

	flag.BoolVar(&dumpOnExitFlag, "metrics", false, "write all metrics to stderr on exit")
}

func prep() error {
	if err := registerInfoMetric(); err != nil && !errors.Is(err, ErrAlreadyRegistered) {
		return err
	}
	return nil
}

func start() error {
	if err := registerHostMetrics(); err != nil && !errors.Is(err, ErrAlreadyRegistered) {
		return err
	}
	return nil
}

func stop() error {
	if dumpOnExitFlag {
		WritePrometheus(os.Stderr, true)
	}
	return nil
}
