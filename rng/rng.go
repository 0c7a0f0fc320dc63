package rng

import (
	"context"
	"crypto/aes"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aead/serpent"
	"github.com/tevino/abool"

	"github.com/safing/portrng/crypto/hash"
	"github.com/safing/portrng/fortuna"
	"github.com/safing/portrng/fortuna/entropy"
	"github.com/safing/portrng/log"
	"github.com/safing/portrng/modules"
)

var (
	module *modules.Module

	rng     *fortuna.Fortuna
	rngLock sync.RWMutex

	feeder = entropy.NewFeeder()

	tickFeederStarted = abool.New()

	// ErrNotStarted is returned when random data is requested before the module started.
	ErrNotStarted = errors.New("random: not started")
)

func init() {
	module = modules.Register("random", prep, start, stop, "config", "metrics")
}

func prep() error {
	return registerConfig()
}

func cipherFunc(name string) (fortuna.CipherFunc, error) {
	switch name {
	case "aes":
		return aes.NewCipher, nil
	case "serpent":
		return serpent.NewCipher, nil
	default:
		return nil, fmt.Errorf("unknown or unsupported cipher: %s", name)
	}
}

func start() error {
	rngLock.Lock()
	defer rngLock.Unlock()

	if rng != nil {
		return nil
	}

	opts, sources, err := instanceConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(module.Ctx, time.Duration(startupTimeout())*time.Second)
	defer cancel()

	startedAt := time.Now()
	instance, err := fortuna.CreateInstance(ctx, opts, sources...)
	if err != nil {
		return fmt.Errorf("random: failed to collect initial entropy: %w", err)
	}
	startupHistogram.UpdateDuration(startedAt)
	log.Infof("random: ready after %s with %d entropy sources", time.Since(startedAt), len(sources))

	rng = instance
	if err := registerMetrics(); err != nil {
		return err
	}

	if tickFeederStarted.SetToIf(false, true) {
		module.StartServiceWorker("tick feeder", 0, tickFeeder)
	}
	return nil
}

func instanceConfig() (*fortuna.Options, []fortuna.EntropySource, error) {
	newCipher, err := cipherFunc(cipherName())
	if err != nil {
		return nil, nil, err
	}
	poolHash, ok := hash.FromName(poolHashName())
	if !ok {
		return nil, nil, fmt.Errorf("unknown pool hash: %s", poolHashName())
	}

	var sources []fortuna.EntropySource
	for _, name := range sourceNames() {
		source, ok := entropy.ByName(name)
		if !ok {
			log.Warningf("random: ignoring unknown entropy source %s", name)
			continue
		}
		sources = append(sources, source)
	}
	sources = append(sources, feeder)

	return &fortuna.Options{
		NewCipher: newCipher,
		PoolHash:  poolHash,
		Workers:   int(sourceWorkers()),
	}, sources, nil
}

func stop() error {
	rngLock.Lock()
	defer rngLock.Unlock()

	if rng == nil {
		return nil
	}

	// a later start collects entropy for a fresh instance
	err := rng.Shutdown(time.Duration(shutdownTimeout()) * time.Second)
	rng = nil
	return err
}

// Instance returns the global generator, or nil before the module started.
func Instance() *fortuna.Fortuna {
	rngLock.RLock()
	defer rngLock.RUnlock()

	return rng
}
