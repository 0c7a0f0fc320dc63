package config

import (
	"fmt"
	"sync"

	"github.com/tevino/abool"
)

var (
	validityFlag     = abool.NewBool(true)
	validityFlagLock sync.RWMutex
)

// getValidityFlag returns a flag that signifies if the configuration has been changed. This flag must not be changed, only read.
func getValidityFlag() *abool.AtomicBool {
	validityFlagLock.RLock()
	defer validityFlagLock.RUnlock()
	return validityFlag
}

// signalChanges marks the configs validtityFlag as dirty.
func signalChanges() {
	updateReleaseLevel()

	// reset validity flag
	validityFlagLock.Lock()
	validityFlag.SetTo(false)
	validityFlag = abool.NewBool(true)
	validityFlagLock.Unlock()
}

// setConfig sets the (prioritized) user defined config.
func setConfig(newValues map[string]interface{}) error {
	return replaceValues(newValues, func(option *Option, value *valueCache) {
		option.activeValue = value
	})
}

// SetDefaultConfig sets the (fallback) default config.
func SetDefaultConfig(newValues map[string]interface{}) error {
	return replaceValues(newValues, func(option *Option, value *valueCache) {
		option.activeDefaultValue = value
	})
}

func replaceValues(newValues map[string]interface{}, apply func(*Option, *valueCache)) error {
	var firstErr error
	var errCnt int

	// RLock the options because we are not adding or removing
	// options from the registration but rather only update the
	// options value which is guarded by the option's lock itself
	optionsLock.RLock()
	for key, option := range options {
		newValue, ok := newValues[key]

		option.Lock()
		apply(option, nil)
		if ok {
			vc, err := validateValue(option, newValue)
			if err == nil {
				apply(option, vc)
			} else {
				errCnt++
				if firstErr == nil {
					firstErr = err
				}
			}
		}
		option.Unlock()
	}
	optionsLock.RUnlock()

	signalChanges()

	if firstErr != nil {
		if errCnt > 1 {
			return fmt.Errorf("encountered %d errors, first was: %w", errCnt, firstErr)
		}
		return firstErr
	}

	return nil
}

// SetConfigOption sets a single value in the (prioritized) user defined config.
func SetConfigOption(key string, value interface{}) error {
	err := setOptionValue(key, value, func(option *Option, value *valueCache) {
		option.activeValue = value
	})
	if err != nil {
		return err
	}

	return saveConfig()
}

// SetDefaultConfigOption sets a single value in the (fallback) default config.
func SetDefaultConfigOption(key string, value interface{}) error {
	// Do not save the configuration, as it only saves the active values, not the
	// active default value.
	return setOptionValue(key, value, func(option *Option, value *valueCache) {
		option.activeDefaultValue = value
	})
}

func setOptionValue(key string, value interface{}, apply func(*Option, *valueCache)) error {
	option, err := GetOption(key)
	if err != nil {
		return err
	}

	option.Lock()
	if value == nil {
		apply(option, nil)
	} else {
		vc, vErr := validateValue(option, value)
		if vErr != nil {
			option.Unlock()
			return vErr
		}
		apply(option, vc)
	}
	option.Unlock()

	// finalize change, activate triggers
	signalChanges()
	return nil
}
