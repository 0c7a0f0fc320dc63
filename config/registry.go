package config

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

var (
	optionsLock sync.RWMutex
	options     = make(map[string]*Option)
)

// ForEachOption calls fn for each defined option. If fn returns
// and error the iteration is stopped and the error is returned.
// Note that ForEachOption does not guarantee a stable order of
// iteration between multiple calles. ForEachOption does NOT lock
// opt when calling fn.
func ForEachOption(fn func(opt *Option) error) error {
	optionsLock.RLock()
	defer optionsLock.RUnlock()

	for _, opt := range options {
		if err := fn(opt); err != nil {
			return err
		}
	}
	return nil
}

// ExportOptions exports the registered options sorted by key.
func ExportOptions() []*Option {
	optionsLock.RLock()
	defer optionsLock.RUnlock()

	exported := make([]*Option, 0, len(options))
	for _, opt := range options {
		exported = append(exported, opt)
	}
	sort.Slice(exported, func(i, j int) bool {
		return exported[i].Key < exported[j].Key
	})
	return exported
}

// GetOption returns the option with name or an error
// if the option does not exist. The caller should lock
// the returned option itself for further processing.
func GetOption(name string) (*Option, error) {
	optionsLock.RLock()
	defer optionsLock.RUnlock()

	opt, ok := options[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}
	return opt, nil
}

// Register registers a new configuration option.
func Register(option *Option) error {
	if option.Name == "" {
		return newInvalidOptionError("name missing", nil)
	}
	if option.Key == "" {
		return newInvalidOptionError("key missing", nil)
	}
	if strings.HasPrefix(option.Key, "/") || strings.HasSuffix(option.Key, "/") {
		return newInvalidOptionError("key must not start or end with a slash", nil)
	}
	if option.Description == "" {
		return newInvalidOptionError("description missing", nil)
	}
	if option.OptType == 0 {
		return newInvalidOptionError("type missing", nil)
	}

	var err error
	if option.ValidationRegex != "" {
		option.compiledRegex, err = regexp.Compile(option.ValidationRegex)
		if err != nil {
			return newInvalidOptionError("validation regex failed to compile", err)
		}
	}

	var vErr *InvalidValueError
	option.activeFallbackValue, vErr = validateValue(option, option.DefaultValue)
	if vErr != nil {
		return newInvalidOptionError("default value failed validation", vErr)
	}

	optionsLock.Lock()
	defer optionsLock.Unlock()
	options[option.Key] = option

	return nil
}
