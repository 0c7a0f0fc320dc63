package config

import (
	"regexp"
	"sync"
)

// OptionType defines the value type of an option.
type OptionType uint8

// Various attribute options. Use ExternalOptType for extended types in the frontend.
const (
	optTypeAny         OptionType = 0
	OptTypeString      OptionType = 1
	OptTypeStringArray OptionType = 2
	OptTypeInt         OptionType = 3
	OptTypeBool        OptionType = 4
)

func getTypeName(t OptionType) string {
	switch t {
	case optTypeAny:
		return "any"
	case OptTypeString:
		return "string"
	case OptTypeStringArray:
		return "[]string"
	case OptTypeInt:
		return "int"
	case OptTypeBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Option describes a configuration option.
type Option struct {
	sync.Mutex

	// Name holds the name of the configuration options.
	// It should be human readable and is mainly used for
	// presentation purposes.
	// Name is considered immutable after the option has
	// been created.
	Name string
	// Key holds the database path for the option. It should
	// follow the path format `category/sub/key`.
	// Key is considered immutable after the option has
	// been created.
	Key string
	// Description holds a human readable description of the
	// option and what is does.
	Description string
	// OptType defines the type of the option.
	OptType OptionType
	// ExpertiseLevel can be used to set the required expertise
	// level for the option to be displayed to a user.
	ExpertiseLevel ExpertiseLevel
	// ReleaseLevel is used to mark the stability of the option.
	// Values of options above the current release level are ignored.
	ReleaseLevel ReleaseLevel
	// RequiresRestart should be set to true if a modification of
	// the options value requires a restart of the whole application
	// to take effect.
	RequiresRestart bool
	// DefaultValue holds the default value of the option. Note that
	// this value can be overwritten during runtime (see activeDefaultValue
	// and activeFallbackValue).
	DefaultValue interface{}
	// ExternalOptType may be set to hint external user interfaces
	// about the type of option.
	ExternalOptType string
	// ValidationRegex may contain a regular expression used to validate
	// the value of option. If the option type is set to OptTypeStringArray
	// the validation regex is applied to all entries of the string slice.
	ValidationRegex string

	compiledRegex *regexp.Regexp

	// activeValue holds the value set by the user or loaded from the config file.
	activeValue *valueCache
	// activeDefaultValue holds the value set by SetDefaultConfigOption.
	activeDefaultValue *valueCache
	// activeFallbackValue holds the validated DefaultValue.
	activeFallbackValue *valueCache
}

// IsSetByUser returns whether the option has been set by the user.
func (option *Option) IsSetByUser() bool {
	option.Lock()
	defer option.Unlock()

	return option.activeValue != nil
}

// UserValue returns the value set by the user or nil if the value has not
// been changed from the default.
func (option *Option) UserValue() interface{} {
	option.Lock()
	defer option.Unlock()

	if option.activeValue == nil {
		return nil
	}
	return option.activeValue.getData(option)
}
