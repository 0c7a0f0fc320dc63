package config

import (
	"fmt"
	"sync/atomic"

	"github.com/tevino/abool"
)

// ExpertiseLevel allows to group settings by user expertise.
type ExpertiseLevel uint8

// Expertise Level constants.
const (
	ExpertiseLevelUser      ExpertiseLevel = 0
	ExpertiseLevelExpert    ExpertiseLevel = 1
	ExpertiseLevelDeveloper ExpertiseLevel = 2
)

// ReleaseLevel is used to define the maturity of a
// configuration setting.
type ReleaseLevel uint8

// Release Level constants.
const (
	ReleaseLevelStable       ReleaseLevel = 0
	ReleaseLevelBeta         ReleaseLevel = 1
	ReleaseLevelExperimental ReleaseLevel = 2

	ReleaseLevelNameStable       = "stable"
	ReleaseLevelNameBeta         = "beta"
	ReleaseLevelNameExperimental = "experimental"

	releaseLevelKey = "core/releaseLevel"
)

var (
	releaseLevel           int32
	releaseLevelOption     *Option
	releaseLevelOptionFlag = abool.New()
)

func init() {
	registerReleaseLevelOption()
}

func registerReleaseLevelOption() {
	releaseLevelOption = &Option{
		Name:        "Release Level",
		Key:         releaseLevelKey,
		Description: "The Release Level changes which features are available. Values of options above the active release level are ignored and their defaults are used instead.",

		OptType:        OptTypeString,
		ExpertiseLevel: ExpertiseLevelExpert,
		ReleaseLevel:   ReleaseLevelStable,

		DefaultValue: ReleaseLevelNameStable,

		ExternalOptType: "string list",
		ValidationRegex: fmt.Sprintf("^(%s|%s|%s)$", ReleaseLevelNameStable, ReleaseLevelNameBeta, ReleaseLevelNameExperimental),
	}

	err := Register(releaseLevelOption)
	if err != nil {
		panic(err)
	}

	releaseLevelOptionFlag.Set()
}

func updateReleaseLevel() {
	// check if already registered
	if !releaseLevelOptionFlag.IsSet() {
		return
	}

	releaseLevelOption.Lock()
	value := releaseLevelOption.activeFallbackValue
	if releaseLevelOption.activeDefaultValue != nil {
		value = releaseLevelOption.activeDefaultValue
	}
	if releaseLevelOption.activeValue != nil {
		value = releaseLevelOption.activeValue
	}
	releaseLevelOption.Unlock()

	switch value.stringVal {
	case ReleaseLevelNameBeta:
		atomic.StoreInt32(&releaseLevel, int32(ReleaseLevelBeta))
	case ReleaseLevelNameExperimental:
		atomic.StoreInt32(&releaseLevel, int32(ReleaseLevelExperimental))
	default:
		atomic.StoreInt32(&releaseLevel, int32(ReleaseLevelStable))
	}
}

func getReleaseLevel() ReleaseLevel {
	return ReleaseLevel(atomic.LoadInt32(&releaseLevel))
}
