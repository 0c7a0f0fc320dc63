package rng

import (
	"regexp"
	"strings"

	"github.com/safing/portrng/config"
	"github.com/safing/portrng/crypto/hash"
	"github.com/safing/portrng/fortuna"
	"github.com/safing/portrng/fortuna/entropy"
)

// Configuration Keys.
const (
	CfgOptionCipherKey          = "random/rng_cipher"
	CfgOptionPoolHashKey        = "random/pool_hash"
	CfgOptionSourcesKey         = "random/sources"
	CfgOptionSourceWorkersKey   = "random/source_workers"
	CfgOptionStartupTimeoutKey  = "random/startup_timeout"
	CfgOptionShutdownTimeoutKey = "random/shutdown_timeout"
)

var (
	cipherName      config.StringOption
	poolHashName    config.StringOption
	sourceNames     config.StringArrayOption
	sourceWorkers   config.IntOption
	startupTimeout  config.IntOption
	shutdownTimeout config.IntOption
)

func anyOf(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, value := range values {
		quoted = append(quoted, regexp.QuoteMeta(value))
	}
	return "^(" + strings.Join(quoted, "|") + ")$"
}

func registerConfig() error {
	err := config.Register(&config.Option{
		Name:            "RNG Cipher",
		Key:             CfgOptionCipherKey,
		Description:     "Block cipher used by the Fortuna generator.",
		OptType:         config.OptTypeString,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		ReleaseLevel:    config.ReleaseLevelStable,
		RequiresRestart: true,
		DefaultValue:    "aes",
		ValidationRegex: "^(aes|serpent)$",
	})
	if err != nil {
		return err
	}
	cipherName = config.GetAsString(CfgOptionCipherKey, "aes")

	err = config.Register(&config.Option{
		Name:            "Pool Hash",
		Key:             CfgOptionPoolHashKey,
		Description:     "Hash algorithm used by the entropy pools.",
		OptType:         config.OptTypeString,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		ReleaseLevel:    config.ReleaseLevelExperimental,
		RequiresRestart: true,
		DefaultValue:    hash.SHA2_256.Name(),
		ValidationRegex: anyOf(hash.Names()),
	})
	if err != nil {
		return err
	}
	poolHashName = config.GetAsString(CfgOptionPoolHashKey, hash.SHA2_256.Name())

	err = config.Register(&config.Option{
		Name:            "Entropy Sources",
		Key:             CfgOptionSourcesKey,
		Description:     "Entropy sources feeding the pools. Data supplied by other components is always used.",
		OptType:         config.OptTypeStringArray,
		ExpertiseLevel:  config.ExpertiseLevelExpert,
		ReleaseLevel:    config.ReleaseLevelStable,
		RequiresRestart: true,
		DefaultValue:    entropy.DefaultNames,
		ValidationRegex: anyOf(entropy.DefaultNames),
	})
	if err != nil {
		return err
	}
	sourceNames = config.GetAsStringArray(CfgOptionSourcesKey, entropy.DefaultNames)

	err = config.Register(&config.Option{
		Name:            "Entropy Source Workers",
		Key:             CfgOptionSourceWorkersKey,
		Description:     "Maximum number of entropy sources sampled at the same time.",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		ReleaseLevel:    config.ReleaseLevelStable,
		RequiresRestart: true,
		DefaultValue:    fortuna.DefaultWorkers,
		ValidationRegex: "^[1-9][0-9]?$",
	})
	if err != nil {
		return err
	}
	sourceWorkers = config.Concurrent.GetAsInt(CfgOptionSourceWorkersKey, fortuna.DefaultWorkers)

	err = config.Register(&config.Option{
		Name:            "Startup Timeout",
		Key:             CfgOptionStartupTimeoutKey,
		Description:     "Seconds to wait for enough entropy before the first reseed.",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		ReleaseLevel:    config.ReleaseLevelStable,
		DefaultValue:    25,
		ValidationRegex: "^[1-9][0-9]{0,2}$",
	})
	if err != nil {
		return err
	}
	startupTimeout = config.Concurrent.GetAsInt(CfgOptionStartupTimeoutKey, 25)

	err = config.Register(&config.Option{
		Name:            "Shutdown Timeout",
		Key:             CfgOptionShutdownTimeoutKey,
		Description:     "Seconds to wait for entropy sources to stop on shutdown.",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		ReleaseLevel:    config.ReleaseLevelStable,
		DefaultValue:    5,
		ValidationRegex: "^[1-9][0-9]{0,2}$",
	})
	if err != nil {
		return err
	}
	shutdownTimeout = config.Concurrent.GetAsInt(CfgOptionShutdownTimeoutKey, 5)

	return nil
}
