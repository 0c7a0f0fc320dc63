package config

import (
	"errors"
	"flag"
	"io/fs"

	"github.com/safing/portrng/log"
	"github.com/safing/portrng/modules"
)

var (
	module *modules.Module

	configFileFlag string
)

func init() {
	module = modules.Register("config", prep, start, nil)

	flag.StringVar(&configFileFlag, "config", "", "load configuration from this json or yaml file")
}

func prep() error {
	if configFileFlag != "" {
		SetConfigFile(configFileFlag)
	}
	return nil
}

func start() error {
	err := loadConfig()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		log.Infof("config: no config file at %s, using defaults", getConfigFile())
		return nil
	default:
		return err
	}
}
