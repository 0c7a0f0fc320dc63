package info

import (
	"flag"
	"fmt"

	"github.com/safing/portrng/modules"
)

var showVersion bool

func init() {
	modules.Register("info", prep, nil, nil)

	flag.BoolVar(&showVersion, "version", false, "show version and exit")
}

func prep() error {
	if err := CheckVersion(); err != nil {
		return err
	}

	if showVersion {
		fmt.Println(FullVersion())
		return modules.ErrCleanExit
	}
	return nil
}
