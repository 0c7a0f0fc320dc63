package info

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

const unknownName = "[NAME]"

var (
	name        = unknownName
	version     = "dev build"
	buildSource = "[source unknown]"
	buildTime   = "[build time unknown]"
	license     = "[license unknown]"

	info     *Info
	loadInfo sync.Once
)

// Info holds the programs meta information.
type Info struct {
	Name    string
	Version string
	License string

	Source    string
	BuildTime string

	Commit     string
	CommitTime string
	Dirty      bool

	GoVersion string
}

// Set sets meta information via the main routine. This should be the first thing your program calls.
func Set(setName string, setVersion string, setLicenseName string) {
	name = setName
	license = setLicenseName

	if setVersion != "" {
		version = setVersion
	}
}

// GetInfo returns all the meta information about the program.
func GetInfo() *Info {
	loadInfo.Do(func() {
		info = &Info{
			Name:       name,
			Version:    version,
			License:    license,
			Source:     buildSource,
			BuildTime:  buildTime,
			Commit:     "[commit unknown]",
			CommitTime: "[commit time unknown]",
			GoVersion:  runtime.Version(),
		}

		buildInfo, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		if buildInfo.Main.Path != "" && info.Source == "[source unknown]" {
			info.Source = buildInfo.Main.Path
		}
		for _, setting := range buildInfo.Settings {
			switch setting.Key {
			case "vcs.revision":
				info.Commit = setting.Value
			case "vcs.time":
				info.CommitTime = setting.Value
			case "vcs.modified":
				info.Dirty = setting.Value == "true"
			}
		}
	})

	return info
}

// Version returns the short version string.
func Version() string {
	if GetInfo().Dirty {
		return version + "*"
	}
	return version
}

// FullVersion returns the full and detailed version string.
func FullVersion() string {
	info := GetInfo()
	builder := new(strings.Builder)

	// Name and version.
	fmt.Fprintf(builder, "%s %s\n", info.Name, Version())

	// Build info.
	fmt.Fprintf(builder, "\nbuilt with %s (%s) %s/%s\n", info.GoVersion, runtime.Compiler, runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(builder, "  at %s\n", info.BuildTime)

	// Commit info.
	fmt.Fprintf(builder, "\ncommit %s\n", info.Commit)
	fmt.Fprintf(builder, "  at %s\n", info.CommitTime)
	fmt.Fprintf(builder, "  from %s\n", info.Source)

	fmt.Fprintf(builder, "\nLicensed under the %s license.", info.License)

	return builder.String()
}

// CheckVersion checks if the metadata is ok.
func CheckVersion() error {
	switch {
	case strings.HasSuffix(os.Args[0], ".test"):
		return nil // testing on linux/darwin
	case strings.HasSuffix(os.Args[0], ".test.exe"):
		return nil // testing on windows
	case name == unknownName || license == "[license unknown]":
		return errors.New("must call info.Set() before starting modules")
	}

	return nil
}
