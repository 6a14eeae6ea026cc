// Package config loads run settings and the declarative pipeline-wiring
// file that names which sources, transforms, and sinks one plan.Plug
// pass should use.
package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ErrUnknownScope is returned when the pipeline DSL names a scope other
// than version/package/category/repository.
var ErrUnknownScope = errors.New("config: unknown scope name")

// Settings holds the small scalar knobs an .env-style override file
// controls: output destination, reporter kind, and strict mode.
type Settings struct {
	// Dest is the output destination; "" or "-" means stdout.
	Dest string
	// ReporterKind selects among "str", "fancy", "xml"; "" defaults to "str".
	ReporterKind string
	// Strict turns plan.Plug's "nothing to do" outcomes into errors.
	Strict bool
}

const (
	envDest         = "PKGAUDIT_DEST"
	envReporterKind = "PKGAUDIT_REPORTER"
	envStrict       = "PKGAUDIT_STRICT"
)

// Load reads envPath (if it exists) into the process environment with
// godotenv, then builds Settings from PKGAUDIT_DEST / PKGAUDIT_REPORTER /
// PKGAUDIT_STRICT. A missing envPath is not an error — env vars already
// set in the process environment still apply.
func Load(envPath string) (*Settings, error) {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, err
		}
	}

	strict, _ := strconv.ParseBool(os.Getenv(envStrict))
	return &Settings{
		Dest:         os.Getenv(envDest),
		ReporterKind: os.Getenv(envReporterKind),
		Strict:       strict,
	}, nil
}
