package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// Load reads .env files (default ".env") once per process and parses the
// environment into v.
func Load[T any](v *T, files ...string) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		for _, f := range files {
			if _, err := os.Stat(f); err != nil {
				continue
			}
			_ = godotenv.Load(f)
		}
		if len(files) == 0 {
			// The .env file is optional.
			_ = godotenv.Load()
		}
	})

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, files ...string) {
	if err := Load(v, files...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Parse fills a T from vars only, ignoring the process environment.
func Parse[T any](vars map[string]string) (T, error) {
	var v T
	if err := env.ParseWithOptions(&v, env.Options{Environment: vars}); err != nil {
		return v, errors.Join(ErrParsingConfig, err)
	}
	return v, nil
}
