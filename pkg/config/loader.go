package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// Option configures a single Load call.
type Option func(*loadOptions)

type loadOptions struct {
	prefix   string
	envFiles []string
}

// WithPrefix prepends prefix to every env tag, e.g. "APP_" turns HTTP_ADDR
// into APP_HTTP_ADDR.
func WithPrefix(prefix string) Option {
	return func(o *loadOptions) { o.prefix = prefix }
}

// WithEnvFiles loads the given .env files before parsing. Unlike the default
// .env file, a missing explicit file is an error. Variables already present
// in the environment are not overridden.
func WithEnvFiles(paths ...string) Option {
	return func(o *loadOptions) { o.envFiles = append(o.envFiles, paths...) }
}

// Load fills v from environment variables according to its env tags.
// The .env file in the working directory is loaded once per process if it
// exists.
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T, opts ...Option) error {
	defaultEnvLoaded.Do(func() {
		// the default .env file is optional
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if len(o.envFiles) > 0 {
		if err := godotenv.Load(o.envFiles...); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	}

	if err := env.ParseWithOptions(v, env.Options{Prefix: o.prefix}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
