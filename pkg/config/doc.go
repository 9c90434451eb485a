// Package config loads typed configuration from environment variables.
//
// Config structs declare their variables with github.com/caarlos0/env tags.
// Load first reads .env files (missing files are ignored, variables already
// set in the process win) and then parses the environment into the struct:
//
//	type Config struct {
//	    Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	    DSN  string `env:"PG_CONN_URL,required"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Nested structs are parsed too, which lets the service compose the Config
// types owned by individual packages. Parse takes an explicit variable map
// instead of the process environment and is what tests use.
package config
