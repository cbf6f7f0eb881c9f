package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load parses environment variables into the struct pointed to by cfg.
// Fields are mapped with `env` and `envDefault` tags.
func Load(cfg any) error {
	return LoadWithPrefix(cfg, "")
}

// LoadWithPrefix is like Load but prepends prefix to every variable name,
// so a single struct can be reused by several binaries:
//
//	type Config struct {
//	    HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`
//	}
//
//	LoadWithPrefix(&cfg, "GATEWAY_") // reads GATEWAY_HTTP_PORT
func LoadWithPrefix(cfg any, prefix string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: prefix}); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
