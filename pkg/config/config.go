// Package config reads a YAML file into a struct and then lets
// environment variables override individual fields.
package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/nikmy/userstore/pkg/errors"
)

// Load fills v from the YAML file at path, then from environment
// variables named envPrefix + the field's env tag. A missing file
// is fine: v keeps whatever it held before. A .env file in the
// working directory is loaded first if present.
func Load[T any](path string, envPrefix string, v *T) error {
	if v == nil {
		return errors.Fail("load config into nil pointer")
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return errors.WrapFailf(err, "read %s", path)
		default:
			err = yaml.Unmarshal(data, v)
			if err != nil {
				return errors.WrapFailf(err, "parse yaml %s", path)
			}
		}
	}

	_ = godotenv.Load()

	err := env.ParseWithOptions(v, env.Options{Prefix: envPrefix})
	if err != nil {
		return errors.WrapFail(err, "parse environment")
	}

	return nil
}
