package main

import (
	"github.com/nikmy/userstore/internal/kv"
	"github.com/nikmy/userstore/pkg/config"
	"github.com/nikmy/userstore/pkg/environment"
	"github.com/nikmy/userstore/pkg/errors"
)

const envPrefix = "USERSTORE_"

type Config struct {
	Environment environment.Env `yaml:"environment" env:"ENV"`
	LogLevel    string          `yaml:"logLevel" env:"LOG_LEVEL"`

	Storage  kv.Config `yaml:"storage" envPrefix:"STORAGE_"`
	UsersKey string    `yaml:"usersKey" env:"USERS_KEY"`
}

func loadConfig(path string, env string) (*Config, error) {
	cfg := Config{
		Environment: environment.Development,
		Storage:     kv.DefaultConfig(),
	}

	err := config.Load(path, envPrefix, &cfg)
	if err != nil {
		return nil, errors.WrapFail(err, "load config")
	}

	if env != "" {
		cfg.Environment = environment.FromString(env)
	}

	return &cfg, nil
}
