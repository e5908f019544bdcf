package kv

import (
	"time"

	"github.com/nikmy/userstore/pkg/errors"
)

type Kind string

const (
	KindMemory Kind = "memory"
	KindFile   Kind = "file"
	KindMongo  Kind = "mongo"
	KindRedis  Kind = "redis"
)

type Config struct {
	Kind Kind `yaml:"kind" env:"KIND"`

	File struct {
		Dir string `yaml:"dir" env:"DIR"`
	} `yaml:"file" envPrefix:"FILE_"`

	Mongo MongoConfig `yaml:"mongo" envPrefix:"MONGO_"`
	Redis RedisConfig `yaml:"redis" envPrefix:"REDIS_"`
}

type MongoConfig struct {
	URL     string        `yaml:"url" env:"URL"`
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`

	Database   string `yaml:"database" env:"DATABASE"`
	Collection string `yaml:"collection" env:"COLLECTION"`

	Auth struct {
		Username string `yaml:"username" env:"USERNAME"`
		Password string `yaml:"password" env:"PASSWORD"`
	} `yaml:"auth" envPrefix:"AUTH_"`

	Pool struct {
		MinSize uint64 `yaml:"minSize" env:"MIN_SIZE"`
		MaxSize uint64 `yaml:"maxSize" env:"MAX_SIZE"`
	} `yaml:"pool" envPrefix:"POOL_"`
}

type RedisConfig struct {
	URL            string        `yaml:"url" env:"URL"`
	KeyPrefix      string        `yaml:"keyPrefix" env:"KEY_PREFIX"`
	RetryAttempts  int           `yaml:"retryAttempts" env:"RETRY_ATTEMPTS"`
	RetryInterval  time.Duration `yaml:"retryInterval" env:"RETRY_INTERVAL"`
	ConnectTimeout time.Duration `yaml:"connectTimeout" env:"CONNECT_TIMEOUT"`
}

func DefaultConfig() Config {
	var cfg Config
	cfg.setDefaults()
	return cfg
}

func (c *Config) validate() error {
	switch c.Kind {
	case KindMemory, KindFile, KindMongo, KindRedis:
		return nil
	default:
		return errors.Errorf("unknown storage kind %q", c.Kind)
	}
}

// setDefaults fills in everything left empty.
func (c *Config) setDefaults() {
	if c.Kind == "" {
		c.Kind = KindFile
	}
	if c.File.Dir == "" {
		c.File.Dir = "data"
	}

	if c.Mongo.URL == "" {
		c.Mongo.URL = "mongodb://localhost:27017"
	}
	if c.Mongo.Timeout <= 0 {
		c.Mongo.Timeout = 5 * time.Second
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "userstore"
	}
	if c.Mongo.Collection == "" {
		c.Mongo.Collection = "blobs"
	}

	if c.Redis.URL == "" {
		c.Redis.URL = "redis://localhost:6379/0"
	}
	if c.Redis.RetryAttempts < 1 {
		c.Redis.RetryAttempts = 3
	}
	if c.Redis.RetryInterval <= 0 {
		c.Redis.RetryInterval = time.Second
	}
	if c.Redis.ConnectTimeout <= 0 {
		c.Redis.ConnectTimeout = 10 * time.Second
	}
}
