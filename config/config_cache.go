package config

import (
	"time"

	"github.com/rahulkamble366/iso/pkg/cache"
)

type cacheConfig struct {
	Path string        `yaml:"path" validate:"required"`
	TTL  time.Duration `yaml:"ttl" validate:"gte=0"`
}

func (c *Config) registerCache(f *configFile) error {
	cfg := f.Cache

	if cfg == nil {
		return nil
	}

	if err := validate.Struct(cfg); err != nil {
		return err
	}

	store, err := cache.Open(cfg.Path, cfg.TTL)

	if err != nil {
		return err
	}

	c.Cache = store

	return nil
}
