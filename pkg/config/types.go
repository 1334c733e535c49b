package config

import (
	"time"
)

type CacheConfig struct {
	Directory string `json:"directory"`
	Redis     string `json:"redis"`
	// Seconds
	TTL      int  `json:"ttl"`
	Compress bool `json:"compress"`
}

func (c CacheConfig) Enabled() bool {
	return c.Directory != "" || c.Redis != ""
}

func (c CacheConfig) Expiry() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

type Config struct {
	Output string      `json:"output"`
	Games  []string    `json:"games"`
	Cache  CacheConfig `json:"cache"`
}
