package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/krisalay/lfu-cache/eviction"
	"gopkg.in/yaml.v2"
)

// Write policy names accepted in the config file.
const (
	WriteNone    = "none"
	WriteThrough = "write-through"
	WriteBack    = "write-back"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config defines all configuration options available to be set through the config file.
type Config struct {
	// Capacity is the total number of entries the cache holds.
	Capacity int `yaml:"capacity"`
	// Shards is how many independently locked shards the capacity is split over.
	Shards int `yaml:"shards"`
	// Eviction is LFU or LRU.
	Eviction string `yaml:"eviction"`

	// WritePolicy is one of none, write-through, write-back.
	WritePolicy string `yaml:"write-policy"`
	// WriteBackBuffer is the size of the write-back queue.
	WriteBackBuffer int `yaml:"write-back-buffer"`

	Log      bool   `yaml:"log"`
	LogLevel string `yaml:"log-level,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Capacity:        1024,
		Shards:          4,
		Eviction:        string(eviction.LFU),
		WritePolicy:     WriteBack,
		WriteBackBuffer: 1024,
	}
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", path, err)
	}
	return c, c.Validate()
}

// Save writes c to path in YAML.
func Save(path string, c *Config) error {
	out, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}

// Validate checks that every field has a usable value.
func (c *Config) Validate() error {
	if c.Capacity < 0 {
		return fmt.Errorf("%w: capacity %d is negative", ErrInvalid, c.Capacity)
	}
	if c.Shards < 1 {
		return fmt.Errorf("%w: shards must be at least 1, got %d", ErrInvalid, c.Shards)
	}
	if _, ok := eviction.ParsePolicyType(c.Eviction); !ok {
		return fmt.Errorf("%w: unknown eviction policy %q", ErrInvalid, c.Eviction)
	}
	switch c.WritePolicy {
	case WriteNone, WriteThrough:
	case WriteBack:
		if c.WriteBackBuffer < 0 {
			return fmt.Errorf("%w: write-back-buffer %d is negative", ErrInvalid, c.WriteBackBuffer)
		}
	default:
		return fmt.Errorf("%w: unknown write policy %q", ErrInvalid, c.WritePolicy)
	}
	return nil
}

// Policy returns the parsed eviction policy. Call Validate first.
func (c *Config) Policy() eviction.PolicyType {
	p, _ := eviction.ParsePolicyType(c.Eviction)
	return p
}
