package vocalguard

import (
	"time"

	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/detect"
	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/profile"
)

type Config struct {
	Profiles      *profile.Registry
	ProfilePath   string
	Logger        Logger
	Detectors     []detect.Detector
	MaxConcurrent int
	Timeout       time.Duration
}

type Option func(*Config)

// WithProfiles supplies an already-built profile registry.
func WithProfiles(reg *profile.Registry) Option {
	return func(c *Config) {
		c.Profiles = reg
	}
}

// WithProfilePath loads the profile registry from a YAML file instead of the
// embedded defaults.
func WithProfilePath(path string) Option {
	return func(c *Config) {
		c.ProfilePath = path
	}
}

func WithLogger(log Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

// WithDetectors replaces the default detector set.
func WithDetectors(detectors ...detect.Detector) Option {
	return func(c *Config) {
		c.Detectors = detectors
	}
}

// WithMaxConcurrent bounds how many requests may hold decoded audio at once.
func WithMaxConcurrent(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.MaxConcurrent = n
		}
	}
}

// WithTimeout sets the per-request deadline over the full decode→explain
// chain.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.Timeout = d
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		MaxConcurrent: 4,
		Timeout:       15 * time.Second,
	}
}
