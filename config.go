// Processor configuration.
//
// Config follows the zero-value-means-default convention: a Config{} yields
// a working processor. The YAML form lets a host application keep these
// settings next to the rest of its configuration; the logger is never read
// from YAML and must be supplied in code.
package flight

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"
)

// DefaultMaxDepth bounds how many pointers deep resolution follows a single
// chain.
const DefaultMaxDepth = 64

// DefaultHeaderWindow is how far into a split remainder the first ':' may
// sit for the remainder to be treated as carrying an embedded row header.
// This is a heuristic inherited from observed streams, not a property of the
// format.
const DefaultHeaderWindow = 10

// Config holds processor options.
type Config struct {
	MaxDepth      int         `yaml:"max_depth"`      // Pointer chain depth limit per resolution (default 64)
	HeaderWindow  int         `yaml:"header_window"`  // Embedded header search window in bytes (default 10)
	HashAlgorithm int         `yaml:"hash_algorithm"` // Fingerprint algorithm (1=xxHash3, 2=FNV1a, 3=Blake2b)
	Logger        *zap.Logger `yaml:"-"`
}

// LoadConfig parses a YAML document into a Config. Unset fields keep their
// zero value and are defaulted by New.
func LoadConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// withDefaults returns a copy of c with zero fields replaced by defaults.
func (c Config) withDefaults() Config {
	if c.MaxDepth == 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.HeaderWindow == 0 {
		c.HeaderWindow = DefaultHeaderWindow
	}
	if c.HashAlgorithm == 0 {
		c.HashAlgorithm = AlgXXHash3
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// validate reports every problem at once rather than stopping at the first.
func (c Config) validate() error {
	var err error
	if c.MaxDepth < 0 {
		err = multierr.Append(err, fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth))
	}
	if c.HeaderWindow < 0 {
		err = multierr.Append(err, fmt.Errorf("header_window must not be negative, got %d", c.HeaderWindow))
	}
	switch c.HashAlgorithm {
	case 0, AlgXXHash3, AlgFNV1a, AlgBlake2b:
	default:
		err = multierr.Append(err, fmt.Errorf("unknown hash_algorithm %d", c.HashAlgorithm))
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
