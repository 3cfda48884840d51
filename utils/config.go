package utils

import (
	"runtime"

	"github.com/pkg/errors"
)

const (
	DefaultMinKeyLength = 2
	DefaultMaxKeyLength = 40
	DefaultTopK         = 10
)

type Config struct {
	// MinKeyLength and MaxKeyLength bound the key lengths tried, inclusive.
	MinKeyLength int
	MaxKeyLength int
	// TopK is the number of best ranked key lengths that get fully decrypted.
	TopK int
	// Workers is the number of key lengths evaluated concurrently.
	Workers int
	// DetectLanguage annotates results with lingua's English confidence.
	DetectLanguage bool
	Verbose        bool
}

func DefaultConfig() Config {
	return Config{
		MinKeyLength: DefaultMinKeyLength,
		MaxKeyLength: DefaultMaxKeyLength,
		TopK:         DefaultTopK,
		Workers:      runtime.NumCPU(),
	}
}

func (c Config) Validate() error {
	switch {
	case c.MinKeyLength < 2:
		return errors.Wrapf(ErrInvalidInput, "min key length must be at least 2, got %d", c.MinKeyLength)
	case c.MinKeyLength > c.MaxKeyLength:
		return errors.Wrapf(ErrInvalidInput, "min key length %d greater than max key length %d", c.MinKeyLength, c.MaxKeyLength)
	case c.TopK < 1:
		return errors.Wrapf(ErrInvalidInput, "top k must be at least 1, got %d", c.TopK)
	case c.Workers < 1:
		return errors.Wrapf(ErrInvalidInput, "workers must be at least 1, got %d", c.Workers)
	}
	return nil
}
