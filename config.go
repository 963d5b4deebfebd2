package rawpb

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/anirudhraja/rawpb/document"
	"github.com/anirudhraja/rawpb/infer"
)

// Environment variables read by ApplyEnv.
const (
	EnvBytesEncoding = "RAWPB_BYTES_ENCODING"
	EnvFixed         = "RAWPB_FIXED"
	EnvIntegers      = "RAWPB_INTEGERS"
	EnvMaxDepth      = "RAWPB_MAX_DEPTH"
)

// Config controls how buffers are interpreted and rendered.
type Config struct {
	// BytesEncoding renders payloads that are neither a message nor UTF-8.
	// Default base64.
	BytesEncoding document.BytesEncoding `toml:"bytes_encoding"`

	// Fixed chooses between float and integer readings of fixed32/fixed64.
	// Default auto.
	Fixed infer.FixedPolicy `toml:"fixed"`

	// Integers renders varints as unsigned, signed or zigzag. Default unsigned.
	Integers document.IntegerFormat `toml:"integers"`

	// MaxDepth bounds message nesting; deeper input fails with
	// wire.ErrRecursionLimitExceeded.
	MaxDepth int `toml:"max_depth"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		BytesEncoding: document.DefaultBytesEncoding,
		Fixed:         infer.FixedAuto,
		Integers:      document.IntegersUnsigned,
		MaxDepth:      infer.DefaultMaxDepth,
	}
}

// Validate checks the configuration for values no parse could honor.
func (c Config) Validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", c.MaxDepth)
	}
	if _, err := document.ParseBytesEncoding(c.BytesEncoding.String()); err != nil {
		return err
	}
	if _, err := infer.ParseFixedPolicy(c.Fixed.String()); err != nil {
		return err
	}
	if _, err := document.ParseIntegerFormat(c.Integers.String()); err != nil {
		return err
	}
	return nil
}

// LoadConfig reads a TOML file over the defaults. Keys absent from the file
// keep their default; unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load rawpb config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load rawpb config: unknown key %q", undecoded[0].String())
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load rawpb config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from RAWPB_* environment variables that are set
// and non-empty.
func (c *Config) ApplyEnv() error {
	if v, ok := lookupEnv(EnvBytesEncoding); ok {
		if err := c.BytesEncoding.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%s: %w", EnvBytesEncoding, err)
		}
	}
	if v, ok := lookupEnv(EnvFixed); ok {
		if err := c.Fixed.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%s: %w", EnvFixed, err)
		}
	}
	if v, ok := lookupEnv(EnvIntegers); ok {
		if err := c.Integers.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%s: %w", EnvIntegers, err)
		}
	}
	if v, ok := lookupEnv(EnvMaxDepth); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxDepth, err)
		}
		c.MaxDepth = n
	}
	return c.Validate()
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
