package infer

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultMaxDepth bounds message nesting when Options.MaxDepth is unset.
const DefaultMaxDepth = 100

// FixedPolicy selects how fixed32 and fixed64 values are read.
type FixedPolicy int

const (
	// FixedAuto reads a float when the value is finite, nonzero and of
	// plausible magnitude, otherwise an unsigned integer.
	FixedAuto FixedPolicy = iota
	// FixedFloat always reads IEEE floats.
	FixedFloat
	// FixedInteger always reads integers.
	FixedInteger
)

func (p FixedPolicy) String() string {
	switch p {
	case FixedAuto:
		return "auto"
	case FixedFloat:
		return "float"
	case FixedInteger:
		return "integer"
	default:
		return fmt.Sprintf("FixedPolicy(%d)", int(p))
	}
}

// ParseFixedPolicy parses the names returned by FixedPolicy.String.
func ParseFixedPolicy(s string) (FixedPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FixedAuto, nil
	case "float", "double":
		return FixedFloat, nil
	case "integer", "int":
		return FixedInteger, nil
	default:
		return 0, fmt.Errorf("unknown fixed policy %q", s)
	}
}

func (p FixedPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *FixedPolicy) UnmarshalText(text []byte) error {
	v, err := ParseFixedPolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Options controls a decode pass.
type Options struct {
	MaxDepth int // nesting limit, DefaultMaxDepth when <= 0
	Fixed    FixedPolicy
	Logger   *zerolog.Logger // nil disables logging
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o Options) logger() zerolog.Logger {
	if o.Logger == nil {
		return zerolog.Nop()
	}
	return *o.Logger
}
