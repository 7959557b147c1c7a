package networkroute

import (
	"fmt"
	"strings"
)

const (
	DefaultMaxIterations = 8192
	loopTailSize         = 20
)

type Direction uint8

const (
	Prepend Direction = iota
	Append
)

func (d Direction) String() string {
	if d == Prepend {
		return "prepend"
	}
	return "append"
}

// FailurePolicy decides what a looped route does to the rest of a FindRoutes call.
type FailurePolicy uint8

const (
	// IsolateRoute drops only the looped route and records it in Result.Failures.
	IsolateRoute FailurePolicy = iota
	// AbortAll fails the whole call on the first looped route.
	AbortAll
)

func (p FailurePolicy) String() string {
	if p == AbortAll {
		return "abort"
	}
	return "isolate"
}

func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "isolate":
		return IsolateRoute, nil
	case "abort":
		return AbortAll, nil
	default:
		return IsolateRoute, fmt.Errorf("unknown failure policy %q", s)
	}
}

type Config struct {
	// MaxIterations caps successful growth steps per direction.
	MaxIterations int
	FailurePolicy FailurePolicy
	// AllowClosedRings ends growth quietly when a chain closes on itself instead
	// of reporting a loop.
	AllowClosedRings bool
}

func DefaultConfig() Config {
	return Config{
		MaxIterations: DefaultMaxIterations,
		FailurePolicy: IsolateRoute,
	}
}

func (c Config) Validate() error {
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max iterations must be positive, got %d", c.MaxIterations)
	}
	if c.FailurePolicy != IsolateRoute && c.FailurePolicy != AbortAll {
		return fmt.Errorf("unknown failure policy %d", c.FailurePolicy)
	}
	return nil
}
