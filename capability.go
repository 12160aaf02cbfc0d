package journey

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// ArgType identifies the wire type a capability argument accepts.
type ArgType string

const (
	ArgString  ArgType = "string"
	ArgNumber  ArgType = "number"
	ArgBoolean ArgType = "boolean"
)

// ArgSpec declares a single named capability argument.
type ArgSpec struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Type        ArgType `json:"type"`
	Required    bool    `json:"required,omitempty"`

	// Rule is an optional expression evaluated against the invocation
	// arguments (bound as `args`); it must return true for the invocation to
	// proceed. A false result fails with ErrInvalidArgument before any store
	// access occurs.
	Rule string `json:"rule,omitempty"`
}

// Invocation carries the validated inputs handed to a capability handler.
type Invocation struct {
	Name string
	Args map[string]any
}

// String returns the string argument stored under name, or "".
func (inv Invocation) String(name string) string {
	value, _ := inv.Args[name].(string)
	return value
}

// Result is what a capability hands back to the agent: a natural-language
// status line, a structured payload, or both.
type Result struct {
	Text string `json:"text,omitempty"`
	Data any    `json:"data,omitempty"`
}

// Handler executes one capability against already-validated arguments.
type Handler func(ctx context.Context, inv Invocation) (Result, error)

// Capability is a named, schema-declared operation exposed to the agent
// runtime. Names must be unique within a Registry.
type Capability struct {
	Name        string
	Description string
	Args        []ArgSpec
	Handler     Handler
}

// Validate checks the capability declaration itself, not an invocation.
func (c Capability) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("journey: capability name must not be empty")
	}
	if c.Handler == nil {
		return fmt.Errorf("journey: capability %q has no handler", c.Name)
	}
	seen := make(map[string]struct{}, len(c.Args))
	for _, arg := range c.Args {
		if strings.TrimSpace(arg.Name) == "" {
			return fmt.Errorf("journey: capability %q declares an unnamed argument", c.Name)
		}
		if _, dup := seen[arg.Name]; dup {
			return fmt.Errorf("journey: capability %q declares argument %q twice", c.Name, arg.Name)
		}
		seen[arg.Name] = struct{}{}
		switch arg.Type {
		case ArgString, ArgNumber, ArgBoolean:
		default:
			return fmt.Errorf("journey: capability %q argument %q has unknown type %q", c.Name, arg.Name, arg.Type)
		}
	}
	return nil
}

func (s ArgSpec) checkType(value any) error {
	switch s.Type {
	case ArgString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("%w: argument %q must be a string", ErrInvalidArgument, s.Name)
		}
	case ArgNumber:
		switch value.(type) {
		case float64, float32, int, int32, int64, json.Number:
		default:
			return fmt.Errorf("%w: argument %q must be a number", ErrInvalidArgument, s.Name)
		}
	case ArgBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("%w: argument %q must be a boolean", ErrInvalidArgument, s.Name)
		}
	}
	return nil
}
