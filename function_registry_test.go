package journey

import (
	"strings"
	"testing"
)

func TestFunctionRegistryRegisterAndCall(t *testing.T) {
	registry := NewFunctionRegistry()
	if err := registry.Register("Add", func(args ...any) (any, error) {
		total := 0
		for _, arg := range args {
			n, _ := arg.(int)
			total += n
		}
		return total, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := registry.Call("add", 1, 2, 3)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if result != 6 {
		t.Fatalf("expected 6, got %v", result)
	}
}

func TestFunctionRegistryRejectsDuplicatesCaseInsensitively(t *testing.T) {
	registry := NewFunctionRegistry()
	fn := func(args ...any) (any, error) { return nil, nil }
	if err := registry.Register("format_duration", fn); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register("Format_Duration", fn); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}

func TestFunctionRegistryRejectsNilAndUnnamed(t *testing.T) {
	registry := NewFunctionRegistry()
	if err := registry.Register("nil", nil); err == nil {
		t.Fatal("expected nil function to be rejected")
	}
	if err := registry.Register("", func(args ...any) (any, error) { return nil, nil }); err == nil {
		t.Fatal("expected unnamed function to be rejected")
	}
}

func TestFunctionRegistryCallUnknown(t *testing.T) {
	registry := NewFunctionRegistry()
	_, err := registry.Call("missing")
	if err == nil || !strings.Contains(err.Error(), "not registered") {
		t.Fatalf("expected not-registered error, got %v", err)
	}
}

func TestFunctionRegistryCloneIsIndependent(t *testing.T) {
	registry := NewFunctionRegistry()
	fn := func(args ...any) (any, error) { return "original", nil }
	registry.Register("probe", fn)

	clone := registry.Clone()
	clone.Register("extra", fn)

	if len(registry.Names()) != 1 {
		t.Fatalf("clone registration must not leak, got %v", registry.Names())
	}
	if len(clone.Names()) != 2 {
		t.Fatalf("expected two functions in clone, got %v", clone.Names())
	}
}
