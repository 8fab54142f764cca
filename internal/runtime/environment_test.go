package runtime

import (
	"testing"

	"github.com/siglang/sanetaka/internal/ir"
)

func TestGetWalksParentChain(t *testing.T) {
	parent := New(nil)
	parent.Define("x", ir.NumberValue(1))
	child := New(parent)

	v, ok := child.Get("x")
	if !ok || v.NumberValue != 1 {
		t.Fatalf("Get(%q) = %v, %v, want 1, true", "x", v, ok)
	}
}

func TestGetMissingNameReturnsFalse(t *testing.T) {
	env := New(nil)
	if _, ok := env.Get("missing"); ok {
		t.Fatalf("expected Get to report missing as not found")
	}
}

func TestDefineShadowsParent(t *testing.T) {
	parent := New(nil)
	parent.Define("x", ir.NumberValue(1))
	child := New(parent)
	child.Define("x", ir.NumberValue(2))

	v, _ := child.Get("x")
	if v.NumberValue != 2 {
		t.Fatalf("child Get(x) = %v, want 2", v.NumberValue)
	}
	v, _ = parent.Get("x")
	if v.NumberValue != 1 {
		t.Fatalf("parent Get(x) = %v, want unchanged 1", v.NumberValue)
	}
}

func TestSetDoesNotReachIntoParentFrame(t *testing.T) {
	parent := New(nil)
	parent.Define("x", ir.NumberValue(1))
	child := New(parent)
	child.Set("x", ir.NumberValue(99))

	v, _ := child.Get("x")
	if v.NumberValue != 99 {
		t.Fatalf("child Get(x) = %v, want 99 (local binding)", v.NumberValue)
	}
	v, _ = parent.Get("x")
	if v.NumberValue != 1 {
		t.Fatalf("parent Get(x) = %v, want unchanged 1 (Set must not escape the local frame)", v.NumberValue)
	}
}
