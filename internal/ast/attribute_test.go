package ast

import (
	"testing"
)

func TestAttributeMapOrderAndOverwrite(t *testing.T) {
	attributes := NewAttributeMap()
	attributes.Set("a", &Attribute{Loc: testLoc(1), Target: ident("a")})
	attributes.Set("b", &Attribute{Loc: testLoc(2), Target: ident("b")})
	attributes.Set("a", &Attribute{Loc: testLoc(9), Target: ident("a"), Primitive: true})

	names := attributes.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("Names() = %v, want [a b]", names)
	}

	a, _ := attributes.Get("a")
	if !a.Primitive {
		t.Errorf("overwrite should replace the stored attribute")
	}
	if a.Loc != testLoc(1) {
		t.Errorf("overwrite should keep the first occurrence location, got %v", a.Loc)
	}
}

func TestMergeAttributeMapsIsLeftBiased(t *testing.T) {
	left := NewAttributeMap()
	left.Set("x", &Attribute{Loc: testLoc(1), Target: ident("x"), Primitive: true})

	right := NewAttributeMap()
	right.Set("x", &Attribute{Loc: testLoc(5), Target: ident("x")})
	right.Set("y", &Attribute{Loc: testLoc(6), Target: ident("y")})

	merged := mergeAttributeMaps(left, right)
	names := merged.Names()
	if len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Fatalf("Names() = %v, want [x y]", names)
	}
	x, _ := merged.Get("x")
	if !x.Primitive {
		t.Errorf("conflicting key should keep the left entry")
	}
}
