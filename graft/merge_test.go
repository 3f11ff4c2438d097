package graft

import (
	"reflect"
	"testing"
)

func TestMergeSharesEqualBindings(t *testing.T) {
	g1 := Graft{"a": 1, "returns": "a"}
	g2 := Graft{"a": 1, "b": []any{"inc", "a"}, "returns": "b"}

	merged := Merge(g1, g2)
	if merged.Returns() != "b" {
		t.Errorf("root = %q, want the last fragment's root", merged.Returns())
	}
	// Identical bindings are shared, not duplicated.
	if len(merged) != 3 {
		t.Errorf("expected bindings a, b plus the root, got %v", merged)
	}
	if merged["a"] != 1 {
		t.Errorf("shared binding lost: %v", merged)
	}
}

func TestMergeRenamesCollidingBindings(t *testing.T) {
	g1 := Graft{"a": 1, "returns": "a"}
	g2 := Graft{"a": 2, "b": []any{"inc", "a"}, "returns": "b"}

	merged := Merge(g1, g2)
	if merged["a"] != 1 {
		t.Fatalf("first binding for a must survive, got %v", merged["a"])
	}

	// g2's a was renamed; its application must reference the new key.
	expr, ok := merged["b"].([]any)
	if !ok {
		t.Fatalf("binding b missing: %v", merged)
	}
	renamed, ok := expr[1].(string)
	if !ok || renamed == "a" {
		t.Fatalf("reference to the colliding key was not rewritten: %v", expr)
	}
	if merged[renamed] != 2 {
		t.Errorf("renamed binding = %v, want 2", merged[renamed])
	}

	// The inputs themselves are untouched.
	if g2["a"] != 2 || !reflect.DeepEqual(g2["b"], []any{"inc", "a"}) {
		t.Errorf("merge mutated an input fragment: %v", g2)
	}
}

func TestMergeRenamesSharedBindingOverRenamedDependency(t *testing.T) {
	// Both fragments bind s to the same expression, but over different
	// values of a. Renaming a must cascade to s, or g1's computation
	// would be silently replaced by g2's.
	g1 := Graft{"a": 1, "s": []any{"inc", "a"}, "returns": "s"}
	g2 := Graft{"a": 2, "s": []any{"inc", "a"}, "returns": "s"}

	merged := Merge(g1, g2)
	if merged["a"] != 1 || !reflect.DeepEqual(merged["s"], []any{"inc", "a"}) {
		t.Fatalf("the first fragment's bindings changed meaning: %v", merged)
	}

	root := merged.Returns()
	if root == "s" {
		t.Fatal("the second fragment's root must have been renamed")
	}
	expr, ok := merged[root].([]any)
	if !ok || expr[0] != "inc" {
		t.Fatalf("renamed root is not the same application: %v", merged)
	}
	renamedA, ok := expr[1].(string)
	if !ok || renamedA == "a" || merged[renamedA] != 2 {
		t.Errorf("the renamed binding must reference the renamed dependency: %v", merged)
	}
}

func TestMergeRenamesCollidingRoot(t *testing.T) {
	g1 := Graft{"a": 1, "returns": "a"}
	g2 := Graft{"a": 2, "returns": "a"}

	merged := Merge(g1, g2)
	root := merged.Returns()
	if root == "a" {
		t.Fatal("colliding root should have been renamed")
	}
	if merged["a"] != 1 || merged[root] != 2 {
		t.Errorf("bindings after rename: %v", merged)
	}
}

func TestIsolateProducesDisjointKeys(t *testing.T) {
	a, _ := ValueGraft(1)
	b, _ := ValueGraft(2)
	g, err := Apply("add", []Graft{a, b}, nil)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	iso := Isolate(g)
	if len(iso) != len(g) {
		t.Fatalf("isolation changed the shape: %v vs %v", iso, g)
	}
	for k := range g {
		if !IsKey(k) {
			continue
		}
		if _, clash := iso[k]; clash {
			t.Errorf("key %q survived isolation", k)
		}
	}

	// Structure is preserved: the root is still an add over two literals.
	expr, ok := iso[iso.Returns()].([]any)
	if !ok || expr[0] != "add" {
		t.Fatalf("isolated root is not the same application: %v", iso)
	}
	got := []any{iso[expr[1].(string)], iso[expr[2].(string)]}
	if !reflect.DeepEqual(got, []any{1, 2}) {
		t.Errorf("isolated argument bindings = %v, want [1 2]", got)
	}
}

func TestIsolateKeepsFormalNames(t *testing.T) {
	body := Graft{"out": []any{"inc", "x"}, "returns": "out"}
	fn, err := FunctionGraft(body, "x")
	if err != nil {
		t.Fatalf("FunctionGraft failed: %v", err)
	}

	iso := Isolate(fn)
	if !reflect.DeepEqual(iso.Parameters(), []string{"x"}) {
		t.Errorf("formal names are part of the calling interface and must survive: %v", iso.Parameters())
	}
	expr := iso[iso.Returns()].([]any)
	if expr[1] != "x" {
		t.Errorf("reference to the formal must not be renamed: %v", expr)
	}
}
