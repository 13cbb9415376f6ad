package typeid

import (
	"strings"
	"testing"
)

func TestNewHasPrefix(t *testing.T) {
	id := New(PrefixCircle)
	if !strings.HasPrefix(id, PrefixCircle+"_") {
		t.Fatalf("id = %q, want prefix %q", id, PrefixCircle+"_")
	}
	if err := Validate(id, PrefixCircle); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := New(PrefixGroup)
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestValidateWrongPrefix(t *testing.T) {
	if err := Validate(New(PrefixEdge), PrefixGrid); err == nil {
		t.Fatal("expected prefix mismatch error")
	}
	if err := Validate(NewSceneID(), NodePrefixes...); err == nil {
		t.Fatal("scene key accepted as a node key")
	}
	for _, p := range NodePrefixes {
		if err := Validate(New(p), NodePrefixes...); err != nil {
			t.Errorf("Validate(%s): %v", p, err)
		}
	}
}

func TestValidateGarbage(t *testing.T) {
	if err := Validate("not a typeid", PrefixGroup); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestPrefix(t *testing.T) {
	p, err := Prefix(New(PrefixPath))
	if err != nil {
		t.Fatal(err)
	}
	if p != PrefixPath {
		t.Errorf("Prefix = %q, want %q", p, PrefixPath)
	}
}
