package scene

import (
	"testing"

	"citywalk/internal/geometry"
)

func TestGraphAddRemove(t *testing.T) {
	g := NewGraph()
	a := g.Add("building", geometry.NewGroup("lod0"), geometry.NewGroup("lod1"))
	b := g.Add("tree", geometry.NewGroup("tree"))

	if a == b || a == Nil {
		t.Fatalf("handles should be unique and non-nil")
	}
	if g.Len() != 2 {
		t.Errorf("Len = %d, want 2", g.Len())
	}
	if e, ok := g.Get(a); !ok || len(e.Groups) != 2 {
		t.Errorf("building entry missing or wrong group count")
	}

	g.Remove(a)
	g.Remove(a) // second removal is a no-op
	if g.Len() != 1 || g.CountByName("building") != 0 {
		t.Errorf("building should be gone, Len = %d", g.Len())
	}
}

func TestGraphEachKeepsOrder(t *testing.T) {
	g := NewGraph()
	names := []string{"terrain", "road", "lamp", "building"}
	for _, n := range names {
		g.Add(n)
	}
	var got []string
	g.Each(func(e *Entry) { got = append(got, e.Name) })
	for i := range names {
		if got[i] != names[i] {
			t.Fatalf("Each order = %v, want %v", got, names)
		}
	}
}
