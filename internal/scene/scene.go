package scene

import (
	"sort"

	"github.com/google/uuid"

	"citywalk/internal/geometry"
)

// Handle identifies a renderable entry added to a Sink
type Handle uuid.UUID

// Nil is the zero handle
var Nil = Handle(uuid.Nil)

func (h Handle) String() string {
	return uuid.UUID(h).String()
}

// Sink accepts renderable groups and removes them later by handle.
// The generation core only talks to this interface.
type Sink interface {
	Add(name string, groups ...*geometry.Group) Handle
	Remove(h Handle)
}

// Entry is one renderable object held by a Graph
type Entry struct {
	Handle Handle
	Name   string
	Groups []*geometry.Group
	order  int
}

// Graph is an in-memory Sink
type Graph struct {
	entries map[Handle]*Entry
	next    int
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{entries: make(map[Handle]*Entry)}
}

// Add stores the groups under a fresh handle
func (g *Graph) Add(name string, groups ...*geometry.Group) Handle {
	h := Handle(uuid.New())
	g.entries[h] = &Entry{Handle: h, Name: name, Groups: groups, order: g.next}
	g.next++
	return h
}

// Remove drops the entry; unknown handles are ignored
func (g *Graph) Remove(h Handle) {
	delete(g.entries, h)
}

// Len returns the number of live entries
func (g *Graph) Len() int {
	return len(g.entries)
}

// Get looks up an entry by handle
func (g *Graph) Get(h Handle) (*Entry, bool) {
	e, ok := g.entries[h]
	return e, ok
}

// Each visits entries in insertion order
func (g *Graph) Each(fn func(e *Entry)) {
	list := make([]*Entry, 0, len(g.entries))
	for _, e := range g.entries {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].order < list[j].order })
	for _, e := range list {
		fn(e)
	}
}

// CountByName returns how many live entries carry the name
func (g *Graph) CountByName(name string) int {
	n := 0
	for _, e := range g.entries {
		if e.Name == name {
			n++
		}
	}
	return n
}

// Discard is a Sink that keeps nothing
type Discard struct{}

func (Discard) Add(string, ...*geometry.Group) Handle { return Handle(uuid.New()) }
func (Discard) Remove(Handle)                         {}
