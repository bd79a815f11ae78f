package hsm

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Instance is the pluggable store of one state machine instance's mutable
// state: per region, the last-known active child vertex, and a terminated
// flag. The engine treats it as opaque; implementations may persist or
// serialize however they like.
type Instance interface {
	SetCurrent(region *Region, vertex Vertex)
	GetCurrent(region *Region) Vertex
	IsTerminated() bool
	SetTerminated(bool)
}

// MapInstance is the bundled default Instance, backed by an ordered map so
// that Snapshot enumerates regions in the order they were first entered
// rather than Go's randomized map order.
type MapInstance struct {
	current    *orderedmap.OrderedMap[*Region, Vertex]
	terminated bool
}

// NewMapInstance creates a fresh, unentered MapInstance.
func NewMapInstance() *MapInstance {
	return &MapInstance{current: orderedmap.New[*Region, Vertex]()}
}

func (m *MapInstance) SetCurrent(region *Region, vertex Vertex) {
	m.current.Set(region, vertex)
}

func (m *MapInstance) GetCurrent(region *Region) Vertex {
	v, ok := m.current.Get(region)
	if !ok {
		return nil
	}
	return v
}

func (m *MapInstance) IsTerminated() bool   { return m.terminated }
func (m *MapInstance) SetTerminated(b bool) { m.terminated = b }

// Snapshot returns every recorded region/vertex pair — each region's
// last-known current vertex — in the order regions were first recorded.
// A region whose owning state has since been exited keeps its last
// record, so the result can include vertices that are no longer active.
func (m *MapInstance) Snapshot() []RegionState {
	out := make([]RegionState, 0, m.current.Len())
	for pair := m.current.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, RegionState{Region: pair.Key, Vertex: pair.Value})
	}
	return out
}

// RegionState pairs a region with its recorded current vertex.
type RegionState struct {
	Region *Region
	Vertex Vertex
}
