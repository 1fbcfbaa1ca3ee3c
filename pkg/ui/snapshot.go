package ui

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/xui/pkg/draw"
	"github.com/matzehuels/xui/pkg/errors"
	"github.com/matzehuels/xui/pkg/layout"
	"github.com/matzehuels/xui/pkg/style"
	"github.com/matzehuels/xui/pkg/tree"
)

// Snapshot is a serializable view of a solved engine.
type Snapshot struct {
	Engine     string         `json:"engine" yaml:"engine"`
	Viewport   layout.Vec2    `json:"viewport" yaml:"viewport"`
	Generation uint64         `json:"generation" yaml:"generation"`
	Nodes      []NodeSnapshot `json:"nodes" yaml:"nodes"`
}

// NodeSnapshot is one node of a Snapshot.
type NodeSnapshot struct {
	ID         tree.ID           `json:"id" yaml:"id"`
	Parent     tree.ID           `json:"parent,omitempty" yaml:"parent,omitempty"`
	Rank       int               `json:"rank" yaml:"rank"`
	Kind       string            `json:"kind" yaml:"kind"`
	Classes    []string          `json:"classes,omitempty" yaml:"classes,omitempty,flow"`
	Style      map[string]string `json:"style,omitempty" yaml:"style,omitempty"`
	Background string            `json:"background" yaml:"background"`
	Transform  layout.Transform  `json:"transform" yaml:"transform"`
}

// Snapshot captures the nodes of the last layout in sequencer order.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s := Snapshot{
		Engine:     e.id.String(),
		Viewport:   e.viewport,
		Generation: e.solver.Generation(),
		Nodes:      make([]NodeSnapshot, 0, len(e.order)),
	}
	for _, id := range e.order {
		n, err := e.tree.Node(id)
		if err != nil {
			continue
		}
		parent, _ := e.tree.Parent(id)
		rank, _ := e.tree.Rank(id)
		rules := e.cascade.Resolved(id)
		t, _ := e.solver.Transform(id)
		s.Nodes = append(s.Nodes, NodeSnapshot{
			ID:         id,
			Parent:     parent,
			Rank:       rank,
			Kind:       n.Kind.Name(),
			Classes:    n.Classes,
			Style:      rules.Declared(),
			Background: rules.BackgroundOrBlack().Hex(),
			Transform:  t,
		})
	}
	return s
}

// Node returns the snapshot of id.
func (s *Snapshot) Node(id tree.ID) (NodeSnapshot, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeSnapshot{}, false
}

// Emit writes the shapes of the snapshot the way Engine.Emit does for the
// live engine.
func (s *Snapshot) Emit(w draw.Writer) error {
	for _, n := range s.Nodes {
		c, err := style.ParseColor(n.Background)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "node %s", n.ID)
		}
		mat := w.AddMaterial(draw.Material{Color: c})
		if err := w.WriteShape(n.ID, draw.Corners(n.Transform), draw.QuadIndices, mat); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON encodes s as indented JSON.
func (s *Snapshot) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteYAML encodes s as YAML.
func (s *Snapshot) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

// ReadSnapshot decodes a snapshot written by WriteJSON.
func ReadSnapshot(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode snapshot")
	}
	return s, nil
}
