package layout

import (
	"maps"
	"slices"

	"github.com/matzehuels/xui/pkg/tree"
)

// Pass summarises one layout pass.
type Pass struct {
	Generation uint64
	Order      []tree.ID
	Changed    []tree.ID // in Order, stamped with Generation
	Removed    []tree.ID // sorted; transforms purged in or before this pass
}

// Solver keeps the transforms of the previous pass and stamps changed ones
// with a generation that strictly increases across passes.
//
// A Solver is not safe for concurrent use.
type Solver struct {
	transforms map[tree.ID]Transform
	generation uint64
	purged     map[tree.ID]struct{}
}

// NewSolver returns a solver with no transforms. Its first pass is
// generation 1.
func NewSolver() *Solver {
	return &Solver{
		transforms: make(map[tree.ID]Transform),
		purged:     make(map[tree.ID]struct{}),
	}
}

// Solve measures and places every node of order, which must be the output
// of the tree's sequencer. Only transforms whose geometry differs from the
// previous pass are rewritten. Transforms of ids missing from order are
// purged.
func (s *Solver) Solve(g Graph, st Styles, order []tree.ID, viewport Vec2) Pass {
	s.generation++
	virtual := Measure(g, st, order)
	boxes := Place(g, st, order, viewport, virtual)

	pass := Pass{Generation: s.generation, Order: order}
	for _, id := range order {
		box := boxes[id]
		if old, ok := s.transforms[id]; ok && old.Box == box {
			continue
		}
		s.transforms[id] = Transform{Box: box, Generation: s.generation}
		pass.Changed = append(pass.Changed, id)
	}

	for id := range s.transforms {
		if _, ok := boxes[id]; !ok {
			delete(s.transforms, id)
			s.purged[id] = struct{}{}
		}
	}
	for id := range s.purged {
		if _, ok := boxes[id]; !ok {
			pass.Removed = append(pass.Removed, id)
		}
	}
	slices.Sort(pass.Removed)
	clear(s.purged)
	return pass
}

// Purge drops the transforms of removed nodes ahead of the next pass, which
// reports them in Pass.Removed.
func (s *Solver) Purge(ids ...tree.ID) {
	for _, id := range ids {
		if _, ok := s.transforms[id]; ok {
			delete(s.transforms, id)
			s.purged[id] = struct{}{}
		}
	}
}

// Transform returns the current transform of id.
func (s *Solver) Transform(id tree.ID) (Transform, bool) {
	t, ok := s.transforms[id]
	return t, ok
}

// Transforms returns a copy of every current transform.
func (s *Solver) Transforms() map[tree.ID]Transform {
	return maps.Clone(s.transforms)
}

// Generation returns the generation of the last pass, 0 before the first.
func (s *Solver) Generation() uint64 { return s.generation }

// Len returns the number of stored transforms.
func (s *Solver) Len() int { return len(s.transforms) }
