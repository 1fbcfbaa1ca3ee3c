package style

import (
	"maps"
	"slices"

	"github.com/matzehuels/xui/pkg/errors"
	"github.com/matzehuels/xui/pkg/tree"
)

// Declaration is one rule record bound to a class under a style-source id.
type Declaration struct {
	Class   string
	StyleID string
	Rules   Rules
}

// class is a named bucket of rule records and the nodes referencing it.
type class struct {
	ordinal int // position in declaration order, -1 until the first record
	nodes   map[tree.ID]struct{}
	ids     []string // style ids in insertion order
	records map[string]Rules
}

func newClass() *class {
	return &class{
		ordinal: -1,
		nodes:   make(map[tree.ID]struct{}),
		records: make(map[string]Rules),
	}
}

// Cascade maps class memberships to resolved rule records.
//
// Records are merged in class declaration order (the order in which each
// class first received a record, base sheet first) and, within a class, in
// style-id insertion order. Replacing a record keeps its position.
//
// A Cascade is not safe for concurrent use.
type Cascade struct {
	classes  map[string]*class
	declared []string
	members  map[tree.ID][]string
	dirty    map[tree.ID]struct{}
	resolved map[tree.ID]Rules
}

// NewCascade returns a cascade with the base declarations applied first.
func NewCascade(base ...Declaration) (*Cascade, error) {
	c := &Cascade{
		classes:  make(map[string]*class),
		members:  make(map[tree.ID][]string),
		dirty:    make(map[tree.ID]struct{}),
		resolved: make(map[tree.ID]Rules),
	}
	for _, d := range base {
		if err := c.AddStyle(d.Class, d.StyleID, d.Rules); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "base style %s", d.StyleID)
		}
	}
	return c, nil
}

func (c *Cascade) class(name string) *class {
	cl, ok := c.classes[name]
	if !ok {
		cl = newClass()
		c.classes[name] = cl
	}
	return cl
}

// AddStyle inserts or replaces the record styleID of class name and marks
// every node currently in the class dirty.
func (c *Cascade) AddStyle(name, styleID string, rules Rules) error {
	if err := errors.ValidateClassName(name); err != nil {
		return err
	}
	if styleID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "style id cannot be empty")
	}

	cl := c.class(name)
	if cl.ordinal < 0 {
		cl.ordinal = len(c.declared)
		c.declared = append(c.declared, name)
	}
	if _, ok := cl.records[styleID]; !ok {
		cl.ids = append(cl.ids, styleID)
	}
	cl.records[styleID] = rules
	c.markClass(cl)
	return nil
}

// RemoveStyle drops the record styleID of class name. It reports whether a
// record was removed; the class's nodes are marked dirty when it was.
func (c *Cascade) RemoveStyle(name, styleID string) bool {
	cl, ok := c.classes[name]
	if !ok {
		return false
	}
	if _, ok := cl.records[styleID]; !ok {
		return false
	}
	delete(cl.records, styleID)
	cl.ids = slices.DeleteFunc(cl.ids, func(s string) bool { return s == styleID })
	c.markClass(cl)
	return true
}

func (c *Cascade) markClass(cl *class) {
	for id := range cl.nodes {
		c.dirty[id] = struct{}{}
	}
}

// Attach registers the class memberships of a new node and marks it dirty.
// Attaching an already known node behaves like SetClasses.
func (c *Cascade) Attach(id tree.ID, classes []string) {
	c.SetClasses(id, classes)
}

// SetClasses replaces the memberships of id and marks it dirty.
func (c *Cascade) SetClasses(id tree.ID, classes []string) {
	c.unlink(id)
	classes = tree.NormalizeClasses(classes)
	for _, name := range classes {
		c.class(name).nodes[id] = struct{}{}
	}
	c.members[id] = classes
	c.dirty[id] = struct{}{}
}

// Detach forgets the memberships and the resolved record of a removed node.
func (c *Cascade) Detach(id tree.ID) {
	c.unlink(id)
	delete(c.members, id)
	delete(c.dirty, id)
	delete(c.resolved, id)
}

func (c *Cascade) unlink(id tree.ID) {
	for _, name := range c.members[id] {
		if cl, ok := c.classes[name]; ok {
			delete(cl.nodes, id)
		}
	}
}

// Recalculate resolves every dirty node and clears the dirty set. It returns
// the resolved ids in sorted order.
func (c *Cascade) Recalculate() []tree.ID {
	ids := c.Dirty()
	for _, id := range ids {
		c.resolved[id] = c.merge(c.members[id])
	}
	clear(c.dirty)
	return ids
}

func (c *Cascade) merge(names []string) Rules {
	bound := make([]*class, 0, len(names))
	for _, name := range names {
		if cl, ok := c.classes[name]; ok && cl.ordinal >= 0 {
			bound = append(bound, cl)
		}
	}
	slices.SortFunc(bound, func(a, b *class) int { return a.ordinal - b.ordinal })

	var out Rules
	for _, cl := range bound {
		for _, sid := range cl.ids {
			out = out.Overlay(cl.records[sid])
		}
	}
	return out
}

// Dirty returns the ids awaiting recalculation in sorted order.
func (c *Cascade) Dirty() []tree.ID {
	return slices.Sorted(maps.Keys(c.dirty))
}

// IsDirty reports whether id awaits recalculation.
func (c *Cascade) IsDirty(id tree.ID) bool {
	_, ok := c.dirty[id]
	return ok
}

// Resolved returns the last resolved record of id, or the zero record.
func (c *Cascade) Resolved(id tree.ID) Rules {
	return c.resolved[id]
}

// Classes returns the class names that hold records, in declaration order.
func (c *Cascade) Classes() []string {
	return slices.Clone(c.declared)
}

// Members returns the ids referencing class name in sorted order.
func (c *Cascade) Members(name string) []tree.ID {
	cl, ok := c.classes[name]
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(cl.nodes))
}
