package tree

import (
	"slices"

	"github.com/matzehuels/xui/pkg/errors"
)

// Node is one element of the tree. Values returned by [Tree.Node] are copies;
// mutate a node through the Tree methods.
type Node struct {
	ID      ID       // Stable identity, immutable after creation
	Kind    Kind     // Layout behaviour tag
	Classes []string // Class memberships, sorted and de-duplicated
	Index   uint64   // Creation order, unique per tree
}

// Spec describes a node to insert with [Tree.ReplaceChildren].
type Spec struct {
	ID      ID
	Kind    Kind
	Parent  ID // None means the container being spliced into
	Classes []string
}

// Tree is a forest of nodes with rank-ordered children.
//
// The zero value is not usable - use New to create a valid Tree.
type Tree struct {
	nodes    map[ID]*Node
	children map[ID][]ID // parent -> children in rank order
	parent   map[ID]ID   // child -> parent (absent for roots)
	rank     map[ID]int  // child -> sibling rank
	roots    []ID        // creation order
	seq      uint64
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{
		nodes:    make(map[ID]*Node),
		children: make(map[ID][]ID),
		parent:   make(map[ID]ID),
		rank:     make(map[ID]int),
	}
}

// AddNode inserts a node under parent, or as a root when parent is None.
// The node receives the next sibling rank of its parent.
//
// It returns DUPLICATE_NODE_ID if id already exists and UNKNOWN_PARENT if
// parent is set but not present. A nil kind is treated as [Container].
func (t *Tree) AddNode(id ID, kind Kind, parent ID, classes []string) error {
	if id == None {
		return errors.New(errors.ErrCodeInvalidInput, "node id must not be empty")
	}
	if _, exists := t.nodes[id]; exists {
		return errors.New(errors.ErrCodeDuplicateNodeID, "node %q already exists", id)
	}
	if parent != None {
		if _, ok := t.nodes[parent]; !ok {
			return errors.New(errors.ErrCodeUnknownParent, "parent %q of node %q does not exist", parent, id)
		}
	}
	t.insert(id, kind, parent, classes)
	return nil
}

func (t *Tree) insert(id ID, kind Kind, parent ID, classes []string) {
	if kind == nil {
		kind = Container{}
	}
	t.nodes[id] = &Node{
		ID:      id,
		Kind:    kind,
		Classes: NormalizeClasses(classes),
		Index:   t.seq,
	}
	t.seq++

	if parent == None {
		t.roots = append(t.roots, id)
		return
	}
	t.parent[id] = parent
	t.rank[id] = len(t.children[parent])
	t.children[parent] = append(t.children[parent], id)
}

// Has reports whether id is present.
func (t *Tree) Has(id ID) bool {
	_, ok := t.nodes[id]
	return ok
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns a copy of the node with the given id.
func (t *Tree) Node(id ID) (Node, error) {
	n, ok := t.nodes[id]
	if !ok {
		return Node{}, unknownNode(id)
	}
	out := *n
	out.Classes = slices.Clone(n.Classes)
	return out, nil
}

// Children returns the children of id in sibling-rank order.
func (t *Tree) Children(id ID) ([]ID, error) {
	if !t.Has(id) {
		return nil, unknownNode(id)
	}
	return slices.Clone(t.children[id]), nil
}

// Parent returns the parent of id, or None for roots.
func (t *Tree) Parent(id ID) (ID, error) {
	if !t.Has(id) {
		return None, unknownNode(id)
	}
	return t.parent[id], nil
}

// Rank returns the sibling rank of id. Roots report their position among
// the roots.
func (t *Tree) Rank(id ID) (int, error) {
	if !t.Has(id) {
		return 0, unknownNode(id)
	}
	if _, ok := t.parent[id]; ok {
		return t.rank[id], nil
	}
	return slices.Index(t.roots, id), nil
}

// IsLeaf reports whether id has no children.
func (t *Tree) IsLeaf(id ID) (bool, error) {
	if !t.Has(id) {
		return false, unknownNode(id)
	}
	return len(t.children[id]) == 0, nil
}

// Roots returns the root ids in creation order.
func (t *Tree) Roots() []ID { return slices.Clone(t.roots) }

// Leaves returns the ids of childless nodes in creation order.
func (t *Tree) Leaves() []ID {
	var out []ID
	for _, id := range t.IDs() {
		if len(t.children[id]) == 0 {
			out = append(out, id)
		}
	}
	return out
}

// IDs returns every node id in creation order.
func (t *Tree) IDs() []ID {
	nodes := make([]*Node, 0, len(t.nodes))
	for _, n := range t.nodes {
		nodes = append(nodes, n)
	}
	slices.SortFunc(nodes, func(a, b *Node) int {
		switch {
		case a.Index < b.Index:
			return -1
		case a.Index > b.Index:
			return 1
		}
		return 0
	})
	ids := make([]ID, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

// SetClasses replaces the class memberships of id.
func (t *Tree) SetClasses(id ID, classes []string) error {
	n, ok := t.nodes[id]
	if !ok {
		return unknownNode(id)
	}
	n.Classes = NormalizeClasses(classes)
	return nil
}

// Remove deletes id and its whole subtree. Remaining siblings are renumbered
// so ranks stay contiguous. The removed ids are returned parents first.
func (t *Tree) Remove(id ID) ([]ID, error) {
	if !t.Has(id) {
		return nil, unknownNode(id)
	}
	removed := t.subtree(id)
	t.detach(id)
	for _, r := range removed {
		t.drop(r)
	}
	return removed, nil
}

// ReplaceChildren removes every child subtree of parent and inserts specs in
// their place. Spec parents must be None (meaning parent itself) or an id
// declared by an earlier spec, so the new nodes always form subtrees under
// parent. All specs are validated before anything is changed.
//
// The ids removed from the tree are returned parents first. An id may be
// both removed and re-inserted; it then starts over with a fresh creation
// index.
func (t *Tree) ReplaceChildren(parent ID, specs []Spec) ([]ID, error) {
	if !t.Has(parent) {
		return nil, unknownNode(parent)
	}

	var removed []ID
	for _, c := range t.children[parent] {
		removed = append(removed, t.subtree(c)...)
	}
	gone := make(map[ID]bool, len(removed))
	for _, r := range removed {
		gone[r] = true
	}

	declared := make(map[ID]bool, len(specs))
	for _, s := range specs {
		if s.ID == None {
			return nil, errors.New(errors.ErrCodeInvalidInput, "node id must not be empty")
		}
		if declared[s.ID] || (t.Has(s.ID) && !gone[s.ID]) {
			return nil, errors.New(errors.ErrCodeDuplicateNodeID, "node %q already exists", s.ID)
		}
		if s.Parent != None && s.Parent != parent && !declared[s.Parent] {
			return nil, errors.New(errors.ErrCodeUnknownParent,
				"parent %q of node %q is not part of the subtree under %q", s.Parent, s.ID, parent)
		}
		declared[s.ID] = true
	}

	for _, c := range slices.Clone(t.children[parent]) {
		t.detach(c)
	}
	for _, r := range removed {
		t.drop(r)
	}
	for _, s := range specs {
		p := s.Parent
		if p == None {
			p = parent
		}
		t.insert(s.ID, s.Kind, p, s.Classes)
	}
	return removed, nil
}

// subtree returns id and its descendants in pre-order, children by rank.
func (t *Tree) subtree(id ID) []ID {
	out := []ID{id}
	for i := 0; i < len(out); i++ {
		out = append(out, t.children[out[i]]...)
	}
	return out
}

// detach unlinks id from its parent (or the root list) and renumbers the
// siblings that follow it.
func (t *Tree) detach(id ID) {
	p, ok := t.parent[id]
	if !ok {
		t.roots = slices.DeleteFunc(t.roots, func(r ID) bool { return r == id })
		return
	}
	siblings := slices.DeleteFunc(t.children[p], func(c ID) bool { return c == id })
	for i, s := range siblings {
		t.rank[s] = i
	}
	if len(siblings) == 0 {
		delete(t.children, p)
	} else {
		t.children[p] = siblings
	}
}

func (t *Tree) drop(id ID) {
	delete(t.nodes, id)
	delete(t.children, id)
	delete(t.parent, id)
	delete(t.rank, id)
}

// Validate checks the internal consistency of the adjacency maps: every
// edge endpoint has a record, ranks match child positions, and every node
// is either a root or listed under its parent.
func (t *Tree) Validate() error {
	for p, kids := range t.children {
		if !t.Has(p) {
			return errors.New(errors.ErrCodeInternal, "children listed for missing node %q", p)
		}
		for i, c := range kids {
			if !t.Has(c) {
				return errors.New(errors.ErrCodeInternal, "edge %q -> %q has no child record", p, c)
			}
			if t.parent[c] != p {
				return errors.New(errors.ErrCodeInternal, "child %q lists parent %q, expected %q", c, t.parent[c], p)
			}
			if t.rank[c] != i {
				return errors.New(errors.ErrCodeInternal, "child %q has rank %d at position %d", c, t.rank[c], i)
			}
		}
	}
	linked := len(t.roots)
	for _, kids := range t.children {
		linked += len(kids)
	}
	if linked != len(t.nodes) {
		return errors.New(errors.ErrCodeInternal, "%d nodes but %d linked entries", len(t.nodes), linked)
	}
	return nil
}

// NormalizeClasses returns a sorted copy of classes with blanks and
// duplicates removed.
func NormalizeClasses(classes []string) []string {
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		if c != "" {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func unknownNode(id ID) error {
	return errors.New(errors.ErrCodeUnknownNode, "node %q does not exist", id)
}
