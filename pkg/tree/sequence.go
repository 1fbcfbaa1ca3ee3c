package tree

import "github.com/matzehuels/xui/pkg/errors"

// Sequence returns every node in topological order using Kahn's algorithm.
//
// The queue starts with the roots in creation order. When a node is taken
// from the queue its children are released in sibling-rank order, so nodes
// that become eligible together are processed by rank. Each node therefore
// appears after all of its ancestors, and the result depends only on the
// tree's structure, never on map iteration order.
//
// The layout solver walks the result forward to place parents before
// children, and backwards to measure children before parents.
//
// It returns CYCLE_DETECTED if the queue drains before every node has been
// emitted. That state cannot be built through the Tree API; callers should
// abort the pass and surface the error.
func (t *Tree) Sequence() ([]ID, error) {
	pending := make(map[ID]int, len(t.nodes))
	for id := range t.nodes {
		if _, ok := t.parent[id]; ok {
			pending[id] = 1
		}
	}

	order := make([]ID, 0, len(t.nodes))
	queue := make([]ID, len(t.roots))
	copy(queue, t.roots)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		for _, child := range t.children[id] {
			pending[child]--
			if pending[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	if len(order) != len(t.nodes) {
		return nil, errors.New(errors.ErrCodeCycleDetected,
			"sequenced %d of %d nodes; the remaining nodes are unreachable from any root", len(order), len(t.nodes))
	}
	return order, nil
}

// Reverse returns a reversed copy of order.
func Reverse(order []ID) []ID {
	out := make([]ID, len(order))
	for i, id := range order {
		out[len(order)-1-i] = id
	}
	return out
}
