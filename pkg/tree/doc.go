// Package tree provides the node graph of a UI document.
//
// # Overview
//
// A [Tree] is a forest of nodes connected by parent→child edges. Every edge
// carries a sibling rank: the position of the child among its siblings,
// assigned when the child is inserted. Ranks are contiguous from 0 and are
// renumbered when a sibling is removed, so [Tree.Children] always returns
// children in insertion order regardless of how the backing maps iterate.
//
// Nodes live in an arena keyed by [ID]; adjacency is kept in separate maps.
// Nodes never hold pointers to their parent or children, which keeps the
// structure free of ownership cycles and cheap to copy into snapshots.
//
// # Identity
//
// An [ID] is an opaque string. Markup readers derive ids from dot-separated
// element paths ("app.div[1]") with [HashID], which hashes the path with
// xxhash. Callers that need readable ids can use the path directly.
//
// # Node kinds
//
// [Kind] is a closed tagged union: [Container] for layout containers and
// [Foreign] for any element the engine does not recognise. Consumers switch
// on the concrete type:
//
//	switch k := n.Kind.(type) {
//	case tree.Container:
//	    // flex container rules
//	case tree.Foreign:
//	    // leaf rules; k.Tag holds the original element name
//	}
//
// # Ordering
//
// [Tree.Sequence] returns the topological order used by the cascade, the
// layout solver, and draw emission: every node follows all of its ancestors,
// roots are taken in creation order, and siblings in rank order. The output
// is identical across calls on an unchanged tree.
//
// # Errors
//
// Caller mistakes are reported as *errors.Error values with the codes
// DUPLICATE_NODE_ID, UNKNOWN_PARENT, UNKNOWN_NODE and CYCLE_DETECTED from
// package github.com/matzehuels/xui/pkg/errors. A Tree is not safe for
// concurrent use; the ui.Engine wraps it with a read/write lock.
package tree
