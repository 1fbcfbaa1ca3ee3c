package ui

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/xui/pkg/draw"
	"github.com/matzehuels/xui/pkg/errors"
	"github.com/matzehuels/xui/pkg/layout"
	"github.com/matzehuels/xui/pkg/observability"
	"github.com/matzehuels/xui/pkg/spatial"
	"github.com/matzehuels/xui/pkg/style"
	"github.com/matzehuels/xui/pkg/tree"
)

// DefaultViewport is the viewport of an engine created without WithViewport.
var DefaultViewport = layout.Vec2{X: 1920, Y: 1080}

// Engine owns one node tree and everything derived from it: the cascade,
// the solver's transforms and the spatial index. It is safe for concurrent
// use: mutations and layout take an exclusive lock, queries a shared one.
type Engine struct {
	mu sync.RWMutex

	id       uuid.UUID
	tree     *tree.Tree
	cascade  *style.Cascade
	solver   *layout.Solver
	index    *spatial.Index
	viewport layout.Vec2
	order    []tree.ID
	stale    bool
	logger   *log.Logger
}

type config struct {
	viewport layout.Vec2
	logger   *log.Logger
	base     []style.Declaration
}

// Option configures an Engine.
type Option func(*config)

// WithViewport sets the initial viewport size in pixels.
func WithViewport(width, height float64) Option {
	return func(c *config) { c.viewport = layout.Vec2{X: width, Y: height} }
}

// WithLogger sets the logger for pass summaries. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithBaseStyles declares the base stylesheet. Base declarations precede
// every style added later.
func WithBaseStyles(decls ...style.Declaration) Option {
	return func(c *config) { c.base = append(c.base, decls...) }
}

// New creates an empty engine.
func New(opts ...Option) (*Engine, error) {
	cfg := config{viewport: DefaultViewport}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.viewport.X < 0 || cfg.viewport.Y < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "viewport must not be negative, got %gx%g", cfg.viewport.X, cfg.viewport.Y)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}

	cascade, err := style.NewCascade(cfg.base...)
	if err != nil {
		return nil, err
	}
	return &Engine{
		id:       uuid.New(),
		tree:     tree.New(),
		cascade:  cascade,
		solver:   layout.NewSolver(),
		index:    spatial.New(),
		viewport: cfg.viewport,
		stale:    true,
		logger:   cfg.logger,
	}, nil
}

// ID returns the unique id of this engine instance.
func (e *Engine) ID() uuid.UUID { return e.id }

// =============================================================================
// Mutation API
// =============================================================================

// AddNode inserts a node under parent (tree.None for a root).
func (e *Engine) AddNode(id tree.ID, kind tree.Kind, parent tree.ID, classes []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.tree.AddNode(id, kind, parent, classes); err != nil {
		return err
	}
	e.cascade.Attach(id, classes)
	e.stale = true
	return nil
}

// AddStyle inserts or replaces one rule record of a class.
func (e *Engine) AddStyle(class, styleID string, rules style.Rules) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.cascade.AddStyle(class, styleID, rules); err != nil {
		return err
	}
	e.stale = true
	return nil
}

// RemoveStyle drops one rule record and reports whether it existed.
func (e *Engine) RemoveStyle(class, styleID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	ok := e.cascade.RemoveStyle(class, styleID)
	e.stale = e.stale || ok
	return ok
}

// SetClasses replaces the class memberships of id.
func (e *Engine) SetClasses(id tree.ID, classes []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.tree.SetClasses(id, classes); err != nil {
		return err
	}
	e.cascade.SetClasses(id, classes)
	e.stale = true
	return nil
}

// Remove deletes id and its subtree and returns the removed ids.
func (e *Engine) Remove(id tree.ID) ([]tree.ID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	removed, err := e.tree.Remove(id)
	if err != nil {
		return nil, err
	}
	e.forget(removed)
	return removed, nil
}

// ReplaceChildren swaps every child subtree of parent for specs and returns
// the removed ids. Nothing changes if any spec is invalid.
func (e *Engine) ReplaceChildren(parent tree.ID, specs []tree.Spec) ([]tree.ID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	removed, err := e.tree.ReplaceChildren(parent, specs)
	if err != nil {
		return nil, err
	}
	e.forget(removed)
	for _, s := range specs {
		e.cascade.Attach(s.ID, s.Classes)
	}
	return removed, nil
}

// forget drops removed nodes from the cascade, the solver and the order of
// the last pass, so readers between passes never see a purged node.
func (e *Engine) forget(removed []tree.ID) {
	gone := make(map[tree.ID]bool, len(removed))
	for _, id := range removed {
		gone[id] = true
		e.cascade.Detach(id)
	}
	e.solver.Purge(removed...)

	order := make([]tree.ID, 0, len(e.order))
	for _, id := range e.order {
		if !gone[id] {
			order = append(order, id)
		}
	}
	e.order = order
	e.stale = true
}

// Resize changes the viewport. The next layout reruns only if the size
// differs.
func (e *Engine) Resize(width, height float64) error {
	if width < 0 || height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "viewport must not be negative, got %gx%g", width, height)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	v := layout.Vec2{X: width, Y: height}
	if v != e.viewport {
		e.viewport = v
		e.stale = true
	}
	return nil
}

// =============================================================================
// Layout
// =============================================================================

// Result describes one call to Layout.
type Result struct {
	layout.Pass
	Skipped  bool          // nothing changed since the previous pass
	Resolved int           // nodes whose style was recalculated
	Duration time.Duration // zero when skipped
}

// Layout resolves dirty styles, solves geometry and updates the spatial
// index. When nothing changed since the last pass it returns a skipped
// result carrying the previous generation.
func (e *Engine) Layout(ctx context.Context) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.stale {
		observability.Engine().OnPassSkipped(ctx)
		return Result{Pass: layout.Pass{Generation: e.solver.Generation(), Order: e.order}, Skipped: true}, nil
	}

	start := time.Now()
	order, err := e.tree.Sequence()
	if err != nil {
		return Result{}, err
	}
	resolved := e.cascade.Recalculate()
	pass := e.solver.Solve(e.tree, e.cascade, order, e.viewport)
	e.index.Apply(pass, e.solver)
	e.order = order
	e.stale = false

	res := Result{Pass: pass, Resolved: len(resolved), Duration: time.Since(start)}
	e.logger.Debug("layout pass",
		"generation", pass.Generation,
		"nodes", len(order),
		"styled", res.Resolved,
		"changed", len(pass.Changed),
		"removed", len(pass.Removed),
		"duration", res.Duration,
	)
	observability.Engine().OnPass(ctx, pass.Generation, len(pass.Changed), len(pass.Removed), res.Duration)
	return res, nil
}

// Emit writes one shape per node in sequencer order. It reports the state
// of the last layout; nodes added since then are not emitted and nodes
// removed since then are skipped.
func (e *Engine) Emit(w draw.Writer) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return draw.Emit(w, e.order, e.solver, e.cascade)
}

// =============================================================================
// Query API
// =============================================================================

// Len returns the number of nodes.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tree.Len()
}

// Roots returns the root ids in creation order.
func (e *Engine) Roots() []tree.ID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tree.Roots()
}

// Node returns a copy of the node id.
func (e *Engine) Node(id tree.ID) (tree.Node, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tree.Node(id)
}

// Children returns the children of id in rank order.
func (e *Engine) Children(id tree.ID) ([]tree.ID, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tree.Children(id)
}

// Parent returns the parent of id, or tree.None for roots.
func (e *Engine) Parent(id tree.ID) (tree.ID, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tree.Parent(id)
}

// IsLeaf reports whether id has no children.
func (e *Engine) IsLeaf(id tree.ID) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tree.IsLeaf(id)
}

// Style returns the resolved rule record of id as of the last layout.
func (e *Engine) Style(id tree.ID) (style.Rules, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.tree.Has(id) {
		return style.Rules{}, errors.New(errors.ErrCodeUnknownNode, "node %q does not exist", id)
	}
	return e.cascade.Resolved(id), nil
}

// Transform returns the transform of id from the last layout. It reports
// false for unknown nodes and nodes added since.
func (e *Engine) Transform(id tree.ID) (layout.Transform, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.solver.Transform(id)
}

// At returns the ids under the point, deepest first.
func (e *Engine) At(x, y float64) []tree.ID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.index.At(x, y)
}

// Within returns the ids intersecting r, deepest first.
func (e *Engine) Within(r spatial.Rect) []tree.ID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.index.Within(r)
}

// Generation returns the generation of the last pass, 0 before the first.
func (e *Engine) Generation() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.solver.Generation()
}

// Viewport returns the current viewport size.
func (e *Engine) Viewport() layout.Vec2 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.viewport
}

// Stale reports whether the next Layout call will run a pass.
func (e *Engine) Stale() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stale
}
