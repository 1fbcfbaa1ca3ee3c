package ui

import (
	"bytes"
	"context"
	"slices"
	"sync"
	"testing"

	"github.com/matzehuels/xui/pkg/draw"
	"github.com/matzehuels/xui/pkg/errors"
	"github.com/matzehuels/xui/pkg/layout"
	"github.com/matzehuels/xui/pkg/spatial"
	"github.com/matzehuels/xui/pkg/style"
	"github.com/matzehuels/xui/pkg/tree"
)

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return e
}

func mustLayout(t *testing.T, e *Engine) Result {
	t.Helper()
	res, err := e.Layout(context.Background())
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	return res
}

// half builds a full-viewport root with one half-size child.
func half(t *testing.T, e *Engine) {
	t.Helper()
	steps := []error{
		e.AddStyle("fill", "t#0", style.Rules{Width: style.Fixed(style.Pct(100)), Height: style.Fixed(style.Pct(100))}),
		e.AddStyle("half", "t#1", style.Rules{Width: style.Fixed(style.Pct(50)), Height: style.Fixed(style.Pct(50))}),
		e.AddNode("root", tree.Container{}, tree.None, []string{"fill"}),
		e.AddNode("child", tree.Container{}, "root", []string{"half"}),
	}
	for _, err := range steps {
		if err != nil {
			t.Fatal(err)
		}
	}
}

func TestEngineLayout(t *testing.T) {
	e := newEngine(t, WithViewport(1920, 1080))
	half(t, e)

	res := mustLayout(t, e)
	if res.Skipped || res.Generation != 1 || len(res.Changed) != 2 || res.Resolved != 2 {
		t.Fatalf("Layout() = %+v", res)
	}

	tf, ok := e.Transform("child")
	if !ok {
		t.Fatal("child has no transform")
	}
	if tf.Size != (layout.Vec2{X: 960, Y: 540}) || tf.Center.X != 480 || tf.Center.Y != 270 {
		t.Errorf("child transform = %v", tf)
	}
	if got := e.At(480, 270); !slices.Equal(got, []tree.ID{"child", "root"}) {
		t.Errorf("At(480, 270) = %v", got)
	}
	if got := e.At(1500, 900); !slices.Equal(got, []tree.ID{"root"}) {
		t.Errorf("At(1500, 900) = %v", got)
	}
}

func TestLayoutSkippedWhenUnchanged(t *testing.T) {
	e := newEngine(t)
	half(t, e)
	mustLayout(t, e)

	res := mustLayout(t, e)
	if !res.Skipped || res.Generation != 1 {
		t.Errorf("second Layout() = %+v, want skipped at generation 1", res)
	}

	if err := e.Resize(1920, 1080); err != nil {
		t.Fatal(err)
	}
	if e.Stale() {
		t.Error("Resize to the same size marked the engine stale")
	}

	if err := e.Resize(800, 600); err != nil {
		t.Fatal(err)
	}
	res = mustLayout(t, e)
	if res.Skipped || res.Generation != 2 || len(res.Changed) != 2 {
		t.Errorf("Layout() after Resize = %+v", res)
	}
	if err := e.Resize(-1, 10); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Resize(-1, 10) error = %v", err)
	}
}

func TestAddStyleRestyles(t *testing.T) {
	e := newEngine(t, WithViewport(100, 100))
	half(t, e)
	mustLayout(t, e)

	if err := e.AddStyle("half", "t#2", style.Rules{Width: style.Fixed(style.Px(10))}); err != nil {
		t.Fatal(err)
	}
	res := mustLayout(t, e)
	if res.Resolved != 1 || !slices.Equal(res.Changed, []tree.ID{"child"}) {
		t.Errorf("Layout() = resolved %d changed %v, want 1 and [child]", res.Resolved, res.Changed)
	}
	if tf, _ := e.Transform("child"); tf.Size.X != 10 {
		t.Errorf("child width = %v, want 10", tf.Size.X)
	}

	rules, err := e.Style("child")
	if err != nil || rules.Width != style.Fixed(style.Px(10)) {
		t.Errorf("Style(child) = %+v, %v", rules, err)
	}
	if _, err := e.Style("ghost"); !errors.Is(err, errors.ErrCodeUnknownNode) {
		t.Errorf("Style(ghost) error = %v", err)
	}
}

func TestReplaceChildren(t *testing.T) {
	e := newEngine(t, WithViewport(100, 100))
	half(t, e)
	mustLayout(t, e)

	removed, err := e.ReplaceChildren("root", []tree.Spec{
		{ID: "fresh", Kind: tree.Container{}, Classes: []string{"half"}},
		{ID: "fresh.leaf", Kind: tree.Foreign{Tag: "img"}, Parent: "fresh"},
	})
	if err != nil {
		t.Fatalf("ReplaceChildren() error: %v", err)
	}
	if !slices.Equal(removed, []tree.ID{"child"}) {
		t.Errorf("removed = %v, want [child]", removed)
	}

	res := mustLayout(t, e)
	if !slices.Equal(res.Removed, []tree.ID{"child"}) {
		t.Errorf("Removed = %v, want [child]", res.Removed)
	}
	if _, ok := e.Transform("child"); ok {
		t.Error("removed node kept its transform")
	}
	if tf, ok := e.Transform("fresh.leaf"); !ok || tf.Generation != res.Generation {
		t.Errorf("fresh.leaf transform = %v, %v", tf, ok)
	}
	if got := e.At(25, 25); !slices.Equal(got, []tree.ID{"fresh.leaf", "fresh", "root"}) {
		t.Errorf("At(25, 25) = %v", got)
	}

	if _, err := e.ReplaceChildren("root", []tree.Spec{{ID: "x", Kind: tree.Container{}, Parent: "nowhere"}}); !errors.Is(err, errors.ErrCodeUnknownParent) {
		t.Errorf("ReplaceChildren() with a bad parent error = %v", err)
	}
	if kids, _ := e.Children("root"); !slices.Equal(kids, []tree.ID{"fresh"}) {
		t.Errorf("failed ReplaceChildren changed children: %v", kids)
	}
}

func TestRemove(t *testing.T) {
	e := newEngine(t, WithViewport(100, 100))
	half(t, e)
	mustLayout(t, e)

	if _, err := e.Remove("child"); err != nil {
		t.Fatal(err)
	}
	mustLayout(t, e)
	if got := e.Within(spatial.Rect{Max: layout.Vec2{X: 100, Y: 100}}); !slices.Equal(got, []tree.ID{"root"}) {
		t.Errorf("Within() = %v, want [root]", got)
	}
	if _, err := e.Remove("child"); !errors.Is(err, errors.ErrCodeUnknownNode) {
		t.Errorf("second Remove() error = %v", err)
	}
}

func TestReadersBetweenRemoveAndLayout(t *testing.T) {
	e := newEngine(t, WithViewport(100, 100))
	half(t, e)
	mustLayout(t, e)

	if _, err := e.Remove("child"); err != nil {
		t.Fatal(err)
	}

	var rec recorder
	if err := e.Emit(&rec); err != nil {
		t.Fatalf("Emit() error: %v", err)
	}
	if !slices.Equal(rec.ids, []tree.ID{"root"}) {
		t.Errorf("Emit() ids = %v, want [root]", rec.ids)
	}
	snap := e.Snapshot()
	if len(snap.Nodes) != 1 || snap.Nodes[0].ID != "root" {
		t.Errorf("Snapshot() nodes = %+v, want only root", snap.Nodes)
	}

	if _, err := e.ReplaceChildren("root", []tree.Spec{{ID: "other", Kind: tree.Container{}}}); err != nil {
		t.Fatal(err)
	}
	rec = recorder{}
	if err := e.Emit(&rec); err != nil {
		t.Fatalf("Emit() after ReplaceChildren error: %v", err)
	}
	if !slices.Equal(rec.ids, []tree.ID{"root"}) {
		t.Errorf("Emit() ids = %v, want [root]", rec.ids)
	}
}

func TestQueries(t *testing.T) {
	e := newEngine(t)
	half(t, e)

	if got := e.Roots(); !slices.Equal(got, []tree.ID{"root"}) {
		t.Errorf("Roots() = %v", got)
	}
	if p, _ := e.Parent("child"); p != "root" {
		t.Errorf("Parent(child) = %q", p)
	}
	if leaf, _ := e.IsLeaf("child"); !leaf {
		t.Error("IsLeaf(child) = false")
	}
	if e.Len() != 2 || e.Generation() != 0 {
		t.Errorf("Len() = %d, Generation() = %d", e.Len(), e.Generation())
	}
	if err := e.SetClasses("child", []string{"fill"}); err != nil {
		t.Fatal(err)
	}
	if n, _ := e.Node("child"); !slices.Equal(n.Classes, []string{"fill"}) {
		t.Errorf("Node(child).Classes = %v", n.Classes)
	}
	if err := e.SetClasses("ghost", nil); !errors.Is(err, errors.ErrCodeUnknownNode) {
		t.Errorf("SetClasses(ghost) error = %v", err)
	}
}

type recorder struct {
	cache draw.MaterialCache
	ids   []tree.ID
	mats  []string
}

func (r *recorder) AddMaterial(m draw.Material) string { return r.cache.Add(m) }

func (r *recorder) WriteShape(id tree.ID, _ []layout.Vec3, _ []uint16, mat string) error {
	r.ids = append(r.ids, id)
	r.mats = append(r.mats, mat)
	return nil
}

func TestSnapshot(t *testing.T) {
	e := newEngine(t, WithViewport(200, 100))
	half(t, e)
	_ = e.AddStyle("half", "t#9", style.Rules{Background: style.RGB(0, 255, 0)})
	mustLayout(t, e)

	snap := e.Snapshot()
	if snap.Engine != e.ID().String() || snap.Generation != 1 || len(snap.Nodes) != 2 {
		t.Fatalf("Snapshot() = %+v", snap)
	}
	child, ok := snap.Node("child")
	if !ok || child.Parent != "root" || child.Kind != "div" || child.Background != "#00ff00" {
		t.Errorf("child snapshot = %+v", child)
	}
	if child.Style["width"] != "50%" {
		t.Errorf("child style = %v", child.Style)
	}

	var buf bytes.Buffer
	if err := snap.WriteJSON(&buf); err != nil {
		t.Fatal(err)
	}
	back, err := ReadSnapshot(&buf)
	if err != nil {
		t.Fatalf("ReadSnapshot() error: %v", err)
	}
	if c, _ := back.Node("child"); c.Transform != child.Transform {
		t.Errorf("round trip transform = %v, want %v", c.Transform, child.Transform)
	}

	var live, cached recorder
	if err := e.Emit(&live); err != nil {
		t.Fatal(err)
	}
	if err := back.Emit(&cached); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(live.ids, cached.ids) || !slices.Equal(live.mats, cached.mats) {
		t.Errorf("snapshot emission %v %v differs from engine %v %v", cached.ids, cached.mats, live.ids, live.mats)
	}

	buf.Reset()
	if err := snap.WriteYAML(&buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("background: '#00ff00'")) {
		t.Errorf("yaml output:\n%s", buf.String())
	}
}

func TestConcurrentAccess(t *testing.T) {
	e := newEngine(t, WithViewport(500, 500))
	half(t, e)
	mustLayout(t, e)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = e.At(10, 10)
				_ = e.Snapshot()
			}
		}()
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = e.Resize(float64(100+i*10+j), 300)
				_, _ = e.Layout(context.Background())
			}
		}(i)
	}
	wg.Wait()

	if err := e.Resize(500, 500); err != nil {
		t.Fatal(err)
	}
	mustLayout(t, e)
	if tf, _ := e.Transform("child"); tf.Size.X != 250 {
		t.Errorf("child width = %v, want 250", tf.Size.X)
	}
}

func TestNewWithBaseStyles(t *testing.T) {
	e := newEngine(t, WithBaseStyles(style.Declaration{
		Class: "box", StyleID: "base#0", Rules: style.Rules{Width: style.Fixed(style.Px(7))},
	}))
	_ = e.AddNode("n", tree.Container{}, tree.None, []string{"box"})
	mustLayout(t, e)
	if tf, _ := e.Transform("n"); tf.Size.X != 7 {
		t.Errorf("width = %v, want 7", tf.Size.X)
	}

	if _, err := New(WithViewport(-5, 1)); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("New() with a negative viewport error = %v", err)
	}
	if _, err := New(WithBaseStyles(style.Declaration{Class: "", StyleID: "x"})); err == nil {
		t.Error("New() with an invalid base style should fail")
	}
}
