package spatial

import (
	"slices"
	"testing"

	"github.com/matzehuels/xui/pkg/layout"
	"github.com/matzehuels/xui/pkg/style"
	"github.com/matzehuels/xui/pkg/tree"
)

type rulesMap map[tree.ID]style.Rules

func (m rulesMap) Resolved(id tree.ID) style.Rules { return m[id] }

// scene is a 100x100 root holding a row of two 20x20 boxes.
func scene(t *testing.T) (*tree.Tree, rulesMap) {
	t.Helper()
	tr := tree.New()
	for _, n := range [][2]tree.ID{{"root", tree.None}, {"a", "root"}, {"b", "root"}} {
		if err := tr.AddNode(n[0], tree.Container{}, n[1], nil); err != nil {
			t.Fatal(err)
		}
	}
	box := style.Rules{Width: style.Fixed(style.Px(20)), Height: style.Fixed(style.Px(20))}
	return tr, rulesMap{"a": box, "b": box}
}

func solve(t *testing.T, s *layout.Solver, tr *tree.Tree, r rulesMap) layout.Pass {
	t.Helper()
	order, err := tr.Sequence()
	if err != nil {
		t.Fatal(err)
	}
	return s.Solve(tr, r, order, layout.Vec2{X: 100, Y: 100})
}

func TestIndexQueries(t *testing.T) {
	tr, rules := scene(t)
	s := layout.NewSolver()
	ix := New()
	ix.Apply(solve(t, s, tr, rules), s)

	if ix.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", ix.Len())
	}

	tests := []struct {
		name string
		x, y float64
		want []tree.ID
	}{
		{"inside a", 10, 10, []tree.ID{"a", "root"}},
		{"shared edge", 20, 10, []tree.ID{"a", "b", "root"}},
		{"root only", 90, 90, []tree.ID{"root"}},
		{"outside", 150, 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ix.At(tt.x, tt.y); !slices.Equal(got, tt.want) {
				t.Errorf("At(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	got := ix.Within(Rect{Min: layout.Vec2{X: 25, Y: 0}, Max: layout.Vec2{X: 30, Y: 5}})
	if !slices.Equal(got, []tree.ID{"b", "root"}) {
		t.Errorf("Within() = %v, want [b root]", got)
	}

	r, ok := ix.Bounds("b")
	if !ok || r != (Rect{Min: layout.Vec2{X: 20}, Max: layout.Vec2{X: 40, Y: 20}}) {
		t.Errorf("Bounds(b) = %+v, %v", r, ok)
	}
}

func TestIndexRemovesOnlyOwnEntry(t *testing.T) {
	tr, rules := scene(t)
	s := layout.NewSolver()
	ix := New()
	ix.Apply(solve(t, s, tr, rules), s)

	before, _ := ix.Bounds("a")
	removed, err := tr.Remove("b")
	if err != nil {
		t.Fatal(err)
	}
	s.Purge(removed...)
	ix.Apply(solve(t, s, tr, rules), s)

	if ix.Len() != 2 {
		t.Errorf("Len() = %d, want 2", ix.Len())
	}
	if _, ok := ix.Bounds("b"); ok {
		t.Error("removed node still indexed")
	}
	if after, ok := ix.Bounds("a"); !ok || after != before {
		t.Errorf("sibling bounds changed: %+v -> %+v", before, after)
	}
	if got := ix.At(30, 10); !slices.Equal(got, []tree.ID{"root"}) {
		t.Errorf("At(30, 10) = %v, want [root]", got)
	}

	if err := tr.AddNode("b", tree.Container{}, "root", nil); err != nil {
		t.Fatal(err)
	}
	pass := solve(t, s, tr, rules)
	ix.Apply(pass, s)
	if tf, _ := s.Transform("b"); tf.Generation != pass.Generation {
		t.Errorf("re-added generation = %d, want %d", tf.Generation, pass.Generation)
	}
	if got := ix.At(30, 10); !slices.Equal(got, []tree.ID{"b", "root"}) {
		t.Errorf("At(30, 10) after re-add = %v, want [b root]", got)
	}
}

func TestIndexUpdatesChangedOnly(t *testing.T) {
	tr, rules := scene(t)
	s := layout.NewSolver()
	ix := New()
	ix.Apply(solve(t, s, tr, rules), s)

	rules["a"] = style.Rules{Width: style.Fixed(style.Px(50)), Height: style.Fixed(style.Px(20))}
	pass := solve(t, s, tr, rules)
	if !slices.Equal(pass.Changed, []tree.ID{"a", "b"}) {
		t.Fatalf("Changed = %v, want [a b]", pass.Changed)
	}
	ix.Apply(pass, s)

	if got := ix.At(45, 10); !slices.Equal(got, []tree.ID{"a", "root"}) {
		t.Errorf("At(45, 10) = %v, want [a root]", got)
	}
	if ix.Len() != 3 {
		t.Errorf("Len() = %d, want 3", ix.Len())
	}
}
