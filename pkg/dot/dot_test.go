package dot

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/xui/pkg/layout"
	"github.com/matzehuels/xui/pkg/ui"
)

func testSnapshot() *ui.Snapshot {
	size := func(w, h float64) layout.Transform {
		return layout.Transform{Box: layout.Box{Size: layout.Vec2{X: w, Y: h}}, Generation: 1}
	}
	return &ui.Snapshot{
		Viewport:   layout.Vec2{X: 100, Y: 50},
		Generation: 1,
		Nodes: []ui.NodeSnapshot{
			{ID: "app", Kind: "div", Classes: []string{"row", "fill"}, Background: "#000000", Transform: size(100, 50)},
			{ID: "app.div", Parent: "app", Kind: "div", Background: "#ffffff", Transform: size(50, 50)},
			{ID: "app.img[1]", Parent: "app", Rank: 1, Kind: "img", Background: "#ffffff", Transform: size(50, 50)},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testSnapshot(), Options{})

	for _, want := range []string{
		"digraph G {",
		"ordering=out;",
		`"app" [label="app", fillcolor="#000000", fontcolor=white];`,
		`"app.div" [label="app.div", fillcolor="#ffffff"];`,
		`"app" -> "app.div";`,
		`"app" -> "app.img[1]";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, dot)
		}
	}
	if strings.Index(dot, `-> "app.div"`) > strings.Index(dot, `-> "app.img[1]"`) {
		t.Error("edges are not in rank order")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testSnapshot(), Options{Detailed: true})
	for _, want := range []string{
		`label="app\ndiv #0\n100x50\n.row .fill"`,
		`label="app.img[1]\nimg #1\n50x50"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("detailed ToDOT() missing %s:\n%s", want, dot)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "points header replaced",
			in:   `<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44"><g/></svg>`,
		},
		{
			name: "no viewBox",
			in:   `<svg><g/></svg>`,
			want: `<svg><g/></svg>`,
		},
		{
			name: "empty viewBox",
			in:   `<svg viewBox="0 0 0 0"></svg>`,
			want: `<svg viewBox="0 0 0 0"></svg>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(normalizeViewBox([]byte(tt.in))); got != tt.want {
				t.Errorf("normalizeViewBox() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(testSnapshot(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "app.div") {
		t.Errorf("RenderSVG() output does not look like the diagram:\n%s", svg)
	}
}

func TestRenderSVGInvalid(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("RenderSVG() of truncated DOT should fail")
	}
}
