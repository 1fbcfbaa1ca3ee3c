package sink

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/xui/pkg/draw"
	"github.com/matzehuels/xui/pkg/layout"
	"github.com/matzehuels/xui/pkg/style"
)

func quad(x0, y0, x1, y1, z float64) []layout.Vec3 {
	return []layout.Vec3{{X: x0, Y: y0, Z: z}, {X: x1, Y: y0, Z: z}, {X: x1, Y: y1, Z: z}, {X: x0, Y: y1, Z: z}}
}

func testScene(t *testing.T) Scene {
	t.Helper()
	var r Recorder
	blue := r.AddMaterial(draw.Material{Color: style.RGB(0, 0, 255)})
	black := r.AddMaterial(draw.Material{})
	if err := r.WriteShape("child", quad(10, 10, 20, 20, 1), draw.QuadIndices, blue); err != nil {
		t.Fatal(err)
	}
	if err := r.WriteShape("root", quad(0, 0, 100, 50, 0), draw.QuadIndices, black); err != nil {
		t.Fatal(err)
	}
	return r.Scene(layout.Vec2{X: 100, Y: 50})
}

func TestRecorderScene(t *testing.T) {
	s := testScene(t)
	if len(s.Shapes) != 2 || len(s.Materials) != 2 {
		t.Fatalf("scene = %d shapes, %d materials", len(s.Shapes), len(s.Materials))
	}
	if s.Materials[0] != (MaterialEntry{Name: "mat-0000ff", Color: "#0000ff"}) {
		t.Errorf("Materials[0] = %+v", s.Materials[0])
	}

	var r Recorder
	r.AddMaterial(draw.Material{})
	r.Reset()
	if got := r.Scene(layout.Vec2{}); len(got.Materials) != 0 || len(got.Shapes) != 0 {
		t.Errorf("Scene() after Reset = %+v", got)
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testScene(t), WithIDs(), WithOutline(), WithBackground("#ffffff")))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.0 50.0"`) {
		t.Errorf("unexpected header: %.80s", svg)
	}
	root := strings.Index(svg, `data-id="root"`)
	child := strings.Index(svg, `data-id="child"`)
	if root < 0 || child < 0 || root > child {
		t.Errorf("root must be painted before child: root=%d child=%d", root, child)
	}
	if !strings.Contains(svg, `points="10.00,10.00 20.00,10.00 20.00,20.00 10.00,20.00" fill="#0000ff"`) {
		t.Errorf("child polygon missing:\n%s", svg)
	}
	if strings.Count(svg, "stroke=") != 2 {
		t.Errorf("want 2 outlined shapes:\n%s", svg)
	}
	if !strings.Contains(svg, `fill="#ffffff"`) {
		t.Error("background missing")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	s := testScene(t)
	data, err := RenderJSON(s)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	got, err := ReadJSON(data)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if got.Width != s.Width || len(got.Shapes) != 2 || got.Shapes[0].Points[2] != s.Shapes[0].Points[2] {
		t.Errorf("ReadJSON() = %+v", got)
	}
	if _, err := ReadJSON([]byte("{")); err == nil {
		t.Error("ReadJSON() of truncated input should fail")
	}
}

func TestRenderYAML(t *testing.T) {
	data, err := RenderYAML(testScene(t))
	if err != nil {
		t.Fatalf("RenderYAML() error: %v", err)
	}
	if !bytes.Contains(data, []byte("material: mat-0000ff")) {
		t.Errorf("yaml missing material:\n%s", data)
	}

	var back Scene
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("yaml.Unmarshal() error: %v", err)
	}
	if len(back.Shapes) != 2 || back.Shapes[1].ID != "root" {
		t.Errorf("decoded = %+v", back)
	}
}
