package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/xui/pkg/errors"
	"github.com/matzehuels/xui/pkg/ui"
)

const (
	testMarkup = `<div classes="row fill gap-2"><div classes="box"></div><div classes="box"></div></div>`
	testSheet  = `.box { width: 50px; height: 50%; background-color: #ff0000; }`
)

// scene writes the test markup and sheet and returns their paths.
func scene(t *testing.T) (dir, markup, sheet string) {
	t.Helper()
	dir = t.TempDir()
	return dir, writeFile(t, dir, "app.xml", testMarkup), writeFile(t, dir, "app.css", testSheet)
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRootCommand(t *testing.T) {
	root := New(os.Stderr, LogInfo).RootCommand()
	want := []string{"layout", "render", "visualize", "hit", "tree", "serve", "cache", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("root command has no %q subcommand", name)
		}
	}
	if root.Version == "" {
		t.Error("root command has no version")
	}
}

func TestLayoutCommand(t *testing.T) {
	dir, markup, sheet := scene(t)
	out := filepath.Join(dir, "scene.json")

	err := run(t, "layout", markup, "-s", sheet, "--raw-ids", "--width", "200", "--height", "100", "--no-cache", "-o", out)
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	snap, err := ui.ReadSnapshot(f)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Viewport.X != 200 || len(snap.Nodes) != 3 {
		t.Fatalf("snapshot = %+v", snap)
	}
	second, ok := snap.Node("div.div[1]")
	if !ok || second.Transform.Center.X != 83 || second.Transform.Size.X != 50 {
		t.Errorf("div.div[1] = %+v", second)
	}
}

func TestLayoutCommandYAML(t *testing.T) {
	dir, markup, sheet := scene(t)
	out := filepath.Join(dir, "scene.yaml")

	if err := run(t, "layout", markup, "-s", sheet, "--no-cache", "-o", out); err != nil {
		t.Fatalf("layout error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("background: '#ff0000'")) {
		t.Errorf("yaml snapshot:\n%s", data)
	}
}

func TestLayoutCommandConfigViewport(t *testing.T) {
	dir, markup, sheet := scene(t)
	config := writeFile(t, dir, "xui.toml", "[viewport]\nwidth = 400\nheight = 300\n\n[cache]\nbackend = \"none\"\n")
	out := filepath.Join(dir, "scene.json")

	if err := run(t, "--config", config, "layout", markup, "-s", sheet, "-o", out); err != nil {
		t.Fatalf("layout error: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	snap, err := ui.ReadSnapshot(f)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Viewport.X != 400 || snap.Viewport.Y != 300 {
		t.Errorf("viewport = %v, want 400x300 from the config", snap.Viewport)
	}

	if err := run(t, "--config", config, "layout", markup, "-s", sheet, "--width", "100", "-o", out); err != nil {
		t.Fatal(err)
	}
}

func TestRenderCommand(t *testing.T) {
	dir, markup, sheet := scene(t)
	base := filepath.Join(dir, "out")

	err := run(t, "render", markup, "-s", sheet, "-f", "svg,json,dot", "--ids", "--raw-ids", "--no-cache", "-o", base)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte(`data-id="div.div[1]"`)) {
		t.Errorf("svg output lacks node ids:\n%s", svg)
	}
	dot, err := os.ReadFile(base + ".dot")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(dot), "digraph G {") {
		t.Errorf("dot output = %q", dot)
	}
	if _, err := os.Stat(base + ".json"); err != nil {
		t.Errorf("json output missing: %v", err)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	_, markup, sheet := scene(t)

	if err := run(t, "render", markup, "-f", "gif", "--no-cache"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("render -f gif error = %v, want INVALID_INPUT", err)
	}
	if err := run(t, "render", "missing.xml", "-s", sheet, "--no-cache"); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("render missing.xml error = %v, want FILE_NOT_FOUND", err)
	}
	if err := run(t, "render"); err == nil {
		t.Error("render without arguments should fail")
	}
}

func TestHitCommand(t *testing.T) {
	_, markup, sheet := scene(t)

	if err := run(t, "hit", markup, "-s", sheet, "--x", "25", "--y", "25"); err != nil {
		t.Errorf("hit error: %v", err)
	}
	if err := run(t, "hit", markup, "-s", sheet, "--x", "25"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("hit without --y error = %v", err)
	}
}

func TestTreeCommand(t *testing.T) {
	dir, markup, sheet := scene(t)
	out := filepath.Join(dir, "tree.dot")

	if err := run(t, "tree", markup, "-s", sheet, "--raw-ids", "--detailed", "-o", out); err != nil {
		t.Fatalf("tree error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"div" -> "div.div"`)) {
		t.Errorf("tree output lacks the parent edge:\n%s", data)
	}

	if err := run(t, "tree", markup, "-o", filepath.Join(dir, "tree.gif")); err == nil {
		t.Error("tree with an unsupported extension should fail")
	}
}

func TestVisualizeCommand(t *testing.T) {
	dir, markup, sheet := scene(t)
	snapPath := filepath.Join(dir, "scene.json")
	if err := run(t, "layout", markup, "-s", sheet, "--raw-ids", "--no-cache", "-o", snapPath); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "from-snapshot.svg")
	if err := run(t, "visualize", snapPath, "--ids", "--no-cache", "-o", out); err != nil {
		t.Fatalf("visualize error: %v", err)
	}
	svg, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte(`data-id="div.div"`)) {
		t.Errorf("svg from snapshot lacks node ids:\n%s", svg)
	}

	if err := run(t, "visualize", markup, "--no-cache"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("visualize of markup error = %v, want INVALID_FORMAT", err)
	}
}
