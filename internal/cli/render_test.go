package cli

import (
	"slices"
	"testing"

	"github.com/matzehuels/xui/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and case", " SVG, dot ", []string{"svg", "dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.input); !slices.Equal(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"valid svg", []string{"svg"}, false},
		{"valid yaml", []string{"yaml"}, false},
		{"valid dot", []string{"dot"}, false},
		{"valid all", []string{"svg", "pdf", "png", "json", "yaml", "dot"}, false},
		{"invalid format", []string{"gif"}, true},
		{"mixed valid invalid", []string{"svg", "gif"}, true},
		{"empty slice", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pipeline.ValidateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "app.xml", "app"},
		{"", "dir/app.xml", "dir/app"},
		{"out.svg", "app.xml", "out"},
		{"out.yaml", "app.xml", "out"},
		{"out.txt", "app.xml", "out.txt"},
		{"out", "app.xml", "out"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	got := outputPaths("scene.svg", "app.xml", []string{"svg"})
	if got["svg"] != "scene.svg" {
		t.Errorf("single format path = %q, want scene.svg", got["svg"])
	}

	got = outputPaths("", "app.xml", []string{"svg", "json"})
	if got["svg"] != "app.svg" || got["json"] != "app.json" {
		t.Errorf("multiple format paths = %v", got)
	}

	got = outputPaths("out/scene.svg", "app.xml", []string{"svg", "dot"})
	if got["svg"] != "out/scene.svg" || got["dot"] != "out/scene.dot" {
		t.Errorf("base path from output = %v", got)
	}
}

func TestFirstPositive(t *testing.T) {
	if got := firstPositive(0, 640); got != 640 {
		t.Errorf("firstPositive(0, 640) = %v", got)
	}
	if got := firstPositive(320, 640); got != 320 {
		t.Errorf("firstPositive(320, 640) = %v", got)
	}
	if got := firstPositive(0, 0); got != 0 {
		t.Errorf("firstPositive(0, 0) = %v", got)
	}
}

func TestCompleteFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg", "png", "pdf", "json", "yaml", "dot"}},
		{"p", []string{"png", "pdf"}},
		{"svg,j", []string{"svg,json"}},
		{"svg,x", nil},
	}

	for _, tt := range tests {
		got, _ := completeFormats(nil, nil, tt.input)
		if !slices.Equal(got, tt.want) {
			t.Errorf("completeFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
