// Package pipeline provides the load → layout → render pipeline shared by
// the CLI and the query server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read markup and stylesheets into a fresh [ui.Engine]
//  2. Layout: run one pass and capture a [ui.Snapshot]
//  3. Render: emit the snapshot through the shape writers in every
//     requested format (SVG, PNG, PDF, JSON, YAML, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	markup, _ := pipeline.ReadInput("app.xml")
//	opts := pipeline.Options{
//	    Markup:  markup,
//	    Formats: []string{"svg", "json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Snapshots and artifacts are cached under keys derived from the content of
// the inputs, so an unchanged scene renders without running a pass.
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/xui/pkg/cache"
	"github.com/matzehuels/xui/pkg/errors"
	"github.com/matzehuels/xui/pkg/style/sheet"
	"github.com/matzehuels/xui/pkg/ui"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default viewport width in pixels.
	DefaultWidth = 1920.0

	// DefaultHeight is the default viewport height in pixels.
	DefaultHeight = 1080.0

	// DefaultScale is the default PNG resolution multiplier.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatYAML: true,
	FormatDOT:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Input is one named source document.
type Input struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}

// Options contains all configuration for the pipeline.
type Options struct {
	// Load options
	Markup Input   `json:"markup"`
	Sheets []Input `json:"sheets,omitempty"`
	NoBase bool    `json:"no_base,omitempty"` // skip the embedded utility sheet
	RawIDs bool    `json:"raw_ids,omitempty"` // use element paths as node ids

	// Layout options
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Outline  bool     `json:"outline,omitempty"`
	IDs      bool     `json:"ids,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // detailed labels in DOT output
	Scale    float64  `json:"scale,omitempty"`

	// Refresh bypasses cached snapshots and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Snapshot is the solved scene.
	Snapshot ui.Snapshot

	// ContentHash is the hash of the inputs the snapshot was solved from.
	ContentHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	Generation uint64
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SnapshotHit bool // Whether the snapshot came from cache
	RenderHit   bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid format: %q (must be one of: %s)", format, strings.Join(formatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

func formatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. Calling it again has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks the inputs and applies layout defaults.
func (o *Options) ValidateForLoad() error {
	if len(o.Markup.Data) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "markup is required")
	}
	if o.Markup.Name == "" {
		o.Markup.Name = "markup"
	}
	for i, s := range o.Sheets {
		if s.Name == "" {
			return errors.New(errors.ErrCodeInvalidInput, "stylesheet %d has no name", i)
		}
	}
	o.SetLayoutDefaults()
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "viewport must not be negative, got %gx%g", o.Width, o.Height)
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	return ValidateFormats(o.Formats)
}

// ContentHash hashes everything the load stage reads.
func (o *Options) ContentHash() string {
	srcs := make([]cache.Source, 0, len(o.Sheets)+2)
	srcs = append(srcs, cache.Source{Name: o.Markup.Name, Data: o.Markup.Data})
	for _, s := range o.Sheets {
		srcs = append(srcs, cache.Source{Name: s.Name, Data: s.Data})
	}
	if !o.NoBase {
		srcs = append(srcs, cache.Source{Name: sheet.BaseSource, Data: []byte(sheet.BaseText())})
	}
	return cache.HashSources(srcs...)
}

// SnapshotKeyOpts returns cache key options for the solved snapshot.
func (o *Options) SnapshotKeyOpts() cache.SnapshotKeyOpts {
	return cache.SnapshotKeyOpts{
		Width:  o.Width,
		Height: o.Height,
		RawIDs: o.RawIDs,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format. Only
// the settings that affect that format contribute.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Snapshot: o.SnapshotKeyOpts(), Format: format}
	switch format {
	case FormatSVG, FormatPDF:
		k.Outline, k.IDs = o.Outline, o.IDs
	case FormatPNG:
		k.Outline, k.IDs, k.Scale = o.Outline, o.IDs, o.Scale
	case FormatDOT:
		k.Detailed = o.Detailed
	}
	return k
}
