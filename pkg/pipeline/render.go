package pipeline

import (
	"bytes"
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/xui/pkg/dot"
	"github.com/matzehuels/xui/pkg/draw/sink"
	"github.com/matzehuels/xui/pkg/errors"
	"github.com/matzehuels/xui/pkg/observability"
	"github.com/matzehuels/xui/pkg/ui"
)

// Render generates output artifacts for the snapshot in the requested
// formats. Formats render concurrently; the first failure cancels the rest.
func Render(ctx context.Context, snap *ui.Snapshot, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := render(ctx, snap, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func render(ctx context.Context, snap *ui.Snapshot, opts Options) (map[string][]byte, error) {
	scene, err := Scene(snap)
	if err != nil {
		return nil, err
	}
	svgOpts := buildSVGOptions(opts)

	var mu sync.Mutex
	artifacts := make(map[string][]byte, len(opts.Formats))
	g, ctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			data, err := renderFormat(ctx, format, snap, scene, svgOpts, opts)
			if err != nil {
				return errors.Wrap(errors.GetCode(err), err, "render %s", format)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, format string, snap *ui.Snapshot, scene sink.Scene, svgOpts []sink.SVGOption, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(scene, svgOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(ctx, scene, sink.WithScale(opts.Scale), sink.WithPNGSVGOptions(svgOpts...))
	case FormatPDF:
		return sink.RenderPDF(ctx, scene, svgOpts...)
	case FormatJSON:
		return sink.RenderJSON(scene)
	case FormatYAML:
		return sink.RenderYAML(scene)
	case FormatDOT:
		return []byte(dot.ToDOT(snap, dot.Options{Detailed: opts.Detailed})), nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
}

// Scene emits the snapshot into an in-memory shape recorder.
func Scene(snap *ui.Snapshot) (sink.Scene, error) {
	var rec sink.Recorder
	if err := snap.Emit(&rec); err != nil {
		return sink.Scene{}, err
	}
	return rec.Scene(snap.Viewport), nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Outline {
		svgOpts = append(svgOpts, sink.WithOutline())
	}
	if opts.IDs {
		svgOpts = append(svgOpts, sink.WithIDs())
	}
	return svgOpts
}

// SnapshotBytes encodes a snapshot for the cache.
func SnapshotBytes(snap *ui.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := snap.WriteJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
