// Package sink provides [draw.Writer] implementations and output formats for
// emitted shapes.
//
// # Overview
//
// A [Recorder] collects the shapes and materials written by [draw.Emit] into
// a [Scene]. A scene renders to:
//
//   - SVG: one polygon per shape, painted in depth order
//   - JSON and YAML: the scene data for external tools
//   - PDF and PNG: via SVG and rsvg-convert
//
// Basic usage:
//
//	var rec sink.Recorder
//	if err := draw.Emit(&rec, order, solver, cascade); err != nil {
//	    return err
//	}
//	scene := rec.Scene(viewport)
//	svg := sink.RenderSVG(scene, sink.WithOutline())
//
// # SVG Options
//
//   - [WithOutline]: stroke every shape with a darker shade of its fill
//   - [WithIDs]: add a data-id attribute carrying the node id
//   - [WithBackground]: fill the canvas before painting shapes
//
// [draw.Writer]: github.com/matzehuels/xui/pkg/draw.Writer
// [draw.Emit]: github.com/matzehuels/xui/pkg/draw.Emit
package sink
