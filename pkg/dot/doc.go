// Package dot renders the node tree of a solved engine as a node-link
// diagram.
//
// # Overview
//
// [ToDOT] converts a [ui.Snapshot] into Graphviz DOT source: one box per
// node, filled with the node's resolved background and connected to its
// children with arrows. Children keep their rank order left to right.
//
//	snap := engine.Snapshot()
//	src := dot.ToDOT(&snap, dot.Options{Detailed: true})
//	svg, err := dot.RenderSVG(ctx, src)
//
// The DOT source can also be saved and processed with external Graphviz
// tools.
//
// # Dependencies
//
// SVG rendering runs in-process through [github.com/goccy/go-graphviz]. PDF
// and PNG conversion go through [render.ToPDF] and [render.ToPNG] and need
// librsvg (rsvg-convert).
package dot
