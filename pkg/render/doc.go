// Package render converts SVG documents to raster and print formats.
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert from librsvg. Both the shape
// sinks and the tree diagrams use them:
//
//	svg := sink.RenderSVG(scene)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// When rsvg-convert is missing, the conversions fail with UNSUPPORTED and an
// install hint:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
package render
