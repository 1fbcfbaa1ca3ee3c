package sink

import (
	"bytes"
	"cmp"
	"fmt"
	"html"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	outline    bool
	ids        bool
	background string
}

// WithOutline strokes every shape with a darker shade of its fill.
func WithOutline() SVGOption { return func(r *svgRenderer) { r.outline = true } }

// WithIDs adds a data-id attribute with the node id to every polygon.
func WithIDs() SVGOption { return func(r *svgRenderer) { r.ids = true } }

// WithBackground fills the canvas with a hex color before painting shapes.
func WithBackground(hex string) SVGOption { return func(r *svgRenderer) { r.background = hex } }

// RenderSVG renders the scene as SVG. Shapes are painted shallowest first;
// shapes at the same depth keep emission order.
func RenderSVG(s Scene, opts ...SVGOption) []byte {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}

	fills := make(map[string]string, len(s.Materials))
	for _, m := range s.Materials {
		fills[m.Name] = m.Color
	}

	shapes := slices.Clone(s.Shapes)
	slices.SortStableFunc(shapes, func(a, b Shape) int { return cmp.Compare(a.Depth(), b.Depth()) })

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.Width, s.Height, s.Width, s.Height)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", html.EscapeString(r.background))
	}
	for _, sh := range shapes {
		r.renderShape(&buf, sh, fillOf(fills, sh.Material))
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderShape(buf *bytes.Buffer, sh Shape, fill string) {
	pts := make([]string, len(sh.Points))
	for i, p := range sh.Points {
		pts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}

	fmt.Fprintf(buf, `  <polygon points="%s" fill="%s"`, strings.Join(pts, " "), fill)
	if r.outline {
		fmt.Fprintf(buf, ` stroke="%s" stroke-width="1"`, shade(fill))
	}
	if r.ids {
		fmt.Fprintf(buf, ` data-id="%s"`, html.EscapeString(sh.ID))
	}
	buf.WriteString("/>\n")
}

func fillOf(fills map[string]string, material string) string {
	if c, ok := fills[material]; ok {
		return c
	}
	return "#000000"
}

// shade darkens a hex color in Lab space; black gets a mid grey so outlines
// stay visible.
func shade(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "#000000"
	}
	black := colorful.Color{}
	if c == black {
		return colorful.Color{R: 0.4, G: 0.4, B: 0.4}.Hex()
	}
	return c.BlendLab(black, 0.35).Clamped().Hex()
}
