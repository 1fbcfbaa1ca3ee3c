package style

import (
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/xui/pkg/errors"
)

// namedColors covers the keywords accepted besides hex and rgb() notation.
var namedColors = map[string]Color{
	"black":  RGB(0, 0, 0),
	"white":  RGB(255, 255, 255),
	"red":    RGB(255, 0, 0),
	"green":  RGB(0, 128, 0),
	"blue":   RGB(0, 0, 255),
	"yellow": RGB(255, 255, 0),
	"orange": RGB(255, 165, 0),
	"purple": RGB(128, 0, 128),
	"gray":   RGB(128, 128, 128),
	"grey":   RGB(128, 128, 128),
	"silver": RGB(192, 192, 192),
	"navy":   RGB(0, 0, 128),
	"teal":   RGB(0, 128, 128),
}

// ParseUnit parses a length: "12px", "50%", or a bare "0".
func ParseUnit(s string) (Unit, error) {
	return parseLength(s, true)
}

// ParseSpacing parses a gap or padding value. It accepts the forms of
// [ParseUnit] without negatives, plus "auto", which means 100%.
func ParseSpacing(s string) (Unit, error) {
	if strings.EqualFold(strings.TrimSpace(s), "auto") {
		return Pct(100), nil
	}
	return parseLength(s, false)
}

// parseMargin is ParseSpacing with negative lengths allowed.
func parseMargin(s string) (Unit, error) {
	if strings.EqualFold(strings.TrimSpace(s), "auto") {
		return Pct(100), nil
	}
	return parseLength(s, true)
}

// ParseSize parses a width or height: "auto", "fit-content", or a
// non-negative length.
func ParseSize(s string) (Size, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		return Auto(), nil
	case "fit-content":
		return FitContent(), nil
	}
	u, err := parseLength(s, false)
	if err != nil {
		return Size{}, err
	}
	return Fixed(u), nil
}

func parseLength(s string, allowNegative bool) (Unit, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	kind := UnitPixel
	num := raw
	switch {
	case strings.HasSuffix(raw, "px"):
		num = strings.TrimSuffix(raw, "px")
	case strings.HasSuffix(raw, "%"):
		kind = UnitPercent
		num = strings.TrimSuffix(raw, "%")
	case raw != "0":
		return Unit{}, malformed(s, "expected px, % or 0")
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Unit{}, malformed(s, "not a number")
	}
	if v < 0 && !allowNegative {
		return Unit{}, malformed(s, "must not be negative")
	}
	return Unit{Kind: kind, Value: v}, nil
}

// ParseColor parses "#rgb", "#rrggbb", "rgb(r, g, b)" or a color keyword.
func ParseColor(s string) (Color, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[raw]; ok {
		return c, nil
	}

	if strings.HasPrefix(raw, "rgb(") && strings.HasSuffix(raw, ")") {
		parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(raw, "rgb("), ")"), ",")
		if len(parts) != 3 {
			return Color{}, malformed(s, "rgb() takes three components")
		}
		var rgb [3]uint8
		for i, p := range parts {
			n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return Color{}, malformed(s, "rgb() components must be integers in 0-255")
			}
			rgb[i] = uint8(n)
		}
		return RGB(rgb[0], rgb[1], rgb[2]), nil
	}

	if strings.HasPrefix(raw, "#") {
		c, err := colorful.Hex(raw)
		if err != nil {
			return Color{}, malformed(s, "invalid hex color")
		}
		r, g, b := c.RGB255()
		return RGB(r, g, b), nil
	}

	return Color{}, malformed(s, "unknown color")
}

// ParseDirection parses a flex-direction value.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "row":
		return DirectionRow, nil
	case "column", "col":
		return DirectionColumn, nil
	}
	return DirectionUnset, malformed(s, "expected row or column")
}

// ParseDisplay parses a display value.
func ParseDisplay(s string) (Display, error) {
	if strings.EqualFold(strings.TrimSpace(s), "flex") {
		return DisplayFlex, nil
	}
	return DisplayUnset, malformed(s, "expected flex")
}

// ParseJustify parses a justify-content value. Only start alignment is
// implemented; other CSS keywords fail with UNSUPPORTED.
func ParseJustify(s string) (Justify, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "start", "flex-start":
		return JustifyStart, nil
	case "end", "flex-end", "center", "space-between", "space-around", "space-evenly":
		return JustifyUnset, errors.New(errors.ErrCodeUnsupported, "justify-content %q is not supported", v)
	}
	return JustifyUnset, malformed(s, "expected start")
}

// parseBox expands the 1-4 value shorthand into Edges.
func parseBox(value string, parse func(string) (Unit, error)) (Edges, error) {
	fields := strings.Fields(value)
	units := make([]Unit, len(fields))
	for i, f := range fields {
		u, err := parse(f)
		if err != nil {
			return Edges{}, err
		}
		units[i] = u
	}

	switch len(units) {
	case 1:
		return Uniform(units[0]), nil
	case 2:
		return Edges{Top: units[0], Right: units[1], Bottom: units[0], Left: units[1]}, nil
	case 3:
		return Edges{Top: units[0], Right: units[1], Bottom: units[2], Left: units[1]}, nil
	case 4:
		return Edges{Top: units[0], Right: units[1], Bottom: units[2], Left: units[3]}, nil
	}
	return Edges{}, malformed(value, "expected 1 to 4 values")
}

// Set parses value and assigns it to the named property. It reports whether
// the property is known; unknown properties leave r untouched and return
// false with a nil error.
func (r *Rules) Set(property, value string) (bool, error) {
	next := *r
	var err error
	switch strings.ToLower(strings.TrimSpace(property)) {
	case "display":
		next.Display, err = ParseDisplay(value)
	case "background-color", "background":
		next.Background, err = ParseColor(value)
	case "flex-direction":
		next.Direction, err = ParseDirection(value)
	case "justify-content":
		next.Justify, err = ParseJustify(value)
	case "gap":
		next.Gap, err = ParseSpacing(value)
	case "width":
		next.Width, err = ParseSize(value)
	case "height":
		next.Height, err = ParseSize(value)
	case "margin":
		var e Edges
		if e, err = parseBox(value, parseMargin); err == nil {
			next.Margin = e
		}
	case "padding":
		var e Edges
		if e, err = parseBox(value, ParseSpacing); err == nil {
			next.Padding = e
		}
	case "margin-top":
		next.Margin.Top, err = parseMargin(value)
	case "margin-right":
		next.Margin.Right, err = parseMargin(value)
	case "margin-bottom":
		next.Margin.Bottom, err = parseMargin(value)
	case "margin-left":
		next.Margin.Left, err = parseMargin(value)
	case "padding-top":
		next.Padding.Top, err = ParseSpacing(value)
	case "padding-right":
		next.Padding.Right, err = ParseSpacing(value)
	case "padding-bottom":
		next.Padding.Bottom, err = ParseSpacing(value)
	case "padding-left":
		next.Padding.Left, err = ParseSpacing(value)
	default:
		return false, nil
	}
	if err != nil {
		return true, errors.New(errors.GetCode(err), "property %s: %s", property, errors.UserMessage(err))
	}
	*r = next
	return true, nil
}

func malformed(value, reason string) error {
	return errors.New(errors.ErrCodeMalformedStyleUnit, "%q: %s", value, reason)
}
