// Package sheet reads class-scoped stylesheets into cascade declarations.
//
// Only rules whose selectors are single classes are accepted:
//
//	.card, .panel {
//	    padding: 8px 4px;
//	    background-color: #223344;
//	}
//
// Each rule becomes one [style.Declaration] per selector with the style id
// "source#index", where index is the rule's position in the sheet. Loading
// the same source again therefore replaces its records in place.
package sheet

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"

	"github.com/matzehuels/xui/pkg/errors"
	"github.com/matzehuels/xui/pkg/style"
)

// BaseSource is the source name of the embedded base sheet.
const BaseSource = "base"

//go:embed base.css
var baseCSS string

// Sheet is a parsed stylesheet.
type Sheet struct {
	Source       string
	Declarations []style.Declaration
	// Ignored lists "selector: property" pairs and at-rules that were
	// skipped because the engine does not implement them.
	Ignored []string
}

// Parse parses text as the stylesheet named source.
func Parse(source, text string) (*Sheet, error) {
	if source == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "stylesheet source cannot be empty")
	}
	parsed, err := parser.Parse(text)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse stylesheet %s", source)
	}

	s := &Sheet{Source: source}
	for i, rule := range parsed.Rules {
		if rule.Kind != css.QualifiedRule {
			s.Ignored = append(s.Ignored, rule.Name)
			continue
		}
		classes, err := selectorClasses(rule)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "%s rule %d", source, i)
		}

		var rules style.Rules
		for _, d := range rule.Declarations {
			known, err := rules.Set(d.Property, d.Value)
			if err != nil {
				return nil, errors.Wrap(errors.GetCode(err), err, "%s %s", source, rule.Prelude)
			}
			if !known {
				s.Ignored = append(s.Ignored, fmt.Sprintf("%s: %s", strings.TrimSpace(rule.Prelude), d.Property))
			}
		}

		id := StyleID(source, i)
		for _, c := range classes {
			s.Declarations = append(s.Declarations, style.Declaration{Class: c, StyleID: id, Rules: rules})
		}
	}
	return s, nil
}

// ParseFile reads and parses the stylesheet at path. The path is the source.
func ParseFile(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "stylesheet %s", path)
		}
		return nil, err
	}
	return Parse(path, string(data))
}

// StyleID returns the style id of the index-th rule of source.
func StyleID(source string, index int) string {
	return fmt.Sprintf("%s#%d", source, index)
}

func selectorClasses(rule *css.Rule) ([]string, error) {
	selectors := rule.Selectors
	if len(selectors) == 0 {
		selectors = strings.Split(rule.Prelude, ",")
	}
	out := make([]string, 0, len(selectors))
	for _, sel := range selectors {
		sel = strings.TrimSpace(sel)
		name, ok := strings.CutPrefix(sel, ".")
		if !ok {
			return nil, errors.New(errors.ErrCodeUnsupported, "selector %q is not a class selector", sel)
		}
		if err := errors.ValidateClassName(name); err != nil {
			return nil, errors.New(errors.ErrCodeUnsupported, "selector %q is not a single class", sel)
		}
		out = append(out, name)
	}
	return out, nil
}

// Target receives declarations. *style.Cascade implements it.
type Target interface {
	AddStyle(class, styleID string, rules style.Rules) error
}

// Apply adds every declaration of s to t in sheet order.
func (s *Sheet) Apply(t Target) error {
	for _, d := range s.Declarations {
		if err := t.AddStyle(d.Class, d.StyleID, d.Rules); err != nil {
			return err
		}
	}
	return nil
}

var base = sync.OnceValue(func() *Sheet {
	s, err := Parse(BaseSource, baseCSS)
	if err != nil {
		errors.Internal("embedded base sheet: %v", err)
	}
	return s
})

// Base returns the embedded utility sheet (row, col, fill, fit, and
// spacing helpers). Pass its declarations to style.NewCascade.
func Base() *Sheet { return base() }

// BaseText returns the source text of the embedded base sheet.
func BaseText() string { return baseCSS }
