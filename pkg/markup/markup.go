// Package markup reads element markup into node specs for the engine.
//
// Every element becomes one node. "div" elements are containers; any other
// tag becomes a foreign node carrying its tag name. The "classes" attribute
// (or "class") is a whitespace-separated class list. Text, comments and
// doctype declarations are skipped.
//
// Nodes are named by element path: the first root is "div", a first child
// is "div.span", and a child with n earlier siblings is "div.span[n]". Ids
// are the xxhash of the path unless [WithRawIDs] is given.
package markup

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/matzehuels/xui/pkg/errors"
	"github.com/matzehuels/xui/pkg/tree"
)

// voidElements never take an end tag.
var voidElements = map[string]bool{
	"area": true, "br": true, "col": true, "embed": true, "hr": true,
	"img": true, "input": true, "link": true, "meta": true, "source": true,
	"track": true, "wbr": true,
}

// Document is the result of reading one markup source.
type Document struct {
	// Specs lists the nodes in document order; parents precede children.
	Specs []tree.Spec
	// Paths maps each id to the element path it was derived from.
	Paths map[tree.ID]string
}

// Option configures a read.
type Option func(*reader)

// WithRawIDs uses element paths as ids instead of their hashes.
func WithRawIDs() Option {
	return func(r *reader) { r.raw = true }
}

// WithPrefix prepends prefix and a dot to every element path.
func WithPrefix(prefix string) Option {
	return func(r *reader) { r.prefix = prefix }
}

// Instance prefixes paths with name and a fresh uuid, so one template can
// be loaded several times into the same engine.
func Instance(name string) Option {
	return WithPrefix(name + "-" + uuid.NewString())
}

// Under attaches the root elements to an existing node.
func Under(parent tree.ID) Option {
	return func(r *reader) { r.parent = parent }
}

type frame struct {
	id       tree.ID
	path     string
	tag      string
	children int
}

type reader struct {
	raw    bool
	prefix string
	parent tree.ID

	roots int
	stack []*frame
	doc   *Document
}

// Parse reads markup from r.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	rd := &reader{doc: &Document{Paths: make(map[tree.ID]string)}}
	for _, opt := range opts {
		opt(rd)
	}

	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read markup")
			}
			if n := len(rd.stack); n > 0 {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "unclosed element <%s>", rd.stack[n-1].tag)
			}
			return rd.doc, nil

		case html.StartTagToken:
			tok := z.Token()
			f, err := rd.open(tok)
			if err != nil {
				return nil, err
			}
			if !voidElements[tok.Data] {
				rd.stack = append(rd.stack, f)
			}

		case html.SelfClosingTagToken:
			if _, err := rd.open(z.Token()); err != nil {
				return nil, err
			}

		case html.EndTagToken:
			tok := z.Token()
			if voidElements[tok.Data] {
				continue
			}
			n := len(rd.stack)
			if n == 0 || rd.stack[n-1].tag != tok.Data {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "unexpected end tag </%s>", tok.Data)
			}
			rd.stack = rd.stack[:n-1]
		}
	}
}

// ParseString reads markup from s.
func ParseString(s string, opts ...Option) (*Document, error) {
	return Parse(strings.NewReader(s), opts...)
}

// ParseFile reads the markup file at path.
func ParseFile(path string, opts ...Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "markup %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return Parse(f, opts...)
}

func (rd *reader) open(tok html.Token) (*frame, error) {
	var path string
	parent := rd.parent
	if n := len(rd.stack); n > 0 {
		top := rd.stack[n-1]
		path = segment(top.path+"."+tok.Data, top.children)
		parent = top.id
		top.children++
	} else {
		path = segment(tok.Data, rd.roots)
		if rd.prefix != "" {
			path = rd.prefix + "." + path
		}
		rd.roots++
	}
	if err := errors.ValidateNodePath(path); err != nil {
		return nil, err
	}

	id := tree.HashID(path)
	if rd.raw {
		id = tree.ID(path)
	}
	if _, dup := rd.doc.Paths[id]; dup {
		return nil, errors.New(errors.ErrCodeDuplicateNodeID, "element path %q is not unique", path)
	}

	rd.doc.Specs = append(rd.doc.Specs, tree.Spec{
		ID:      id,
		Kind:    tree.KindOf(tok.Data),
		Parent:  parent,
		Classes: classes(tok.Attr),
	})
	rd.doc.Paths[id] = path
	return &frame{id: id, path: path, tag: tok.Data}, nil
}

func segment(base string, n int) string {
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s[%d]", base, n)
}

func classes(attrs []html.Attribute) []string {
	var out []string
	for _, a := range attrs {
		if a.Key == "classes" || a.Key == "class" {
			out = append(out, strings.Fields(a.Val)...)
		}
	}
	return tree.NormalizeClasses(out)
}

// Builder receives nodes. *ui.Engine and *tree.Tree implement it.
type Builder interface {
	AddNode(id tree.ID, kind tree.Kind, parent tree.ID, classes []string) error
}

// Load adds the document's nodes to b in document order.
func Load(b Builder, doc *Document) error {
	for _, s := range doc.Specs {
		if err := b.AddNode(s.ID, s.Kind, s.Parent, s.Classes); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "load %s", doc.Paths[s.ID])
		}
	}
	return nil
}
