package pipeline

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/matzehuels/xui/pkg/errors"
	"github.com/matzehuels/xui/pkg/markup"
	"github.com/matzehuels/xui/pkg/observability"
	"github.com/matzehuels/xui/pkg/style"
	"github.com/matzehuels/xui/pkg/style/sheet"
	"github.com/matzehuels/xui/pkg/ui"
)

// ReadInput reads a source document from disk.
func ReadInput(path string) (Input, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Input{}, errors.New(errors.ErrCodeFileNotFound, "file not found: %s", path)
	}
	if err != nil {
		return Input{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return Input{Name: path, Data: data}, nil
}

// ReadInputs reads several source documents in order.
func ReadInputs(paths []string) ([]Input, error) {
	inputs := make([]Input, 0, len(paths))
	for _, p := range paths {
		in, err := ReadInput(p)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// Load creates an engine sized to the options' viewport and loads the
// stylesheets, then the markup. Stylesheets are declared in order after the
// base sheet, so later sheets win. The engine has not run a pass yet.
func Load(ctx context.Context, opts Options) (*ui.Engine, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Markup.Name)
	start := time.Now()

	e, err := load(opts)
	n := 0
	if e != nil {
		n = e.Len()
	}
	hooks.OnLoadComplete(ctx, opts.Markup.Name, n, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug("loaded scene", "markup", opts.Markup.Name, "sheets", len(opts.Sheets), "nodes", n)
	return e, nil
}

func load(opts Options) (*ui.Engine, error) {
	var base []style.Declaration
	if !opts.NoBase {
		base = sheet.Base().Declarations
	}
	e, err := ui.New(
		ui.WithViewport(opts.Width, opts.Height),
		ui.WithBaseStyles(base...),
		ui.WithLogger(opts.Logger),
	)
	if err != nil {
		return nil, err
	}

	for _, in := range opts.Sheets {
		s, err := sheet.Parse(in.Name, string(in.Data))
		if err != nil {
			return nil, err
		}
		for _, ignored := range s.Ignored {
			opts.Logger.Warn("ignoring unsupported declaration", "sheet", in.Name, "rule", ignored)
		}
		if err := s.Apply(e); err != nil {
			return nil, err
		}
	}

	var mopts []markup.Option
	if opts.RawIDs {
		mopts = append(mopts, markup.WithRawIDs())
	}
	doc, err := markup.Parse(bytes.NewReader(opts.Markup.Data), mopts...)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "markup %s", opts.Markup.Name)
	}
	if err := markup.Load(e, doc); err != nil {
		return nil, err
	}
	return e, nil
}
