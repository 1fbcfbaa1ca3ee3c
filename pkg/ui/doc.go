// Package ui is the engine facade: it owns one node tree with its style
// cascade, layout solver and spatial index behind a single read/write lock.
//
// # Usage
//
//	e, err := ui.New(ui.WithViewport(1280, 720), ui.WithBaseStyles(sheet.Base().Declarations...))
//	if err != nil {
//	    return err
//	}
//	_ = e.AddNode("app", tree.Container{}, tree.None, []string{"col", "fill"})
//	_ = e.AddNode("app.header", tree.Container{}, "app", []string{"row"})
//	res, err := e.Layout(ctx)
//	hits := e.At(10, 10)
//
// Mutations mark the engine stale; [Engine.Layout] resolves dirty styles,
// runs both layout phases and updates the spatial index with the nodes
// whose transform changed. A Layout call on an engine that is not stale is
// skipped and reports the previous generation.
//
// Queries reflect the last completed layout. Nodes added since then have no
// transform and are not emitted.
package ui
