package pipeline

import (
	"context"

	"github.com/matzehuels/xui/pkg/ui"
)

// Solve runs one layout pass on e and captures the solved scene.
func Solve(ctx context.Context, e *ui.Engine) (ui.Snapshot, ui.Result, error) {
	res, err := e.Layout(ctx)
	if err != nil {
		return ui.Snapshot{}, ui.Result{}, err
	}
	return e.Snapshot(), res, nil
}

// Build loads the scene and runs its first pass. Use it when the live
// engine is needed, for hit testing or serving queries.
func Build(ctx context.Context, opts Options) (*ui.Engine, ui.Result, error) {
	e, err := Load(ctx, opts)
	if err != nil {
		return nil, ui.Result{}, err
	}
	res, err := e.Layout(ctx)
	if err != nil {
		return nil, ui.Result{}, err
	}
	return e, res, nil
}
