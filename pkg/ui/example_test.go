package ui_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/xui/pkg/style"
	"github.com/matzehuels/xui/pkg/style/sheet"
	"github.com/matzehuels/xui/pkg/tree"
	"github.com/matzehuels/xui/pkg/ui"
)

func ExampleEngine_Layout() {
	e, _ := ui.New(ui.WithViewport(200, 100), ui.WithBaseStyles(sheet.Base().Declarations...))
	_ = e.AddStyle("box", "app#0", style.Rules{
		Width:  style.Fixed(style.Px(50)),
		Height: style.Fixed(style.Pct(50)),
	})

	// A row with two boxes spaced 8px apart
	_ = e.AddNode("app", tree.Container{}, tree.None, []string{"row", "fill", "gap-2"})
	_ = e.AddNode("a", tree.Container{}, "app", []string{"box"})
	_ = e.AddNode("b", tree.Container{}, "app", []string{"box"})

	res, _ := e.Layout(context.Background())
	a, _ := e.Transform("a")
	b, _ := e.Transform("b")
	fmt.Println("Changed:", res.Changed)
	fmt.Println("a:", a)
	fmt.Println("b:", b)
	fmt.Println("Hit:", e.At(83, 25))

	res, _ = e.Layout(context.Background())
	fmt.Println("Skipped:", res.Skipped)
	// Output:
	// Changed: [app a b]
	// a: center=(25,25,1) size=50x50 gen=1
	// b: center=(83,25,1) size=50x50 gen=1
	// Hit: [b app]
	// Skipped: true
}
