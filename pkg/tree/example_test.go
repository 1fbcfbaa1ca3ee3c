package tree_test

import (
	"fmt"

	"github.com/matzehuels/xui/pkg/tree"
)

func ExampleTree_Sequence() {
	t := tree.New()
	_ = t.AddNode("app", tree.Container{}, tree.None, []string{"col"})
	_ = t.AddNode("app.header", tree.Container{}, "app", nil)
	_ = t.AddNode("app.body", tree.Container{}, "app", []string{"row"})
	_ = t.AddNode("app.body.img", tree.Foreign{Tag: "img"}, "app.body", nil)

	order, _ := t.Sequence()
	for _, id := range order {
		fmt.Println(id)
	}
	// Output:
	// app
	// app.header
	// app.body
	// app.body.img
}

func ExampleTree_ReplaceChildren() {
	t := tree.New()
	_ = t.AddNode("list", tree.Container{}, tree.None, nil)
	_ = t.AddNode("list.a", tree.Container{}, "list", nil)
	_ = t.AddNode("list.b", tree.Container{}, "list", nil)

	removed, _ := t.ReplaceChildren("list", []tree.Spec{{ID: "list.c"}})
	kids, _ := t.Children("list")
	fmt.Println(removed, kids)
	// Output: [list.a list.b] [list.c]
}
