package classify_test

import (
	"fmt"

	"github.com/matzehuels/repograph/pkg/classify"
	"github.com/matzehuels/repograph/pkg/graph"
)

func ExampleClassify() {
	nodes := []graph.Node{
		{ID: "src/main.py", Label: "main.py"},
		{ID: "src/api/users.py", Label: "users.py"},
		{ID: "src/models/user.py", Label: "user.py"},
		{ID: "pyproject.toml", Label: "pyproject.toml"},
		{ID: "LICENSE", Label: "LICENSE"},
	}
	for _, n := range nodes {
		fmt.Printf("%-20s %s\n", n.ID, classify.Classify(n))
	}
	// Output:
	// src/main.py          entry
	// src/api/users.py     backend
	// src/models/user.py   data
	// pyproject.toml       config
	// LICENSE              other
}

func ExampleGroup() {
	groups := classify.Group([]graph.Node{
		{ID: "a", Label: "main.py"},
		{ID: "b", Label: "utils/helper.py"},
	})
	fmt.Println(groups[classify.Entry][0].ID, groups[classify.Utilities][0].ID)
	// Output:
	// a b
}
