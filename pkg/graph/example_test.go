package graph_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/repograph/pkg/graph"
)

func ExampleReadGraph() {
	in := `{
	  "nodes": [
	    {"id": "my-repo", "label": "my-repo", "type": "repository"},
	    {"id": "src/main.py", "label": "main.py", "type": "python"}
	  ],
	  "edges": [{"from": "my-repo", "to": "src/main.py", "label": "contains"}]
	}`
	g, err := graph.ReadGraph(strings.NewReader(in))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, n := range g.Nodes {
		fmt.Println(n.ID, n.Type.Kind())
	}
	// Output:
	// my-repo repository
	// src/main.py file
}

func ExampleDetailOf() {
	d := graph.DetailOf(graph.Node{
		ID:           "src/api/routes.py",
		Label:        "routes.py",
		Type:         "file",
		Language:     "py",
		Size:         3584,
		Dependencies: []string{"flask", "models"},
	})
	fmt.Println(d.Label, d.SizeKB(), d.Dependencies)
	// Output:
	// routes.py 3.50 KB 2
}
