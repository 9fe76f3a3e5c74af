package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/repograph/pkg/graph"
	"github.com/matzehuels/repograph/pkg/render/nodelink"
)

func ExampleToDOT() {
	n := graph.Node{ID: "app", Type: graph.TypeFile}
	n.Place(graph.Point{X: 700, Y: 100})
	dot := nodelink.ToDOT(graph.Layout{Width: 1400, Height: 900, Nodes: []graph.Node{n}}, nodelink.Options{})
	for _, line := range strings.Split(dot, "\n") {
		if strings.HasPrefix(line, `  "app"`) {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// "app" [label="app", pos="700.00,800.00!", fillcolor="#10b981b3"];
}
