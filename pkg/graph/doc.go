// Package graph defines the data contract between the analysis backend and
// the layout and rendering engine.
//
// # Graph Description
//
// A [Graph] is what the backend hands over once an analysis job completes:
//
//	{
//	  "nodes": [
//	    {"id": "my-repo", "label": "my-repo", "type": "repository"},
//	    {"id": "src/main.py", "label": "main.py", "type": "file", "language": "py", "size": 2048}
//	  ],
//	  "edges": [
//	    {"from": "my-repo", "to": "src/main.py", "label": "contains"}
//	  ]
//	}
//
// Node IDs must be unique. Edges may reference IDs that do not exist; such
// dangling edges are tolerated everywhere and simply never drawn.
//
// # Layout
//
// A [Layout] is the same node and edge set after classification, planning
// and relaxation, with every node carrying an (x, y) position in graph
// space ([CanvasWidth] × [CanvasHeight]).
//
// # Node Detail
//
// [DetailOf] produces the side-panel summary of a selected node.
package graph
