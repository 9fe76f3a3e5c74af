// Package viewport holds the interactive state of a graph view and the
// transitions that change it.
//
// A [Scene] is the positioned working set of one loaded graph. A [State]
// carries pan offset, zoom, hover, selection, drag and the visibility
// filters. Input is expressed as [Event] values and folded into the state
// with [Reduce]:
//
//	scene := viewport.FromLayout(l)
//	st := viewport.NewState(scene)
//	st = viewport.Reduce(st, scene, geom, viewport.PointerDown{Client: p})
//	st = viewport.Reduce(st, scene, geom, viewport.ZoomIn{})
//
// # Coordinates
//
// Node positions live in graph space (1400×900 units). Pointer events
// arrive in client coordinates and are mapped through the surface's
// backing/display scale, the pan offset and the zoom; see [State.ToGraph].
// Panning moves the offset by the raw pointer delta, independent of zoom.
//
// # Interaction
//
// Pressing on a node selects it and starts a drag; moving pins the node
// under the pointer via [Scene.Pin]. Pressing on empty space starts a pan.
// The arrow keys step the selection through the scene in order, wrapping,
// and centre the view on the selected node. Zoom commands step by a factor
// of 1.2 within [MinZoom, MaxZoom]. Wheel events are ignored.
//
// Hit-testing returns the first visible node within [HitRadius] in scene
// order. Overlapping nodes are not z-sorted.
package viewport
