package viewport

import (
	"math"
	"testing"

	"github.com/matzehuels/repograph/pkg/graph"
)

func placed(id string, typ graph.NodeType, x, y float64) graph.Node {
	n := graph.Node{ID: id, Label: id, Type: typ}
	n.Place(graph.Point{X: x, Y: y})
	return n
}

func testScene() *Scene {
	return NewScene([]graph.Node{
		placed("repo", graph.TypeRepository, 700, 100),
		placed("dir", graph.TypeDirectory, 400, 400),
		placed("file", "python", 1000, 400),
	}, []graph.Edge{
		{From: "repo", To: "dir"},
		{From: "repo", To: "file"},
		{From: "dir", To: "ghost"},
	})
}

func near(a, b graph.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestNewState(t *testing.T) {
	s := testScene()
	st := NewState(s)
	if st.Zoom != 1 || st.Offset != (graph.Point{}) || st.LoadID != s.LoadID {
		t.Errorf("NewState = %+v", st)
	}
	if st.Filters != ShowAll {
		t.Errorf("filters = %+v", st.Filters)
	}
}

func TestSyncResetsOnNewScene(t *testing.T) {
	s1 := testScene()
	st := NewState(s1)
	st.Zoom = 2
	st.SelectedID = "dir"
	st.Filters.File = false

	if got := st.Sync(s1); got.Zoom != 2 {
		t.Errorf("Sync same scene reset state")
	}
	s2 := testScene()
	got := st.Sync(s2)
	if got.Zoom != 1 || got.SelectedID != "" || got.LoadID != s2.LoadID {
		t.Errorf("Sync new scene = %+v", got)
	}
	if got.Filters.File {
		t.Error("filters not carried over")
	}
}

func TestZoomClamp(t *testing.T) {
	s := testScene()
	st := NewState(s)
	for i := 0; i < 50; i++ {
		st = Reduce(st, s, CanvasGeometry, ZoomIn{})
		if st.Zoom > MaxZoom {
			t.Fatalf("zoom in step %d: %v > %v", i, st.Zoom, MaxZoom)
		}
	}
	if st.Zoom != MaxZoom {
		t.Errorf("zoom = %v, want %v", st.Zoom, MaxZoom)
	}
	for i := 0; i < 50; i++ {
		st = Reduce(st, s, CanvasGeometry, ZoomOut{})
		if st.Zoom < MinZoom {
			t.Fatalf("zoom out step %d: %v < %v", i, st.Zoom, MinZoom)
		}
	}
	if st.Zoom != MinZoom {
		t.Errorf("zoom = %v, want %v", st.Zoom, MinZoom)
	}
}

func TestZoomStepAndPercent(t *testing.T) {
	s := testScene()
	st := Reduce(NewState(s), s, CanvasGeometry, ZoomIn{})
	if st.ZoomPercent() != 120 {
		t.Errorf("ZoomPercent = %d, want 120", st.ZoomPercent())
	}
	st = Reduce(st, s, CanvasGeometry, ZoomOut{})
	if st.ZoomPercent() != 100 {
		t.Errorf("ZoomPercent = %d, want 100", st.ZoomPercent())
	}
}

func TestResetView(t *testing.T) {
	s := testScene()
	st := NewState(s)
	st.Zoom, st.Offset = 2.5, graph.Point{X: 10, Y: -40}
	st = Reduce(st, s, CanvasGeometry, ResetView{})
	if st.Zoom != 1 || st.Offset != (graph.Point{}) {
		t.Errorf("ResetView = %+v", st)
	}
}

func TestTransformRoundTrip(t *testing.T) {
	geoms := []Geometry{
		CanvasGeometry,
		{Origin: graph.Point{X: 30, Y: 120}, Display: graph.Point{X: 700, Y: 450}, Backing: graph.Point{X: 1400, Y: 900}},
		{Origin: graph.Point{X: 5, Y: 5}, Display: graph.Point{X: 1000, Y: 900}, Backing: graph.Point{X: 1400, Y: 900}},
	}
	states := []State{
		{Zoom: 1},
		{Zoom: 0.3, Offset: graph.Point{X: 200, Y: -50}},
		{Zoom: 2.7, Offset: graph.Point{X: -900, Y: 13.5}},
	}
	pts := []graph.Point{{X: 0, Y: 0}, {X: 700, Y: 450}, {X: 1350, Y: 50}, {X: 123.4, Y: 567.8}}
	for _, g := range geoms {
		for _, st := range states {
			for _, p := range pts {
				if got := st.ToGraph(st.ToScreen(p, g), g); !near(got, p) {
					t.Errorf("round trip %v via %+v %+v = %v", p, st, g, got)
				}
			}
		}
	}
}

func TestToGraphAppliesBackingScale(t *testing.T) {
	// canvas displayed at half size: client (350, 225) is device (700, 450)
	g := Geometry{Display: graph.Point{X: 700, Y: 450}, Backing: graph.Point{X: 1400, Y: 900}}
	st := State{Zoom: 2, Offset: graph.Point{X: 100, Y: 50}}
	got := st.ToGraph(graph.Point{X: 350, Y: 225}, g)
	if want := (graph.Point{X: 300, Y: 200}); !near(got, want) {
		t.Errorf("ToGraph = %v, want %v", got, want)
	}
}

func TestHitTest(t *testing.T) {
	s := testScene()
	tests := []struct {
		name string
		p    graph.Point
		f    Filters
		want int
		ok   bool
	}{
		{"center", graph.Point{X: 400, Y: 400}, ShowAll, 1, true},
		{"inside radius", graph.Point{X: 415, Y: 415}, ShowAll, 1, true},
		{"on radius", graph.Point{X: 422, Y: 400}, ShowAll, -1, false},
		{"empty space", graph.Point{X: 50, Y: 50}, ShowAll, -1, false},
		{"hidden type", graph.Point{X: 400, Y: 400}, Filters{Repository: true, File: true}, -1, false},
		{"folded file type", graph.Point{X: 1000, Y: 400}, ShowAll, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, ok := HitTest(s, tt.f, tt.p)
			if i != tt.want || ok != tt.ok {
				t.Errorf("HitTest = %d, %v; want %d, %v", i, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestHitTestFirstMatchWins(t *testing.T) {
	s := NewScene([]graph.Node{
		placed("a", graph.TypeFile, 500, 500),
		placed("b", graph.TypeFile, 505, 500),
	}, nil)
	if i, _ := HitTest(s, ShowAll, graph.Point{X: 504, Y: 500}); i != 0 {
		t.Errorf("HitTest = %d, want 0", i)
	}
}

func TestHitTestSkipsUnplaced(t *testing.T) {
	s := NewScene([]graph.Node{{ID: "a", Type: graph.TypeFile}}, nil)
	if _, ok := HitTest(s, ShowAll, graph.Point{}); ok {
		t.Error("unplaced node was hit")
	}
}

func TestDrag(t *testing.T) {
	s := testScene()
	st := NewState(s)
	st = Reduce(st, s, CanvasGeometry, PointerDown{Client: graph.Point{X: 401, Y: 399}})
	if st.DraggedID != "dir" || st.SelectedID != "dir" || st.SelectedIndex != 1 || st.Panning {
		t.Fatalf("after down: %+v", st)
	}
	st = Reduce(st, s, CanvasGeometry, PointerMove{Client: graph.Point{X: 600, Y: 700}})
	n, _ := s.Node("dir")
	if n.Pos() != (graph.Point{X: 600, Y: 700}) || !n.Pinned {
		t.Errorf("dragged node at %v pinned=%v", n.Pos(), n.Pinned)
	}
	st = Reduce(st, s, CanvasGeometry, PointerUp{})
	if st.DraggedID != "" {
		t.Errorf("drag not ended: %+v", st)
	}
	st = Reduce(st, s, CanvasGeometry, PointerMove{Client: graph.Point{X: 10, Y: 10}})
	if n.Pos() != (graph.Point{X: 600, Y: 700}) {
		t.Errorf("node moved after release: %v", n.Pos())
	}
	if st.SelectedID != "dir" {
		t.Errorf("selection lost after release")
	}
}

func TestDragRespectsZoom(t *testing.T) {
	s := testScene()
	st := NewState(s).WithZoom(2)
	st.Offset = graph.Point{X: -100, Y: -100}
	// dir (400,400) is drawn at device (700,700)
	st = Reduce(st, s, CanvasGeometry, PointerDown{Client: graph.Point{X: 700, Y: 700}})
	if st.DraggedID != "dir" {
		t.Fatalf("missed node: %+v", st)
	}
	Reduce(st, s, CanvasGeometry, PointerMove{Client: graph.Point{X: 900, Y: 500}})
	n, _ := s.Node("dir")
	if want := (graph.Point{X: 500, Y: 300}); !near(n.Pos(), want) {
		t.Errorf("node at %v, want %v", n.Pos(), want)
	}
}

func TestPan(t *testing.T) {
	s := testScene()
	st := NewState(s).WithZoom(2)
	st = Reduce(st, s, CanvasGeometry, PointerDown{Client: graph.Point{X: 50, Y: 850}})
	if !st.Panning || st.DraggedID != "" {
		t.Fatalf("expected pan start: %+v", st)
	}
	st = Reduce(st, s, CanvasGeometry, PointerMove{Client: graph.Point{X: 80, Y: 840}})
	st = Reduce(st, s, CanvasGeometry, PointerMove{Client: graph.Point{X: 100, Y: 860}})
	if st.Offset != (graph.Point{X: 50, Y: 10}) {
		t.Errorf("offset = %v, want screen delta (50, 10)", st.Offset)
	}
	st = Reduce(st, s, CanvasGeometry, PointerLeave{})
	if st.Panning {
		t.Error("pointer leave did not end pan")
	}
}

func TestPanScalesToBacking(t *testing.T) {
	s := testScene()
	g := Geometry{Display: graph.Point{X: 100, Y: 40}, Backing: graph.Point{X: 1400, Y: 900}}
	tests := []struct {
		name     string
		from, to graph.Point
		want     graph.Point
	}{
		{"right", graph.Point{X: 0.5, Y: 39.5}, graph.Point{X: 10.5, Y: 39.5}, graph.Point{X: 140}},
		{"down", graph.Point{X: 0.5, Y: 30.5}, graph.Point{X: 0.5, Y: 32.5}, graph.Point{Y: 45}},
		{"diagonal", graph.Point{X: 90.5, Y: 39.5}, graph.Point{X: 85.5, Y: 38.5}, graph.Point{X: -70, Y: -22.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Reduce(NewState(s), s, g, PointerDown{Client: tt.from})
			if !st.Panning {
				t.Fatalf("expected pan start: %+v", st)
			}
			st = Reduce(st, s, g, PointerMove{Client: tt.to})
			if !near(st.Offset, tt.want) {
				t.Errorf("offset = %v, want %v", st.Offset, tt.want)
			}
		})
	}
}

func TestHover(t *testing.T) {
	s := testScene()
	st := Reduce(NewState(s), s, CanvasGeometry, PointerMove{Client: graph.Point{X: 700, Y: 105}})
	if st.HoveredID != "repo" {
		t.Errorf("HoveredID = %q", st.HoveredID)
	}
	st = Reduce(st, s, CanvasGeometry, PointerMove{Client: graph.Point{X: 0, Y: 0}})
	if st.HoveredID != "" {
		t.Errorf("HoveredID = %q after leaving node", st.HoveredID)
	}
}

func TestWheelIgnored(t *testing.T) {
	s := testScene()
	st := NewState(s)
	if got := Reduce(st, s, CanvasGeometry, Wheel{DY: -120}); got != st {
		t.Errorf("wheel changed state: %+v", got)
	}
}

func TestKeyboardNavigation(t *testing.T) {
	s := testScene()
	st := NewState(s).WithZoom(2)
	steps := []struct {
		key     Key
		wantIdx int
	}{
		{KeyRight, 1},
		{KeyArrowDown, 2},
		{KeyRight, 0}, // wraps
		{KeyLeft, 2},  // wraps back
		{KeyUp, 1},
	}
	for _, step := range steps {
		st = Reduce(st, s, CanvasGeometry, KeyDown{Key: step.key})
		if st.SelectedIndex != step.wantIdx || st.SelectedID != s.Nodes[step.wantIdx].ID {
			t.Fatalf("after %v: index %d id %q, want %d", step.key, st.SelectedIndex, st.SelectedID, step.wantIdx)
		}
		p := s.Nodes[step.wantIdx].Pos()
		want := graph.Point{X: 700 - p.X*2, Y: 450 - p.Y*2}
		if !near(st.Offset, want) {
			t.Errorf("offset = %v, want %v", st.Offset, want)
		}
		if c := st.ToDevice(p); !near(c, CanvasGeometry.Center()) {
			t.Errorf("selected node drawn at %v, want centre", c)
		}
	}
	if got := Reduce(st, s, CanvasGeometry, KeyDown{Key: KeyNone}); got != st {
		t.Error("unknown key changed state")
	}
}

func TestEmptySceneIsNoop(t *testing.T) {
	s := NewScene(nil, nil)
	st := NewState(s)
	for _, ev := range []Event{
		PointerDown{Client: graph.Point{X: 1, Y: 1}},
		PointerMove{Client: graph.Point{X: 5, Y: 5}},
		PointerUp{},
		KeyDown{Key: KeyRight},
		Select{ID: "x"},
	} {
		st = Reduce(st, s, CanvasGeometry, ev)
	}
	if st.SelectedID != "" || st.HoveredID != "" {
		t.Errorf("empty scene produced selection: %+v", st)
	}
}

func TestNilSceneKeepsState(t *testing.T) {
	st := Reduce(State{}, nil, CanvasGeometry, ZoomIn{})
	st = Reduce(st, nil, CanvasGeometry, ZoomIn{})
	if math.Abs(st.Zoom-1.44) > 1e-9 {
		t.Errorf("zoom = %v, want 1.44", st.Zoom)
	}
}

func TestFilters(t *testing.T) {
	s := testScene()
	st := NewState(s)
	if got := len(st.Filters.VisibleEdges(s)); got != 2 {
		t.Errorf("visible edges = %d, want 2 (dangling skipped)", got)
	}
	st = Reduce(st, s, CanvasGeometry, ToggleType{Type: graph.TypeDirectory})
	if st.Filters.Directory {
		t.Fatal("directory still shown")
	}
	if got := len(st.Filters.VisibleNodes(s)); got != 2 {
		t.Errorf("visible nodes = %d, want 2", got)
	}
	if got := len(st.Filters.VisibleEdges(s)); got != 1 {
		t.Errorf("visible edges = %d, want 1", got)
	}
	st = Reduce(st, s, CanvasGeometry, ToggleEdges{})
	if got := st.Filters.VisibleEdges(s); got != nil {
		t.Errorf("edges toggled off but got %v", got)
	}
	st = Reduce(st, s, CanvasGeometry, ToggleType{Type: "rust"})
	if st.Filters.File {
		t.Error("language type did not toggle file filter")
	}
}

func TestFileFilterHidesUnknownTypes(t *testing.T) {
	s := NewScene([]graph.Node{
		placed("a.py", "python", 100, 100),
		placed("b", "code", 200, 100),
		placed("c", graph.TypeFile, 300, 100),
		placed("d", graph.TypeDirectory, 400, 100),
	}, nil)
	st := Reduce(NewState(s), s, CanvasGeometry, ToggleType{Type: graph.TypeFile})
	vis := st.Filters.VisibleNodes(s)
	if len(vis) != 1 || s.Nodes[vis[0]].ID != "d" {
		t.Errorf("visible = %v, want only d", vis)
	}
	if _, ok := HitTest(s, st.Filters, graph.Point{X: 100, Y: 100}); ok {
		t.Error("hidden python node is still hit-testable")
	}
}

func TestSelectAndDetail(t *testing.T) {
	s := NewScene([]graph.Node{
		placed("a", graph.TypeFile, 100, 100),
		{ID: "b", Label: "b.py", Type: graph.TypeFile, Size: 2048, Dependencies: []string{"a"}},
	}, nil)
	st := Reduce(NewState(s), s, CanvasGeometry, Select{ID: "b"})
	if st.SelectedID != "b" || st.SelectedIndex != 1 {
		t.Fatalf("Select = %+v", st)
	}
	d, ok := s.Detail(st.SelectedID)
	if !ok || d.SizeKB() != "2.00 KB" || d.Dependencies != 1 {
		t.Errorf("Detail = %+v", d)
	}
	st = Reduce(st, s, CanvasGeometry, Select{})
	if st.SelectedID != "" {
		t.Error("empty Select did not clear")
	}
}

func TestSceneCopiesInput(t *testing.T) {
	nodes := []graph.Node{placed("a", graph.TypeFile, 100, 100)}
	s := NewScene(nodes, nil)
	s.Pin("a", graph.Point{X: 5, Y: 5})
	if nodes[0].X != 100 {
		t.Error("Pin modified caller's nodes")
	}
	if s.Pin("missing", graph.Point{}) {
		t.Error("Pin reported success for missing node")
	}
	if l := s.Layout(); l.Nodes[0].X != 5 || !l.Nodes[0].Pinned {
		t.Errorf("Layout lost pin: %+v", l.Nodes[0])
	}
}

func TestSnapshotKeepsLoadID(t *testing.T) {
	s := testScene()
	snap := s.Snapshot()
	if snap.LoadID != s.LoadID {
		t.Error("snapshot changed LoadID")
	}
	st := NewState(s)
	if got := st.Sync(snap); got != st {
		t.Error("state bound to the scene should stay current for its snapshot")
	}
	s.Pin("repo", graph.Point{X: 1, Y: 1})
	if snap.Nodes[0].X != 700 {
		t.Error("pinning the scene moved the snapshot")
	}
	if n, ok := snap.Node("dir"); !ok || n.X != 400 {
		t.Error("snapshot index lookup failed")
	}
	if (*Scene)(nil).Snapshot() != nil {
		t.Error("nil snapshot should be nil")
	}
}

func TestPanBy(t *testing.T) {
	s := testScene()
	st := Reduce(NewState(s), s, CanvasGeometry, PanBy{Delta: graph.Point{X: 30, Y: -10}})
	st = Reduce(st, s, CanvasGeometry, PanBy{Delta: graph.Point{X: 5}})
	if st.Offset != (graph.Point{X: 35, Y: -10}) {
		t.Errorf("offset = %v", st.Offset)
	}
}
