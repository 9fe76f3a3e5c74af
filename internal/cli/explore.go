package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/repograph/pkg/graph"
	"github.com/matzehuels/repograph/pkg/render"
	"github.com/matzehuels/repograph/pkg/render/sink"
	"github.com/matzehuels/repograph/pkg/viewport"
)

// Screen layout of the explore view, in terminal cells.
const (
	exploreHeaderRows = 1
	exploreFooterRows = 1
	explorePanelWidth = 34
	exploreMinCols    = 20
	exploreMinRows    = 6
	explorePanStep    = 60.0 // backing pixels per pan key press
)

// exploreCommand creates the interactive terminal viewer.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		noCache bool
		rules   string
		fps     int
	)

	cmd := &cobra.Command{
		Use:   "explore [graph.json|layout.json]",
		Short: "Explore a repository graph interactively in the terminal",
		Long: `Explore a repository graph interactively in the terminal.

The canvas is redrawn continuously. Drag nodes or the background with the
mouse, walk the nodes with the arrow keys and inspect the selected node in
the side panel.

Keys:
  ←/↑/→/↓   select previous/next node     + / -   zoom in/out
  h/j/k/l   pan                           0       reset view
  1/2/3     toggle repositories/directories/files
  e         toggle edges                  q       quit`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeJSONFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			interval := c.Config.Render.FrameInterval()
			if cmd.Flags().Changed("fps") && fps > 0 {
				interval = time.Second / time.Duration(fps)
			}
			return c.runExplore(cmd.Context(), args[0], noCache, rules, interval)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&rules, "rules", "", "TOML file with extra classification rules")
	cmd.Flags().IntVar(&fps, "fps", 0, "frames per second (default from config)")

	return cmd
}

func (c *CLI) runExplore(ctx context.Context, input string, noCache bool, rules string, interval time.Duration) error {
	runner, err := c.newRunner(ctx, noCache, rules)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	l, _, err := c.loadLayout(ctx, runner, input, c.pipelineOptions())
	if err != nil {
		return err
	}

	// The TUI owns the terminal; keep log lines from tearing the frame.
	level := c.Logger.GetLevel()
	c.Logger.SetLevel(log.FatalLevel)
	defer c.Logger.SetLevel(level)

	m := newExploreModel(ctx, viewport.FromLayout(l), filepath.Base(input), interval)
	defer m.stop()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// =============================================================================
// exploreModel - bubbletea model around a render loop
// =============================================================================

// frameMsg carries one rendered canvas.
type frameMsg string

// exploreModel keeps the scene and view state behind a mutex: bubbletea
// updates them from its event loop while the render loop reads snapshots.
type exploreModel struct {
	ctx      context.Context
	title    string
	interval time.Duration

	mu    sync.Mutex
	scene *viewport.Scene
	state viewport.State

	width, height int
	cols, rows    int
	frame         string

	handle *render.Handle
	frames chan string
}

func newExploreModel(ctx context.Context, s *viewport.Scene, title string, interval time.Duration) *exploreModel {
	return &exploreModel{
		ctx:      ctx,
		title:    title,
		interval: interval,
		scene:    s,
		state:    viewport.NewState(s),
		frames:   make(chan string, 1),
	}
}

func (m *exploreModel) Init() tea.Cmd { return nil }

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		first := m.handle == nil
		m.resize(msg.Width, msg.Height)
		if !first {
			return m, nil // a frame wait is already pending
		}
		return m, m.waitFrame()
	case frameMsg:
		m.frame = string(msg)
		return m, m.waitFrame()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.stop()
			return m, tea.Quit
		}
		if ev, ok := exploreKeyEvent(msg.String()); ok {
			m.apply(ev)
		}
	case tea.MouseMsg:
		if ev, ok := m.mouseEvent(msg); ok {
			m.apply(ev)
		}
	}
	return m, nil
}

func (m *exploreModel) View() string {
	if m.cols == 0 {
		return StyleDim.Render("loading...")
	}

	m.mu.Lock()
	st := m.state.Sync(m.scene)
	detail, hasDetail := m.scene.Detail(st.SelectedID)
	nodes := m.scene.Len()
	m.mu.Unlock()

	header := StyleTitle.Render(m.title) + StyleDim.Render(fmt.Sprintf("  %d nodes  zoom %d%%", nodes, st.ZoomPercent()))
	canvas := lipgloss.NewStyle().Width(m.cols).Height(m.rows).Render(m.frame)
	panel := explorePanel(detail, hasDetail, st.Filters, m.rows)
	footer := StyleDim.Render("arrows select · hjkl pan · +/- zoom · 0 reset · 1/2/3 types · e edges · q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, canvas, panel),
		footer,
	)
}

// apply runs ev through the viewport reducer.
func (m *exploreModel) apply(ev viewport.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = viewport.Reduce(m.state, m.scene, m.geometry(), ev)
}

// provide hands the render loop a consistent snapshot.
func (m *exploreModel) provide() (*viewport.Scene, viewport.State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scene.Snapshot(), m.state.Sync(m.scene)
}

// geometry maps terminal cells onto the standard canvas. Callers hold mu.
func (m *exploreModel) geometry() viewport.Geometry {
	return viewport.Geometry{
		Origin:  graph.Point{Y: exploreHeaderRows},
		Display: graph.Point{X: float64(m.cols), Y: float64(m.rows)},
		Backing: graph.Point{X: graph.CanvasWidth, Y: graph.CanvasHeight},
	}
}

// resize restarts the render loop on a surface matching the new terminal
// size.
func (m *exploreModel) resize(width, height int) {
	m.stop()

	m.mu.Lock()
	m.width, m.height = width, height
	m.cols = max(exploreMinCols, width-explorePanelWidth)
	m.rows = max(exploreMinRows, height-exploreHeaderRows-exploreFooterRows)
	cols, rows := m.cols, m.rows
	m.mu.Unlock()

	cells := sink.NewCells(cols, rows, graph.CanvasWidth, graph.CanvasHeight)
	m.handle = render.Start(m.ctx, cells, m.provide,
		render.WithInterval(m.interval),
		render.WithAfterFrame(func(render.Stats) {
			m.publish(cells.Render())
		}),
	)
}

// publish replaces any unread frame with out. It never blocks the loop.
func (m *exploreModel) publish(out string) {
	select {
	case <-m.frames:
	default:
	}
	select {
	case m.frames <- out:
	default:
	}
}

func (m *exploreModel) waitFrame() tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-m.frames:
			return frameMsg(f)
		case <-m.ctx.Done():
			return nil
		}
	}
}

// stop halts the render loop if one is running.
func (m *exploreModel) stop() {
	if m.handle != nil {
		m.handle.Stop()
		m.handle = nil
	}
}

func (m *exploreModel) mouseEvent(msg tea.MouseMsg) (viewport.Event, bool) {
	// Cells are addressed by their centre.
	client := graph.Point{X: float64(msg.X) + 0.5, Y: float64(msg.Y) + 0.5}
	inside := msg.X < m.cols && msg.Y >= exploreHeaderRows && msg.Y < exploreHeaderRows+m.rows

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		return viewport.Wheel{DY: -1}, true
	case msg.Button == tea.MouseButtonWheelDown:
		return viewport.Wheel{DY: 1}, true
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if !inside {
			return nil, false
		}
		return viewport.PointerDown{Client: client}, true
	case msg.Action == tea.MouseActionMotion:
		if !inside {
			return viewport.PointerLeave{}, true
		}
		return viewport.PointerMove{Client: client}, true
	case msg.Action == tea.MouseActionRelease:
		return viewport.PointerUp{}, true
	}
	return nil, false
}

// exploreKeyEvent maps a key name to a viewport event.
func exploreKeyEvent(key string) (viewport.Event, bool) {
	switch key {
	case "right":
		return viewport.KeyDown{Key: viewport.KeyRight}, true
	case "down":
		return viewport.KeyDown{Key: viewport.KeyArrowDown}, true
	case "left":
		return viewport.KeyDown{Key: viewport.KeyLeft}, true
	case "up":
		return viewport.KeyDown{Key: viewport.KeyUp}, true
	case "+", "=":
		return viewport.ZoomIn{}, true
	case "-":
		return viewport.ZoomOut{}, true
	case "0":
		return viewport.ResetView{}, true
	case "h":
		return viewport.PanBy{Delta: graph.Point{X: explorePanStep}}, true
	case "l":
		return viewport.PanBy{Delta: graph.Point{X: -explorePanStep}}, true
	case "k":
		return viewport.PanBy{Delta: graph.Point{Y: explorePanStep}}, true
	case "j":
		return viewport.PanBy{Delta: graph.Point{Y: -explorePanStep}}, true
	case "1":
		return viewport.ToggleType{Type: graph.TypeRepository}, true
	case "2":
		return viewport.ToggleType{Type: graph.TypeDirectory}, true
	case "3":
		return viewport.ToggleType{Type: graph.TypeFile}, true
	case "e":
		return viewport.ToggleEdges{}, true
	}
	return nil, false
}

// explorePanel renders the side panel: the selected node and the filters.
func explorePanel(d graph.Detail, ok bool, f viewport.Filters, height int) string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Node"))
	b.WriteString("\n")
	if !ok {
		b.WriteString(StyleDim.Render("Select a node to see details"))
	} else {
		kind := d.Type.Kind()
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(typeColors[kind]).Render(d.Label))
		b.WriteString("\n")
		panelField(&b, "ID", d.ID)
		panelField(&b, "Type", string(d.Type))
		panelField(&b, "Language", d.Language)
		panelField(&b, "Size", d.SizeKB())
		if d.Dependencies > 0 {
			panelField(&b, "Deps", fmt.Sprint(d.Dependencies))
		}
		if d.Description != "" {
			b.WriteString("\n")
			b.WriteString(StyleValue.Render(d.Description))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(StyleTitle.Render("Show"))
	b.WriteString("\n")
	for i, t := range graph.Types {
		mark := "○"
		if f.ShowsType(t) {
			mark = "●"
		}
		b.WriteString(fmt.Sprintf("%d %s %s\n", i+1, lipgloss.NewStyle().Foreground(typeColors[t]).Render(mark), t))
	}
	mark := "○"
	if f.Edges {
		mark = "●"
	}
	b.WriteString(fmt.Sprintf("e %s edges", mark))

	return lipgloss.NewStyle().
		Width(explorePanelWidth-2).
		Height(height).
		PaddingLeft(1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(colorDim).
		Render(b.String())
}

func panelField(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("%-9s", name)))
	b.WriteString(StyleValue.Render(value))
	b.WriteString("\n")
}
