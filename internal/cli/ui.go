package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/repograph/pkg/classify"
	"github.com/matzehuels/repograph/pkg/graph"
)

// =============================================================================
// Palette and Styles
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Node type colours, matching the renderer's fills.
var typeColors = map[graph.NodeType]lipgloss.Color{
	graph.TypeRepository: lipgloss.Color("#8b5cf6"),
	graph.TypeDirectory:  lipgloss.Color("#3b82f6"),
	graph.TypeFile:       lipgloss.Color("#10b981"),
}

var (
	// StyleTitle is used for headings and the explore view title.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	// StyleDim is used for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)
	// StyleValue is used for paths and values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
	// StyleNumber is used for counts.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	styleSpinner     = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleTableHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Status Output
// =============================================================================

// stdout receives status lines. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// statusMark is the coloured prefix of a status line.
type statusMark struct {
	icon  string
	style lipgloss.Style
}

var (
	markSuccess = statusMark{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	markError   = statusMark{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	markWarning = statusMark{"!", lipgloss.NewStyle().Foreground(colorYellow)}
	markInfo    = statusMark{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

func (m statusMark) printf(format string, args ...any) {
	fmt.Fprintln(stdout, m.style.Render(m.icon)+" "+fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { markSuccess.printf(format, args...) }
func printError(format string, args ...any)   { markError.printf(format, args...) }
func printInfo(format string, args ...any)    { markInfo.printf(format, args...) }

func printWarning(format string, args ...any) {
	markWarning.printf("%s", lipgloss.NewStyle().Foreground(colorYellow).Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

// printStats prints node and edge counts and whether the result came from
// the cache.
func printStats(nodeCount, edgeCount int, cached bool) {
	fmt.Fprintln(stdout, statsLine(nodeCount, edgeCount, cached))
}

func statsLine(nodeCount, edgeCount int, cached bool) string {
	var parts []string
	if nodeCount > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d nodes", nodeCount)))
	}
	if edgeCount > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d edges", edgeCount)))
	}
	if cached {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorGreen).Render("cached"))
	} else {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorGray).Render("fresh"))
	}
	return "  " + strings.Join(parts, StyleDim.Render(" · "))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Tables
// =============================================================================

// categoryTable renders per-category node counts in priority order.
// Categories without nodes are omitted.
func categoryTable(counts map[string]int) string {
	var rows [][]string
	total := 0
	for _, c := range classify.All() {
		n := counts[c.String()]
		if n == 0 {
			continue
		}
		total += n
		rows = append(rows, []string{c.String(), fmt.Sprint(n)})
	}
	rows = append(rows, []string{"total", fmt.Sprint(total)})
	last := len(rows) - 1

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Category", "Nodes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleTableHeader
			case row == last:
				return StyleDim.Bold(true)
			case col == 1:
				return StyleNumber.Align(lipgloss.Right)
			default:
				return StyleValue
			}
		}).
		Render()
}

// nodeRow is one line of the classify output.
type nodeRow struct {
	ID       string
	Type     graph.NodeType
	Category classify.Category
}

// nodeTable renders node classifications sorted by category, then ID.
func nodeTable(nodes []nodeRow) string {
	sorted := append([]nodeRow(nil), nodes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Category != sorted[j].Category {
			return sorted[i].Category < sorted[j].Category
		}
		return sorted[i].ID < sorted[j].ID
	})

	rows := make([][]string, len(sorted))
	for i, n := range sorted {
		rows[i] = []string{n.ID, string(n.Type.Kind()), n.Category.String()}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Node", "Type", "Category").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader
			}
			if col == 1 {
				return lipgloss.NewStyle().Foreground(typeColors[sorted[row].Type.Kind()])
			}
			if col == 2 {
				return StyleNumber
			}
			return StyleValue
		}).
		Render()
}
