package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	errs "github.com/matzehuels/repograph/pkg/errors"
	"github.com/matzehuels/repograph/pkg/graph"
	"github.com/matzehuels/repograph/pkg/render"
)

// pointsPerInch converts graph units to Graphviz positions. Graphviz
// reads pos in points, and graph units map 1:1 to points.
const pointsPerInch = 72.0

// Options configures DOT export.
type Options struct {
	// Detailed adds language and size to node labels.
	Detailed bool
	// Theme supplies node colours. Zero value uses render.DefaultTheme.
	Theme *render.Theme
}

// ToDOT converts a layout to Graphviz DOT with every node pinned at its
// computed position. Graph y grows downwards and Graphviz y grows upwards,
// so y is flipped against the layout height. Unplaced nodes are omitted,
// as are edges touching them or unknown IDs.
func ToDOT(l graph.Layout, opts Options) string {
	theme := render.DefaultTheme
	if opts.Theme != nil {
		theme = *opts.Theme
	}
	height := l.Height
	if height <= 0 {
		height = graph.CanvasHeight
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=line;\n")
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fixedsize=true, width=%.3f, fontsize=11, fontcolor=white, color=white, penwidth=2];\n",
		2*render.NodeRadius/pointsPerInch)
	fmt.Fprintf(&buf, "  edge [color=%q, penwidth=1.5, arrowsize=0.6];\n", hex(theme.Edge))
	buf.WriteString("\n")

	placed := make(map[string]bool, len(l.Nodes))
	for _, n := range l.Nodes {
		if !n.Placed || placed[n.ID] {
			continue
		}
		placed[n.ID] = true
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed)),
			fmt.Sprintf("pos=\"%.2f,%.2f!\"", n.X, height-n.Y),
			fmt.Sprintf("fillcolor=%q", hex(theme.NodeColor(n.Type))),
		}
		if n.Pinned {
			attrs = append(attrs, "style=\"filled,dashed\"")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		if !placed[e.From] || !placed[e.To] {
			continue
		}
		if e.Label != "" {
			fmt.Fprintf(&buf, "  %q -> %q [tooltip=%q];\n", e.From, e.To, e.Label)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n graph.Node, detailed bool) string {
	label := render.TruncateLabel(n.DisplayLabel())
	if !detailed {
		return label
	}
	var parts []string
	if n.Language != "" {
		parts = append(parts, strings.ToUpper(n.Language))
	}
	if kb := graph.DetailOf(n).SizeKB(); kb != "" {
		parts = append(parts, kb)
	}
	if len(parts) == 0 {
		return label
	}
	return label + "\n" + strings.Join(parts, " · ")
}

// hex formats c as a Graphviz colour with alpha.
func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine, which
// honours the pinned positions written by ToDOT.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errs.Wrap(errs.ErrCodeRenderFailed, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-based svg header with a plain
// pixel-sized one so the output scales like the other sinks.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
