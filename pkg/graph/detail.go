package graph

import "fmt"

// Detail is the summary of a selected node shown next to the canvas.
type Detail struct {
	ID           string
	Label        string
	Type         NodeType
	Language     string
	Size         int64
	Dependencies int
	Description  string
}

// DetailOf summarizes n for the side panel.
func DetailOf(n Node) Detail {
	return Detail{
		ID:           n.ID,
		Label:        n.DisplayLabel(),
		Type:         n.Type,
		Language:     n.Language,
		Size:         n.Size,
		Dependencies: len(n.Dependencies),
		Description:  n.Description,
	}
}

// SizeKB formats the size in kilobytes with two decimals ("1.50 KB").
// It returns an empty string when the size is unknown.
func (d Detail) SizeKB() string {
	if d.Size <= 0 {
		return ""
	}
	return fmt.Sprintf("%.2f KB", float64(d.Size)/1024)
}
