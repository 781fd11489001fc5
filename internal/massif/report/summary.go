// Package report renders a parsed heap profile as styled terminal text: a
// summary table, not a chart (charts/legends/axes are out of scope for
// this tool — see the visualizer that consumes a Profile for that).
package report

import (
	"fmt"
	"strings"

	"github.com/mabhi256/massifglom/internal/massif/model"
	"github.com/mabhi256/massifglom/utils"
)

// Summary renders a one-screen overview of profile: description, command,
// snapshot count, and the two derived aggregates from spec.md §3.
func Summary(profile *model.Profile) string {
	var b strings.Builder

	b.WriteString(utils.TitleStyle.Render("Heap Profile Summary"))
	b.WriteString("\n\n")

	b.WriteString(utils.FormatKeyValue("Description", profile.Description, 14) + "\n")
	b.WriteString(utils.FormatKeyValue("Command", profile.Command, 14) + "\n")
	b.WriteString(utils.FormatKeyValue("Time unit", profile.TimeUnit, 14) + "\n")
	b.WriteString(utils.FormatKeyValue("Snapshots", fmt.Sprintf("%d", len(profile.Snapshots)), 14) + "\n")
	b.WriteString(utils.FormatKeyValue("Max time", fmt.Sprintf("%d%s", profile.MaxTime, profile.TimeUnit), 14) + "\n")
	b.WriteString(utils.FormatKeyValue("Peak usage", utils.MemorySize(profile.MaxTotalBytes).String(), 14) + "\n")

	detailed := 0
	var depth uint32
	for _, s := range profile.Snapshots {
		if s.TreeKind == model.TreeDetailed {
			detailed++
		}
		if d := TreeDepth(s.Tree); d > depth {
			depth = d
		}
	}
	b.WriteString(utils.FormatKeyValue("Detailed", fmt.Sprintf("%d/%d", detailed, len(profile.Snapshots)), 14) + "\n")
	b.WriteString(utils.FormatKeyValue("Tree depth", fmt.Sprintf("%d", depth), 14) + "\n\n")

	b.WriteString(utils.HeaderStyle.Render(fmt.Sprintf("%-6s %10s %10s %10s %10s %10s %s", "#", "time", "heap", "extra", "stacks", "total", "tree")))
	b.WriteString("\n")
	for _, s := range profile.Snapshots {
		total := s.TotalBytes()
		share := 0.0
		if profile.MaxTotalBytes > 0 {
			share = float64(total) / float64(profile.MaxTotalBytes)
		}
		row := fmt.Sprintf("%-6d %10d %10s %10s %10s %10s %s",
			s.Index, s.Time,
			utils.MemorySize(s.Heap).String(),
			utils.MemorySize(s.HeapExtra).String(),
			utils.MemorySize(s.Stacks).String(),
			utils.MemorySize(total).String(),
			s.TreeKind,
		)
		b.WriteString(utils.GetShareStyle(share).Render(row))
		b.WriteString("\n")
	}

	return b.String()
}

// TreeDepth returns the maximum depth of snapshot's heap tree, or 0 if it
// has none. Useful for a quick "how deep does this allocation tree go"
// line in the summary without walking the tree twice at call sites.
func TreeDepth(n *model.HeapNode) uint32 {
	if n == nil {
		return 0
	}
	max := n.Depth
	for _, c := range n.Children {
		if d := TreeDepth(c); d > max {
			max = d
		}
	}
	return max
}
