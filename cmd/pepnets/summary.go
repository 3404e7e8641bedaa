package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dd0wney/pepnets/pkg/algorithms"
	"github.com/dd0wney/pepnets/pkg/cluster"
	"github.com/dd0wney/pepnets/pkg/config"
	"github.com/dd0wney/pepnets/pkg/pipeline"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Width(14)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFF00")).
			Bold(true)
)

// biggestShown is how many clusters the summary lists
const biggestShown = 5

func statLine(label string, value any) string {
	return labelStyle.Render(label) + fmt.Sprint(value)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

// renderSummary formats the outcome of a cluster run for the terminal
func renderSummary(cfg *config.Config, res *pipeline.Result) string {
	col := res.Collection

	proteins := make([]string, 0, len(res.Modularity))
	for p := range res.Modularity {
		proteins = append(proteins, p)
	}
	sort.Strings(proteins)
	meanQ := 0.0
	for _, p := range proteins {
		meanQ += res.Modularity[p]
	}
	if len(proteins) > 0 {
		meanQ /= float64(len(proteins))
	}

	stats := statsBoxStyle.Render(strings.Join([]string{
		statLine("Run", res.RunID),
		statLine("Algorithm", cfg.Algorithm),
		statLine("Peptides", len(res.Peptides)),
		statLine("Proteins", len(res.Graphs)),
		statLine("Clusters", col.Len()),
		statLine("Merged", res.Merged),
		statLine("Removed", res.Removed),
		statLine("Modularity", strconv.FormatFloat(meanQ, 'f', 4, 64)),
		statLine("Density", strconv.FormatFloat(meanDensity(res), 'f', 3, 64)),
	}, "\n"))

	t := newTable("Cluster", "Protein", "Start", "End", "Peptides", "Density", "Longest")
	for _, c := range col.NBiggest(biggestShown) {
		t.Row(c.ID(), c.Protein(), strconv.Itoa(c.Start()), strconv.Itoa(c.End()),
			strconv.Itoa(c.NPeptides()), strconv.FormatFloat(clusterDensity(res, c), 'f', 3, 64), c.Longest())
	}

	parts := []string{titleStyle.Render("pepnets run summary"), stats, t.Render()}
	if n := len(res.Unresolved); n > 0 {
		parts = append(parts, warnStyle.Render(fmt.Sprintf("%d records could not be placed on their protein", n)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// clusterDensity is the internal edge density of the community holding c
func clusterDensity(res *pipeline.Result, c *cluster.Cluster) float64 {
	summary := res.Communities[c.Protein()]
	peps := c.Peptides()
	if summary == nil || len(peps) == 0 {
		return 0
	}
	id, ok := summary.NodeCommunity[peps[0].ID]
	if !ok {
		return 0
	}
	for _, community := range summary.Communities {
		if community.ID == id {
			return community.Density
		}
	}
	return 0
}

// meanDensity averages the density of every community with more than one member
func meanDensity(res *pipeline.Result) float64 {
	var sum float64
	var n int
	for _, summary := range res.Communities {
		for _, community := range summary.Communities {
			if community.Size > 1 {
				sum += community.Density
				n++
			}
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// renderGraphStats formats per-protein graph statistics
func renderGraphStats(stats []algorithms.GraphStats, resolved, unresolved int) string {
	t := newTable("Protein", "Nodes", "Edges", "Components", "Density", "Clustering")
	for _, s := range stats {
		t.Row(s.Protein,
			strconv.Itoa(s.Nodes),
			strconv.Itoa(s.Edges),
			strconv.Itoa(s.Components),
			strconv.FormatFloat(s.Density, 'f', 3, 64),
			strconv.FormatFloat(s.AverageClustering, 'f', 3, 64))
	}

	header := statsBoxStyle.Render(strings.Join([]string{
		statLine("Resolved", resolved),
		statLine("Unresolved", unresolved),
	}, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("pepnets protein graphs"), header, t.Render())
}
