package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/algocore/internal/utils"
	"github.com/bastiangx/algocore/pkg/pathfind"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var kindStyles = map[pathfind.CellKind]lipgloss.Style{
	pathfind.Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	pathfind.Wall:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true),
	pathfind.Start:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
	pathfind.End:      lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	pathfind.Visited:  lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
	pathfind.Frontier: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	pathfind.Current:  lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true),
	pathfind.Path:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))

// GridRenderer draws grids and replays step logs in the terminal.
type GridRenderer struct {
	Color bool
}

// Render draws g with step painted over it, one line per row.
func (r GridRenderer) Render(g *pathfind.Grid, step pathfind.Step) string {
	kinds := g.Paint(step)
	var b strings.Builder
	b.Grow(len(kinds) * 2)
	for i, k := range kinds {
		if i > 0 && i%g.Cols() == 0 {
			b.WriteByte('\n')
		}
		cell := string(k.Rune())
		if r.Color {
			cell = kindStyles[k].Render(cell)
		}
		b.WriteString(cell)
	}
	return b.String()
}

// Summary is a one line description of a finished run.
func (r GridRenderer) Summary(res pathfind.Result) string {
	line := fmt.Sprintf("%s: success=%t length=%d explored=%s efficiency=%.2f time=%v",
		res.Algorithm.Title(), res.Success, res.PathLength,
		utils.FormatWithCommas(res.CellsExplored), res.Efficiency, res.Duration.Round(time.Microsecond))
	if r.Color {
		return headerStyle.Render(line)
	}
	return line
}

// Replay writes every step of res drawn over g, pausing delay between steps.
// With a zero delay only the final step is drawn.
func (r GridRenderer) Replay(w io.Writer, g *pathfind.Grid, res pathfind.Result, delay time.Duration) error {
	steps := res.Steps
	if delay <= 0 && len(steps) > 0 {
		steps = steps[len(steps)-1:]
	}
	for i, step := range steps {
		if _, err := fmt.Fprintf(w, "%s\n%s\n\n", step.Description, r.Render(g, step)); err != nil {
			return err
		}
		if delay > 0 && i < len(steps)-1 {
			time.Sleep(delay)
		}
	}
	_, err := fmt.Fprintln(w, r.Summary(res))
	return err
}

// Comparison tabulates results of the same grid side by side.
func (r GridRenderer) Comparison(results []pathfind.Result) string {
	rows := make([][]string, len(results))
	for i, res := range results {
		length := "-"
		if res.Success {
			length = strconv.Itoa(res.PathLength)
		}
		rows[i] = []string{
			res.Algorithm.Title(),
			length,
			utils.FormatWithCommas(res.CellsExplored),
			fmt.Sprintf("%.2f", res.Efficiency),
			res.Duration.Round(time.Microsecond).String(),
			fmt.Sprintf("%016x", res.Digest()),
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ALGORITHM", "LENGTH", "EXPLORED", "EFFICIENCY", "TIME", "DIGEST").
		Rows(rows...)
	if r.Color {
		t = t.StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	}
	return t.Render()
}
