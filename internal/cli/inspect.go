package cli

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chordwheel/pkg/graph"
	"github.com/matzehuels/chordwheel/pkg/pipeline"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	tabActive    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Underline(true)
	tabInactive  = lipgloss.NewStyle().Foreground(colorGray)
)

// inspectCommand creates the inspect command for browsing a layout.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		plain   bool
		noCache bool
		opts    pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "inspect [words|layout.json]",
		Short: "Browse the nodes and ribbons of a layout",
		Long: `Browse the nodes and ribbons of a layout in an interactive table.

The input may be a layout.json produced by 'layout' or a word dataset, which
is laid out first. Use --plain to print both tables without the interactive
view.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.loadForInspect(cmd.Context(), args[0], c.options(opts), noCache)
			if err != nil {
				return err
			}
			m := NewInspectModel(l)
			if plain {
				fmt.Fprint(cmd.OutOrStdout(), m.Plain())
				return nil
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print tables instead of the interactive view")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addLayoutFlags(cmd.Flags(), &opts)

	return cmd
}

// loadForInspect reads a layout file, or lays out a dataset.
func (c *CLI) loadForInspect(ctx context.Context, input string, opts pipeline.Options, noCache bool) (graph.Layout, error) {
	if strings.HasSuffix(input, ".layout.json") {
		return graph.ReadLayoutFile(input)
	}
	if filepath.Ext(input) == ".json" {
		if l, err := graph.ReadLayoutFile(input); err == nil && len(l.Arcs) > 0 {
			return l, nil
		}
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return graph.Layout{}, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	ds, err := runner.Load(ctx, input)
	if err != nil {
		return graph.Layout{}, err
	}
	return runner.GenerateLayout(ctx, ds, opts)
}

// =============================================================================
// InspectModel - Interactive layout browser
// =============================================================================

const (
	tabNodes = iota
	tabRibbons
)

// InspectModel is the bubbletea model for browsing a layout.
type InspectModel struct {
	Layout graph.Layout
	Tab    int
	Cursor int
	Height int
	Offset int
}

// NewInspectModel creates a new inspect model showing the node tab.
func NewInspectModel(l graph.Layout) InspectModel {
	return InspectModel{Layout: l, Height: 15}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "left", "right", "h", "l":
			m.Tab = (m.Tab + 1) % 2
			m.Cursor, m.Offset = 0, 0
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < m.rowCount()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Chord Layout"))
	b.WriteString("  ")
	b.WriteString(m.tabs())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  tab switch  q quit"))
	b.WriteString("\n\n")

	headers, rows := m.table()
	end := min(m.Offset+m.Height, len(rows))
	b.WriteString(m.render(headers, rows[m.Offset:end], m.Offset, true))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(rows)), len(rows))))

	return b.String()
}

// Plain renders both tables without cursor or paging.
func (m InspectModel) Plain() string {
	var b strings.Builder
	for _, tab := range []int{tabNodes, tabRibbons} {
		m.Tab = tab
		headers, rows := m.table()
		b.WriteString(m.render(headers, rows, 0, false))
		b.WriteString("\n")
	}
	return b.String()
}

func (m InspectModel) tabs() string {
	nodes := fmt.Sprintf("Nodes (%d)", len(m.Layout.Arcs))
	ribbons := fmt.Sprintf("Ribbons (%d)", len(m.Layout.Ribbons))
	if m.Tab == tabNodes {
		return tabActive.Render(nodes) + "  " + tabInactive.Render(ribbons)
	}
	return tabInactive.Render(nodes) + "  " + tabActive.Render(ribbons)
}

func (m InspectModel) rowCount() int {
	if m.Tab == tabNodes {
		return len(m.Layout.Arcs)
	}
	return len(m.Layout.Ribbons)
}

// table returns the headers and all rows of the active tab. The band is
// always the last column.
func (m InspectModel) table() ([]string, [][]string) {
	if m.Tab == tabNodes {
		rows := make([][]string, len(m.Layout.Arcs))
		for i, a := range m.Layout.Arcs {
			rows[i] = []string{
				fmt.Sprint(a.Index),
				m.label(a.Index),
				fmt.Sprint(a.Count),
				fmt.Sprintf("%.2f", a.TotalWeight),
				fmt.Sprintf("%.2f", a.ValueSum),
				fmt.Sprintf("%.1f°", degrees(a.EndAngle-a.StartAngle)),
				a.Band,
			}
		}
		return []string{"#", "Label", "Words", "Weight", "Sum", "Span", "Band"}, rows
	}

	rows := make([][]string, len(m.Layout.Ribbons))
	for i, r := range m.Layout.Ribbons {
		rows[i] = []string{
			fmt.Sprintf("%d ↔ %d", r.I, r.J),
			m.label(r.I) + " ↔ " + m.label(r.J),
			fmt.Sprintf("%.3f", r.Flow),
			fmt.Sprintf("%+.2f", r.AvgValue),
			r.Band,
		}
	}
	return []string{"Pair", "Labels", "Flow", "Avg", "Band"}, rows
}

func (m InspectModel) label(i int) string {
	if i >= 0 && i < len(m.Layout.Labels) && m.Layout.Labels[i] != "" {
		return m.Layout.Labels[i]
	}
	return "—"
}

func (m InspectModel) render(headers []string, rows [][]string, offset int, cursor bool) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	bandCol := len(headers) - 1

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == bandCol && row < len(rows) {
				if bs, ok := bandStyle(rows[row][col]); ok {
					base = base.Inherit(bs)
				}
			}
			if cursor && offset+row == m.Cursor {
				return base.Bold(true)
			}
			return base
		})
	return t.Render()
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
