package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/qrdots/pkg/grid"
	"github.com/matzehuels/qrdots/pkg/layout"
	"github.com/matzehuels/qrdots/pkg/pipeline"
	"github.com/matzehuels/qrdots/pkg/qr"
)

// Cell glyphs. Every cell is two columns wide so modules look square.
const (
	glyphCircle = "● "
	glyphSquare = "■ "
	glyphDark   = "██"
	glyphEmpty  = "  "
	glyphCenter = "··"
)

var (
	previewCenterStyle = lipgloss.NewStyle().Foreground(colorMuted)
	previewFrameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted)
)

// previewView selects what the preview draws.
type previewView int

const (
	viewShapes  previewView = iota // layout shapes: circles, corner squares, empty center
	viewModules                    // raw module grid
)

func (v previewView) String() string {
	if v == viewModules {
		return "modules"
	}
	return "shapes"
}

// PreviewModel is the bubbletea model for the terminal preview.
type PreviewModel struct {
	Grid     grid.Grid
	Layout   layout.Layout
	Payload  string
	Mode     previewView
	Inverted bool
}

// NewPreviewModel creates a preview of a grid and its layout.
func NewPreviewModel(g grid.Grid, l layout.Layout, payload string) PreviewModel {
	return PreviewModel{Grid: g, Layout: l, Payload: payload}
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "v", "tab":
			if m.Mode == viewShapes {
				m.Mode = viewModules
			} else {
				m.Mode = viewShapes
			}
		case "i":
			m.Inverted = !m.Inverted
		}
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("qrdots preview"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(truncate(m.Payload, 40)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("v toggle view  i invert  q quit"))
	b.WriteString("\n")

	var body string
	if m.Mode == viewModules {
		body = m.modulesView()
	} else {
		body = m.shapesView()
	}
	b.WriteString(previewFrameStyle.Render(body))
	b.WriteString("\n")

	counts := m.Layout.Counts()
	status := fmt.Sprintf("%s view · %d×%d modules · %d circles · %d squares",
		m.Mode, m.Grid.Width(), m.Grid.Height(), counts.Circles, counts.Squares)
	if m.Inverted {
		status += " · inverted"
	}
	b.WriteString(StyleDim.Render(status))
	return b.String()
}

// ink reports whether a module of the given colour is drawn.
func (m PreviewModel) ink(c layout.Color) bool {
	return (c == layout.Foreground) != m.Inverted
}

func (m PreviewModel) shapesView() string {
	cells := make([][]string, m.Layout.Rows)
	for r := range cells {
		cells[r] = make([]string, m.Layout.Columns)
		for c := range cells[r] {
			cells[r][c] = glyphEmpty
			if m.Layout.InCenter(r, c) {
				cells[r][c] = previewCenterStyle.Render(glyphCenter)
			}
		}
	}
	for _, s := range m.Layout.Modules() {
		if !m.ink(s.Color) {
			continue
		}
		glyph := glyphCircle
		if s.Kind == layout.Square {
			glyph = glyphSquare
		}
		cells[s.Row][s.Col] = glyph
	}
	return joinCells(cells)
}

func (m PreviewModel) modulesView() string {
	cells := make([][]string, m.Grid.Height())
	for r := range cells {
		cells[r] = make([]string, m.Grid.Width())
		for c := range cells[r] {
			color := layout.Background
			if m.Grid.Dark(r, c) {
				color = layout.Foreground
			}
			cells[r][c] = glyphEmpty
			if m.ink(color) {
				cells[r][c] = glyphDark
			}
		}
	}
	return joinCells(cells)
}

func joinCells(cells [][]string) string {
	rows := make([]string, len(cells))
	for r, row := range cells {
		rows[r] = strings.TrimRight(strings.Join(row, ""), " ")
	}
	return strings.Join(rows, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var noCache bool
	flags := &optionFlags{}

	cmd := &cobra.Command{
		Use:   "preview [payload]",
		Short: "Preview the layout in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, flags, payloadArg(args))
			return c.runPreview(cmd.Context(), opts, noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.addEncodeFlags(cmd)
	flags.addLayoutFlags(cmd)

	return cmd
}

// runPreview encodes and lays out the payload, then runs the interactive preview.
func (c *CLI) runPreview(ctx context.Context, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if err := opts.ValidateForEncode(); err != nil {
		return err
	}
	g, err := runner.Encode(ctx, opts)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	l, err := runner.GenerateLayout(ctx, g, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	c.Logger.Debug("preview ready", "modules", g.Width(), "version", qr.Version(g.Width()))

	_, err = tea.NewProgram(NewPreviewModel(g, l, opts.Payload), tea.WithContext(ctx)).Run()
	return err
}
