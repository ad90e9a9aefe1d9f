package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	m "synthlisa.dev/pkg/lisabuild/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	regenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	staleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	skipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	targetStyle  = lipgloss.NewStyle().Bold(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// TUI implements UI with styled output and a pager for long target lists.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplayManifest prints the release tag and revision catalog.
func (p *TUI) DisplayManifest(ctx context.Context, manifest m.VersionManifest) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.printf("%s\n", titleStyle.Render("synthLISA "+manifest.Short))

	for _, line := range strings.Split(manifest.Full, "\n") {
		if line != "" {
			p.printf("  %s\n", faintStyle.Render(line))
		}
	}
}

// DisplayGeneration prints the outcome of a staleness check.
func (p *TUI) DisplayGeneration(ctx context.Context, iface m.Path, status m.GenerationStatus) {
	if err := ctx.Err(); err != nil {
		return
	}

	label := fmt.Sprintf("%-12s", status.String())

	switch status {
	case m.Regenerated:
		label = regenStyle.Render(label)
	case m.Stale:
		label = staleStyle.Render(label)
	default:
		label = faintStyle.Render(label)
	}

	p.printf("%s %s\n", label, iface)
}

// DisplaySkip prints a gated-out interface file.
func (p *TUI) DisplaySkip(ctx context.Context, skip m.Skip) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.printf("%s %s\n", skipStyle.Render("No GSL, skipping"), describeSkip(skip))
}

// DisplayPlan shows the target list, paginated when it exceeds the terminal.
func (p *TUI) DisplayPlan(ctx context.Context, plan m.BuildPlan) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content := renderPlanView(plan)
	model := newPagerModel(content)

	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(f.Fd())
		if err == nil {
			model.width = width
			model.height = height
		}
	}

	if !model.needsPagination() {
		p.printf("%s", content)
		return nil
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// DisplayDiff prints a colored unified diff.
func (p *TUI) DisplayDiff(ctx context.Context, diff string) {
	if err := ctx.Err(); err != nil {
		return
	}

	if diff == "" {
		p.printf("%s\n", faintStyle.Render("target list unchanged"))
		return
	}

	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			p.printf("%s", targetStyle.Render(line))
		case strings.HasPrefix(line, "+"):
			p.printf("%s", addedStyle.Render(line))
		case strings.HasPrefix(line, "-"):
			p.printf("%s", removedStyle.Render(line))
		default:
			p.printf("%s", line)
		}
	}
}

func (p *TUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(p.output, format, args...)
}

func renderPlanView(plan m.BuildPlan) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("Targets (%d)", len(plan.Targets))))
	b.WriteString("\n")

	for _, target := range plan.Targets {
		fmt.Fprintf(&b, "  %s %s\n", targetStyle.Render(target.Name),
			faintStyle.Render(fmt.Sprintf("%d sources", len(target.Sources))))

		if len(target.Libraries) > 0 {
			fmt.Fprintf(&b, "    links %s\n", strings.Join(target.Libraries, ", "))
		}
	}

	fmt.Fprintf(&b, "\n%s %s\n", titleStyle.Render("Packages"), strings.Join(plan.PackageNames(), ", "))

	if len(plan.Skips) > 0 {
		fmt.Fprintf(&b, "%s\n", skipStyle.Render(fmt.Sprintf("Skipped %d interface file(s)", len(plan.Skips))))

		for _, skip := range plan.Skips {
			fmt.Fprintf(&b, "  %s\n", faintStyle.Render(describeSkip(skip)))
		}
	}

	return b.String()
}

// pagerModel is the Bubble Tea model scrolling through a long target list.
type pagerModel struct {
	content  string
	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

func newPagerModel(content string) pagerModel {
	return pagerModel{content: content}
}

func (pm pagerModel) needsPagination() bool {
	if pm.height <= 0 {
		return false
	}

	return strings.Count(pm.content, "\n") > pm.height-1
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.width = msg.Width
		pm.height = msg.Height

		if !pm.ready {
			pm.viewport = viewport.New(msg.Width, msg.Height-1)
			pm.viewport.SetContent(pm.content)
			pm.ready = true
		} else {
			pm.viewport.Width = msg.Width
			pm.viewport.Height = msg.Height - 1
		}

		return pm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return pm, tea.Quit
		}
	}

	var cmd tea.Cmd
	pm.viewport, cmd = pm.viewport.Update(msg)

	return pm, cmd
}

func (pm pagerModel) View() string {
	if !pm.ready {
		return "\n  Loading..."
	}

	return pm.viewport.View() + "\n" + faintStyle.Render("↑/↓ scroll • q quit")
}
