package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/explaintext/pkg/explain"
	"github.com/matzehuels/explaintext/pkg/format/text"
	"github.com/matzehuels/explaintext/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorValue)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorMuted)
	previewStyle      = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorMuted).
				Padding(0, 1)
)

// viewCommand creates the view command.
func (c *CLI) viewCommand() *cobra.Command {
	var show, glyphs string

	cmd := &cobra.Command{
		Use:   "view [file|-]",
		Short: "Choose sections interactively and preview the text",
		Long: `Open an interactive preview of an explanation.

Toggle sections and switch glyph sets while watching the rendered text.
Press enter to print the final rendering to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd, args, show, glyphs)
		},
	}

	cmd.Flags().StringVarP(&show, "show", "s", "", "initially selected sections (comma-separated)")
	cmd.Flags().StringVarP(&glyphs, "glyphs", "g", "", "initial glyph set: unicode (default), ascii")
	registerSectionFlags(cmd)

	return cmd
}

func (c *CLI) runView(cmd *cobra.Command, args []string, show, glyphs string) error {
	ctx := cmd.Context()

	data, source, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	opts := c.pipelineOptions(showFlag(cmd, show), glyphs, false)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	e, _, err := pipeline.NewRunner(nil, nil, c.Logger).Decode(ctx, data)
	if err != nil {
		return err
	}

	m := newViewModel(e, opts.Sections(), opts.Glyphs == text.GlyphsASCII)
	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx), tea.WithOutput(statusOut)}
	if source == "stdin" {
		progOpts = append(progOpts, tea.WithInputTTY())
	}
	final, err := tea.NewProgram(m, progOpts...).Run()
	if err != nil {
		return err
	}

	vm := final.(viewModel)
	if !vm.accepted {
		return nil
	}
	if err := writeOutput(cmd, "", []byte(vm.render())); err != nil {
		return err
	}
	showArg := strings.Join(vm.selectedKeys(), ",")
	if showArg == "" {
		showArg = `""`
	}
	printDetail("explaintext format --show %s --glyphs %s %s", showArg, vm.glyphName(), source)
	return nil
}

// =============================================================================
// viewModel - Interactive section selection
// =============================================================================

type sectionToggle struct {
	section text.Section
	on      bool
}

// viewModel is the bubbletea model behind `view`.
type viewModel struct {
	explanation *explain.Explanation
	toggles     []sectionToggle
	cursor      int
	ascii       bool
	offset      int // first preview line shown
	height      int // preview lines shown
	accepted    bool
}

// newViewModel selects the sections in initial, or all when initial is nil.
func newViewModel(e *explain.Explanation, initial []text.Section, ascii bool) viewModel {
	on := make(map[text.Section]bool, len(initial))
	for _, s := range initial {
		on[s] = true
	}
	all := text.AllSections()
	toggles := make([]sectionToggle, len(all))
	for i, s := range all {
		toggles[i] = sectionToggle{section: s, on: initial == nil || on[s]}
	}
	return viewModel{explanation: e, toggles: toggles, ascii: ascii, height: 20}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.toggles)-1 {
				m.cursor++
			}
		case " ", "x":
			m.toggles[m.cursor].on = !m.toggles[m.cursor].on
			m.offset = 0
		case "g":
			m.ascii = !m.ascii
		case "pgdown", "J":
			if last := len(m.previewLines()) - m.height; m.offset < last {
				m.offset = min(m.offset+m.height/2, last)
			}
		case "pgup", "K":
			m.offset = max(m.offset-m.height/2, 0)
		case "enter":
			m.accepted = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-len(m.toggles)-8, 5)
	}
	return m, nil
}

func (m viewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explanation Preview"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ move  space toggle  g glyphs  J/K scroll  ⏎ print  q quit"))
	b.WriteString("\n\n")

	for i, t := range m.toggles {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		box := "[ ]"
		if t.on {
			box = "[x]"
		}
		line := fmt.Sprintf("%s%s %s", cursor, box, t.section)

		switch {
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case !t.section.Present(m.explanation):
			b.WriteString(listDimStyle.Render(line + "  (empty)"))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render("  glyphs: " + m.glyphName()))
	b.WriteString("\n")

	lines := m.previewLines()
	end := min(m.offset+m.height, len(lines))
	b.WriteString(previewStyle.Render(strings.Join(lines[m.offset:end], "\n")))
	b.WriteString("\n")
	if len(lines) > m.height {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d-%d/%d]", m.offset+1, end, len(lines))))
	}
	return b.String()
}

// selected returns the sections switched on, in canonical order. It is
// never nil, so an empty selection renders no sections.
func (m viewModel) selected() []text.Section {
	out := make([]text.Section, 0, len(m.toggles))
	for _, t := range m.toggles {
		if t.on {
			out = append(out, t.section)
		}
	}
	return out
}

func (m viewModel) selectedKeys() []string {
	sel := m.selected()
	keys := make([]string, len(sel))
	for i, s := range sel {
		keys[i] = s.String()
	}
	return keys
}

func (m viewModel) glyphName() string {
	if m.ascii {
		return text.GlyphsASCII
	}
	return text.GlyphsUnicode
}

// render formats the explanation with the current selection.
func (m viewModel) render() string {
	return strings.Join(m.lines(), "\n")
}

func (m viewModel) lines() []string {
	g, _ := text.ParseGlyphs(m.glyphName())
	f := text.New(text.Options{Glyphs: g})
	return f.Lines(m.explanation, m.selected()...)
}

func (m viewModel) previewLines() []string {
	lines := m.lines()
	if len(lines) == 0 {
		return []string{listDimStyle.Render("(nothing to show)")}
	}
	return lines
}
