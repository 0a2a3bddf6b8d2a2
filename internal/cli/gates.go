package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/qsketch/qsketch/pkg/circuit"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// gatesCommand creates the gates command for browsing the builtin gate table.
func (c *CLI) gatesCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "gates",
		Short: "Browse the builtin gate table",
		Long: `Gates lists every builtin gate with its bit count, argument count,
and the OpenQASM and cQASM instructions it produces.

By default an interactive browser is shown. Use --plain for a
non-interactive listing suitable for scripts and pipes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := gateEntries()
			if plain {
				printGateTable(entries)
				return nil
			}

			model := NewGateListModel(entries)
			_, err := tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print a plain listing instead of the interactive browser")

	return cmd
}

// =============================================================================
// Gate Catalog
// =============================================================================

// gateEntry is one row of the gate browser: a table entry plus the
// instruction text of a sample instantiation.
type gateEntry struct {
	Name        string
	NumBits     int
	NumArgs     int
	Description string
	OpenQASM    string
	CQasm       string
}

// sampleArg is the argument used to instantiate parameterized gates for
// display purposes.
const sampleArg = 0.5

func gateEntries() []gateEntry {
	infos := circuit.Gates()
	entries := make([]gateEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, newGateEntry(info))
	}
	return entries
}

func newGateEntry(info circuit.GateInfo) gateEntry {
	entry := gateEntry{
		Name:    info.Name,
		NumBits: info.NumBits,
		NumArgs: info.NumArgs,
	}

	args := make([]float64, info.NumArgs)
	for i := range args {
		args[i] = sampleArg
	}
	gate, err := circuit.NewGate(info.Name, args)
	if err != nil {
		return entry
	}
	entry.Description = gate.Description()

	names := make([]string, info.NumBits)
	bits := make([]int, info.NumBits)
	for i := range names {
		names[i] = fmt.Sprintf("q[%d]", i)
		bits[i] = i
	}
	if q, ok := gate.(circuit.OpenQASMer); ok {
		if instr, err := q.OpenQASM(names, bits); err == nil {
			entry.OpenQASM = instr
		}
	}
	if q, ok := gate.(circuit.CQasmer); ok {
		if instr, err := q.CQasm(names, bits); err == nil {
			entry.CQasm = instr
		}
	}
	return entry
}

func printGateTable(entries []gateEntry) {
	for _, e := range entries {
		fmt.Printf("%-6s %d bits  %d args  %s\n", e.Name, e.NumBits, e.NumArgs, e.Description)
	}
}

// =============================================================================
// GateListModel - Interactive gate browser
// =============================================================================

// GateListModel is the bubbletea model for the gate browser.
type GateListModel struct {
	Entries []gateEntry
	Cursor  int
	Height  int
	Offset  int
}

// NewGateListModel creates a new gate list model.
func NewGateListModel(entries []gateEntry) GateListModel {
	return GateListModel{
		Entries: entries,
		Cursor:  0,
		Height:  15,
		Offset:  0,
	}
}

func (m GateListModel) Init() tea.Cmd {
	return nil
}

func (m GateListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m GateListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Builtin Gates"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		line := fmt.Sprintf("%-6s %s", e.Name, listDimStyle.Render(e.Description))
		b.WriteString(cursor + style.Render(line))
		b.WriteString("\n")
	}

	// Detail panel for the selected gate
	if m.Cursor < len(m.Entries) {
		e := m.Entries[m.Cursor]
		b.WriteString("\n")
		b.WriteString(StyleDim.Render(fmt.Sprintf("bits: %d  args: %d", e.NumBits, e.NumArgs)))
		b.WriteString("\n")
		if e.OpenQASM != "" {
			b.WriteString(StyleDim.Render("openqasm: ") + StyleValue.Render(e.OpenQASM))
			b.WriteString("\n")
		}
		if e.CQasm != "" {
			b.WriteString(StyleDim.Render("cqasm:    ") + StyleValue.Render(e.CQasm))
			b.WriteString("\n")
		}
	}

	return b.String()
}
