// Command nesdbg is an interactive bubbletea step-debugger over a loaded
// 6502 program: it single-steps a Console and renders the page around PC,
// the register file, and the next decoded instruction on every keypress.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"nesemu/loader"
	"nesemu/nes"
	"nesemu/opcode"
)

const pageRows = 5

type model struct {
	console *nes.Console
	prevPC  uint16
	err     error
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "q":
		return m, tea.Quit
	case " ", "j":
		m.prevPC = m.console.CPU.PC
		if _, err := m.console.Step(); err != nil {
			m.err = err
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04x | ", start)
	for i := 0; i < 16; i++ {
		addr := start + uint16(i)
		b := m.console.Bus.Read(addr)
		if addr == m.console.CPU.PC {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) pageTable() string {
	header := "page | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf("  %01x  ", b)
	}
	rows := []string{header}
	base := m.console.CPU.PC &^ 0x0F
	for i := -1; i < pageRows; i++ {
		rows = append(rows, m.renderPage(base+uint16(i*16)))
	}
	return strings.Join(rows, "\n")
}

func (m model) status() string {
	c := m.console.CPU
	flags := []bool{c.P.Negative, c.P.Overflow, true, c.P.B, c.P.Decimal, c.P.Interrupt, c.P.Zero, c.P.Carry}
	var rendered string
	for _, f := range flags {
		if f {
			rendered += "/ "
		} else {
			rendered += "  "
		}
	}
	return fmt.Sprintf(`
PC: %04x (%04x)
 A: %02x
 X: %02x
 Y: %02x
SP: %02x
N V _ B D I Z C
`, c.PC, m.prevPC, c.A, c.X, c.Y, c.SP) + rendered
}

func (m model) View() string {
	next, _ := opcode.Decode(m.console.Bus.Read(m.console.CPU.PC))
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.pageTable(), m.status()),
		"",
		spew.Sdump(next),
	)
}

func main() {
	hexPath := flag.String("hex", "", "ASCII hex dump program to load")
	inesPath := flag.String("ines", "", "iNES cartridge to load")
	flag.Parse()

	console := nes.New()
	if err := loadFromFlags(console, *hexPath, *inesPath); err != nil {
		fmt.Fprintln(os.Stderr, "nesdbg:", err)
		os.Exit(1)
	}

	m, err := tea.NewProgram(model{console: console}).Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "nesdbg:", err)
		os.Exit(1)
	}
	if final, ok := m.(model); ok && final.err != nil {
		fmt.Println("Error:", final.err)
	}
}

func loadFromFlags(console *nes.Console, hexPath, inesPath string) error {
	switch {
	case hexPath != "":
		f, err := os.Open(hexPath)
		if err != nil {
			return err
		}
		defer f.Close()
		pc, err := loader.LoadHexText(console.Bus, f)
		if err != nil {
			return err
		}
		console.CPU.PC = pc
	case inesPath != "":
		f, err := os.Open(inesPath)
		if err != nil {
			return err
		}
		defer f.Close()
		pc, err := loader.LoadINES(console.Bus, f)
		if err != nil {
			return err
		}
		console.CPU.PC = pc
	default:
		console.CPU.PC = console.Bus.ResetVector()
	}
	return nil
}
