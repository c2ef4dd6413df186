// Package nes wires a cpu.CPU, bus.Bus and ppu.PPU together into a single
// headless driver: the console, which runs a program, tracks elapsed
// cycles, and delivers the NMI at each frame boundary when the PPU has it
// enabled.
package nes

import (
	"nesemu/bus"
	"nesemu/cpu"
	"nesemu/ppu"
)

const (
	ppuScanlinesPerFrame = 262
	ppuCyclesPerScanline = 341

	// PPUCyclesPerFrame is the number of PPU dot-clocks in one NTSC frame.
	PPUCyclesPerFrame = ppuScanlinesPerFrame * ppuCyclesPerScanline

	// CPUCyclesPerFrame is PPUCyclesPerFrame divided by three: the CPU runs
	// at a third of the PPU's dot clock.
	CPUCyclesPerFrame = PPUCyclesPerFrame / 3
)

// Console owns the three architectural components and the bookkeeping
// needed to find frame boundaries without a wall-clock.
type Console struct {
	CPU *cpu.CPU
	Bus *bus.Bus

	Clock              uint64
	TimeSinceLastFrame uint64
	FramesRendered     uint64
	LastFrame          [ppu.FrameWidth * ppu.FrameHeight]ppu.RGB
}

// New returns a Console with a fresh CPU and Bus (the Bus owns its own
// freshly power-up PPU).
func New() *Console {
	return &Console{
		CPU: cpu.New(),
		Bus: bus.New(),
	}
}

// Step executes exactly one fetch-decode-execute cycle, advances the clock
// and per-frame counters, and delivers NMI when a frame's worth of CPU
// cycles has elapsed and the PPU has NMI generation enabled. It returns the
// cycles the instruction (and NMI, if delivered) charged.
func (n *Console) Step() (uint64, error) {
	cycles, err := n.CPU.Step(n.Bus)
	if err != nil {
		return 0, err
	}
	n.Clock += cycles
	n.TimeSinceLastFrame += cycles

	if n.TimeSinceLastFrame >= CPUCyclesPerFrame {
		n.TimeSinceLastFrame -= CPUCyclesPerFrame
		if n.Bus.PPU.Ctrl&ppu.CtrlGenerateNMI != 0 {
			n.LastFrame = n.Bus.PPU.RenderFrame()
			n.FramesRendered++
			cycles += n.CPU.NMI(n.Bus)
		}
	}
	return cycles, nil
}

// Run drives the console until exit reports true for the current PC,
// grounded on the original headless `run_cpu_program` loop: fetch, decode,
// execute, repeat.
func (n *Console) Run(exit func(pc uint16) bool) error {
	for !exit(n.CPU.PC) {
		if _, err := n.Step(); err != nil {
			return err
		}
	}
	return nil
}
