// Package deck wires a CPU, PPU, APU, and Cartridge together into a
// runnable NES: the "control deck" in Nintendo's own terminology. It owns
// system timing (NTSC/PAL/Dendy ratios), the OAM DMA stall, and the
// host-facing contract (frame buffer, audio samples, controller/Zapper
// input) that save states, rewind, and run-ahead all build on.
package deck

import (
	"nescore/internal/apu"
	"nescore/internal/cartridge"
	"nescore/internal/config"
	"nescore/internal/cpu"
	"nescore/internal/input"
	"nescore/internal/memory"
	"nescore/internal/neserr"
	"nescore/internal/ppu"
)

// Region selects the console timing model, mirroring config.Region so the
// deck package doesn't need its callers to import config just to reset.
type Region int

const (
	RegionNTSC Region = iota
	RegionPAL
	RegionDendy
)

// timing holds the PPU:CPU cycle ratio and scanlines-per-frame for a region.
// PAL runs the PPU at 3.2x CPU speed over 312 scanlines; Dendy uses PAL's
// scanline count but NTSC's 3x PPU ratio, since Dendy clones pair an NTSC
// PPU die with PAL-speed timing.
type timing struct {
	ppuPerCPUNumerator   int
	ppuPerCPUDenominator int
	scanlinesPerFrame    int
}

var timingTable = map[Region]timing{
	RegionNTSC:  {3, 1, 262},
	RegionPAL:   {16, 5, 312},
	RegionDendy: {3, 1, 312},
}

// Deck is a fully wired NES: CPU, PPU, APU, memory maps, and input, plus
// the DMA arbitration and timing glue a bare component set doesn't have.
type Deck struct {
	CPU    *cpu.CPU
	PPU    *ppu.PPU
	APU    *apu.APU
	Memory *memory.Memory
	Input  *input.InputState

	ppuMemory *memory.PPUMemory
	cart      *cartridge.Cartridge

	region         Region
	ratioN, ratioD int
	ppuAccumulator int

	frameCount uint64

	oamDMAPending bool
	oamDMAPage    uint8

	ramInit  memory.RamInitStrategy
	randByte func() uint8
}

// New creates a Deck with no cartridge loaded; LoadROM must be called
// before ClockFrame/ClockInstruction will do anything useful.
func New(cfg *config.Config, randByte func() uint8) *Deck {
	d := &Deck{
		Input:    input.NewInputState(),
		randByte: randByte,
	}

	d.ramInit = ramInitFromConfig(cfg)
	d.region = regionFromConfig(cfg)
	t := timingTable[d.region]
	d.ratioN, d.ratioD = t.ppuPerCPUNumerator, t.ppuPerCPUDenominator

	d.PPU = ppu.New()
	d.APU = apu.New()
	if cfg != nil {
		d.APU.SetSampleRate(cfg.Audio.SampleRate)
	}

	d.Memory = memory.New(d.PPU, d.APU, nil, d.ramInit, d.randByte)
	d.Memory.SetInputSystem(d.Input)
	d.Memory.SetDMACallback(d.beginOAMDMA)

	d.CPU = cpu.New(d.Memory)
	d.APU.SetMemory(d.Memory)
	d.APU.SetStallCallback(d.CPU.Stall)

	d.PPU.SetNMICallback(func() { d.CPU.SetNMI(true) })
	d.PPU.SetFrameCompleteCallback(func() { d.frameCount = d.PPU.GetFrameCount() })

	return d
}

func ramInitFromConfig(cfg *config.Config) memory.RamInitStrategy {
	if cfg == nil {
		return memory.RamInitAllZeros
	}
	switch cfg.Emulation.RamInit {
	case config.RamStateAllOnes:
		return memory.RamInitAllOnes
	case config.RamStateRandom:
		return memory.RamInitRandom
	default:
		return memory.RamInitAllZeros
	}
}

func regionFromConfig(cfg *config.Config) Region {
	if cfg == nil {
		return RegionNTSC
	}
	switch cfg.Emulation.Region {
	case config.RegionPAL:
		return RegionPAL
	case config.RegionDendy:
		return RegionDendy
	default:
		return RegionNTSC
	}
}

// LoadROM parses and installs a cartridge image, wiring its mapper into the
// CPU and PPU memory maps and resetting every component.
func (d *Deck) LoadROM(data []byte) error {
	cart, err := cartridge.LoadFromBytes(data)
	if err != nil {
		return err
	}
	d.cart = cart

	d.Memory = memory.New(d.PPU, d.APU, cart, d.ramInit, d.randByte)
	d.Memory.SetInputSystem(d.Input)
	d.Memory.SetDMACallback(d.beginOAMDMA)

	d.CPU = cpu.New(d.Memory)
	d.APU.SetMemory(d.Memory)
	d.APU.SetStallCallback(d.CPU.Stall)

	d.ppuMemory = memory.NewPPUMemory(cart)
	d.PPU.SetMemory(d.ppuMemory)
	d.PPU.SetNMICallback(func() { d.CPU.SetNMI(true) })

	d.Reset()
	return nil
}

// Cartridge returns the currently loaded cartridge, or nil.
func (d *Deck) Cartridge() *cartridge.Cartridge {
	return d.cart
}

// SetRegion switches the console timing model. Takes effect from the next
// ClockFrame/ClockInstruction call onward.
func (d *Deck) SetRegion(region Region) {
	d.region = region
	t := timingTable[region]
	d.ratioN, d.ratioD = t.ppuPerCPUNumerator, t.ppuPerCPUDenominator
	d.ppuAccumulator = 0
}

// Reset performs a soft reset: CPU reset vector fetch, PPU/APU/input state
// cleared, but cartridge PRG-RAM and mapper bank state survive, matching
// the NES front-panel RESET button.
func (d *Deck) Reset() {
	d.CPU.Reset()
	d.PPU.Reset()
	d.APU.Reset()
	d.Input.Reset()
	d.frameCount = 0
	d.ppuAccumulator = 0
	d.oamDMAPending = false
}

// ClockInstruction executes exactly one CPU instruction (or DMA stall
// chunk) and keeps the PPU/APU/mapper ticking in lockstep, returning the
// number of CPU cycles consumed.
func (d *Deck) ClockInstruction() (uint64, error) {
	if d.oamDMAPending {
		d.runOAMDMA()
	}

	if d.CPU.IsJammed() {
		cycles := d.CPU.Step()
		d.tickPeripherals(cycles)
		return cycles, &neserr.CpuCorruptedError{PC: d.CPU.PC, Opcode: d.Memory.Read(d.CPU.PC)}
	}

	cycles := d.CPU.Step()
	d.tickPeripherals(cycles)
	return cycles, nil
}

// tickPeripherals advances the PPU (at the region's PPU:CPU ratio), APU,
// and mapper IRQ-clocking hooks by the given number of CPU cycles.
func (d *Deck) tickPeripherals(cpuCycles uint64) {
	for i := uint64(0); i < cpuCycles; i++ {
		d.APU.Step()
		d.CPU.SetIRQ(d.APU.GetFrameIRQ() || d.APU.GetDMCIRQ() || (d.cart != nil && d.cart.IRQPending()))
		if d.cart != nil {
			d.cart.TickCPUCycle()
		}

		d.ppuAccumulator += d.ratioN
		for d.ppuAccumulator >= d.ratioD {
			d.ppuAccumulator -= d.ratioD
			d.PPU.Step()
			if d.cart != nil {
				d.cart.TickPPUAddress(ppuAddressBus(d.PPU))
			}
		}
	}
}

// ppuAddressBus approximates the PPU's VRAM address bus for mapper IRQ
// counters (MMC3 and relatives), which only care about the rising edge of
// bit 12 (A12). Real hardware toggles A12 on every background/sprite
// pattern fetch; rather than modeling each of the eight fetches per tile,
// this produces one rising edge per rendered scanline at the point where
// the sprite-pattern prefetch for the next scanline begins, which is the
// edge MMC3's scanline counter is designed to count.
func ppuAddressBus(p *ppu.PPU) uint16 {
	if !p.IsRenderingEnabled() {
		return 0
	}
	scanline := p.GetScanline()
	cycle := p.GetCycle()
	if scanline >= -1 && scanline < 240 && cycle == 260 {
		return 0x1000
	}
	return 0
}

// beginOAMDMA is installed as the Memory package's $4014 write callback. It
// does not perform the transfer immediately: on real hardware the 513/514
// cycle stall interleaves with any in-flight DMC fetch, so the actual byte
// copy happens from runOAMDMA on the next ClockInstruction, once the CPU's
// stall counter has been charged.
func (d *Deck) beginOAMDMA(page uint8) {
	d.oamDMAPage = page
	d.oamDMAPending = true

	dmaCycles := 513
	if d.CPU.GetCycles()%2 == 1 {
		dmaCycles = 514
	}
	d.CPU.Stall(dmaCycles)
}

func (d *Deck) runOAMDMA() {
	d.oamDMAPending = false
	base := uint16(d.oamDMAPage) << 8
	for i := 0; i < 256; i++ {
		d.PPU.WriteOAM(uint8(i), d.Memory.Read(base+uint16(i)))
	}
}

// ClockFrame runs the deck until the PPU completes one more frame.
func (d *Deck) ClockFrame() error {
	target := d.PPU.GetFrameCount() + 1
	for d.PPU.GetFrameCount() < target {
		if _, err := d.ClockInstruction(); err != nil {
			return err
		}
	}
	return nil
}

// FrameBuffer returns the most recently rendered 256x240 frame, RGB packed
// into the low 24 bits of each uint32.
func (d *Deck) FrameBuffer() [256 * 240]uint32 {
	return d.PPU.GetFrameBuffer()
}

// AudioSamples drains and returns the APU's pending float32 sample buffer.
func (d *Deck) AudioSamples() []float32 {
	return d.APU.GetSamples()
}

// SetSampleRate reconfigures the APU's output sample rate.
func (d *Deck) SetSampleRate(rate int) error {
	if rate < 8000 || rate > 96000 {
		return &neserr.SampleRateUnsupportedError{Requested: rate}
	}
	d.APU.SetSampleRate(rate)
	return nil
}

// Joypad returns the standard controller in the given port (1 or 2).
func (d *Deck) Joypad(port int) *input.Controller {
	if port == 2 {
		return d.Input.Controller2
	}
	return d.Input.Controller1
}

// AttachZapper wires a light-gun into port 2, displacing Controller2.
func (d *Deck) AttachZapper(z *input.Zapper) {
	d.Input.AttachZapper(z)
}

// Zapper returns the light-gun currently attached to port 2, or nil.
func (d *Deck) Zapper() *input.Zapper {
	return d.Input.Zapper
}

// FrameCount returns the number of frames rendered since power-on or reset.
func (d *Deck) FrameCount() uint64 {
	return d.frameCount
}
