// Package cartridge implements iNES/NES 2.0 ROM loading and the mapper set
// that bank-switches PRG/CHR memory and resolves nametable mirroring.
package cartridge

import (
	"io"
	"os"
)

// Cartridge holds a loaded ROM's immutable metadata plus its mutable
// PRG-RAM/CHR-RAM arrays, and owns the Mapper that interprets them.
type Cartridge struct {
	Header Header

	prgROM []uint8
	chrROM []uint8 // empty when hasCHRRAM
	prgRAM []uint8
	chrRAM []uint8

	hasCHRRAM bool
	mapper    Mapper
}

// LoadFromFile reads and parses a ROM image from disk.
func LoadFromFile(path string) (*Cartridge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses a ROM image already resident in memory.
func LoadFromBytes(data []byte) (*Cartridge, error) {
	return LoadFromReader(&bytesReader{data})
}

// bytesReader is a minimal io.Reader over a byte slice.
type bytesReader struct{ b []byte }

func (r *bytesReader) Read(p []byte) (int, error) {
	if len(r.b) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.b)
	r.b = r.b[n:]
	return n, nil
}

// LoadFromReader parses an iNES/NES 2.0 ROM image from an arbitrary reader.
func LoadFromReader(r io.Reader) (*Cartridge, error) {
	header, err := parseHeader(r)
	if err != nil {
		return nil, err
	}

	var trainer []byte
	if header.HasTrainer {
		trainer = make([]byte, 512)
		if _, err := io.ReadFull(r, trainer); err != nil {
			return nil, err
		}
	}

	prg := make([]byte, header.PRGROMSize)
	if _, err := io.ReadFull(r, prg); err != nil {
		return nil, err
	}

	var chr []byte
	hasCHRRAM := header.CHRROMSize == 0
	if !hasCHRRAM {
		chr = make([]byte, header.CHRROMSize)
		if _, err := io.ReadFull(r, chr); err != nil {
			return nil, err
		}
	}

	cart := &Cartridge{
		Header:    *header,
		prgROM:    prg,
		chrROM:    chr,
		prgRAM:    make([]byte, maxInt(header.PRGRAMSize, header.PRGNVRAMSiz, 8192)),
		hasCHRRAM: hasCHRRAM,
	}
	if hasCHRRAM {
		cart.chrRAM = make([]byte, maxInt(header.CHRRAMSize, 8192))
	}
	if trainer != nil && len(cart.prgRAM) >= 0x1200 {
		copy(cart.prgRAM[0x1000:0x1200], trainer)
	}

	mapper, err := NewMapper(header.MapperID, cart)
	if err != nil {
		return nil, err
	}
	cart.mapper = mapper

	return cart, nil
}

func maxInt(vals ...int) int {
	m := 0
	for _, v := range vals {
		if v > m {
			m = v
		}
	}
	return m
}

// Mapper returns the cartridge's bank-switching logic.
func (c *Cartridge) Mapper() Mapper { return c.mapper }

// ReadPRG, PeekPRG, WritePRG, ReadCHR, WriteCHR delegate to the mapper; they
// exist on Cartridge as a convenience for callers that hold only a
// *Cartridge.
func (c *Cartridge) ReadPRG(addr uint16) uint8         { return c.mapper.ReadPRG(addr) }
func (c *Cartridge) PeekPRG(addr uint16) uint8         { return c.mapper.PeekPRG(addr) }
func (c *Cartridge) WritePRG(addr uint16, value uint8) { c.mapper.WritePRG(addr, value) }
func (c *Cartridge) ReadCHR(addr uint16) uint8         { return c.mapper.ReadCHR(addr) }
func (c *Cartridge) WriteCHR(addr uint16, value uint8) { c.mapper.WriteCHR(addr, value) }

// Mirroring reports the mapper's current nametable mirroring mode.
func (c *Cartridge) Mirroring() Mirroring { return c.mapper.Mirroring() }

// IRQPending reports whether the mapper is asserting its IRQ line.
func (c *Cartridge) IRQPending() bool { return c.mapper.IRQPending() }

// TickPPUAddress notifies the mapper of the current PPU address bus value,
// once per PPU cycle, so A12-edge mappers (MMC3 and kin) can detect
// scanline boundaries.
func (c *Cartridge) TickPPUAddress(addr uint16) { c.mapper.TickPPUAddress(addr) }

// TickCPUCycle notifies the mapper that one CPU cycle has elapsed, for
// mappers with CPU-clocked IRQ counters or expansion audio.
func (c *Cartridge) TickCPUCycle() { c.mapper.TickCPUCycle() }

// ExpansionAudioSample returns the mapper's expansion-audio output, or 0
// for mappers with none.
func (c *Cartridge) ExpansionAudioSample() int16 { return c.mapper.ExpansionAudioSample() }

// BatterySRAM returns the PRG-RAM bytes the host should persist across
// sessions, or nil if the cartridge has no battery backup.
func (c *Cartridge) BatterySRAM() []byte {
	if !c.Header.HasBattery {
		return nil
	}
	return c.prgRAM
}

// LoadBatterySRAM restores previously persisted battery-backed PRG-RAM.
func (c *Cartridge) LoadBatterySRAM(data []byte) {
	copy(c.prgRAM, data)
}

// RAMState is the serializable snapshot of cartridge-resident RAM. Mapper
// bank-select/IRQ-counter register state is not included: restoring it
// generically across the mapper set isn't modeled, so a save state loaded
// mid-game on an actively bank-switching mapper may show stale banking
// until the next bank-select write re-syncs it. PRG-RAM contents (saves,
// work RAM) are unaffected.
type RAMState struct {
	PRGRAM []uint8
	CHRRAM []uint8
}

// ExportState captures PRG-RAM and (if present) CHR-RAM.
func (c *Cartridge) ExportState() RAMState {
	s := RAMState{PRGRAM: make([]uint8, len(c.prgRAM))}
	copy(s.PRGRAM, c.prgRAM)
	if c.hasCHRRAM {
		s.CHRRAM = make([]uint8, len(c.chrRAM))
		copy(s.CHRRAM, c.chrRAM)
	}
	return s
}

// ImportState restores previously captured PRG-RAM/CHR-RAM.
func (c *Cartridge) ImportState(s RAMState) {
	copy(c.prgRAM, s.PRGRAM)
	if c.hasCHRRAM {
		copy(c.chrRAM, s.CHRRAM)
	}
}
