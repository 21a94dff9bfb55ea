package deck

import (
	"bytes"
	"encoding/gob"

	"nescore/internal/apu"
	"nescore/internal/cartridge"
	"nescore/internal/cpu"
	"nescore/internal/input"
	"nescore/internal/memory"
	"nescore/internal/neserr"
	"nescore/internal/ppu"
)

// saveStateVersion is bumped whenever the Snapshot shape changes in a way
// that would make an older blob unsafe to restore.
const saveStateVersion = 1

// Snapshot is the full serializable state of a running Deck: every
// component's registers, memory, and timing counters, enough to resume
// emulation bit-for-bit from the point it was captured. Used directly by
// SaveState/LoadState, and as the building block for rewind and run-ahead.
type Snapshot struct {
	Version uint32

	CPU       cpu.State
	PPU       ppu.State
	PPUMemory memory.PPUState
	APU       apu.State
	RAM       memory.State
	Cartridge cartridge.RAMState

	Controller1, Controller2 input.ButtonState

	Region         Region
	PPUAccumulator int
	FrameCount     uint64
	OAMDMAPending  bool
	OAMDMAPage     uint8
}

// Snapshot captures the Deck's complete state.
func (d *Deck) Snapshot() Snapshot {
	s := Snapshot{
		Version:        saveStateVersion,
		CPU:            d.CPU.ExportState(),
		PPU:            d.PPU.ExportState(),
		APU:            d.APU.ExportState(),
		RAM:            d.Memory.ExportState(),
		Region:         d.region,
		PPUAccumulator: d.ppuAccumulator,
		FrameCount:     d.frameCount,
		OAMDMAPending:  d.oamDMAPending,
		OAMDMAPage:     d.oamDMAPage,
	}
	if d.ppuMemory != nil {
		s.PPUMemory = d.ppuMemory.ExportState()
	}
	if d.cart != nil {
		s.Cartridge = d.cart.ExportState()
	}
	s.Controller1 = d.Input.Controller1.ExportState()
	s.Controller2 = d.Input.Controller2.ExportState()
	return s
}

// Restore applies a previously captured Snapshot, returning
// IncompatibleSaveStateError if its version doesn't match this build.
func (d *Deck) Restore(s Snapshot) error {
	if s.Version != saveStateVersion {
		return &neserr.IncompatibleSaveStateError{WantVersion: saveStateVersion, GotVersion: s.Version}
	}
	d.CPU.ImportState(s.CPU)
	d.PPU.ImportState(s.PPU)
	d.APU.ImportState(s.APU)
	d.Memory.ImportState(s.RAM)
	if d.ppuMemory != nil {
		d.ppuMemory.ImportState(s.PPUMemory)
	}
	if d.cart != nil {
		d.cart.ImportState(s.Cartridge)
	}
	d.Input.Controller1.ImportState(s.Controller1)
	d.Input.Controller2.ImportState(s.Controller2)
	d.region = s.Region
	t := timingTable[d.region]
	d.ratioN, d.ratioD = t.ppuPerCPUNumerator, t.ppuPerCPUDenominator
	d.ppuAccumulator = s.PPUAccumulator
	d.frameCount = s.FrameCount
	d.oamDMAPending = s.OAMDMAPending
	d.oamDMAPage = s.OAMDMAPage
	return nil
}

// SaveState serializes the Deck's current state to a gob-encoded byte
// slice, suitable for writing to disk.
func (d *Deck) SaveState() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(d.Snapshot()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadState decodes and restores a blob produced by SaveState.
func (d *Deck) LoadState(data []byte) error {
	var s Snapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return err
	}
	return d.Restore(s)
}
