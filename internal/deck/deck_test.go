package deck

import (
	"testing"

	"nescore/internal/config"
	"nescore/internal/neserr"
)

// buildNROMImage assembles a minimal mapper-0 iNES ROM: a single 16KiB PRG
// bank (mirrored into $8000-$FFFF) filled with NOPs, with the reset vector
// pointing at $8000, plus one 8KiB CHR-ROM bank.
func buildNROMImage(resetOpcode uint8) []byte {
	header := []byte{0x4E, 0x45, 0x53, 0x1A, 0x01, 0x01, 0x00, 0x00, 0, 0, 0, 0, 0, 0, 0, 0}
	prg := make([]byte, 0x4000)
	for i := range prg {
		prg[i] = 0xEA // NOP
	}
	prg[0] = resetOpcode
	prg[0x3FFC] = 0x00 // reset vector low ($8000)
	prg[0x3FFD] = 0x80 // reset vector high
	chr := make([]byte, 0x2000)

	rom := append([]byte{}, header...)
	rom = append(rom, prg...)
	rom = append(rom, chr...)
	return rom
}

// buildNROMImageWithVectors is buildNROMImage generalized to also plant a
// JMP loop at a chosen NMI-vector target, so a test can tell whether the
// CPU actually dispatched through the NMI vector rather than merely
// guessing from how far PC advanced through a featureless NOP stream.
func buildNROMImageWithVectors(resetTarget, nmiTarget uint16) []byte {
	header := []byte{0x4E, 0x45, 0x53, 0x1A, 0x01, 0x01, 0x00, 0x00, 0, 0, 0, 0, 0, 0, 0, 0}
	prg := make([]byte, 0x4000)
	for i := range prg {
		prg[i] = 0xEA // NOP
	}

	plantJMPLoop := func(addr uint16) {
		off := int(addr-0x8000) % len(prg)
		prg[off] = 0x4C // JMP absolute
		prg[off+1] = uint8(addr)
		prg[off+2] = uint8(addr >> 8)
	}
	plantJMPLoop(resetTarget)
	plantJMPLoop(nmiTarget)

	prg[0x3FFC] = uint8(resetTarget)
	prg[0x3FFD] = uint8(resetTarget >> 8)
	prg[0x3FFA] = uint8(nmiTarget)
	prg[0x3FFB] = uint8(nmiTarget >> 8)

	chr := make([]byte, 0x2000)
	rom := append([]byte{}, header...)
	rom = append(rom, prg...)
	rom = append(rom, chr...)
	return rom
}

func newTestDeck(t *testing.T) *Deck {
	t.Helper()
	d := New(config.New(), func() uint8 { return 0 })
	if err := d.LoadROM(buildNROMImage(0xEA)); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	return d
}

func TestLoadROMResetsCPUToResetVector(t *testing.T) {
	d := newTestDeck(t)
	if d.CPU.PC != 0x8000 {
		t.Errorf("CPU.PC after LoadROM = $%04X, want $8000", d.CPU.PC)
	}
	if d.Cartridge() == nil {
		t.Error("Cartridge() should be non-nil after a successful LoadROM")
	}
}

func TestClockInstructionAdvancesPCPastNOPs(t *testing.T) {
	d := newTestDeck(t)
	startPC := d.CPU.PC
	if _, err := d.ClockInstruction(); err != nil {
		t.Fatalf("ClockInstruction: %v", err)
	}
	if d.CPU.PC != startPC+1 {
		t.Errorf("PC after one NOP = $%04X, want $%04X", d.CPU.PC, startPC+1)
	}
}

func TestClockFrameAdvancesFrameCount(t *testing.T) {
	d := newTestDeck(t)
	if err := d.ClockFrame(); err != nil {
		t.Fatalf("ClockFrame: %v", err)
	}
	if d.FrameCount() != 1 {
		t.Errorf("FrameCount() after one ClockFrame = %d, want 1", d.FrameCount())
	}
}

func TestClockFrameDispatchesVBLNMIWhenEnabled(t *testing.T) {
	d := New(config.New(), func() uint8 { return 0 })
	if err := d.LoadROM(buildNROMImageWithVectors(0x8000, 0x9000)); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}

	d.Memory.Write(0x2000, 0x80) // PPUCTRL: enable NMI on VBL

	if err := d.ClockFrame(); err != nil {
		t.Fatalf("ClockFrame: %v", err)
	}

	if d.CPU.PC != 0x9000 {
		t.Errorf("PC after a VBL with NMI enabled = $%04X, want $9000 (the NMI vector's JMP loop)", d.CPU.PC)
	}
}

func TestClockFrameDoesNotDispatchNMIWhenDisabled(t *testing.T) {
	d := New(config.New(), func() uint8 { return 0 })
	if err := d.LoadROM(buildNROMImageWithVectors(0x8000, 0x9000)); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}

	if err := d.ClockFrame(); err != nil {
		t.Fatalf("ClockFrame: %v", err)
	}

	if d.CPU.PC != 0x8000 {
		t.Errorf("PC after a VBL with NMI disabled = $%04X, want $8000 (never left the reset loop)", d.CPU.PC)
	}
}

func TestClockInstructionReportsJammedCPU(t *testing.T) {
	d := New(config.New(), func() uint8 { return 0 })
	if err := d.LoadROM(buildNROMImage(0x02)); err != nil { // KIL/JAM
		t.Fatalf("LoadROM: %v", err)
	}

	if _, err := d.ClockInstruction(); err != nil {
		t.Fatalf("first ClockInstruction (the JAM fetch itself) returned %v, want nil", err)
	}
	_, err := d.ClockInstruction()
	if _, ok := err.(*neserr.CpuCorruptedError); !ok {
		t.Fatalf("got error %v (%T), want *CpuCorruptedError", err, err)
	}
}

func TestOAMDMAStallsCPUForAFullTransfer(t *testing.T) {
	d := newTestDeck(t)
	d.Memory.Write(0x4014, 0x00) // triggers beginOAMDMA via the DMA callback

	if !d.oamDMAPending {
		t.Fatal("writing $4014 should mark an OAM DMA transfer pending")
	}

	totalCycles := uint64(0)
	for i := 0; i < 20; i++ {
		cycles, err := d.ClockInstruction()
		if err != nil {
			t.Fatalf("ClockInstruction: %v", err)
		}
		totalCycles += cycles
		if !d.oamDMAPending {
			break
		}
	}
	if d.oamDMAPending {
		t.Fatal("OAM DMA should have completed within 20 instructions worth of stall cycles")
	}
	if totalCycles < 513 {
		t.Errorf("total cycles consumed during OAM DMA = %d, want >= 513", totalCycles)
	}
}

func TestSetRegionChangesPPUCPURatio(t *testing.T) {
	d := newTestDeck(t)
	d.SetRegion(RegionPAL)
	if d.ratioN != 16 || d.ratioD != 5 {
		t.Errorf("PAL ratio = %d/%d, want 16/5", d.ratioN, d.ratioD)
	}

	d.SetRegion(RegionDendy)
	if d.ratioN != 3 || d.ratioD != 1 {
		t.Errorf("Dendy ratio = %d/%d, want 3/1", d.ratioN, d.ratioD)
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	d := newTestDeck(t)
	for i := 0; i < 10; i++ {
		if _, err := d.ClockInstruction(); err != nil {
			t.Fatalf("ClockInstruction: %v", err)
		}
	}

	snap := d.Snapshot()

	d2 := newTestDeck(t)
	if err := d2.Restore(snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if d2.CPU.PC != d.CPU.PC {
		t.Errorf("restored PC = $%04X, want $%04X", d2.CPU.PC, d.CPU.PC)
	}
	if d2.FrameCount() != d.FrameCount() {
		t.Errorf("restored FrameCount = %d, want %d", d2.FrameCount(), d.FrameCount())
	}
}

func TestSaveStateLoadStateRoundTrip(t *testing.T) {
	d := newTestDeck(t)
	for i := 0; i < 5; i++ {
		if _, err := d.ClockInstruction(); err != nil {
			t.Fatalf("ClockInstruction: %v", err)
		}
	}

	data, err := d.SaveState()
	if err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	d2 := newTestDeck(t)
	if err := d2.LoadState(data); err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if d2.CPU.PC != d.CPU.PC {
		t.Errorf("PC after LoadState = $%04X, want $%04X", d2.CPU.PC, d.CPU.PC)
	}
}

func TestLoadStateRejectsIncompatibleVersion(t *testing.T) {
	d := newTestDeck(t)
	snap := d.Snapshot()
	snap.Version = 0xFFFFFFFF

	err := d.Restore(snap)
	if _, ok := err.(*neserr.IncompatibleSaveStateError); !ok {
		t.Fatalf("got error %v (%T), want *IncompatibleSaveStateError", err, err)
	}
}

func TestRewindBufferRecordsEveryStrideFrames(t *testing.T) {
	d := newTestDeck(t)
	rb := NewRewindBuffer(2, 4)

	for i := 0; i < 6; i++ {
		if err := d.ClockFrame(); err != nil {
			t.Fatalf("ClockFrame: %v", err)
		}
		rb.Tick(d)
	}

	if rb.Len() != 3 {
		t.Errorf("RewindBuffer.Len() after 6 frames at stride 2 = %d, want 3", rb.Len())
	}
}

func TestRewindBufferEvictsOldestOnceFull(t *testing.T) {
	rb := NewRewindBuffer(1, 2)
	rb.Push(Snapshot{FrameCount: 1})
	rb.Push(Snapshot{FrameCount: 2})
	rb.Push(Snapshot{FrameCount: 3}) // evicts FrameCount: 1

	s, ok := rb.Pop()
	if !ok || s.FrameCount != 3 {
		t.Fatalf("first Pop() = %+v, %v; want FrameCount=3", s, ok)
	}
	s, ok = rb.Pop()
	if !ok || s.FrameCount != 2 {
		t.Fatalf("second Pop() = %+v, %v; want FrameCount=2", s, ok)
	}
	if rb.Len() != 0 {
		t.Errorf("Len() after draining = %d, want 0", rb.Len())
	}
}

func TestRewindBufferPopOnEmptyReturnsFalse(t *testing.T) {
	rb := NewRewindBuffer(1, 2)
	if _, ok := rb.Pop(); ok {
		t.Error("Pop() on an empty RewindBuffer should report false")
	}
}

func TestStepBackRestoresDeckToPriorSnapshot(t *testing.T) {
	d := newTestDeck(t)
	rb := NewRewindBuffer(1, 4)
	rb.Push(d.Snapshot())

	if err := d.ClockFrame(); err != nil {
		t.Fatalf("ClockFrame: %v", err)
	}
	pcAfterFrame := d.CPU.PC

	if !d.StepBack(rb) {
		t.Fatal("StepBack should succeed with a recorded snapshot available")
	}
	if d.CPU.PC == pcAfterFrame && d.FrameCount() != 0 {
		t.Error("StepBack should have restored the deck to its pre-frame checkpoint")
	}
}

func TestRunAheadDepthZeroBehavesLikeClockFrame(t *testing.T) {
	d := newTestDeck(t)
	if err := d.RunAhead(0); err != nil {
		t.Fatalf("RunAhead(0): %v", err)
	}
	if d.FrameCount() != 1 {
		t.Errorf("FrameCount() after RunAhead(0) = %d, want 1", d.FrameCount())
	}
}

func TestRunAheadAdvancesExactlyOneRealFrame(t *testing.T) {
	d := newTestDeck(t)
	if err := d.RunAhead(3); err != nil {
		t.Fatalf("RunAhead(3): %v", err)
	}
	if d.FrameCount() != 1 {
		t.Errorf("FrameCount() after RunAhead(3) = %d, want 1 (only one real frame is retained)", d.FrameCount())
	}
}
