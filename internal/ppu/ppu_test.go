package ppu

import (
	"nescore/internal/cartridge"
	"nescore/internal/memory"
	"testing"
)

// fakeCart is a bare CartridgeInterface double for wiring a PPUMemory
// without pulling in a real mapper.
type fakeCart struct {
	chr       [0x2000]uint8
	mirroring cartridge.Mirroring
}

func (c *fakeCart) ReadPRG(addr uint16) uint8         { return 0 }
func (c *fakeCart) WritePRG(addr uint16, value uint8) {}
func (c *fakeCart) ReadCHR(addr uint16) uint8         { return c.chr[addr] }
func (c *fakeCart) WriteCHR(addr uint16, value uint8) { c.chr[addr] = value }
func (c *fakeCart) Mirroring() cartridge.Mirroring    { return c.mirroring }

func newTestPPU() *PPU {
	p := New()
	p.SetMemory(memory.NewPPUMemory(&fakeCart{mirroring: cartridge.MirrorVertical}))
	return p
}

func TestPPUStatusReadClearsVBlankAndWriteToggle(t *testing.T) {
	p := newTestPPU()
	p.ppuStatus |= 0x80
	p.w = true

	got := p.ReadRegister(0x2002)
	if got&0x80 == 0 {
		t.Error("PPUSTATUS read should report VBL flag set")
	}
	if p.ppuStatus&0x80 != 0 {
		t.Error("reading PPUSTATUS should clear the VBL flag")
	}
	if p.w {
		t.Error("reading PPUSTATUS should reset the address write toggle")
	}
}

func TestPPUAddrAndDataWriteRoundTrip(t *testing.T) {
	p := newTestPPU()

	p.WriteRegister(0x2006, 0x23) // high byte of $2305
	p.WriteRegister(0x2006, 0x05) // low byte
	p.WriteRegister(0x2007, 0x99)

	if got := p.memory.Read(0x2305); got != 0x99 {
		t.Errorf("VRAM[$2305] = $%02X, want $99", got)
	}
}

func TestPPUDataReadIsBufferedExceptForPalette(t *testing.T) {
	p := newTestPPU()
	p.memory.Write(0x2000, 0x11)
	p.memory.Write(0x2001, 0x22)

	p.WriteRegister(0x2006, 0x20)
	p.WriteRegister(0x2006, 0x00)

	first := p.ReadRegister(0x2007)
	if first != 0 {
		t.Errorf("first post-fill read = $%02X, want $00 (stale buffer)", first)
	}
	second := p.ReadRegister(0x2007)
	if second != 0x11 {
		t.Errorf("second read = $%02X, want $11 (buffered value)", second)
	}

	p.WriteRegister(0x2006, 0x3F)
	p.WriteRegister(0x2006, 0x00)
	p.memory.Write(0x3F00, 0x30)
	if got := p.ReadRegister(0x2007); got != 0x30 {
		t.Errorf("palette read = $%02X, want $30 (unbuffered)", got)
	}
}

func TestPPUDataAddressIncrementRespectsCtrlBit2(t *testing.T) {
	p := newTestPPU()
	p.WriteRegister(0x2000, 0x04) // increment by 32
	p.WriteRegister(0x2006, 0x20)
	p.WriteRegister(0x2006, 0x00)
	p.WriteRegister(0x2007, 0xAA)

	if p.v != 0x2020 {
		t.Errorf("v after one write with +32 increment = $%04X, want $2020", p.v)
	}
}

func TestPPUScrollLatchesCoarseAndFineX(t *testing.T) {
	p := newTestPPU()
	p.WriteRegister(0x2005, 0x7D) // coarse X = 15, fine X = 5
	if p.w != true {
		t.Fatal("first PPUSCROLL write should set the address latch")
	}
	if p.x != 5 {
		t.Errorf("fine X = %d, want 5", p.x)
	}

	p.WriteRegister(0x2005, 0x5E) // Y scroll
	if p.w != false {
		t.Error("second PPUSCROLL write should clear the address latch")
	}
}

func TestVBlankNMIFiresOnlyWhenCtrlEnablesIt(t *testing.T) {
	p := newTestPPU()
	fired := false
	p.SetNMICallback(func() { fired = true })
	p.WriteRegister(0x2000, 0x80) // enable NMI-on-vblank

	p.scanline, p.cycle = 241, 0
	p.Step() // lands on scanline 241, cycle 1: VBL set

	if !fired {
		t.Error("NMI callback should fire at the start of vblank when PPUCTRL bit 7 is set")
	}
}

func TestVBlankNMIDoesNotFireWhenCtrlDisablesIt(t *testing.T) {
	p := newTestPPU()
	fired := false
	p.SetNMICallback(func() { fired = true })

	p.scanline, p.cycle = 241, 0
	p.Step()

	if fired {
		t.Error("NMI callback should not fire when PPUCTRL bit 7 is clear")
	}
}

func TestVBlankFlagSetsAtScanline241Cycle1(t *testing.T) {
	p := newTestPPU()
	p.scanline, p.cycle = 241, 0
	p.Step()
	if !p.IsVBlank() {
		t.Error("IsVBlank() should be true immediately after scanline 241 dot 1")
	}
}

func TestOddFrameDotSkipOnlyWhenRenderingEnabled(t *testing.T) {
	p := newTestPPU()
	p.renderingEnabled = true
	p.oddFrame = true
	p.scanline, p.cycle = -1, 339

	p.Step()
	if p.cycle != 0 || p.scanline != 0 {
		t.Errorf("after odd-frame skip, scanline=%d cycle=%d, want scanline=0 cycle=0", p.scanline, p.cycle)
	}
}

func TestExportImportStateRoundTrip(t *testing.T) {
	p := newTestPPU()
	p.WriteRegister(0x2000, 0x80)
	p.WriteRegister(0x2001, 0x18)
	p.scanline, p.cycle = 100, 50
	p.oam[10] = 0x42

	s := p.ExportState()

	p2 := newTestPPU()
	p2.ImportState(s)

	if p2.ppuCtrl != p.ppuCtrl || p2.scanline != p.scanline || p2.cycle != p.cycle {
		t.Error("imported PPU state should match exported register/timing state")
	}
	if p2.oam[10] != 0x42 {
		t.Error("imported PPU state should restore OAM contents")
	}
}
