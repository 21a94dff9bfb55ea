package memory

import (
	"testing"

	"nescore/internal/cartridge"
)

// fakePPU, fakeAPU, fakeInput, fakeCart stand in for the real peers so the
// CPU bus decode logic can be tested in isolation, the same way the
// cartridge package's own mapper tests build a bare MockCartridge.
type fakePPU struct {
	reads, writes []uint16
	readValue     uint8
}

func (p *fakePPU) ReadRegister(addr uint16) uint8 {
	p.reads = append(p.reads, addr)
	return p.readValue
}
func (p *fakePPU) WriteRegister(addr uint16, value uint8) {
	p.writes = append(p.writes, addr)
}

type fakeAPU struct {
	status uint8
	writes map[uint16]uint8
}

func (a *fakeAPU) WriteRegister(addr uint16, value uint8) {
	if a.writes == nil {
		a.writes = map[uint16]uint8{}
	}
	a.writes[addr] = value
}
func (a *fakeAPU) ReadStatus() uint8 { return a.status }

type fakeInput struct {
	lastWrite uint8
	readValue uint8
}

func (i *fakeInput) Read(addr uint16) uint8        { return i.readValue }
func (i *fakeInput) Write(addr uint16, value uint8) { i.lastWrite = value }

type fakeCart struct {
	prg       [0x10000]uint8
	chr       [0x2000]uint8
	mirroring cartridge.Mirroring
}

func (c *fakeCart) ReadPRG(addr uint16) uint8         { return c.prg[addr] }
func (c *fakeCart) WritePRG(addr uint16, value uint8) { c.prg[addr] = value }
func (c *fakeCart) ReadCHR(addr uint16) uint8         { return c.chr[addr] }
func (c *fakeCart) WriteCHR(addr uint16, value uint8) { c.chr[addr] = value }
func (c *fakeCart) Mirroring() cartridge.Mirroring    { return c.mirroring }

func TestInternalRAMMirrorsEvery2KiB(t *testing.T) {
	m := New(&fakePPU{}, &fakeAPU{}, nil, RamInitAllZeros, nil)

	m.Write(0x0001, 0x42)
	for _, mirror := range []uint16{0x0801, 0x1001, 0x1801} {
		if got := m.Read(mirror); got != 0x42 {
			t.Errorf("Read($%04X) = $%02X, want $42 (mirror of $0001)", mirror, got)
		}
	}
}

func TestPPURegisterMirrorEvery8Bytes(t *testing.T) {
	ppu := &fakePPU{}
	m := New(ppu, &fakeAPU{}, nil, RamInitAllZeros, nil)

	m.Read(0x2000)
	m.Read(0x2008)
	m.Read(0x3FF8)

	want := []uint16{0x2000, 0x2000, 0x2000}
	if len(ppu.reads) != len(want) {
		t.Fatalf("got %d PPU register reads, want %d", len(ppu.reads), len(want))
	}
	for i, addr := range ppu.reads {
		if addr != want[i] {
			t.Errorf("read %d decoded to $%04X, want $%04X", i, addr, want[i])
		}
	}
}

func TestRAMInitStrategies(t *testing.T) {
	zeros := New(&fakePPU{}, &fakeAPU{}, nil, RamInitAllZeros, nil)
	if got := zeros.Read(0x0000); got != 0 {
		t.Errorf("AllZeros RAM[0] = $%02X, want $00", got)
	}

	ones := New(&fakePPU{}, &fakeAPU{}, nil, RamInitAllOnes, nil)
	if got := ones.Read(0x0000); got != 0xFF {
		t.Errorf("AllOnes RAM[0] = $%02X, want $FF", got)
	}

	seq := []uint8{0x11, 0x22}
	i := 0
	rng := New(&fakePPU{}, &fakeAPU{}, nil, RamInitRandom, func() uint8 {
		v := seq[i%len(seq)]
		i++
		return v
	})
	if got := rng.Read(0x0000); got != 0x11 {
		t.Errorf("Random RAM[0] = $%02X, want $11", got)
	}
}

func TestOAMDMATriggersCallbackInsteadOfImmediateTransfer(t *testing.T) {
	m := New(&fakePPU{}, &fakeAPU{}, nil, RamInitAllZeros, nil)

	var gotPage uint8
	called := false
	m.SetDMACallback(func(page uint8) {
		called = true
		gotPage = page
	})

	m.Write(0x4014, 0x07)
	if !called {
		t.Fatal("$4014 write should invoke the DMA callback")
	}
	if gotPage != 0x07 {
		t.Errorf("DMA callback page = $%02X, want $07", gotPage)
	}
}

func TestOAMDMAFallbackTransfersAllBytesWhenNoCallbackInstalled(t *testing.T) {
	ppu := &fakePPU{}
	m := New(ppu, &fakeAPU{}, nil, RamInitAllZeros, nil)

	m.Write(0x4014, 0x00) // page 0: source is internal RAM mirror $0000-$00FF
	if len(ppu.writes) != 256 {
		t.Fatalf("fallback OAM DMA issued %d PPU writes, want 256", len(ppu.writes))
	}
	for _, addr := range ppu.writes {
		if addr != 0x2004 {
			t.Errorf("OAM DMA wrote to $%04X, want $2004 (OAMDATA)", addr)
		}
	}
}

func TestAPUStatusReadRoutesThrough4015(t *testing.T) {
	apu := &fakeAPU{status: 0x5A}
	m := New(&fakePPU{}, apu, nil, RamInitAllZeros, nil)
	if got := m.Read(0x4015); got != 0x5A {
		t.Errorf("Read($4015) = $%02X, want $5A", got)
	}
}

func TestInputRoutesThrough4016And4017(t *testing.T) {
	in := &fakeInput{readValue: 0x01}
	m := New(&fakePPU{}, &fakeAPU{}, nil, RamInitAllZeros, nil)
	m.SetInputSystem(in)

	m.Write(0x4016, 0x01)
	if in.lastWrite != 0x01 {
		t.Errorf("input strobe write = $%02X, want $01", in.lastWrite)
	}
	if got := m.Read(0x4016); got != 0x01 {
		t.Errorf("Read($4016) = $%02X, want $01", got)
	}
}

func TestCartridgeRoutingAboveExpansionRegion(t *testing.T) {
	cart := &fakeCart{}
	m := New(&fakePPU{}, &fakeAPU{}, cart, RamInitAllZeros, nil)

	m.Write(0x8000, 0x99)
	if got := m.Read(0x8000); got != 0x99 {
		t.Errorf("Read($8000) = $%02X, want $99", got)
	}
}

func TestOpenBusRemembersLastValuePlacedOnBus(t *testing.T) {
	m := New(&fakePPU{}, &fakeAPU{}, nil, RamInitAllZeros, nil)
	m.Write(0x0000, 0x37)
	m.Read(0x0000) // charges the open-bus latch with $37

	if got := m.Read(0x4018); got != 0x37 {
		t.Errorf("open-bus read at unmapped $4018 = $%02X, want $37 (last bus value)", got)
	}
}

func TestPPUMemoryPaletteMirroring(t *testing.T) {
	pm := NewPPUMemory(&fakeCart{})

	pm.Write(0x3F00, 0x0A)
	pm.Write(0x3F10, 0x0B)
	if got := pm.Read(0x3F00); got != 0x0B {
		t.Errorf("$3F00 after $3F10 write = $%02X, want $0B (mirrors background entry)", got)
	}

	pm.Write(0x3F04, 0x1A)
	pm.Write(0x3F14, 0x1B)
	if got := pm.Read(0x3F04); got != 0x1B {
		t.Errorf("$3F04 after $3F14 write = $%02X, want $1B", got)
	}
}

func TestPPUMemoryNametableMirrorRange(t *testing.T) {
	pm := NewPPUMemory(&fakeCart{mirroring: cartridge.MirrorVertical})

	pm.Write(0x2000, 0x55)
	if got := pm.Read(0x3000); got != 0x55 {
		t.Errorf("$3000 = $%02X, want $55 ($3000-$3EFF mirrors $2000-$2EFF)", got)
	}
}

func TestPPUMemoryCHRRoutesThroughCartridge(t *testing.T) {
	cart := &fakeCart{}
	pm := NewPPUMemory(cart)

	pm.Write(0x0010, 0x77)
	if cart.chr[0x10] != 0x77 {
		t.Error("pattern-table write should route through the cartridge's CHR handler")
	}
	if got := pm.Read(0x0010); got != 0x77 {
		t.Errorf("Read($0010) = $%02X, want $77", got)
	}
}

func TestMemoryStateRoundTrip(t *testing.T) {
	m := New(&fakePPU{}, &fakeAPU{}, nil, RamInitAllZeros, nil)
	m.Write(0x0003, 0xAB)
	m.Read(0x0003)

	s := m.ExportState()

	m2 := New(&fakePPU{}, &fakeAPU{}, nil, RamInitAllZeros, nil)
	m2.ImportState(s)
	if got := m2.Read(0x0003); got != 0xAB {
		t.Errorf("restored RAM[3] = $%02X, want $AB", got)
	}
}
