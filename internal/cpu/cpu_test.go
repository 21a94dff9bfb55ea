package cpu

import "testing"

// flatMemory is a minimal 64 KiB RAM backing for CPU unit tests, standing
// in for the bus/mapper plumbing a real MemoryInterface implementation
// provides.
type flatMemory struct {
	ram [0x10000]uint8
}

func (m *flatMemory) Read(addr uint16) uint8 {
	return m.ram[addr]
}

func (m *flatMemory) Write(addr uint16, value uint8) {
	m.ram[addr] = value
}

func newTestCPU() (*CPU, *flatMemory) {
	mem := &flatMemory{}
	mem.ram[resetVector] = 0x00
	mem.ram[resetVector+1] = 0x80
	c := New(mem)
	c.Reset()
	return c, mem
}

func TestResetVectorAndCycleCount(t *testing.T) {
	c, _ := newTestCPU()
	if c.PC != 0x8000 {
		t.Errorf("PC after reset = $%04X, want $8000", c.PC)
	}
	if c.cycles != 7 {
		t.Errorf("reset cycle count = %d, want 7", c.cycles)
	}
	if !c.I {
		t.Error("I flag should be set after reset")
	}
}

func TestLDAImmediateSetsZeroAndNegativeFlags(t *testing.T) {
	c, mem := newTestCPU()
	mem.ram[0x8000] = 0xA9 // LDA #$00
	mem.ram[0x8001] = 0x00
	c.Step()
	if c.A != 0 {
		t.Errorf("A = $%02X, want $00", c.A)
	}
	if !c.Z {
		t.Error("Z flag should be set after loading zero")
	}
	if c.N {
		t.Error("N flag should be clear after loading zero")
	}

	mem.ram[0x8002] = 0xA9 // LDA #$FF
	mem.ram[0x8003] = 0xFF
	c.Step()
	if c.A != 0xFF {
		t.Errorf("A = $%02X, want $FF", c.A)
	}
	if c.Z {
		t.Error("Z flag should be clear after loading $FF")
	}
	if !c.N {
		t.Error("N flag should be set after loading $FF")
	}
}

func TestStackPushPullRoundTrip(t *testing.T) {
	c, mem := newTestCPU()
	// LDA #$42 ; PHA ; LDA #$00 ; PLA
	mem.ram[0x8000] = 0xA9
	mem.ram[0x8001] = 0x42
	mem.ram[0x8002] = 0x48
	mem.ram[0x8003] = 0xA9
	mem.ram[0x8004] = 0x00
	mem.ram[0x8005] = 0x68

	c.Step() // LDA #$42
	c.Step() // PHA
	c.Step() // LDA #$00
	if c.A != 0 {
		t.Fatalf("A after second LDA = $%02X, want $00", c.A)
	}
	c.Step() // PLA
	if c.A != 0x42 {
		t.Errorf("A after PLA = $%02X, want $42", c.A)
	}
}

func TestBRKPushesBAndJumpsToIRQVector(t *testing.T) {
	c, mem := newTestCPU()
	mem.ram[irqVector] = 0x34
	mem.ram[irqVector+1] = 0x12
	mem.ram[0x8000] = 0x00 // BRK

	c.Step()
	if c.PC != 0x1234 {
		t.Errorf("PC after BRK = $%04X, want $1234", c.PC)
	}
	if !c.I {
		t.Error("I flag should be set after BRK")
	}

	sp := uint16(c.SP + 1)
	pushedStatus := mem.ram[stackBase+sp]
	if pushedStatus&bFlagMask == 0 {
		t.Error("pushed status should have B flag set for a software BRK")
	}
	if pushedStatus&unusedMask == 0 {
		t.Error("pushed status should have the unused bit wired to 1")
	}
}

func TestNMITakesPriorityOverMaskedIRQ(t *testing.T) {
	c, mem := newTestCPU()
	mem.ram[nmiVector] = 0x00
	mem.ram[nmiVector+1] = 0x90
	mem.ram[irqVector] = 0x00
	mem.ram[irqVector+1] = 0xA0

	c.I = true // mask IRQ; NMI is non-maskable and must still win
	c.TriggerIRQ()
	c.TriggerNMI()
	c.Step() // interrupt sequence should be polled at this fetch

	if c.PC != 0x9000 {
		t.Errorf("PC after simultaneous NMI+IRQ = $%04X, want $9000 (NMI wins)", c.PC)
	}
}

func TestMaskedIRQIsDeferredUntilIFlagClears(t *testing.T) {
	c, mem := newTestCPU()
	mem.ram[irqVector] = 0x00
	mem.ram[irqVector+1] = 0xA0
	mem.ram[0x8000] = 0xEA // NOP

	c.I = true
	c.TriggerIRQ()
	c.Step() // I set: IRQ must not be serviced yet
	if c.PC == 0xA000 {
		t.Fatal("a masked IRQ should not be serviced")
	}

	c.I = false
	c.Step() // now it should fire
	if c.PC != 0xA000 {
		t.Errorf("PC after unmasked IRQ = $%04X, want $A000", c.PC)
	}
}

func TestSetNMILatchesOnEveryAssertingCall(t *testing.T) {
	c, mem := newTestCPU()
	mem.ram[nmiVector] = 0x00
	mem.ram[nmiVector+1] = 0x90
	mem.ram[0x8000] = 0xEA // NOP

	// The PPU calls SetNMI(true) once per rising edge of its own /NMI
	// output; it never calls SetNMI(false). Two asserting calls in a row
	// (e.g. one at VBL start, one from re-enabling NMI mid-vblank) must
	// each still latch an NMI, not require a false in between.
	c.SetNMI(true)
	c.Step()
	if c.PC != 0x9000 {
		t.Fatalf("PC after first SetNMI(true) = $%04X, want $9000", c.PC)
	}

	c.PC = 0x8000
	c.SetNMI(true)
	c.Step()
	if c.PC != 0x9000 {
		t.Errorf("PC after second consecutive SetNMI(true) = $%04X, want $9000", c.PC)
	}
}

func TestCLIDelaysIRQServiceByOneInstruction(t *testing.T) {
	c, mem := newTestCPU()
	mem.ram[irqVector] = 0x00
	mem.ram[irqVector+1] = 0xA0
	mem.ram[0x8000] = 0x58 // CLI
	mem.ram[0x8001] = 0xEA // NOP
	mem.ram[0x8002] = 0xEA // NOP

	c.I = true
	c.TriggerIRQ()

	c.Step() // CLI itself: polled with the pre-CLI (masked) state
	if c.I {
		t.Fatal("I flag should be clear immediately after CLI executes")
	}

	c.Step() // the instruction right after CLI: still polled with the old I
	if c.PC == 0xA000 {
		t.Fatal("IRQ must not be serviced on the instruction immediately following CLI")
	}

	c.Step() // the delay has elapsed; IRQ should dispatch now
	if c.PC != 0xA000 {
		t.Errorf("PC once CLI's delay elapses = $%04X, want $A000", c.PC)
	}
}

func TestNMIHijacksInProgressBRK(t *testing.T) {
	c, mem := newTestCPU()
	mem.ram[nmiVector] = 0x00
	mem.ram[nmiVector+1] = 0x90
	mem.ram[irqVector] = 0x00
	mem.ram[irqVector+1] = 0xA0
	c.PC = 0x8000

	// Simulates an NMI asserting during BRK's own push sequence, after
	// Step's up-front pollInterrupts already committed to fetching BRK.
	c.nmiPending = true
	c.brk(0)

	if c.PC != 0x9000 {
		t.Errorf("PC after NMI hijacks an in-progress BRK = $%04X, want $9000", c.PC)
	}
	if c.nmiPending {
		t.Error("the hijacking NMI should be consumed, not left pending")
	}
}

func TestNMIHijacksInProgressIRQ(t *testing.T) {
	c, mem := newTestCPU()
	mem.ram[nmiVector] = 0x00
	mem.ram[nmiVector+1] = 0x90
	mem.ram[irqVector] = 0x00
	mem.ram[irqVector+1] = 0xA0

	// Simulates an NMI asserting during a hardware IRQ's push sequence.
	c.nmiPending = true
	c.handleIRQ()

	if c.PC != 0x9000 {
		t.Errorf("PC after NMI hijacks an in-progress IRQ = $%04X, want $9000", c.PC)
	}
}

func TestKILOpcodeJamsTheCPUPermanently(t *testing.T) {
	c, mem := newTestCPU()
	mem.ram[0x8000] = 0x02 // KIL/JAM

	c.Step()
	if !c.IsJammed() {
		t.Fatal("CPU should be jammed after executing a KIL opcode")
	}

	pcBefore := c.PC
	cyclesBefore := c.cycles
	c.Step()
	if c.PC != pcBefore {
		t.Error("a jammed CPU should not advance PC")
	}
	if c.cycles == cyclesBefore {
		t.Error("a jammed CPU should still consume a cycle per Step, not busy-loop for free")
	}
}

func TestStallConsumesCyclesBeforeNextInstruction(t *testing.T) {
	c, mem := newTestCPU()
	mem.ram[0x8000] = 0xEA // NOP

	c.Stall(10)
	before := c.cycles
	cycles := c.Step()
	if cycles != 10 {
		t.Errorf("first Step after a 10-cycle stall returned %d cycles, want 10", cycles)
	}
	if c.PC != 0x8000 {
		t.Error("PC should not have advanced while stalled")
	}

	cycles = c.Step() // now the NOP actually executes
	if c.PC != 0x8001 {
		t.Errorf("PC after stall drains = $%04X, want $8001", c.PC)
	}
	_ = before
	_ = cycles
}

func TestExportImportStateRoundTrip(t *testing.T) {
	c, mem := newTestCPU()
	mem.ram[0x8000] = 0xA9
	mem.ram[0x8001] = 0x7F
	c.Step()

	s := c.ExportState()

	c2, _ := newTestCPU()
	c2.ImportState(s)

	if c2.A != c.A || c2.PC != c.PC || c2.cycles != c.cycles {
		t.Errorf("imported state mismatch: got A=$%02X PC=$%04X cycles=%d, want A=$%02X PC=$%04X cycles=%d",
			c2.A, c2.PC, c2.cycles, c.A, c.PC, c.cycles)
	}
}
