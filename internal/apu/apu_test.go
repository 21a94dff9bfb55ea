package apu

import "testing"

func TestPulseLengthCounterLoadsFromTable(t *testing.T) {
	a := New()
	a.WriteRegister(0x4000, 0x00)
	a.WriteRegister(0x4003, 0x08) // length index 1 -> 254

	if a.pulse1.lengthCounter != 254 {
		t.Errorf("pulse1 length counter = %d, want 254", a.pulse1.lengthCounter)
	}
}

func TestStatusReflectsActiveLengthCounters(t *testing.T) {
	a := New()
	a.WriteRegister(0x4015, 0x01) // enable pulse1
	a.WriteRegister(0x4003, 0x08) // non-zero length counter

	if got := a.ReadStatus(); got&0x01 == 0 {
		t.Errorf("status = $%02X, want bit 0 set (pulse1 active)", got)
	}
}

func TestChannelEnableClearsLengthCounterWhenDisabled(t *testing.T) {
	a := New()
	a.WriteRegister(0x4015, 0x01)
	a.WriteRegister(0x4003, 0x08)
	if a.pulse1.lengthCounter == 0 {
		t.Fatal("precondition: pulse1 length counter should be non-zero")
	}

	a.WriteRegister(0x4015, 0x00) // disable pulse1
	if a.pulse1.lengthCounter != 0 {
		t.Error("disabling a channel via $4015 should clear its length counter")
	}
}

func TestFrameIRQFlagSetAfterFourStepSequenceAndClearedOnStatusRead(t *testing.T) {
	a := New()
	a.WriteRegister(0x4017, 0x00) // 4-step mode, frame IRQ enabled

	for i := 0; i < 29830; i++ {
		a.stepFrameCounter()
	}
	if !a.GetFrameIRQ() {
		t.Fatal("frame IRQ flag should be set after a full 4-step sequence")
	}

	status := a.ReadStatus()
	if status&0x40 == 0 {
		t.Error("status byte should report the frame IRQ flag")
	}
	if a.GetFrameIRQ() {
		t.Error("reading $4015 should clear the frame IRQ flag")
	}
}

func TestFiveStepModeNeverSetsFrameIRQ(t *testing.T) {
	a := New()
	a.WriteRegister(0x4017, 0x80) // 5-step mode

	for i := 0; i < 40000; i++ {
		a.stepFrameCounter()
	}
	if a.GetFrameIRQ() {
		t.Error("5-step mode should never assert the frame IRQ flag")
	}
}

func TestDMCSampleAddressAndLengthDecodeFromRegisters(t *testing.T) {
	a := New()
	a.WriteRegister(0x4012, 0x01) // $C000 + 1*64 = $C040
	a.WriteRegister(0x4013, 0x01) // (1*16)+1 = 17 bytes

	if a.dmc.sampleAddress != 0xC040 {
		t.Errorf("DMC sample address = $%04X, want $C040", a.dmc.sampleAddress)
	}
	if a.dmc.sampleLength != 17 {
		t.Errorf("DMC sample length = %d, want 17", a.dmc.sampleLength)
	}
}

func TestNoiseShiftRegisterStartsAtOneAndNeverGoesToZero(t *testing.T) {
	a := New()
	if a.noise.shiftRegister != 1 {
		t.Fatalf("initial noise shift register = %d, want 1", a.noise.shiftRegister)
	}
	a.WriteRegister(0x4015, 0x08) // enable noise
	a.WriteRegister(0x400E, 0x00) // fastest period
	a.WriteRegister(0x400F, 0x08)

	for i := 0; i < 100000; i++ {
		a.Step()
		if a.noise.shiftRegister == 0 {
			t.Fatal("noise LFSR should never settle at 0")
		}
	}
}

func TestExportImportStateRoundTrip(t *testing.T) {
	a := New()
	a.WriteRegister(0x4000, 0x3F)
	a.WriteRegister(0x4003, 0x08)
	a.WriteRegister(0x4015, 0x01)
	a.cycles = 12345

	s := a.ExportState()

	a2 := New()
	a2.ImportState(s)

	if a2.pulse1.lengthCounter != a.pulse1.lengthCounter {
		t.Error("imported pulse1 length counter mismatch")
	}
	if a2.cycles != a.cycles {
		t.Errorf("imported cycles = %d, want %d", a2.cycles, a.cycles)
	}
}

func TestResetClearsChannelEnableAndSampleBuffer(t *testing.T) {
	a := New()
	a.WriteRegister(0x4015, 0x1F)
	a.generateSample()

	a.Reset()

	for i := range a.channelEnable {
		if a.channelEnable[i] {
			t.Errorf("channel %d still enabled after Reset", i)
		}
	}
	if len(a.GetSamples()) != 0 {
		t.Error("sample buffer should be empty after Reset")
	}
}

func TestSetSampleRateResetsAccumulatorAndFilterChain(t *testing.T) {
	a := New()
	a.cycleAccumulator = 0.5
	old := a.filterChain
	a.SetSampleRate(48000)

	if a.GetSampleRate() != 48000 {
		t.Errorf("GetSampleRate() = %d, want 48000", a.GetSampleRate())
	}
	if a.cycleAccumulator != 0 {
		t.Error("changing the sample rate should reset the cycle accumulator")
	}
	if a.filterChain == old {
		t.Error("changing the sample rate should rebuild the filter chain")
	}
}
