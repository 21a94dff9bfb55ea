package input

import "testing"

func TestControllerShiftsOutButtonsInNESBitOrder(t *testing.T) {
	c := New()
	// A, Start, Right pressed; everything else released.
	c.SetButtons([8]bool{true, false, false, true, false, false, false, true})

	c.Write(0x01) // strobe high: continuously latches
	c.Write(0x00) // strobe falls: latch for serial readout

	want := []uint8{1, 0, 0, 1, 0, 0, 0, 1}
	for i, w := range want {
		if got := c.Read(); got != w {
			t.Fatalf("bit %d = %d, want %d (A,B,Select,Start,Up,Down,Left,Right)", i, got, w)
		}
	}
}

func TestControllerReadsOneThereafter(t *testing.T) {
	c := New()
	c.SetButtons([8]bool{true, true, true, true, true, true, true, true})
	c.Write(0x01)
	c.Write(0x00)

	for i := 0; i < 8; i++ {
		c.Read()
	}
	for i := 0; i < 3; i++ {
		if got := c.Read(); got != 1 {
			t.Errorf("read %d past the 8-bit sequence = %d, want 1 (open bus high)", i, got)
		}
	}
}

func TestControllerStrobeHighAlwaysReturnsButtonA(t *testing.T) {
	c := New()
	c.SetButton(ButtonA, true)
	c.Write(0x01) // strobe high

	if got := c.Read(); got != 1 {
		t.Errorf("Read() while strobed high = %d, want 1 (A pressed)", got)
	}
	c.SetButton(ButtonA, false)
	c.Write(0x01) // strobe stays high: resamples the live button state
	if got := c.Read(); got != 0 {
		t.Errorf("Read() after releasing A while still strobed = %d, want 0", got)
	}
}

func TestControllerIsPressed(t *testing.T) {
	c := New()
	c.SetButton(ButtonB, true)
	if !c.IsPressed(ButtonB) {
		t.Error("ButtonB should report pressed")
	}
	if c.IsPressed(ButtonA) {
		t.Error("ButtonA should not report pressed")
	}
}

func TestControllerExportImportStateRoundTrip(t *testing.T) {
	c := New()
	c.SetButtons([8]bool{true, false, true, false, true, false, true, false})
	c.Write(0x01)
	c.Write(0x00)
	c.Read() // partially shift the register

	s := c.ExportState()

	c2 := New()
	c2.ImportState(s)
	if c2.Read() != c.Read() {
		t.Error("imported controller state should continue the same shift sequence")
	}
}

func TestInputStateRoutesBothPortsToEitherController(t *testing.T) {
	is := NewInputState()
	is.SetButtons1([8]bool{true, false, false, false, false, false, false, false})
	is.SetButtons2([8]bool{false, true, false, false, false, false, false, false})

	is.Write(0x4016, 0x01)
	is.Write(0x4016, 0x00)

	if got := is.Read(0x4016); got&1 != 1 {
		t.Errorf("port 1 first bit = %d, want 1 (A pressed)", got&1)
	}
	if got := is.Read(0x4017); got&1 != 0 {
		t.Errorf("port 2 first bit = %d, want 0 (A not pressed on pad 2)", got&1)
	}
}

func TestInputStatePort2OpenBusBit6IsAlwaysSet(t *testing.T) {
	is := NewInputState()
	if got := is.Read(0x4017); got&0x40 == 0 {
		t.Error("$4017 reads should always have bit 6 set (floating data line)")
	}
}

func TestInputStateZapperDisplacesController2Reads(t *testing.T) {
	is := NewInputState()
	z := NewZapper()
	z.SetTrigger(true)
	is.AttachZapper(z)

	got := is.Read(0x4017)
	if got&0x08 == 0 {
		t.Error("$4017 bit 3 should report the Zapper trigger once attached")
	}
}
