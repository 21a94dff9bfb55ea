package input

// Zapper models the NES light-gun peripheral. $4017 bit 3 reports the
// trigger and bit 4 reports whether the CRT electron beam was bright near
// the gun's aim point recently enough for the photodiode to still be
// charged — real hardware has roughly a 26-scanline/~2600ns sense window,
// which LightSense approximates by asking the caller whether the beam was
// near (x, y) "recently" rather than modeling the analog decay directly.
type Zapper struct {
	x, y    int
	trigger bool

	// LightSense reports whether the CRT beam has recently illuminated the
	// screen near (x, y) brightly enough for the sensor to fire. Supplied
	// by the component driving the PPU framebuffer; nil means "never lit".
	LightSense func(x, y int) bool
}

// NewZapper creates a Zapper aimed at the origin with no sense callback.
func NewZapper() *Zapper {
	return &Zapper{}
}

// SetPosition updates where the gun is aimed, in PPU pixel coordinates.
func (z *Zapper) SetPosition(x, y int) {
	z.x, z.y = x, y
}

// SetTrigger sets whether the trigger is currently pulled.
func (z *Zapper) SetTrigger(pressed bool) {
	z.trigger = pressed
}

// Read returns the Zapper's $4017 port bits.
func (z *Zapper) Read() uint8 {
	var result uint8
	if z.trigger {
		result |= 0x08
	}
	lit := z.LightSense != nil && z.LightSense(z.x, z.y)
	if !lit {
		// Bit 4 is active-low: 0 means light was sensed.
		result |= 0x10
	}
	return result
}

// Reset restores the Zapper to its power-up state.
func (z *Zapper) Reset() {
	z.x, z.y = 0, 0
	z.trigger = false
}
