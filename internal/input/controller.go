// Package input implements NES controller and Zapper light-gun handling.
package input

// Button represents NES controller buttons.
type Button uint8

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Controller represents a standard NES joypad: an 8-bit parallel-in,
// serial-out shift register latched by the strobe bit of $4016.
type Controller struct {
	buttons        uint8
	shiftRegister  uint8
	strobe         bool
	buttonSnapshot uint8
}

// New creates a new Controller instance.
func New() *Controller {
	return &Controller{}
}

// SetButton sets the state of a single button.
func (c *Controller) SetButton(button Button, pressed bool) {
	if pressed {
		c.buttons |= uint8(button)
	} else {
		c.buttons &^= uint8(button)
	}
}

// SetButtons sets all eight button states at once, in NES bit order: A, B,
// Select, Start, Up, Down, Left, Right.
func (c *Controller) SetButtons(buttons [8]bool) {
	c.buttons = 0
	order := [8]Button{ButtonA, ButtonB, ButtonSelect, ButtonStart, ButtonUp, ButtonDown, ButtonLeft, ButtonRight}
	for i, pressed := range buttons {
		if pressed {
			c.buttons |= uint8(order[i])
		}
	}
}

// IsPressed returns true if the button is currently pressed.
func (c *Controller) IsPressed(button Button) bool {
	return c.buttons&uint8(button) != 0
}

// Write handles writes to the controller's strobe line.
func (c *Controller) Write(value uint8) {
	wasStrobe := c.strobe
	c.strobe = value&1 != 0

	if c.strobe || wasStrobe {
		// Every write with strobe high reloads the snapshot from the live
		// button state (reads meanwhile return the live A button); the
		// falling-edge write latches it for serial readout.
		c.buttonSnapshot = c.buttons
		c.shiftRegister = c.buttonSnapshot
	}
}

// Read handles reads from $4016/$4017, shifting one button bit out per call.
func (c *Controller) Read() uint8 {
	if c.strobe {
		return c.buttons & 1
	}
	result := c.shiftRegister & 1
	c.shiftRegister = c.shiftRegister>>1 | 0x80
	return result
}

// Reset restores the controller to its power-up state.
func (c *Controller) Reset() {
	*c = Controller{}
}

// ButtonState is the serializable snapshot of a controller's shift register
// and button state, used by save states, rewind, and run-ahead.
type ButtonState struct {
	Buttons        uint8
	ShiftRegister  uint8
	Strobe         bool
	ButtonSnapshot uint8
}

// ExportState captures the controller's current state.
func (c *Controller) ExportState() ButtonState {
	return ButtonState{
		Buttons:        c.buttons,
		ShiftRegister:  c.shiftRegister,
		Strobe:         c.strobe,
		ButtonSnapshot: c.buttonSnapshot,
	}
}

// ImportState restores a previously captured controller state.
func (c *Controller) ImportState(s ButtonState) {
	c.buttons = s.Buttons
	c.shiftRegister = s.ShiftRegister
	c.strobe = s.Strobe
	c.buttonSnapshot = s.ButtonSnapshot
}

// InputState represents the state of all input devices wired into the
// $4016/$4017 ports.
type InputState struct {
	Controller1 *Controller
	Controller2 *Controller
	Zapper      *Zapper // non-nil when a light gun occupies port 2

	lastStrobe uint8
}

// NewInputState creates a new input state with two standard controllers and
// no Zapper attached.
func NewInputState() *InputState {
	return &InputState{
		Controller1: New(),
		Controller2: New(),
	}
}

// AttachZapper wires a Zapper light gun into port 2, displacing Controller2
// reads (Controller2's button state is preserved but no longer addressed).
func (is *InputState) AttachZapper(z *Zapper) {
	is.Zapper = z
}

// Reset resets all attached input devices.
func (is *InputState) Reset() {
	is.Controller1.Reset()
	is.Controller2.Reset()
	if is.Zapper != nil {
		is.Zapper.Reset()
	}
}

// SetButtons1 sets all button states for controller 1.
func (is *InputState) SetButtons1(buttons [8]bool) {
	is.Controller1.SetButtons(buttons)
}

// SetButtons2 sets all button states for controller 2.
func (is *InputState) SetButtons2(buttons [8]bool) {
	is.Controller2.SetButtons(buttons)
}

// Read reads from a controller port.
func (is *InputState) Read(address uint16) uint8 {
	switch address {
	case 0x4016:
		return is.Controller1.Read()
	case 0x4017:
		if is.Zapper != nil {
			return is.Zapper.Read() | 0x40
		}
		// Open-bus bit 6 set, matching real hardware's floating data lines.
		return is.Controller2.Read() | 0x40
	default:
		return 0
	}
}

// Write writes to the controller strobe register ($4016); both controllers
// share the single strobe line.
func (is *InputState) Write(address uint16, value uint8) {
	if address != 0x4016 {
		return
	}
	is.Controller1.Write(value)
	is.Controller2.Write(value)
	is.lastStrobe = value & 1
}
