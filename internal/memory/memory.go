// Package memory implements the NES CPU and PPU memory maps: internal RAM
// mirroring, register address decode, and nametable mirroring resolution.
package memory

import "nescore/internal/cartridge"

// Memory represents the NES CPU memory map.
type Memory struct {
	ram [0x800]uint8 // internal RAM, mirrored to $1FFF

	ppuRegisters PPUInterface
	apuRegisters APUInterface
	inputSystem  InputInterface
	cart         CartridgeInterface

	dmaCallback func(uint8)

	openBusValue uint8
}

// PPUMemory represents the PPU's memory space ($0000-$3FFF): pattern
// tables (delegated to the cartridge), nametables, and palette RAM.
// Mirroring is resolved per access through the cartridge rather than cached,
// since bank-switching mappers (MMC1, MMC3, AxROM) can change it mid-frame.
type PPUMemory struct {
	vram       [0x1000]uint8 // 4KB VRAM, enough for four-screen cartridges
	paletteRAM [32]uint8
	cart       CartridgeInterface
}

// PPUInterface defines the interface for PPU register access.
type PPUInterface interface {
	ReadRegister(address uint16) uint8
	WriteRegister(address uint16, value uint8)
}

// APUInterface defines the interface for APU register access.
type APUInterface interface {
	WriteRegister(address uint16, value uint8)
	ReadStatus() uint8
}

// InputInterface defines the interface for input system access (joypads and
// the Zapper light gun both live behind $4016/$4017).
type InputInterface interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CartridgeInterface defines the interface for cartridge/mapper access.
type CartridgeInterface interface {
	ReadPRG(address uint16) uint8
	WritePRG(address uint16, value uint8)
	ReadCHR(address uint16) uint8
	WriteCHR(address uint16, value uint8)
	Mirroring() cartridge.Mirroring
}

// RamInitStrategy selects how internal RAM is seeded at power-on, since real
// hardware does not reset it to zero.
type RamInitStrategy uint8

const (
	RamInitAllZeros RamInitStrategy = iota
	RamInitAllOnes
	RamInitRandom
)

// New creates a new Memory instance, seeding RAM per the given strategy.
func New(ppu PPUInterface, apu APUInterface, cart CartridgeInterface, ramInit RamInitStrategy, randByte func() uint8) *Memory {
	mem := &Memory{
		ppuRegisters: ppu,
		apuRegisters: apu,
		cart:         cart,
	}
	mem.initializeRAM(ramInit, randByte)
	return mem
}

// initializeRAM seeds RAM per the configured power-up strategy. randByte is
// only consulted for RamInitRandom, keeping the memory package itself free
// of any randomness source.
func (m *Memory) initializeRAM(strategy RamInitStrategy, randByte func() uint8) {
	switch strategy {
	case RamInitAllOnes:
		for i := range m.ram {
			m.ram[i] = 0xFF
		}
	case RamInitRandom:
		if randByte == nil {
			return
		}
		for i := range m.ram {
			m.ram[i] = randByte()
		}
	default:
		// RamInitAllZeros: Go already zero-initializes the array.
	}
}

// SetInputSystem sets the input system for controller/Zapper access.
func (m *Memory) SetInputSystem(input InputInterface) {
	m.inputSystem = input
}

// SetDMACallback sets the callback invoked on an OAM DMA write ($4014), so
// the caller can charge CPU cycles for the stall instead of the transfer
// happening for free.
func (m *Memory) SetDMACallback(callback func(uint8)) {
	m.dmaCallback = callback
}

// Read reads a byte from the given CPU address.
func (m *Memory) Read(address uint16) uint8 {
	var value uint8

	switch {
	case address < 0x2000:
		value = m.ram[address&0x07FF]

	case address < 0x4000:
		value = m.ppuRegisters.ReadRegister(0x2000 + (address & 0x0007))

	case address < 0x4020:
		switch {
		case address == 0x4015:
			value = m.apuRegisters.ReadStatus()
		case address == 0x4016 || address == 0x4017:
			if m.inputSystem != nil {
				value = m.inputSystem.Read(address)
			}
		default:
			value = m.openBusValue
		}

	default:
		// $4020-$FFFF: expansion ROM/RAM, PRG-RAM, and PRG-ROM all route
		// through the mapper, which knows which sub-ranges it decodes.
		if m.cart != nil {
			value = m.cart.ReadPRG(address)
		} else {
			value = m.openBusValue
		}
	}

	m.openBusValue = value
	return value
}

// Write writes a byte to the given CPU address.
func (m *Memory) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ram[address&0x07FF] = value

	case address < 0x4000:
		m.ppuRegisters.WriteRegister(0x2000+(address&0x0007), value)

	case address < 0x4020:
		switch {
		case address == 0x4014:
			if m.dmaCallback != nil {
				m.dmaCallback(value)
			} else {
				m.performOAMDMA(value)
			}
		case address == 0x4016:
			if m.inputSystem != nil {
				m.inputSystem.Write(address, value)
			}
		case address >= 0x4000 && address <= 0x4013, address == 0x4015, address == 0x4017:
			m.apuRegisters.WriteRegister(address, value)
		// $4018-$401F (APU/IO test mode) are ignored.
		default:
		}

	default:
		if m.cart != nil {
			m.cart.WritePRG(address, value)
		}
	}
}

// performOAMDMA is the fallback path when no DMA callback is installed;
// it transfers all 256 bytes with no CPU-cycle accounting.
func (m *Memory) performOAMDMA(page uint8) {
	base := uint16(page) << 8
	for i := uint16(0); i < 256; i++ {
		m.ppuRegisters.WriteRegister(0x2004, m.Read(base+i))
	}
}

// NewPPUMemory creates a new PPU memory instance.
func NewPPUMemory(cart CartridgeInterface) *PPUMemory {
	mem := &PPUMemory{cart: cart}
	for i := 0; i < 32; i += 4 {
		mem.paletteRAM[i] = 0x0F // background color entries default to black
	}
	return mem
}

// Read reads from PPU memory space ($0000-$3FFF).
func (pm *PPUMemory) Read(address uint16) uint8 {
	address &= 0x3FFF

	switch {
	case address < 0x2000:
		return pm.cart.ReadCHR(address)
	case address < 0x3000:
		return pm.readNametable(address)
	case address < 0x3F00:
		return pm.readNametable(address - 0x1000)
	default:
		return pm.readPalette(address)
	}
}

// Write writes to PPU memory space ($0000-$3FFF).
func (pm *PPUMemory) Write(address uint16, value uint8) {
	address &= 0x3FFF

	switch {
	case address < 0x2000:
		pm.cart.WriteCHR(address, value)
	case address < 0x3000:
		pm.writeNametable(address, value)
	case address < 0x3F00:
		pm.writeNametable(address-0x1000, value)
	default:
		pm.writePalette(address, value)
	}
}

func (pm *PPUMemory) readNametable(address uint16) uint8 {
	return pm.vram[pm.cart.Mirroring().NametableIndex(address&0x0FFF)]
}

func (pm *PPUMemory) writeNametable(address uint16, value uint8) {
	pm.vram[pm.cart.Mirroring().NametableIndex(address&0x0FFF)] = value
}

func (pm *PPUMemory) readPalette(address uint16) uint8 {
	index := paletteIndex(address)
	return pm.paletteRAM[index]
}

func (pm *PPUMemory) writePalette(address uint16, value uint8) {
	index := paletteIndex(address)
	pm.paletteRAM[index] = value
}

func paletteIndex(address uint16) uint16 {
	index := (address - 0x3F00) & 0x1F
	if index&0x13 == 0x10 {
		// $3F10/$3F14/$3F18/$3F1C mirror the corresponding background entry.
		index &= 0x0F
	}
	return index
}

// State is the serializable snapshot of CPU-visible RAM, used by save
// states, rewind, and run-ahead.
type State struct {
	RAM          [0x800]uint8
	OpenBusValue uint8
}

// ExportState captures internal RAM and the CPU-bus open-bus latch.
func (m *Memory) ExportState() State {
	return State{RAM: m.ram, OpenBusValue: m.openBusValue}
}

// ImportState restores a previously captured RAM state.
func (m *Memory) ImportState(s State) {
	m.ram = s.RAM
	m.openBusValue = s.OpenBusValue
}

// PPUState is the serializable snapshot of PPU-side VRAM and palette RAM.
type PPUState struct {
	VRAM       [0x1000]uint8
	PaletteRAM [32]uint8
}

// ExportState captures nametable VRAM and palette RAM.
func (pm *PPUMemory) ExportState() PPUState {
	return PPUState{VRAM: pm.vram, PaletteRAM: pm.paletteRAM}
}

// ImportState restores a previously captured VRAM/palette state.
func (pm *PPUMemory) ImportState(s PPUState) {
	pm.vram = s.VRAM
	pm.paletteRAM = s.PaletteRAM
}
