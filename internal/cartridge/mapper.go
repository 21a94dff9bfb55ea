package cartridge

import "nescore/internal/neserr"

// Mapper is the uniform interface the bus routes every cartridge access
// through. Implementations are tagged (one concrete struct per mapper
// number) and dispatched by a plain switch in NewMapper rather than boxed
// behind a single shared interface value chosen at runtime via reflection
// or a registry map — the PPU alone issues on the order of 89k mapper
// reads per rendered frame, so virtual-call overhead here is not free.
type Mapper interface {
	// ReadPRG services a CPU read in $4020-$FFFF.
	ReadPRG(addr uint16) uint8
	// PeekPRG is ReadPRG without side effects, for debuggers/disassemblers.
	PeekPRG(addr uint16) uint8
	// WritePRG services a CPU write in $4020-$FFFF (bank-select registers
	// live in the nominal ROM range for most mappers).
	WritePRG(addr uint16, value uint8)

	// ReadCHR/WriteCHR service PPU pattern-table accesses, $0000-$1FFF.
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, value uint8)

	// TickPPUAddress is called once per PPU cycle with the current VRAM
	// address bus value, for mappers that clock an IRQ counter off A12.
	TickPPUAddress(addr uint16)
	// TickCPUCycle is called once per CPU cycle, for mappers with
	// CPU-clocked IRQ counters (MMC5) or expansion audio.
	TickCPUCycle()

	IRQPending() bool
	Mirroring() Mirroring
	// ExpansionAudioSample returns the mapper's own audio channel output,
	// mixed in by the APU alongside its five built-in channels. Mappers
	// without expansion audio return 0.
	ExpansionAudioSample() int16
}

// NewMapper constructs the Mapper implementation for the given iNES/NES 2.0
// mapper number, or reports UnsupportedMapperError.
func NewMapper(id uint16, cart *Cartridge) (Mapper, error) {
	switch id {
	case 0:
		return newMapper000(cart), nil
	case 1, 155:
		return newMapper001(cart, id == 155), nil
	case 2:
		return newMapper002(cart), nil
	case 3:
		return newMapper003(cart), nil
	case 4, 118, 119, 206:
		return newMapper004(cart, id), nil
	case 7:
		return newMapper007(cart), nil
	case 9:
		return newMapper009(cart), nil
	case 10:
		return newMapper010(cart), nil
	case 11:
		return newMapper011(cart), nil
	case 16, 153, 157, 159:
		return newMapper016(cart, id), nil
	case 34:
		return newMapper034(cart), nil
	case 66:
		return newMapper066(cart), nil
	case 69:
		return newMapper069(cart), nil
	case 71:
		return newMapper071(cart), nil
	case 79, 113, 146:
		return newMapper079(cart), nil
	default:
		return nil, &neserr.UnsupportedMapperError{Number: id}
	}
}

// baseMapper centralizes the PRG-RAM/trainer window every bank-switching
// mapper shares ($6000-$7FFF), so individual mapper files only need to
// implement ROM banking.
type baseMapper struct {
	cart *Cartridge
}

func (b baseMapper) readPRGRAM(addr uint16) uint8 {
	if addr >= 0x6000 && addr < 0x8000 && len(b.cart.prgRAM) > 0 {
		return b.cart.prgRAM[int(addr-0x6000)%len(b.cart.prgRAM)]
	}
	return 0
}

func (b baseMapper) writePRGRAM(addr uint16, value uint8) {
	if addr >= 0x6000 && addr < 0x8000 && len(b.cart.prgRAM) > 0 {
		b.cart.prgRAM[int(addr-0x6000)%len(b.cart.prgRAM)] = value
	}
}

func (b baseMapper) readCHR(addr uint16, bank int, bankSize int) uint8 {
	if b.cart.hasCHRRAM {
		off := bank*bankSize + int(addr)%bankSize
		if off >= 0 && off < len(b.cart.chrRAM) {
			return b.cart.chrRAM[off]
		}
		return 0
	}
	off := bank*bankSize + int(addr)%bankSize
	if off >= 0 && off < len(b.cart.chrROM) {
		return b.cart.chrROM[off]
	}
	return 0
}

func (b baseMapper) writeCHR(addr uint16, value uint8, bank int, bankSize int) {
	if !b.cart.hasCHRRAM {
		return
	}
	off := bank*bankSize + int(addr)%bankSize
	if off >= 0 && off < len(b.cart.chrRAM) {
		b.cart.chrRAM[off] = value
	}
}

// noIRQ, noExpansionAudio embed as no-ops for mappers without the feature.
type noIRQ struct{}

func (noIRQ) IRQPending() bool { return false }

type noExpansionAudio struct{}

func (noExpansionAudio) ExpansionAudioSample() int16 { return 0 }

type noCPUTick struct{}

func (noCPUTick) TickCPUCycle() {}

type noPPUATick struct{}

func (noPPUATick) TickPPUAddress(addr uint16) {}
