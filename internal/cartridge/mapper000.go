package cartridge

// mapper000 implements NROM: no bank switching. 16 KiB PRG ROMs mirror to
// fill the 32 KiB CPU window; CHR is either a fixed 8 KiB ROM or RAM.
type mapper000 struct {
	baseMapper
	noIRQ
	noExpansionAudio
	noCPUTick
	noPPUATick

	prgBanks uint8 // number of 16 KiB PRG banks (1 or 2)
}

func newMapper000(cart *Cartridge) *mapper000 {
	return &mapper000{
		baseMapper: baseMapper{cart: cart},
		prgBanks:   uint8(len(cart.prgROM) / 0x4000),
	}
}

func (m *mapper000) ReadPRG(address uint16) uint8 { return m.PeekPRG(address) }

func (m *mapper000) PeekPRG(address uint16) uint8 {
	if address >= 0x8000 {
		if len(m.cart.prgROM) == 0 {
			return 0
		}
		offset := address - 0x8000
		if m.prgBanks == 1 {
			offset &= 0x3FFF
		}
		if int(offset) < len(m.cart.prgROM) {
			return m.cart.prgROM[offset]
		}
		return 0
	}
	return m.readPRGRAM(address)
}

func (m *mapper000) WritePRG(address uint16, value uint8) {
	m.writePRGRAM(address, value)
}

func (m *mapper000) ReadCHR(address uint16) uint8 {
	return m.readCHR(address, 0, 0x2000)
}

func (m *mapper000) WriteCHR(address uint16, value uint8) {
	m.writeCHR(address, value, 0, 0x2000)
}

func (m *mapper000) Mirroring() Mirroring { return m.cart.Header.Mirroring }
