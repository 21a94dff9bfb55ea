package cartridge

// mapper003 implements CNROM: fixed PRG (NROM-style, mirrored if 16 KiB),
// switchable 8 KiB CHR bank selected by any write to $8000-$FFFF.
type mapper003 struct {
	baseMapper
	noIRQ
	noExpansionAudio
	noCPUTick
	noPPUATick

	prgBanks uint8
	chrBank  uint8
}

func newMapper003(cart *Cartridge) *mapper003 {
	return &mapper003{
		baseMapper: baseMapper{cart: cart},
		prgBanks:   uint8(len(cart.prgROM) / 0x4000),
	}
}

func (m *mapper003) ReadPRG(address uint16) uint8 { return m.PeekPRG(address) }

func (m *mapper003) PeekPRG(address uint16) uint8 {
	if address < 0x8000 {
		return m.readPRGRAM(address)
	}
	offset := address - 0x8000
	if m.prgBanks <= 1 {
		offset &= 0x3FFF
	}
	if int(offset) < len(m.cart.prgROM) {
		return m.cart.prgROM[offset]
	}
	return 0
}

func (m *mapper003) WritePRG(address uint16, value uint8) {
	if address < 0x8000 {
		m.writePRGRAM(address, value)
		return
	}
	m.chrBank = value
}

func (m *mapper003) ReadCHR(address uint16) uint8 {
	return m.readCHR(address, int(m.chrBank), 0x2000)
}

func (m *mapper003) WriteCHR(address uint16, value uint8) {
	m.writeCHR(address, value, int(m.chrBank), 0x2000)
}

func (m *mapper003) Mirroring() Mirroring { return m.cart.Header.Mirroring }
