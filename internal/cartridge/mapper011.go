package cartridge

// mapper011 implements Color Dreams: a single register at $8000-$FFFF packs
// both a 32 KiB PRG bank select (low nibble) and an 8 KiB CHR bank select
// (high nibble).
type mapper011 struct {
	baseMapper
	noIRQ
	noExpansionAudio
	noCPUTick
	noPPUATick

	prgBank, chrBank uint8
	prgBanks32k      int
	chrBanks8k       int
}

func newMapper011(cart *Cartridge) *mapper011 {
	prgBanks := len(cart.prgROM) / 0x8000
	if prgBanks == 0 {
		prgBanks = 1
	}
	chrSize := len(cart.chrROM)
	if cart.hasCHRRAM {
		chrSize = len(cart.chrRAM)
	}
	chrBanks := chrSize / 0x2000
	if chrBanks == 0 {
		chrBanks = 1
	}
	return &mapper011{baseMapper: baseMapper{cart: cart}, prgBanks32k: prgBanks, chrBanks8k: chrBanks}
}

func (m *mapper011) ReadPRG(address uint16) uint8 { return m.PeekPRG(address) }

func (m *mapper011) PeekPRG(address uint16) uint8 {
	if address < 0x8000 {
		return m.readPRGRAM(address)
	}
	bank := int(m.prgBank&0x0F) % m.prgBanks32k
	offset := bank*0x8000 + int(address&0x7FFF)
	if offset >= 0 && offset < len(m.cart.prgROM) {
		return m.cart.prgROM[offset]
	}
	return 0
}

func (m *mapper011) WritePRG(address uint16, value uint8) {
	if address < 0x8000 {
		m.writePRGRAM(address, value)
		return
	}
	m.prgBank = value & 0x0F
	m.chrBank = (value >> 4) & 0x0F
}

func (m *mapper011) ReadCHR(address uint16) uint8 {
	return m.readCHR(address, int(m.chrBank)%m.chrBanks8k, 0x2000)
}

func (m *mapper011) WriteCHR(address uint16, value uint8) {
	m.writeCHR(address, value, int(m.chrBank)%m.chrBanks8k, 0x2000)
}

func (m *mapper011) Mirroring() Mirroring { return m.cart.Header.Mirroring }
