package cartridge

// mapper066 implements GxROM: one register at $8000-$FFFF packing a 32 KiB
// PRG bank select (bits 4-5) and an 8 KiB CHR bank select (bits 0-1).
type mapper066 struct {
	baseMapper
	noIRQ
	noExpansionAudio
	noCPUTick
	noPPUATick

	prgBank, chrBank uint8
	prgBanks32k      int
	chrBanks8k       int
}

func newMapper066(cart *Cartridge) *mapper066 {
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
	return &mapper066{baseMapper: baseMapper{cart: cart}, prgBanks32k: prgBanks, chrBanks8k: chrBanks}
}

func (m *mapper066) ReadPRG(address uint16) uint8 { return m.PeekPRG(address) }

func (m *mapper066) PeekPRG(address uint16) uint8 {
	if address < 0x8000 {
		return m.readPRGRAM(address)
	}
	bank := int(m.prgBank) % m.prgBanks32k
	offset := bank*0x8000 + int(address&0x7FFF)
	if offset >= 0 && offset < len(m.cart.prgROM) {
		return m.cart.prgROM[offset]
	}
	return 0
}

func (m *mapper066) WritePRG(address uint16, value uint8) {
	if address < 0x8000 {
		m.writePRGRAM(address, value)
		return
	}
	m.prgBank = (value >> 4) & 0x03
	m.chrBank = value & 0x03
}

func (m *mapper066) ReadCHR(address uint16) uint8 {
	return m.readCHR(address, int(m.chrBank)%m.chrBanks8k, 0x2000)
}

func (m *mapper066) WriteCHR(address uint16, value uint8) {
	m.writeCHR(address, value, int(m.chrBank)%m.chrBanks8k, 0x2000)
}

func (m *mapper066) Mirroring() Mirroring { return m.cart.Header.Mirroring }
