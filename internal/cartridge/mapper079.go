package cartridge

// mapper079 implements the NINA-03/NINA-06 boards (and the near-identical
// 113/146 variants): a single register in the $4100-$5FFF expansion
// region packs a 32 KiB PRG bank select (bit 4) and an 8 KiB CHR bank
// select (bits 0-2).
type mapper079 struct {
	baseMapper
	noIRQ
	noExpansionAudio
	noCPUTick
	noPPUATick

	prgBank, chrBank uint8
	prgBanks32k      int
	chrBanks8k       int
}

func newMapper079(cart *Cartridge) *mapper079 {
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
	return &mapper079{baseMapper: baseMapper{cart: cart}, prgBanks32k: prgBanks, chrBanks8k: chrBanks}
}

func (m *mapper079) ReadPRG(address uint16) uint8 { return m.PeekPRG(address) }

func (m *mapper079) PeekPRG(address uint16) uint8 {
	if address < 0x6000 {
		return 0
	}
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

func (m *mapper079) WritePRG(address uint16, value uint8) {
	switch {
	case address >= 0x4100 && address < 0x6000:
		m.prgBank = (value >> 4) & 0x01
		m.chrBank = value & 0x07
	case address >= 0x6000 && address < 0x8000:
		m.writePRGRAM(address, value)
	}
}

func (m *mapper079) ReadCHR(address uint16) uint8 {
	return m.readCHR(address, int(m.chrBank)%m.chrBanks8k, 0x2000)
}

func (m *mapper079) WriteCHR(address uint16, value uint8) {
	m.writeCHR(address, value, int(m.chrBank)%m.chrBanks8k, 0x2000)
}

func (m *mapper079) Mirroring() Mirroring { return m.cart.Header.Mirroring }
