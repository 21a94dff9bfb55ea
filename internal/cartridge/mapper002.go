package cartridge

// mapper002 implements UxROM: a single switchable 16 KiB PRG bank at $8000,
// with the last bank fixed at $C000. CHR is always RAM, unbanked.
type mapper002 struct {
	baseMapper
	noIRQ
	noExpansionAudio
	noCPUTick
	noPPUATick

	prgBank     uint8
	prgBanks16k int
}

func newMapper002(cart *Cartridge) *mapper002 {
	banks := len(cart.prgROM) / 0x4000
	if banks == 0 {
		banks = 1
	}
	return &mapper002{
		baseMapper:  baseMapper{cart: cart},
		prgBanks16k: banks,
	}
}

func (m *mapper002) ReadPRG(address uint16) uint8 { return m.PeekPRG(address) }

func (m *mapper002) PeekPRG(address uint16) uint8 {
	if address < 0x8000 {
		return m.readPRGRAM(address)
	}
	var bank int
	if address < 0xC000 {
		bank = int(m.prgBank) % m.prgBanks16k
	} else {
		bank = m.prgBanks16k - 1
	}
	offset := bank*0x4000 + int(address&0x3FFF)
	if offset >= 0 && offset < len(m.cart.prgROM) {
		return m.cart.prgROM[offset]
	}
	return 0
}

func (m *mapper002) WritePRG(address uint16, value uint8) {
	if address < 0x8000 {
		m.writePRGRAM(address, value)
		return
	}
	m.prgBank = value
}

func (m *mapper002) ReadCHR(address uint16) uint8 {
	return m.readCHR(address, 0, 0x2000)
}

func (m *mapper002) WriteCHR(address uint16, value uint8) {
	m.writeCHR(address, value, 0, 0x2000)
}

func (m *mapper002) Mirroring() Mirroring { return m.cart.Header.Mirroring }
