package cartridge

// mapper009 implements MMC2 (Punch-Out!!): an 8 KiB switchable PRG bank at
// $8000 with the top three 8 KiB banks fixed, and two independently latched
// 4 KiB CHR banks. Each CHR half tracks its own FD/FE latch, flipped by
// reading tile $FD8 or $FE8 within that half — the mechanism Punch-Out uses
// to swap Mac's face mid-scanline.
type mapper009 struct {
	baseMapper
	noIRQ
	noExpansionAudio
	noCPUTick
	noPPUATick

	prgBank uint8

	chrFD0, chrFE0 uint8
	chrFD1, chrFE1 uint8
	latch0, latch1 uint8 // 0xFD or 0xFE

	mirroring Mirroring

	prgBanks8k int
}

func newMapper009(cart *Cartridge) *mapper009 {
	banks := len(cart.prgROM) / 0x2000
	if banks == 0 {
		banks = 1
	}
	return &mapper009{
		baseMapper: baseMapper{cart: cart},
		latch0:     0xFE,
		latch1:     0xFE,
		mirroring:  cart.Header.Mirroring,
		prgBanks8k: banks,
	}
}

func (m *mapper009) ReadPRG(address uint16) uint8 { return m.PeekPRG(address) }

func (m *mapper009) PeekPRG(address uint16) uint8 {
	if address < 0x8000 {
		return m.readPRGRAM(address)
	}
	var bank int
	if address < 0xA000 {
		bank = int(m.prgBank&0x0F) % m.prgBanks8k
	} else {
		// Top three 8 KiB banks are fixed, in order.
		slot := int(address-0xA000) / 0x2000
		bank = (m.prgBanks8k - 3 + slot)
		if bank < 0 {
			bank = 0
		}
	}
	offset := bank*0x2000 + int(address&0x1FFF)
	if offset >= 0 && offset < len(m.cart.prgROM) {
		return m.cart.prgROM[offset]
	}
	return 0
}

func (m *mapper009) WritePRG(address uint16, value uint8) {
	switch {
	case address < 0x8000:
		m.writePRGRAM(address, value)
	case address < 0xA000:
		// PRG bank select, ignored below $A000.
	case address < 0xB000:
		m.prgBank = value
	case address < 0xC000:
		m.chrFD0 = value & 0x1F
	case address < 0xD000:
		m.chrFE0 = value & 0x1F
	case address < 0xE000:
		m.chrFD1 = value & 0x1F
	case address < 0xF000:
		m.chrFE1 = value & 0x1F
	default:
		if value&1 == 0 {
			m.mirroring = MirrorVertical
		} else {
			m.mirroring = MirrorHorizontal
		}
	}
}

func (m *mapper009) updateLatch(address uint16) {
	switch address {
	case 0x0FD8:
		m.latch0 = 0xFD
	case 0x0FE8:
		m.latch0 = 0xFE
	case 0x1FD8:
		m.latch1 = 0xFD
	case 0x1FE8:
		m.latch1 = 0xFE
	}
}

func (m *mapper009) ReadCHR(address uint16) uint8 {
	value := m.chrReadNoLatch(address)
	m.updateLatch(address)
	return value
}

func (m *mapper009) chrReadNoLatch(address uint16) uint8 {
	var bank int
	if address < 0x1000 {
		if m.latch0 == 0xFD {
			bank = int(m.chrFD0)
		} else {
			bank = int(m.chrFE0)
		}
	} else {
		if m.latch1 == 0xFD {
			bank = int(m.chrFD1)
		} else {
			bank = int(m.chrFE1)
		}
	}
	return m.readCHR(address&0xFFF, bank, 0x1000)
}

func (m *mapper009) WriteCHR(address uint16, value uint8) {
	m.updateLatch(address)
}

func (m *mapper009) Mirroring() Mirroring { return m.mirroring }
