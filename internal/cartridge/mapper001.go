package cartridge

// mapper001 implements MMC1 (and, via the isRevisionA flag, MMC1A/mapper
// 155 — identical except WRAM is always enabled regardless of the PRG-bank
// register's chip-enable bit). Registers are loaded through a 5-write
// serial shift register; a write with bit 7 set resets the shift register
// and forces PRG mode 3 (16 KiB fixed at $C000, switchable at $8000).
type mapper001 struct {
	baseMapper
	noIRQ
	noExpansionAudio
	noCPUTick
	noPPUATick

	isRevisionA bool

	shift      uint8
	shiftCount uint8

	control uint8 // mirroring(1:0), prgMode(3:2), chrMode(4)
	chrBank [2]uint8
	prgBank uint8

	prgBanks16k int
	chrBanks4k  int
}

func newMapper001(cart *Cartridge, isRevisionA bool) *mapper001 {
	m := &mapper001{
		baseMapper:  baseMapper{cart: cart},
		isRevisionA: isRevisionA,
		control:     0x0C,
		prgBanks16k: len(cart.prgROM) / 0x4000,
	}
	if m.prgBanks16k == 0 {
		m.prgBanks16k = 1
	}
	chrSize := len(cart.chrROM)
	if cart.hasCHRRAM {
		chrSize = len(cart.chrRAM)
	}
	m.chrBanks4k = chrSize / 0x1000
	if m.chrBanks4k == 0 {
		m.chrBanks4k = 1
	}
	return m
}

func (m *mapper001) prgRAMEnabled() bool {
	if m.isRevisionA {
		return true
	}
	return m.prgBank&0x10 == 0
}

func (m *mapper001) ReadPRG(address uint16) uint8 { return m.PeekPRG(address) }

func (m *mapper001) PeekPRG(address uint16) uint8 {
	if address < 0x8000 {
		if !m.prgRAMEnabled() {
			return 0
		}
		return m.readPRGRAM(address)
	}

	prgMode := (m.control >> 2) & 3
	bank := int(m.prgBank & 0x0F)
	var selected int
	switch prgMode {
	case 0, 1:
		// 32 KiB mode: ignore low bit of bank select.
		bank &^= 1
		bankOffset := int(address-0x8000) / 0x4000
		selected = bank + bankOffset
	case 2:
		// Fixed first bank at $8000, switchable at $C000.
		if address < 0xC000 {
			selected = 0
		} else {
			selected = bank
		}
	default: // 3
		// Switchable at $8000, fixed last bank at $C000.
		if address < 0xC000 {
			selected = bank
		} else {
			selected = m.prgBanks16k - 1
		}
	}
	if selected >= m.prgBanks16k {
		selected %= m.prgBanks16k
	}
	offset := selected*0x4000 + int(address&0x3FFF)
	if offset >= 0 && offset < len(m.cart.prgROM) {
		return m.cart.prgROM[offset]
	}
	return 0
}

func (m *mapper001) WritePRG(address uint16, value uint8) {
	if address < 0x8000 {
		if m.prgRAMEnabled() {
			m.writePRGRAM(address, value)
		}
		return
	}

	if value&0x80 != 0 {
		m.shift = 0
		m.shiftCount = 0
		m.control |= 0x0C
		return
	}

	m.shift |= (value & 1) << m.shiftCount
	m.shiftCount++
	if m.shiftCount < 5 {
		return
	}

	result := m.shift
	m.shift = 0
	m.shiftCount = 0

	switch {
	case address < 0xA000:
		m.control = result
	case address < 0xC000:
		m.chrBank[0] = result
	case address < 0xE000:
		m.chrBank[1] = result
	default:
		m.prgBank = result
	}
}

func (m *mapper001) chrBankFor(address uint16) (bank int, size int) {
	chrMode := (m.control >> 4) & 1
	if chrMode == 0 {
		// 8 KiB mode: chrBank[0] selects a pair of 4 KiB banks, low bit ignored.
		return int(m.chrBank[0] &^ 1), 0x2000
	}
	if address < 0x1000 {
		return int(m.chrBank[0]), 0x1000
	}
	return int(m.chrBank[1]), 0x1000
}

func (m *mapper001) ReadCHR(address uint16) uint8 {
	bank, size := m.chrBankFor(address)
	if size == 0x2000 {
		return m.readCHR(address, bank/2, 0x2000)
	}
	return m.readCHR(address-uint16(0x1000*int(address/0x1000)), bank, 0x1000)
}

func (m *mapper001) WriteCHR(address uint16, value uint8) {
	bank, size := m.chrBankFor(address)
	if size == 0x2000 {
		m.writeCHR(address, value, bank/2, 0x2000)
		return
	}
	m.writeCHR(address-uint16(0x1000*int(address/0x1000)), value, bank, 0x1000)
}

func (m *mapper001) Mirroring() Mirroring {
	switch m.control & 3 {
	case 0:
		return MirrorSingleScreenLo
	case 1:
		return MirrorSingleScreenHi
	case 2:
		return MirrorVertical
	default:
		return MirrorHorizontal
	}
}
