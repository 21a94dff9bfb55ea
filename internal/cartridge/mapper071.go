package cartridge

// mapper071 implements Codemasters/Camerica boards: a 16 KiB switchable PRG
// bank at $8000 with the last bank fixed at $C000, CHR-RAM only. Fire Hawk
// (submapper 1) additionally exposes single-screen mirroring control
// through $9000-$9FFF; other Codemasters boards hard-wire mirroring from
// the header.
type mapper071 struct {
	baseMapper
	noIRQ
	noExpansionAudio
	noCPUTick
	noPPUATick

	hasMirrorControl bool
	mirrorHi         bool

	prgBank     uint8
	prgBanks16k int
}

func newMapper071(cart *Cartridge) *mapper071 {
	banks := len(cart.prgROM) / 0x4000
	if banks == 0 {
		banks = 1
	}
	return &mapper071{
		baseMapper:       baseMapper{cart: cart},
		hasMirrorControl: cart.Header.Submapper == 1,
		prgBanks16k:      banks,
	}
}

func (m *mapper071) ReadPRG(address uint16) uint8 { return m.PeekPRG(address) }

func (m *mapper071) PeekPRG(address uint16) uint8 {
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

func (m *mapper071) WritePRG(address uint16, value uint8) {
	switch {
	case address < 0x8000:
		m.writePRGRAM(address, value)
	case address < 0xA000:
		if m.hasMirrorControl {
			m.mirrorHi = value&0x10 != 0
		}
	case address >= 0xC000:
		m.prgBank = value
	}
}

func (m *mapper071) ReadCHR(address uint16) uint8 {
	return m.readCHR(address, 0, 0x2000)
}

func (m *mapper071) WriteCHR(address uint16, value uint8) {
	m.writeCHR(address, value, 0, 0x2000)
}

func (m *mapper071) Mirroring() Mirroring {
	if !m.hasMirrorControl {
		return m.cart.Header.Mirroring
	}
	if m.mirrorHi {
		return MirrorSingleScreenHi
	}
	return MirrorSingleScreenLo
}
