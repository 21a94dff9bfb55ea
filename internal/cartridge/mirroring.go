package cartridge

// Mirroring names how the four logical nametables map onto the PPU's 2 KiB
// of physical VRAM. It is resolved by the mapper, not by the PPU: the mapper
// owns bank switching and therefore owns mirroring, including the handful
// of mappers that can change it at runtime (MMC1, AxROM, and others with a
// one-screen mode).
type Mirroring uint8

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
	MirrorSingleScreenLo
	MirrorSingleScreenHi
	MirrorFourScreen
)

func (m Mirroring) String() string {
	switch m {
	case MirrorHorizontal:
		return "horizontal"
	case MirrorVertical:
		return "vertical"
	case MirrorSingleScreenLo:
		return "single-screen-lo"
	case MirrorSingleScreenHi:
		return "single-screen-hi"
	case MirrorFourScreen:
		return "four-screen"
	default:
		return "unknown"
	}
}

// NametableIndex resolves a logical PPU nametable address ($2000-$2FFF) to
// a physical offset into 2 KiB (or, for four-screen, 4 KiB) of VRAM.
func (m Mirroring) NametableIndex(address uint16) uint16 {
	address &= 0x0FFF
	table := (address >> 10) & 3
	offset := address & 0x03FF

	switch m {
	case MirrorHorizontal:
		// Tables 0,1 -> physical 0; tables 2,3 -> physical 1.
		return (table/2)*0x400 + offset
	case MirrorVertical:
		// Tables 0,2 -> physical 0; tables 1,3 -> physical 1.
		return (table%2)*0x400 + offset
	case MirrorSingleScreenLo:
		return offset
	case MirrorSingleScreenHi:
		return 0x400 + offset
	case MirrorFourScreen:
		return table*0x400 + offset
	default:
		return offset
	}
}
