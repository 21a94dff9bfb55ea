package ppu

// nesColorPalette is the 2C02 NTSC palette, 64 entries in 0xAARRGGBB form.
var nesColorPalette = [64]uint32{
	0xFF666666, 0xFF002A88, 0xFF1412A7, 0xFF3B00A4, 0xFF5C007E, 0xFF6E0040, 0xFF6C0600, 0xFF561D00,
	0xFF333500, 0xFF0B4800, 0xFF005200, 0xFF004F08, 0xFF00404D, 0xFF000000, 0xFF000000, 0xFF000000,
	0xFFADADAD, 0xFF155FD9, 0xFF4240FF, 0xFF7527FE, 0xFFA01ACC, 0xFFB71E7B, 0xFFB53120, 0xFF994E00,
	0xFF6B6D00, 0xFF388700, 0xFF0C9300, 0xFF008F32, 0xFF007C8D, 0xFF000000, 0xFF000000, 0xFF000000,
	0xFFFFFEFF, 0xFF64B0FF, 0xFF9290FF, 0xFFC676FF, 0xFFF36AFF, 0xFFFE6ECC, 0xFFFE8170, 0xFFEA9E22,
	0xFFBCBE00, 0xFF88D800, 0xFF5CE430, 0xFF45E082, 0xFF48CDDE, 0xFF4F4F4F, 0xFF000000, 0xFF000000,
	0xFFFFFEFF, 0xFFC0DFFF, 0xFFD3D2FF, 0xFFE8C8FF, 0xFFFBC2FF, 0xFFFEC4EA, 0xFFFECCC5, 0xFFF7D8A5,
	0xFFE4E594, 0xFFCFF29B, 0xFFBEFBB3, 0xFFB8F8D8, 0xFFB8F8F8, 0xFF000000, 0xFF000000, 0xFF000000,
}

// NESColorToRGB converts a 6-bit NES color index to a 0x00RRGGBB value,
// ignoring PPUMASK's grayscale/emphasis bits.
func NESColorToRGB(colorIndex uint8) uint32 {
	if colorIndex >= 64 {
		return 0
	}
	return nesColorPalette[colorIndex] & 0x00FFFFFF
}

// ApplyMask resolves a 6-bit NES color index to RGB, applying PPUMASK's
// grayscale bit and the three color-emphasis bits the way the 2C02's analog
// video DAC does: grayscale masks the color index down to its luma column,
// and emphasis attenuates the other two channels rather than boosting its
// own, matching the behavior documented for NTSC PPU revisions.
func ApplyMask(colorIndex, ppuMask uint8) uint32 {
	if ppuMask&0x01 != 0 {
		colorIndex &= 0x30 // grayscale: collapse to the gray column
	}

	rgb := NESColorToRGB(colorIndex)
	r := (rgb >> 16) & 0xFF
	g := (rgb >> 8) & 0xFF
	b := rgb & 0xFF

	const attenuate = 0.75
	emphRed := ppuMask&0x20 != 0
	emphGreen := ppuMask&0x40 != 0
	emphBlue := ppuMask&0x80 != 0

	if emphRed || emphGreen || emphBlue {
		if !emphRed {
			r = uint32(float64(r) * attenuate)
		}
		if !emphGreen {
			g = uint32(float64(g) * attenuate)
		}
		if !emphBlue {
			b = uint32(float64(b) * attenuate)
		}
	}

	return (r << 16) | (g << 8) | b
}
