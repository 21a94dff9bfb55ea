// Package ppu implements the NES Picture Processing Unit (2C02).
package ppu

import "nescore/internal/memory"

// PPU represents the NES Picture Processing Unit (2C02).
type PPU struct {
	ppuCtrl   uint8
	ppuMask   uint8
	ppuStatus uint8
	oamAddr   uint8

	v uint16 // current VRAM address (15 bits)
	t uint16 // temporary VRAM address / address latch (15 bits)
	x uint8  // fine X scroll (3 bits)
	w bool   // write toggle, shared by PPUSCROLL/PPUADDR

	memory *memory.PPUMemory

	scanline   int
	cycle      int
	frameCount uint64
	oddFrame   bool
	readBuffer uint8

	// Open-bus decay: PPUSTATUS bits not driven by the current read fade
	// back to the last value written to any PPU register after roughly
	// 600ms. Tracked in PPU cycles (~5.37M cycles/sec NTSC).
	openBusValue uint8
	openBusDecay int64

	oam               [256]uint8
	secondaryOAM      [32]uint8
	spriteIndexes     [8]uint8
	spriteCount       uint8
	sprite0OnScanline bool
	sprite0Hit        bool
	spriteOverflow    bool
	lastEvalScanline  int

	frameBuffer [256 * 240]uint32

	nmiCallback           func()
	frameCompleteCallback func()

	backgroundEnabled bool
	spritesEnabled    bool
	renderingEnabled  bool

	cycleCount uint64
}

// New creates a new PPU instance.
func New() *PPU {
	p := &PPU{scanline: -1}
	p.Reset()
	return p
}

// Reset restores the PPU to its power-up state.
func (p *PPU) Reset() {
	p.ppuCtrl = 0
	p.ppuMask = 0
	p.ppuStatus = 0xA0
	p.oamAddr = 0

	p.v = 0
	p.t = 0
	p.x = 0
	p.w = false

	p.scanline = -1
	p.cycle = 0
	p.frameCount = 0
	p.oddFrame = false
	p.readBuffer = 0
	p.openBusValue = 0
	p.openBusDecay = 0

	p.spriteCount = 0
	p.sprite0Hit = false
	p.spriteOverflow = false
	p.lastEvalScanline = -999

	p.backgroundEnabled = false
	p.spritesEnabled = false
	p.renderingEnabled = false

	p.cycleCount = 0

	for i := range p.oam {
		p.oam[i] = 0
	}
	for i := range p.frameBuffer {
		p.frameBuffer[i] = 0
	}
}

// SetMemory sets the PPU's view of VRAM, palette RAM, and pattern tables.
func (p *PPU) SetMemory(mem *memory.PPUMemory) {
	p.memory = mem
}

// SetNMICallback sets the callback invoked when the PPU asserts /NMI.
func (p *PPU) SetNMICallback(callback func()) {
	p.nmiCallback = callback
}

// SetFrameCompleteCallback sets the callback invoked once per rendered frame.
func (p *PPU) SetFrameCompleteCallback(callback func()) {
	p.frameCompleteCallback = callback
}

// decayWindow is roughly 600ms of PPU cycles at the NTSC dot rate.
const decayWindow = int64(5369318 * 6 / 10)

func (p *PPU) openBusWrite(value uint8) {
	p.openBusValue = value
	p.openBusDecay = decayWindow
}

func (p *PPU) openBusRead() uint8 {
	if p.openBusDecay <= 0 {
		return 0
	}
	return p.openBusValue
}

// ReadRegister reads from a PPU register at CPU address $2000-$2007.
func (p *PPU) ReadRegister(address uint16) uint8 {
	switch address {
	case 0x2002:
		status := (p.ppuStatus & 0xE0) | p.openBusRead()&0x1F
		p.ppuStatus &^= 0x80 // clear VBL flag; sprite 0 hit/overflow untouched by reads
		p.w = false
		p.openBusWrite(status)
		return status
	case 0x2004:
		value := p.oam[p.oamAddr]
		p.openBusWrite(value)
		return value
	case 0x2007:
		value := p.readPPUData()
		p.openBusWrite(value)
		return value
	default:
		return p.openBusRead()
	}
}

// WriteRegister writes to a PPU register at CPU address $2000-$2007.
func (p *PPU) WriteRegister(address uint16, value uint8) {
	p.openBusWrite(value)
	switch address {
	case 0x2000:
		p.ppuCtrl = value
		p.t = (p.t & 0xF3FF) | ((uint16(value) & 0x03) << 10)
		p.updateRenderingFlags()
		p.checkNMI()
	case 0x2001:
		p.ppuMask = value
		p.updateRenderingFlags()
	case 0x2002:
		// read-only
	case 0x2003:
		p.oamAddr = value
	case 0x2004:
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case 0x2005:
		p.writePPUScroll(value)
	case 0x2006:
		p.writePPUAddr(value)
	case 0x2007:
		p.writePPUData(value)
	}
}

// WriteOAM writes directly to OAM, used by the $4014 OAM DMA transfer.
func (p *PPU) WriteOAM(address uint8, value uint8) {
	p.oam[address] = value
}

// Step advances the PPU by a single dot.
func (p *PPU) Step() {
	p.cycleCount++
	if p.openBusDecay > 0 {
		p.openBusDecay--
	}

	// Odd-frame dot skip: on odd frames, with rendering enabled, the
	// pre-render scanline's last dot (339) is skipped, landing directly
	// on scanline 0, dot 0.
	if p.scanline == -1 && p.cycle == 339 && p.oddFrame && p.renderingEnabled {
		p.cycle = 340
	}

	if p.scanline >= -1 && p.scanline < 240 {
		p.renderCycle()
	}

	p.cycle++
	if p.cycle > 340 {
		p.cycle = 0
		p.scanline++
		if p.scanline > 260 {
			p.scanline = -1
			p.frameCount++
			p.oddFrame = !p.oddFrame
			if p.frameCompleteCallback != nil {
				p.frameCompleteCallback()
			}
		}
	}

	if p.scanline == 241 && p.cycle == 1 {
		p.ppuStatus |= 0x80
		if p.ppuCtrl&0x80 != 0 && p.nmiCallback != nil {
			p.nmiCallback()
		}
	}

	if p.scanline == -1 && p.cycle == 1 {
		p.ppuStatus &^= 0xE0 // clear VBL, sprite 0 hit, sprite overflow
		p.sprite0Hit = false
		p.spriteOverflow = false
	}

	if p.scanline == -1 && p.cycle >= 280 && p.cycle <= 304 && p.renderingEnabled {
		p.copyY()
	}

	if p.renderingEnabled && p.scanline < 240 && (p.scanline >= -1) {
		if p.cycle == 256 {
			p.incrementY()
		} else if p.cycle == 257 {
			p.copyX()
		}
	}
}

// renderCycle handles sprite evaluation and pixel output for one dot.
func (p *PPU) renderCycle() {
	if p.spritesEnabled && p.scanline >= 0 && p.scanline < 240 && p.cycle == 1 {
		if p.lastEvalScanline != p.scanline {
			p.evaluateSprites()
		}
	}

	if p.scanline < 0 || p.scanline >= 240 || p.cycle < 1 || p.cycle > 256 {
		return
	}
	if p.memory == nil {
		return
	}
	if !p.backgroundEnabled && !p.spritesEnabled {
		return
	}

	pixelX := p.cycle - 1
	pixelY := p.scanline

	var backgroundPixel, spritePixel SpritePixel = SpritePixel{transparent: true}, SpritePixel{transparent: true}

	if p.backgroundEnabled {
		backgroundPixel = p.renderBackgroundPixel(pixelX, pixelY)
	}
	if p.spritesEnabled {
		spritePixel = p.renderSpritePixel(pixelX, pixelY)
	}

	finalColor := p.compositeFinalPixel(backgroundPixel, spritePixel)
	p.frameBuffer[pixelY*256+pixelX] = finalColor
}

// SpritePixel is a single rendered pixel from the background or sprite layer.
type SpritePixel struct {
	colorIndex   uint8
	paletteIndex uint8
	rgbColor     uint32
	spriteIndex  int8
	priority     bool
	transparent  bool
}

func (p *PPU) evaluateSprites() {
	p.lastEvalScanline = p.scanline

	p.spriteCount = 0
	p.sprite0OnScanline = false

	for i := range p.secondaryOAM {
		p.secondaryOAM[i] = 0xFF
	}
	for i := range p.spriteIndexes {
		p.spriteIndexes[i] = 0xFF
	}

	spriteHeight := 8
	if p.ppuCtrl&0x20 != 0 {
		spriteHeight = 16
	}

	spritesFound := 0
	for spriteIndex := 0; spriteIndex < 64; spriteIndex++ {
		oamIndex := spriteIndex * 4
		sY := int(p.oam[oamIndex])
		tileIndex := p.oam[oamIndex+1]
		attributes := p.oam[oamIndex+2]
		sX := int(p.oam[oamIndex+3])

		if p.scanline >= sY+1 && p.scanline < sY+1+spriteHeight {
			if spritesFound < 8 {
				secondaryIndex := spritesFound * 4
				p.secondaryOAM[secondaryIndex] = uint8(sY)
				p.secondaryOAM[secondaryIndex+1] = tileIndex
				p.secondaryOAM[secondaryIndex+2] = attributes
				p.secondaryOAM[secondaryIndex+3] = uint8(sX)
				p.spriteIndexes[spritesFound] = uint8(spriteIndex)
				if spriteIndex == 0 {
					p.sprite0OnScanline = true
				}
				spritesFound++
			} else {
				p.spriteOverflow = true
				p.ppuStatus |= 0x20
				break
			}
		}
	}

	p.spriteCount = uint8(spritesFound)
}

func (p *PPU) renderBackgroundPixel(pixelX, pixelY int) SpritePixel {
	scrollX := int(p.t&0x001F)<<3 + int(p.x)
	scrollY := int((p.t>>5)&0x001F)<<3 + int((p.t>>12)&0x0007)
	effectiveNametable := int((p.t >> 10) & 0x0003)

	worldX := pixelX + scrollX
	worldY := pixelY + scrollY

	finalNametable := effectiveNametable
	if worldX < 0 {
		finalNametable ^= 1
		worldX += 256
	} else if worldX >= 256 {
		finalNametable ^= 1
		worldX -= 256
	}
	if worldY < 0 {
		finalNametable ^= 2
		worldY += 240
	} else if worldY >= 240 {
		finalNametable ^= 2
		worldY -= 240
	}

	tileX := worldX >> 3
	tileY := worldY >> 3
	pixelInTileX := worldX & 7
	pixelInTileY := worldY & 7

	if tileX < 0 || tileX >= 32 || tileY < 0 || tileY >= 30 {
		return SpritePixel{transparent: true}
	}

	nametableAddr := 0x2000 | (uint16(finalNametable&3) << 10) | uint16(tileY*32+tileX)
	tileID := p.memory.Read(nametableAddr)

	attributeAddr := 0x23C0 | (uint16(finalNametable&3) << 10) | uint16((tileY>>2)*8+(tileX>>2))
	attributeByte := p.memory.Read(attributeAddr)

	blockID := ((tileX & 3) >> 1) + ((tileY&3)>>1)*2
	paletteIndex := (attributeByte >> (blockID << 1)) & 0x03

	var patternTableBase uint16
	if p.ppuCtrl&0x10 != 0 {
		patternTableBase = 0x1000
	}

	patternAddr := patternTableBase + uint16(tileID)*16 + uint16(pixelInTileY)
	patternLow := p.memory.Read(patternAddr)
	patternHigh := p.memory.Read(patternAddr + 0x08)

	bitShift := 7 - pixelInTileX
	bit0 := (patternLow >> bitShift) & 1
	bit1 := (patternHigh >> bitShift) & 1
	colorIndex := (bit1 << 1) | bit0

	var paletteAddr uint16
	if colorIndex == 0 {
		paletteAddr = 0x3F00
	} else {
		paletteAddr = 0x3F00 + uint16(paletteIndex)*4 + uint16(colorIndex)
	}

	nesColorIndex := p.memory.Read(paletteAddr)
	rgbColor := p.nesColor(nesColorIndex)

	return SpritePixel{
		colorIndex:   colorIndex,
		paletteIndex: paletteIndex,
		rgbColor:     rgbColor,
		spriteIndex:  -1,
		transparent:  colorIndex == 0,
	}
}

func (p *PPU) renderSpritePixel(pixelX, pixelY int) SpritePixel {
	spriteHeight := 8
	if p.ppuCtrl&0x20 != 0 {
		spriteHeight = 16
	}

	for i := 0; i < int(p.spriteCount); i++ {
		secondaryIndex := i * 4
		sY := int(p.secondaryOAM[secondaryIndex])
		tileIndex := p.secondaryOAM[secondaryIndex+1]
		attributes := p.secondaryOAM[secondaryIndex+2]
		sX := int(p.secondaryOAM[secondaryIndex+3])

		if pixelX < sX || pixelX >= sX+8 || pixelY < sY+1 || pixelY >= sY+1+spriteHeight {
			continue
		}

		spritePixelX := pixelX - sX
		spritePixelY := pixelY - (sY + 1)

		if attributes&0x40 != 0 {
			spritePixelX = 7 - spritePixelX
		}
		if attributes&0x80 != 0 {
			spritePixelY = spriteHeight - 1 - spritePixelY
		}

		colorIndex := p.getSpritePixelColor(tileIndex, spritePixelX, spritePixelY, attributes)
		if colorIndex == 0 {
			continue
		}

		if p.isOriginalSprite0(i) && !p.sprite0Hit {
			p.checkSprite0Hit(pixelX, pixelY, colorIndex)
		}

		paletteIndex := attributes & 0x03
		paletteAddr := 0x3F10 + uint16(paletteIndex)*4 + uint16(colorIndex)
		nesColorIndex := p.memory.Read(paletteAddr)

		return SpritePixel{
			colorIndex:   colorIndex,
			paletteIndex: paletteIndex,
			rgbColor:     p.nesColor(nesColorIndex),
			spriteIndex:  int8(i),
			priority:     attributes&0x20 != 0,
		}
	}

	return SpritePixel{spriteIndex: -1, transparent: true}
}

func (p *PPU) getSpritePixelColor(tileIndex uint8, pixelX, pixelY int, attributes uint8) uint8 {
	if pixelX < 0 || pixelX >= 8 || pixelY < 0 || pixelY >= 16 {
		return 0
	}

	var patternTableBase uint16
	if p.ppuCtrl&0x20 == 0 {
		if p.ppuCtrl&0x08 != 0 {
			patternTableBase = 0x1000
		}
	} else {
		if tileIndex&0x01 != 0 {
			patternTableBase = 0x1000
		}
		tileIndex &= 0xFE
		if pixelY >= 8 {
			tileIndex++
			pixelY -= 8
		}
	}

	patternAddr := patternTableBase + uint16(tileIndex)*16 + uint16(pixelY)
	patternLow := p.memory.Read(patternAddr)
	patternHigh := p.memory.Read(patternAddr + 0x08)

	bitShift := 7 - pixelX
	bit0 := (patternLow >> bitShift) & 1
	bit1 := (patternHigh >> bitShift) & 1
	return (bit1 << 1) | bit0
}

func (p *PPU) isOriginalSprite0(secondaryOAMIndex int) bool {
	if secondaryOAMIndex >= int(p.spriteCount) {
		return false
	}
	return p.spriteIndexes[secondaryOAMIndex] == 0
}

func (p *PPU) checkSprite0Hit(pixelX, pixelY int, spriteColorIndex uint8) {
	if p.sprite0Hit {
		return
	}
	if !p.backgroundEnabled || !p.spritesEnabled {
		return
	}
	if pixelX >= 255 {
		// Real hardware never reports a hit at the rightmost pixel.
		return
	}
	if pixelX < 8 && (p.ppuMask&0x02 == 0 || p.ppuMask&0x04 == 0) {
		return
	}

	backgroundPixel := p.renderBackgroundPixel(pixelX, pixelY)
	if !backgroundPixel.transparent && backgroundPixel.colorIndex != 0 && spriteColorIndex != 0 {
		p.sprite0Hit = true
		p.ppuStatus |= 0x40
	}
}

func (p *PPU) compositeFinalPixel(background, sprite SpritePixel) uint32 {
	if sprite.transparent {
		if background.transparent {
			return p.nesColor(p.memory.Read(0x3F00))
		}
		return background.rgbColor
	}
	if background.transparent {
		return sprite.rgbColor
	}
	if sprite.priority && p.backgroundEnabled {
		return background.rgbColor
	}
	return sprite.rgbColor
}

func (p *PPU) updateRenderingFlags() {
	p.backgroundEnabled = (p.ppuMask & 0x08) != 0
	p.spritesEnabled = (p.ppuMask & 0x10) != 0
	p.renderingEnabled = p.backgroundEnabled || p.spritesEnabled
}

func (p *PPU) checkNMI() {
	if (p.ppuCtrl&0x80 != 0) && (p.ppuStatus&0x80 != 0) && p.nmiCallback != nil {
		p.nmiCallback()
	}
}

func (p *PPU) writePPUScroll(value uint8) {
	if !p.w {
		p.t = (p.t & 0xFFE0) | (uint16(value) >> 3)
		p.x = value & 0x07
		p.w = true
	} else {
		p.t = (p.t & 0x8FFF) | ((uint16(value) & 0x07) << 12)
		p.t = (p.t & 0xFC1F) | ((uint16(value) & 0xF8) << 2)
		p.w = false
	}
}

func (p *PPU) writePPUAddr(value uint8) {
	if !p.w {
		p.t = (p.t & 0x80FF) | ((uint16(value) & 0x3F) << 8)
		p.w = true
	} else {
		p.t = (p.t & 0xFF00) | uint16(value)
		p.v = p.t
		p.w = false
	}
}

func (p *PPU) readPPUData() uint8 {
	var data uint8
	if p.memory == nil {
		data = 0
	} else if p.v >= 0x3F00 {
		data = p.memory.Read(p.v)
		p.readBuffer = p.memory.Read(p.v & 0x2FFF)
	} else {
		data = p.readBuffer
		p.readBuffer = p.memory.Read(p.v)
	}
	p.advanceVRAMAddress()
	return data
}

func (p *PPU) writePPUData(value uint8) {
	if p.memory != nil {
		p.memory.Write(p.v, value)
	}
	p.advanceVRAMAddress()
}

func (p *PPU) advanceVRAMAddress() {
	if p.ppuCtrl&0x04 != 0 {
		p.v += 32
	} else {
		p.v++
	}
	p.v &= 0x3FFF
}

// GetFrameBuffer returns the current frame buffer in 0x00RRGGBB format.
func (p *PPU) GetFrameBuffer() [256 * 240]uint32 {
	return p.frameBuffer
}

// GetFrameCount returns the number of frames rendered since power-on or reset.
func (p *PPU) GetFrameCount() uint64 {
	return p.frameCount
}

// SetFrameCount overrides the frame counter, used when restoring a save state.
func (p *PPU) SetFrameCount(count uint64) {
	p.frameCount = count
}

// GetScanline returns the current scanline (-1 for pre-render, 0-239 visible,
// 240 post-render, 241-260 vertical blank).
func (p *PPU) GetScanline() int {
	return p.scanline
}

// GetCycle returns the current dot within the scanline (0-340).
func (p *PPU) GetCycle() int {
	return p.cycle
}

// IsRenderingEnabled reports whether background or sprite rendering is on.
func (p *PPU) IsRenderingEnabled() bool {
	return p.renderingEnabled
}

// IsVBlank reports whether the PPU is currently in vertical blank.
func (p *PPU) IsVBlank() bool {
	return p.ppuStatus&0x80 != 0
}

// GetCycleCount returns the total number of PPU dots elapsed.
func (p *PPU) GetCycleCount() uint64 {
	return p.cycleCount
}

// State is the serializable snapshot of PPU register, scroll, timing, and
// sprite-evaluation state, used by save states, rewind, and run-ahead. The
// frame buffer is included so a restored state can be displayed before the
// next frame completes.
type State struct {
	PPUCtrl, PPUMask, PPUStatus, OAMAddr uint8
	V, T                                 uint16
	X                                    uint8
	W                                    bool
	Scanline, Cycle                      int
	FrameCount                           uint64
	OddFrame                             bool
	ReadBuffer                           uint8
	OpenBusValue                         uint8
	OpenBusDecay                         int64
	OAM                                  [256]uint8
	SecondaryOAM                         [32]uint8
	SpriteIndexes                        [8]uint8
	SpriteCount                          uint8
	Sprite0OnScanline                    bool
	Sprite0Hit                           bool
	SpriteOverflow                       bool
	LastEvalScanline                     int
	FrameBuffer                          [256 * 240]uint32
	BackgroundEnabled                    bool
	SpritesEnabled                       bool
	RenderingEnabled                     bool
	CycleCount                           uint64
}

// ExportState captures the PPU's full internal state.
func (p *PPU) ExportState() State {
	return State{
		PPUCtrl: p.ppuCtrl, PPUMask: p.ppuMask, PPUStatus: p.ppuStatus, OAMAddr: p.oamAddr,
		V: p.v, T: p.t, X: p.x, W: p.w,
		Scanline: p.scanline, Cycle: p.cycle,
		FrameCount:   p.frameCount,
		OddFrame:     p.oddFrame,
		ReadBuffer:   p.readBuffer,
		OpenBusValue: p.openBusValue,
		OpenBusDecay: p.openBusDecay,
		OAM:          p.oam, SecondaryOAM: p.secondaryOAM, SpriteIndexes: p.spriteIndexes,
		SpriteCount:       p.spriteCount,
		Sprite0OnScanline: p.sprite0OnScanline,
		Sprite0Hit:        p.sprite0Hit,
		SpriteOverflow:    p.spriteOverflow,
		LastEvalScanline:  p.lastEvalScanline,
		FrameBuffer:       p.frameBuffer,
		BackgroundEnabled: p.backgroundEnabled,
		SpritesEnabled:    p.spritesEnabled,
		RenderingEnabled:  p.renderingEnabled,
		CycleCount:        p.cycleCount,
	}
}

// ImportState restores a previously captured PPU state.
func (p *PPU) ImportState(s State) {
	p.ppuCtrl, p.ppuMask, p.ppuStatus, p.oamAddr = s.PPUCtrl, s.PPUMask, s.PPUStatus, s.OAMAddr
	p.v, p.t, p.x, p.w = s.V, s.T, s.X, s.W
	p.scanline, p.cycle = s.Scanline, s.Cycle
	p.frameCount = s.FrameCount
	p.oddFrame = s.OddFrame
	p.readBuffer = s.ReadBuffer
	p.openBusValue = s.OpenBusValue
	p.openBusDecay = s.OpenBusDecay
	p.oam, p.secondaryOAM, p.spriteIndexes = s.OAM, s.SecondaryOAM, s.SpriteIndexes
	p.spriteCount = s.SpriteCount
	p.sprite0OnScanline = s.Sprite0OnScanline
	p.sprite0Hit = s.Sprite0Hit
	p.spriteOverflow = s.SpriteOverflow
	p.lastEvalScanline = s.LastEvalScanline
	p.frameBuffer = s.FrameBuffer
	p.backgroundEnabled = s.BackgroundEnabled
	p.spritesEnabled = s.SpritesEnabled
	p.renderingEnabled = s.RenderingEnabled
	p.cycleCount = s.CycleCount
}

// nesColor resolves a 6-bit NES color index through PPUMASK's grayscale and
// emphasis bits via ApplyMask in filter.go.
func (p *PPU) nesColor(index uint8) uint32 {
	return ApplyMask(index, p.ppuMask)
}

// incrementX increments the coarse X scroll in v, wrapping to the next
// horizontal nametable.
func (p *PPU) incrementX() {
	if (p.v & 0x001F) == 31 {
		p.v &= ^uint16(0x001F)
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

// incrementY increments fine Y in v, carrying into coarse Y and the vertical
// nametable on overflow.
func (p *PPU) incrementY() {
	if (p.v & 0x7000) != 0x7000 {
		p.v += 0x1000
	} else {
		p.v &= ^uint16(0x7000)
		y := (p.v & 0x03E0) >> 5
		if y == 29 {
			y = 0
			p.v ^= 0x0800
		} else if y == 31 {
			y = 0
		} else {
			y++
		}
		p.v = (p.v & ^uint16(0x03E0)) | (y << 5)
	}
}

// copyX copies the horizontal scroll bits (coarse X, horizontal nametable)
// from t into v, done at dot 257 of every visible/pre-render scanline.
func (p *PPU) copyX() {
	p.v = (p.v & 0xFBE0) | (p.t & 0x041F)
}

// copyY copies the vertical scroll bits (fine Y, coarse Y, vertical
// nametable) from t into v, done at dots 280-304 of the pre-render scanline.
func (p *PPU) copyY() {
	p.v = (p.v & 0x841F) | (p.t & 0x7BE0)
}
