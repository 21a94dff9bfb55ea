package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"nescore/internal/config"
	"nescore/internal/deck"
	"nescore/internal/input"
	"nescore/internal/neserr"
)

// viewerGame implements ebiten.Game, drawing the ControlDeck's framebuffer
// into a window and forwarding keyboard state into its joypad 1: a reusable
// image.RGBA copied into an ebiten.Image each Draw, scaled to fit the window
// while preserving aspect ratio, for a single-window, single-pad viewer.
type viewerGame struct {
	deck *deck.Deck
	cfg  *config.Config

	frameImage *ebiten.Image
	pixelBuf   *image.RGBA
	err        error
}

var viewerKeyMap = map[ebiten.Key]input.Button{
	ebiten.KeyZ:          input.ButtonA,
	ebiten.KeyX:          input.ButtonB,
	ebiten.KeyShiftRight: input.ButtonSelect,
	ebiten.KeyEnter:      input.ButtonStart,
	ebiten.KeyArrowUp:    input.ButtonUp,
	ebiten.KeyArrowDown:  input.ButtonDown,
	ebiten.KeyArrowLeft:  input.ButtonLeft,
	ebiten.KeyArrowRight: input.ButtonRight,
}

func (g *viewerGame) Update() error {
	if g.err != nil {
		return g.err
	}

	pad := g.deck.Joypad(1)
	for key, button := range viewerKeyMap {
		pad.SetButton(button, ebiten.IsKeyPressed(key))
	}

	if err := g.deck.ClockFrame(); err != nil {
		if _, jammed := err.(*neserr.CpuCorruptedError); jammed {
			g.deck.Reset()
			return nil
		}
		g.err = err
		return err
	}
	return nil
}

func (g *viewerGame) Draw(screen *ebiten.Image) {
	fb := g.deck.FrameBuffer()
	for y := 0; y < 240; y++ {
		for x := 0; x < 256; x++ {
			pixel := fb[y*256+x]
			r := uint8((pixel >> 16) & 0xFF)
			gr := uint8((pixel >> 8) & 0xFF)
			b := uint8(pixel & 0xFF)
			g.pixelBuf.SetRGBA(x, y, color.RGBA{R: r, G: gr, B: b, A: 255})
		}
	}
	g.frameImage.WritePixels(g.pixelBuf.Pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(2, 2)
	screen.DrawImage(g.frameImage, op)
}

func (g *viewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 256 * 2, 240 * 2
}

// runWindowed opens an ebiten window and drives the deck at one frame per
// Update tick until the window is closed or ClockFrame returns an error
// other than a CPU jam; a jam resets the deck and the run continues.
func runWindowed(d *deck.Deck, cfg *config.Config) error {
	game := &viewerGame{
		deck:       d,
		cfg:        cfg,
		frameImage: ebiten.NewImage(256, 240),
		pixelBuf:   image.NewRGBA(image.Rect(0, 0, 256, 240)),
	}

	ebiten.SetWindowTitle("nescli")
	ebiten.SetWindowSize(256*2, 240*2)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("window closed: %w", err)
	}
	return game.err
}
