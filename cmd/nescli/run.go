package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"nescore/internal/deck"
	"nescore/internal/neserr"
)

type runFlags struct {
	frames      int
	window      bool
	screenshots []int
	loadState   string
	saveState   string
	runAhead    int
}

func newRunCmd(root *rootFlags) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run <rom-file>",
		Short: "Load a ROM and run it, headlessly or in a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRom(args[0], root, flags)
		},
	}

	cmd.Flags().IntVar(&flags.frames, "frames", 120, "number of frames to run in headless mode")
	cmd.Flags().BoolVar(&flags.window, "window", false, "open an ebiten window instead of running headlessly")
	cmd.Flags().IntSliceVar(&flags.screenshots, "screenshot", nil, "frame numbers (1-indexed) to dump as .ppm screenshots, headless mode only")
	cmd.Flags().StringVar(&flags.loadState, "load-state", "", "resume from a save-state file before running")
	cmd.Flags().StringVar(&flags.saveState, "save-state", "", "write a save-state file after the run completes")
	cmd.Flags().IntVar(&flags.runAhead, "run-ahead", 0, "speculative run-ahead depth, 0-4 frames")

	return cmd
}

func runRom(romPath string, root *rootFlags, flags *runFlags) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flags.runAhead != 0 {
		cfg.Emulation.RunAheadDepth = flags.runAhead
	}

	rng := rand.New(rand.NewSource(1))
	d := deck.New(cfg, func() uint8 { return uint8(rng.Intn(256)) })

	romData, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("reading rom: %w", err)
	}
	if err := d.LoadROM(romData); err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}
	fmt.Printf("Loaded %s: mapper %d, %s\n", filepath.Base(romPath), d.Cartridge().Header.MapperID, d.Cartridge().Mirroring())

	if flags.loadState != "" {
		data, err := os.ReadFile(flags.loadState)
		if err != nil {
			return fmt.Errorf("reading save state: %w", err)
		}
		if err := d.LoadState(data); err != nil {
			return fmt.Errorf("loading save state: %w", err)
		}
		fmt.Printf("Resumed from %s\n", flags.loadState)
	}

	if flags.window {
		if err := runWindowed(d, cfg); err != nil {
			return err
		}
	} else {
		if err := runHeadless(d, flags); err != nil {
			return err
		}
	}

	if flags.saveState != "" {
		data, err := d.SaveState()
		if err != nil {
			return fmt.Errorf("saving state: %w", err)
		}
		if err := os.WriteFile(flags.saveState, data, 0644); err != nil {
			return fmt.Errorf("writing save state: %w", err)
		}
		fmt.Printf("Wrote save state to %s\n", flags.saveState)
	}

	return nil
}

// runHeadless clocks the deck frame-by-frame with no display, dumping any
// requested screenshots along the way.
func runHeadless(d *deck.Deck, flags *runFlags) error {
	shots := make(map[int]bool, len(flags.screenshots))
	for _, f := range flags.screenshots {
		shots[f] = true
	}

	for frame := 1; frame <= flags.frames; frame++ {
		if err := d.ClockFrame(); err != nil {
			if _, jammed := err.(*neserr.CpuCorruptedError); jammed {
				return fmt.Errorf("cpu halted on frame %d: %w", frame, err)
			}
			return err
		}

		if shots[frame] {
			name := fmt.Sprintf("frame_%04d.ppm", frame)
			if err := writeFrameBufferPPM(d.FrameBuffer(), name); err != nil {
				return fmt.Errorf("writing screenshot: %w", err)
			}
			fmt.Printf("Wrote %s\n", name)
		}
	}

	fmt.Printf("Ran %d frames\n", flags.frames)
	return nil
}

// writeFrameBufferPPM dumps a deck's 256x240 0x00RRGGBB framebuffer as a plain
// PPM image, viewable without any NES-specific tooling.
func writeFrameBufferPPM(frameBuffer [256 * 240]uint32, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "P3\n256 240\n255\n")
	for y := 0; y < 240; y++ {
		for x := 0; x < 256; x++ {
			pixel := frameBuffer[y*256+x]
			r := (pixel >> 16) & 0xFF
			g := (pixel >> 8) & 0xFF
			b := pixel & 0xFF
			fmt.Fprintf(f, "%d %d %d ", r, g, b)
		}
		fmt.Fprintln(f)
	}
	return nil
}
