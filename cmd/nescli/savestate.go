package main

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nescore/internal/cartridge"
	"nescore/internal/deck"
)

func newSaveStateCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "savestate",
		Short: "Inspect save states and battery-backed cartridge SRAM",
	}

	cmd.AddCommand(newSaveStateInfoCmd())
	cmd.AddCommand(newSaveStateExportSRAMCmd())

	return cmd
}

func newSaveStateInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <save-state-file>",
		Short: "Print the version/frame-count/region header of a save state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading save state: %w", err)
			}

			var snap deck.Snapshot
			if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
				return fmt.Errorf("decoding save state: %w", err)
			}

			regionName := map[deck.Region]string{
				deck.RegionNTSC:  "NTSC",
				deck.RegionPAL:   "PAL",
				deck.RegionDendy: "Dendy",
			}[snap.Region]

			fmt.Printf("Save state version: %d\n", snap.Version)
			fmt.Printf("Region:             %s\n", regionName)
			fmt.Printf("Frame count:        %d\n", snap.FrameCount)
			fmt.Printf("CPU PC:             $%04X\n", snap.CPU.PC)
			fmt.Printf("CPU cycles:         %d\n", snap.CPU.Cycles)
			return nil
		},
	}
}

func newSaveStateExportSRAMCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-sram <rom-file> <out-file>",
		Short: "Write a cartridge's battery-backed PRG-RAM to disk",
		Long: "Loads a ROM's header and PRG-RAM layout (without running it) and, if\n" +
			"the cartridge declares a battery backup, writes its current (power-up)\n" +
			"PRG-RAM contents to out-file. Primarily useful as a starting template\n" +
			"for a host collaborator's own save-file management.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cart, err := cartridge.LoadFromFile(args[0])
			if err != nil {
				return fmt.Errorf("loading rom: %w", err)
			}

			sram := cart.BatterySRAM()
			if sram == nil {
				return fmt.Errorf("%s has no battery-backed PRG-RAM", args[0])
			}
			if err := os.WriteFile(args[1], sram, 0644); err != nil {
				return fmt.Errorf("writing sram: %w", err)
			}
			fmt.Printf("Wrote %d bytes of battery-backed PRG-RAM to %s\n", len(sram), args[1])
			return nil
		},
	}
}
