package main

import (
	"github.com/spf13/cobra"

	"nescore/internal/config"
)

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	region     string
	sampleRate int
	debug      bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "nescli",
		Short: "nescore - a cycle-accurate NES emulator core",
		Long: "nescli is the reference front-end for nescore: a cycle-accurate\n" +
			"Nintendo Entertainment System emulation core. It loads iNES/NES 2.0\n" +
			"ROM images and drives the core headlessly or through a windowed viewer.",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to a JSON config file (default: "+config.GetDefaultConfigPath()+")")
	cmd.PersistentFlags().StringVar(&flags.region, "region", "", "console region: NTSC, PAL, or Dendy (overrides config)")
	cmd.PersistentFlags().IntVar(&flags.sampleRate, "sample-rate", 0, "audio output sample rate in Hz, 8000-96000 (overrides config)")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable verbose component logging")

	cmd.AddCommand(newRunCmd(flags))
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newSaveStateCmd(flags))

	return cmd
}

// loadConfig reads the config file (writing defaults on first run) and
// applies any persistent-flag overrides on top of it.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	cfg := config.New()

	path := flags.configPath
	if path == "" {
		path = config.GetDefaultConfigPath()
	}
	if err := cfg.LoadFromFile(path); err != nil {
		return nil, err
	}

	switch flags.region {
	case "NTSC":
		cfg.Emulation.Region = config.RegionNTSC
	case "PAL":
		cfg.Emulation.Region = config.RegionPAL
	case "Dendy":
		cfg.Emulation.Region = config.RegionDendy
	}
	if flags.sampleRate != 0 {
		cfg.Audio.SampleRate = flags.sampleRate
	}
	if flags.debug {
		cfg.Debug.EnableLogging = true
	}

	return cfg, nil
}
