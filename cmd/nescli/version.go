package main

import (
	"github.com/spf13/cobra"

	"nescore/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			version.PrintBuildInfo()
			return nil
		},
	}
}
