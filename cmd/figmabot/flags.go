package main

import (
	"github.com/spf13/cobra"
)

// AppFlags are the flags shared by every subcommand.
type AppFlags struct {
	GlobalConfigFile string
}

func (f *AppFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&f.GlobalConfigFile, "config", "c", "",
		"Path to the global YAML/JSON configuration file. If not set, searches default locations.")
}
