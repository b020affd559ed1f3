package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the medrec CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "medrec",
		Short: "Medical records backend",
		Long: `Medrec is a medical records backend serving patients, doctors,
medical dossiers, analyses, and appointments over a JSON API.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	// Add subcommands
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}
