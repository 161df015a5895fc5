package main

import (
	"github.com/spf13/cobra"
)

const defaultConfigPath = "config.toml"

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "appointment-desk",
		Short:         "Dock appointment booking service with a chat assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config.toml")

	root.AddCommand(
		newServeCmd(&configPath),
		newWorkerCmd(&configPath),
		newMigrateCmd(&configPath),
		newBlockSlotCmd(&configPath),
		newUnblockSlotCmd(&configPath),
	)

	return root
}
