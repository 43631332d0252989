package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stratastor/ferret/cmd/config"
	"github.com/stratastor/ferret/cmd/connection"
	"github.com/stratastor/ferret/cmd/device"
	"github.com/stratastor/ferret/cmd/health"
	"github.com/stratastor/ferret/cmd/logs"
	"github.com/stratastor/ferret/cmd/serve"
	"github.com/stratastor/ferret/cmd/status"
	"github.com/stratastor/ferret/cmd/version"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ferret",
		Short: "Ferret: StrataSTOR Network Agent",
	}

	rootCmd.AddCommand(serve.NewServeCmd())
	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.AddCommand(health.NewHealthCmd())
	rootCmd.AddCommand(status.NewStatusCmd())
	rootCmd.AddCommand(logs.NewLogsCmd())
	rootCmd.AddCommand(config.NewConfigCmd())
	rootCmd.AddCommand(connection.NewConnectionCmd())
	rootCmd.AddCommand(device.NewDeviceCmd())

	return rootCmd
}
