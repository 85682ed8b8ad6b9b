package cmd

import (
	"github.com/spf13/cobra"

	"facegate.io/infrastructure"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the calibration task worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		return infrastructure.StartServer(cmd.Context(), configFile)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
