package cmd

import (
	"log/slog"

	"github.com/bridgectl/bridgectl/internal/client"
	"github.com/bridgectl/bridgectl/internal/client/output"
	"github.com/bridgectl/bridgectl/internal/constants"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the version of the CLI",
	Run: func(cmd *cobra.Command, _ []string) {
		output.KeyValue("CLI version", *constants.GetVersion())

		cfg, err := getConfigFromContext(cmd)
		if err != nil {
			output.Errorf("failed to load configuration: %v", err)
			return
		}

		c := client.New(cfg, slog.Default())
		metrics, err := c.GetMetrics(cmd.Context())
		if err != nil {
			output.Errorf("%s", err)
			return
		}

		output.KeyValue("Bridge endpoint", cfg.Endpoint)
		output.KeyValue("Bridge uptime", metrics.Uptime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
