package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/bridgectl/bridgectl/internal/agent"
	"github.com/bridgectl/bridgectl/internal/client"
	"github.com/bridgectl/bridgectl/internal/client/output"
	"github.com/bridgectl/bridgectl/internal/constants"

	"github.com/spf13/cobra"
)

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Poll until the debugger hits a breakpoint",
	Long: fmt.Sprintf(`Poll the bridge state until the debugger enters break mode.
Gives up after a bounded number of attempts (default %d, every %s).
Prefer "%s watch" where a long-lived connection is acceptable; polling is
the fallback.`,
		constants.PollMaxAttempts, constants.PollInterval, constants.ProjectName),
	Run: waitRun,
}

var (
	waitAttemptsFlag int
	waitIntervalFlag time.Duration
)

func init() {
	rootCmd.AddCommand(waitCmd)

	waitCmd.Flags().IntVar(&waitAttemptsFlag, "attempts", constants.PollMaxAttempts,
		"maximum number of state polls before giving up")
	waitCmd.Flags().DurationVar(&waitIntervalFlag, "interval", constants.PollInterval,
		"delay between state polls")
}

func waitRun(cmd *cobra.Command, _ []string) {
	cfg, err := getConfigFromContext(cmd)
	if err != nil {
		output.Errorf("failed to load configuration: %v", err)
		return
	}

	c := client.New(cfg, slog.Default())
	poller := agent.NewPoller(c, NewOutputWrapper(), waitAttemptsFlag, waitIntervalFlag)

	snapshot, reached, err := poller.WaitForBreak(cmd.Context())
	if err != nil {
		output.Errorf("%s", err)
		return
	}

	if !reached {
		output.Warningf("Debugger did not break within %d attempts", waitAttemptsFlag)
		return
	}

	output.Successf("Breakpoint hit at %s:%d", snapshot.File, snapshot.Line)
	if snapshot.HasException() {
		output.Warningf("Exception: %s", snapshot.Exception)
	}
}
