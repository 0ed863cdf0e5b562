package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/bridgectl/bridgectl/internal/agent"
	"github.com/bridgectl/bridgectl/internal/api"
	"github.com/bridgectl/bridgectl/internal/client"
	"github.com/bridgectl/bridgectl/internal/client/output"
	"github.com/bridgectl/bridgectl/internal/constants"

	"github.com/spf13/cobra"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Run the automated debugging agent",
	Long: `Run an automated debugging cycle: build, analyze errors or install
breakpoints and start a session, then react to pushed state changes until
interrupted.`,
	Example: fmt.Sprintf(`  # Run the cycle with a breakpoint
  - %s agent --breakpoint 'C:\Code\Program.cs:42'

  # Multiple breakpoints
  - %s agent -b 'C:\Code\Program.cs:42' -b 'C:\Code\Worker.cs:7'`,
		constants.ProjectName, constants.ProjectName),
	Run: agentRun,
}

var breakpointFlags []string

func init() {
	rootCmd.AddCommand(agentCmd)

	agentCmd.Flags().StringArrayVarP(&breakpointFlags, "breakpoint", "b", nil,
		"breakpoint to install before starting, as file:line (repeatable)")
}

func agentRun(cmd *cobra.Command, _ []string) {
	cfg, err := getConfigFromContext(cmd)
	if err != nil {
		output.Errorf("failed to load configuration: %v", err)
		return
	}

	breakpoints, err := parseBreakpointFlags(breakpointFlags)
	if err != nil {
		output.Errorf("%s", err)
		return
	}

	c := client.New(cfg, slog.Default())
	stream, err := c.DialEvents(cmd.Context())
	if err != nil {
		output.Errorf("%s", err)
		return
	}
	defer stream.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := agent.New(c, NewOutputWrapper(), slog.Default())
	if err = a.Run(ctx, stream, breakpoints); err != nil && !errors.Is(err, context.Canceled) {
		output.Errorf("%s", err)
	}
}

// parseBreakpointFlags converts file:line flag values into setBreakpoint
// commands. The line is the segment after the last colon, so Windows drive
// letters parse correctly.
func parseBreakpointFlags(specs []string) ([]api.Command, error) {
	breakpoints := make([]api.Command, 0, len(specs))
	for _, spec := range specs {
		idx := strings.LastIndex(spec, ":")
		if idx <= 0 {
			return nil, fmt.Errorf("invalid breakpoint %q: expected file:line", spec)
		}

		file := spec[:idx]
		line, err := strconv.Atoi(spec[idx+1:])
		if err != nil || line <= 0 {
			return nil, fmt.Errorf("invalid breakpoint %q: expected file:line", spec)
		}

		breakpoints = append(breakpoints, api.SetBreakpoint(file, line))
	}
	return breakpoints, nil
}
