package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bridgectl/bridgectl/internal/api"
	"github.com/bridgectl/bridgectl/internal/client"
	"github.com/bridgectl/bridgectl/internal/client/output"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream debugger state changes",
	Long:  `Subscribe to the bridge's WebSocket event stream and print state changes as they happen (Ctrl+C to stop)`,
	Run:   watchRun,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func watchRun(cmd *cobra.Command, _ []string) {
	cfg, err := getConfigFromContext(cmd)
	if err != nil {
		output.Errorf("failed to load configuration: %v", err)
		return
	}

	c := client.New(cfg, slog.Default())
	stream, err := c.DialEvents(cmd.Context())
	if err != nil {
		output.Errorf("%s", err)
		return
	}
	defer stream.Close()

	output.Infof("Watching for state changes (Ctrl+C to stop)")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watchEvents(ctx, stream, NewOutputWrapper())
}

// watchEvents prints events until the stream ends or the context is canceled.
func watchEvents(ctx context.Context, stream *client.EventStream, out OutputInterface) {
	for {
		select {
		case <-ctx.Done():
			out.Infof("Stopping")
			return
		case <-stream.Done():
			out.Warningf("Connection closed")
			return
		case event, ok := <-stream.Events():
			if !ok {
				out.Warningf("Connection closed")
				return
			}
			printEvent(event, out)
		}
	}
}

func printEvent(event api.Event, out OutputInterface) {
	switch event.Type {
	case api.EventConnected:
		out.Successf("Connected: %s", event.ConnectionID)

	case api.EventStateChange:
		if event.Snapshot == nil {
			return
		}
		snapshot := event.Snapshot
		line := fmt.Sprintf("State: %s", output.ModeBadge(snapshot.Mode))
		if snapshot.File != "" {
			line += fmt.Sprintf("  %s:%d", snapshot.File, snapshot.Line)
		}
		if snapshot.HasException() {
			line += fmt.Sprintf("  (%s)", snapshot.Exception)
		}
		out.Infof("%s", line)

	case api.EventPong:
		// Heartbeat reply, nothing to show.
	}
}
