package scan

import (
	"errors"
	"fmt"

	"github.com/crucial707/walti/cmd/walti/root"
	"github.com/crucial707/walti/internal/models"
	"github.com/spf13/cobra"
)

func init() {
	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Queue and schedule scans",
	}
	scanCmd.AddCommand(queueCmd(), scheduleCmd())
	root.GetRoot().AddCommand(scanCmd)
}

func queueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Queue a scan of one or more plugins on a target",
		Long: `Ask Walti to run the given plugins against a target as soon as possible.
A plugin the current plan does not allow is reported as skipped, not as an error.

Example:
  walti scan queue --target example.com --plugin xss --plugin ssl`,
		RunE: runQueue,
	}

	cmd.Flags().StringP("target", "t", "", "Target name (required)")
	cmd.Flags().StringSliceP("plugin", "p", nil, "Plugin name, repeatable (required)")
	cmd.MarkFlagRequired("target")
	cmd.MarkFlagRequired("plugin")
	return cmd
}

func runQueue(cmd *cobra.Command, args []string) error {
	target, _ := cmd.Flags().GetString("target")
	plugins, _ := cmd.Flags().GetStringSlice("plugin")

	client, _, err := root.Client(cmd)
	if err != nil {
		return err
	}

	var errs []error
	for _, plugin := range plugins {
		res, err := client.QueueScan(cmd.Context(), target, plugin)
		if err != nil {
			errs = append(errs, fmt.Errorf("queue %s: %w", plugin, err))
			continue
		}
		switch res {
		case models.QueueSuccess:
			fmt.Fprintf(cmd.OutOrStdout(), "Queued %s on %s.\n", plugin, target)
		case models.QueueSkipped:
			fmt.Fprintf(cmd.OutOrStdout(), "Skipped %s on %s: not allowed by the current plan.\n", plugin, target)
		}
	}
	return errors.Join(errs...)
}
