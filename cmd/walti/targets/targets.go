package targets

import (
	"fmt"

	"github.com/crucial707/walti/cmd/walti/output"
	"github.com/crucial707/walti/cmd/walti/root"
	"github.com/crucial707/walti/internal/models"
	"github.com/spf13/cobra"
)

// ==========================
// Init Targets
// ==========================
func init() {
	InitTargets(root.GetRoot())
}

func InitTargets(rootCmd *cobra.Command) {
	targetsCmd := &cobra.Command{
		Use:   "targets",
		Short: "Inspect monitored targets",
	}

	targetsCmd.AddCommand(
		listTargetsCmd(),
		showTargetCmd(),
		resultURLCmd(),
	)

	rootCmd.AddCommand(targetsCmd)
}

// ==========================
// LIST
// ==========================
func listTargetsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := root.Client(cmd)
			if err != nil {
				return err
			}

			targets, err := client.GetAllTargets(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list targets: %w", err)
			}

			if jsonOutput {
				return output.PrintJSON(cmd.OutOrStdout(), targets)
			}
			if len(targets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No targets registered.")
				return nil
			}

			rows := make([][]interface{}, 0, len(targets))
			for _, t := range targets {
				rows = append(rows, []interface{}{t.Name, t.Status, t.Label, t.Ownership, len(t.Plugins), output.Time(t.UpdatedAt)})
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"Name", "Status", "Label", "Ownership", "Plugins", "Updated"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output raw JSON instead of a table")
	return cmd
}

// ==========================
// SHOW
// ==========================
func showTargetCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Show a target and the last scan of each plugin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := root.Client(cmd)
			if err != nil {
				return err
			}

			t, err := client.FindTarget(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch target: %w", err)
			}

			if jsonOutput {
				return output.PrintJSON(cmd.OutOrStdout(), t)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Target: %s (%s)\n", t.Name, t.Status)
			if t.Description != "" {
				fmt.Fprintf(out, "Description: %s\n", t.Description)
			}
			fmt.Fprintf(out, "Ownership: %s\n", t.Ownership)
			if t.OwnershipURL != nil {
				fmt.Fprintf(out, "Ownership file: %s\n", t.OwnershipURL)
			}

			rows := make([][]interface{}, 0, len(t.Plugins))
			for _, p := range t.Plugins {
				rows = append(rows, pluginRow(p))
			}
			output.RenderTable(out, []string{"Plugin", "Schedule", "Queued", "Last Scan", "Color", "Result", "Message"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output raw JSON instead of formatted text")
	return cmd
}

func pluginRow(p models.Plugin) []interface{} {
	queued := "no"
	if p.Queued && p.QueuedAt != nil {
		queued = output.Time(*p.QueuedAt)
	}
	if p.Scan == nil {
		return []interface{}{p.Name, p.Schedule, queued, "never", "-", "-", "-"}
	}
	return []interface{}{p.Name, p.Schedule, queued, output.Time(p.Scan.UpdatedAt), p.Scan.StatusColor, p.Scan.ResultStatus, p.Scan.Message}
}

// ==========================
// RESULT URL
// ==========================
func resultURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "result-url [target] [plugin]",
		Short: "Print the console URL of a plugin's latest scan",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := root.Client(cmd)
			if err != nil {
				return err
			}

			t, err := client.FindTarget(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch target: %w", err)
			}
			link, err := client.ResultURL(t, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}
}
