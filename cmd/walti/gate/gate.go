package gate

import (
	"errors"
	"fmt"

	"github.com/crucial707/walti/cmd/walti/root"
	"github.com/crucial707/walti/internal/models"
	"github.com/spf13/cobra"
)

// ErrScanFailed is returned when the latest scan did not pass.
var ErrScanFailed = errors.New("latest scan did not pass")

func init() {
	gateCmd := &cobra.Command{
		Use:   "gate",
		Short: "Fail unless the latest scan of a plugin passed",
		Long: `Check the latest scan of a plugin on a target and exit with status 1 unless
its result status is 200. Intended as a build step.

Example:
  walti gate --target example.com --plugin xss`,
		RunE: runGate,
	}

	gateCmd.Flags().StringP("target", "t", "", "Target name (required)")
	gateCmd.Flags().StringP("plugin", "p", "", "Plugin name (required)")
	gateCmd.Flags().Bool("queue", false, "Also queue a new scan after checking")
	gateCmd.MarkFlagRequired("target")
	gateCmd.MarkFlagRequired("plugin")

	root.GetRoot().AddCommand(gateCmd)
}

func runGate(cmd *cobra.Command, args []string) error {
	targetName, _ := cmd.Flags().GetString("target")
	pluginName, _ := cmd.Flags().GetString("plugin")
	queue, _ := cmd.Flags().GetBool("queue")

	client, _, err := root.Client(cmd)
	if err != nil {
		return err
	}

	t, err := client.FindTarget(cmd.Context(), targetName)
	if err != nil {
		return fmt.Errorf("failed to fetch target: %w", err)
	}
	p, ok := t.Plugin(pluginName)
	if !ok {
		return fmt.Errorf("target %s has no plugin %s", targetName, pluginName)
	}

	out := cmd.OutOrStdout()
	if queue {
		res, err := client.QueueScan(cmd.Context(), targetName, pluginName)
		if err != nil {
			return fmt.Errorf("failed to queue scan: %w", err)
		}
		fmt.Fprintf(out, "Queue request: %s\n", res)
	}

	if p.Scan == nil {
		return fmt.Errorf("plugin %s on %s has never been scanned", pluginName, targetName)
	}

	link, err := client.ResultURL(t, pluginName)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s/%s: %s (%s, result %d)\n", targetName, pluginName, p.Scan.Message, p.Scan.StatusColor, p.Scan.ResultStatus)
	fmt.Fprintf(out, "Details: %s\n", link)

	if !p.Scan.OK() {
		return fmt.Errorf("%w: result status %d", ErrScanFailed, p.Scan.ResultStatus)
	}
	if p.Scan.StatusColor == models.StatusRed {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: scan passed but is marked red")
	}
	return nil
}
