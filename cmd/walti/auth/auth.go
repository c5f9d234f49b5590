package auth

import (
	"errors"
	"fmt"

	"github.com/crucial707/walti/cmd/walti/root"
	"github.com/spf13/cobra"
)

// InitAuth registers auth-related CLI commands on the root command.
func InitAuth(rootCmd *cobra.Command) {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Inspect API credentials",
	}
	authCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(authCmd)
}

func init() {
	InitAuth(root.GetRoot())
}

// checkCmd validates the configured key/secret against the API.
func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that the API key and secret are accepted",
		Long: `Call the Walti API with the configured key and secret and report whether they are valid.
Exits with status 1 when the credentials are rejected.

Example:
  WALTI_API_KEY=... WALTI_API_SECRET=... walti auth check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := root.Client(cmd)
			if err != nil {
				return err
			}
			ok, err := client.IsValidCredentials(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to check credentials: %w", err)
			}
			if !ok {
				return errors.New("credentials were rejected")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Credentials are valid.")
			return nil
		},
	}
}
