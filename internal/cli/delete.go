package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <sha256>...",
		Short: "Delete files from the backend",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			for _, hash := range args {
				if err := client.DeleteFile(cmd.Context(), hash); err != nil {
					return fmt.Errorf("delete %s: %w", hash, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", hash)
			}
			return nil
		},
	}
}
