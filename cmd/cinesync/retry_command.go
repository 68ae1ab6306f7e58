package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cinesync/internal/journal"
)

func newRetryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "retry",
		Short: "Clear failed journal rows so the next sync reprocesses them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := journal.Open(cfg)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer func() { _ = store.Close() }()

			cleared, err := store.ClearFailed(cmd.Context())
			if err != nil {
				return err
			}
			if cleared == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No failed movies to retry")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d failed movies; run 'cinesync sync' to reprocess them\n", cleared)
			return nil
		},
	}
}
