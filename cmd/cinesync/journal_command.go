package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"cinesync/internal/journal"
)

func newJournalCommand(ctx *commandContext) *cobra.Command {
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect and maintain the run journal",
	}
	journalCmd.AddCommand(newJournalListCommand(ctx))
	journalCmd.AddCommand(newJournalClearCommand(ctx))
	return journalCmd
}

func newJournalListCommand(ctx *commandContext) *cobra.Command {
	var statusFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal rows, optionally filtered by status",
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

			var filter []journal.Status
			if statusFlag != "" {
				status, ok := journal.ParseStatus(statusFlag)
				if !ok {
					return fmt.Errorf("unknown status %q (expected created, skipped, or failed)", statusFlag)
				}
				filter = append(filter, status)
			}

			records, err := store.List(cmd.Context(), filter...)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Journal is empty")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, record := range records {
				detail := record.ItemID
				if detail == "" {
					detail = record.Reason
				}
				rows = append(rows, []string{
					strconv.FormatInt(record.MovieID, 10),
					record.Title,
					string(record.Status),
					detail,
					record.UpdatedAt.Local().Format(time.RFC3339),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				renderTable([]string{"Movie", "Title", "Status", "Item / Reason", "Updated"}, rows, 1))
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFlag, "status", "", "Filter by status (created, skipped, failed)")
	return cmd
}

func newJournalClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every journal row",
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

			cleared, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d journal rows\n", cleared)
			return nil
		},
	}
}
