package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cinesync/internal/journal"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var showFailed bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show journal outcome counts from previous runs",
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

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			total := 0
			rows := make([][]string, 0, len(stats)+1)
			for _, status := range journal.AllStatuses() {
				rows = append(rows, []string{string(status), strconv.Itoa(stats[status])})
				total += stats[status]
			}
			rows = append(rows, []string{"total", strconv.Itoa(total)})
			fmt.Fprintln(out, renderTable([]string{"Status", "Movies"}, rows, 2))

			if !showFailed {
				return nil
			}
			failed, err := store.List(cmd.Context(), journal.StatusFailed)
			if err != nil {
				return err
			}
			if len(failed) == 0 {
				fmt.Fprintln(out, "No failed movies recorded")
				return nil
			}
			failedRows := make([][]string, 0, len(failed))
			for _, record := range failed {
				failedRows = append(failedRows, []string{
					strconv.FormatInt(record.MovieID, 10),
					record.Title,
					record.Reason,
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Movie", "Title", "Reason"}, failedRows, 1))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showFailed, "failed", false, "List failed movies with their reasons")
	return cmd
}
