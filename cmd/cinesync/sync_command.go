package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"cinesync/internal/cms"
	"cinesync/internal/genres"
	"cinesync/internal/journal"
	"cinesync/internal/logging"
	"cinesync/internal/notifications"
	"cinesync/internal/sync"
	"cinesync/internal/tmdb"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var pagesFlag int

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run the catalog-to-CMS sync pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if pagesFlag > 0 {
				cfg.Sync.Pages = pagesFlag
			}

			runLock := flock.New(cfg.LockPath())
			locked, err := runLock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another sync is already running (lock %s)", cfg.LockPath())
			}
			defer func() { _ = runLock.Unlock() }()

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			catalog, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
			if err != nil {
				return fmt.Errorf("build tmdb client: %w", err)
			}
			sink, err := cms.New(cfg.CMS.APIToken, cfg.CMS.BaseURL,
				time.Duration(cfg.CMS.RequestTimeout)*time.Second)
			if err != nil {
				return fmt.Errorf("build cms client: %w", err)
			}
			table, err := genres.Load(cfg.Genres.MappingPath)
			if err != nil {
				return err
			}
			store, err := journal.Open(cfg)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer func() { _ = store.Close() }()

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			pipeline := sync.New(cfg, catalog, sink, table, store,
				sync.WithLogger(logger),
				sync.WithNotifier(notifications.NewService(cfg)))

			summary, runErr := pipeline.Run(signalCtx)
			if summary != nil {
				printSummary(cmd, summary)
			}
			return runErr
		},
	}

	cmd.Flags().IntVar(&pagesFlag, "pages", 0, "Override the number of listing pages to sync")
	return cmd
}

func printSummary(cmd *cobra.Command, summary *sync.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s finished in %s\n", summary.RunID, summary.Duration.Round(time.Millisecond))

	rows := [][]string{
		{"Pages fetched", strconv.Itoa(summary.Pages)},
		{"Items created", strconv.Itoa(summary.Created)},
		{"Movies skipped", strconv.Itoa(summary.Skipped)},
		{"Movies failed", strconv.Itoa(summary.Failed)},
		{"Already synced", strconv.Itoa(summary.Resumed)},
	}
	if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(out, renderTable([]string{"Metric", "Count"}, rows, 2))
		return
	}
	for _, row := range rows {
		fmt.Fprintf(out, "%s: %s\n", row[0], row[1])
	}
}
