package sync

import (
	"context"
	"fmt"
	"log/slog"
	gosync "sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"cinesync/internal/cms"
	"cinesync/internal/config"
	"cinesync/internal/genres"
	"cinesync/internal/journal"
	"cinesync/internal/logging"
	"cinesync/internal/notifications"
	"cinesync/internal/tmdb"
)

// Pipeline wires the source catalog, genre table, rate limiter, journal, and
// sink into one runnable sync.
type Pipeline struct {
	cfg      *config.Config
	catalog  tmdb.Catalog
	sink     cms.Sink
	genres   *genres.Table
	journal  *journal.Store
	notifier notifications.Service
	logger   *slog.Logger
	limiter  *rate.Limiter
	runID    string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger attaches a logger; a component attribute is added automatically.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithNotifier attaches a notification service.
func WithNotifier(notifier notifications.Service) Option {
	return func(p *Pipeline) {
		if notifier != nil {
			p.notifier = notifier
		}
	}
}

// New constructs a Pipeline. The limiter allows one unit start per configured
// interval, so unit starts are globally spaced regardless of worker count.
func New(cfg *config.Config, catalog tmdb.Catalog, sink cms.Sink, table *genres.Table, store *journal.Store, opts ...Option) *Pipeline {
	interval := time.Duration(cfg.Sync.MinIntervalMS) * time.Millisecond
	pipeline := &Pipeline{
		cfg:      cfg,
		catalog:  catalog,
		sink:     sink,
		genres:   table,
		journal:  store,
		notifier: notifications.NewNop(),
		logger:   logging.NewNop(),
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		runID:    uuid.NewString(),
	}
	for _, opt := range opts {
		opt(pipeline)
	}
	pipeline.logger = logging.NewComponentLogger(pipeline.logger, "sync").
		With(logging.String(logging.FieldRunID, pipeline.runID))
	return pipeline
}

// RunID returns the identifier stamped on this run's journal rows.
func (p *Pipeline) RunID() string {
	return p.runID
}

// Summary aggregates the outcome counts of one run.
type Summary struct {
	RunID    string
	Pages    int
	Created  int
	Skipped  int
	Failed   int
	Resumed  int
	Duration time.Duration
}

type tally struct {
	mu      gosync.Mutex
	created int
	skipped int
	failed  int
}

func (t *tally) add(status journal.Status) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch status {
	case journal.StatusCreated:
		t.created++
	case journal.StatusSkipped:
		t.skipped++
	case journal.StatusFailed:
		t.failed++
	}
}

// Run executes the sync. Listing pages are fetched strictly in order; each
// movie travels through the bounded queue to a worker, which waits on the
// limiter before starting the movie's create-item sequence. A listing fetch
// failure stops page production and fails the run once in-flight movies
// drain. Per-movie detail and sink failures are recorded and do not halt the
// run.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	started := time.Now()
	summary := &Summary{RunID: p.runID}

	p.logger.Info("sync started",
		logging.Int("pages", p.cfg.Sync.Pages),
		logging.Int("max_concurrent", p.cfg.Sync.MaxConcurrent))
	if err := p.notifier.NotifySyncStarted(ctx, p.cfg.Sync.Pages); err != nil {
		p.logger.Warn("start notification failed", logging.Error(err))
	}

	queue := make(chan tmdb.Movie, p.cfg.Sync.QueueSize)
	counts := &tally{}

	var workers gosync.WaitGroup
	for i := 0; i < p.cfg.Sync.MaxConcurrent; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			for movie := range queue {
				if err := p.limiter.Wait(ctx); err != nil {
					return
				}
				counts.add(p.processMovie(ctx, movie))
			}
		}()
	}

	pageErr := p.producePages(ctx, queue, summary)
	close(queue)
	workers.Wait()

	counts.mu.Lock()
	summary.Created = counts.created
	summary.Skipped = counts.skipped
	summary.Failed = counts.failed
	counts.mu.Unlock()
	summary.Duration = time.Since(started)

	p.logger.Info("sync finished",
		logging.Int("pages", summary.Pages),
		logging.Int("created", summary.Created),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Int("resumed", summary.Resumed),
		logging.Duration("duration", summary.Duration))

	if pageErr != nil {
		if err := p.notifier.NotifyError(ctx, pageErr, "listing fetch"); err != nil {
			p.logger.Warn("error notification failed", logging.Error(err))
		}
		return summary, pageErr
	}
	if err := p.notifier.NotifySyncCompleted(ctx, summary.Created, summary.Skipped, summary.Failed, summary.Duration); err != nil {
		p.logger.Warn("completion notification failed", logging.Error(err))
	}
	return summary, nil
}

// producePages fetches listing pages sequentially and enqueues each movie
// that the journal has not already marked created.
func (p *Pipeline) producePages(ctx context.Context, queue chan<- tmdb.Movie, summary *Summary) error {
	for page := 1; page <= p.cfg.Sync.Pages; page++ {
		listing, err := p.catalog.PopularMovies(ctx, page)
		if err != nil {
			return fmt.Errorf("fetch listing page %d: %w", page, err)
		}
		summary.Pages++
		p.logger.Debug("page fetched",
			logging.Int("page", page),
			logging.Int("movies", len(listing.Results)))

		for _, movie := range listing.Results {
			previous, err := p.journal.Get(ctx, movie.ID)
			if err != nil {
				return fmt.Errorf("journal lookup for movie %d: %w", movie.ID, err)
			}
			if previous != nil && previous.Status == journal.StatusCreated {
				summary.Resumed++
				p.logger.Debug("movie already synced",
					logging.Int64("movie_id", movie.ID),
					logging.String("item_id", previous.ItemID))
				continue
			}

			select {
			case queue <- movie:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}
