package sync

import (
	"context"

	"cinesync/internal/journal"
	"cinesync/internal/logging"
	"cinesync/internal/tmdb"
)

const (
	reasonMissingArtwork = "missing artwork"
	reasonNoTrailer      = "no trailer"
)

// processMovie runs one movie through the full create-item sequence and
// returns its terminal status. Each call is one throttled unit of work.
func (p *Pipeline) processMovie(ctx context.Context, movie tmdb.Movie) journal.Status {
	if movie.PosterPath == "" || movie.BackdropPath == "" {
		p.logger.Debug("skipping movie",
			logging.Int64("movie_id", movie.ID),
			logging.String("title", movie.Title),
			logging.String("reason", reasonMissingArtwork))
		p.record(ctx, movie, journal.StatusSkipped, reasonMissingArtwork, "")
		return journal.StatusSkipped
	}

	videos, err := p.catalog.MovieVideos(ctx, movie.ID)
	if err != nil {
		p.logger.Error("movie detail fetch failed",
			logging.Int64("movie_id", movie.ID),
			logging.String("title", movie.Title),
			logging.Error(err))
		p.record(ctx, movie, journal.StatusFailed, err.Error(), "")
		return journal.StatusFailed
	}

	trailer, ok := tmdb.FirstTrailer(videos)
	if !ok {
		p.logger.Debug("skipping movie",
			logging.Int64("movie_id", movie.ID),
			logging.String("title", movie.Title),
			logging.String("reason", reasonNoTrailer))
		p.record(ctx, movie, journal.StatusSkipped, reasonNoTrailer, "")
		return journal.StatusSkipped
	}

	genreRefs := p.genres.Resolve(movie.GenreIDs)
	fields := buildFields(p.cfg, movie, genreRefs, trailer.Key)

	item, err := p.sink.CreateItem(ctx, p.cfg.CMS.MoviesCollectionID, fields)
	if err != nil {
		p.logger.Error("item creation failed",
			logging.Int64("movie_id", movie.ID),
			logging.String("title", movie.Title),
			logging.Error(err))
		p.record(ctx, movie, journal.StatusFailed, err.Error(), "")
		return journal.StatusFailed
	}

	p.logger.Info("item created",
		logging.Int64("movie_id", movie.ID),
		logging.String("title", movie.Title),
		logging.String("item_id", item.ID))
	p.record(ctx, movie, journal.StatusCreated, "", item.ID)
	return journal.StatusCreated
}

func (p *Pipeline) record(ctx context.Context, movie tmdb.Movie, status journal.Status, reason, itemID string) {
	err := p.journal.Record(ctx, journal.Record{
		MovieID: movie.ID,
		Title:   movie.Title,
		Status:  status,
		Reason:  reason,
		ItemID:  itemID,
		RunID:   p.runID,
	})
	if err != nil {
		p.logger.Error("journal write failed",
			logging.Int64("movie_id", movie.ID),
			logging.Error(err))
	}
}
