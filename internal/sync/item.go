package sync

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"cinesync/internal/cms"
	"cinesync/internal/config"
	"cinesync/internal/tmdb"
)

var deaccenter = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify converts a title into a URL-safe slug. Diacritics are folded to
// their base letters and anything else non-alphanumeric collapses to single
// hyphens.
func Slugify(title string) string {
	folded, _, err := transform.String(deaccenter, title)
	if err != nil {
		folded = title
	}

	var builder strings.Builder
	builder.Grow(len(folded))
	lastHyphen := true
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			builder.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				builder.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(builder.String(), "-")
}

func releaseYear(releaseDate string) int {
	parsed, err := time.Parse("2006-01-02", releaseDate)
	if err != nil {
		return 0
	}
	return parsed.Year()
}

// buildFields maps one enriched movie onto the CMS field set. Callers have
// already verified both image paths and the trailer key are present.
func buildFields(cfg *config.Config, movie tmdb.Movie, genreRefs []string, trailerKey string) cms.MovieFields {
	return cms.MovieFields{
		Name:        movie.Title,
		Slug:        Slugify(movie.Title),
		MovieID:     strconv.FormatInt(movie.ID, 10),
		Genres:      genreRefs,
		BackdropURL: cfg.Media.BackdropBaseURL + movie.BackdropPath,
		PosterURL:   cfg.Media.PosterBaseURL + movie.PosterPath,
		ReleaseDate: movie.ReleaseDate,
		ReleaseYear: releaseYear(movie.ReleaseDate),
		Overview:    movie.Overview,
		VoteAverage: movie.VoteAverage,
		VoteCount:   movie.VoteCount,
		Popularity:  movie.Popularity,
		Archived:    false,
		Draft:       false,
		TrailerURL:  cfg.Media.TrailerBaseURL + trailerKey,
	}
}
