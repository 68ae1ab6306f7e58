package sync

import (
	"testing"

	"cinesync/internal/testsupport"
	"cinesync/internal/tmdb"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"X", "x"},
		{"The Matrix Reloaded", "the-matrix-reloaded"},
		{"Amélie", "amelie"},
		{"WALL·E", "wall-e"},
		{"Mission: Impossible - Fallout", "mission-impossible-fallout"},
		{"  Spaced  Out  ", "spaced-out"},
		{"2001: A Space Odyssey", "2001-a-space-odyssey"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.title); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestReleaseYear(t *testing.T) {
	if got := releaseYear("1999-03-12"); got != 1999 {
		t.Fatalf("releaseYear = %d, want 1999", got)
	}
	if got := releaseYear(""); got != 0 {
		t.Fatalf("empty date should yield 0, got %d", got)
	}
	if got := releaseYear("not-a-date"); got != 0 {
		t.Fatalf("malformed date should yield 0, got %d", got)
	}
}

func TestBuildFieldsConcatenatesURLsVerbatim(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	movie := tmdb.Movie{
		ID:           42,
		Title:        "Answer",
		Overview:     "about everything",
		PosterPath:   "/poster.jpg",
		BackdropPath: "/abc.jpg",
		ReleaseDate:  "1979-10-12",
		VoteAverage:  8.1,
		VoteCount:    1200,
		Popularity:   55.5,
	}

	fields := buildFields(cfg, movie, []string{"item-scifi"}, "xyz123")
	if fields.BackdropURL != cfg.Media.BackdropBaseURL+"/abc.jpg" {
		t.Fatalf("unexpected backdrop url %q", fields.BackdropURL)
	}
	if fields.PosterURL != cfg.Media.PosterBaseURL+"/poster.jpg" {
		t.Fatalf("unexpected poster url %q", fields.PosterURL)
	}
	if fields.TrailerURL != cfg.Media.TrailerBaseURL+"xyz123" {
		t.Fatalf("unexpected trailer url %q", fields.TrailerURL)
	}
	if fields.MovieID != "42" {
		t.Fatalf("unexpected movie id %q", fields.MovieID)
	}
	if fields.ReleaseYear != 1979 {
		t.Fatalf("unexpected release year %d", fields.ReleaseYear)
	}
	if fields.Slug != "answer" {
		t.Fatalf("unexpected slug %q", fields.Slug)
	}
	if fields.Archived || fields.Draft {
		t.Fatalf("fields should be published: %+v", fields)
	}
}
