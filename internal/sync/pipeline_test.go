package sync_test

import (
	"context"
	"errors"
	"fmt"
	gosync "sync"
	"testing"
	"time"

	"cinesync/internal/cms"
	"cinesync/internal/genres"
	"cinesync/internal/journal"
	"cinesync/internal/sync"
	"cinesync/internal/testsupport"
	"cinesync/internal/tmdb"
)

type fakeCatalog struct {
	mu         gosync.Mutex
	pages      map[int]*tmdb.Page
	pageErrs   map[int]error
	videos     map[int64][]tmdb.Video
	videoErrs  map[int64]error
	pageCalls  []int
	unitStarts []time.Time
}

func (f *fakeCatalog) PopularMovies(_ context.Context, page int) (*tmdb.Page, error) {
	f.mu.Lock()
	f.pageCalls = append(f.pageCalls, page)
	f.mu.Unlock()

	if err := f.pageErrs[page]; err != nil {
		return nil, err
	}
	listing, ok := f.pages[page]
	if !ok {
		return &tmdb.Page{Page: page}, nil
	}
	return listing, nil
}

func (f *fakeCatalog) MovieVideos(_ context.Context, movieID int64) ([]tmdb.Video, error) {
	f.mu.Lock()
	f.unitStarts = append(f.unitStarts, time.Now())
	f.mu.Unlock()

	if err := f.videoErrs[movieID]; err != nil {
		return nil, err
	}
	return f.videos[movieID], nil
}

type fakeSink struct {
	mu    gosync.Mutex
	items []cms.MovieFields
	errs  map[string]error
}

func (f *fakeSink) CreateItem(_ context.Context, collectionID string, fields any) (*cms.Item, error) {
	movieFields, ok := fields.(cms.MovieFields)
	if !ok {
		return nil, fmt.Errorf("unexpected fields type %T", fields)
	}
	if err := f.errs[movieFields.MovieID]; err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.items = append(f.items, movieFields)
	f.mu.Unlock()

	return &cms.Item{
		ID:   "item-" + movieFields.MovieID,
		Name: movieFields.Name,
		Slug: movieFields.Slug,
	}, nil
}

func (f *fakeSink) created() []cms.MovieFields {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := make([]cms.MovieFields, len(f.items))
	copy(cp, f.items)
	return cp
}

func trailerVideos(key string) []tmdb.Video {
	return []tmdb.Video{
		{Key: "teaser", Name: "Teaser", Site: "YouTube", Type: "Teaser"},
		{Key: key, Name: "Official Trailer", Site: "YouTube", Type: "Trailer"},
	}
}

func qualifyingMovie(id int64, title string) tmdb.Movie {
	return tmdb.Movie{
		ID:           id,
		Title:        title,
		Overview:     "overview",
		PosterPath:   fmt.Sprintf("/poster-%d.jpg", id),
		BackdropPath: fmt.Sprintf("/backdrop-%d.jpg", id),
		ReleaseDate:  "2001-01-01",
		GenreIDs:     []int64{28},
	}
}

func testTable() *genres.Table {
	return genres.NewTable([]genres.Mapping{
		{TMDBID: 28, Name: "Action", ItemID: "item-action"},
		{TMDBID: 99, Name: "Documentary", ItemID: "item-documentary"},
	})
}

func TestRunFetchesPagesInOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSync(3, 2, 1, 8))
	store := testsupport.NewJournal(t, cfg)

	catalog := &fakeCatalog{pages: map[int]*tmdb.Page{}}
	sink := &fakeSink{}

	pipeline := sync.New(cfg, catalog, sink, testTable(), store)
	summary, err := pipeline.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := []int{1, 2, 3}
	if len(catalog.pageCalls) != len(want) {
		t.Fatalf("unexpected page calls: %v", catalog.pageCalls)
	}
	for i, page := range want {
		if catalog.pageCalls[i] != page {
			t.Fatalf("pages out of order: %v", catalog.pageCalls)
		}
	}
	if summary.Pages != 3 {
		t.Fatalf("unexpected page count in summary: %d", summary.Pages)
	}
}

func TestRunEndToEnd(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSync(1, 2, 1, 8))
	store := testsupport.NewJournal(t, cfg)

	movie := tmdb.Movie{
		ID:           1,
		Title:        "X",
		PosterPath:   "/p.jpg",
		BackdropPath: "/b.jpg",
		ReleaseDate:  "2001-01-01",
		GenreIDs:     []int64{28, 99},
	}
	catalog := &fakeCatalog{
		pages:  map[int]*tmdb.Page{1: {Page: 1, Results: []tmdb.Movie{movie}}},
		videos: map[int64][]tmdb.Video{1: trailerVideos("k1")},
	}
	sink := &fakeSink{}

	pipeline := sync.New(cfg, catalog, sink, testTable(), store)
	summary, err := pipeline.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Created != 1 || summary.Skipped != 0 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	items := sink.created()
	if len(items) != 1 {
		t.Fatalf("expected one item, got %d", len(items))
	}
	fields := items[0]
	if fields.BackdropURL != cfg.Media.BackdropBaseURL+"/b.jpg" {
		t.Fatalf("unexpected backdrop url %q", fields.BackdropURL)
	}
	if fields.PosterURL != cfg.Media.PosterBaseURL+"/p.jpg" {
		t.Fatalf("unexpected poster url %q", fields.PosterURL)
	}
	if fields.TrailerURL != cfg.Media.TrailerBaseURL+"k1" {
		t.Fatalf("unexpected trailer url %q", fields.TrailerURL)
	}
	if fields.ReleaseYear != 2001 {
		t.Fatalf("unexpected release year %d", fields.ReleaseYear)
	}
	wantGenres := []string{"item-action", "item-documentary"}
	if len(fields.Genres) != len(wantGenres) {
		t.Fatalf("unexpected genres %v", fields.Genres)
	}
	for i := range wantGenres {
		if fields.Genres[i] != wantGenres[i] {
			t.Fatalf("unexpected genre order %v", fields.Genres)
		}
	}
	if fields.Archived || fields.Draft {
		t.Fatalf("item should be published: %+v", fields)
	}

	record, err := store.Get(context.Background(), 1)
	if err != nil || record == nil {
		t.Fatalf("journal row missing: record=%v err=%v", record, err)
	}
	if record.Status != journal.StatusCreated || record.ItemID != "item-1" {
		t.Fatalf("unexpected journal row: %#v", record)
	}
	if record.RunID != pipeline.RunID() {
		t.Fatalf("journal row missing run id: %#v", record)
	}
}

func TestRunSkipsMoviesWithoutArtworkBeforeDetailFetch(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSync(1, 1, 1, 8))
	store := testsupport.NewJournal(t, cfg)

	noPoster := qualifyingMovie(2, "No Poster")
	noPoster.PosterPath = ""
	noBackdrop := qualifyingMovie(3, "No Backdrop")
	noBackdrop.BackdropPath = ""

	catalog := &fakeCatalog{
		pages: map[int]*tmdb.Page{1: {Page: 1, Results: []tmdb.Movie{noPoster, noBackdrop}}},
	}
	sink := &fakeSink{}

	pipeline := sync.New(cfg, catalog, sink, testTable(), store)
	summary, err := pipeline.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Skipped != 2 || summary.Created != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(catalog.unitStarts) != 0 {
		t.Fatal("detail endpoint should not be called for movies without artwork")
	}
	if len(sink.created()) != 0 {
		t.Fatal("sink should not be invoked for skipped movies")
	}
}

func TestRunSkipsMoviesWithoutTrailer(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSync(1, 1, 1, 8))
	store := testsupport.NewJournal(t, cfg)

	movie := qualifyingMovie(4, "Trailerless")
	catalog := &fakeCatalog{
		pages: map[int]*tmdb.Page{1: {Page: 1, Results: []tmdb.Movie{movie}}},
		videos: map[int64][]tmdb.Video{
			4: {{Key: "behind", Name: "Behind the Scenes", Site: "YouTube", Type: "Featurette"}},
		},
	}
	sink := &fakeSink{}

	pipeline := sync.New(cfg, catalog, sink, testTable(), store)
	summary, err := pipeline.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Skipped != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	record, err := store.Get(context.Background(), 4)
	if err != nil || record == nil {
		t.Fatalf("journal row missing: record=%v err=%v", record, err)
	}
	if record.Status != journal.StatusSkipped {
		t.Fatalf("unexpected status %q", record.Status)
	}
}

func TestRunRecordsSinkFailureAndContinues(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSync(1, 1, 1, 8))
	store := testsupport.NewJournal(t, cfg)

	first := qualifyingMovie(5, "Fails")
	second := qualifyingMovie(6, "Succeeds")
	catalog := &fakeCatalog{
		pages: map[int]*tmdb.Page{1: {Page: 1, Results: []tmdb.Movie{first, second}}},
		videos: map[int64][]tmdb.Video{
			5: trailerVideos("a"),
			6: trailerVideos("b"),
		},
	}
	sink := &fakeSink{errs: map[string]error{"5": errors.New("validation rejected")}}

	pipeline := sync.New(cfg, catalog, sink, testTable(), store)
	summary, err := pipeline.Run(context.Background())
	if err != nil {
		t.Fatalf("run should not fail on sink errors: %v", err)
	}
	if summary.Failed != 1 || summary.Created != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	record, err := store.Get(context.Background(), 5)
	if err != nil || record == nil {
		t.Fatalf("journal row missing: record=%v err=%v", record, err)
	}
	if record.Status != journal.StatusFailed || record.Reason == "" {
		t.Fatalf("unexpected journal row: %#v", record)
	}
}

func TestRunRecordsDetailFetchFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSync(1, 1, 1, 8))
	store := testsupport.NewJournal(t, cfg)

	movie := qualifyingMovie(7, "Detail Error")
	catalog := &fakeCatalog{
		pages:     map[int]*tmdb.Page{1: {Page: 1, Results: []tmdb.Movie{movie}}},
		videoErrs: map[int64]error{7: errors.New("tmdb movie detail returned 500")},
	}
	sink := &fakeSink{}

	pipeline := sync.New(cfg, catalog, sink, testTable(), store)
	summary, err := pipeline.Run(context.Background())
	if err != nil {
		t.Fatalf("run should not fail on detail errors: %v", err)
	}
	if summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(sink.created()) != 0 {
		t.Fatal("sink should not be invoked when detail fetch fails")
	}
}

func TestRunFailsWhenListingFetchFails(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSync(3, 1, 1, 8))
	store := testsupport.NewJournal(t, cfg)

	movie := qualifyingMovie(8, "Page One")
	catalog := &fakeCatalog{
		pages:    map[int]*tmdb.Page{1: {Page: 1, Results: []tmdb.Movie{movie}}},
		pageErrs: map[int]error{2: errors.New("tmdb listing returned 503")},
		videos:   map[int64][]tmdb.Video{8: trailerVideos("c")},
	}
	sink := &fakeSink{}

	pipeline := sync.New(cfg, catalog, sink, testTable(), store)
	summary, err := pipeline.Run(context.Background())
	if err == nil {
		t.Fatal("expected error when a listing page fails")
	}
	if summary.Created != 1 {
		t.Fatalf("page one movies should drain before the run fails: %+v", summary)
	}
	if len(catalog.pageCalls) != 2 {
		t.Fatalf("page production should stop at the failing page: %v", catalog.pageCalls)
	}
}

func TestRunResumesPreviouslyCreatedMovies(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSync(1, 1, 1, 8))
	store := testsupport.NewJournal(t, cfg)

	movie := qualifyingMovie(9, "Already Synced")
	if err := store.Record(context.Background(), journal.Record{
		MovieID: 9,
		Title:   movie.Title,
		Status:  journal.StatusCreated,
		ItemID:  "item-9",
	}); err != nil {
		t.Fatalf("seed journal: %v", err)
	}

	catalog := &fakeCatalog{
		pages:  map[int]*tmdb.Page{1: {Page: 1, Results: []tmdb.Movie{movie}}},
		videos: map[int64][]tmdb.Video{9: trailerVideos("d")},
	}
	sink := &fakeSink{}

	pipeline := sync.New(cfg, catalog, sink, testTable(), store)
	summary, err := pipeline.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Resumed != 1 || summary.Created != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(sink.created()) != 0 {
		t.Fatal("sink should not be invoked for resumed movies")
	}
}

func TestRunSpacesUnitStarts(t *testing.T) {
	const intervalMS = 40

	cfg := testsupport.NewConfig(t, testsupport.WithSync(1, 2, intervalMS, 8))
	store := testsupport.NewJournal(t, cfg)

	movies := make([]tmdb.Movie, 0, 4)
	videos := map[int64][]tmdb.Video{}
	for id := int64(10); id < 14; id++ {
		movies = append(movies, qualifyingMovie(id, fmt.Sprintf("Movie %d", id)))
		videos[id] = trailerVideos("k")
	}
	catalog := &fakeCatalog{
		pages:  map[int]*tmdb.Page{1: {Page: 1, Results: movies}},
		videos: videos,
	}
	sink := &fakeSink{}

	pipeline := sync.New(cfg, catalog, sink, testTable(), store)
	if _, err := pipeline.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	starts := catalog.unitStarts
	if len(starts) != 4 {
		t.Fatalf("expected 4 unit starts, got %d", len(starts))
	}
	// Allow a small scheduling tolerance under the configured interval.
	minGap := time.Duration(intervalMS)*time.Millisecond - 10*time.Millisecond
	for i := 1; i < len(starts); i++ {
		if gap := starts[i].Sub(starts[i-1]); gap < minGap {
			t.Fatalf("unit starts %d and %d only %v apart", i-1, i, gap)
		}
	}
}
