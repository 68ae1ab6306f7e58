package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Movie represents a single catalog entry from the listing endpoint.
type Movie struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	GenreIDs     []int64 `json:"genre_ids"`
	Popularity   float64 `json:"popularity"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int64   `json:"vote_count"`
}

// Page models the paginated listing response.
type Page struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Video describes one entry of a movie's embedded video collection.
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// Genre is one entry of the movie genre taxonomy.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// videoTypeTrailer is the type tag TMDB assigns to trailer videos.
const videoTypeTrailer = "Trailer"

// Catalog defines the TMDB operations used by the sync pipeline.
type Catalog interface {
	PopularMovies(ctx context.Context, page int) (*Page, error)
	MovieVideos(ctx context.Context, movieID int64) ([]Video, error)
}

// Client provides access to the TMDB API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
}

var _ Catalog = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// PopularMovies fetches one page of the popular-movies listing.
func (c *Client) PopularMovies(ctx context.Context, page int) (*Page, error) {
	if page < 1 {
		return nil, errors.New("page must be positive")
	}
	endpoint, err := url.Parse(c.baseURL + "/movie/popular")
	if err != nil {
		return nil, fmt.Errorf("parse tmdb url: %w", err)
	}
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("page", strconv.Itoa(page))
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	var payload Page
	if err := c.getJSON(ctx, endpoint.String(), "tmdb listing", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// MovieVideos fetches the embedded video collection for a movie.
func (c *Client) MovieVideos(ctx context.Context, movieID int64) ([]Video, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	endpoint, err := url.Parse(fmt.Sprintf("%s/movie/%d", c.baseURL, movieID))
	if err != nil {
		return nil, fmt.Errorf("parse tmdb url: %w", err)
	}
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("append_to_response", "videos")
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	var payload struct {
		Videos struct {
			Results []Video `json:"results"`
		} `json:"videos"`
	}
	if err := c.getJSON(ctx, endpoint.String(), "tmdb movie detail", &payload); err != nil {
		return nil, err
	}
	return payload.Videos.Results, nil
}

// MovieGenres fetches the full movie genre taxonomy.
func (c *Client) MovieGenres(ctx context.Context) ([]Genre, error) {
	endpoint, err := url.Parse(c.baseURL + "/genre/movie/list")
	if err != nil {
		return nil, fmt.Errorf("parse tmdb url: %w", err)
	}
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	var payload struct {
		Genres []Genre `json:"genres"`
	}
	if err := c.getJSON(ctx, endpoint.String(), "tmdb genre list", &payload); err != nil {
		return nil, err
	}
	return payload.Genres, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, label string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned %d (latency=%v)", label, resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", label, err)
	}
	return nil
}

// FirstTrailer returns the first trailer-typed entry of a video collection.
func FirstTrailer(videos []Video) (Video, bool) {
	for _, video := range videos {
		if video.Type == videoTypeTrailer {
			return video, true
		}
	}
	return Video{}, false
}
