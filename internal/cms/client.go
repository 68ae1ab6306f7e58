package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const acceptVersion = "1.0.0"

// MovieFields is the field set submitted for one movie item.
type MovieFields struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	MovieID     string   `json:"movie-id"`
	Genres      []string `json:"genres"`
	BackdropURL string   `json:"backdrop-image-url"`
	PosterURL   string   `json:"poster-image-url"`
	ReleaseDate string   `json:"release-date"`
	ReleaseYear int      `json:"release-year"`
	Overview    string   `json:"overview"`
	VoteAverage float64  `json:"vote-average"`
	VoteCount   int64    `json:"vote-count"`
	Popularity  float64  `json:"popularity"`
	TrailerURL  string   `json:"trailer-url"`
	Archived    bool     `json:"_archived"`
	Draft       bool     `json:"_draft"`
}

// GenreFields is the field set submitted for one genre item (bootstrap only).
type GenreFields struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Archived bool   `json:"_archived"`
	Draft    bool   `json:"_draft"`
}

// Item is the subset of the created-item response the pipeline reports.
type Item struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Sink defines the destination operation used by the sync pipeline.
type Sink interface {
	CreateItem(ctx context.Context, collectionID string, fields any) (*Item, error)
}

// HTTPDoer describes the HTTP client used by the CMS client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client performs item creation against the CMS API.
type Client struct {
	apiToken string
	baseURL  string
	client   HTTPDoer
}

var _ Sink = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPDoer overrides the default HTTP client.
func WithHTTPDoer(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.client = doer
		}
	}
}

// New creates a CMS client.
func New(apiToken, baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	apiToken = strings.TrimSpace(apiToken)
	if apiToken == "" {
		return nil, errors.New("cms api token required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("cms base url required")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	client := &Client{
		apiToken: apiToken,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// CreateItem submits one field set to a collection's item-creation endpoint.
func (c *Client) CreateItem(ctx context.Context, collectionID string, fields any) (*Item, error) {
	collectionID = strings.TrimSpace(collectionID)
	if collectionID == "" {
		return nil, errors.New("collection id required")
	}

	body, err := json.Marshal(struct {
		Fields any `json:"fields"`
	}{Fields: fields})
	if err != nil {
		return nil, fmt.Errorf("marshal item fields: %w", err)
	}

	endpoint := fmt.Sprintf("%s/collections/%s/items", c.baseURL, collectionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Version", acceptVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("cms create returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var item Item
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("decode created item: %w", err)
	}
	return &item, nil
}
