package gita

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultSource is the canonical chapter feed: a single JSON document holding
// every chapter of the Gita with its verses in reading order.
const DefaultSource = "https://raw.githubusercontent.com/hurbes/bhagavad-gita-data/master/chapters.json"

// Verse is one unit of text within a chapter, identified by its position.
type Verse struct {
	Text string `json:"text"`
}

// Chapter is a named, ordered sequence of verses. Immutable once fetched.
type Chapter struct {
	Name   string  `json:"name"`
	Verses []Verse `json:"verses"`
}

// Client fetches the chapter feed. The feed is read exactly once per session;
// there is no retry or caching layer.
type Client struct {
	httpClient *http.Client
	source     string
}

// NewClient returns a client for the given feed URL. An empty source falls
// back to DefaultSource.
func NewClient(source string) *Client {
	if source == "" {
		source = DefaultSource
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		source:     source,
	}
}

// Source returns the feed URL the client was built with.
func (c *Client) Source() string {
	return c.source
}

// FetchChapters performs the one-shot GET against the chapter feed and
// decodes the full chapter list.
func (c *Client) FetchChapters(ctx context.Context) ([]Chapter, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.source, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch chapters: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("chapter feed returned status %d: %s", resp.StatusCode, string(body))
	}

	var chapters []Chapter
	if err := json.NewDecoder(resp.Body).Decode(&chapters); err != nil {
		return nil, fmt.Errorf("decode chapter feed: %w", err)
	}

	return chapters, nil
}

// TotalVerses counts the verses across all chapters.
func TotalVerses(chapters []Chapter) int {
	total := 0
	for _, ch := range chapters {
		total += len(ch.Verses)
	}
	return total
}
