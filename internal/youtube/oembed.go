package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultOEmbedEndpoint = "https://www.youtube.com/oembed"

type Info struct {
	Title     string
	Channel   string
	Thumbnail string
}

type oEmbedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type OEmbedClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewOEmbedClient returns a client for endpoint, or the public YouTube
// oEmbed endpoint when endpoint is empty.
func NewOEmbedClient(endpoint string) *OEmbedClient {
	if endpoint == "" {
		endpoint = defaultOEmbedEndpoint
	}
	return &OEmbedClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *OEmbedClient) Fetch(ctx context.Context, videoID string) (*Info, error) {
	q := url.Values{}
	q.Set("url", WatchURL(videoID))
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oembed returned status %d", resp.StatusCode)
	}

	var data oEmbedResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	info := &Info{
		Title:     data.Title,
		Channel:   data.AuthorName,
		Thumbnail: data.ThumbnailURL,
	}
	if info.Title == "" {
		info.Title = "Unknown Title"
	}
	if info.Thumbnail == "" {
		info.Thumbnail = ThumbnailURL(videoID)
	}
	return info, nil
}
