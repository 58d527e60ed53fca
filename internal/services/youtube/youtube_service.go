package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/tunecord/tunecord/internal/errors"
	"github.com/tunecord/tunecord/internal/utils"
	"github.com/tunecord/tunecord/pkg/logger"
)

const (
	defaultSearchURL = "https://youtube.googleapis.com/youtube/v3/search"
	musicCategoryID  = "10"
)

// Service queries the YouTube Data API v3
type Service struct {
	apiKey     string
	searchURL  string
	httpClient *http.Client
	cache      *utils.Cache[string, []SearchItem]
	logger     *logger.Logger
}

// Option overrides service defaults
type Option func(*Service)

// WithSearchURL overrides the search endpoint, used by tests
func WithSearchURL(u string) Option {
	return func(s *Service) { s.searchURL = u }
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(s *Service) { s.httpClient = c }
}

// NewService creates a YouTube client. An empty apiKey produces an
// unconfigured service: calls fail fast without touching the network.
func NewService(apiKey string, log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		apiKey:     apiKey,
		searchURL:  defaultSearchURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      utils.NewCache[string, []SearchItem](500, 5*time.Minute),
		logger:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configured reports whether an API key is available
func (s *Service) Configured() bool {
	return s.apiKey != ""
}

// SearchItem is one result of a search response
type SearchItem struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet *Snippet `json:"snippet"`
}

// Snippet carries the content descriptor of a search result
type Snippet struct {
	Title        string `json:"title"`
	ChannelTitle string `json:"channelTitle"`
}

type searchResponse struct {
	Items []SearchItem `json:"items"`
}

// Related returns videos related to the given video id, restricted to
// the music category
func (s *Service) Related(ctx context.Context, videoID string) ([]SearchItem, error) {
	if !s.Configured() {
		return nil, apperrors.ErrNoAPIKey
	}

	cacheKey := "related:" + videoID
	if items, ok := s.cache.Get(cacheKey); ok {
		s.logger.Debug("Cache hit for related videos")
		return items, nil
	}

	val := url.Values{}
	val.Set("part", "snippet")
	val.Set("relatedToVideoId", videoID)
	val.Set("type", "video")
	val.Set("videoCategoryId", musicCategoryID)
	val.Set("key", s.apiKey)

	var body searchResponse
	if err := utils.GetJSON(ctx, s.httpClient, s.searchURL+"?"+val.Encode(), &body); err != nil {
		return nil, fmt.Errorf("related videos request failed: %w", err)
	}
	if body.Items == nil {
		return nil, apperrors.ErrEmptyEnvelope
	}

	s.cache.Set(cacheKey, body.Items)
	return body.Items, nil
}

// Search returns videos matching a free-text query
func (s *Service) Search(ctx context.Context, query string, maxResults int) ([]SearchItem, error) {
	if !s.Configured() {
		return nil, apperrors.ErrNoAPIKey
	}
	if maxResults <= 0 || maxResults > 25 {
		maxResults = 10
	}

	val := url.Values{}
	val.Set("part", "snippet")
	val.Set("type", "video")
	val.Set("maxResults", fmt.Sprint(maxResults))
	val.Set("q", query)
	val.Set("key", s.apiKey)

	var body searchResponse
	if err := utils.GetJSON(ctx, s.httpClient, s.searchURL+"?"+val.Encode(), &body); err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	if body.Items == nil {
		return nil, apperrors.ErrEmptyEnvelope
	}
	return body.Items, nil
}

// WatchURL returns the canonical watch URL for a video id
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// ExtractVideoID pulls the video id out of a watch or short URL.
// Returns empty string when the input carries none.
func ExtractVideoID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	if id := u.Query().Get("v"); id != "" {
		return id
	}
	// youtu.be/<id> and /shorts/<id> carry the id in the path
	path := strings.Trim(u.Path, "/")
	if u.Host == "youtu.be" {
		return path
	}
	if rest, ok := strings.CutPrefix(path, "shorts/"); ok {
		return rest
	}
	return ""
}
