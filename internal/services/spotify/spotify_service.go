package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/tunecord/tunecord/internal/domain/entities"
	"github.com/tunecord/tunecord/internal/domain/valueobjects"
	"github.com/tunecord/tunecord/pkg/logger"
)

const (
	tokenURL = "https://accounts.spotify.com/api/token"
	apiURL   = "https://api.spotify.com/v1"
)

// Service handles Spotify API operations with client-credentials auth
type Service struct {
	clientID     string
	clientSecret string
	baseURL      string
	tokenURL     string
	accessToken  string
	tokenExpiry  time.Time
	tokenMu      sync.Mutex
	logger       *logger.Logger
	httpClient   *http.Client
}

// Track represents a Spotify track
type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Artists    []Artist `json:"artists"`
	DurationMs int      `json:"duration_ms"`
	URI        string   `json:"uri"`
}

// Artist represents a Spotify artist
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RecommendationsResponse represents the recommendations envelope
type RecommendationsResponse struct {
	Tracks []Track `json:"tracks"`
}

// TokenResponse represents Spotify token response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Option overrides service defaults
type Option func(*Service)

// WithBaseURL overrides the API endpoint, used by tests
func WithBaseURL(u string) Option {
	return func(s *Service) { s.baseURL = u }
}

// WithTokenURL overrides the auth endpoint, used by tests
func WithTokenURL(u string) Option {
	return func(s *Service) { s.tokenURL = u }
}

// NewService creates a new Spotify service
func NewService(clientID, clientSecret string, log *logger.Logger, opts ...Option) (*Service, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("spotify credentials not provided")
	}

	s := &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      apiURL,
		tokenURL:     tokenURL,
		logger:       log,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// refreshAccessToken gets a new access token from Spotify
func (s *Service) refreshAccessToken(ctx context.Context) error {
	data := url.Values{}
	data.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}

	auth := base64.StdEncoding.EncodeToString([]byte(s.clientID + ":" + s.clientSecret))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("spotify auth failed: %s - %s", resp.Status, string(body))
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return err
	}

	s.accessToken = tokenResp.AccessToken
	s.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)

	s.logger.Debug("Spotify access token refreshed")
	return nil
}

// ensureValidToken refreshes the access token when it nears expiry
func (s *Service) ensureValidToken(ctx context.Context) error {
	s.tokenMu.Lock()
	defer s.tokenMu.Unlock()

	if time.Now().After(s.tokenExpiry.Add(-5 * time.Minute)) {
		return s.refreshAccessToken(ctx)
	}
	return nil
}

// makeRequest makes an authenticated request to the Spotify API
func (s *Service) makeRequest(ctx context.Context, endpoint string) ([]byte, error) {
	if err := s.ensureValidToken(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("spotify API error: %s - %s", resp.Status, string(body))
	}

	return io.ReadAll(resp.Body)
}

// RelatedTracks returns catalog tracks related to the given artist
// and track seeds, mapped to queue entities
func (s *Service) RelatedTracks(ctx context.Context, seedArtistID, seedTrackID string) ([]*entities.Track, error) {
	val := url.Values{}
	val.Set("seed_artists", seedArtistID)
	val.Set("seed_tracks", seedTrackID)
	val.Set("limit", "1")

	body, err := s.makeRequest(ctx, s.baseURL+"/recommendations?"+val.Encode())
	if err != nil {
		return nil, err
	}

	var resp RecommendationsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	tracks := make([]*entities.Track, 0, len(resp.Tracks))
	for _, t := range resp.Tracks {
		tracks = append(tracks, t.ToEntity())
	}
	return tracks, nil
}

// ToEntity maps a Spotify track to a queue entity
func (t *Track) ToEntity() *entities.Track {
	track := entities.NewTrack(t.ID, valueobjects.SourceTypeSpotify, t.Name)
	track.SpotifyID = t.ID
	track.URI = t.URI
	track.Length = t.DurationMs
	if len(t.Artists) > 0 {
		track.Artist = t.Artists[0].Name
		for _, a := range t.Artists {
			track.ArtistIDs = append(track.ArtistIDs, a.ID)
		}
	}
	return track
}
