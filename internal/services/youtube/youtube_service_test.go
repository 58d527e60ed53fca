package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	apperrors "github.com/tunecord/tunecord/internal/errors"
	"github.com/tunecord/tunecord/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error"})
}

func TestRelatedRequiresAPIKey(t *testing.T) {
	svc := NewService("", testLogger())

	if _, err := svc.Related(context.Background(), "abc"); !errors.Is(err, apperrors.ErrNoAPIKey) {
		t.Errorf("err = %v; want ErrNoAPIKey", err)
	}
	if _, err := svc.Search(context.Background(), "query", 5); !errors.Is(err, apperrors.ErrNoAPIKey) {
		t.Errorf("Search err = %v; want ErrNoAPIKey", err)
	}
	if svc.Configured() {
		t.Error("a keyless service should report unconfigured")
	}
}

func TestRelatedQueryParameters(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `{"items":[{"id":{"videoId":"v1"},"snippet":{"title":"T","channelTitle":"C"}}]}`)
	}))
	defer server.Close()

	svc := NewService("secret", testLogger(), WithSearchURL(server.URL))
	items, err := svc.Related(context.Background(), "seed123")
	if err != nil {
		t.Fatalf("Related: %v", err)
	}

	if gotQuery.Get("relatedToVideoId") != "seed123" {
		t.Errorf("relatedToVideoId = %q; want seed123", gotQuery.Get("relatedToVideoId"))
	}
	if gotQuery.Get("videoCategoryId") != "10" {
		t.Errorf("videoCategoryId = %q; want the music category", gotQuery.Get("videoCategoryId"))
	}
	if gotQuery.Get("key") != "secret" {
		t.Errorf("key = %q; want the API key", gotQuery.Get("key"))
	}
	if len(items) != 1 || items[0].ID.VideoID != "v1" || items[0].Snippet.Title != "T" {
		t.Errorf("items = %+v; want the decoded result", items)
	}
}

func TestRelatedCachesResults(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		fmt.Fprint(w, `{"items":[{"id":{"videoId":"v1"},"snippet":{"title":"T","channelTitle":"C"}}]}`)
	}))
	defer server.Close()

	svc := NewService("key", testLogger(), WithSearchURL(server.URL))
	ctx := context.Background()

	svc.Related(ctx, "a")
	svc.Related(ctx, "a")
	if atomic.LoadInt64(&hits) != 1 {
		t.Errorf("requests = %d; want 1, repeat served from cache", hits)
	}

	svc.Related(ctx, "b")
	if atomic.LoadInt64(&hits) != 2 {
		t.Errorf("requests = %d; want 2, different id misses", hits)
	}
}

func TestRelatedBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	svc := NewService("key", testLogger(), WithSearchURL(server.URL))
	if _, err := svc.Related(context.Background(), "a"); !errors.Is(err, apperrors.ErrBadStatus) {
		t.Errorf("err = %v; want ErrBadStatus", err)
	}
}

func TestRelatedEmptyEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	svc := NewService("key", testLogger(), WithSearchURL(server.URL))
	if _, err := svc.Related(context.Background(), "a"); !errors.Is(err, apperrors.ErrEmptyEnvelope) {
		t.Errorf("err = %v; want ErrEmptyEnvelope for a missing items field", err)
	}
}

func TestSearchQueryParameters(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `{"items":[]}`)
	}))
	defer server.Close()

	svc := NewService("key", testLogger(), WithSearchURL(server.URL))
	items, err := svc.Search(context.Background(), "lofi beats", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items = %v; want an empty slice", items)
	}
	if gotQuery.Get("q") != "lofi beats" {
		t.Errorf("q = %q; want the query", gotQuery.Get("q"))
	}
	if gotQuery.Get("maxResults") != "3" {
		t.Errorf("maxResults = %q; want 3", gotQuery.Get("maxResults"))
	}
}

func TestWatchURL(t *testing.T) {
	if got := WatchURL("abc"); got != "https://www.youtube.com/watch?v=abc" {
		t.Errorf("WatchURL = %q", got)
	}
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/abc123", "abc123"},
		{"https://www.youtube.com/playlist?list=PL123", ""},
		{"not a url at all ://", ""},
	}
	for _, tt := range tests {
		if got := ExtractVideoID(tt.input); got != tt.want {
			t.Errorf("ExtractVideoID(%q) = %q; want %q", tt.input, got, tt.want)
		}
	}
}
