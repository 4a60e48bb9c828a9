package videos

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"vidscope/internal/retry"
	"vidscope/internal/services"
)

type fakeSource struct {
	mu       sync.Mutex
	docs     map[string]map[string]any
	failures []error
	calls    int
	limits   []int
}

func (f *fakeSource) next(key string, limit int) (map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.limits = append(f.limits, limit)
	if len(f.failures) > 0 {
		err := f.failures[0]
		f.failures = f.failures[1:]
		return nil, err
	}
	return f.docs[key], nil
}

func (f *fakeSource) Video(_ context.Context, id string) (map[string]any, error) {
	return f.next("video:"+id, 0)
}

func (f *fakeSource) Playlist(_ context.Context, id string, limit int) (map[string]any, error) {
	return f.next("playlist:"+id, limit)
}

func (f *fakeSource) Channel(_ context.Context, id string, limit int) (map[string]any, error) {
	return f.next("channel:"+id, limit)
}

func (f *fakeSource) Search(_ context.Context, query string, limit int) (map[string]any, error) {
	return f.next("search:"+query, limit)
}

func testPolicy() retry.Policy {
	p := retry.DefaultPolicy(services.SurfaceRemoteMetadata)
	p.Sleep = func(context.Context, time.Duration) error { return nil }
	return p
}

func videoDoc() map[string]any {
	return map[string]any{
		"id":          "abc123",
		"title":       "Intro to Go",
		"description": "Basics",
		"duration":    float64(754),
		"view_count":  float64(1200),
		"like_count":  float64(85),
		"upload_date": "20240131",
		"uploader":    "Gopher TV",
		"channel_id":  "UC42",
		"tags":        []any{"go", " ", "golang"},
		"categories":  []any{"Education"},
		"thumbnail":   "https://i.ytimg.com/vi/abc123/hq.jpg",
		"is_live":     false,
	}
}

func TestFetchVideoMapsDocument(t *testing.T) {
	source := &fakeSource{docs: map[string]map[string]any{"video:abc123": videoDoc()}}
	svc := New(source, Options{Policy: testPolicy()})

	video, err := svc.FetchVideo(context.Background(), " abc123 ")
	if err != nil {
		t.Fatalf("FetchVideo: %v", err)
	}
	if video.ID != "abc123" || video.Title != "Intro to Go" || video.DurationSeconds != 754 {
		t.Fatalf("unexpected video %+v", video)
	}
	if video.ViewCount != 1200 || video.LikeCount != 85 {
		t.Fatalf("unexpected counts %+v", video)
	}
	if video.UploadDate != "2024-01-31" {
		t.Fatalf("upload date = %q", video.UploadDate)
	}
	if video.Channel != "Gopher TV" || video.ChannelID != "UC42" {
		t.Fatalf("unexpected channel %q/%q", video.Channel, video.ChannelID)
	}
	if !slices.Equal(video.Tags, []string{"go", "golang"}) {
		t.Fatalf("tags = %v", video.Tags)
	}
	if video.ThumbnailURL == "" || video.IsLive {
		t.Fatalf("unexpected thumbnail/live %+v", video)
	}
}

func TestFetchVideoRetriesTransientFailures(t *testing.T) {
	source := &fakeSource{
		docs:     map[string]map[string]any{"video:abc123": videoDoc()},
		failures: []error{errors.New("yt-dlp video: Read timed out: exit status 1")},
	}
	svc := New(source, Options{Policy: testPolicy()})

	if _, err := svc.FetchVideo(context.Background(), "abc123"); err != nil {
		t.Fatalf("FetchVideo: %v", err)
	}
	if source.calls != 2 {
		t.Fatalf("calls = %d, want 2", source.calls)
	}
}

func TestFetchVideoClassifiesPermanentFailures(t *testing.T) {
	tests := []struct {
		name    string
		message string
		kind    services.ErrorKind
		variant string
	}{
		{"not found", "yt-dlp video: [youtube] zzz: Video not found: exit status 1", services.KindRemoteNotFound, ""},
		{"private", "yt-dlp video: [youtube] zzz: Private video: exit status 1", services.KindAccessRestricted, services.VariantPrivate},
		{"age", "yt-dlp video: Sign in to confirm your age: exit status 1", services.KindAccessRestricted, services.VariantAgeGated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &fakeSource{failures: []error{errors.New(tt.message)}}
			svc := New(source, Options{Policy: testPolicy()})

			_, err := svc.FetchVideo(context.Background(), "zzz")
			classified, ok := services.AsClassified(err)
			if !ok {
				t.Fatalf("expected classified error, got %v", err)
			}
			if classified.Kind != tt.kind || classified.Variant != tt.variant {
				t.Fatalf("classified as %s/%s", classified.Kind, classified.Variant)
			}
			if classified.Surface != services.SurfaceRemoteMetadata {
				t.Fatalf("surface = %s", classified.Surface)
			}
			if source.calls != 1 {
				t.Fatalf("permanent failure retried: %d calls", source.calls)
			}
		})
	}
}

func TestRateLimitedExhaustsAttempts(t *testing.T) {
	failure := errors.New("HTTP Error 429: Too Many Requests")
	source := &fakeSource{failures: []error{failure, failure, failure}}
	svc := New(source, Options{Policy: testPolicy()})

	_, err := svc.FetchVideo(context.Background(), "abc")
	if !errors.Is(err, services.ErrRateLimited) {
		t.Fatalf("expected rate limited, got %v", err)
	}
	if source.calls != 3 {
		t.Fatalf("calls = %d, want 3", source.calls)
	}
}

func TestEmptyInputsAreValidationFailures(t *testing.T) {
	source := &fakeSource{}
	svc := New(source, Options{Policy: testPolicy()})
	ctx := context.Background()

	checks := map[string]error{}
	_, checks["video"] = svc.FetchVideo(ctx, "")
	_, checks["playlist"] = svc.FetchPlaylist(ctx, "  ")
	_, checks["channel"] = svc.FetchChannel(ctx, "")
	_, checks["search"] = svc.Search(ctx, "", 5)
	_, checks["negative limit"] = svc.Search(ctx, "go", -1)

	for name, err := range checks {
		if !errors.Is(err, services.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
	if source.calls != 0 {
		t.Fatalf("source called %d times for invalid input", source.calls)
	}
}

func TestMissingIDIsProcessingFailure(t *testing.T) {
	source := &fakeSource{docs: map[string]map[string]any{"video:abc": {"title": "no id"}}}
	svc := New(source, Options{Policy: testPolicy()})

	_, err := svc.FetchVideo(context.Background(), "abc")
	if !errors.Is(err, services.ErrProcessing) {
		t.Fatalf("expected processing failure, got %v", err)
	}
}

func TestFetchPlaylistAndChannel(t *testing.T) {
	entries := []any{
		map[string]any{"id": "v1", "title": "First", "duration": float64(60), "url": "https://youtu.be/v1"},
		"garbage",
		map[string]any{"title": "missing id"},
		map[string]any{"id": "v2", "title": "Second"},
	}
	source := &fakeSource{docs: map[string]map[string]any{
		"playlist:PL1": {"id": "PL1", "title": "Course", "uploader": "Gopher TV", "entries": entries},
		"channel:@gopher": {
			"id":                     "UC42",
			"channel_id":             "UC42",
			"title":                  "Gopher TV - Videos",
			"channel_url":            "https://www.youtube.com/channel/UC42",
			"channel_follower_count": float64(5000),
			"entries":                entries,
		},
	}}
	svc := New(source, Options{Policy: testPolicy(), ListLimit: 10})

	playlist, err := svc.FetchPlaylist(context.Background(), "PL1")
	if err != nil {
		t.Fatalf("FetchPlaylist: %v", err)
	}
	if playlist.Title != "Course" || playlist.Channel != "Gopher TV" || len(playlist.Entries) != 2 {
		t.Fatalf("unexpected playlist %+v", playlist)
	}
	if playlist.Entries[0].DurationSeconds != 60 || playlist.Entries[1].ID != "v2" {
		t.Fatalf("unexpected entries %+v", playlist.Entries)
	}

	channel, err := svc.FetchChannel(context.Background(), "@gopher")
	if err != nil {
		t.Fatalf("FetchChannel: %v", err)
	}
	if channel.Name != "Gopher TV" || channel.FollowerCount != 5000 || len(channel.Entries) != 2 {
		t.Fatalf("unexpected channel %+v", channel)
	}
	if !slices.Equal(source.limits, []int{10, 10}) {
		t.Fatalf("limits = %v", source.limits)
	}
}

func TestSearchDefaultsLimit(t *testing.T) {
	source := &fakeSource{docs: map[string]map[string]any{
		"search:go": {"entries": []any{map[string]any{"id": "v1", "title": "Go"}}},
	}}
	svc := New(source, Options{Policy: testPolicy()})

	result, err := svc.Search(context.Background(), " go ", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Query != "go" || len(result.Entries) != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if source.limits[0] != defaultListLimit {
		t.Fatalf("limit = %d, want %d", source.limits[0], defaultListLimit)
	}
}

func TestSearchWithNoEntriesReturnsEmptySlice(t *testing.T) {
	source := &fakeSource{docs: map[string]map[string]any{"search:nothing": {}}}
	svc := New(source, Options{Policy: testPolicy()})

	result, err := svc.Search(context.Background(), "nothing", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Entries == nil || len(result.Entries) != 0 {
		t.Fatalf("expected empty non-nil entries, got %#v", result.Entries)
	}
}

func TestNilSourceFails(t *testing.T) {
	svc := New(nil, Options{Policy: testPolicy()})
	if _, err := svc.FetchVideo(context.Background(), "abc"); !errors.Is(err, services.ErrProcessing) {
		t.Fatalf("expected processing failure, got %v", err)
	}
}

func TestUploadDate(t *testing.T) {
	tests := map[string]string{
		"20240131":   "2024-01-31",
		"":           "",
		"2024-01-31": "2024-01-31",
		"garbage":    "garbage",
	}
	for in, want := range tests {
		if got := uploadDate(in); got != want {
			t.Fatalf("uploadDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFetchFailureLogsSurfaceAndComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	source := &fakeSource{failures: []error{errors.New("ERROR: [youtube] abc123: Video not found")}}
	svc := New(source, Options{Policy: testPolicy(), Logger: logger})

	if _, err := svc.FetchVideo(context.Background(), "abc123"); err == nil {
		t.Fatal("expected not-found error")
	}
	out := buf.String()
	for _, want := range []string{`"component":"videos"`, `"surface":"remote-metadata"`, `"error_kind":"remote-not-found"`, `"operation":"fetch video"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected log output to contain %s, got %s", want, out)
		}
	}
}
