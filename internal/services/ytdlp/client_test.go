package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"
	"testing"

	"vidscope/internal/services"
)

type fakeRunner struct {
	stdout string
	stderr string
	err    error

	name string
	args []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.name = name
	f.args = args
	return []byte(f.stdout), []byte(f.stderr), f.err
}

func TestVideoBuildsDumpCommand(t *testing.T) {
	runner := &fakeRunner{stdout: `{"id":"abc123","title":"Demo"}`}
	client := NewClient(Config{Binary: "/opt/yt-dlp"}, WithRunner(runner))

	raw, err := client.Video(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Video returned error: %v", err)
	}
	if raw["title"] != "Demo" {
		t.Fatalf("unexpected document %v", raw)
	}
	if runner.name != "/opt/yt-dlp" {
		t.Fatalf("binary = %q", runner.name)
	}
	want := []string{"-J", "--no-warnings", "--skip-download", "https://www.youtube.com/watch?v=abc123"}
	if !slices.Equal(runner.args, want) {
		t.Fatalf("args = %v, want %v", runner.args, want)
	}
}

func TestPlaylistAndSearchUseFlatListing(t *testing.T) {
	runner := &fakeRunner{stdout: `{"entries":[]}`}
	client := NewClient(Config{}, WithRunner(runner))

	if _, err := client.Playlist(context.Background(), "PL123", 0); err != nil {
		t.Fatalf("Playlist: %v", err)
	}
	if runner.name != "yt-dlp" {
		t.Fatalf("default binary = %q", runner.name)
	}
	if !slices.Contains(runner.args, "--flat-playlist") || runner.args[len(runner.args)-1] != "https://www.youtube.com/playlist?list=PL123" {
		t.Fatalf("unexpected playlist args %v", runner.args)
	}
	if !slices.Contains(runner.args, "25") {
		t.Fatalf("expected default limit in %v", runner.args)
	}

	if _, err := client.Search(context.Background(), " go generics ", 500); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := runner.args[len(runner.args)-1]; got != "ytsearch100:go generics" {
		t.Fatalf("search target = %q", got)
	}
}

func TestChannelURL(t *testing.T) {
	tests := map[string]string{
		"@gopher":                 "https://www.youtube.com/@gopher/videos",
		"UC123":                   "https://www.youtube.com/channel/UC123/videos",
		"https://example.com/c/x": "https://example.com/c/x",
	}
	for in, want := range tests {
		if got := ChannelURL(in); got != want {
			t.Fatalf("ChannelURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFailureCarriesStderrDetail(t *testing.T) {
	runner := &fakeRunner{
		stderr: "[youtube] abc: Downloading webpage\nERROR: [youtube] abc: Private video. Sign in if you've been granted access\n",
		err:    errors.New("exit status 1"),
	}
	client := NewClient(Config{}, WithRunner(runner))

	_, err := client.Video(context.Background(), "abc")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Private video") || strings.Contains(err.Error(), "Downloading webpage") {
		t.Fatalf("unexpected error text %q", err)
	}
	classified := services.Classify(services.SurfaceRemoteMetadata, err)
	if classified.Kind != services.KindAccessRestricted || classified.Variant != services.VariantPrivate {
		t.Fatalf("classified as %s/%s", classified.Kind, classified.Variant)
	}
}

func TestMissingBinaryIsNotRetryable(t *testing.T) {
	runner := &fakeRunner{err: fmt.Errorf("exec: %q: %w", "yt-dlp", exec.ErrNotFound)}
	client := NewClient(Config{}, WithRunner(runner))

	_, err := client.Video(context.Background(), "abc")
	classified, ok := services.AsClassified(err)
	if !ok {
		t.Fatalf("expected classified error, got %T", err)
	}
	if classified.Kind != services.KindProcessingFailure {
		t.Fatalf("kind = %s", classified.Kind)
	}
}

func TestMalformedJSONIsProcessingFailure(t *testing.T) {
	runner := &fakeRunner{stdout: "not json"}
	client := NewClient(Config{}, WithRunner(runner))

	_, err := client.Video(context.Background(), "abc")
	if !errors.Is(err, services.ErrProcessing) {
		t.Fatalf("expected processing failure, got %v", err)
	}
}

func TestStderrDetailFallsBackToLastLine(t *testing.T) {
	if got := stderrDetail([]byte("first\n\nsecond line\n")); got != "second line" {
		t.Fatalf("stderrDetail = %q", got)
	}
	if got := stderrDetail([]byte("ERROR: one\nERROR: two")); got != "one; two" {
		t.Fatalf("stderrDetail = %q", got)
	}
}
