package ytdlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"vidscope/internal/services"
)

const (
	defaultBinary  = "yt-dlp"
	defaultTimeout = 60 * time.Second
	defaultLimit   = 25
	maxSearchLimit = 100
)

// Config captures the yt-dlp invocation settings.
type Config struct {
	Binary         string
	TimeoutSeconds int
}

// Client fetches raw metadata documents with "yt-dlp -J". Documents are
// returned as decoded JSON maps; mapping into typed values happens in the
// caller.
type Client struct {
	binary  string
	timeout time.Duration
	runner  Runner
}

// Option customizes the client.
type Option func(*Client)

// WithRunner overrides how commands are executed (useful for tests).
func WithRunner(r Runner) Option {
	return func(c *Client) {
		if r != nil {
			c.runner = r
		}
	}
}

// NewClient builds a yt-dlp client.
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		binary:  strings.TrimSpace(cfg.Binary),
		timeout: defaultTimeout,
		runner:  ExecRunner{},
	}
	if c.binary == "" {
		c.binary = defaultBinary
	}
	if cfg.TimeoutSeconds > 0 {
		c.timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Video returns the full metadata document for a single video.
func (c *Client) Video(ctx context.Context, id string) (map[string]any, error) {
	return c.dump(ctx, "video", VideoURL(id), "--skip-download")
}

// Playlist returns a flat playlist document (entries carry ids and titles only).
func (c *Client) Playlist(ctx context.Context, id string, limit int) (map[string]any, error) {
	return c.dump(ctx, "playlist", PlaylistURL(id), "--flat-playlist", "--playlist-end", strconv.Itoa(clampLimit(limit)))
}

// Channel returns a flat listing of a channel's uploads.
func (c *Client) Channel(ctx context.Context, id string, limit int) (map[string]any, error) {
	return c.dump(ctx, "channel", ChannelURL(id), "--flat-playlist", "--playlist-end", strconv.Itoa(clampLimit(limit)))
}

// Search returns a flat listing of search results for query.
func (c *Client) Search(ctx context.Context, query string, limit int) (map[string]any, error) {
	target := fmt.Sprintf("ytsearch%d:%s", clampLimit(limit), strings.TrimSpace(query))
	return c.dump(ctx, "search", target, "--flat-playlist")
}

func (c *Client) dump(ctx context.Context, op, target string, extra ...string) (map[string]any, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	args := append([]string{"-J", "--no-warnings"}, extra...)
	args = append(args, target)

	stdout, stderr, err := c.runner.Run(ctx, c.binary, args...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, services.Wrap(services.KindProcessingFailure, services.SurfaceRemoteMetadata,
				"yt-dlp "+op, fmt.Sprintf("binary %q is not installed", c.binary), err)
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("yt-dlp %s: timed out after %s: %w", op, c.timeout, err)
		}
		if detail := stderrDetail(stderr); detail != "" {
			return nil, fmt.Errorf("yt-dlp %s: %s: %w", op, detail, err)
		}
		return nil, fmt.Errorf("yt-dlp %s: %w", op, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(stdout, &raw); err != nil {
		return nil, services.Wrap(services.KindProcessingFailure, services.SurfaceRemoteMetadata,
			"yt-dlp "+op, "parse metadata JSON", err)
	}
	return raw, nil
}

// stderrDetail keeps the ERROR lines yt-dlp prints, or the last non-empty
// line when none is tagged.
func stderrDetail(stderr []byte) string {
	var errorsOnly, last string
	for _, line := range strings.Split(string(stderr), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		last = line
		if strings.HasPrefix(line, "ERROR:") {
			if errorsOnly != "" {
				errorsOnly += "; "
			}
			errorsOnly += strings.TrimSpace(strings.TrimPrefix(line, "ERROR:"))
		}
	}
	if errorsOnly != "" {
		return errorsOnly
	}
	return last
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return min(limit, maxSearchLimit)
}

func isURL(value string) bool {
	return strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://")
}

// VideoURL turns a bare video id into a watch URL; URLs pass through.
func VideoURL(id string) string {
	id = strings.TrimSpace(id)
	if isURL(id) {
		return id
	}
	return "https://www.youtube.com/watch?v=" + id
}

// PlaylistURL turns a bare playlist id into a playlist URL; URLs pass through.
func PlaylistURL(id string) string {
	id = strings.TrimSpace(id)
	if isURL(id) {
		return id
	}
	return "https://www.youtube.com/playlist?list=" + id
}

// ChannelURL turns a handle (@name) or channel id into its uploads URL.
func ChannelURL(id string) string {
	id = strings.TrimSpace(id)
	switch {
	case isURL(id):
		return id
	case strings.HasPrefix(id, "@"):
		return "https://www.youtube.com/" + id + "/videos"
	default:
		return "https://www.youtube.com/channel/" + id + "/videos"
	}
}
