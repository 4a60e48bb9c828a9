package videos

import (
	"context"
	"log/slog"
	"strings"

	"vidscope/internal/logging"
	"vidscope/internal/retry"
	"vidscope/internal/services"
)

const defaultListLimit = 25

// Source returns raw provider documents. *ytdlp.Client satisfies it.
type Source interface {
	Video(ctx context.Context, id string) (map[string]any, error)
	Playlist(ctx context.Context, id string, limit int) (map[string]any, error)
	Channel(ctx context.Context, id string, limit int) (map[string]any, error)
	Search(ctx context.Context, query string, limit int) (map[string]any, error)
}

// Options configures a Service. Zero values select defaults.
type Options struct {
	Policy    retry.Policy
	ListLimit int
	Logger    *slog.Logger
}

// Service fetches canonical metadata from a Source under retry.
type Service struct {
	source Source
	policy retry.Policy
	limit  int
	logger *slog.Logger
}

// New builds a Service around source.
func New(source Source, opts Options) *Service {
	logger := logging.NewComponentLogger(opts.Logger, "videos")

	policy := opts.Policy
	if policy.MaxAttempts == 0 && policy.InitialDelay == 0 {
		policy = retry.DefaultPolicy(services.SurfaceRemoteMetadata)
	}
	policy = policy.WithSurface(services.SurfaceRemoteMetadata)
	if policy.Logger == nil {
		policy.Logger = logger
	}

	limit := opts.ListLimit
	if limit <= 0 {
		limit = defaultListLimit
	}
	return &Service{source: source, policy: policy, limit: limit, logger: logger}
}

// FetchVideo returns the metadata for one video id or URL.
func (s *Service) FetchVideo(ctx context.Context, id string) (Video, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Video{}, services.Invalid("video id is required")
	}
	ctx = services.WithOperation(ctx, "fetch video")
	return fetch(ctx, s, func(ctx context.Context) (map[string]any, error) {
		return s.source.Video(ctx, id)
	}, mapVideo)
}

// FetchPlaylist returns a playlist and up to the configured number of entries.
func (s *Service) FetchPlaylist(ctx context.Context, id string) (Playlist, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Playlist{}, services.Invalid("playlist id is required")
	}
	ctx = services.WithOperation(ctx, "fetch playlist")
	return fetch(ctx, s, func(ctx context.Context) (map[string]any, error) {
		return s.source.Playlist(ctx, id, s.limit)
	}, mapPlaylist)
}

// FetchChannel returns a channel (handle, id or URL) and its recent uploads.
func (s *Service) FetchChannel(ctx context.Context, id string) (Channel, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Channel{}, services.Invalid("channel id is required")
	}
	ctx = services.WithOperation(ctx, "fetch channel")
	return fetch(ctx, s, func(ctx context.Context) (map[string]any, error) {
		return s.source.Channel(ctx, id, s.limit)
	}, mapChannel)
}

// Search returns up to limit results for query (zero selects the configured
// list limit).
func (s *Service) Search(ctx context.Context, query string, limit int) (SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchResult{}, services.Invalid("search query is required")
	}
	if limit < 0 {
		return SearchResult{}, services.Invalid("search limit must not be negative")
	}
	if limit == 0 {
		limit = s.limit
	}
	ctx = services.WithOperation(ctx, "search")
	return fetch(ctx, s, func(ctx context.Context) (map[string]any, error) {
		return s.source.Search(ctx, query, limit)
	}, func(raw map[string]any) (SearchResult, error) {
		return mapSearch(query, raw), nil
	})
}

func fetch[T any](ctx context.Context, s *Service, op func(context.Context) (map[string]any, error), mapper func(map[string]any) (T, error)) (T, error) {
	var zero T
	if s.source == nil {
		op, _ := services.OperationFromContext(ctx)
		return zero, services.Wrap(services.KindProcessingFailure, services.SurfaceRemoteMetadata,
			op, "no metadata source configured", nil)
	}
	raw, err := retry.Do(ctx, s.policy, op)
	if err != nil {
		logging.WithContext(ctx, s.logger).DebugContext(ctx, "metadata fetch failed",
			logging.String(logging.FieldSurface, string(services.SurfaceRemoteMetadata)),
			logging.String(logging.FieldErrorKind, string(services.KindOf(err))),
			logging.Error(err),
		)
		return zero, err
	}
	value, err := mapper(raw)
	if err != nil {
		return zero, err
	}
	logging.WithContext(ctx, s.logger).DebugContext(ctx, "metadata fetched")
	return value, nil
}
