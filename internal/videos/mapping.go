package videos

import (
	"math"
	"strconv"
	"strings"
	"time"

	"vidscope/internal/services"
)

func mapVideo(raw map[string]any) (Video, error) {
	id := stringField(raw, "id")
	if id == "" {
		return Video{}, missingID("video")
	}
	return Video{
		ID:              id,
		Title:           stringField(raw, "title", "fulltitle"),
		Description:     stringField(raw, "description"),
		DurationSeconds: int(intField(raw, "duration")),
		ViewCount:       intField(raw, "view_count"),
		LikeCount:       intField(raw, "like_count"),
		UploadDate:      uploadDate(stringField(raw, "upload_date")),
		Channel:         stringField(raw, "channel", "uploader"),
		ChannelID:       stringField(raw, "channel_id", "uploader_id"),
		Tags:            stringSlice(raw, "tags"),
		Categories:      stringSlice(raw, "categories"),
		ThumbnailURL:    stringField(raw, "thumbnail"),
		IsLive:          boolField(raw, "is_live") || boolField(raw, "was_live"),
	}, nil
}

func mapPlaylist(raw map[string]any) (Playlist, error) {
	id := stringField(raw, "id")
	if id == "" {
		return Playlist{}, missingID("playlist")
	}
	return Playlist{
		ID:      id,
		Title:   stringField(raw, "title"),
		Channel: stringField(raw, "channel", "uploader"),
		Entries: mapEntries(raw),
	}, nil
}

func mapChannel(raw map[string]any) (Channel, error) {
	id := stringField(raw, "channel_id", "id")
	if id == "" {
		return Channel{}, missingID("channel")
	}
	name := stringField(raw, "channel", "uploader", "title")
	// Channel tab listings are titled "<name> - Videos".
	name = strings.TrimSuffix(name, " - Videos")
	return Channel{
		ID:            id,
		Name:          name,
		URL:           stringField(raw, "channel_url", "uploader_url", "webpage_url"),
		FollowerCount: intField(raw, "channel_follower_count"),
		Entries:       mapEntries(raw),
	}, nil
}

func mapSearch(query string, raw map[string]any) SearchResult {
	return SearchResult{Query: query, Entries: mapEntries(raw)}
}

func mapEntries(raw map[string]any) []VideoRef {
	items, _ := raw["entries"].([]any)
	entries := make([]VideoRef, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		id := stringField(entry, "id")
		if id == "" {
			continue
		}
		entries = append(entries, VideoRef{
			ID:              id,
			Title:           stringField(entry, "title"),
			DurationSeconds: int(intField(entry, "duration")),
			Channel:         stringField(entry, "channel", "uploader"),
			URL:             stringField(entry, "url", "webpage_url"),
		})
	}
	return entries
}

func missingID(kind string) error {
	return services.Wrap(services.KindProcessingFailure, services.SurfaceRemoteMetadata,
		"map "+kind, "metadata document has no id", nil)
}

// stringField returns the first non-empty string among keys.
func stringField(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := raw[key].(string); ok {
			if value = strings.TrimSpace(value); value != "" {
				return value
			}
		}
	}
	return ""
}

func intField(raw map[string]any, key string) int64 {
	switch value := raw[key].(type) {
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
			return 0
		}
		return int64(value)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil || n < 0 {
			return 0
		}
		return n
	default:
		return 0
	}
}

func boolField(raw map[string]any, key string) bool {
	value, _ := raw[key].(bool)
	return value
}

func stringSlice(raw map[string]any, key string) []string {
	items, ok := raw[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

// uploadDate converts yt-dlp's YYYYMMDD to ISO form; anything else is kept.
func uploadDate(value string) string {
	if value == "" {
		return ""
	}
	parsed, err := time.Parse("20060102", value)
	if err != nil {
		return value
	}
	return parsed.Format(time.DateOnly)
}
