package videos

// Video is the canonical metadata for a single video.
type Video struct {
	ID              string   `json:"id" yaml:"id"`
	Title           string   `json:"title" yaml:"title"`
	Description     string   `json:"description,omitempty" yaml:"description,omitempty"`
	DurationSeconds int      `json:"duration_seconds" yaml:"duration_seconds"`
	ViewCount       int64    `json:"view_count" yaml:"view_count"`
	LikeCount       int64    `json:"like_count" yaml:"like_count"`
	UploadDate      string   `json:"upload_date,omitempty" yaml:"upload_date,omitempty"`
	Channel         string   `json:"channel,omitempty" yaml:"channel,omitempty"`
	ChannelID       string   `json:"channel_id,omitempty" yaml:"channel_id,omitempty"`
	Tags            []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Categories      []string `json:"categories,omitempty" yaml:"categories,omitempty"`
	ThumbnailURL    string   `json:"thumbnail_url,omitempty" yaml:"thumbnail_url,omitempty"`
	IsLive          bool     `json:"is_live" yaml:"is_live"`
}

// VideoRef is a flat listing entry (playlist item, channel upload, search hit).
type VideoRef struct {
	ID              string `json:"id" yaml:"id"`
	Title           string `json:"title" yaml:"title"`
	DurationSeconds int    `json:"duration_seconds,omitempty" yaml:"duration_seconds,omitempty"`
	Channel         string `json:"channel,omitempty" yaml:"channel,omitempty"`
	URL             string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Playlist is a playlist and its flat entries.
type Playlist struct {
	ID      string     `json:"id" yaml:"id"`
	Title   string     `json:"title" yaml:"title"`
	Channel string     `json:"channel,omitempty" yaml:"channel,omitempty"`
	Entries []VideoRef `json:"entries" yaml:"entries"`
}

// Channel is a channel and its most recent uploads.
type Channel struct {
	ID            string     `json:"id" yaml:"id"`
	Name          string     `json:"name" yaml:"name"`
	URL           string     `json:"url,omitempty" yaml:"url,omitempty"`
	FollowerCount int64      `json:"follower_count" yaml:"follower_count"`
	Entries       []VideoRef `json:"entries" yaml:"entries"`
}

// SearchResult is the ordered result list for a query.
type SearchResult struct {
	Query   string     `json:"query" yaml:"query"`
	Entries []VideoRef `json:"entries" yaml:"entries"`
}
