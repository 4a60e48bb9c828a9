// Package videos fetches remote video, playlist, channel and search metadata
// and maps the provider's raw documents into canonical values.
//
// Every fetch runs under a retry policy bound to the remote-metadata surface,
// so callers see *services.ClassifiedError values (not found, private,
// rate limited, ...) rather than raw yt-dlp output. Mapping is tolerant:
// absent or mistyped fields become zero values, and only a missing id is
// treated as a failure.
package videos
