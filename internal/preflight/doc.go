// Package preflight runs the readiness checks behind "vidscope doctor":
// the yt-dlp binary, generator credentials and reachability, and the
// metrics textfile destination.
//
// Checks never return errors; each reports a Result with a human-readable
// detail so the CLI can render every outcome at once.
package preflight
