// Package ytdlp shells out to yt-dlp for remote video, playlist, channel and
// search metadata. It returns the decoded "-J" documents untouched; failures
// carry yt-dlp's ERROR lines so the remote-metadata classifier can categorise
// them.
package ytdlp
