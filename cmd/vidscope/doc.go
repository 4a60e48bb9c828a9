// Command vidscope analyzes video transcripts with a language model and
// fetches video, playlist, channel and search metadata through yt-dlp.
//
// Analysis commands read the transcript from --transcript or stdin. Results
// render as tables by default, or as JSON/YAML with --output.
package main
