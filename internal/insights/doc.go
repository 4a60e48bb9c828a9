// Package insights exposes the transcript analyses: Summarize, Chapters,
// Keywords, Topics and Highlights.
//
// Every operation validates its input, bounds the transcript, builds a prompt
// that spells out the exact output grammar, calls the configured Generator
// through retry.Do on the ai-generation surface, and hands the text to the
// extract package. Generator failures are returned as classified errors after
// retries are exhausted. Output that cannot be parsed is never an error: the
// extractor degrades it and the analyzer logs a warning.
package insights
