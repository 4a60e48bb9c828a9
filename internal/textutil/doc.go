// Package textutil provides the small text helpers shared by the extractor
// and the analyzer: whitespace word counts, word-boundary truncation, porter
// stemmed phrase frequency, and title casing.
//
// Tokenization lowercases text and splits on non-alphanumeric runs. Stemming
// uses the Porter algorithm so "running", "runs" and "run" count as the same
// term when estimating how often a keyword occurs in a transcript.
package textutil
