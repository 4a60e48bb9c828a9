// Package extract turns semi-structured model output into validated records.
//
// Each content type (chapters, keywords, topics, highlights) is described by
// a ContentSpec: an ordered list of parsing tiers, a validator, an optional
// de-duplication key, a ranking comparator, a truncation limit and a
// fallback. Run walks the tiers in order; the first tier whose validated
// output reaches its minimum wins. Block tiers read labelled records such as
//
//	HIGHLIGHT: 02:15
//	DURATION: 30
//	DESCRIPTION: Live demo of the failover
//	REASON: Shows the feature working end to end
//	SCORE: 0.92
//
// first strictly (labels in order on consecutive lines), then tolerating
// indentation and blank lines, then with a case-insensitive scan that ignores
// markdown emphasis. Keywords try a JSON array before the block tiers.
//
// Validation policy differs by type. Keyword relevance and frequency are
// clamped. Topic confidence and highlight score outside [0,1] discard the
// record, as do timestamps outside the media duration. Ranking uses a stable
// sort so ties keep first-seen order, and truncation happens after ranking.
//
// Extraction never fails. When no tier succeeds, keywords, topics and
// highlights degrade to an empty slice, and chapters degrade to evenly spaced
// placeholders. Summaries have no cascade: see ParseSummary.
package extract
