package extract

import (
	"cmp"
	"math"

	"vidscope/internal/textutil"
)

var highlightBlocks = newBlockFormat("HIGHLIGHT", "DURATION", "DESCRIPTION", "REASON", "SCORE")

// HighlightOptions tunes highlight extraction.
type HighlightOptions struct {
	TotalSeconds int
	Count        int
}

// HighlightSpec returns the highlight cascade. A highlight is discarded when
// its score is outside [0,1], its duration is not positive, or its span does
// not fit inside [0, TotalSeconds]. Survivors are ranked by score and cut to
// Count.
func HighlightSpec(opts HighlightOptions) ContentSpec[Highlight] {
	return ContentSpec[Highlight]{
		Name:  "highlights",
		Tiers: blockTiers(highlightBlocks, buildHighlight),
		Validate: func(h Highlight) (Highlight, bool) {
			return validateHighlight(h, opts.TotalSeconds)
		},
		Compare: func(a, b Highlight) int {
			return cmp.Compare(b.Score, a.Score)
		},
		Limit: opts.Count,
	}
}

// Highlights extracts highlights from generated text.
func Highlights(text string, opts HighlightOptions) Result[Highlight] {
	return Run(text, HighlightSpec(opts))
}

func buildHighlight(f fields) (Highlight, bool) {
	start, ok := ParseTimestamp(f.get("HIGHLIGHT"))
	if !ok {
		return Highlight{}, false
	}
	duration, ok := ParseDuration(f.get("DURATION"))
	if !ok {
		return Highlight{}, false
	}
	score, ok := parseNumber(f.get("SCORE"))
	if !ok {
		return Highlight{}, false
	}
	return Highlight{
		StartSeconds:    start,
		DurationSeconds: duration,
		Description:     f.get("DESCRIPTION"),
		Reason:          f.get("REASON"),
		Score:           score,
	}, true
}

func validateHighlight(h Highlight, totalSeconds int) (Highlight, bool) {
	if math.IsNaN(h.Score) || h.Score < 0 || h.Score > 1 {
		return h, false
	}
	if h.DurationSeconds <= 0 || h.StartSeconds < 0 {
		return h, false
	}
	if totalSeconds > 0 && (h.StartSeconds > totalSeconds || h.StartSeconds+h.DurationSeconds > totalSeconds) {
		return h, false
	}
	h.Description = textutil.CollapseSpace(h.Description)
	if h.Description == "" {
		return h, false
	}
	h.Reason = textutil.CollapseSpace(h.Reason)
	h.Timestamp = FormatTimestamp(h.StartSeconds)
	h.Duration = FormatDuration(h.DurationSeconds)
	return h, true
}
