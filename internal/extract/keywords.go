package extract

import (
	"cmp"
	"encoding/json"
	"math"
	"strings"

	"vidscope/internal/textutil"
)

var keywordBlocks = newBlockFormat("KEYWORD", "RELEVANCE", "FREQUENCY")

const keywordJSONMinimum = 3

// KeywordOptions tunes keyword extraction.
type KeywordOptions struct {
	// Count is the number of keywords requested; results are truncated to it.
	Count int
	// Transcript is used to estimate frequency when the model omits it.
	Transcript string
}

// KeywordSpec returns the cascade for keywords: a JSON tier that needs
// min(3, count) valid entries, then the labelled-block tiers. Relevance is
// clamped into [0,1] and frequency to at least 1. Keywords never fall back to
// synthetic records.
func KeywordSpec(opts KeywordOptions) ContentSpec[Keyword] {
	jsonMin := keywordJSONMinimum
	if opts.Count > 0 && opts.Count < jsonMin {
		jsonMin = opts.Count
	}
	var index *textutil.StemIndex
	if strings.TrimSpace(opts.Transcript) != "" {
		index = textutil.NewStemIndex(opts.Transcript)
	}

	tiers := []Tier[Keyword]{{Name: "json", Min: jsonMin, Parse: parseKeywordJSON, KeepOrder: true}}
	tiers = append(tiers, blockTiers(keywordBlocks, buildKeyword)...)

	return ContentSpec[Keyword]{
		Name:  "keywords",
		Tiers: tiers,
		Validate: func(k Keyword) (Keyword, bool) {
			return validateKeyword(k, index)
		},
		Key: func(k Keyword) string { return strings.ToLower(k.Keyword) },
		Compare: func(a, b Keyword) int {
			return cmp.Compare(b.Relevance, a.Relevance)
		},
		Limit: opts.Count,
	}
}

// Keywords extracts keywords from generated text.
func Keywords(text string, opts KeywordOptions) Result[Keyword] {
	return Run(text, KeywordSpec(opts))
}

type keywordPayload struct {
	Keyword   string         `json:"keyword"`
	Term      string         `json:"term"`
	Relevance *flexibleFloat `json:"relevance"`
	Score     *flexibleFloat `json:"score"`
	Frequency *flexibleFloat `json:"frequency"`
	Count     *flexibleFloat `json:"count"`
}

func parseKeywordJSON(text string) []Keyword {
	var list []keywordPayload
	if err := decodeJSON(text, &list); err != nil {
		var wrapped struct {
			Keywords []keywordPayload `json:"keywords"`
		}
		if err := decodeJSON(text, &wrapped); err != nil {
			return nil
		}
		list = wrapped.Keywords
	}
	out := make([]Keyword, 0, len(list))
	for _, item := range list {
		relevance := firstFloat(item.Relevance, item.Score)
		if relevance == nil {
			continue
		}
		keyword := Keyword{
			Keyword:   firstString(item.Keyword, item.Term),
			Relevance: float64(*relevance),
		}
		if freq := firstFloat(item.Frequency, item.Count); freq != nil {
			keyword.Frequency = frequencyValue(float64(*freq))
		}
		out = append(out, keyword)
	}
	return out
}

func buildKeyword(f fields) (Keyword, bool) {
	relevance, ok := parseNumber(f.get("RELEVANCE"))
	if !ok {
		return Keyword{}, false
	}
	keyword := Keyword{Keyword: f.get("KEYWORD"), Relevance: relevance}
	if freq, ok := parseNumber(f.get("FREQUENCY")); ok {
		keyword.Frequency = frequencyValue(freq)
	}
	return keyword, true
}

func validateKeyword(k Keyword, index *textutil.StemIndex) (Keyword, bool) {
	k.Keyword = strings.Trim(textutil.CollapseSpace(k.Keyword), `"'.,;`)
	if k.Keyword == "" {
		return k, false
	}
	if math.IsNaN(k.Relevance) || math.IsInf(k.Relevance, 0) {
		return k, false
	}
	k.Relevance = clamp(k.Relevance, 0, 1)
	if k.Frequency <= 0 && index != nil {
		k.Frequency = index.Frequency(k.Keyword)
	}
	if k.Frequency < 1 {
		k.Frequency = 1
	}
	return k, true
}

// frequencyValue truncates a parsed frequency, mapping negatives to zero so
// validation can substitute an estimate.
func frequencyValue(f float64) int {
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

func firstFloat(values ...*flexibleFloat) *flexibleFloat {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstString(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// flexibleFloat accepts JSON numbers and numeric strings. Anything else
// decodes to NaN so validation drops the record instead of failing the tier.
type flexibleFloat float64

func (f *flexibleFloat) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexibleFloat(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, ok := parseNumber(s); ok {
			*f = flexibleFloat(v)
			return nil
		}
	}
	*f = flexibleFloat(math.NaN())
	return nil
}
