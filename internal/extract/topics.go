package extract

import (
	"cmp"
	"math"
	"strings"

	"vidscope/internal/textutil"
)

var topicBlocks = newBlockFormat("TOPIC", "CONFIDENCE", "CATEGORY")

// DefaultTopicCategory is used when the model leaves the category blank.
const DefaultTopicCategory = "General"

// TopicSpec returns the topic cascade. A confidence outside [0,1] marks the
// record as hallucinated and it is discarded rather than clamped.
func TopicSpec() ContentSpec[Topic] {
	return ContentSpec[Topic]{
		Name:     "topics",
		Tiers:    blockTiers(topicBlocks, buildTopic),
		Validate: validateTopic,
		Compare: func(a, b Topic) int {
			return cmp.Compare(b.Confidence, a.Confidence)
		},
	}
}

// Topics extracts topics from generated text.
func Topics(text string) Result[Topic] {
	return Run(text, TopicSpec())
}

func buildTopic(f fields) (Topic, bool) {
	confidence, ok := parseNumber(f.get("CONFIDENCE"))
	if !ok {
		return Topic{}, false
	}
	return Topic{
		Topic:      f.get("TOPIC"),
		Confidence: confidence,
		Category:   f.get("CATEGORY"),
	}, true
}

func validateTopic(t Topic) (Topic, bool) {
	t.Topic = strings.Trim(textutil.CollapseSpace(t.Topic), `"`)
	if t.Topic == "" {
		return t, false
	}
	if math.IsNaN(t.Confidence) || t.Confidence < 0 || t.Confidence > 1 {
		return t, false
	}
	t.Category = textutil.TitleCase(strings.Trim(t.Category, `"`))
	if t.Category == "" {
		t.Category = DefaultTopicCategory
	}
	return t, true
}
