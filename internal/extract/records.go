package extract

// Summary is the condensed form of a transcript.
type Summary struct {
	Summary   string   `json:"summary" yaml:"summary"`
	KeyPoints []string `json:"key_points" yaml:"key_points"`
	WordCount int      `json:"word_count" yaml:"word_count"`
}

// Chapter marks the start of a section of the media.
type Chapter struct {
	Timestamp     string `json:"timestamp" yaml:"timestamp"`
	StartSeconds  int    `json:"start_seconds" yaml:"start_seconds"`
	Title         string `json:"title" yaml:"title"`
	Description   string `json:"description" yaml:"description"`
	AutoGenerated bool   `json:"auto_generated" yaml:"auto_generated"`
}

// Keyword is a term with its relevance in [0,1] and occurrence count (>= 1).
type Keyword struct {
	Keyword   string  `json:"keyword" yaml:"keyword"`
	Relevance float64 `json:"relevance" yaml:"relevance"`
	Frequency int     `json:"frequency" yaml:"frequency"`
}

// Topic is a subject the media covers with confidence in [0,1].
type Topic struct {
	Topic      string  `json:"topic" yaml:"topic"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Category   string  `json:"category" yaml:"category"`
}

// Highlight is a noteworthy span of the media scored in [0,1].
type Highlight struct {
	Timestamp       string  `json:"timestamp" yaml:"timestamp"`
	StartSeconds    int     `json:"start_seconds" yaml:"start_seconds"`
	Duration        string  `json:"duration" yaml:"duration"`
	DurationSeconds int     `json:"duration_seconds" yaml:"duration_seconds"`
	Description     string  `json:"description" yaml:"description"`
	Reason          string  `json:"reason" yaml:"reason"`
	Score           float64 `json:"score" yaml:"score"`
}
