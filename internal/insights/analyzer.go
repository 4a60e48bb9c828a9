package insights

import (
	"context"
	"log/slog"
	"strings"

	"vidscope/internal/extract"
	"vidscope/internal/logging"
	"vidscope/internal/retry"
	"vidscope/internal/services"
	"vidscope/internal/textutil"
)

const (
	defaultMaxTokens          = 2048
	defaultMaxTranscriptChars = 60000
	defaultSummaryWords       = 150
	defaultKeywordCount       = 10
	defaultHighlightCount     = 5
)

// Generator produces free-form text for a prompt. Implementations report
// provider failures as plain errors; the analyzer classifies them.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string, maxTokens int) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return f(ctx, prompt, maxTokens)
}

// ExtractionObserver is notified after every extraction, degraded or not.
type ExtractionObserver interface {
	ExtractionCompleted(content, tier string, degraded bool, records int)
}

// Options configures an Analyzer. Zero values select defaults.
type Options struct {
	Policy             retry.Policy
	MaxTokens          int
	MaxTranscriptChars int
	SummaryWords       int
	KeywordCount       int
	HighlightCount     int
	Logger             *slog.Logger
	Observer           ExtractionObserver
}

// Analyzer turns transcripts into summaries, chapters, keywords, topics and
// highlights. Each operation prompts the generator under the retry policy and
// then runs the matching extractor. Generator failures surface as
// *services.ClassifiedError; unparseable output degrades instead.
type Analyzer struct {
	gen    Generator
	opts   Options
	policy retry.Policy
	logger *slog.Logger
}

// New builds an Analyzer around gen.
func New(gen Generator, opts Options) *Analyzer {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	if opts.MaxTranscriptChars <= 0 {
		opts.MaxTranscriptChars = defaultMaxTranscriptChars
	}
	if opts.SummaryWords <= 0 {
		opts.SummaryWords = defaultSummaryWords
	}
	if opts.KeywordCount <= 0 {
		opts.KeywordCount = defaultKeywordCount
	}
	if opts.HighlightCount <= 0 {
		opts.HighlightCount = defaultHighlightCount
	}
	logger := logging.NewComponentLogger(opts.Logger, "insights")

	policy := opts.Policy
	if policy.MaxAttempts == 0 && policy.InitialDelay == 0 {
		policy = retry.DefaultPolicy(services.SurfaceAIGeneration)
	}
	policy = policy.WithSurface(services.SurfaceAIGeneration)
	if policy.Logger == nil {
		policy.Logger = logger
	}

	return &Analyzer{gen: gen, opts: opts, policy: policy, logger: logger}
}

// Summarize condenses transcript into at most maxWords words (zero selects
// the configured default) plus key points.
func (a *Analyzer) Summarize(ctx context.Context, transcript string, maxWords int) (extract.Summary, error) {
	transcript, err := a.prepare(transcript)
	if err != nil {
		return extract.Summary{}, err
	}
	if maxWords < 0 {
		return extract.Summary{}, services.Invalid("max words must not be negative")
	}
	if maxWords == 0 {
		maxWords = a.opts.SummaryWords
	}
	ctx = services.WithOperation(ctx, "summarize")
	text, err := a.generate(ctx, SummaryPrompt(transcript, maxWords))
	if err != nil {
		return extract.Summary{}, err
	}
	summary := extract.ParseSummary(text)
	a.observe(ctx, "summarize", "summary", false, len(summary.KeyPoints))
	return summary, nil
}

// Chapters splits transcript into chapters covering totalSeconds.
func (a *Analyzer) Chapters(ctx context.Context, transcript string, totalSeconds int) ([]extract.Chapter, error) {
	transcript, err := a.prepare(transcript)
	if err != nil {
		return nil, err
	}
	if totalSeconds <= 0 {
		return nil, services.Invalid("total duration must be positive, got %d", totalSeconds)
	}
	ctx = services.WithOperation(ctx, "chapters")
	text, err := a.generate(ctx, ChapterPrompt(transcript, extract.FormatTimestamp(totalSeconds)))
	if err != nil {
		return nil, err
	}
	return record(ctx, a, extract.Chapters(text, totalSeconds)), nil
}

// Keywords returns up to count keywords (zero selects the configured default).
func (a *Analyzer) Keywords(ctx context.Context, transcript string, count int) ([]extract.Keyword, error) {
	transcript, err := a.prepare(transcript)
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, services.Invalid("keyword count must not be negative")
	}
	if count == 0 {
		count = a.opts.KeywordCount
	}
	ctx = services.WithOperation(ctx, "keywords")
	text, err := a.generate(ctx, KeywordPrompt(transcript, count))
	if err != nil {
		return nil, err
	}
	opts := extract.KeywordOptions{Count: count, Transcript: transcript}
	return record(ctx, a, extract.Keywords(text, opts)), nil
}

// Topics lists the topics transcript covers, using title and description as
// extra context.
func (a *Analyzer) Topics(ctx context.Context, transcript, title, description string) ([]extract.Topic, error) {
	transcript, err := a.prepare(transcript)
	if err != nil {
		return nil, err
	}
	ctx = services.WithOperation(ctx, "topics")
	text, err := a.generate(ctx, TopicPrompt(transcript, title, description))
	if err != nil {
		return nil, err
	}
	return record(ctx, a, extract.Topics(text)), nil
}

// Highlights returns up to count highlights (zero selects the configured
// default) that fit inside totalSeconds.
func (a *Analyzer) Highlights(ctx context.Context, transcript string, totalSeconds int, title string, count int) ([]extract.Highlight, error) {
	transcript, err := a.prepare(transcript)
	if err != nil {
		return nil, err
	}
	if totalSeconds <= 0 {
		return nil, services.Invalid("total duration must be positive, got %d", totalSeconds)
	}
	if count < 0 {
		return nil, services.Invalid("highlight count must not be negative")
	}
	if count == 0 {
		count = a.opts.HighlightCount
	}
	ctx = services.WithOperation(ctx, "highlights")
	prompt := HighlightPrompt(transcript, title, extract.FormatTimestamp(totalSeconds), count)
	text, err := a.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	opts := extract.HighlightOptions{TotalSeconds: totalSeconds, Count: count}
	return record(ctx, a, extract.Highlights(text, opts)), nil
}

// prepare rejects empty transcripts and bounds long ones at a word boundary.
func (a *Analyzer) prepare(transcript string) (string, error) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return "", services.Invalid("transcript is empty")
	}
	if bounded, cut := textutil.TruncateWords(transcript, a.opts.MaxTranscriptChars); cut {
		a.logger.Debug("transcript truncated",
			slog.Int("original_chars", len(transcript)),
			slog.Int("max_chars", a.opts.MaxTranscriptChars),
		)
		transcript = bounded
	}
	return transcript, nil
}

func (a *Analyzer) generate(ctx context.Context, prompt string) (string, error) {
	if a.gen == nil {
		return "", services.Wrap(services.KindAIUnavailable, services.SurfaceAIGeneration, "generate", "no text generator configured", nil)
	}
	return retry.Do(ctx, a.policy, func(ctx context.Context) (string, error) {
		return a.gen.Generate(ctx, prompt, a.opts.MaxTokens)
	})
}

func record[T any](ctx context.Context, a *Analyzer, result extract.Result[T]) []T {
	op, _ := services.OperationFromContext(ctx)
	a.observe(ctx, op, result.Tier, result.Degraded, len(result.Records))
	return result.Records
}

func (a *Analyzer) observe(ctx context.Context, content, tier string, degraded bool, records int) {
	if degraded {
		logging.WarnWithContext(ctx, a.logger, "model output not parseable; degraded result", "extraction_degraded",
			logging.String("content", content),
			logging.String("tier", tier),
			logging.Int("records", records),
			logging.String(logging.FieldErrorHint, "retry the request or switch llm.model"),
			logging.String(logging.FieldImpact, "placeholder or empty records returned"),
		)
	} else {
		logging.WithContext(ctx, a.logger).DebugContext(ctx, "extraction complete",
			logging.String("content", content),
			logging.String("tier", tier),
			logging.Int("records", records),
		)
	}
	if a.opts.Observer != nil {
		a.opts.Observer.ExtractionCompleted(content, tier, degraded, records)
	}
}
