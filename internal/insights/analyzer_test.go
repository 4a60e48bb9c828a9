package insights

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"vidscope/internal/retry"
	"vidscope/internal/services"
)

type scriptedGenerator struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	prompts   []string
	maxTokens []int
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string, maxTokens int) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	idx := len(g.prompts)
	g.prompts = append(g.prompts, prompt)
	g.maxTokens = append(g.maxTokens, maxTokens)
	if idx < len(g.errs) && g.errs[idx] != nil {
		return "", g.errs[idx]
	}
	if idx < len(g.responses) {
		return g.responses[idx], nil
	}
	if len(g.responses) > 0 {
		return g.responses[len(g.responses)-1], nil
	}
	return "", nil
}

func (g *scriptedGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

type extractionEvent struct {
	content  string
	tier     string
	degraded bool
	records  int
}

type recordingObserver struct {
	mu     sync.Mutex
	events []extractionEvent
}

func (o *recordingObserver) ExtractionCompleted(content, tier string, degraded bool, records int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, extractionEvent{content, tier, degraded, records})
}

func newTestAnalyzer(gen Generator, obs ExtractionObserver) *Analyzer {
	policy := retry.DefaultPolicy(services.SurfaceAIGeneration)
	policy.Sleep = func(context.Context, time.Duration) error { return nil }
	return New(gen, Options{Policy: policy, MaxTokens: 512, Observer: obs})
}

const transcript = "Welcome to the talk. Today we discuss latency, caching and retries in distributed systems."

func TestSummarize(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"SUMMARY:\nA talk on latency.\n\nKEY POINTS:\n- Caching helps\n- Retry carefully\n"}}
	a := newTestAnalyzer(gen, nil)
	got, err := a.Summarize(context.Background(), transcript, 50)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got.Summary != "A talk on latency." || got.WordCount != 4 || len(got.KeyPoints) != 2 {
		t.Fatalf("unexpected summary %+v", got)
	}
	if !strings.Contains(gen.prompts[0], "at most 50 words") {
		t.Fatalf("prompt does not carry word limit: %q", gen.prompts[0])
	}
	if gen.maxTokens[0] != 512 {
		t.Fatalf("maxTokens = %d, want 512", gen.maxTokens[0])
	}
}

func TestSummarizeDefaultsWordLimit(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"Plain text summary."}}
	a := newTestAnalyzer(gen, nil)
	got, err := a.Summarize(context.Background(), transcript, 0)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if len(got.KeyPoints) != 1 || got.KeyPoints[0] != "Plain text summary." {
		t.Fatalf("expected summary as key point, got %+v", got)
	}
	if !strings.Contains(gen.prompts[0], "at most 150 words") {
		t.Fatal("expected default word limit in prompt")
	}
}

func TestValidationErrors(t *testing.T) {
	gen := &scriptedGenerator{}
	a := newTestAnalyzer(gen, nil)
	ctx := context.Background()

	checks := map[string]error{}
	_, checks["empty transcript"] = a.Summarize(ctx, "   ", 10)
	_, checks["zero duration chapters"] = a.Chapters(ctx, transcript, 0)
	_, checks["negative keywords"] = a.Keywords(ctx, transcript, -1)
	_, checks["negative duration highlights"] = a.Highlights(ctx, transcript, -5, "t", 3)
	_, checks["empty topics transcript"] = a.Topics(ctx, "", "t", "d")

	for name, err := range checks {
		if !errors.Is(err, services.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
	if gen.calls() != 0 {
		t.Fatalf("generator called %d times for invalid input", gen.calls())
	}
}

func TestChaptersDegradeToPlaceholders(t *testing.T) {
	obs := &recordingObserver{}
	gen := &scriptedGenerator{responses: []string{"Sorry, I cannot help with that."}}
	a := newTestAnalyzer(gen, obs)
	got, err := a.Chapters(context.Background(), transcript, 1800)
	if err != nil {
		t.Fatalf("Chapters() error = %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("got %d chapters, want 6", len(got))
	}
	if len(obs.events) != 1 || !obs.events[0].degraded || obs.events[0].content != "chapters" {
		t.Fatalf("unexpected observer events %+v", obs.events)
	}
}

func TestKeywordsParsesJSON(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{`[
		{"keyword": "latency", "relevance": 0.9},
		{"keyword": "caching", "relevance": 0.8, "frequency": 3},
		{"keyword": "retries", "relevance": 1.4, "frequency": 1}
	]`}}
	a := newTestAnalyzer(gen, nil)
	got, err := a.Keywords(context.Background(), transcript, 0)
	if err != nil {
		t.Fatalf("Keywords() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d keywords, want 3", len(got))
	}
	if got[0].Frequency != 1 || got[2].Relevance != 1.0 {
		t.Fatalf("unexpected keywords %+v", got)
	}
	if !strings.Contains(gen.prompts[0], "Return the 10 most relevant") {
		t.Fatal("expected default keyword count in prompt")
	}
}

func TestTopicsAndHighlights(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{
		"TOPIC: Caching\nCONFIDENCE: 0.8\nCATEGORY: technology\n",
		"HIGHLIGHT: 00:10\nDURATION: 20\nDESCRIPTION: Intro joke\nREASON: Funny\nSCORE: 0.7\n\n" +
			"HIGHLIGHT: 01:00\nDURATION: 30\nDESCRIPTION: Key insight\nREASON: Novel\nSCORE: 0.9\n",
	}}
	a := newTestAnalyzer(gen, nil)
	ctx := context.Background()

	topics, err := a.Topics(ctx, transcript, "Systems Talk", "")
	if err != nil {
		t.Fatalf("Topics() error = %v", err)
	}
	if len(topics) != 1 || topics[0].Category != "Technology" {
		t.Fatalf("unexpected topics %+v", topics)
	}
	if !strings.Contains(gen.prompts[0], "Title: Systems Talk") || !strings.Contains(gen.prompts[0], "Description: (not provided)") {
		t.Fatalf("unexpected topic prompt %q", gen.prompts[0])
	}

	highlights, err := a.Highlights(ctx, transcript, 120, "Systems Talk", 1)
	if err != nil {
		t.Fatalf("Highlights() error = %v", err)
	}
	if len(highlights) != 1 || highlights[0].Description != "Key insight" {
		t.Fatalf("unexpected highlights %+v", highlights)
	}
}

func TestGeneratorFailurePropagatesClassified(t *testing.T) {
	gen := &scriptedGenerator{errs: []error{
		errors.New("llm request: http 503: upstream overloaded, temporary"),
		errors.New("llm request: http 503: upstream overloaded, temporary"),
		errors.New("llm request: http 503: upstream overloaded, temporary"),
	}}
	a := newTestAnalyzer(gen, nil)
	_, err := a.Topics(context.Background(), transcript, "", "")
	classified, ok := services.AsClassified(err)
	if !ok {
		t.Fatalf("expected classified error, got %v", err)
	}
	if classified.Kind != services.KindTransientNetwork || classified.Surface != services.SurfaceAIGeneration {
		t.Fatalf("unexpected classification %s/%s", classified.Kind, classified.Surface)
	}
	if gen.calls() != 3 {
		t.Fatalf("generator called %d times, want 3", gen.calls())
	}
}

func TestGeneratorAuthFailureIsNotRetried(t *testing.T) {
	gen := &scriptedGenerator{errs: []error{errors.New("llm request: http 401: invalid api key")}}
	a := newTestAnalyzer(gen, nil)
	_, err := a.Keywords(context.Background(), transcript, 5)
	if !errors.Is(err, services.ErrAIUnavailable) {
		t.Fatalf("expected ai-unavailable, got %v", err)
	}
	if gen.calls() != 1 {
		t.Fatalf("generator called %d times, want 1", gen.calls())
	}
	classified, _ := services.AsClassified(err)
	if len(classified.Remediations()) == 0 {
		t.Fatal("expected remediation suggestions")
	}
}

func TestRetryThenSuccess(t *testing.T) {
	gen := &scriptedGenerator{
		errs:      []error{errors.New("429 Too Many Requests")},
		responses: []string{"", "SUMMARY: Recovered."},
	}
	a := newTestAnalyzer(gen, nil)
	got, err := a.Summarize(context.Background(), transcript, 20)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got.Summary != "Recovered." || gen.calls() != 2 {
		t.Fatalf("unexpected result %+v after %d calls", got, gen.calls())
	}
}

func TestNilGenerator(t *testing.T) {
	a := New(nil, Options{})
	_, err := a.Summarize(context.Background(), transcript, 10)
	if !errors.Is(err, services.ErrAIUnavailable) {
		t.Fatalf("expected ai-unavailable, got %v", err)
	}
}

func TestTranscriptBounded(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"SUMMARY: ok"}}
	a := New(gen, Options{MaxTranscriptChars: 20})
	long := strings.Repeat("lorem ", 100)
	if _, err := a.Summarize(context.Background(), long, 10); err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if strings.Count(gen.prompts[0], "lorem") > 4 {
		t.Fatalf("transcript not bounded: %q", gen.prompts[0])
	}
}

func TestConcurrentAnalysesShareNoState(t *testing.T) {
	gen := GeneratorFunc(func(_ context.Context, prompt string, _ int) (string, error) {
		switch {
		case strings.Contains(prompt, "KEYWORD:"):
			return `[{"keyword":"a","relevance":0.5},{"keyword":"b","relevance":0.4},{"keyword":"c","relevance":0.3}]`, nil
		case strings.Contains(prompt, "TOPIC:"):
			return "TOPIC: X\nCONFIDENCE: 0.5\nCATEGORY: Y\n", nil
		default:
			return "nothing useful", nil
		}
	})
	a := newTestAnalyzer(gen, nil)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if kws, err := a.Keywords(context.Background(), transcript, 3); err != nil || len(kws) != 3 {
				t.Errorf("keywords: %v %v", kws, err)
			}
		}()
		go func() {
			defer wg.Done()
			if topics, err := a.Topics(context.Background(), transcript, "", ""); err != nil || len(topics) != 1 {
				t.Errorf("topics: %v %v", topics, err)
			}
		}()
	}
	wg.Wait()
}
