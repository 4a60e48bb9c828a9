package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"vidscope/internal/services"
)

const (
	defaultModel       = "gemini-2.5-flash"
	defaultMaxTokens   = 2048
	defaultTemperature = 0.2

	systemInstruction = "You analyse video transcripts. Follow the requested output format exactly and add no commentary."
)

// Config captures the Gemini settings. Several keys may be supplied; the
// client rotates to the next key when one is rate limited or out of quota.
type Config struct {
	APIKeys []string
	Model   string
}

// ContentGenerator is the subset of *genai.Models the client uses.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client generates text with the Gemini API.
type Client struct {
	model string

	mu       sync.Mutex
	backends []ContentGenerator
	current  int
}

// NewClient builds one genai client per configured key.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	keys := make([]string, 0, len(cfg.APIKeys))
	for _, key := range cfg.APIKeys {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil, errors.New("gemini: api key required")
	}
	backends := make([]ContentGenerator, 0, len(keys))
	for i, key := range keys {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("gemini: create client for key %d: %w", i+1, err)
		}
		backends = append(backends, client.Models)
	}
	return NewWithBackends(cfg.Model, backends...), nil
}

// NewWithBackends builds a client over pre-constructed generators.
func NewWithBackends(model string, backends ...ContentGenerator) *Client {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	return &Client{model: model, backends: backends}
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// Generate sends prompt once per key until one answers. Only quota and rate
// limit failures move on to the next key; other failures return immediately.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("gemini generate: prompt required")
	}
	if len(c.backends) == 0 {
		return "", errors.New("gemini generate: api key required")
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		MaxOutputTokens:   int32(maxTokens),
		Temperature:       genai.Ptr[float32](defaultTemperature),
	}

	var lastErr error
	for range c.backends {
		backend := c.backend()
		resp, err := backend.GenerateContent(ctx, c.model, genai.Text(prompt), config)
		if err != nil {
			if ctx.Err() == nil && isExhausted(err) && len(c.backends) > 1 {
				c.rotate(backend)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("gemini generate: %w", err)
		}
		return responseText(resp)
	}
	return "", fmt.Errorf("gemini generate: every configured key is out of quota: %w", lastErr)
}

func (c *Client) backend() ContentGenerator {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.backends[c.current]
}

// rotate advances past failed unless another caller already did.
func (c *Client) rotate(failed ContentGenerator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.backends[c.current] == failed {
		c.current = (c.current + 1) % len(c.backends)
	}
}

func isExhausted(err error) bool {
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "429") ||
		strings.Contains(message, "quota") ||
		strings.Contains(message, "resource_exhausted")
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", emptyResponse("no response")
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", emptyResponse(fmt.Sprintf("prompt blocked (%s)", resp.PromptFeedback.BlockReason))
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", emptyResponse("no candidates")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", emptyResponse(fmt.Sprintf("empty content (finish_reason=%q)", resp.Candidates[0].FinishReason))
	}
	return text, nil
}

func emptyResponse(detail string) error {
	return services.Wrap(services.KindAIUnavailable, services.SurfaceAIGeneration, "gemini generate", detail, nil)
}
