package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeLLM()
	c.normalizeGemini()
	c.normalizeYTDLP()
	c.normalizeAnalysis()
	c.normalizeLogging()
	return c.normalizeMetrics()
}

func (c *Config) normalizeLLM() {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if c.LLM.Provider == "" {
		c.LLM.Provider = defaultProvider
	}
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	c.LLM.Referer = strings.TrimSpace(c.LLM.Referer)
	if c.LLM.Referer == "" {
		c.LLM.Referer = defaultLLMReferer
	}
	c.LLM.Title = strings.TrimSpace(c.LLM.Title)
	if c.LLM.Title == "" {
		c.LLM.Title = defaultLLMTitle
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		if value, ok := os.LookupEnv("OPENROUTER_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		}
	}
}

// normalizeGemini folds api_key, api_keys and the environment into one
// ordered, de-duplicated key list.
func (c *Config) normalizeGemini() {
	c.Gemini.Model = strings.TrimSpace(c.Gemini.Model)
	if c.Gemini.Model == "" {
		c.Gemini.Model = defaultGeminiModel
	}

	candidates := []string{c.Gemini.APIKey}
	candidates = append(candidates, c.Gemini.APIKeys...)
	if len(strings.Join(candidates, "")) == 0 {
		if value, ok := os.LookupEnv("GEMINI_API_KEY"); ok {
			candidates = strings.Split(value, ",")
		} else if value, ok := os.LookupEnv("GOOGLE_API_KEY"); ok {
			candidates = strings.Split(value, ",")
		}
	}

	keys := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, key := range candidates {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	c.Gemini.APIKeys = keys
	c.Gemini.APIKey = ""
	if len(keys) > 0 {
		c.Gemini.APIKey = keys[0]
	}
}

func (c *Config) normalizeYTDLP() {
	c.YTDLP.Binary = strings.TrimSpace(c.YTDLP.Binary)
	if value, ok := os.LookupEnv("VIDSCOPE_YTDLP_PATH"); ok && strings.TrimSpace(value) != "" {
		c.YTDLP.Binary = strings.TrimSpace(value)
	}
	if c.YTDLP.Binary == "" {
		c.YTDLP.Binary = defaultYTDLPBinary
	}
	if c.YTDLP.TimeoutSeconds <= 0 {
		c.YTDLP.TimeoutSeconds = defaultYTDLPTimeout
	}
	if c.YTDLP.ListLimit <= 0 {
		c.YTDLP.ListLimit = defaultYTDLPListLimit
	}
}

func (c *Config) normalizeAnalysis() {
	if c.Analysis.MaxTokens == 0 {
		c.Analysis.MaxTokens = defaultMaxTokens
	}
	if c.Analysis.MaxTranscriptChars == 0 {
		c.Analysis.MaxTranscriptChars = defaultMaxTranscriptChars
	}
	if c.Analysis.SummaryMaxWords == 0 {
		c.Analysis.SummaryMaxWords = defaultSummaryMaxWords
	}
	if c.Analysis.KeywordCount == 0 {
		c.Analysis.KeywordCount = defaultKeywordCount
	}
	if c.Analysis.HighlightCount == 0 {
		c.Analysis.HighlightCount = defaultHighlightCount
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeMetrics() error {
	var err error
	if c.Metrics.Textfile, err = expandPath(strings.TrimSpace(c.Metrics.Textfile)); err != nil {
		return fmt.Errorf("metrics.textfile: %w", err)
	}
	return nil
}
