package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Credentials are checked
// separately by ValidateGenerator because metadata commands run without them.
func (c *Config) Validate() error {
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateRetry(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	return c.validateLogging()
}

// ValidateGenerator reports whether the selected provider has credentials.
func (c *Config) ValidateGenerator() error {
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = defaultConfigPath
	}
	switch c.LLM.Provider {
	case ProviderGemini:
		if len(c.Gemini.APIKeys) == 0 {
			return fmt.Errorf("gemini.api_key is required. Set GEMINI_API_KEY env var or edit %s (create with 'vidscope config init')", defaultPath)
		}
	default:
		if c.LLM.APIKey == "" {
			return fmt.Errorf("llm.api_key is required. Set OPENROUTER_API_KEY env var or edit %s (create with 'vidscope config init')", defaultPath)
		}
	}
	return nil
}

func (c *Config) validateLLM() error {
	switch c.LLM.Provider {
	case ProviderOpenRouter, ProviderGemini:
	default:
		return fmt.Errorf("llm.provider must be %q or %q, got %q", ProviderOpenRouter, ProviderGemini, c.LLM.Provider)
	}
	return nil
}

func (c *Config) validateRetry() error {
	if c.Retry.MaxAttempts < 1 {
		return errors.New("retry.max_attempts must be at least 1")
	}
	if c.Retry.InitialDelayMS < 0 {
		return errors.New("retry.initial_delay_ms must be >= 0")
	}
	if c.Retry.MaxDelayMS < c.Retry.InitialDelayMS {
		return errors.New("retry.max_delay_ms must be >= retry.initial_delay_ms")
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	return ensurePositiveMap(map[string]int{
		"analysis.max_tokens":           c.Analysis.MaxTokens,
		"analysis.max_transcript_chars": c.Analysis.MaxTranscriptChars,
		"analysis.summary_max_words":    c.Analysis.SummaryMaxWords,
		"analysis.keyword_count":        c.Analysis.KeywordCount,
		"analysis.highlight_count":      c.Analysis.HighlightCount,
	})
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
