package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"vidscope/internal/retry"
	"vidscope/internal/services"
)

//go:embed sample_config.toml
var sampleConfig string

// Provider names accepted in llm.provider.
const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

// LLM contains the text generator connection settings.
type LLM struct {
	Provider       string `toml:"provider"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	Referer        string `toml:"referer"`
	Title          string `toml:"title"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Gemini contains settings for the Gemini provider. Several keys may be
// listed; the client rotates to the next one when a key runs out of quota.
type Gemini struct {
	APIKey  string   `toml:"api_key"`
	APIKeys []string `toml:"api_keys"`
	Model   string   `toml:"model"`
}

// Retry contains the backoff applied to every outbound call.
type Retry struct {
	MaxAttempts    int `toml:"max_attempts"`
	InitialDelayMS int `toml:"initial_delay_ms"`
	MaxDelayMS     int `toml:"max_delay_ms"`
}

// YTDLP contains settings for the remote metadata accessor.
type YTDLP struct {
	Binary         string `toml:"binary"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	ListLimit      int    `toml:"list_limit"`
}

// Analysis contains prompt and extraction sizing.
type Analysis struct {
	MaxTokens          int `toml:"max_tokens"`
	MaxTranscriptChars int `toml:"max_transcript_chars"`
	SummaryMaxWords    int `toml:"summary_max_words"`
	KeywordCount       int `toml:"keyword_count"`
	HighlightCount     int `toml:"highlight_count"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Metrics contains configuration for metric export.
type Metrics struct {
	// Textfile, when set, receives the Prometheus text exposition after each run.
	Textfile string `toml:"textfile"`
}

// Config encapsulates all configuration values for vidscope.
//
// Configuration sections by subsystem:
//   - LLM: generator provider and OpenRouter connection
//   - Gemini: Gemini keys and model
//   - Retry: backoff for every outbound call
//   - YTDLP: remote metadata binary and listing size
//   - Analysis: prompt sizing and record counts
//   - Logging: log format and level
//   - Metrics: optional textfile export
type Config struct {
	LLM      LLM      `toml:"llm"`
	Gemini   Gemini   `toml:"gemini"`
	Retry    Retry    `toml:"retry"`
	YTDLP    YTDLP    `toml:"ytdlp"`
	Analysis Analysis `toml:"analysis"`
	Logging  Logging  `toml:"logging"`
	Metrics  Metrics  `toml:"metrics"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. Missing files are
// not an error: defaults and environment fallbacks apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigFile)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
// An existing file is never overwritten.
func CreateSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o600); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the effective configuration as TOML with secrets masked.
func (c *Config) Encode() ([]byte, error) {
	masked := *c
	masked.LLM.APIKey = maskSecret(masked.LLM.APIKey)
	masked.Gemini.APIKey = maskSecret(masked.Gemini.APIKey)
	keys := make([]string, len(c.Gemini.APIKeys))
	for i, key := range c.Gemini.APIKeys {
		keys[i] = maskSecret(key)
	}
	masked.Gemini.APIKeys = keys

	data, err := toml.Marshal(masked)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

func maskSecret(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 8 {
		return "****"
	}
	return value[:4] + "****" + value[len(value)-2:]
}

// LLMConfig contains the OpenRouter connection settings.
type LLMConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Referer        string
	Title          string
	TimeoutSeconds int
}

// GetLLM returns the OpenRouter connection settings.
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		APIKey:         strings.TrimSpace(c.LLM.APIKey),
		BaseURL:        strings.TrimSpace(c.LLM.BaseURL),
		Model:          strings.TrimSpace(c.LLM.Model),
		Referer:        strings.TrimSpace(c.LLM.Referer),
		Title:          strings.TrimSpace(c.LLM.Title),
		TimeoutSeconds: c.LLM.TimeoutSeconds,
	}
}

// RetryPolicy returns a fresh retry policy for surface built from [retry].
func (c *Config) RetryPolicy(surface services.Surface) retry.Policy {
	policy := retry.DefaultPolicy(surface)
	policy.MaxAttempts = c.Retry.MaxAttempts
	policy.InitialDelay = time.Duration(c.Retry.InitialDelayMS) * time.Millisecond
	policy.MaxDelay = time.Duration(c.Retry.MaxDelayMS) * time.Millisecond
	return policy
}
