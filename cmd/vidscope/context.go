package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"vidscope/internal/config"
	"vidscope/internal/insights"
	"vidscope/internal/logging"
	"vidscope/internal/metrics"
	"vidscope/internal/services"
	"vidscope/internal/services/gemini"
	"vidscope/internal/services/llm"
	"vidscope/internal/services/ytdlp"
	"vidscope/internal/videos"
)

// deps builds the external collaborators; tests swap them for fakes.
type deps struct {
	generator func(ctx context.Context, cfg *config.Config) (insights.Generator, error)
	source    func(cfg *config.Config) videos.Source
}

func defaultDeps() deps {
	return deps{generator: newGenerator, source: newSource}
}

func newGenerator(ctx context.Context, cfg *config.Config) (insights.Generator, error) {
	if err := cfg.ValidateGenerator(); err != nil {
		return nil, err
	}
	if cfg.LLM.Provider == config.ProviderGemini {
		client, err := gemini.NewClient(ctx, gemini.Config{APIKeys: cfg.Gemini.APIKeys, Model: cfg.Gemini.Model})
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	settings := cfg.GetLLM()
	return llm.NewClient(llm.Config{
		APIKey:         settings.APIKey,
		BaseURL:        settings.BaseURL,
		Model:          settings.Model,
		Referer:        settings.Referer,
		Title:          settings.Title,
		TimeoutSeconds: settings.TimeoutSeconds,
	}), nil
}

func newSource(cfg *config.Config) videos.Source {
	return ytdlp.NewClient(ytdlp.Config{Binary: cfg.YTDLP.Binary, TimeoutSeconds: cfg.YTDLP.TimeoutSeconds})
}

type commandContext struct {
	configFlag   *string
	outputFlag   *string
	logLevelFlag *string
	deps         deps

	configOnce sync.Once
	config     *config.Config
	configErr  error
	logger     *slog.Logger
	recorder   *metrics.Recorder
}

func newCommandContext(configFlag, outputFlag, logLevelFlag *string, d deps) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		outputFlag:   outputFlag,
		logLevelFlag: logLevelFlag,
		deps:         d,
		recorder:     metrics.New(),
	}
}

func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	c.configOnce.Do(func() {
		// A missing .env is normal.
		_ = godotenv.Load()

		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		var level string
		if c.logLevelFlag != nil {
			level = *c.logLevelFlag
		}
		logger, err := logging.NewFromConfig(cfg, level, cmd.ErrOrStderr())
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.logger = logger
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	return c.config
}

func (c *commandContext) log() *slog.Logger {
	if c.logger == nil {
		return logging.NewNop()
	}
	return c.logger
}

// requestContext stamps a fresh correlation id onto the command's context.
func (c *commandContext) requestContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return services.WithRequestID(ctx, uuid.NewString())
}

func (c *commandContext) analyzer(ctx context.Context) (*insights.Analyzer, error) {
	cfg := c.configValue()
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	gen, err := c.deps.generator(ctx, cfg)
	if err != nil {
		return nil, err
	}
	policy := cfg.RetryPolicy(services.SurfaceAIGeneration)
	policy.Observer = c.recorder
	return insights.New(gen, insights.Options{
		Policy:             policy,
		MaxTokens:          cfg.Analysis.MaxTokens,
		MaxTranscriptChars: cfg.Analysis.MaxTranscriptChars,
		SummaryWords:       cfg.Analysis.SummaryMaxWords,
		KeywordCount:       cfg.Analysis.KeywordCount,
		HighlightCount:     cfg.Analysis.HighlightCount,
		Logger:             c.log(),
		Observer:           c.recorder,
	}), nil
}

func (c *commandContext) videoService() (*videos.Service, error) {
	cfg := c.configValue()
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	policy := cfg.RetryPolicy(services.SurfaceRemoteMetadata)
	policy.Observer = c.recorder
	return videos.New(c.deps.source(cfg), videos.Options{
		Policy:    policy,
		ListLimit: cfg.YTDLP.ListLimit,
		Logger:    c.log(),
	}), nil
}

func (c *commandContext) outputFormat() (string, error) {
	format := "table"
	if c.outputFlag != nil && strings.TrimSpace(*c.outputFlag) != "" {
		format = strings.ToLower(strings.TrimSpace(*c.outputFlag))
	}
	switch format {
	case "table", "json", "yaml":
		return format, nil
	default:
		return "", services.Invalid("unsupported output format %q (use table, json or yaml)", format)
	}
}

// flushMetrics writes the metrics textfile when one is configured.
func (c *commandContext) flushMetrics() error {
	cfg := c.configValue()
	if cfg == nil || cfg.Metrics.Textfile == "" {
		return nil
	}
	if err := c.recorder.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
