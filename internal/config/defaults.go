package config

const (
	defaultConfigPath         = "~/.config/vidscope/config.toml"
	projectConfigFile         = "vidscope.toml"
	defaultProvider           = ProviderOpenRouter
	defaultLLMBaseURL         = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel           = "google/gemini-2.5-flash"
	defaultLLMReferer         = "https://github.com/vidscope/vidscope"
	defaultLLMTitle           = "vidscope"
	defaultLLMTimeoutSeconds  = 60
	defaultGeminiModel        = "gemini-2.5-flash"
	defaultRetryMaxAttempts   = 3
	defaultRetryInitialMS     = 1000
	defaultRetryMaxMS         = 8000
	defaultYTDLPBinary        = "yt-dlp"
	defaultYTDLPTimeout       = 60
	defaultYTDLPListLimit     = 25
	defaultMaxTokens          = 2048
	defaultMaxTranscriptChars = 60000
	defaultSummaryMaxWords    = 150
	defaultKeywordCount       = 10
	defaultHighlightCount     = 5
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		LLM: LLM{
			Provider:       defaultProvider,
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Gemini: Gemini{
			Model: defaultGeminiModel,
		},
		Retry: Retry{
			MaxAttempts:    defaultRetryMaxAttempts,
			InitialDelayMS: defaultRetryInitialMS,
			MaxDelayMS:     defaultRetryMaxMS,
		},
		YTDLP: YTDLP{
			Binary:         defaultYTDLPBinary,
			TimeoutSeconds: defaultYTDLPTimeout,
			ListLimit:      defaultYTDLPListLimit,
		},
		Analysis: Analysis{
			MaxTokens:          defaultMaxTokens,
			MaxTranscriptChars: defaultMaxTranscriptChars,
			SummaryMaxWords:    defaultSummaryMaxWords,
			KeywordCount:       defaultKeywordCount,
			HighlightCount:     defaultHighlightCount,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
