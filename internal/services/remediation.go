package services

var kindRemediations = map[ErrorKind][]string{
	KindValidation: {
		"Check the supplied identifier, URL, or parameters for typos",
		"Make sure required inputs such as the transcript are not empty",
	},
	KindRemoteNotFound: {
		"Verify the video, playlist, or channel ID is correct",
		"The content may have been deleted or made unavailable by its owner",
	},
	KindAccessRestricted: {
		"The content is private, members-only, age-restricted, or region-locked",
		"Try a different, publicly accessible video",
	},
	KindRateLimited: {
		"Wait a few minutes before retrying",
		"Reduce the number of concurrent requests",
	},
	KindTransientNetwork: {
		"Check your network connection",
		"Retry the request; the failure is usually temporary",
	},
	KindProcessingFailure: {
		"Make sure yt-dlp and ffmpeg are installed and up to date",
		"Retry the request; downloads occasionally fail mid-stream",
	},
	KindAIUnavailable: {
		"The AI provider is temporarily unavailable; retry in a few minutes",
		"Check the provider status page",
	},
	KindAIQuotaExceeded: {
		"Your AI provider quota is exhausted; check billing and usage limits",
		"Switch to another configured provider or API key",
	},
	KindAIContentTooLarge: {
		"The transcript is too long for the model; lower analysis.max_transcript_chars",
		"Use a model with a larger context window",
	},
}

var variantRemediations = map[string][]string{
	VariantAuthInvalid: {
		"Check that the AI provider API key is set and valid",
		"Set OPENROUTER_API_KEY or GEMINI_API_KEY, or edit the [llm] section of the config file",
	},
	VariantPrivate: {
		"The video is private; ask the owner for access or choose another video",
	},
	VariantAgeGated: {
		"The video is age-restricted and requires a signed-in session",
	},
	VariantGeoBlocked: {
		"The video is blocked in your region",
	},
}

// remediationsFor returns the suggestions for a kind, preferring the more
// specific variant list when one exists. Unknown failures get none.
func remediationsFor(kind ErrorKind, variant string) []string {
	if kind == KindUnknown {
		return nil
	}
	if hints, ok := variantRemediations[variant]; ok {
		return hints
	}
	return kindRemediations[kind]
}
