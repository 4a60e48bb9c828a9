package services

import (
	"errors"
	"net"
	"strings"
)

// Surface names the upstream boundary a failure came from. Each surface has
// its own ordered rule table.
type Surface string

const (
	SurfaceRemoteMetadata  Surface = "remote-metadata"
	SurfaceAIGeneration    Surface = "ai-generation"
	SurfaceMediaProcessing Surface = "media-processing"
	SurfaceNetwork         Surface = "network"
)

// rule maps any of its keywords to a kind. Rules are evaluated in
// declaration order and the first match wins.
type rule struct {
	keywords  []string
	kind      ErrorKind
	variant   string
	operation string
}

func (r rule) matches(message string) bool {
	for _, keyword := range r.keywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	return false
}

var networkKeywords = []string{
	"timeout",
	"timed out",
	"deadline exceeded",
	"connection reset",
	"connection refused",
	"econnreset",
	"econnrefused",
	"enotfound",
	"no such host",
	"network",
	"temporary",
	"temporarily",
	"unexpected eof",
	"broken pipe",
}

var rateLimitKeywords = []string{
	"rate limit",
	"rate-limit",
	"ratelimit",
	"rate exceeded",
	"too many requests",
	"429",
}

var remoteMetadataRules = []rule{
	{keywords: []string{"invalid url", "unsupported url", "invalid video id", "is not a valid url", "invalid id"}, kind: KindValidation},
	{keywords: []string{"not found", "does not exist", "404", "has been removed", "been terminated", "no longer exists"}, kind: KindRemoteNotFound},
	{keywords: []string{"private video", "private"}, kind: KindAccessRestricted, variant: VariantPrivate},
	{keywords: []string{"confirm your age", "age-restricted", "age restricted", "inappropriate for some users"}, kind: KindAccessRestricted, variant: VariantAgeGated},
	{keywords: []string{"in your country", "geo-restricted", "geo restricted", "geoblocked"}, kind: KindAccessRestricted, variant: VariantGeoBlocked},
	{keywords: []string{"unavailable", "members-only", "members only", "sign in", "403", "forbidden"}, kind: KindAccessRestricted},
	{keywords: append([]string{"quota", "limit"}, rateLimitKeywords...), kind: KindRateLimited},
	{keywords: networkKeywords, kind: KindTransientNetwork},
	{keywords: []string{"download", "unable to extract", "ffmpeg", "postprocess"}, kind: KindProcessingFailure, operation: "download"},
}

var aiGenerationRules = []rule{
	{keywords: []string{"api key", "api_key", "apikey", "authentication", "unauthorized", "unauthenticated", "permission denied", "invalid token", "401"}, kind: KindAIUnavailable, variant: VariantAuthInvalid},
	{keywords: []string{"insufficient_quota", "exceeded your current quota", "quota", "billing", "resource_exhausted", "credits"}, kind: KindAIQuotaExceeded},
	{keywords: append([]string{"limit"}, rateLimitKeywords...), kind: KindRateLimited},
	{keywords: []string{"token", "too long", "too large", "context length", "context_length", "maximum context", "413"}, kind: KindAIContentTooLarge},
	{keywords: networkKeywords, kind: KindTransientNetwork},
	{keywords: []string{"unavailable", "overloaded", "500", "502", "503", "504", "internal error", "bad gateway", "empty content", "empty choices"}, kind: KindAIUnavailable, variant: VariantServiceDown},
}

var mediaProcessingRules = []rule{
	{keywords: networkKeywords, kind: KindTransientNetwork},
	{keywords: rateLimitKeywords, kind: KindRateLimited},
	{keywords: []string{"private", "unavailable", "sign in"}, kind: KindAccessRestricted},
	{keywords: []string{"no such file", "not found", "does not exist"}, kind: KindRemoteNotFound},
	{keywords: []string{"download"}, kind: KindProcessingFailure, operation: "download"},
	{keywords: []string{"ffmpeg", "ffprobe", "codec", "decode", "encode", "convert", "extract", "exit status"}, kind: KindProcessingFailure},
}

var networkRules = []rule{
	{keywords: rateLimitKeywords, kind: KindRateLimited},
	{keywords: []string{"404", "not found"}, kind: KindRemoteNotFound},
	{keywords: []string{"401", "403", "forbidden", "unauthorized"}, kind: KindAccessRestricted},
	{keywords: append([]string{"500", "502", "503", "504", "eof"}, networkKeywords...), kind: KindTransientNetwork},
}

func rulesFor(surface Surface) []rule {
	switch surface {
	case SurfaceRemoteMetadata:
		return remoteMetadataRules
	case SurfaceAIGeneration:
		return aiGenerationRules
	case SurfaceMediaProcessing:
		return mediaProcessingRules
	case SurfaceNetwork:
		return networkRules
	default:
		return nil
	}
}

// Classify maps a raw failure from surface to exactly one ErrorKind. Errors
// that are already classified are returned unchanged. Unmatched failures map
// to KindUnknown with the message passed through verbatim.
func Classify(surface Surface, err error) *ClassifiedError {
	if err == nil {
		return nil
	}
	if classified, ok := AsClassified(err); ok {
		return classified
	}

	message := err.Error()
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newClassified(KindTransientNetwork, surface, "", "", message, err)
	}

	lowered := strings.ToLower(message)
	for _, r := range rulesFor(surface) {
		if r.matches(lowered) {
			return newClassified(r.kind, surface, r.variant, r.operation, message, err)
		}
	}
	return newClassified(KindUnknown, surface, "", "", message, err)
}

// Classifier returns a Classify closure bound to surface.
func Classifier(surface Surface) func(error) *ClassifiedError {
	return func(err error) *ClassifiedError {
		return Classify(surface, err)
	}
}
