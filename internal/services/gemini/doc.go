// Package gemini generates transcript analyses with Google's Gemini API via
// google.golang.org/genai.
//
// A client may hold several API keys. When a key is rate limited or out of
// quota the client moves to the next one within the same call; the rotated
// key stays current for later calls. Every other failure is returned as is,
// wrapped with a "gemini generate" prefix, for the ai-generation classifier.
// Responses that carry no text (blocked prompts, empty candidates) are
// reported as ai-unavailable.
package gemini
