// Package llm provides an OpenRouter chat client used as a text generator
// for transcript analysis.
//
// # Entry Points
//
// NewClient: construct client from Config.
// Client.Generate: send one prompt, receive the completion text.
// Client.HealthCheck: verify API key and model availability.
//
// # Failures
//
// The client makes exactly one HTTP request per call and never retries on
// its own. Non-2xx responses produce errors of the form
// "llm request: http <status>: <body>", transport failures are reported as
// network errors, and responses without text become "empty content" errors
// carrying the finish reason and a payload snippet. These messages are
// shaped so the ai-generation classifier can map them to a failure kind; the
// caller's retry policy decides whether to try again.
//
// # Response Tolerance
//
// Content is taken from message.content, then the streaming delta, then the
// legacy text field, then function or tool call arguments, so providers
// that deviate from the chat schema still produce usable text.
package llm
