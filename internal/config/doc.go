// Package config loads, normalizes, and validates vidscope configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// OPENROUTER_API_KEY and GEMINI_API_KEY. Retry settings are handed out as
// fresh retry.Policy values per call site via RetryPolicy.
//
// Always obtain settings through this package so downstream code receives
// trimmed values, canonical log formats, and clear validation errors.
package config
