// Package services defines the failure taxonomy and shared helpers consumed by
// the analysis and metadata layers and their external integrations.
//
// Key responsibilities:
//   - A closed set of ErrorKind values, each with a sentinel marker so callers
//     can use errors.Is against the kind of any ClassifiedError.
//   - Classify, which maps a raw failure from a given Surface (remote metadata,
//     AI generation, media processing, network) onto exactly one kind using an
//     ordered keyword rule table. Rule order matters: the first match wins.
//   - Remediation text attached to every known kind.
//   - Context helpers that stamp request and operation identifiers for logging.
//
// Retry decisions are made on ClassifiedError values, never on raw provider
// errors, so every integration should route its failures through Classify.
package services
