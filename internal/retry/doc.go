// Package retry re-invokes failing outbound calls under a bounded,
// classification-aware exponential backoff.
//
// Every failure is classified through the services taxonomy for the policy's
// surface before the retry decision is made, so callers always receive a
// *services.ClassifiedError once attempts are exhausted or the failure is
// judged permanent. Delays double from InitialDelay up to MaxDelay without
// jitter. Waiting is a context-aware timer select, so other goroutines keep
// running while a call backs off, and cancelling the context abandons the
// remaining attempts.
//
// Policies are values: build one per call site (usually from config) and pass
// it to Do. No state is shared between concurrent invocations.
package retry
