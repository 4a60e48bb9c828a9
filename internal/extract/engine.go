package extract

import "slices"

// Tier is one parsing strategy in a content type's cascade. Parse returns raw
// candidates; the engine validates them and the tier wins only when at least
// Min valid records survive.
type Tier[T any] struct {
	Name  string
	Min   int
	Parse func(text string) []T
	// KeepOrder skips ranking for tiers whose source order is authoritative.
	KeepOrder bool
}

func (t Tier[T]) minimum() int {
	if t.Min < 1 {
		return 1
	}
	return t.Min
}

// ContentSpec describes how one content type is extracted: the ordered tiers,
// the per-record validator, de-duplication, ranking, truncation and the
// degradation fallback.
type ContentSpec[T any] struct {
	Name  string
	Tiers []Tier[T]

	// Validate normalises a candidate and reports whether it is kept. It may
	// clamp fields or reject the record outright.
	Validate func(T) (T, bool)
	// Key identifies duplicates; later records with an already seen key are
	// dropped. Nil disables de-duplication.
	Key func(T) string
	// Compare orders records for ranking. Nil keeps tier order.
	Compare func(a, b T) int
	// Limit truncates after ranking. Zero or negative keeps everything.
	Limit int
	// Fallback synthesises records when no tier succeeds. Nil degrades to an
	// empty collection.
	Fallback func() []T
}

// Result is the outcome of one extraction.
type Result[T any] struct {
	Records  []T
	Tier     string
	Degraded bool
}

// FallbackTier names the synthetic tier reported when Fallback produced the records.
const FallbackTier = "fallback"

// Run tries spec's tiers in order. The first tier whose validated output
// reaches its minimum wins and later tiers are never consulted. When none
// succeeds the result is degraded: the spec's fallback records, or an empty
// collection. Run never fails; a parsing shortfall is not an error.
func Run[T any](text string, spec ContentSpec[T]) Result[T] {
	for _, tier := range spec.Tiers {
		if tier.Parse == nil {
			continue
		}
		records := spec.accept(tier.Parse(text))
		if len(records) < tier.minimum() {
			continue
		}
		if spec.Compare != nil && !tier.KeepOrder {
			slices.SortStableFunc(records, spec.Compare)
		}
		if spec.Limit > 0 && len(records) > spec.Limit {
			records = records[:spec.Limit]
		}
		return Result[T]{Records: records, Tier: tier.Name}
	}

	result := Result[T]{Degraded: true}
	if spec.Fallback != nil {
		result.Records = spec.Fallback()
		result.Tier = FallbackTier
	}
	if result.Records == nil {
		result.Records = []T{}
	}
	return result
}

func (spec ContentSpec[T]) accept(candidates []T) []T {
	out := make([]T, 0, len(candidates))
	var seen map[string]struct{}
	if spec.Key != nil {
		seen = make(map[string]struct{}, len(candidates))
	}
	for _, candidate := range candidates {
		record := candidate
		if spec.Validate != nil {
			var ok bool
			if record, ok = spec.Validate(candidate); !ok {
				continue
			}
		}
		if seen != nil {
			key := spec.Key(record)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		out = append(out, record)
	}
	return out
}
