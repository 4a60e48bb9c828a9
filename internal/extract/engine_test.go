package extract

import (
	"cmp"
	"testing"
)

func fixedTier(name string, minimum int, values ...int) Tier[int] {
	return Tier[int]{Name: name, Min: minimum, Parse: func(string) []int { return append([]int(nil), values...) }}
}

func TestRunFirstQualifyingTierWins(t *testing.T) {
	calls := 0
	spec := ContentSpec[int]{
		Tiers: []Tier[int]{
			fixedTier("short", 3, 1, 2),
			fixedTier("winner", 1, 5, 7),
			{Name: "never", Parse: func(string) []int { calls++; return []int{9} }},
		},
	}
	res := Run("", spec)
	if res.Tier != "winner" || res.Degraded {
		t.Fatalf("unexpected result %+v", res)
	}
	if calls != 0 {
		t.Fatal("later tier consulted after a tier succeeded")
	}
}

func TestRunMinimumCountsValidRecordsOnly(t *testing.T) {
	spec := ContentSpec[int]{
		Tiers:    []Tier[int]{fixedTier("a", 2, -1, 4, -3), fixedTier("b", 1, 8)},
		Validate: func(v int) (int, bool) { return v, v >= 0 },
	}
	if res := Run("", spec); res.Tier != "b" {
		t.Fatalf("expected fall through to b, got %q", res.Tier)
	}
}

func TestRunStableRankingThenTruncation(t *testing.T) {
	type rec struct {
		id    string
		score int
	}
	spec := ContentSpec[rec]{
		Tiers: []Tier[rec]{{Name: "t", Parse: func(string) []rec {
			return []rec{{"a", 1}, {"b", 3}, {"c", 3}, {"d", 2}, {"e", 3}}
		}}},
		Compare: func(x, y rec) int { return cmp.Compare(y.score, x.score) },
		Limit:   4,
	}
	res := Run("", spec)
	want := []string{"b", "c", "e", "d"}
	if len(res.Records) != len(want) {
		t.Fatalf("got %d records, want %d", len(res.Records), len(want))
	}
	for i, id := range want {
		if res.Records[i].id != id {
			t.Fatalf("record[%d] = %q, want %q", i, res.Records[i].id, id)
		}
	}
}

func TestRunKeepOrderSkipsRanking(t *testing.T) {
	spec := ContentSpec[int]{
		Tiers:   []Tier[int]{{Name: "ordered", Parse: func(string) []int { return []int{1, 3, 2} }, KeepOrder: true}},
		Compare: func(a, b int) int { return cmp.Compare(b, a) },
		Limit:   2,
	}
	res := Run("", spec)
	if len(res.Records) != 2 || res.Records[0] != 1 || res.Records[1] != 3 {
		t.Fatalf("expected source order truncated to 2, got %v", res.Records)
	}
}

func TestRunDeduplicatesBeforeCounting(t *testing.T) {
	spec := ContentSpec[int]{
		Tiers: []Tier[int]{fixedTier("dups", 2, 4, 4, 4), fixedTier("next", 1, 1)},
		Key:   func(v int) string { return string(rune('0' + v)) },
	}
	if res := Run("", spec); res.Tier != "next" {
		t.Fatalf("expected duplicates to count once, got tier %q", res.Tier)
	}
}

func TestRunDegradesToEmpty(t *testing.T) {
	res := Run("", ContentSpec[int]{Tiers: []Tier[int]{fixedTier("none", 1)}})
	if !res.Degraded || res.Records == nil || len(res.Records) != 0 || res.Tier != "" {
		t.Fatalf("expected empty degraded result, got %+v", res)
	}
}

func TestRunDegradesToFallback(t *testing.T) {
	spec := ContentSpec[int]{
		Tiers:    []Tier[int]{fixedTier("none", 1)},
		Fallback: func() []int { return []int{0, 10} },
	}
	res := Run("", spec)
	if !res.Degraded || res.Tier != FallbackTier || len(res.Records) != 2 {
		t.Fatalf("expected fallback records, got %+v", res)
	}
}
