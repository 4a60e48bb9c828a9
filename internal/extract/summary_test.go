package extract

import (
	"slices"
	"testing"
)

func TestParseSummaryWithKeyPoints(t *testing.T) {
	text := "SUMMARY:\nGo is a   simple language.\nIt compiles fast.\n\nKEY POINTS:\n- Fast builds\n* Simple syntax\n1. Static types\n2) Garbage collected\n•  Great tooling\n- \n"
	got := ParseSummary(text)
	if got.Summary != "Go is a simple language. It compiles fast." {
		t.Fatalf("summary = %q", got.Summary)
	}
	if got.WordCount != 8 {
		t.Fatalf("word count = %d, want 8", got.WordCount)
	}
	want := []string{"Fast builds", "Simple syntax", "Static types", "Garbage collected", "Great tooling"}
	if !slices.Equal(got.KeyPoints, want) {
		t.Fatalf("key points = %v, want %v", got.KeyPoints, want)
	}
}

func TestParseSummaryFallsBackToSummaryAsKeyPoint(t *testing.T) {
	got := ParseSummary("A short talk about retries.")
	if len(got.KeyPoints) != 1 || got.KeyPoints[0] != "A short talk about retries." {
		t.Fatalf("unexpected key points %v", got.KeyPoints)
	}
	if got.WordCount != 5 {
		t.Fatalf("word count = %d, want 5", got.WordCount)
	}
}

func TestParseSummaryEmptyKeyPointBlock(t *testing.T) {
	got := ParseSummary("## Summary\nRetries with backoff.\n\n## Key Points\n\n")
	if got.Summary != "Retries with backoff." {
		t.Fatalf("summary = %q", got.Summary)
	}
	if !slices.Equal(got.KeyPoints, []string{"Retries with backoff."}) {
		t.Fatalf("unexpected key points %v", got.KeyPoints)
	}
}

func TestParseSummaryMarkdownHeadings(t *testing.T) {
	got := ParseSummary("**Summary:** Caching reduces latency.\r\n\r\n**Key Points:**\r\n- Cache hot keys\r\n")
	if got.Summary != "Caching reduces latency." {
		t.Fatalf("summary = %q", got.Summary)
	}
	if !slices.Equal(got.KeyPoints, []string{"Cache hot keys"}) {
		t.Fatalf("unexpected key points %v", got.KeyPoints)
	}
}

func TestParseSummaryEmpty(t *testing.T) {
	got := ParseSummary("   ")
	if got.Summary != "" || got.WordCount != 0 || len(got.KeyPoints) != 0 {
		t.Fatalf("unexpected summary %+v", got)
	}
}
