package textutil

import "testing"

func TestWordCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"one  two\tthree\nfour", 4},
	}
	for _, tt := range tests {
		if got := WordCount(tt.in); got != tt.want {
			t.Fatalf("WordCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTruncateWords(t *testing.T) {
	got, cut := TruncateWords("the quick brown fox", 12)
	if !cut || got != "the quick" {
		t.Fatalf("TruncateWords() = %q, %v; want %q, true", got, cut, "the quick")
	}
	got, cut = TruncateWords("short", 100)
	if cut || got != "short" {
		t.Fatalf("expected untouched text, got %q, %v", got, cut)
	}
	got, cut = TruncateWords("ééééé", 3)
	if !cut || got != "é" {
		t.Fatalf("expected rune-safe cut, got %q", got)
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Hello, World! It's 2024.")
	want := []string{"hello", "world", "it", "s", "2024"}
	if len(got) != len(want) {
		t.Fatalf("Tokenize() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tokenize()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStemFrequency(t *testing.T) {
	text := "Running is fun. She runs daily and has run marathons. Machine learning models learn."
	if got := StemFrequency(text, "run"); got != 3 {
		t.Fatalf("StemFrequency(run) = %d, want 3", got)
	}
	if got := StemFrequency(text, "machine learning"); got != 1 {
		t.Fatalf("StemFrequency(machine learning) = %d, want 1", got)
	}
	if got := StemFrequency(text, "   "); got != 0 {
		t.Fatalf("StemFrequency(blank) = %d, want 0", got)
	}
}

func TestStemIndexMatchesStemFrequency(t *testing.T) {
	text := "connect connected connecting connection"
	idx := NewStemIndex(text)
	for _, phrase := range []string{"connect", "connection", "missing"} {
		if got, want := idx.Frequency(phrase), StemFrequency(text, phrase); got != want {
			t.Fatalf("Frequency(%q) = %d, want %d", phrase, got, want)
		}
	}
}

func TestTitleCase(t *testing.T) {
	tests := map[string]string{
		"technology":        "Technology",
		"  science   news ": "Science News",
		"AI research":       "AI Research",
		"":                  "",
	}
	for in, want := range tests {
		if got := TitleCase(in); got != want {
			t.Fatalf("TitleCase(%q) = %q, want %q", in, got, want)
		}
	}
}
