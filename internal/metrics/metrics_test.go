package metrics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"vidscope/internal/retry"
	"vidscope/internal/services"
)

func TestRecorderCountsRetryLifecycle(t *testing.T) {
	rec := New()
	policy := retry.DefaultPolicy(services.SurfaceAIGeneration)
	policy.Sleep = func(context.Context, time.Duration) error { return nil }
	policy.Observer = rec

	_, err := retry.Do(context.Background(), policy, func(context.Context) (string, error) {
		return "", errors.New("connection reset by peer")
	})
	if err == nil {
		t.Fatal("expected failure")
	}

	surface := string(services.SurfaceAIGeneration)
	kind := string(services.KindTransientNetwork)
	if got := testutil.ToFloat64(rec.attemptFailures.WithLabelValues(surface, kind)); got != 3 {
		t.Fatalf("attempt failures = %v, want 3", got)
	}
	if got := testutil.ToFloat64(rec.retries.WithLabelValues(surface)); got != 2 {
		t.Fatalf("retries = %v, want 2", got)
	}
	if got := testutil.ToFloat64(rec.gaveUp.WithLabelValues(surface, kind)); got != 1 {
		t.Fatalf("gave up = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(rec.retryDelay); got != 1 {
		t.Fatalf("retry delay series = %d, want 1", got)
	}
}

func TestRecorderCountsExtractions(t *testing.T) {
	rec := New()
	rec.ExtractionCompleted("chapters", "strict-blocks", false, 4)
	rec.ExtractionCompleted("chapters", "fallback", true, 5)
	rec.ExtractionCompleted("topics", "", true, 0)

	if got := testutil.ToFloat64(rec.extractions.WithLabelValues("chapters", "fallback", "true")); got != 1 {
		t.Fatalf("fallback extractions = %v", got)
	}
	if got := testutil.ToFloat64(rec.extractions.WithLabelValues("topics", "none", "true")); got != 1 {
		t.Fatalf("empty-tier extractions = %v", got)
	}
	if got := testutil.ToFloat64(rec.records.WithLabelValues("chapters")); got != 9 {
		t.Fatalf("chapter records = %v, want 9", got)
	}
	if got := testutil.CollectAndCount(rec.records); got != 1 {
		t.Fatalf("record series = %d, want 1", got)
	}
}

func TestRecordersAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.ExtractionCompleted("keywords", "json", false, 3)
	if got := testutil.CollectAndCount(b.extractions); got != 0 {
		t.Fatalf("second recorder saw %d series", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	rec := New()
	rec.GaveUp(services.SurfaceRemoteMetadata, 1, services.Invalid("bad id"))

	path := filepath.Join(t.TempDir(), "vidscope.prom")
	if err := rec.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	want := `vidscope_failures_total{kind="validation",surface="remote-metadata"} 1`
	if !strings.Contains(string(data), want) {
		t.Fatalf("textfile missing %q:\n%s", want, data)
	}
}
