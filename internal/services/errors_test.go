package services_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"vidscope/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.KindProcessingFailure, services.SurfaceMediaProcessing, "download", "yt-dlp exited", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrProcessing) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	if err.Operation != "download" {
		t.Fatalf("expected operation download, got %q", err.Operation)
	}
	msg := err.Error()
	for _, fragment := range []string{"download", "yt-dlp exited", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestClassifiedErrorMatchesOnlyItsMarker(t *testing.T) {
	err := services.Classify(services.SurfaceAIGeneration, errors.New("429 Too Many Requests"))
	if !errors.Is(err, services.ErrRateLimited) {
		t.Fatalf("expected rate limited marker, got kind %s", err.Kind)
	}
	if errors.Is(err, services.ErrTransient) {
		t.Fatal("did not expect transient marker to match")
	}
}

func TestClassifiedErrorSurvivesWrapping(t *testing.T) {
	classified := services.Classify(services.SurfaceRemoteMetadata, errors.New("ERROR: Private video"))
	wrapped := fmt.Errorf("fetch video: %w", classified)
	if got := services.KindOf(wrapped); got != services.KindAccessRestricted {
		t.Fatalf("KindOf() = %s, want %s", got, services.KindAccessRestricted)
	}
	if services.KindOf(errors.New("plain")) != services.KindUnknown {
		t.Fatal("expected plain errors to report unknown kind")
	}
}

func TestClassifiedErrorUnwrapsCause(t *testing.T) {
	cause := fmt.Errorf("request: %w", context.DeadlineExceeded)
	err := services.Classify(services.SurfaceNetwork, cause)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected cause to be reachable, got %v", err)
	}
}

func TestUserMessageListsSuggestions(t *testing.T) {
	err := services.Classify(services.SurfaceAIGeneration, errors.New("invalid api key provided"))
	msg := err.UserMessage()
	if !strings.HasPrefix(msg, "invalid api key provided") {
		t.Fatalf("expected message first, got %q", msg)
	}
	if !strings.Contains(msg, "Suggestions:") || !strings.Contains(msg, "1. ") {
		t.Fatalf("expected numbered suggestions, got %q", msg)
	}
}

func TestUnknownSurfacesRawMessageOnly(t *testing.T) {
	err := services.Classify(services.SurfaceAIGeneration, errors.New("Something Odd Happened"))
	if err.Kind != services.KindUnknown {
		t.Fatalf("expected unknown, got %s", err.Kind)
	}
	if err.UserMessage() != "Something Odd Happened" {
		t.Fatalf("expected verbatim message, got %q", err.UserMessage())
	}
	if err.Error() != "Something Odd Happened" {
		t.Fatalf("expected verbatim error string, got %q", err.Error())
	}
	if len(err.Remediations()) != 0 {
		t.Fatalf("expected no remediations for unknown, got %v", err.Remediations())
	}
}

func TestEveryKnownKindHasRemediation(t *testing.T) {
	for _, kind := range services.Kinds() {
		if kind == services.KindUnknown {
			continue
		}
		err := services.Wrap(kind, "", "op", "msg", nil)
		if len(err.Remediations()) == 0 {
			t.Fatalf("kind %s has no remediation", kind)
		}
	}
}

func TestRemediationsReturnsCopy(t *testing.T) {
	err := services.Invalid("transcript is empty")
	hints := err.Remediations()
	hints[0] = "mutated"
	if err.Remediations()[0] == "mutated" {
		t.Fatal("expected remediations to be immutable")
	}
}

func TestClassifyReturnsExistingValueUnchanged(t *testing.T) {
	original := services.Wrap(services.KindRemoteNotFound, services.SurfaceRemoteMetadata, "fetch video", "no such video", nil)
	wrapped := fmt.Errorf("resolve: %w", original)

	again := services.Classify(services.SurfaceAIGeneration, wrapped)
	if again != original {
		t.Fatalf("expected the classified value to pass through, got %#v", again)
	}
	if again.Kind != services.KindRemoteNotFound || again.Surface != services.SurfaceRemoteMetadata {
		t.Fatalf("reclassification changed kind/surface: %s/%s", again.Kind, again.Surface)
	}
	if again.Operation != "fetch video" || again.Message != "fetch video: no such video" {
		t.Fatalf("reclassification changed detail: %q / %q", again.Operation, again.Message)
	}
	if !slices.Equal(again.Remediations(), original.Remediations()) {
		t.Fatalf("remediations diverged: %v vs %v", again.Remediations(), original.Remediations())
	}
}

func TestInvalidBuildsValidationKind(t *testing.T) {
	err := services.Invalid("count must be positive, got %d", -1)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
	if err.Message != "count must be positive, got -1" {
		t.Fatalf("unexpected message %q", err.Message)
	}
}
