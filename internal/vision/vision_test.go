package vision

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/undertone/internal/tone"
)

func TestBuildPrompt(t *testing.T) {
	if got := BuildPrompt(nil); got != Prompt {
		t.Error("BuildPrompt(nil) should return the base prompt unchanged")
	}
	if got := BuildPrompt([]string{"", "   "}); got != Prompt {
		t.Error("BuildPrompt(blank hints) should return the base prompt unchanged")
	}

	got := BuildPrompt([]string{" olive skin ", "tungsten light"})
	if !strings.HasPrefix(got, Prompt) {
		t.Error("BuildPrompt(hints) should start with the base prompt")
	}
	for _, want := range []string{"- olive skin\n", "- tungsten light"} {
		if !strings.Contains(got, want) {
			t.Errorf("BuildPrompt(hints) missing %q:\n%s", want, got)
		}
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("BuildPrompt(hints) should not end with a newline")
	}
}

func TestEstimatorFunc(t *testing.T) {
	want := tone.Estimate{Temperature: "cool"}
	var gotHints []string

	var est Estimator = EstimatorFunc(func(_ context.Context, req Request) (tone.Estimate, error) {
		gotHints = req.Hints
		return want, nil
	})

	got, err := est.Estimate(context.Background(), Request{Hints: []string{"pale"}})
	if err != nil {
		t.Fatalf("Estimate() returned error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Estimate() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"pale"}, gotHints); diff != "" {
		t.Errorf("hints mismatch (-want +got):\n%s", diff)
	}
}

func TestFileEstimator(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "estimate.json")
	if err := os.WriteFile(good, []byte(`{"temperature":"warm","colorHex":"#C08060","clarity":0.3}`), 0o600); err != nil {
		t.Fatal(err)
	}
	garbage := filepath.Join(dir, "garbage.json")
	if err := os.WriteFile(garbage, []byte(`model refused`), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()

	got, err := NewFileEstimator(good).Estimate(ctx, Request{})
	if err != nil {
		t.Fatalf("Estimate(good) returned error: %v", err)
	}
	want := tone.Estimate{Temperature: "warm", ColorHex: "#C08060", Clarity: tone.Float(0.3)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Estimate(good) mismatch (-want +got):\n%s", diff)
	}

	got, err = NewFileEstimator(garbage).Estimate(ctx, Request{})
	if err != nil {
		t.Fatalf("Estimate(garbage) returned error: %v", err)
	}
	if diff := cmp.Diff(tone.Estimate{}, got); diff != "" {
		t.Errorf("Estimate(garbage) should be empty (-want +got):\n%s", diff)
	}

	if _, err := NewFileEstimator(filepath.Join(dir, "missing.json")).Estimate(ctx, Request{}); err == nil {
		t.Error("Estimate(missing) should fail")
	}

	stdin := &FileEstimator{Path: "-", Stdin: strings.NewReader(`{"season":"fall"}`)}
	got, err = stdin.Estimate(ctx, Request{})
	if err != nil {
		t.Fatalf("Estimate(stdin) returned error: %v", err)
	}
	if got.Season != "fall" {
		t.Errorf("Estimate(stdin) season = %q, want fall", got.Season)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := NewFileEstimator(good).Estimate(cancelled, Request{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Estimate(cancelled) error = %v, want context.Canceled", err)
	}
}
