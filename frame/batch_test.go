package frame

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/goleak"
)

func TestCombineSizes(t *testing.T) {
	defer goleak.VerifyNone(t)

	parts := loadParts(t, "half_frame.svg")
	targets := []SizeParameters{
		referenceSize,
		{BridgeSize: 20, GlasWidth: 52, GlasHeight: 42},
		{BridgeSize: 16, GlasWidth: 48, GlasHeight: 38},
	}
	results, err := CombineSizes(context.Background(), parts, referenceSize, targets, WithConcurrency(2))
	if err != nil {
		t.Fatalf("CombineSizes() error = %v", err)
	}
	if len(results) != len(targets) {
		t.Fatalf("got %d results, want %d", len(results), len(targets))
	}

	var prev float64
	for i, res := range results {
		if len(res.Warnings) != 0 {
			t.Errorf("size %d warnings = %v", i, res.Warnings)
		}
		b := mustBounds(t, "frame", res.Model.Models["frame"])
		want := Combine(parts, targets[i], referenceSize).Model.Models["frame"]
		assertRectNear(t, "frame", b, mustBounds(t, "sequential frame", want), 1e-9)
		if i > 0 && b.Width() == prev {
			t.Errorf("size %d has the same width as size %d", i, i-1)
		}
		prev = b.Width()
	}
}

func TestCombineSizes_Cancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	parts := loadParts(t, "half_frame.svg")
	_, err := CombineSizes(ctx, parts, referenceSize, []SizeParameters{referenceSize, referenceSize})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("CombineSizes() error = %v, want context.Canceled", err)
	}
}

func TestCombineSizes_Empty(t *testing.T) {
	results, err := CombineSizes(context.Background(), PartSet{}, referenceSize, nil)
	if err != nil || len(results) != 0 {
		t.Errorf("CombineSizes() = %v, %v; want no results", results, err)
	}
}
