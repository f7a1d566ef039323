package frame

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/Bersaelor/framecad"
)

// Option configures the pipeline functions of this package.
type Option func(*options)

type options struct {
	tol         float64
	slopeTol    float64
	mergeHinge  bool
	step        Step
	logger      *slog.Logger
	concurrency int
}

func newOptions(opts []Option) *options {
	o := &options{
		tol:         framecad.DefaultTolerance,
		slopeTol:    DefaultSlopeTolerance,
		step:        StepFinal,
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) log() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return framecad.Logger()
}

// WithTolerance sets the distance below which points coincide.
// Non-positive values are ignored.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		if tol > 0 {
			o.tol = tol
		}
	}
}

// WithSlopeTolerance sets the largest |cross|/dot ratio at which two lines
// from a shared endpoint still count as pointing the same way.
func WithSlopeTolerance(t float64) Option {
	return func(o *options) {
		if t > 0 {
			o.slopeTol = t
		}
	}
}

// WithMergeHinge unions the hinge into the frame instead of returning it
// as a separate child.
func WithMergeHinge(merge bool) Option {
	return func(o *options) {
		o.mergeHinge = merge
	}
}

// WithStep stops Combine after the given step and returns the geometry
// built so far.
func WithStep(step Step) Option {
	return func(o *options) {
		o.step = step
	}
}

// WithLogger logs pipeline progress to l instead of framecad.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithConcurrency limits the number of sizes CombineSizes builds at once.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// Step names a point in Combine where the pipeline may stop early.
type Step string

// Steps in pipeline order.
const (
	StepScaledParts      Step = "scaled_parts"
	StepChainedParts     Step = "chained_parts"
	StepBridgeShape      Step = "bridge&Shape"
	StepBridgeShapeHinge Step = "bridge&Shape&Hinge"
	StepFullSide         Step = "fullside"
	StepFinal            Step = "final"
)

// Steps lists all steps in pipeline order.
var Steps = []Step{StepScaledParts, StepChainedParts, StepBridgeShape, StepBridgeShapeHinge, StepFullSide, StepFinal}

// ParseStep resolves a step name. The empty string means StepFinal.
func ParseStep(s string) (Step, error) {
	if s == "" {
		return StepFinal, nil
	}
	for _, step := range Steps {
		if string(step) == s {
			return step, nil
		}
	}
	return "", fmt.Errorf("frame: unknown step %q", s)
}
