package convert

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
)

// Step is a single operation on one record. A non-nil error ends the
// record's run: errors marked ErrSkip drop it quietly, anything else drops
// it as a failure.
type Step[T any] func(ctx context.Context, item *T) error

// Stage is a named group of steps. Steps run in declaration order; the next
// stage starts only when every step of the current one succeeded.
type Stage[T any] struct {
	name  string
	steps []Step[T]
}

// NewStage constructs a Stage from the provided steps.
func NewStage[T any](name string, steps ...Step[T]) Stage[T] {
	return Stage[T]{name: name, steps: steps}
}

// runStages applies stages to item in order. A panic in any step is turned
// into an ErrMalformed error for this item only.
func runStages[T any](ctx context.Context, stages []Stage[T], item *T) (err error) {
	current := ""
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(ErrMalformed, "%s: %v", current, fmt.Sprint(r))
		}
	}()

	for _, stage := range stages {
		current = stage.name
		for _, step := range stage.steps {
			if err := step(ctx, item); err != nil {
				return err
			}
		}
	}
	return nil
}
