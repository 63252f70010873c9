package convert

import (
	"context"
	"errors"
	"reflect"
	"testing"

	crdb "github.com/cockroachdb/errors"
)

type traceItem struct {
	calls []string
}

func stepRecord(name string) Step[traceItem] {
	return func(_ context.Context, item *traceItem) error {
		item.calls = append(item.calls, name)
		return nil
	}
}

func stepFail(_ context.Context, item *traceItem) error {
	item.calls = append(item.calls, "fail")
	return errors.New("mock step failed")
}

func stepPanic(_ context.Context, _ *traceItem) error {
	panic("boom")
}

func TestRunStages(t *testing.T) {
	tests := []struct {
		name      string
		stages    []Stage[traceItem]
		expected  []string
		wantErr   bool
		malformed bool
	}{
		{
			name:     "steps run in declaration order",
			stages:   []Stage[traceItem]{NewStage("one", stepRecord("a"), stepRecord("b"))},
			expected: []string{"a", "b"},
		},
		{
			name: "stages run sequentially",
			stages: []Stage[traceItem]{
				NewStage("first", stepRecord("a")),
				NewStage("second", stepRecord("b")),
			},
			expected: []string{"a", "b"},
		},
		{
			name: "error stops the item",
			stages: []Stage[traceItem]{
				NewStage("first", stepFail, stepRecord("never")),
				NewStage("second", stepRecord("never")),
			},
			expected: []string{"fail"},
			wantErr:  true,
		},
		{
			name: "panic becomes malformed error",
			stages: []Stage[traceItem]{
				NewStage("first", stepRecord("a")),
				NewStage("second", stepPanic, stepRecord("never")),
			},
			expected:  []string{"a"},
			wantErr:   true,
			malformed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &traceItem{}
			err := runStages(context.Background(), tt.stages, item)
			if (err != nil) != tt.wantErr {
				t.Fatalf("runStages() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.malformed && !crdb.Is(err, ErrMalformed) {
				t.Errorf("expected ErrMalformed, got %v", err)
			}
			if !reflect.DeepEqual(item.calls, tt.expected) {
				t.Errorf("got %v, expected %v", item.calls, tt.expected)
			}
		})
	}
}
