package arch

import (
	"context"
	"io"
	"iter"
	"log"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	catSearch  Category = "search"
	catRefresh Category = "refresh"
	catLog     Category = "log"
)

// testAction carries its own producer so each test scripts its results.
type testAction struct {
	category Category
	run      func(ctx context.Context, yield func(string) bool)
}

func (a testAction) Category() Category { return a.category }

type testInteractor struct {
	init  []string
	calls atomic.Int32
}

func (i *testInteractor) InitResults(ctx context.Context) iter.Seq[string] {
	if len(i.init) == 0 {
		return EmptyResults[string]()
	}
	return slices.Values(i.init)
}

func (i *testInteractor) ActionToResult(ctx context.Context, a testAction) iter.Seq[string] {
	i.calls.Add(1)
	return func(yield func(string) bool) { a.run(ctx, yield) }
}

// appendReducer records every folded result; results prefixed with "fail:"
// also emit an effect.
func appendReducer(prev []string, r string, fx Emitter[string]) []string {
	if len(r) > 5 && r[:5] == "fail:" {
		fx.Emit(r[5:])
	}
	return append(slices.Clone(prev), r)
}

func testPolicy(a testAction) Policy {
	switch a.category {
	case catRefresh:
		return Skip
	case catLog:
		return Enqueue
	default:
		return CancelAndStartNew
	}
}

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func newTestStore(t *testing.T, it *testInteractor) *Store[testAction, string, []string, string] {
	t.Helper()
	s := New(context.Background(), it, appendReducer, []string{}, WithPolicy(testPolicy), WithLogger(quietLogger()))
	t.Cleanup(s.Close)
	return s
}

func requireState(t *testing.T, s *Store[testAction, string, []string, string], want ...string) {
	t.Helper()
	require.Eventually(t, func() bool {
		return slices.Equal(s.State(), want)
	}, time.Second, 2*time.Millisecond, "state never became %v (last %v)", want, s.State())
}

// emit yields each value, stopping early when the consumer gives up.
func emit(values ...string) func(context.Context, func(string) bool) {
	return func(_ context.Context, yield func(string) bool) {
		for _, v := range values {
			if !yield(v) {
				return
			}
		}
	}
}
