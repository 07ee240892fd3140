package arch

import (
	"context"
	"iter"
)

// Category groups actions for admission decisions. Every action variant
// reports a fixed category.
type Category string

// Action is implemented by every action variant accepted by a Store.
type Action interface {
	Category() Category
}

// Interactor maps actions to lazy result sequences.
//
// Both methods may be invoked concurrently. Implementations must stop
// yielding promptly once ctx is done and must report domain failures as
// results, never as panics.
type Interactor[A Action, R any] interface {
	// InitResults is started once when the store is created. It may be
	// empty or never end.
	InitResults(ctx context.Context) iter.Seq[R]
	// ActionToResult is started once per admitted action.
	ActionToResult(ctx context.Context, action A) iter.Seq[R]
}

// EmptyResults is an InitResults body for interactors without a startup
// stream.
func EmptyResults[R any]() iter.Seq[R] {
	return func(func(R) bool) {}
}

// Emitter publishes effects from inside a reducer.
type Emitter[E any] interface {
	Emit(effect E)
}

// Reducer folds one result into the previous state. It must handle every
// result variant and must not call back into the store.
type Reducer[S, R, E any] func(prev S, result R, effects Emitter[E]) S
