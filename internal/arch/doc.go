// Package arch implements a unidirectional state container.
//
// A Store turns actions into result sequences through an Interactor, folds
// every result into a single observable state with a Reducer, and publishes
// one-shot effects on a separate channel. Each action category carries an
// admission Policy that decides whether a new action skips, cancels or runs
// alongside the work already in flight for that category.
//
// All results, whether they come from the initial stream or from actions,
// are applied by one goroutine, so reducer calls never overlap.
package arch
