// Package viewmodel defines the weather screen's actions, results, states
// and effects, and the store that folds them.
package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jask/jaskweather/internal/arch"
	"github.com/jask/jaskweather/internal/domain"
)

// Store is the weather screen's state container.
type Store = arch.Store[Action, Result, State, Effect]

// Interactor produces results for the weather screen.
type Interactor = arch.Interactor[Action, Result]

// New starts a store in the Loading state. A nil logger uses log.Default.
func New(ctx context.Context, interactor Interactor, logger *log.Logger) *Store {
	opts := []arch.Option{arch.WithPolicy(Policy)}
	if logger != nil {
		opts = append(opts, arch.WithLogger(logger))
	}
	return arch.New(ctx, interactor, Reduce, State(Loading{}), opts...)
}

// Message is the text shown to the user for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "The request timed out. Try again."
	}
	e := domain.AsError(err)
	switch e.Code {
	case domain.CodeNetwork:
		return "No connection. Check your network and try again."
	case domain.CodeTimeout:
		return "The request timed out. Try again."
	case domain.CodeAPIKey:
		return "The API key is missing or invalid. Set it with -set-key."
	case domain.CodeCityNotFound:
		if e.Suggestion != "" {
			return fmt.Sprintf("City not found. Did you mean %s?", e.Suggestion)
		}
		return "City not found."
	case domain.CodeServer:
		if e.Status != 0 {
			return fmt.Sprintf("Server error occurred (%d).", e.Status)
		}
		return "Server error occurred."
	case domain.CodeInvalidInput:
		if e.Message != "" {
			return e.Message
		}
		return "Invalid input."
	default:
		return "Something went wrong."
	}
}
