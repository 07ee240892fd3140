package arch

// Policy decides what happens to an action whose category already has work
// in flight.
type Policy int

const (
	// CancelAndStartNew cancels the running task of the category and starts
	// the new one.
	CancelAndStartNew Policy = iota
	// Skip refuses the new action while a task of the category is running.
	Skip
	// Enqueue starts the new action alongside any running ones. Enqueued
	// tasks are not tracked per category and never cancel each other.
	Enqueue
)

func (p Policy) String() string {
	switch p {
	case CancelAndStartNew:
		return "cancel_and_start_new"
	case Skip:
		return "skip"
	case Enqueue:
		return "enqueue"
	default:
		return "unknown"
	}
}

// PolicyFunc resolves the admission policy of an action.
type PolicyFunc[A Action] func(action A) Policy

// DefaultPolicy admits every action with CancelAndStartNew.
func DefaultPolicy[A Action](A) Policy { return CancelAndStartNew }
