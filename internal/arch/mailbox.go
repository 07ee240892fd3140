package arch

// offer puts v into a single-slot mailbox, replacing an unread value.
// Callers serialize offers to the same mailbox, so it never blocks.
func offer[T any](box chan T, v T) {
	select {
	case box <- v:
		return
	default:
	}
	select {
	case <-box:
	default:
	}
	select {
	case box <- v:
	default:
	}
}
