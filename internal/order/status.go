package order

// The order lifecycle runs pending → packed → collected for collection
// orders and pending → processing → completed for prepared orders.
// Cancellation is allowed from any non-terminal state. Collected,
// completed and cancelled are terminal.
var transitions = map[Status][]Status{
	StatusPending:    {StatusPacked, StatusProcessing, StatusCancelled},
	StatusPacked:     {StatusCollected, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusCancelled},
	StatusCollected:  {},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s Status) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to
// another.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func Terminal(s Status) bool {
	return ValidStatus(s) && len(transitions[s]) == 0
}

// ActiveStatuses are the states the prep sheet counts toward kitchen
// planning.
func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusPacked, StatusProcessing}
}
