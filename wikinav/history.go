package wikinav

// History is a browser-like back/forward history.
//
// The caller hands in its current state on every move so that going back and then
// forward returns to exactly where it was. Each direction keeps at most limit entries;
// the oldest entries are dropped first.
type History[T any] struct {
	back    []T
	forward []T
	limit   int
}

// NewHistory creates a history holding at most limit entries per direction (<= 0 means unbounded).
func NewHistory[T any](limit int) *History[T] {
	return &History[T]{limit: limit}
}

func (h *History[T]) push(stack []T, state T) []T {
	stack = append(stack, state)
	if h.limit > 0 && len(stack) > h.limit {
		stack = append(stack[:0:0], stack[len(stack)-h.limit:]...)
	}
	return stack
}

func pop[T any](stack []T) ([]T, T) {
	last := len(stack) - 1
	state := stack[last]
	var zero T
	stack[last] = zero
	return stack[:last], state
}

// Visit records current as the page being left and discards the forward history.
func (h *History[T]) Visit(current T) {
	h.back = h.push(h.back, current)
	h.forward = nil
}

// Back returns the previous state and remembers current for Forward.
func (h *History[T]) Back(current T) (T, bool) {
	if len(h.back) == 0 {
		var zero T
		return zero, false
	}
	var prev T
	h.back, prev = pop(h.back)
	h.forward = h.push(h.forward, current)
	return prev, true
}

// Forward returns the next state and remembers current for Back.
func (h *History[T]) Forward(current T) (T, bool) {
	if len(h.forward) == 0 {
		var zero T
		return zero, false
	}
	var next T
	h.forward, next = pop(h.forward)
	h.back = h.push(h.back, current)
	return next, true
}

// CanGoBack reports whether Back would succeed.
func (h *History[T]) CanGoBack() bool { return len(h.back) > 0 }

// CanGoForward reports whether Forward would succeed.
func (h *History[T]) CanGoForward() bool { return len(h.forward) > 0 }

// Depth returns the number of back and forward entries.
func (h *History[T]) Depth() (back, forward int) { return len(h.back), len(h.forward) }

// Clear drops all entries.
func (h *History[T]) Clear() {
	h.back = nil
	h.forward = nil
}
