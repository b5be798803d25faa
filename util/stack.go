package util

// Stack is a LIFO used for nested views.
type Stack[T any] struct {
	items []T
}

// Push puts item on top.
func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
}

// Pop removes the top item. ok is false on an empty stack.
func (s *Stack[T]) Pop() (item T, ok bool) {
	if len(s.items) == 0 {
		return
	}
	idx := len(s.items) - 1
	item = s.items[idx]
	s.items = s.items[:idx]
	return item, true
}

// Peek returns the top item without removing it.
func (s *Stack[T]) Peek() (item T, ok bool) {
	if len(s.items) == 0 {
		return
	}
	return s.items[len(s.items)-1], true
}

// Len returns the number of items.
func (s *Stack[T]) Len() int {
	return len(s.items)
}
