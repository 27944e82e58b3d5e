/*
Copyright © 2026 Red Hat, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package collections contains simple generic containers used by the
// expression evaluator.
package collections

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/rpn-interpreter/collections

import (
	"fmt"
	"strings"
)

// Stack is a LIFO container. Zero value is an empty stack ready to use. Stack
// is not safe for concurrent use, each instance is expected to be owned by
// one routine.
type Stack[T any] struct {
	items []T
}

// NewStack constructs new empty stack
func NewStack[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Push appends given value to the top of stack.
func (s *Stack[T]) Push(value T) {
	s.items = append(s.items, value)
}

// Pop removes and returns the value from the top of stack. EmptyStackError is
// returned when there is nothing to pop.
func (s *Stack[T]) Pop() (T, error) {
	var zero T

	n := len(s.items)
	if n == 0 {
		return zero, &EmptyStackError{Operation: popOperation}
	}

	value := s.items[n-1]
	// don't keep reference to popped value in the backing array
	s.items[n-1] = zero
	s.items = s.items[:n-1]
	return value, nil
}

// Peek returns the value from the top of stack without removing it.
func (s *Stack[T]) Peek() (T, error) {
	var zero T

	n := len(s.items)
	if n == 0 {
		return zero, &EmptyStackError{Operation: peekOperation}
	}
	return s.items[n-1], nil
}

// Size returns current depth of stack
func (s *Stack[T]) Size() int {
	return len(s.items)
}

// IsEmpty returns true if and only if there are no values on stack
func (s *Stack[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// String returns textual representation of stack content, the last item
// being the top of stack.
func (s *Stack[T]) String() string {
	values := make([]string, len(s.items))
	for i, item := range s.items {
		values[i] = fmt.Sprint(item)
	}
	return "STACK: " + strings.Join(values, ", ") + " (top)"
}
