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

package collections_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RedHatInsights/rpn-interpreter/collections"
)

// TestNewStackIsEmpty checks that freshly constructed stack has no values
func TestNewStackIsEmpty(t *testing.T) {
	s := collections.NewStack[int]()

	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Size())
}

// TestZeroValueStackIsUsable checks that zero value of Stack can be used
// directly
func TestZeroValueStackIsUsable(t *testing.T) {
	var s collections.Stack[string]

	s.Push("x")
	assert.False(t, s.IsEmpty())

	value, err := s.Pop()
	assert.NoError(t, err)
	assert.Equal(t, "x", value)
	assert.True(t, s.IsEmpty())
}

// TestPopFromEmptyStack checks that pop from fresh stack fails with
// EmptyStackError
func TestPopFromEmptyStack(t *testing.T) {
	s := collections.NewStack[int]()

	value, err := s.Pop()

	var emptyStackError *collections.EmptyStackError
	assert.True(t, errors.As(err, &emptyStackError), "EmptyStackError is expected")
	assert.Equal(t, "pop", emptyStackError.Operation)
	assert.Equal(t, 0, value)

	// state must not be corrupted
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Size())
}

// TestPeekFromEmptyStack checks that peek from fresh stack fails with
// EmptyStackError
func TestPeekFromEmptyStack(t *testing.T) {
	s := collections.NewStack[string]()

	_, err := s.Peek()

	var emptyStackError *collections.EmptyStackError
	assert.True(t, errors.As(err, &emptyStackError), "EmptyStackError is expected")
	assert.EqualError(t, err, "EmptyStackError: cannot peek from empty stack")
	assert.True(t, s.IsEmpty())
}

// TestPushPopOrder checks the LIFO ordering
func TestPushPopOrder(t *testing.T) {
	s := collections.NewStack[int]()
	for i := 1; i <= 5; i++ {
		s.Push(i)
		assert.Equal(t, i, s.Size())
	}

	for expected := 5; expected >= 1; expected-- {
		value, err := s.Pop()
		assert.NoError(t, err)
		assert.Equal(t, expected, value)
	}

	_, err := s.Pop()
	assert.Error(t, err)
}

// TestPeekDoesNotRemove checks that peek keeps the value on top of stack
func TestPeekDoesNotRemove(t *testing.T) {
	s := collections.NewStack[float64]()
	s.Push(1.5)
	s.Push(2.5)

	for i := 0; i < 3; i++ {
		value, err := s.Peek()
		assert.NoError(t, err)
		assert.Equal(t, 2.5, value)
		assert.Equal(t, 2, s.Size())
	}
}

// TestStackString checks the textual representation of stack
func TestStackString(t *testing.T) {
	var testScenarios = []struct {
		values   []string
		expected string
	}{
		{
			values:   []string{},
			expected: "STACK:  (top)",
		},
		{
			values:   []string{"+"},
			expected: "STACK: + (top)",
		},
		{
			values:   []string{"(", "+", "*"},
			expected: "STACK: (, +, * (top)",
		},
	}

	for _, scenario := range testScenarios {
		s := collections.NewStack[string]()
		for _, value := range scenario.values {
			s.Push(value)
		}
		assert.Equal(t, scenario.expected, s.String())
	}
}
