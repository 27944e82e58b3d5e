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

package evaluator

import "fmt"

// UnmatchedParenError occurs when parentheses in infix expression are not
// balanced
type UnmatchedParenError struct {
	Paren string
	Err   error
}

func (e *UnmatchedParenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("UnmatchedParenError: unmatched '%s': %v", e.Paren, e.Err)
	}
	return fmt.Sprintf("UnmatchedParenError: unmatched '%s'", e.Paren)
}

// Unwrap returns the underlying stack error, if any
func (e *UnmatchedParenError) Unwrap() error {
	return e.Err
}

// UnknownOperatorError occurs when token is neither integer literal nor
// recognized operator
type UnknownOperatorError struct {
	Token string
}

func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("UnknownOperatorError: unknown token '%s'", e.Token)
}

// InsufficientOperandsError occurs when operator is applied while there are
// fewer than two values on stack
type InsufficientOperandsError struct {
	Operator string
	Err      error
}

func (e *InsufficientOperandsError) Error() string {
	return fmt.Sprintf("InsufficientOperandsError: not enough operands for '%s': %v", e.Operator, e.Err)
}

// Unwrap returns the underlying stack error
func (e *InsufficientOperandsError) Unwrap() error {
	return e.Err
}

// ExcessOperandsError occurs when more than one value remains on stack after
// the whole postfix expression has been processed
type ExcessOperandsError struct {
	Remaining int
}

func (e *ExcessOperandsError) Error() string {
	return fmt.Sprintf("ExcessOperandsError: %d values left on stack", e.Remaining)
}

// EmptyExpressionError occurs when there is nothing to evaluate
type EmptyExpressionError struct{}

func (e *EmptyExpressionError) Error() string {
	return "EmptyExpressionError"
}

// InvalidLiteralError occurs when integer literal can not be represented
type InvalidLiteralError struct {
	Literal string
	Err     error
}

func (e *InvalidLiteralError) Error() string {
	return fmt.Sprintf("InvalidLiteralError: '%s': %v", e.Literal, e.Err)
}

// Unwrap returns the underlying conversion error
func (e *InvalidLiteralError) Unwrap() error {
	return e.Err
}

// DivisionByZeroError occurs when divisor is zero
type DivisionByZeroError struct {
	Dividend float64
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("DivisionByZeroError: %v / 0", e.Dividend)
}
