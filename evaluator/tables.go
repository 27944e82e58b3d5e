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

// BinaryOperator computes value from left and right operands
type BinaryOperator func(op1, op2 float64) (float64, error)

// OperatorTable maps operator symbol to its implementation
type OperatorTable map[string]BinaryOperator

// PrecedenceTable maps operator symbol (and open paren) to precedence level.
// Higher value binds tighter.
type PrecedenceTable map[string]int

// Precedence levels
const (
	parenPrecedence          = 1
	additivePrecedence       = 2
	multiplicativePrecedence = 3
)

// DefaultPrecedence returns precedence table for the four arithmetic
// operators. Open paren has the lowest rank so it is never popped by
// precedence comparison.
func DefaultPrecedence() PrecedenceTable {
	return PrecedenceTable{
		"*":             multiplicativePrecedence,
		"/":             multiplicativePrecedence,
		"+":             additivePrecedence,
		"-":             additivePrecedence,
		openParenSymbol: parenPrecedence,
	}
}

// DefaultOperators returns operator table with + - * and /
func DefaultOperators() OperatorTable {
	return OperatorTable{
		"*": func(op1, op2 float64) (float64, error) {
			return op1 * op2, nil
		},
		"+": func(op1, op2 float64) (float64, error) {
			return op1 + op2, nil
		},
		"/": divide,
		"-": func(op1, op2 float64) (float64, error) {
			return op1 - op2, nil
		},
	}
}

func divide(op1, op2 float64) (float64, error) {
	if op2 == 0 {
		return 0, &DivisionByZeroError{Dividend: op1}
	}
	return op1 / op2, nil
}
