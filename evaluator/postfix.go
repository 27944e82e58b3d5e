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

import (
	"github.com/RedHatInsights/rpn-interpreter/collections"
)

// EvaluatePostfix computes value of expression represented in postfix
// notation. The right operand is the most recently pushed value.
func (e *Evaluator) EvaluatePostfix(postfix []Token) (float64, error) {
	operandStack := collections.NewStack[float64]()

	for _, token := range postfix {
		if token.Kind == Literal {
			operandStack.Push(float64(token.Value))
			continue
		}

		fn, found := e.Operators[token.Symbol]
		if token.Kind != Operator || !found {
			return 0, &UnknownOperatorError{Token: token.String()}
		}

		op2, err := operandStack.Pop()
		if err != nil {
			return 0, &InsufficientOperandsError{Operator: token.Symbol, Err: err}
		}
		op1, err := operandStack.Pop()
		if err != nil {
			return 0, &InsufficientOperandsError{Operator: token.Symbol, Err: err}
		}

		result, err := fn(op1, op2)
		if err != nil {
			return 0, err
		}
		operandStack.Push(result)
	}

	switch operandStack.Size() {
	case 0:
		return 0, &EmptyExpressionError{}
	case 1:
		value, _ := operandStack.Pop()
		return value, nil
	default:
		return 0, &ExcessOperandsError{Remaining: operandStack.Size()}
	}
}

// EvaluatePostfixString tokenizes postfix expression like "2 3 4 * +" and
// computes its value.
func (e *Evaluator) EvaluatePostfixString(postfix string) (float64, error) {
	tokens, err := Tokenize(postfix, e.Operators)
	if err != nil {
		return 0, err
	}
	return e.EvaluatePostfix(tokens)
}
