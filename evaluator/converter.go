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

// This source file contains the conversion of infix expression into postfix
// (RPN) notation. The conversion is based on the shunting-yard algorithm
// restricted to left-associative binary operators:
//
// - literals are copied to output directly
// - open paren is pushed onto operator stack
// - close paren pops operators to output until the matching open paren is found
// - operator pops all operators with greater or equal precedence, then it is pushed
// - remaining operators are popped to output at the end

import (
	"github.com/RedHatInsights/rpn-interpreter/collections"
)

// precedenceOf returns precedence level of token placed on operator stack
func (e *Evaluator) precedenceOf(token Token) (int, error) {
	symbol := token.Symbol
	if token.Kind == OpenParen {
		symbol = openParenSymbol
	}

	precedence, found := e.Precedence[symbol]
	if !found {
		return 0, &UnknownOperatorError{Token: token.String()}
	}
	return precedence, nil
}

// ToPostfix converts sequence of infix tokens into sequence of postfix
// tokens. Parenthesis tokens never appear in the output.
func (e *Evaluator) ToPostfix(tokens []Token) ([]Token, error) {
	opStack := collections.NewStack[Token]()
	postfix := make([]Token, 0, len(tokens))

	for _, token := range tokens {
		switch token.Kind {
		case Literal:
			postfix = append(postfix, token)
		case OpenParen:
			opStack.Push(token)
		case CloseParen:
			for {
				top, err := opStack.Pop()
				if err != nil {
					return nil, &UnmatchedParenError{Paren: closeParenSymbol, Err: err}
				}
				if top.Kind == OpenParen {
					break
				}
				postfix = append(postfix, top)
			}
		case Operator:
			precedence, err := e.precedenceOf(token)
			if err != nil {
				return nil, err
			}
			for !opStack.IsEmpty() {
				// stack is not empty so peek can't fail
				top, _ := opStack.Peek()
				topPrecedence, err := e.precedenceOf(top)
				if err != nil {
					return nil, err
				}
				if topPrecedence < precedence {
					break
				}
				// equal precedence pops the operator already on stack
				// which gives left associativity
				_, _ = opStack.Pop()
				postfix = append(postfix, top)
			}
			opStack.Push(token)
		default:
			return nil, &UnknownOperatorError{Token: token.String()}
		}
	}

	for !opStack.IsEmpty() {
		top, _ := opStack.Pop()
		if top.Kind == OpenParen {
			return nil, &UnmatchedParenError{Paren: openParenSymbol}
		}
		postfix = append(postfix, top)
	}

	return postfix, nil
}

// InfixToPostfix tokenizes the infix expression and returns its postfix form
// with tokens separated by single space.
func (e *Evaluator) InfixToPostfix(expression string) (string, error) {
	tokens, err := Tokenize(expression, e.Operators)
	if err != nil {
		return "", err
	}

	postfix, err := e.ToPostfix(tokens)
	if err != nil {
		return "", err
	}

	return JoinTokens(postfix), nil
}
