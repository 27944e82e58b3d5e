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

// Package evaluator contains the implementation of arithmetic expression
// evaluator. Infix expression with tokens separated by whitespaces is
// converted into postfix notation first and then the postfix form is
// evaluated using an operand stack.
//
// Example:
//
//	value, ok := evaluator.Evaluate("( 2 + 3 ) * 4")
//	// value == 20.0, ok == true
package evaluator

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/rpn-interpreter/evaluator

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	expressionAttribute    = "expression"
	evaluationErrorMessage = "Evaluation error"
)

// Evaluator holds precedence and operator tables used during conversion and
// evaluation. The tables are only read so one Evaluator can be used from
// multiple goroutines.
type Evaluator struct {
	Precedence PrecedenceTable
	Operators  OperatorTable
}

// New constructs evaluator for + - * / operators
func New() *Evaluator {
	return &Evaluator{
		Precedence: DefaultPrecedence(),
		Operators:  DefaultOperators(),
	}
}

var defaultEvaluator = New()

// EvaluateExpression converts infix expression into postfix and evaluates
// it. Any failure is returned as error.
func (e *Evaluator) EvaluateExpression(expression string) (float64, error) {
	_, value, err := e.EvaluateWithPostfix(expression)
	return value, err
}

// EvaluateWithPostfix converts infix expression into postfix and evaluates
// it. Postfix form is returned whenever the conversion succeeds, even when
// the evaluation itself fails.
func (e *Evaluator) EvaluateWithPostfix(expression string) (postfix string, value float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			value = 0
			err = fmt.Errorf("evaluation of '%s' panicked: %v", expression, r)
		}
	}()

	tokens, err := Tokenize(expression, e.Operators)
	if err != nil {
		return "", 0, err
	}

	postfixTokens, err := e.ToPostfix(tokens)
	if err != nil {
		return "", 0, err
	}

	postfix = JoinTokens(postfixTokens)
	value, err = e.EvaluatePostfix(postfixTokens)
	return postfix, value, err
}

// Evaluate computes value of infix expression. The second return value is
// false when the expression could not be evaluated; no error detail is
// provided in that case.
func (e *Evaluator) Evaluate(expression string) (float64, bool) {
	value, err := e.EvaluateExpression(expression)
	if err != nil {
		log.Debug().Str(expressionAttribute, expression).Err(err).Msg(evaluationErrorMessage)
		return 0, false
	}
	return value, true
}

// Evaluate computes value of infix expression using the default operator
// and precedence tables.
func Evaluate(expression string) (float64, bool) {
	return defaultEvaluator.Evaluate(expression)
}

// EvaluateExpression computes value of infix expression using the default
// tables and returns structured error on failure.
func EvaluateExpression(expression string) (float64, error) {
	return defaultEvaluator.EvaluateExpression(expression)
}

// InfixToPostfix converts the infix expression into postfix string using the
// default tables.
func InfixToPostfix(expression string) (string, error) {
	return defaultEvaluator.InfixToPostfix(expression)
}

// EvaluatePostfixString evaluates postfix string using the default tables.
func EvaluatePostfixString(postfix string) (float64, error) {
	return defaultEvaluator.EvaluatePostfixString(postfix)
}
