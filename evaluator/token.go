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
	"strconv"
	"strings"
)

// TokenKind represents the type of token
type TokenKind int

// Token kinds as enum
const (
	Literal TokenKind = iota
	Operator
	OpenParen
	CloseParen
)

const (
	openParenSymbol  = "("
	closeParenSymbol = ")"
)

// String function returns string representation of given token kind
func (k TokenKind) String() string {
	return [...]string{"literal", "operator", "open paren", "close paren"}[k]
}

// Token is an atomic unit of expression: integer literal, binary operator or
// parenthesis marker.
type Token struct {
	Kind   TokenKind
	Value  int64
	Symbol string
}

// LiteralToken constructs token for given integer
func LiteralToken(value int64) Token {
	return Token{Kind: Literal, Value: value}
}

// OperatorToken constructs token for given operator symbol
func OperatorToken(symbol string) Token {
	return Token{Kind: Operator, Symbol: symbol}
}

// String returns the token as it would appear in expression
func (t Token) String() string {
	switch t.Kind {
	case Literal:
		return strconv.FormatInt(t.Value, 10)
	case OpenParen:
		return openParenSymbol
	case CloseParen:
		return closeParenSymbol
	default:
		return t.Symbol
	}
}

// isDigits checks if the whole token consists of ASCII digits
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Tokenize splits the expression on whitespaces and classifies each token.
// Operators are recognized using the given operator table.
func Tokenize(expression string, operators OperatorTable) ([]Token, error) {
	fields := strings.Fields(expression)
	tokens := make([]Token, 0, len(fields))

	for _, field := range fields {
		switch {
		case isDigits(field):
			value, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return nil, &InvalidLiteralError{Literal: field, Err: err}
			}
			tokens = append(tokens, LiteralToken(value))
		case field == openParenSymbol:
			tokens = append(tokens, Token{Kind: OpenParen})
		case field == closeParenSymbol:
			tokens = append(tokens, Token{Kind: CloseParen})
		default:
			if _, found := operators[field]; !found {
				return nil, &UnknownOperatorError{Token: field}
			}
			tokens = append(tokens, OperatorToken(field))
		}
	}

	return tokens, nil
}

// JoinTokens returns tokens separated by single space
func JoinTokens(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, token := range tokens {
		parts[i] = token.String()
	}
	return strings.Join(parts, " ")
}
