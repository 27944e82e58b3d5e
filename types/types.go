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

// Package types contains data types shared by all packages of the
// interpreter.
package types

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/rpn-interpreter/types

import (
	"time"
)

// Timestamp represents any timestamp in a form gathered from database
type Timestamp time.Time

// EvaluationID represents unique identifier of one evaluation, in UUID
// format
type EvaluationID string

// Expression represents infix expression entered by user
type Expression string

// ProducerMessage is a byte array representing message to be produced to
// Kafka topic
type ProducerMessage []byte

// DBDriver type for db driver enum
type DBDriver int

const (
	// DBDriverSQLite3 shows that db driver is sqlite
	DBDriverSQLite3 DBDriver = iota
	// DBDriverPostgres shows that db driver is postgres
	DBDriverPostgres
	// DBDriverGeneral general sql(used for mock now)
	DBDriverGeneral
)

// UIType represents the front end used to communicate with user
type UIType int

// UI types as enum
const (
	BasicUI UIType = iota
	EnhancedUI
)

// UI types string representation
const (
	uiTypeBasic    = "basic"
	uiTypeEnhanced = "enhanced"
)

// String function returns string representation of given UI type
func (u UIType) String() string {
	return [...]string{uiTypeBasic, uiTypeEnhanced}[u]
}

// CliFlags represents structure holding all command line arguments/flags.
type CliFlags struct {
	ImmediateExpression string
	EnhancedUI          bool
	ShowPostfix         bool
	ShowVersion         bool
	ShowAuthors         bool
	ShowConfiguration   bool
	PrintHistory        bool
	PerformCleanup      bool
	Verbose             bool
	MaxAge              string
}

// EvaluationRecord structure represents one record stored in `evaluations`
// table.
type EvaluationRecord struct {
	ID          EvaluationID
	Expression  Expression
	Postfix     string
	Succeeded   bool
	Result      float64
	ErrorText   string
	UIType      UIType
	EvaluatedAt Timestamp
}

// EvaluationEvent represents content of messages sent to the configured
// Kafka topic after each evaluation.
type EvaluationEvent struct {
	ID          EvaluationID `json:"id"`
	Expression  Expression   `json:"expression"`
	Postfix     string       `json:"postfix,omitempty"`
	Succeeded   bool         `json:"succeeded"`
	Result      *float64     `json:"result,omitempty"`
	Error       string       `json:"error,omitempty"`
	UI          string       `json:"ui"`
	EvaluatedAt string       `json:"evaluated_at"`
}

// NewEvaluationEvent converts evaluation record into event to be produced
func NewEvaluationEvent(record *EvaluationRecord) EvaluationEvent {
	event := EvaluationEvent{
		ID:          record.ID,
		Expression:  record.Expression,
		Postfix:     record.Postfix,
		Succeeded:   record.Succeeded,
		Error:       record.ErrorText,
		UI:          record.UIType.String(),
		EvaluatedAt: time.Time(record.EvaluatedAt).UTC().Format(time.RFC3339),
	}
	if record.Succeeded {
		result := record.Result
		event.Result = &result
	}
	return event
}
