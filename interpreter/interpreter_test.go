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

package interpreter_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/RedHatInsights/rpn-interpreter/conf"
	"github.com/RedHatInsights/rpn-interpreter/interpreter"
	"github.com/RedHatInsights/rpn-interpreter/tests/mocks"
	"github.com/RedHatInsights/rpn-interpreter/types"
	"github.com/RedHatInsights/rpn-interpreter/ui"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

// newBasicInterpreter constructs interpreter with basic UI reading given
// input and writing into the returned buffer
func newBasicInterpreter(input string) (*interpreter.Interpreter, *bytes.Buffer) {
	out := new(bytes.Buffer)
	controller := ui.NewBasicUI(strings.NewReader(input), out)
	return interpreter.New(controller, types.BasicUI), out
}

// TestRunEvaluator checks values and messages displayed for expressions
func TestRunEvaluator(t *testing.T) {
	type testCase struct {
		name       string
		expression string
		expected   string
		succeeded  bool
	}

	testCases := []testCase{
		{"precedence", "2 + 3 * 4", "14.0\n", true},
		{"parenthesis", "( 2 + 3 ) * 4", "20.0\n", true},
		{"left associativity", "10 - 4 - 3", "3.0\n", true},
		{"fraction", "5 / 2", "2.5\n", true},
		{"zero result is displayed", "2 - 2", "0.0\n", true},
		{"large value", "100000000000 * 1000000000", "1e+20\n", true},
		{"insufficient operands", "2 +", "Could not evaluate expression:2 +\n", false},
		{"unknown token", "2 ^ 3", "Could not evaluate expression:2 ^ 3\n", false},
		{"unmatched paren", "( 2 + 3", "Could not evaluate expression:( 2 + 3\n", false},
		{"division by zero", "1 / 0", "Could not evaluate expression:1 / 0\n", false},
		{"empty expression", "", "Could not evaluate expression:\n", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			interp, out := newBasicInterpreter("")

			succeeded := interp.RunEvaluator(tc.expression)

			assert.Equal(t, tc.succeeded, succeeded)
			assert.Equal(t, tc.expected, out.String())
		})
	}
}

// TestRunEvaluatorShowPostfix checks that postfix form is displayed before
// the value
func TestRunEvaluatorShowPostfix(t *testing.T) {
	interp, out := newBasicInterpreter("")
	interp.ShowPostfix = true

	interp.RunEvaluator("2 + 3 * 4")

	assert.Equal(t, "Postfix: 2 3 4 * +\n14.0\n", out.String())
}

// TestRunEvaluatorShowPostfixOnFailure checks that postfix form is not
// displayed for expressions that can not be evaluated
func TestRunEvaluatorShowPostfixOnFailure(t *testing.T) {
	interp, out := newBasicInterpreter("")
	interp.ShowPostfix = true

	// conversion succeeds, evaluation fails
	assert.False(t, interp.RunEvaluator("2 +"))
	// conversion fails
	assert.False(t, interp.RunEvaluator("( 1 + 2"))

	assert.Equal(t,
		"Could not evaluate expression:2 +\nCould not evaluate expression:( 1 + 2\n",
		out.String())
}

// TestRunEvaluatorRecordsEvaluation checks that evaluation record is written
// into storage and published via producer
func TestRunEvaluatorRecordsEvaluation(t *testing.T) {
	interp, _ := newBasicInterpreter("")

	storage := mocks.Storage{}
	storage.On("WriteEvaluationRecord", mock.MatchedBy(func(record *types.EvaluationRecord) bool {
		return record.Succeeded &&
			record.Result == 14.0 &&
			record.Expression == "2 + 3 * 4" &&
			record.Postfix == "2 3 4 * +" &&
			record.UIType == types.BasicUI &&
			len(record.ID) == 36
	})).Return(nil)

	notifier := mocks.Producer{}
	notifier.On("ProduceMessage", mock.MatchedBy(func(msg types.ProducerMessage) bool {
		var event types.EvaluationEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			return false
		}
		return event.Succeeded &&
			event.Result != nil && *event.Result == 14.0 &&
			event.Postfix == "2 3 4 * +" &&
			event.UI == "basic"
	})).Return(int32(0), int64(1), nil)

	interp.Storage = &storage
	interp.Notifier = &notifier

	assert.True(t, interp.RunEvaluator("2 + 3 * 4"))

	storage.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

// TestRunEvaluatorRecordsFailure checks that error text of failed evaluation
// is recorded
func TestRunEvaluatorRecordsFailure(t *testing.T) {
	interp, _ := newBasicInterpreter("")

	storage := mocks.Storage{}
	storage.On("WriteEvaluationRecord", mock.MatchedBy(func(record *types.EvaluationRecord) bool {
		return !record.Succeeded &&
			record.Postfix == "1 0 /" &&
			strings.HasPrefix(record.ErrorText, "DivisionByZeroError")
	})).Return(nil)

	notifier := mocks.Producer{}
	notifier.On("ProduceMessage", mock.MatchedBy(func(msg types.ProducerMessage) bool {
		var event types.EvaluationEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			return false
		}
		return !event.Succeeded && event.Result == nil && event.Error != ""
	})).Return(int32(0), int64(2), nil)

	interp.Storage = &storage
	interp.Notifier = &notifier

	assert.False(t, interp.RunEvaluator("1 / 0"))

	storage.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

// TestRunEvaluatorStorageAndProducerErrors checks that errors from storage
// and producer do not affect displayed value
func TestRunEvaluatorStorageAndProducerErrors(t *testing.T) {
	interp, out := newBasicInterpreter("")

	storage := mocks.Storage{}
	storage.On("WriteEvaluationRecord", mock.Anything).Return(errors.New("storage error"))

	notifier := mocks.Producer{}
	notifier.On("ProduceMessage", mock.Anything).Return(int32(0), int64(-1), errors.New("producer error"))

	interp.Storage = &storage
	interp.Notifier = &notifier

	assert.True(t, interp.RunEvaluator("6 / 3"))
	assert.Equal(t, "2.0\n", out.String())

	storage.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

// TestRunEvaluatorLogsFailure checks that evaluation failure is logged at
// debug level
func TestRunEvaluatorLogsFailure(t *testing.T) {
	buf := new(bytes.Buffer)

	originalLogger := log.Logger
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = zerolog.New(buf)
	defer func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}()

	interp, _ := newBasicInterpreter("")
	interp.RunEvaluator("2 ^ 3")

	assert.Contains(t, buf.String(), "Evaluation error")
	assert.Contains(t, buf.String(), "UnknownOperatorError")
	assert.Contains(t, buf.String(), `"expression":"2 ^ 3"`)
}

// TestRunREPL checks the whole session with basic UI
func TestRunREPL(t *testing.T) {
	interp, out := newBasicInterpreter("1 + 1\n\n  ( 2 + 3 ) * 4  \nexit\n2 + 2\n")

	err := interp.RunREPL(nil)
	assert.NoError(t, err)

	expected := interpreter.WelcomeMessage("exit") + "\n" +
		">>> 2.0\n" +
		">>> Could not evaluate expression:\n" +
		">>> 20.0\n" +
		">>> "
	assert.Equal(t, expected, out.String())
}

// TestRunREPLEndOfInput checks that REPL finishes when there is no more
// input
func TestRunREPLEndOfInput(t *testing.T) {
	interp, out := newBasicInterpreter("3 * 3")

	err := interp.RunREPL(nil)
	assert.NoError(t, err)

	assert.Equal(t, interpreter.WelcomeMessage("exit")+"\n>>> 9.0\n>>> ", out.String())
}

// TestRunREPLCustomExitCommand checks that exit command can be changed
func TestRunREPLCustomExitCommand(t *testing.T) {
	interp, out := newBasicInterpreter("exit\nquit\n")
	interp.ExitCommand = "quit"
	interp.Welcome = "Hello"

	err := interp.RunREPL(nil)
	assert.NoError(t, err)

	assert.Equal(t, "Hello\n>>> Could not evaluate expression:exit\n>>> ", out.String())
}

// TestRunREPLEnhancedUI checks the session with enhanced UI where welcome
// banner is displayed raw
func TestRunREPLEnhancedUI(t *testing.T) {
	out := new(bytes.Buffer)
	controller := ui.NewEnhancedUI(strings.NewReader("2 * 3\nexit\n"), out)
	interp := interpreter.New(controller, types.EnhancedUI)

	err := interp.RunREPL(&ui.DisplayOptions{Raw: true})
	assert.NoError(t, err)

	expected := interpreter.WelcomeMessage("exit") + "\n" +
		"\nIn  [1]: Out [1]: 6.0\n" +
		"\nIn  [2]: "
	assert.Equal(t, expected, out.String())
}

// TestRunREPLHistoryCommand checks that the latest evaluations are displayed
// oldest first
func TestRunREPLHistoryCommand(t *testing.T) {
	interp, out := newBasicInterpreter("history\nexit\n")
	interp.Welcome = "Hello"

	storage := mocks.Storage{}
	storage.On("ReadEvaluationHistory", 10).Return([]types.EvaluationRecord{
		{Expression: "2 ^ 2", ErrorText: "UnknownOperatorError: unknown token '^'"},
		{Expression: "1 + 1", Succeeded: true, Result: 2},
	}, nil)
	interp.Storage = &storage

	err := interp.RunREPL(nil)
	assert.NoError(t, err)

	assert.Equal(t,
		"Hello\n>>> 1 + 1 = 2.0\n2 ^ 2 -> UnknownOperatorError: unknown token '^'\n>>> ",
		out.String())
	storage.AssertExpectations(t)
}

// TestRunREPLHistoryCommandEmpty checks the message displayed for empty
// history
func TestRunREPLHistoryCommandEmpty(t *testing.T) {
	interp, out := newBasicInterpreter("history\nexit\n")
	interp.Welcome = "Hello"

	err := interp.RunREPL(nil)
	assert.NoError(t, err)

	assert.Equal(t, "Hello\n>>> History is empty\n>>> ", out.String())
}

// TestRunREPLHistoryCommandError checks that nothing is displayed when
// history can not be read
func TestRunREPLHistoryCommandError(t *testing.T) {
	interp, out := newBasicInterpreter("history\nexit\n")
	interp.Welcome = "Hello"

	storage := mocks.Storage{}
	storage.On("ReadEvaluationHistory", 10).Return(nil, errors.New("storage error"))
	interp.Storage = &storage

	err := interp.RunREPL(nil)
	assert.NoError(t, err)

	assert.Equal(t, "Hello\n>>> >>> ", out.String())
}

// failingReader always fails
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("read error")
}

// TestRunREPLInputError checks that input errors are propagated
func TestRunREPLInputError(t *testing.T) {
	out := new(bytes.Buffer)
	interp := interpreter.New(ui.NewBasicUI(failingReader{}, out), types.BasicUI)

	err := interp.RunREPL(nil)
	assert.EqualError(t, err, "read error")
}

// TestRunWithIOImmediateMode checks evaluation of expression given on
// command line
func TestRunWithIOImmediateMode(t *testing.T) {
	out := new(bytes.Buffer)
	config := conf.ConfigStruct{}

	status := interpreter.RunWithIO(&config, types.CliFlags{
		ImmediateExpression: "( 1 + 2 ) * 3",
	}, strings.NewReader(""), out)

	assert.Equal(t, interpreter.ExitStatusOK, status)
	assert.Equal(t, "9.0\n", out.String())
}

// TestRunWithIOImmediateModeIgnoresEnhancedUI checks that immediate mode
// uses basic UI even when enhanced UI is configured
func TestRunWithIOImmediateModeIgnoresEnhancedUI(t *testing.T) {
	out := new(bytes.Buffer)
	config := conf.ConfigStruct{UI: conf.UIConfiguration{Enhanced: true}}

	status := interpreter.RunWithIO(&config, types.CliFlags{
		ImmediateExpression: "2 +",
		ShowPostfix:         true,
	}, strings.NewReader(""), out)

	assert.Equal(t, interpreter.ExitStatusOK, status)
	assert.Equal(t, "Could not evaluate expression:2 +\n", out.String())
}

// TestRunWithIOBasicREPL checks REPL started without flags
func TestRunWithIOBasicREPL(t *testing.T) {
	out := new(bytes.Buffer)
	config := conf.ConfigStruct{}

	status := interpreter.RunWithIO(&config, types.CliFlags{},
		strings.NewReader("8 / 4\nexit\n"), out)

	assert.Equal(t, interpreter.ExitStatusOK, status)
	assert.Equal(t, interpreter.WelcomeMessage("exit")+"\n>>> 2.0\n>>> ", out.String())
}

// TestRunWithIOEnhancedREPL checks REPL started with enhanced UI and UI
// settings read from configuration
func TestRunWithIOEnhancedREPL(t *testing.T) {
	out := new(bytes.Buffer)
	config := conf.ConfigStruct{
		UI: conf.UIConfiguration{
			Welcome:     "Ready.",
			ExitCommand: "quit",
		},
	}

	status := interpreter.RunWithIO(&config, types.CliFlags{EnhancedUI: true},
		strings.NewReader("7 - 2\nquit\n"), out)

	assert.Equal(t, interpreter.ExitStatusOK, status)
	assert.Equal(t, "Ready.\n\nIn  [1]: Out [1]: 5.0\n\nIn  [2]: ", out.String())
}

// TestRunWithIOCustomExitCommandInWelcome checks that default banner
// mentions configured exit command
func TestRunWithIOCustomExitCommandInWelcome(t *testing.T) {
	out := new(bytes.Buffer)
	config := conf.ConfigStruct{
		UI: conf.UIConfiguration{ExitCommand: "bye"},
	}

	status := interpreter.RunWithIO(&config, types.CliFlags{},
		strings.NewReader("bye\n"), out)

	assert.Equal(t, interpreter.ExitStatusOK, status)
	assert.Equal(t, interpreter.WelcomeMessage("bye")+"\n>>> ", out.String())
}

// TestRunWithIOCleanupWithoutHistory checks that cleanup requires enabled
// history
func TestRunWithIOCleanupWithoutHistory(t *testing.T) {
	config := conf.ConfigStruct{}

	status := interpreter.RunWithIO(&config, types.CliFlags{PerformCleanup: true},
		strings.NewReader(""), new(bytes.Buffer))
	assert.Equal(t, interpreter.ExitStatusConfiguration, status)

	status = interpreter.RunWithIO(&config, types.CliFlags{PrintHistory: true},
		strings.NewReader(""), new(bytes.Buffer))
	assert.Equal(t, interpreter.ExitStatusConfiguration, status)
}

// TestRunWithIOStorageError checks exit status when storage can not be set up
func TestRunWithIOStorageError(t *testing.T) {
	config := conf.ConfigStruct{
		History: conf.HistoryConfiguration{
			Enabled: true,
			Driver:  "unknown",
		},
	}

	status := interpreter.RunWithIO(&config, types.CliFlags{ImmediateExpression: "1 + 1"},
		strings.NewReader(""), new(bytes.Buffer))
	assert.Equal(t, interpreter.ExitStatusStorageError, status)
}

// TestRunWithIOKafkaBrokerError checks exit status when Kafka producer can
// not be set up
func TestRunWithIOKafkaBrokerError(t *testing.T) {
	config := conf.ConfigStruct{
		Kafka: conf.KafkaConfiguration{
			Enabled:   true,
			Addresses: "",
			Topic:     "rpn_interpreter_evaluations",
		},
	}

	status := interpreter.RunWithIO(&config, types.CliFlags{ImmediateExpression: "1 + 1"},
		strings.NewReader(""), new(bytes.Buffer))
	assert.Equal(t, interpreter.ExitStatusKafkaBrokerError, status)
}

// TestRunWithIOPushMetrics checks that metrics are pushed when gateway is
// configured
func TestRunWithIOPushMetrics(t *testing.T) {
	var pushed atomic.Bool
	testServer := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pushed.Store(strings.Contains(r.URL.Path, "/metrics/job/rpn_interpreter"))
			w.WriteHeader(http.StatusOK)
		}),
	)
	defer testServer.Close()

	config := conf.ConfigStruct{
		Metrics: conf.MetricsConfiguration{
			Job:        "rpn_interpreter",
			Namespace:  "rpn_interpreter",
			Subsystem:  "test",
			GatewayURL: testServer.URL,
		},
	}

	status := interpreter.RunWithIO(&config, types.CliFlags{ImmediateExpression: "1 + 1"},
		strings.NewReader(""), new(bytes.Buffer))
	assert.Equal(t, interpreter.ExitStatusOK, status)
	assert.True(t, pushed.Load())
}

// TestRunWithIOPushMetricsError checks exit status when metrics can not be
// pushed
func TestRunWithIOPushMetricsError(t *testing.T) {
	testServer := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}),
	)
	defer testServer.Close()

	config := conf.ConfigStruct{
		Metrics: conf.MetricsConfiguration{
			Job:        "rpn_interpreter",
			GatewayURL: testServer.URL,
		},
	}

	status := interpreter.RunWithIO(&config, types.CliFlags{ImmediateExpression: "1 + 1"},
		strings.NewReader(""), new(bytes.Buffer))
	assert.Equal(t, interpreter.ExitStatusMetricsError, status)
}
