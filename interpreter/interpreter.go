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

// Package interpreter contains the interactive part of the arithmetic
// interpreter: immediate evaluation of one expression, the read-eval-print
// loop, history of evaluations stored in SQL database, evaluation events
// published to Kafka and metrics pushed to Prometheus push gateway.
package interpreter

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/rpn-interpreter/interpreter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/rpn-interpreter/conf"
	"github.com/RedHatInsights/rpn-interpreter/evaluator"
	"github.com/RedHatInsights/rpn-interpreter/producer"
	"github.com/RedHatInsights/rpn-interpreter/producer/disabled"
	"github.com/RedHatInsights/rpn-interpreter/producer/kafka"
	"github.com/RedHatInsights/rpn-interpreter/types"
	"github.com/RedHatInsights/rpn-interpreter/ui"
	"github.com/RedHatInsights/rpn-interpreter/utils"
)

// Exit codes
const (
	// ExitStatusOK means that the tool finished with success
	ExitStatusOK = iota
	// ExitStatusConfiguration is an error code related to program configuration
	ExitStatusConfiguration
	// ExitStatusError is a general error code
	ExitStatusError
	// ExitStatusStorageError is returned in case of any storage-related error
	ExitStatusStorageError
	// ExitStatusKafkaBrokerError is for kafka broker connection establishment errors
	ExitStatusKafkaBrokerError
	// ExitStatusCleanerError is raised when clean operation is not successful
	ExitStatusCleanerError
	// ExitStatusMetricsError is raised when prometheus metrics cannot be pushed
	ExitStatusMetricsError
)

// Messages
const (
	welcomeMessageTemplate    = "Welcome to the Simple Arithmetic Interpreter.\nEnter in an infix expression or \"%s\" to quit."
	couldNotEvaluateMessage   = "Could not evaluate expression:%s"
	postfixMessage            = "Postfix: %s"
	historyEmptyMessage       = "History is empty"
	historyDisabledMessage    = "History storage is not enabled"
	operationFailedMessage    = "Operation failed"
	evaluationErrorMessage    = "Evaluation error"
	historyWriteFailedMessage = "Unable to write evaluation record into history"
	eventProduceFailedMessage = "Unable to produce evaluation event"
	expressionAttribute       = "expression"
	evaluationIDAttribute     = "evaluation ID"
)

// HistoryCommand is REPL command that displays the latest evaluations
const HistoryCommand = "history"

// number of records displayed by HistoryCommand
const historyCommandDisplayedLimit = 10

// Interpreter evaluates expressions entered via selected UI controller.
// Every evaluation is recorded into Storage and published via Notifier.
type Interpreter struct {
	UI          ui.Controller
	UIType      types.UIType
	Evaluator   *evaluator.Evaluator
	Storage     Storage
	Notifier    producer.Producer
	ShowPostfix bool
	Welcome     string
	ExitCommand string
}

// New constructs interpreter communicating via given UI controller. History
// and event publishing are disabled, they can be enabled by setting Storage
// and Notifier.
func New(controller ui.Controller, uiType types.UIType) *Interpreter {
	return &Interpreter{
		UI:          controller,
		UIType:      uiType,
		Evaluator:   evaluator.New(),
		Storage:     NoopStorage{},
		Notifier:    &disabled.Producer{},
		Welcome:     WelcomeMessage(conf.DefaultExitCommand),
		ExitCommand: conf.DefaultExitCommand,
	}
}

// WelcomeMessage returns banner displayed when REPL starts
func WelcomeMessage(exitCommand string) string {
	return fmt.Sprintf(welcomeMessageTemplate, exitCommand)
}

// RunEvaluator evaluates one expression and displays its value. Message
// about failure is displayed when the expression can not be evaluated.
func (i *Interpreter) RunEvaluator(expression string) bool {
	record := i.evaluate(expression)

	// postfix form is displayed for evaluated expressions only
	if i.ShowPostfix && record.Succeeded {
		i.UI.Display(fmt.Sprintf(postfixMessage, record.Postfix), &ui.DisplayOptions{Raw: true})
	}

	if record.Succeeded {
		i.UI.Display(utils.FormatValue(record.Result), nil)
	} else {
		i.UI.Display(fmt.Sprintf(couldNotEvaluateMessage, expression), nil)
	}

	i.storeRecord(record)
	i.publishRecord(record)

	return record.Succeeded
}

// RunREPL displays the welcome banner and evaluates entered expressions
// until the exit command is entered or there is no more input.
func (i *Interpreter) RunREPL(options *ui.DisplayOptions) error {
	i.UI.Display(i.Welcome, options)

	for {
		line, err := i.UI.Input()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			log.Error().Err(err).Msg("Unable to read input")
			return err
		}

		expression := strings.TrimSpace(line)
		switch expression {
		case i.ExitCommand:
			return nil
		case HistoryCommand:
			i.showHistory()
		default:
			i.RunEvaluator(expression)
		}
	}
}

// evaluate performs evaluation of given expression and prepares record
// about it
func (i *Interpreter) evaluate(expression string) *types.EvaluationRecord {
	record := &types.EvaluationRecord{
		ID:          types.EvaluationID(uuid.New().String()),
		Expression:  types.Expression(expression),
		UIType:      i.UIType,
		EvaluatedAt: types.Timestamp(time.Now()),
	}
	Evaluations.Inc()

	// postfix form is part of the record even when the evaluation fails
	postfix, value, err := i.Evaluator.EvaluateWithPostfix(expression)
	record.Postfix = postfix
	if err != nil {
		EvaluationFailures.Inc()
		log.Debug().
			Str(expressionAttribute, expression).
			Err(err).
			Msg(evaluationErrorMessage)
		record.ErrorText = err.Error()
		return record
	}

	record.Succeeded = true
	record.Result = value
	return record
}

// storeRecord writes evaluation record into history; failure is logged only
func (i *Interpreter) storeRecord(record *types.EvaluationRecord) {
	err := i.Storage.WriteEvaluationRecord(record)
	if err != nil {
		HistoryWriteErrors.Inc()
		log.Error().
			Str(evaluationIDAttribute, string(record.ID)).
			Err(err).
			Msg(historyWriteFailedMessage)
	}
}

// publishRecord produces evaluation event; failure is logged only
func (i *Interpreter) publishRecord(record *types.EvaluationRecord) {
	payload, err := json.Marshal(types.NewEvaluationEvent(record))
	if err != nil {
		ProducerErrors.Inc()
		log.Error().
			Str(evaluationIDAttribute, string(record.ID)).
			Err(err).
			Msg(eventProduceFailedMessage)
		return
	}

	_, _, err = i.Notifier.ProduceMessage(payload)
	if err != nil {
		ProducerErrors.Inc()
		log.Error().
			Str(evaluationIDAttribute, string(record.ID)).
			Err(err).
			Msg(eventProduceFailedMessage)
	}
}

// showHistory displays the latest evaluations, the oldest one first
func (i *Interpreter) showHistory() {
	records, err := i.Storage.ReadEvaluationHistory(historyCommandDisplayedLimit)
	if err != nil {
		log.Error().Err(err).Msg(operationFailedMessage)
		return
	}

	raw := &ui.DisplayOptions{Raw: true}
	if len(records) == 0 {
		i.UI.Display(historyEmptyMessage, raw)
		return
	}

	for idx := len(records) - 1; idx >= 0; idx-- {
		record := records[idx]
		if record.Succeeded {
			i.UI.Display(fmt.Sprintf("%s = %s", record.Expression, utils.FormatValue(record.Result)), raw)
		} else {
			i.UI.Display(fmt.Sprintf("%s -> %s", record.Expression, record.ErrorText), raw)
		}
	}
}

// setupStorage prepares storage for evaluation history. NoopStorage is used
// when history is disabled.
func setupStorage(historyConfig *conf.HistoryConfiguration) (Storage, error) {
	if !historyConfig.Enabled {
		log.Debug().Msg(historyDisabledMessage)
		return NoopStorage{}, nil
	}

	storage, err := NewStorage(historyConfig)
	if err != nil {
		return nil, &StorageError{Err: err}
	}

	err = storage.InitDatabase()
	if err != nil {
		_ = storage.Close()
		return nil, &StorageError{Err: err}
	}
	return storage, nil
}

// setupNotifier prepares producer for evaluation events. Disabled producer
// is used when Kafka broker is not enabled.
func setupNotifier(config *conf.ConfigStruct) (producer.Producer, error) {
	if !conf.GetKafkaBrokerConfiguration(config).Enabled {
		return &disabled.Producer{}, nil
	}

	notifier, err := kafka.New(config)
	if err != nil {
		return nil, &KafkaBrokerError{Err: err}
	}
	return notifier, nil
}

// Run function is entry point to the interpreter. Standard input and output
// are used to communicate with user.
func Run(config *conf.ConfigStruct, cliFlags types.CliFlags) int {
	return RunWithIO(config, cliFlags, os.Stdin, os.Stdout)
}

// RunWithIO function runs the interpreter with given input and output.
// Exit status is returned.
func RunWithIO(config *conf.ConfigStruct, cliFlags types.CliFlags, in io.Reader, out io.Writer) int {
	metricsConfig := conf.GetMetricsConfiguration(config)
	registerMetrics(&metricsConfig)

	historyConfig := conf.GetHistoryConfiguration(config)

	// override default value by one read from configuration file
	if cliFlags.MaxAge == "" {
		cliFlags.MaxAge = historyConfig.MaxAge
	}

	storage, err := setupStorage(&historyConfig)
	if err != nil {
		StorageSetupErrors.Inc()
		log.Err(err).Msg(operationFailedMessage)
		return ExitStatusStorageError
	}

	if cleanupOperationSpecified(cliFlags) {
		return runCleanup(storage, historyConfig.Enabled, cliFlags)
	}

	notifier, err := setupNotifier(config)
	if err != nil {
		ProducerSetupErrors.Inc()
		log.Err(err).Msg(operationFailedMessage)
		_ = storage.Close()
		return ExitStatusKafkaBrokerError
	}

	uiConfig := conf.GetUIConfiguration(config)

	// immediate mode always uses the basic UI
	immediate := cliFlags.ImmediateExpression != ""
	uiType := types.BasicUI
	if !immediate && (cliFlags.EnhancedUI || uiConfig.Enhanced) {
		uiType = types.EnhancedUI
	}

	var controller ui.Controller
	var displayOptions *ui.DisplayOptions
	if uiType == types.EnhancedUI {
		controller = ui.NewEnhancedUI(in, out)
		displayOptions = &ui.DisplayOptions{Raw: true}
	} else {
		controller = ui.NewBasicUI(in, out)
	}

	interp := New(controller, uiType)
	interp.Storage = storage
	interp.Notifier = notifier
	interp.ShowPostfix = cliFlags.ShowPostfix
	if uiConfig.ExitCommand != "" {
		interp.ExitCommand = uiConfig.ExitCommand
	}
	interp.Welcome = WelcomeMessage(interp.ExitCommand)
	if uiConfig.Welcome != "" {
		interp.Welcome = uiConfig.Welcome
	}

	status := ExitStatusOK
	if immediate {
		interp.RunEvaluator(cliFlags.ImmediateExpression)
	} else if err := interp.RunREPL(displayOptions); err != nil {
		status = ExitStatusError
	}

	if err := closeStorage(storage); err != nil && status == ExitStatusOK {
		status = ExitStatusStorageError
	}
	if err := closeNotifier(notifier); err != nil && status == ExitStatusOK {
		status = ExitStatusKafkaBrokerError
	}

	if metricsConfig.GatewayURL != "" {
		if err := PushMetrics(&metricsConfig); err != nil && status == ExitStatusOK {
			status = ExitStatusMetricsError
		}
	}

	return status
}

// runCleanup performs selected history maintenance operation
func runCleanup(storage Storage, historyEnabled bool, cliFlags types.CliFlags) int {
	defer func() {
		_ = closeStorage(storage)
	}()

	if !historyEnabled {
		log.Error().Msg(historyDisabledMessage)
		return ExitStatusConfiguration
	}

	if err := PerformCleanupOperation(storage, cliFlags); err != nil {
		return ExitStatusCleanerError
	}
	return ExitStatusOK
}

func closeStorage(storage Storage) error {
	err := storage.Close()
	if err != nil {
		log.Err(err).Msg(operationFailedMessage)
		return err
	}
	return nil
}

func closeNotifier(notifier producer.Producer) error {
	err := notifier.Close()
	if err != nil {
		log.Err(err).Msg(operationFailedMessage)
		return err
	}
	return nil
}
