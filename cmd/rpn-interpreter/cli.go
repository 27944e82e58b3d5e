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

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/rpn-interpreter/conf"
	"github.com/RedHatInsights/rpn-interpreter/interpreter"
	"github.com/RedHatInsights/rpn-interpreter/types"
)

const (
	// ExitStatusOK means that the tool finished with success
	ExitStatusOK = interpreter.ExitStatusOK
	// ExitStatusConfiguration is an error code related to program configuration
	ExitStatusConfiguration = interpreter.ExitStatusConfiguration
)

const (
	versionMessage = "RPN interpreter version 1.0"
	authorsMessage = "Red Hat Inc."

	conflictingFlagsMessage = "Immediate mode (-i) can not be combined with enhanced UI (-e)"
)

// showVersion function displays version information.
func showVersion() {
	fmt.Println(versionMessage)
}

// showAuthors function displays information about authors.
func showAuthors() {
	fmt.Println(authorsMessage)
}

// setupCliFlags defines and parses all command line options
func setupCliFlags() types.CliFlags {
	var cliFlags types.CliFlags
	flag.StringVar(&cliFlags.ImmediateExpression, "i", "", "evaluate given expression and exit")
	flag.BoolVar(&cliFlags.EnhancedUI, "e", false, "use enhanced UI for the interactive loop")
	flag.BoolVar(&cliFlags.ShowPostfix, "postfix", false, "display postfix form of each expression before its value")
	flag.BoolVar(&cliFlags.ShowVersion, "show-version", false, "show version and exit")
	flag.BoolVar(&cliFlags.ShowAuthors, "show-authors", false, "show authors and exit")
	flag.BoolVar(&cliFlags.ShowConfiguration, "show-configuration", false, "show configuration and exit")
	flag.BoolVar(&cliFlags.PrintHistory, "print-history", false, "print evaluation history to be cleaned up")
	flag.BoolVar(&cliFlags.PerformCleanup, "history-cleanup", false, "perform evaluation history clean up")
	flag.BoolVar(&cliFlags.Verbose, "verbose", false, "verbose logs")
	flag.StringVar(&cliFlags.MaxAge, "max-age", "", "max age for displaying/cleaning old history records")
	flag.Parse()
	return cliFlags
}

// showConfiguration function displays actual configuration.
func showConfiguration(config *conf.ConfigStruct) {
	loggingConfig := conf.GetLoggingConfiguration(config)
	log.Info().
		Str("Level", loggingConfig.LogLevel).
		Bool("Pretty colored debug logging", loggingConfig.Debug).
		Msg("Logging configuration")

	uiConfig := conf.GetUIConfiguration(config)
	log.Info().
		Bool("Enhanced", uiConfig.Enhanced).
		Str("Welcome", uiConfig.Welcome).
		Str("Exit command", uiConfig.ExitCommand).
		Msg("UI configuration")

	historyConfig := conf.GetHistoryConfiguration(config)
	log.Info().
		Bool("Enabled", historyConfig.Enabled).
		Str("Driver", historyConfig.Driver).
		Str("SQLite data source", historyConfig.SQLiteDataSource).
		Str("DB Name", historyConfig.PGDBName).
		Str("Username", historyConfig.PGUsername). // password is omitted on purpose
		Str("Host", historyConfig.PGHost).
		Int("Port", historyConfig.PGPort).
		Bool("LogSQLQueries", historyConfig.LogSQLQueries).
		Str("Parameters", historyConfig.PGParams).
		Str("Max age", historyConfig.MaxAge).
		Msg("History configuration")

	brokerConfig := conf.GetKafkaBrokerConfiguration(config)
	log.Info().
		Bool("Enabled", brokerConfig.Enabled).
		Str("Addresses", brokerConfig.Addresses).
		Str("SecurityProtocol", brokerConfig.SecurityProtocol).
		Str("SaslMechanism", brokerConfig.SaslMechanism).
		Str("Topic", brokerConfig.Topic).
		Str("Timeout", brokerConfig.Timeout.String()).
		Msg("Broker configuration")

	metricsConfig := conf.GetMetricsConfiguration(config)

	// Authentication token is omitted on purpose
	log.Info().
		Str("Job", metricsConfig.Job).
		Str("Namespace", metricsConfig.Namespace).
		Str("Subsystem", metricsConfig.Subsystem).
		Str("Push Gateway", metricsConfig.GatewayURL).
		Int("Retries", metricsConfig.Retries).
		Str("Retry after", metricsConfig.RetryAfter.String()).
		Msg("Metrics configuration")
}

// checkArgs function handles command line options passed to the process
func checkArgs(args *types.CliFlags) {
	switch {
	case args.ShowVersion:
		showVersion()
		os.Exit(ExitStatusOK)
	case args.ShowAuthors:
		showAuthors()
		os.Exit(ExitStatusOK)
	case args.ShowConfiguration:
		// config not loaded yet, just skip the rest of function for
		// now
		return
	case args.PrintHistory, args.PerformCleanup:
		// DB only operations, no need for additional args
		return
	default:
	}

	if args.ImmediateExpression != "" && args.EnhancedUI {
		log.Error().Msg(conflictingFlagsMessage)
		os.Exit(ExitStatusConfiguration)
	}
}

func convertLogLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	}

	return zerolog.DebugLevel
}
