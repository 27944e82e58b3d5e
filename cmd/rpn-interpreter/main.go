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

// Entry point to the arithmetic interpreter.
//
// The interpreter reads infix arithmetic expressions, converts them into
// postfix (Reverse Polish) notation and evaluates them. One expression can be
// evaluated in immediate mode by using the -i command line flag, otherwise an
// interactive read-eval-print loop is started. Two front ends are available
// for the loop: a basic one and an enhanced one with numbered inputs and
// outputs (selected by the -e flag).
//
// Evaluated expressions can optionally be recorded into SQL database
// (SQLite or PostgreSQL) and published as events into Kafka topic. Metrics
// about evaluations can be pushed to Prometheus push gateway.
package main

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/rpn-interpreter/

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/rpn-interpreter/conf"
	"github.com/RedHatInsights/rpn-interpreter/interpreter"
)

// Configuration-related constants
const (
	loadConfigurationMessage = "Load configuration"
)

func main() {
	cliFlags := setupCliFlags()
	checkArgs(&cliFlags)

	// config has exactly the same structure as *.toml file
	config, err := conf.LoadConfiguration(conf.ConfigFileEnvVariableName, conf.DefaultConfigFileName)
	if err != nil {
		log.Err(err).Msg(loadConfigurationMessage)
		os.Exit(ExitStatusConfiguration)
	}

	setupLogging(conf.GetLoggingConfiguration(&config))

	// configuration is loaded, so it would be possible to display it if
	// asked by user
	if cliFlags.ShowConfiguration {
		showConfiguration(&config)
		os.Exit(ExitStatusOK)
	}

	if cliFlags.Verbose {
		showConfiguration(&config)
	}

	os.Exit(interpreter.Run(&config, cliFlags))
}

// setupLogging configures global zerolog logger. Logs are written to standard
// error output so they never mix with evaluation results.
func setupLogging(loggingConf conf.LoggingConfiguration) {
	if loggingConf.Debug {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	logLevel := convertLogLevel(loggingConf.LogLevel)
	zerolog.SetGlobalLevel(logLevel)
	log.Debug().
		Str("configured", loggingConf.LogLevel).
		Int("internal", int(logLevel)).
		Msg("Log level")
}
