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

package conf

// This source file contains definition of data type named ConfigStruct that
// represents configuration of the interpreter. This source file also contains
// function named LoadConfiguration that can be used to load configuration
// from provided configuration file and/or from environment variables.
// Additionally several specific functions named GetLoggingConfiguration,
// GetUIConfiguration, GetHistoryConfiguration, GetKafkaBrokerConfiguration
// and GetMetricsConfiguration are to be used to return specific configuration
// options.

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/rpn-interpreter/conf

// Default name of configuration file is config.toml
// It can be changed via environment variable RPN_INTERPRETER_CONFIG_FILE

// An example of configuration file that can be used in devel environment:
//
// [logging]
// debug = true
// log_level = "info"
//
// [ui]
// enhanced = false
// exit_command = "exit"
//
// [history]
// enabled = true
// db_driver = "sqlite3"
// sqlite_datasource = "history.db"
// max_age = "7 days"
//
// Environment variables that can be used to override configuration file settings:
// RPN_INTERPRETER__LOGGING__LOG_LEVEL
// RPN_INTERPRETER__HISTORY__ENABLED
// RPN_INTERPRETER__KAFKA_BROKER__ADDRESSES
// etc.

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	clowder "github.com/redhatinsights/app-common-go/pkg/api/v1"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Configuration-related constants
const (
	ConfigFileEnvVariableName = "RPN_INTERPRETER_CONFIG_FILE"
	DefaultConfigFileName     = "config"
	envPrefix                 = "RPN_INTERPRETER_"
)

// Default values
const (
	DefaultExitCommand = "exit"
	DefaultMaxAge      = "30 days"
)

// ConfigStruct is a structure holding the whole interpreter configuration
type ConfigStruct struct {
	Logging LoggingConfiguration `mapstructure:"logging" toml:"logging"`
	UI      UIConfiguration      `mapstructure:"ui" toml:"ui"`
	History HistoryConfiguration `mapstructure:"history" toml:"history"`
	Kafka   KafkaConfiguration   `mapstructure:"kafka_broker" toml:"kafka_broker"`
	Metrics MetricsConfiguration `mapstructure:"metrics" toml:"metrics"`
}

// LoggingConfiguration represents configuration for logging in general
type LoggingConfiguration struct {
	// Debug enables pretty colored logging
	Debug bool `mapstructure:"debug" toml:"debug"`

	// LogLevel sets logging level to show. Possible values are:
	// "debug"
	// "info"
	// "warn", "warning"
	// "error"
	// "fatal"
	//
	// debug level is used if value is not one of listed above
	LogLevel string `mapstructure:"log_level" toml:"log_level"`
}

// UIConfiguration represents configuration of front end
type UIConfiguration struct {
	// Enhanced selects the enhanced UI even when -e flag is not used
	Enhanced bool `mapstructure:"enhanced" toml:"enhanced"`

	// Welcome overrides the banner displayed when REPL starts
	Welcome string `mapstructure:"welcome" toml:"welcome"`

	// ExitCommand is the input that terminates REPL
	ExitCommand string `mapstructure:"exit_command" toml:"exit_command"`
}

// HistoryConfiguration represents configuration of storage used to record
// evaluated expressions
type HistoryConfiguration struct {
	Enabled          bool   `mapstructure:"enabled"           toml:"enabled"`
	Driver           string `mapstructure:"db_driver"         toml:"db_driver"`
	SQLiteDataSource string `mapstructure:"sqlite_datasource" toml:"sqlite_datasource"`
	PGUsername       string `mapstructure:"pg_username"       toml:"pg_username"`
	PGPassword       string `mapstructure:"pg_password"       toml:"pg_password"`
	PGHost           string `mapstructure:"pg_host"           toml:"pg_host"`
	PGPort           int    `mapstructure:"pg_port"           toml:"pg_port"`
	PGDBName         string `mapstructure:"pg_db_name"        toml:"pg_db_name"`
	PGParams         string `mapstructure:"pg_params"         toml:"pg_params"`
	LogSQLQueries    bool   `mapstructure:"log_sql_queries"   toml:"log_sql_queries"`
	MaxAge           string `mapstructure:"max_age"           toml:"max_age"`
}

// KafkaConfiguration represents configuration of Kafka brokers and topics
type KafkaConfiguration struct {
	Enabled          bool          `mapstructure:"enabled"           toml:"enabled"`
	Addresses        string        `mapstructure:"addresses"         toml:"addresses"`
	SecurityProtocol string        `mapstructure:"security_protocol" toml:"security_protocol"`
	CertPath         string        `mapstructure:"cert_path"         toml:"cert_path"`
	SaslMechanism    string        `mapstructure:"sasl_mechanism"    toml:"sasl_mechanism"`
	SaslUsername     string        `mapstructure:"sasl_username"     toml:"sasl_username"`
	SaslPassword     string        `mapstructure:"sasl_password"     toml:"sasl_password"`
	Topic            string        `mapstructure:"topic"             toml:"topic"`
	Timeout          time.Duration `mapstructure:"timeout"           toml:"timeout"`
}

// MetricsConfiguration holds metrics related configuration
type MetricsConfiguration struct {
	Job              string        `mapstructure:"job_name"           toml:"job_name"`
	Namespace        string        `mapstructure:"namespace"          toml:"namespace"`
	Subsystem        string        `mapstructure:"subsystem"          toml:"subsystem"`
	GatewayURL       string        `mapstructure:"gateway_url"        toml:"gateway_url"`
	GatewayAuthToken string        `mapstructure:"gateway_auth_token" toml:"gateway_auth_token"`
	Retries          int           `mapstructure:"retries"            toml:"retries"`
	RetryAfter       time.Duration `mapstructure:"retry_after"        toml:"retry_after"`
}

// LoadConfiguration loads configuration from defaultConfigFile, file set in
// configFileEnvVariableName or from env
func LoadConfiguration(configFileEnvVariableName, defaultConfigFile string) (ConfigStruct, error) {
	var config ConfigStruct

	// viper is global, start from clean state so repeated loads are
	// independent
	viper.Reset()

	// env. variable holding name of configuration file
	configFile, specified := os.LookupEnv(configFileEnvVariableName)
	if specified {
		// we need to separate the directory name and filename without
		// extension
		directory, basename := filepath.Split(configFile)
		file := strings.TrimSuffix(basename, filepath.Ext(basename))
		// parse the configuration
		viper.SetConfigName(file)
		viper.AddConfigPath(directory)
	} else {
		log.Info().Str("filename", defaultConfigFile).Msg("Parsing configuration file")
		// parse the configuration
		viper.SetConfigName(defaultConfigFile)
		viper.AddConfigPath(".")
	}

	// try to read the whole configuration
	err := viper.ReadInConfig()
	if _, isNotFoundError := err.(viper.ConfigFileNotFoundError); !specified && isNotFoundError {
		// If config file is not present (which might be correct in
		// some environment) we need to read configuration from
		// environment variables The problem is that Viper is not smart
		// enough to understand the structure of config by itself, so
		// we need to read fake config file
		fakeTomlConfigWriter := new(bytes.Buffer)

		err := toml.NewEncoder(fakeTomlConfigWriter).Encode(config)
		if err != nil {
			return config, err
		}

		fakeTomlConfig := fakeTomlConfigWriter.String()

		viper.SetConfigType("toml")

		err = viper.ReadConfig(strings.NewReader(fakeTomlConfig))
		if err != nil {
			return config, err
		}
	} else if err != nil {
		// error is processed on caller side
		return config, fmt.Errorf("fatal error config file: %s", err)
	}

	// override config from env if there's variable in env
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "__"))

	err = viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	setDefaults(&config)

	if clowder.IsClowderEnabled() {
		// can not use Zerolog at this moment!
		fmt.Println("Clowder is enabled")

		updateConfigFromClowder(&config)
	}

	// everything's should be ok
	return config, nil
}

// setDefaults fills in values that have to be set for the interpreter to
// work properly
func setDefaults(config *ConfigStruct) {
	if strings.TrimSpace(config.UI.ExitCommand) == "" {
		config.UI.ExitCommand = DefaultExitCommand
	}
	if config.History.MaxAge == "" {
		config.History.MaxAge = DefaultMaxAge
	}
}

// updateConfigFromClowder replaces database and broker settings by values
// provided by Clowder
func updateConfigFromClowder(config *ConfigStruct) {
	loaded := clowder.LoadedConfig
	if loaded == nil {
		return
	}

	if loaded.Database != nil {
		config.History.Driver = "postgres"
		config.History.PGDBName = loaded.Database.Name
		config.History.PGHost = loaded.Database.Hostname
		config.History.PGPort = loaded.Database.Port
		config.History.PGUsername = loaded.Database.Username
		config.History.PGPassword = loaded.Database.Password
	} else {
		fmt.Println("No database configuration available in Clowder, using default one")
	}

	if loaded.Kafka != nil && len(loaded.Kafka.Brokers) > 0 {
		broker := loaded.Kafka.Brokers[0]
		address := broker.Hostname
		if broker.Port != nil {
			address = fmt.Sprintf("%s:%d", broker.Hostname, *broker.Port)
		}
		config.Kafka.Addresses = address
	} else {
		fmt.Println("No Kafka broker configuration available in Clowder, using default one")
	}
}

// GetLoggingConfiguration returns logging configuration
func GetLoggingConfiguration(config *ConfigStruct) LoggingConfiguration {
	return config.Logging
}

// GetUIConfiguration returns front end configuration
func GetUIConfiguration(config *ConfigStruct) UIConfiguration {
	return config.UI
}

// GetHistoryConfiguration returns history storage configuration
func GetHistoryConfiguration(config *ConfigStruct) HistoryConfiguration {
	return config.History
}

// GetKafkaBrokerConfiguration returns kafka broker configuration
func GetKafkaBrokerConfiguration(config *ConfigStruct) KafkaConfiguration {
	return config.Kafka
}

// GetMetricsConfiguration returns metrics configuration
func GetMetricsConfiguration(config *ConfigStruct) MetricsConfiguration {
	return config.Metrics
}
