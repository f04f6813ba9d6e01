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

package notifier

// This source file contains command line handling shared by all status
// feed tools.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/RedHatInsights/insights-operator-utils/logger"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rfd-devops/status-feed-notifier/conf"
	"github.com/rfd-devops/status-feed-notifier/types"
)

const (
	versionMessage           = "Status feed notifier version 1.0"
	authorsMessage           = "RFD DevOps team"
	loadConfigurationMessage = "Load configuration"
)

// ParseCliFlags defines and parses all command line options
func ParseCliFlags(name string, args []string, output io.Writer) (types.CliFlags, error) {
	var cliFlags types.CliFlags

	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(output)
	flags.StringVar(&cliFlags.Customer, "customer", "", "customer acronym, like RFD")
	flags.StringVar(&cliFlags.Environment, "environment", "", "environment, like LAB, DR, TST or PRD")
	flags.StringVar(&cliFlags.IniFile, "iniFile", "", "path to INI file with environment settings")
	flags.BoolVar(&cliFlags.ShowVersion, "show-version", false, "show version and exit")
	flags.BoolVar(&cliFlags.ShowAuthors, "show-authors", false, "show authors and exit")
	flags.BoolVar(&cliFlags.ShowConfiguration, "show-configuration", false, "show configuration and exit")
	flags.BoolVar(&cliFlags.Verbose, "verbose", false, "verbose logs")

	err := flags.Parse(args)
	return cliFlags, err
}

// CheckArgs checks that all arguments needed for status check are provided
func CheckArgs(args types.CliFlags) error {
	if args.ShowVersion || args.ShowAuthors || args.ShowConfiguration {
		return nil
	}
	missing := args.Missing()
	if len(missing) > 0 {
		return fmt.Errorf("missing command line arguments: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ShowVersion function displays version information.
func ShowVersion(output io.Writer) {
	fmt.Fprintln(output, versionMessage)
}

// ShowAuthors function displays information about authors.
func ShowAuthors(output io.Writer) {
	fmt.Fprintln(output, authorsMessage)
}

// ShowConfiguration function displays actual configuration.
func ShowConfiguration(config *conf.ConfigStruct) {
	loggingConfig := conf.GetLoggingConfiguration(config)
	log.Info().
		Bool("Debug", loggingConfig.Debug).
		Str("Level", loggingConfig.LogLevel).
		Msg("Logging configuration")

	httpConfig := conf.GetHTTPConfiguration(config)
	log.Info().
		Str("Timeout", httpConfig.Timeout.String()).
		Str("User agent", httpConfig.UserAgent).
		Msg("HTTP configuration")

	metricsConfig := conf.GetMetricsConfiguration(config)
	log.Info().
		Str("Job", metricsConfig.Job).
		Str("Namespace", metricsConfig.Namespace).
		Str("Gateway", metricsConfig.GatewayURL).
		Int("Retries", metricsConfig.Retries).
		Str("Retry after", metricsConfig.RetryAfter.String()).
		Msg("Metrics configuration")

	brokerConfig := conf.GetKafkaBrokerConfiguration(config)
	log.Info().
		Bool("Enabled", brokerConfig.Enabled).
		Str("Address", brokerConfig.Address).
		Str("SecurityProtocol", brokerConfig.SecurityProtocol).
		Str("SaslMechanism", brokerConfig.SaslMechanism).
		Str("Topic", brokerConfig.Topic).
		Str("Timeout", brokerConfig.Timeout.String()).
		Msg("Broker configuration")
}

// ConvertLogLevel converts log level name into zerolog level
func ConvertLogLevel(level string) zerolog.Level {
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

// SetupLogging initializes logger according to configuration. Console
// output is used in debug mode.
func SetupLogging(config *conf.ConfigStruct) error {
	err := logger.InitZerolog(
		conf.GetLoggingConfiguration(config),
		conf.GetCloudWatchConfiguration(config),
		conf.GetSentryLoggingConfiguration(config),
		conf.GetKafkaZerologConfiguration(config),
	)
	if err != nil {
		return err
	}

	loggingConfig := conf.GetLoggingConfiguration(config)
	if loggingConfig.Debug {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	logLevel := ConvertLogLevel(loggingConfig.LogLevel)
	zerolog.SetGlobalLevel(logLevel)
	log.Debug().
		Str("configured", loggingConfig.LogLevel).
		Int("internal", int(logLevel)).
		Msg("Log level")
	return nil
}

// Configure loads service configuration and initializes logging
func Configure() (conf.ConfigStruct, error) {
	// config has exactly the same structure as *.toml file
	config, err := conf.LoadConfiguration(conf.ConfigFileEnvVariableName, conf.DefaultConfigFileName)
	if err != nil {
		return config, err
	}
	return config, SetupLogging(&config)
}

// Execute is the main function of all status feed tools: command line is
// parsed, configuration is loaded and status check for given provider is
// performed. Exit status is returned.
func Execute(name string, provider types.Provider, args []string, output io.Writer) int {
	cliFlags, err := ParseCliFlags(name, args, output)
	if errors.Is(err, flag.ErrHelp) {
		return ExitStatusOK
	}
	if err != nil {
		return ExitStatusError
	}

	if cliFlags.ShowVersion {
		ShowVersion(output)
		return ExitStatusOK
	}
	if cliFlags.ShowAuthors {
		ShowAuthors(output)
		return ExitStatusOK
	}

	if err := CheckArgs(cliFlags); err != nil {
		fmt.Fprintln(output, err)
		return ExitStatusError
	}

	config, err := Configure()
	if err != nil {
		log.Err(err).Msg(loadConfigurationMessage)
		return ExitStatusError
	}

	// configuration is loaded, so it would be possible to display it if
	// asked by user
	if cliFlags.ShowConfiguration {
		ShowConfiguration(&config)
		return ExitStatusOK
	}

	if cliFlags.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		ShowConfiguration(&config)
	}

	return Run(config, cliFlags, provider)
}
