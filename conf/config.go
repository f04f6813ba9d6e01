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
// represents configuration of the status feed tools. This source file also
// contains function named LoadConfiguration that can be used to load
// configuration from provided configuration file and/or from environment
// variables. Additionally several specific functions named
// GetLoggingConfiguration, GetHTTPConfiguration, GetMetricsConfiguration
// and GetKafkaBrokerConfiguration are to be used to return specific
// configuration options.
//
// Settings that are specific to customer and environment (API token,
// tenant URL, feed URLs...) are not part of this structure, they are read
// from INI file provided on command line, see settings.go.

// Generated documentation is available at:
// https://pkg.go.dev/github.com/rfd-devops/status-feed-notifier/conf

// Default name of configuration file is config.toml
// It can be changed via environment variable STATUS_FEED_NOTIFIER_CONFIG_FILE

// An example of configuration file that can be used in devel environment:
//
// [logging]
// debug = true
// log_level = "info"
//
// [http]
// timeout = "30s"
// user_agent = "status-feed-notifier"
//
// [metrics]
// job_name = "status_feed_notifier"
// namespace = "status_feed_notifier"
// gateway_url = ""
//
// Environment variables that can be used to override configuration file
// settings use prefix STATUS_FEED_NOTIFIER_, for example
// STATUS_FEED_NOTIFIER_HTTP__TIMEOUT=10s

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/RedHatInsights/insights-operator-utils/logger"
	clowder "github.com/redhatinsights/app-common-go/pkg/api/v1"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Configuration-related constants
const (
	ConfigFileEnvVariableName = "STATUS_FEED_NOTIFIER_CONFIG_FILE"
	DefaultConfigFileName     = "config"

	envPrefix = "STATUS_FEED_NOTIFIER"

	// DefaultHTTPTimeout is used when no timeout is configured
	DefaultHTTPTimeout = 30 * time.Second
)

// ConfigStruct is a structure holding the whole configuration of status
// feed tools
type ConfigStruct struct {
	Logging      logger.LoggingConfiguration       `mapstructure:"logging" toml:"logging"`
	CloudWatch   logger.CloudWatchConfiguration    `mapstructure:"cloudwatch" toml:"cloudwatch"`
	Sentry       logger.SentryLoggingConfiguration `mapstructure:"sentry" toml:"sentry"`
	KafkaZerolog logger.KafkaZerologConfiguration  `mapstructure:"kafka_zerolog" toml:"kafka_zerolog"`
	HTTP         HTTPConfiguration                 `mapstructure:"http" toml:"http"`
	Metrics      MetricsConfiguration              `mapstructure:"metrics" toml:"metrics"`
	Kafka        KafkaConfiguration                `mapstructure:"kafka_broker" toml:"kafka_broker"`
}

// HTTPConfiguration represents configuration of HTTP client used to call
// status feeds and monitoring platform API
type HTTPConfiguration struct {
	Timeout   time.Duration `mapstructure:"timeout" toml:"timeout"`
	UserAgent string        `mapstructure:"user_agent" toml:"user_agent"`
}

// KafkaConfiguration represents configuration of Kafka broker used to
// mirror all published events
type KafkaConfiguration struct {
	Enabled          bool          `mapstructure:"enabled" toml:"enabled"`
	Address          string        `mapstructure:"address" toml:"address"`
	SecurityProtocol string        `mapstructure:"security_protocol" toml:"security_protocol"`
	CertPath         string        `mapstructure:"cert_path" toml:"cert_path"`
	SaslMechanism    string        `mapstructure:"sasl_mechanism" toml:"sasl_mechanism"`
	SaslUsername     string        `mapstructure:"sasl_username" toml:"sasl_username"`
	SaslPassword     string        `mapstructure:"sasl_password" toml:"sasl_password"`
	Topic            string        `mapstructure:"topic" toml:"topic"`
	Timeout          time.Duration `mapstructure:"timeout" toml:"timeout"`
}

// MetricsConfiguration holds metrics related configuration
type MetricsConfiguration struct {
	Job              string        `mapstructure:"job_name" toml:"job_name"`
	Namespace        string        `mapstructure:"namespace" toml:"namespace"`
	GatewayURL       string        `mapstructure:"gateway_url" toml:"gateway_url"`
	GatewayAuthToken string        `mapstructure:"gateway_auth_token" toml:"gateway_auth_token"`
	Retries          int           `mapstructure:"retries" toml:"retries"`
	RetryAfter       time.Duration `mapstructure:"retry_after" toml:"retry_after"`
}

// LoadConfiguration loads configuration from defaultConfigFile, file set in
// configFileEnvVariableName or from env
func LoadConfiguration(configFileEnvVariableName, defaultConfigFile string) (ConfigStruct, error) {
	var config ConfigStruct

	v := viper.New()

	// env. variable holding name of configuration file
	configFile, specified := os.LookupEnv(configFileEnvVariableName)
	if specified {
		// we need to separate the directory name and filename without
		// extension
		directory, basename := filepath.Split(configFile)
		file := strings.TrimSuffix(basename, filepath.Ext(basename))
		// parse the configuration
		v.SetConfigName(file)
		v.AddConfigPath(directory)
	} else {
		log.Info().Str("filename", defaultConfigFile).Msg("Parsing configuration file")
		// parse the configuration
		v.SetConfigName(defaultConfigFile)
		v.AddConfigPath(".")
	}

	// try to read the whole configuration
	err := v.ReadInConfig()
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

		v.SetConfigType("toml")

		err = v.ReadConfig(strings.NewReader(fakeTomlConfig))
		if err != nil {
			return config, err
		}
	} else if err != nil {
		// error is processed on caller side
		return config, fmt.Errorf("fatal error config file: %s", err)
	}

	// override config from env if there's variable in env
	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "__"))

	err = v.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config.HTTP.Timeout <= 0 {
		config.HTTP.Timeout = DefaultHTTPTimeout
	}

	if clowder.IsClowderEnabled() {
		// can not use Zerolog at this moment!
		fmt.Println("Clowder is enabled")
		updateConfigFromClowder(&config)
	}

	// everything's should be ok
	return config, nil
}

// updateConfigFromClowder replaces Kafka broker address by the one provided
// by Clowder
func updateConfigFromClowder(config *ConfigStruct) {
	if clowder.LoadedConfig == nil {
		fmt.Println("Clowder configuration is not loaded")
		return
	}

	kafka := clowder.LoadedConfig.Kafka
	if kafka == nil || len(kafka.Brokers) == 0 {
		fmt.Println("No Kafka broker available in Clowder configuration")
		return
	}

	broker := kafka.Brokers[0]
	if broker.Port != nil {
		config.Kafka.Address = fmt.Sprintf("%s:%d", broker.Hostname, *broker.Port)
	} else {
		config.Kafka.Address = broker.Hostname
	}
}

// GetLoggingConfiguration returns logging configuration
func GetLoggingConfiguration(config *ConfigStruct) logger.LoggingConfiguration {
	return config.Logging
}

// GetCloudWatchConfiguration returns cloudwatch configuration
func GetCloudWatchConfiguration(config *ConfigStruct) logger.CloudWatchConfiguration {
	return config.CloudWatch
}

// GetSentryLoggingConfiguration returns the sentry log configuration
func GetSentryLoggingConfiguration(config *ConfigStruct) logger.SentryLoggingConfiguration {
	return config.Sentry
}

// GetKafkaZerologConfiguration returns the kafkazero log configuration
func GetKafkaZerologConfiguration(config *ConfigStruct) logger.KafkaZerologConfiguration {
	return config.KafkaZerolog
}

// GetHTTPConfiguration returns HTTP client configuration
func GetHTTPConfiguration(config *ConfigStruct) HTTPConfiguration {
	return config.HTTP
}

// GetMetricsConfiguration returns metrics configuration
func GetMetricsConfiguration(config *ConfigStruct) MetricsConfiguration {
	return config.Metrics
}

// GetKafkaBrokerConfiguration returns kafka broker configuration
func GetKafkaBrokerConfiguration(config *ConfigStruct) KafkaConfiguration {
	return config.Kafka
}
