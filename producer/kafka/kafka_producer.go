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

// Package kafka contains an implementation of Producer interface that
// mirrors published events to properly configured Kafka broker. Each event
// is sent as JSON keyed by run ID, with provider, publication outcome and
// event source in record headers.
package kafka

// Generated documentation is available at:
// https://pkg.go.dev/github.com/rfd-devops/status-feed-notifier/producer/kafka

import (
	"encoding/json"
	"strconv"
	"strings"

	tlsutils "github.com/RedHatInsights/insights-operator-utils/tls"
	"github.com/Shopify/sarama"
	"github.com/rs/zerolog/log"

	"github.com/rfd-devops/status-feed-notifier/conf"
	"github.com/rfd-devops/status-feed-notifier/types"
)

// Producer is an implementation of Producer interface
type Producer struct {
	Configuration conf.KafkaConfiguration
	Producer      sarama.SyncProducer
}

// New constructs new implementation of Producer interface
func New(config *conf.ConfigStruct) (*Producer, error) {
	kafkaConfig := conf.GetKafkaBrokerConfiguration(config)

	saramaConfig, err := SaramaConfigFromBrokerConfig(&kafkaConfig)
	if err != nil {
		log.Error().Err(err).Msg("Unable to create a valid Kafka configuration")
		return nil, err
	}

	producer, err := sarama.NewSyncProducer(strings.Split(kafkaConfig.Address, ","), saramaConfig)
	if err != nil {
		log.Error().Str("Kafka address", kafkaConfig.Address).Err(err).Msg("unable to start a Kafka producer")
		return nil, err
	}

	return &Producer{
		Configuration: kafkaConfig,
		Producer:      producer,
	}, nil
}

// Record headers of mirrored events
const (
	providerHeader  = "provider"
	publishedHeader = "published"
	sourceHeader    = "event_source"
)

// ProduceMessage serializes mirrored event and sends it to configured
// topic. Run ID is used as message key, so all events of one run land in
// the same partition. Partition ID and offset of new message are returned.
func (producer *Producer) ProduceMessage(msg types.MirrorMessage) (partitionID int32, offset int64, err error) {
	// no-op when producer is disabled
	if !producer.Configuration.Enabled {
		return
	}

	value, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("run ID", msg.RunID).Msg("Unable to serialize mirrored event")
		return
	}

	producerMsg := &sarama.ProducerMessage{
		Topic:     producer.Configuration.Topic,
		Key:       sarama.StringEncoder(msg.RunID),
		Value:     sarama.ByteEncoder(value),
		Timestamp: msg.PublishedAt,
		Headers: []sarama.RecordHeader{
			{Key: []byte(providerHeader), Value: []byte(msg.Provider)},
			{Key: []byte(publishedHeader), Value: []byte(strconv.FormatBool(msg.Published()))},
			{Key: []byte(sourceHeader), Value: []byte(msg.Event.Source)},
		},
	}

	partitionID, offset, err = producer.Producer.SendMessage(producerMsg)
	if err != nil {
		log.Error().Err(err).Str("run ID", msg.RunID).Msg("failed to mirror event to Kafka")
	} else {
		log.Info().
			Str("run ID", msg.RunID).
			Str("title", msg.Event.Title).
			Int("partition", int(partitionID)).
			Int64("offset", offset).
			Msg("event mirrored")
	}
	return
}

// Close allow the Sarama producer to be gracefully closed
func (producer *Producer) Close() error {
	log.Info().Msg("Shutting down kafka producer")
	if err := producer.Producer.Close(); err != nil {
		log.Error().Err(err).Msg("unable to close Kafka producer")
		return err
	}

	return nil
}

// SaramaConfigFromBrokerConfig converts broker configuration into Sarama
// configuration, including TLS and SASL settings
func SaramaConfigFromBrokerConfig(cfg *conf.KafkaConfiguration) (*sarama.Config, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V2_6_0_0

	if cfg.Timeout > 0 {
		saramaConfig.Net.DialTimeout = cfg.Timeout
		saramaConfig.Net.ReadTimeout = cfg.Timeout
		saramaConfig.Net.WriteTimeout = cfg.Timeout
		saramaConfig.Producer.Timeout = cfg.Timeout
	}

	if strings.Contains(cfg.SecurityProtocol, "SSL") {
		saramaConfig.Net.TLS.Enable = true
	}
	if strings.EqualFold(cfg.SecurityProtocol, "SSL") && cfg.CertPath != "" {
		tlsConfig, err := tlsutils.NewTLSConfig(cfg.CertPath)
		if err != nil {
			log.Error().Msgf("Unable to load TLS config for %s cert", cfg.CertPath)
			return nil, err
		}
		saramaConfig.Net.TLS.Config = tlsConfig
	} else if strings.HasPrefix(cfg.SecurityProtocol, "SASL_") {
		log.Info().Msg("Configuring SASL authentication")
		saramaConfig.Net.SASL.Enable = true
		saramaConfig.Net.SASL.User = cfg.SaslUsername
		saramaConfig.Net.SASL.Password = cfg.SaslPassword
		saramaConfig.Net.SASL.Mechanism = sarama.SASLMechanism(cfg.SaslMechanism)

		if strings.EqualFold(cfg.SaslMechanism, sarama.SASLTypeSCRAMSHA512) {
			log.Info().Msg("Configuring SCRAM-SHA512")
			saramaConfig.Net.SASL.Handshake = true
			saramaConfig.Net.SASL.SCRAMClientGeneratorFunc = func() sarama.SCRAMClient {
				return &SCRAMClient{HashGeneratorFcn: SHA512}
			}
		}
	}

	saramaConfig.Producer.Return.Successes = true
	return saramaConfig, nil
}
