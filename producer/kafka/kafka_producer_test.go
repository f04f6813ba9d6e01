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

package kafka

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/RedHatInsights/insights-operator-utils/tests/helpers"
	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/rfd-devops/status-feed-notifier/conf"
	"github.com/rfd-devops/status-feed-notifier/types"
)

var (
	brokerCfg = conf.KafkaConfiguration{
		Address: "localhost:9092",
		Topic:   "status_feed_events",
		Timeout: 30 * time.Second,
		Enabled: true,
	}

	testEvent = types.EventPayload{
		Title:          "Okta Status",
		Description:    "\nService Degradation\n\nhttps://status.okta.com\n\n",
		EventType:      "AVAILABILITY_EVENT",
		TimeoutMinutes: 10,
		Source:         "Okta Status Extension",
		AttachRules:    types.AttachRules{EntityIDs: []types.EntityID{"APPLICATION-1"}},
	}

	testMessage = types.MirrorMessage{
		RunID:       "0b5ad4c6-5d0f-4c2a-9d4e-2f1f3a6f2a10",
		Provider:    types.ProviderOkta,
		PublishedAt: time.Date(2024, time.April, 9, 10, 0, 0, 0, time.UTC),
		StatusCode:  http.StatusBadRequest,
		Event:       testEvent,
	}
)

func init() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

// Test Producer creation with a non accessible Kafka broker
func TestNewProducerBadBroker(t *testing.T) {
	_, err := New(&conf.ConfigStruct{
		Kafka: conf.KafkaConfiguration{
			Address: "",
			Topic:   "whatever",
			Timeout: time.Second,
			Enabled: true,
		}})
	assert.Error(t, err)
}

// TestProducerClose makes sure it's possible to close the connection
func TestProducerClose(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	prod := Producer{
		Configuration: brokerCfg,
		Producer:      mockProducer,
	}

	err := prod.Close()
	assert.NoError(t, err, "failed to close Kafka producer")
}

func TestProducerNew(t *testing.T) {
	mockBroker := sarama.NewMockBroker(t, 0)
	defer mockBroker.Close()

	handlerMap := map[string]sarama.MockResponse{
		"MetadataRequest": sarama.NewMockMetadataResponse(t).
			SetBroker(mockBroker.Addr(), mockBroker.BrokerID()).
			SetLeader(brokerCfg.Topic, 0, mockBroker.BrokerID()),
	}
	mockBroker.SetHandlerByMap(handlerMap)

	prod, err := New(&conf.ConfigStruct{
		Kafka: conf.KafkaConfiguration{
			Address: mockBroker.Addr(),
			Topic:   brokerCfg.Topic,
			Timeout: brokerCfg.Timeout,
			Enabled: true,
		}})
	helpers.FailOnError(t, err)

	helpers.FailOnError(t, prod.Close())
}

// TestSaramaConfigFromBrokerConfigTimeout checks that timeout is propagated
// to network and producer settings
func TestSaramaConfigFromBrokerConfigTimeout(t *testing.T) {
	saramaConfig, err := SaramaConfigFromBrokerConfig(&brokerCfg)
	helpers.FailOnError(t, err)

	assert.Equal(t, brokerCfg.Timeout, saramaConfig.Net.DialTimeout)
	assert.Equal(t, brokerCfg.Timeout, saramaConfig.Producer.Timeout)
	assert.True(t, saramaConfig.Producer.Return.Successes)
	assert.False(t, saramaConfig.Net.TLS.Enable)
	assert.False(t, saramaConfig.Net.SASL.Enable)
}

// TestSaramaConfigFromBrokerWithSSL checks that TLS is enabled for SSL
// protocols
func TestSaramaConfigFromBrokerWithSSL(t *testing.T) {
	var brokerConfiguration = conf.KafkaConfiguration{
		Address:          "localhost:9093",
		Topic:            "status_feed_events",
		Enabled:          true,
		SecurityProtocol: "SSL",
	}

	saramaConfig, err := SaramaConfigFromBrokerConfig(&brokerConfiguration)
	helpers.FailOnError(t, err)
	assert.True(t, saramaConfig.Net.TLS.Enable)
	assert.False(t, saramaConfig.Net.SASL.Enable)
}

// TestSaramaConfigFromBrokerWithBadCertPath checks handling of missing
// certificate
func TestSaramaConfigFromBrokerWithBadCertPath(t *testing.T) {
	var brokerConfiguration = conf.KafkaConfiguration{
		Address:          "localhost:9093",
		Enabled:          true,
		SecurityProtocol: "SSL",
		CertPath:         "/this/file/does/not/exist.crt",
	}

	_, err := SaramaConfigFromBrokerConfig(&brokerConfiguration)
	assert.Error(t, err)
}

// TestSaramaConfigFromBrokerWithSASLEnabledNoSASLMechanism function checks
// that the Sarama config returned for a broker configuration with SASL
// enabled contains the expected fields
func TestSaramaConfigFromBrokerWithSASLEnabledNoSASLMechanism(t *testing.T) {
	var brokerConfiguration = conf.KafkaConfiguration{
		Address:          "localhost:9092",
		Topic:            "status_feed_events",
		Enabled:          true,
		SecurityProtocol: "SASL_",
		SaslUsername:     "sasl_user",
		SaslPassword:     "sasl_password",
		SaslMechanism:    "",
	}

	saramaConfig, err := SaramaConfigFromBrokerConfig(&brokerConfiguration)
	assert.Nil(t, err)
	assert.True(t, saramaConfig.Net.SASL.Enable)
	assert.Equal(t, saramaConfig.Net.SASL.User, brokerConfiguration.SaslUsername)
	assert.Equal(t, saramaConfig.Net.SASL.Password, brokerConfiguration.SaslPassword)
	assert.Nil(t, saramaConfig.Net.SASL.SCRAMClientGeneratorFunc, "SCRAM client generator function should not be created with given config")
}

// TestSaramaConfigFromBrokerWithSASLEnabledSCRAMAuth function checks that
// the Sarama config returned for a broker configuration with SASL enabled
// using SCRAM authentication mechanism contains expected fields
func TestSaramaConfigFromBrokerWithSASLEnabledSCRAMAuth(t *testing.T) {
	var brokerConfiguration = conf.KafkaConfiguration{
		Address:          "localhost:9092",
		Topic:            "status_feed_events",
		Enabled:          true,
		SecurityProtocol: "SASL_SSL",
		SaslUsername:     "sasl_user",
		SaslPassword:     "sasl_password",
		SaslMechanism:    sarama.SASLTypeSCRAMSHA512,
	}

	saramaConfig, err := SaramaConfigFromBrokerConfig(&brokerConfiguration)
	assert.Nil(t, err)
	assert.True(t, saramaConfig.Net.TLS.Enable)
	assert.True(t, saramaConfig.Net.SASL.Enable)
	assert.True(t, saramaConfig.Net.SASL.Handshake)
	assert.Equal(t, saramaConfig.Net.SASL.User, brokerConfiguration.SaslUsername)
	assert.Equal(t, saramaConfig.Net.SASL.Password, brokerConfiguration.SaslPassword)
	assert.NotNil(t, saramaConfig.Net.SASL.SCRAMClientGeneratorFunc, "SCRAM client generator function should have been created with given config")

	client := saramaConfig.Net.SASL.SCRAMClientGeneratorFunc()
	assert.IsType(t, &SCRAMClient{}, client)
}

// TestSaramaConfigFromBrokerWithSASLEnabledUnexpectedAuthMechanism function
// checks that the Sarama config returned for a broker configuration with
// SASL enabled using unhandled authentication mechanism contains expected
// fields
func TestSaramaConfigFromBrokerWithSASLEnabledUnexpectedAuthMechanism(t *testing.T) {
	var brokerConfiguration = conf.KafkaConfiguration{
		Address:          "localhost:9092",
		Topic:            "status_feed_events",
		Enabled:          true,
		SecurityProtocol: "SASL_",
		SaslUsername:     "sasl_user",
		SaslPassword:     "sasl_password",
		SaslMechanism:    sarama.SASLTypeSCRAMSHA256,
	}

	saramaConfig, err := SaramaConfigFromBrokerConfig(&brokerConfiguration)
	assert.Nil(t, err)
	assert.True(t, saramaConfig.Net.SASL.Enable)
	assert.Nil(t, saramaConfig.Net.SASL.SCRAMClientGeneratorFunc, "SCRAM client generator function should not be created with given config")
}

// TestSCRAMClientConversation checks the first step of SCRAM conversation
func TestSCRAMClientConversation(t *testing.T) {
	client := &SCRAMClient{HashGeneratorFcn: SHA512}

	err := client.Begin("sasl_user", "sasl_password", "")
	helpers.FailOnError(t, err)

	first, err := client.Step("")
	helpers.FailOnError(t, err)
	assert.Contains(t, first, "n=sasl_user")
	assert.False(t, client.Done())
}

func TestProducerSendEvent(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	mockProducer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != testMessage.RunID {
			return errors.New("unexpected message key " + string(key))
		}

		headers := map[string]string{}
		for _, header := range msg.Headers {
			headers[string(header.Key)] = string(header.Value)
		}
		if headers["provider"] != "OKTA" || headers["published"] != "false" {
			return fmt.Errorf("unexpected headers %v", headers)
		}

		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var mirrored types.MirrorMessage
		if err := json.Unmarshal(value, &mirrored); err != nil {
			return err
		}
		if mirrored.Event.Title != testEvent.Title || mirrored.StatusCode != http.StatusBadRequest {
			return errors.New("unexpected mirrored event " + string(value))
		}
		return nil
	})

	kafkaProducer := Producer{
		Configuration: brokerCfg,
		Producer:      mockProducer,
	}

	_, _, err := kafkaProducer.ProduceMessage(testMessage)
	assert.NoError(t, err, "Couldn't produce message with given broker configuration")
	helpers.FailOnError(t, kafkaProducer.Close())
}

func TestProducerSendEventFailure(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	kafkaProducer := Producer{
		Configuration: brokerCfg,
		Producer:      mockProducer,
	}

	_, _, err := kafkaProducer.ProduceMessage(testMessage)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	helpers.FailOnError(t, kafkaProducer.Close())
}

// TestProducerDisabledOnTheFly checks that nothing is sent when producer
// is disabled in configuration
func TestProducerDisabledOnTheFly(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)

	disabledCfg := brokerCfg
	disabledCfg.Enabled = false
	kafkaProducer := Producer{
		Configuration: disabledCfg,
		Producer:      mockProducer,
	}

	partition, offset, err := kafkaProducer.ProduceMessage(testMessage)
	assert.NoError(t, err)
	assert.Equal(t, int32(0), partition)
	assert.Equal(t, int64(0), offset)
	helpers.FailOnError(t, kafkaProducer.Close())
}
