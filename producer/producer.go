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

// Package producer contains functions that can be used to produce (that is
// send) messages to properly configured Kafka broker. Each event published
// to monitoring platform can be mirrored this way.
package producer

// Generated documentation is available at:
// https://pkg.go.dev/github.com/rfd-devops/status-feed-notifier/producer

import (
	"github.com/rs/zerolog/log"

	"github.com/rfd-devops/status-feed-notifier/conf"
	"github.com/rfd-devops/status-feed-notifier/producer/disabled"
	"github.com/rfd-devops/status-feed-notifier/producer/kafka"
	"github.com/rfd-devops/status-feed-notifier/types"
)

// Producer represents any producer
type Producer interface {
	ProduceMessage(msg types.MirrorMessage) (int32, int64, error)
	Close() error
}

// New constructs producer selected by configuration. Disabled producer is
// returned when Kafka mirror is not enabled.
func New(config *conf.ConfigStruct) (Producer, error) {
	kafkaConfig := conf.GetKafkaBrokerConfiguration(config)
	if !kafkaConfig.Enabled {
		log.Debug().Msg("Kafka mirror is disabled")
		return &disabled.Producer{}, nil
	}

	return kafka.New(config)
}
