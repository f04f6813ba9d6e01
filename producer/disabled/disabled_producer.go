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

// Package disabled contains an implementation of Producer interface used
// when event mirror is switched off. Events are only logged.
package disabled

import (
	"github.com/rs/zerolog/log"

	"github.com/rfd-devops/status-feed-notifier/types"
)

// Producer is an implementation of Producer interface where no message is sent
type Producer struct {
	// Skipped is the number of events that were not mirrored
	Skipped int
}

// ProduceMessage doesn't mirror the event, offset -1 is returned
func (producer *Producer) ProduceMessage(msg types.MirrorMessage) (int32, int64, error) {
	producer.Skipped++
	log.Debug().
		Str("run ID", msg.RunID).
		Str("title", msg.Event.Title).
		Bool("published", msg.Published()).
		Msg("Event mirror disabled, event not mirrored")
	return 0, -1, nil
}

// Close logs number of events that were not mirrored
func (producer *Producer) Close() error {
	if producer.Skipped > 0 {
		log.Debug().Int("events", producer.Skipped).Msg("Events not mirrored during run")
	}
	return nil
}
