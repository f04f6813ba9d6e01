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

package dynatrace

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/rfd-devops/status-feed-notifier/types"
)

// PublishEvent posts event to event ingestion endpoint. The request is
// never retried. Result with status code and body is returned even when
// the publication failed, if some answer was received.
func (client *Client) PublishEvent(ctx context.Context, event types.EventPayload) (types.PublishResult, error) {
	response, err := client.postJSON(ctx, client.eventFeedURL, event)
	result := types.PublishResult{
		StatusCode: response.StatusCode,
		Body:       string(response.Body),
	}
	if err != nil {
		log.Error().Err(err).Str("url", client.eventFeedURL).Msg("Unable to publish event")
		return result, &types.EventPublishFailedError{
			URL:        client.eventFeedURL,
			StatusCode: response.StatusCode,
			Body:       result.Body,
			Err:        err,
		}
	}

	if !response.Successful() {
		log.Error().
			Str("url", client.eventFeedURL).
			Int("status", response.StatusCode).
			Str("body", result.Body).
			Msg("Event rejected")
		return result, &types.EventPublishFailedError{
			URL:        client.eventFeedURL,
			StatusCode: response.StatusCode,
			Body:       result.Body,
		}
	}

	log.Info().
		Str("title", event.Title).
		Int("status", response.StatusCode).
		Str("body", result.Body).
		Msg("Event published")
	return result, nil
}
