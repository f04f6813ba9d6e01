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
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/rfd-devops/status-feed-notifier/types"
	"github.com/rfd-devops/status-feed-notifier/utils"
)

// DefaultMetricIngestURL is the address of local metric ingestion endpoint
// provided by OneAgent
const DefaultMetricIngestURL = "http://localhost:14499/metrics/ingest"

// MetricLine returns metric in line protocol format
func MetricLine(name, value string) string {
	return fmt.Sprintf("%s %s", strings.TrimSpace(name), strings.TrimSpace(value))
}

// IngestMetric sends one metric line to metric ingestion endpoint. The
// local endpoint does not require any token.
func IngestMetric(ctx context.Context, client utils.HTTPClient, url, name, value string) (types.PublishResult, error) {
	if strings.TrimSpace(name) == "" {
		return types.PublishResult{}, &types.DecodeError{Record: "metric", Field: "name"}
	}
	if strings.TrimSpace(value) == "" {
		return types.PublishResult{}, &types.DecodeError{Record: "metric", Field: "value"}
	}

	line := MetricLine(name, value)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(line))
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("Error setting up HTTP POST request")
		return types.PublishResult{}, err
	}
	req.Header.Set(utils.ContentTypeHeader, utils.TextContentType)

	response, err := utils.SendRequest(client, req)
	result := types.PublishResult{StatusCode: response.StatusCode, Body: string(response.Body)}
	if err != nil {
		return result, &types.EventPublishFailedError{URL: url, StatusCode: response.StatusCode, Err: err}
	}
	if !response.Successful() {
		log.Error().
			Str("url", url).
			Int("status", response.StatusCode).
			Str("body", result.Body).
			Msg("Metric rejected")
		return result, &types.EventPublishFailedError{URL: url, StatusCode: response.StatusCode, Body: result.Body}
	}

	log.Info().Str("metric", line).Str("body", result.Body).Msg("Metric ingested")
	return result, nil
}
