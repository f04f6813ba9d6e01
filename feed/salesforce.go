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

package feed

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/rfd-devops/status-feed-notifier/conf"
	"github.com/rfd-devops/status-feed-notifier/types"
	"github.com/rfd-devops/status-feed-notifier/utils"
)

// SalesforceClient reads incidents from Salesforce status REST API
type SalesforceClient struct {
	fetcher            *Fetcher
	activeIncidentFeed string
	incidentDetailFeed string
}

// NewSalesforceClient constructs new client for Salesforce status API
func NewSalesforceClient(fetcher *Fetcher, settings conf.SalesforceSettings) *SalesforceClient {
	return &SalesforceClient{
		fetcher:            fetcher,
		activeIncidentFeed: settings.ActiveIncidentFeed,
		incidentDetailFeed: settings.IncidentDetailFeed,
	}
}

// DetailURL returns URL of incident detail endpoint
func DetailURL(template string, id types.IncidentID) string {
	return strings.ReplaceAll(template, conf.IncidentNumberPlaceholder, string(id))
}

// ActiveIncidents returns list of all active incidents
func (client *SalesforceClient) ActiveIncidents(ctx context.Context) ([]types.Incident, error) {
	response, err := client.fetcher.get(ctx, client.activeIncidentFeed, utils.JSONContentType)
	if err != nil {
		return nil, err
	}

	var incidents []types.Incident
	err = json.Unmarshal(response.Body, &incidents)
	if err != nil {
		log.Error().Err(err).Str("url", client.activeIncidentFeed).Msg("Unable to decode active incidents")
		return nil, &types.DecodeError{Record: "active incidents", Err: err}
	}

	for i := range incidents {
		if err := incidents[i].Validate(); err != nil {
			log.Error().Err(err).Int("index", i).Msg("Invalid incident record")
			return nil, err
		}
	}

	log.Info().Int("count", len(incidents)).Msg("Active incidents retrieved")
	return incidents, nil
}

// IncidentDetail returns details about one incident, including its impacts
func (client *SalesforceClient) IncidentDetail(ctx context.Context, id types.IncidentID) (types.Incident, error) {
	url := DetailURL(client.incidentDetailFeed, id)

	response, err := client.fetcher.get(ctx, url, utils.JSONContentType)
	if err != nil {
		return types.Incident{}, err
	}

	var incident *types.Incident
	err = json.Unmarshal(response.Body, &incident)
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("Unable to decode incident detail")
		return types.Incident{}, &types.DecodeError{Record: "incident " + string(id), Err: err}
	}
	if incident == nil {
		return types.Incident{}, &types.DecodeError{Record: "incident " + string(id), Field: "id"}
	}

	if err := incident.ValidateDetail(); err != nil {
		log.Error().Err(err).Str("url", url).Msg("Invalid incident detail")
		return types.Incident{}, err
	}

	return *incident, nil
}
