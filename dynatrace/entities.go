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
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/rfd-devops/status-feed-notifier/types"
)

// Entity API endpoints
const (
	entitiesEndpoint     = "/api/v2/entities"
	customDeviceEndpoint = "/api/v2/entities/custom"

	customDeviceSelector = `type("CUSTOM_DEVICE")`
	entitiesPageSize     = "25"
	entitiesFrom         = "now-7d"
	entitiesTo           = "now"
)

// SalesforceDeviceSearch is used to find existing Salesforce custom device
// by its display name
const SalesforceDeviceSearch = "salesforce"

// SalesforceDevice returns custom device that represents Salesforce
// services
func SalesforceDevice() types.CustomDevice {
	return types.CustomDevice{
		CustomDeviceID: "SALESFORCE_SERVICES",
		DisplayName:    "Salesforce",
		Group:          "SalesforceGroup",
		IPAddresses:    []string{"44.229.53.192", "52.40.208.215"},
		ListenPorts:    []int{443},
		FaviconURL:     "https://trust.salesforce.com/static/images/logo.svg",
		ConfigURL:      "",
		Type:           "salesforce_services",
		Properties:     map[string]string{},
		DNSNames:       []string{"trust.salesforce.com"},
	}
}

// CustomDevicesURL returns URL used to list custom devices seen during
// last seven days
func (client *Client) CustomDevicesURL() string {
	query := url.Values{}
	query.Set("pageSize", entitiesPageSize)
	query.Set("entitySelector", customDeviceSelector)
	query.Set("from", entitiesFrom)
	query.Set("to", entitiesTo)
	return client.tenantURL + entitiesEndpoint + "?" + query.Encode()
}

// ResolveTaggedApplications returns IDs of all applications returned by
// entity feed. The feed is expected to be filtered by tag already.
func (client *Client) ResolveTaggedApplications(ctx context.Context, feedURL string) ([]types.EntityID, error) {
	response, err := client.get(ctx, feedURL)
	if err != nil {
		return nil, &types.NoEntitiesFoundError{URL: feedURL, Err: err}
	}
	if !response.Successful() {
		log.Error().
			Str("url", feedURL).
			Int("status", response.StatusCode).
			Msg("Unable to read tagged applications")
		return nil, &types.NoEntitiesFoundError{URL: feedURL}
	}

	var entities []types.Entity
	err = json.Unmarshal(response.Body, &entities)
	if err != nil {
		log.Error().Err(err).Str("url", feedURL).Msg("Unable to decode list of applications")
		return nil, &types.DecodeError{Record: "entity list", Err: err}
	}

	ids := make([]types.EntityID, 0, len(entities))
	for _, entity := range entities {
		if err := entity.Validate(); err != nil {
			return nil, err
		}
		ids = append(ids, entity.EntityID)
	}

	if len(ids) == 0 {
		log.Error().Str("url", feedURL).Msg("No applications found")
		return nil, &types.NoEntitiesFoundError{URL: feedURL}
	}

	log.Info().Int("count", len(ids)).Msg("Tagged applications found")
	return ids, nil
}

// ResolveCustomDevice returns ID of custom device whose display name
// contains given text. The device is registered when it does not exist.
func (client *Client) ResolveCustomDevice(ctx context.Context, device types.CustomDevice, search string) ([]types.EntityID, error) {
	id, found, err := client.findCustomDevice(ctx, search)
	if err != nil {
		return nil, err
	}
	if found {
		log.Info().Str("entityId", string(id)).Msg("Existing custom device found")
		return []types.EntityID{id}, nil
	}

	id, err = client.createCustomDevice(ctx, device)
	if err != nil {
		return nil, err
	}
	return []types.EntityID{id}, nil
}

func (client *Client) findCustomDevice(ctx context.Context, search string) (types.EntityID, bool, error) {
	listURL := client.CustomDevicesURL()

	response, err := client.get(ctx, listURL)
	if err != nil {
		return "", false, &types.NoEntitiesFoundError{URL: listURL, Err: err}
	}
	if !response.Successful() {
		log.Error().
			Str("url", listURL).
			Int("status", response.StatusCode).
			Msg("Unable to list custom devices")
		return "", false, &types.NoEntitiesFoundError{URL: listURL}
	}

	var list types.EntityListResponse
	err = json.Unmarshal(response.Body, &list)
	if err != nil {
		log.Error().Err(err).Str("url", listURL).Msg("Unable to decode list of custom devices")
		return "", false, &types.DecodeError{Record: "custom device list", Err: err}
	}

	search = strings.ToLower(search)
	for _, entity := range list.Entities {
		if strings.Contains(strings.ToLower(entity.DisplayName), search) {
			if err := entity.Validate(); err != nil {
				return "", false, err
			}
			return entity.EntityID, true, nil
		}
	}

	log.Info().
		Int("devices", len(list.Entities)).
		Str("search", search).
		Msg("Custom device not found")
	return "", false, nil
}

func (client *Client) createCustomDevice(ctx context.Context, device types.CustomDevice) (types.EntityID, error) {
	createURL := client.tenantURL + customDeviceEndpoint

	response, err := client.postJSON(ctx, createURL, device)
	if err != nil {
		return "", &types.EntityCreateFailedError{URL: createURL, StatusCode: response.StatusCode, Err: err}
	}
	if response.StatusCode != http.StatusCreated {
		log.Error().
			Str("url", createURL).
			Int("status", response.StatusCode).
			Str("body", string(response.Body)).
			Msg("Custom device registration failed")
		return "", &types.EntityCreateFailedError{
			URL:        createURL,
			StatusCode: response.StatusCode,
			Body:       string(response.Body),
		}
	}

	var created types.CustomDeviceCreated
	err = json.Unmarshal(response.Body, &created)
	if err != nil {
		return "", &types.EntityCreateFailedError{
			URL:        createURL,
			StatusCode: response.StatusCode,
			Body:       string(response.Body),
			Err:        err,
		}
	}
	if created.EntityID == "" {
		return "", &types.EntityCreateFailedError{
			URL:        createURL,
			StatusCode: response.StatusCode,
			Body:       string(response.Body),
			Err:        &types.DecodeError{Record: "created custom device", Field: "entityId"},
		}
	}

	log.Info().
		Str("entityId", string(created.EntityID)).
		Str("groupId", created.GroupID).
		Msg("Custom device registered")
	return created.EntityID, nil
}
