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

// Package dynatrace contains client for monitoring platform API. The client
// is able to find entities events are attached to (tagged applications and
// custom devices), register new custom device, publish availability events
// and ingest metric lines.
package dynatrace

// Generated documentation is available at:
// https://pkg.go.dev/github.com/rfd-devops/status-feed-notifier/dynatrace

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	httputils "github.com/RedHatInsights/insights-operator-utils/http"
	"github.com/rs/zerolog/log"

	"github.com/rfd-devops/status-feed-notifier/conf"
	"github.com/rfd-devops/status-feed-notifier/utils"
)

// tokenPrefix is used in Authorization header
const tokenPrefix = "Api-Token "

// Client is a client for monitoring platform REST API
type Client struct {
	httpClient   utils.HTTPClient
	apiToken     string
	tenantURL    string
	eventFeedURL string
	userAgent    string
}

// NewClient constructs new client for monitoring platform API
func NewClient(httpClient utils.HTTPClient, platform conf.PlatformSettings, userAgent string) *Client {
	tenantURL := ""
	if platform.TenantURL != "" {
		tenantURL = strings.TrimSuffix(httputils.SetHTTPPrefix(platform.TenantURL), "/")
	}
	return &Client{
		httpClient:   httpClient,
		apiToken:     platform.APIToken,
		tenantURL:    tenantURL,
		eventFeedURL: platform.EventFeedURL,
		userAgent:    userAgent,
	}
}

// TenantURL returns base URL of the tenant
func (client *Client) TenantURL() string {
	return client.tenantURL
}

// EventFeedURL returns URL of event ingestion endpoint
func (client *Client) EventFeedURL() string {
	return client.eventFeedURL
}

// newRequest prepares request with all headers needed by the platform
func (client *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("Error setting up HTTP request")
		return nil, err
	}

	req.Header.Set(utils.AcceptHeader, utils.JSONContentType)
	req.Header.Set(utils.AuthorizationHeader, tokenPrefix+client.apiToken)
	if body != nil && body != http.NoBody {
		req.Header.Set(utils.ContentTypeHeader, utils.JSONContentType)
	}
	if client.userAgent != "" {
		req.Header.Set(utils.UserAgentHeader, client.userAgent)
	}
	return req, nil
}

// get performs GET request
func (client *Client) get(ctx context.Context, url string) (utils.Response, error) {
	req, err := client.newRequest(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return utils.Response{}, err
	}
	return utils.SendRequest(client.httpClient, req)
}

// postJSON serializes payload and performs POST request
func (client *Client) postJSON(ctx context.Context, url string, payload interface{}) (utils.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Unable to serialize request payload")
		return utils.Response{}, err
	}

	req, err := client.newRequest(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return utils.Response{}, err
	}
	return utils.SendRequest(client.httpClient, req)
}
