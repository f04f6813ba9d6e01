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

package dynatrace_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RedHatInsights/insights-operator-utils/tests/helpers"
	"github.com/stretchr/testify/assert"

	"github.com/rfd-devops/status-feed-notifier/conf"
	"github.com/rfd-devops/status-feed-notifier/dynatrace"
	"github.com/rfd-devops/status-feed-notifier/types"
	"github.com/rfd-devops/status-feed-notifier/utils"
)

const (
	testToken     = "test-token"
	authorization = "Api-Token " + testToken
)

func newClient(tenantURL string) *dynatrace.Client {
	return dynatrace.NewClient(
		utils.NewHTTPClient(conf.HTTPConfiguration{Timeout: 2 * time.Second}),
		conf.PlatformSettings{
			APIToken:     testToken,
			TenantURL:    tenantURL,
			EventFeedURL: tenantURL + "/api/v1/events",
		},
		"dynatrace-test")
}

// TestNewClientTenantURL checks normalization of tenant URL
func TestNewClientTenantURL(t *testing.T) {
	client := dynatrace.NewClient(nil, conf.PlatformSettings{TenantURL: "abc12345.live.dynatrace.com/"}, "")
	assert.Equal(t, "http://abc12345.live.dynatrace.com", client.TenantURL())

	client = dynatrace.NewClient(nil, conf.PlatformSettings{TenantURL: "https://abc12345.live.dynatrace.com"}, "")
	assert.Equal(t, "https://abc12345.live.dynatrace.com", client.TenantURL())
}

// TestCustomDevicesURL checks query used to list custom devices
func TestCustomDevicesURL(t *testing.T) {
	client := dynatrace.NewClient(nil, conf.PlatformSettings{TenantURL: "https://abc12345.live.dynatrace.com"}, "")

	req, err := http.NewRequest(http.MethodGet, client.CustomDevicesURL(), http.NoBody)
	helpers.FailOnError(t, err)

	assert.Equal(t, "/api/v2/entities", req.URL.Path)
	query := req.URL.Query()
	assert.Equal(t, `type("CUSTOM_DEVICE")`, query.Get("entitySelector"))
	assert.Equal(t, "25", query.Get("pageSize"))
	assert.Equal(t, "now-7d", query.Get("from"))
	assert.Equal(t, "now", query.Get("to"))
}

// TestResolveTaggedApplications checks that all entity IDs are collected
func TestResolveTaggedApplications(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, authorization, r.Header.Get(utils.AuthorizationHeader))
		assert.Equal(t, "AWS_STATUS", r.URL.Query().Get("tag"))
		_, err := w.Write([]byte(`[
			{"entityId": "APPLICATION-1", "displayName": "Shop"},
			{"entityId": "APPLICATION-2", "displayName": "Portal"}
		]`))
		helpers.FailOnError(t, err)
	}))
	defer server.Close()

	ids, err := newClient(server.URL).ResolveTaggedApplications(context.Background(),
		server.URL+"/api/v1/entity/applications?tag=AWS_STATUS")
	helpers.FailOnError(t, err)

	assert.Equal(t, []types.EntityID{"APPLICATION-1", "APPLICATION-2"}, ids)
}

// TestResolveTaggedApplicationsEmpty checks that empty result is an error
func TestResolveTaggedApplicationsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(`[]`))
		helpers.FailOnError(t, err)
	}))
	defer server.Close()

	_, err := newClient(server.URL).ResolveTaggedApplications(context.Background(), server.URL)

	var notFound *types.NoEntitiesFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, server.URL, notFound.URL)
}

// TestResolveTaggedApplicationsUnauthorized checks handling of non-2xx
// status code
func TestResolveTaggedApplicationsUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newClient(server.URL).ResolveTaggedApplications(context.Background(), server.URL)

	var notFound *types.NoEntitiesFoundError
	assert.True(t, errors.As(err, &notFound))
}

// TestResolveTaggedApplicationsTransportError checks that failed request is
// reported with the original cause
func TestResolveTaggedApplicationsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request is not expected")
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newClient(server.URL).ResolveTaggedApplications(ctx, server.URL)

	var notFound *types.NoEntitiesFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, server.URL, notFound.URL)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestResolveCustomDeviceTransportError checks that failed listing of custom
// devices is reported with the original cause
func TestResolveCustomDeviceTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request is not expected")
	}))
	server.Close()

	client := newClient(server.URL)
	_, err := client.ResolveCustomDevice(context.Background(), types.CustomDevice{}, "Salesforce")

	var notFound *types.NoEntitiesFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, client.CustomDevicesURL(), notFound.URL)
	assert.NotNil(t, notFound.Err)
}

// TestResolveTaggedApplicationsMissingID checks schema validation
func TestResolveTaggedApplicationsMissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(`[{"displayName": "Shop"}]`))
		helpers.FailOnError(t, err)
	}))
	defer server.Close()

	_, err := newClient(server.URL).ResolveTaggedApplications(context.Background(), server.URL)

	var decodeError *types.DecodeError
	assert.True(t, errors.As(err, &decodeError))
	assert.Equal(t, "entityId", decodeError.Field)
}

// customDeviceServer simulates entity API and counts create requests
type customDeviceServer struct {
	*httptest.Server
	entities     string
	createStatus int
	createBody   string
	creates      int
	created      types.CustomDevice
}

func newCustomDeviceServer(t *testing.T, entities string, createStatus int, createBody string) *customDeviceServer {
	s := &customDeviceServer{
		entities:     entities,
		createStatus: createStatus,
		createBody:   createBody,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/entities", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, authorization, r.Header.Get(utils.AuthorizationHeader))
		_, err := w.Write([]byte(s.entities))
		helpers.FailOnError(t, err)
	})
	mux.HandleFunc("/api/v2/entities/custom", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, authorization, r.Header.Get(utils.AuthorizationHeader))
		assert.Equal(t, utils.JSONContentType, r.Header.Get(utils.ContentTypeHeader))
		s.creates++

		body, err := io.ReadAll(r.Body)
		helpers.FailOnError(t, err)
		helpers.FailOnError(t, json.Unmarshal(body, &s.created))

		w.WriteHeader(s.createStatus)
		_, err = w.Write([]byte(s.createBody))
		helpers.FailOnError(t, err)
	})
	s.Server = httptest.NewServer(mux)
	return s
}

// TestResolveCustomDeviceExisting checks that no device is created when
// matching one exists
func TestResolveCustomDeviceExisting(t *testing.T) {
	server := newCustomDeviceServer(t, `{
		"totalCount": 2,
		"entities": [
			{"entityId": "CUSTOM_DEVICE-1", "displayName": "Printer"},
			{"entityId": "CUSTOM_DEVICE-2", "displayName": "Salesforce Prod"}
		]}`, http.StatusCreated, "")
	defer server.Close()

	ids, err := newClient(server.URL).ResolveCustomDevice(context.Background(),
		dynatrace.SalesforceDevice(), dynatrace.SalesforceDeviceSearch)
	helpers.FailOnError(t, err)

	assert.Equal(t, []types.EntityID{"CUSTOM_DEVICE-2"}, ids)
	assert.Equal(t, 0, server.creates)
}

// TestResolveCustomDeviceCreate checks that exactly one device is created
// when there is no matching one
func TestResolveCustomDeviceCreate(t *testing.T) {
	server := newCustomDeviceServer(t,
		`{"totalCount": 1, "entities": [{"entityId": "CUSTOM_DEVICE-1", "displayName": "Printer"}]}`,
		http.StatusCreated,
		`{"entityId": "CUSTOM_DEVICE-42", "groupId": "CUSTOM_DEVICE_GROUP-7"}`)
	defer server.Close()

	ids, err := newClient(server.URL).ResolveCustomDevice(context.Background(),
		dynatrace.SalesforceDevice(), dynatrace.SalesforceDeviceSearch)
	helpers.FailOnError(t, err)

	assert.Equal(t, []types.EntityID{"CUSTOM_DEVICE-42"}, ids)
	assert.Equal(t, 1, server.creates)
	assert.Equal(t, dynatrace.SalesforceDevice(), server.created)
}

// TestResolveCustomDeviceCreateFailed checks handling of unexpected status
// code returned by create request
func TestResolveCustomDeviceCreateFailed(t *testing.T) {
	server := newCustomDeviceServer(t, `{"totalCount": 0, "entities": []}`,
		http.StatusBadRequest, `{"error": {"code": 400, "message": "invalid"}}`)
	defer server.Close()

	_, err := newClient(server.URL).ResolveCustomDevice(context.Background(),
		dynatrace.SalesforceDevice(), dynatrace.SalesforceDeviceSearch)

	var createFailed *types.EntityCreateFailedError
	assert.True(t, errors.As(err, &createFailed))
	assert.Equal(t, http.StatusBadRequest, createFailed.StatusCode)
	assert.Contains(t, createFailed.Body, "invalid")
	assert.Equal(t, 1, server.creates)
}

// TestResolveCustomDeviceCreateOKIsNotCreated checks that only 201 is
// accepted as successful registration
func TestResolveCustomDeviceCreateOKIsNotCreated(t *testing.T) {
	server := newCustomDeviceServer(t, `{"entities": []}`,
		http.StatusOK, `{"entityId": "CUSTOM_DEVICE-42"}`)
	defer server.Close()

	_, err := newClient(server.URL).ResolveCustomDevice(context.Background(),
		dynatrace.SalesforceDevice(), dynatrace.SalesforceDeviceSearch)

	var createFailed *types.EntityCreateFailedError
	assert.True(t, errors.As(err, &createFailed))
	assert.Equal(t, http.StatusOK, createFailed.StatusCode)
}

// TestResolveCustomDeviceCreateWithoutID checks handling of malformed
// answer to create request
func TestResolveCustomDeviceCreateWithoutID(t *testing.T) {
	server := newCustomDeviceServer(t, `{"entities": []}`, http.StatusCreated, `{}`)
	defer server.Close()

	_, err := newClient(server.URL).ResolveCustomDevice(context.Background(),
		dynatrace.SalesforceDevice(), dynatrace.SalesforceDeviceSearch)

	var decodeError *types.DecodeError
	assert.True(t, errors.As(err, &decodeError))
	assert.Equal(t, "entityId", decodeError.Field)
}

// TestResolveCustomDeviceListMalformed checks handling of malformed entity
// list
func TestResolveCustomDeviceListMalformed(t *testing.T) {
	server := newCustomDeviceServer(t, `{"entities": [`, http.StatusCreated, "")
	defer server.Close()

	_, err := newClient(server.URL).ResolveCustomDevice(context.Background(),
		dynatrace.SalesforceDevice(), dynatrace.SalesforceDeviceSearch)

	var decodeError *types.DecodeError
	assert.True(t, errors.As(err, &decodeError))
	assert.Equal(t, 0, server.creates)
}
