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

package utils_test

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RedHatInsights/insights-operator-utils/tests/helpers"
	"github.com/stretchr/testify/assert"

	"github.com/rfd-devops/status-feed-notifier/conf"
	"github.com/rfd-devops/status-feed-notifier/utils"
)

type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func TestSendRequestOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, err := w.Write([]byte(`{"ok": true}`))
		helpers.FailOnError(t, err)
	}))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL, http.NoBody)
	helpers.FailOnError(t, err)

	response, err := utils.SendRequest(utils.NewHTTPClient(conf.HTTPConfiguration{Timeout: time.Second}), req)
	helpers.FailOnError(t, err)

	assert.Equal(t, http.StatusAccepted, response.StatusCode)
	assert.Equal(t, `{"ok": true}`, string(response.Body))
	assert.True(t, response.Successful())
}

func TestSendRequestNotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL, http.NoBody)
	helpers.FailOnError(t, err)

	response, err := utils.SendRequest(utils.NewHTTPClient(conf.HTTPConfiguration{}), req)
	helpers.FailOnError(t, err)

	assert.Equal(t, http.StatusNotFound, response.StatusCode)
	assert.False(t, response.Successful())
}

func TestSendRequestTransportError(t *testing.T) {
	client := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		},
	}

	req, err := http.NewRequest(http.MethodGet, "http://localhost/", http.NoBody)
	helpers.FailOnError(t, err)

	_, err = utils.SendRequest(client, req)
	assert.EqualError(t, err, "connection refused")
}

func TestSendRequestMockedClient(t *testing.T) {
	client := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusCreated,
				Body:       io.NopCloser(bytes.NewBufferString("created")),
			}, nil
		},
	}

	req, err := http.NewRequest(http.MethodPost, "http://localhost/", http.NoBody)
	helpers.FailOnError(t, err)

	response, err := utils.SendRequest(client, req)
	helpers.FailOnError(t, err)
	assert.Equal(t, utils.Response{StatusCode: http.StatusCreated, Body: []byte("created")}, response)
}

func TestNewHTTPClientTimeout(t *testing.T) {
	assert.Equal(t, 3*time.Second, utils.NewHTTPClient(conf.HTTPConfiguration{Timeout: 3 * time.Second}).Timeout)
	assert.Equal(t, conf.DefaultHTTPTimeout, utils.NewHTTPClient(conf.HTTPConfiguration{}).Timeout)
}
