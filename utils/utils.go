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

// Package utils contains helper functions used to call remote HTTP
// endpoints. The result of each call is a typed Response that carries
// status code and body, so callers can decide about fatal/non-fatal
// handling by themselves.
package utils

import (
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rfd-devops/status-feed-notifier/conf"
)

// Common HTTP header names and values
const (
	AcceptHeader        = "Accept"
	ContentTypeHeader   = "Content-Type"
	UserAgentHeader     = "User-Agent"
	AuthorizationHeader = "Authorization"
	JSONContentType     = "application/json"
	TextContentType     = "text/plain"
)

// HTTPClient interface for HTTP operations (allows mocking in tests).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Response represents status code and body read from HTTP response
type Response struct {
	StatusCode int
	Body       []byte
}

// Successful returns true for 2xx status codes
func (response Response) Successful() bool {
	return response.StatusCode/100 == 2
}

// NewHTTPClient constructs HTTP client with timeout taken from
// configuration
func NewHTTPClient(config conf.HTTPConfiguration) *http.Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = conf.DefaultHTTPTimeout
	}
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}

// SendRequest sends the given request, reads the body and handles related
// errors. Non-2xx status codes are not considered to be an error here.
func SendRequest(client HTTPClient, req *http.Request) (Response, error) {
	response, err := client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("url", req.URL.String()).Msg("Got error while making the HTTP request")
		return Response{}, err
	}

	// Read body from response
	body, err := io.ReadAll(response.Body)
	if err != nil {
		log.Error().Err(err).Str("url", req.URL.String()).Msg("Got error while reading the response's body")
		_ = response.Body.Close()
		return Response{StatusCode: response.StatusCode}, err
	}

	err = response.Body.Close()
	if err != nil {
		log.Error().Err(err).Msg("Got error while closing the response body")
		return Response{StatusCode: response.StatusCode, Body: body}, err
	}

	log.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", response.StatusCode).
		Msg("HTTP request done")

	return Response{StatusCode: response.StatusCode, Body: body}, nil
}
