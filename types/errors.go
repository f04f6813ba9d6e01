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

package types

import "fmt"

// ConfigMissingError is raised when required settings key is absent
type ConfigMissingError struct {
	Section string
	Key     string
}

func (e *ConfigMissingError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("configuration section [%s] is missing", e.Section)
	}
	return fmt.Sprintf("configuration key %q is missing in section [%s]", e.Key, e.Section)
}

// NoEntitiesFoundError is raised when entity resolution yields nothing, so
// there is nothing events could be attached to
type NoEntitiesFoundError struct {
	URL string
	Err error
}

func (e *NoEntitiesFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no entities returned from %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("no entities returned from %s", e.URL)
}

func (e *NoEntitiesFoundError) Unwrap() error {
	return e.Err
}

// EntityCreateFailedError is raised when custom device can not be created
type EntityCreateFailedError struct {
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *EntityCreateFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unable to create entity at %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("unable to create entity at %s: unexpected status code %d", e.URL, e.StatusCode)
}

func (e *EntityCreateFailedError) Unwrap() error {
	return e.Err
}

// FeedUnavailableError is raised when status feed can not be retrieved.
// StatusCode is zero when no HTTP answer was received at all.
type FeedUnavailableError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FeedUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("feed %s unavailable (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("feed %s unavailable (status %d)", e.URL, e.StatusCode)
}

func (e *FeedUnavailableError) Unwrap() error {
	return e.Err
}

// EventPublishFailedError is raised when event could not be posted
type EventPublishFailedError struct {
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *EventPublishFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unable to publish event to %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("unable to publish event to %s: unexpected status code %d", e.URL, e.StatusCode)
}

func (e *EventPublishFailedError) Unwrap() error {
	return e.Err
}

// DecodeError is raised when a record received from remote side misses a
// mandatory field or can not be decoded at all
type DecodeError struct {
	Record string
	Field  string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unable to decode %s: %v", e.Record, e.Err)
	}
	return fmt.Sprintf("%s: mandatory field %q is missing", e.Record, e.Field)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
