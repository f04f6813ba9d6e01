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

// Generated documentation is available at:
// https://pkg.go.dev/github.com/rfd-devops/status-feed-notifier/types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// EntityID is an opaque handle of a monitoring platform entity (application
// or custom device) that events are attached to.
type EntityID string

// IncidentID represents identifier of incident reported by Salesforce. The
// API returns it as a number, but string form is accepted too.
type IncidentID string

// UnmarshalJSON accepts both JSON number and JSON string
func (id *IncidentID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = IncidentID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("incident id: %w", err)
	}
	*id = IncidentID(n.String())
	return nil
}

// Provider identifies the third party whose status feed is processed
type Provider string

// Known providers
const (
	ProviderAWS        Provider = "AWS"
	ProviderOkta       Provider = "OKTA"
	ProviderSalesforce Provider = "SALESFORCE"
)

// Classification is the result of status classification for one feed entry
// or incident.
type Classification int

// Classification values. Resolved and Other are produced by Okta rules
// only.
const (
	Normal Classification = iota
	Alert
	NoStatus
	Resolved
	Other
)

// String function returns string representation of given classification
func (c Classification) String() string {
	switch c {
	case Normal:
		return "normal"
	case Alert:
		return "alert"
	case NoStatus:
		return "no status"
	case Resolved:
		return "resolved"
	case Other:
		return "other"
	}
	return fmt.Sprintf("classification(%d)", int(c))
}

// FeedEntry represents one entry read from status feed
type FeedEntry struct {
	Title     string
	Summary   string
	Link      string
	UpdatedAt time.Time
}

// IncidentImpact is one labelled part of Salesforce incident description
type IncidentImpact struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Incident represents active incident reported by Salesforce
type Incident struct {
	ID           IncidentID       `json:"id"`
	InstanceKeys []string         `json:"instanceKeys"`
	ServiceKeys  []string         `json:"serviceKeys"`
	Impacts      []IncidentImpact `json:"IncidentImpacts"`
}

// Validate checks that fields needed to match an active incident are
// present.
func (incident Incident) Validate() error {
	if incident.ID == "" {
		return &DecodeError{Record: "incident", Field: "id"}
	}
	if incident.InstanceKeys == nil {
		return &DecodeError{Record: "incident " + string(incident.ID), Field: "instanceKeys"}
	}
	return nil
}

// ValidateDetail checks incident detail that is used to build an event
func (incident Incident) ValidateDetail() error {
	if err := incident.Validate(); err != nil {
		return err
	}
	if len(incident.Impacts) == 0 {
		return &DecodeError{Record: "incident " + string(incident.ID), Field: "IncidentImpacts"}
	}
	return nil
}

// Entity is one record returned by the platform entity list endpoints
type Entity struct {
	EntityID    EntityID `json:"entityId"`
	DisplayName string   `json:"displayName"`
}

// Validate checks that the entity carries an identifier
func (entity Entity) Validate() error {
	if entity.EntityID == "" {
		return &DecodeError{Record: "entity", Field: "entityId"}
	}
	return nil
}

// EntityListResponse is the answer of /api/v2/entities endpoint
type EntityListResponse struct {
	TotalCount int      `json:"totalCount"`
	Entities   []Entity `json:"entities"`
}

// CustomDevice is a payload used to register custom device
type CustomDevice struct {
	CustomDeviceID string            `json:"customDeviceId"`
	DisplayName    string            `json:"displayName"`
	Group          string            `json:"group"`
	IPAddresses    []string          `json:"ipAddresses"`
	ListenPorts    []int             `json:"listenPorts"`
	FaviconURL     string            `json:"faviconUrl"`
	ConfigURL      string            `json:"configUrl"`
	Type           string            `json:"type"`
	Properties     map[string]string `json:"properties"`
	DNSNames       []string          `json:"dnsNames"`
}

// CustomDeviceCreated is the answer of custom device registration
type CustomDeviceCreated struct {
	EntityID EntityID `json:"entityId"`
	GroupID  string   `json:"groupId"`
}

// AttachRules selects entities an event is attached to
type AttachRules struct {
	EntityIDs []EntityID `json:"entityIds"`
}

// EventPayload is the body of event ingestion request
type EventPayload struct {
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	EventType      string      `json:"eventType"`
	TimeoutMinutes int         `json:"timeoutMinutes"`
	Source         string      `json:"source"`
	AttachRules    AttachRules `json:"attachRules"`
}

// PublishResult is the immediate answer of event ingestion endpoint
type PublishResult struct {
	StatusCode int
	Body       string
}

// MirrorMessage is a copy of published event sent to the event mirror
// together with the outcome of publication
type MirrorMessage struct {
	RunID       string       `json:"run_id"`
	Provider    Provider     `json:"provider"`
	PublishedAt time.Time    `json:"published_at"`
	StatusCode  int          `json:"status_code"`
	Event       EventPayload `json:"event"`
}

// Published returns true when monitoring platform accepted the event
func (msg MirrorMessage) Published() bool {
	return msg.StatusCode/100 == 2
}

// RunSummary contains counters collected during one run. Counters only
// grow.
type RunSummary struct {
	Provider         Provider
	GroupsChecked    int
	FeedsChecked     int
	FeedsSkipped     int
	FeedErrors       int
	NoStatus         int
	Normal           int
	Abnormal         int
	Resolved         int
	Other            int
	EntriesChecked   int
	OldestEntry      time.Time
	InstancesChecked int
	ImpactCount      int
	EventsSent       int
	EventsFailed     int
}

// CliFlags represents structure holding all command line arguments/flags.
type CliFlags struct {
	Customer          string
	Environment       string
	IniFile           string
	ShowVersion       bool
	ShowAuthors       bool
	ShowConfiguration bool
	Verbose           bool
}

// SectionName returns name of settings section for customer and
// environment given on command line
func (flags CliFlags) SectionName() string {
	return flags.Customer + "_" + flags.Environment
}

// Missing returns names of mandatory flags that were not provided
func (flags CliFlags) Missing() []string {
	var missing []string
	if strings.TrimSpace(flags.Customer) == "" {
		missing = append(missing, "customer")
	}
	if strings.TrimSpace(flags.Environment) == "" {
		missing = append(missing, "environment")
	}
	if strings.TrimSpace(flags.IniFile) == "" {
		missing = append(missing, "iniFile")
	}
	return missing
}
