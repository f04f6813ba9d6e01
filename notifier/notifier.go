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

// Package notifier contains pipelines that read third party status feeds,
// classify them and publish availability events for every detected alert.
// Each pipeline is represented by one Run* method of Notifier, its
// collaborators are interfaces.
package notifier

// Generated documentation is available at:
// https://pkg.go.dev/github.com/rfd-devops/status-feed-notifier/notifier

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rfd-devops/status-feed-notifier/feed"
	"github.com/rfd-devops/status-feed-notifier/producer"
	"github.com/rfd-devops/status-feed-notifier/types"
)

// Exit codes
const (
	// ExitStatusOK means that the tool finished with success
	ExitStatusOK = iota
	// ExitStatusError is returned in case of any fatal error
	ExitStatusError
)

// Messages
const (
	separator              = "------------------------------------------------------------"
	operationFailedMessage = "Operation failed"
	runIDAttribute         = "run ID"
	providerAttribute      = "provider"
	urlAttribute           = "url"
	titleAttribute         = "title"
	statusAttribute        = "status"
	entitiesAttribute      = "entities"
)

// ApplicationResolver finds applications that events are attached to
type ApplicationResolver interface {
	ResolveTaggedApplications(ctx context.Context, feedURL string) ([]types.EntityID, error)
}

// DeviceResolver finds (or registers) custom device that events are
// attached to
type DeviceResolver interface {
	ResolveCustomDevice(ctx context.Context, device types.CustomDevice, search string) ([]types.EntityID, error)
}

// SyndicationFetcher retrieves RSS or Atom feed
type SyndicationFetcher interface {
	FetchSyndication(ctx context.Context, url string) (*feed.SyndicationFeed, error)
}

// IncidentSource provides active incidents and their details
type IncidentSource interface {
	ActiveIncidents(ctx context.Context) ([]types.Incident, error)
	IncidentDetail(ctx context.Context, id types.IncidentID) (types.Incident, error)
}

// EventPublisher publishes availability events
type EventPublisher interface {
	PublishEvent(ctx context.Context, event types.EventPayload) (types.PublishResult, error)
}

// Notifier holds all collaborators used by pipelines
type Notifier struct {
	Applications ApplicationResolver
	Devices      DeviceResolver
	Feeds        SyndicationFetcher
	Incidents    IncidentSource
	Publisher    EventPublisher
	Mirror       producer.Producer
}

// RunContext holds state of one run: its identifier, the set of entities
// events are attached to, and collected counters. It is passed explicitly
// through the pipeline.
type RunContext struct {
	RunID     string
	Provider  types.Provider
	EntityIDs []types.EntityID
	Summary   types.RunSummary

	publisher EventPublisher
	mirror    producer.Producer
}

// NewRunContext constructs context for new run with unique identifier
func (notifier *Notifier) NewRunContext(provider types.Provider) *RunContext {
	runID := uuid.NewString()
	log.Info().
		Str(runIDAttribute, runID).
		Str(providerAttribute, string(provider)).
		Msg("Run started")

	return &RunContext{
		RunID:     runID,
		Provider:  provider,
		Summary:   types.RunSummary{Provider: provider},
		publisher: notifier.Publisher,
		mirror:    notifier.Mirror,
	}
}

// Publish sends event to monitoring platform. Failures are logged and
// counted, but never stop the run.
func (run *RunContext) Publish(ctx context.Context, event types.EventPayload) {
	result, err := run.publisher.PublishEvent(ctx, event)
	if err != nil {
		run.Summary.EventsFailed++
		EventsFailed.Inc()
		log.Error().
			Err(err).
			Str(runIDAttribute, run.RunID).
			Str(titleAttribute, event.Title).
			Int(statusAttribute, result.StatusCode).
			Msg("Event not published")
	} else {
		run.Summary.EventsSent++
		EventsSent.Inc()
	}

	run.mirrorEvent(event, result)
}

// mirrorEvent sends copy of event to Kafka, if mirror is configured
func (run *RunContext) mirrorEvent(event types.EventPayload, result types.PublishResult) {
	if run.mirror == nil {
		return
	}

	_, _, err := run.mirror.ProduceMessage(types.MirrorMessage{
		RunID:       run.RunID,
		Provider:    run.Provider,
		PublishedAt: time.Now().UTC(),
		StatusCode:  result.StatusCode,
		Event:       event,
	})
	if err != nil {
		log.Error().Err(err).Str(runIDAttribute, run.RunID).Msg("Event not mirrored")
		MirrorErrors.Inc()
	}
}

// resolved logs the set of entities events will be attached to
func (run *RunContext) resolved(ids []types.EntityID) {
	run.EntityIDs = ids
	log.Info().
		Str(runIDAttribute, run.RunID).
		Int(entitiesAttribute, len(ids)).
		Msg("Entities resolved")
}
