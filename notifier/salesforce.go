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

package notifier

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/rfd-devops/status-feed-notifier/classifier"
	"github.com/rfd-devops/status-feed-notifier/conf"
	"github.com/rfd-devops/status-feed-notifier/dynatrace"
	"github.com/rfd-devops/status-feed-notifier/types"
)

// RunSalesforce checks active Salesforce incidents and publishes event for
// each incident that affects one of configured instances. Failure to
// retrieve incident list or incident detail is fatal.
func (notifier *Notifier) RunSalesforce(ctx context.Context, settings conf.SalesforceSettings) (types.RunSummary, error) {
	run := notifier.NewRunContext(types.ProviderSalesforce)
	run.Summary.InstancesChecked = len(settings.Instances)

	log.Info().Msg(separator)
	log.Info().Msg("Retrieving Salesforce custom device")
	ids, err := notifier.Devices.ResolveCustomDevice(ctx, dynatrace.SalesforceDevice(), dynatrace.SalesforceDeviceSearch)
	if err != nil {
		EntityResolutionErrors.Inc()
		log.Err(err).Msg(operationFailedMessage)
		return run.Summary, err
	}
	run.resolved(ids)

	log.Info().Msg(separator)
	log.Info().Strs("instances", settings.Instances).Msg("Checking active Salesforce incidents")

	run.Summary.FeedsChecked++
	FeedsChecked.Inc()
	incidents, err := notifier.Incidents.ActiveIncidents(ctx)
	if err != nil {
		run.Summary.FeedErrors++
		FeedErrors.Inc()
		log.Err(err).Msg(operationFailedMessage)
		return run.Summary, err
	}
	if len(incidents) == 0 {
		log.Info().Msg("No active incidents")
		return run.Summary, nil
	}

	for _, incident := range incidents {
		if err := run.checkIncident(ctx, notifier.Incidents, incident, settings.Instances); err != nil {
			return run.Summary, err
		}
	}

	return run.Summary, nil
}

func (run *RunContext) checkIncident(ctx context.Context, source IncidentSource, incident types.Incident, instances []string) error {
	if classifier.ClassifySalesforce(incident, instances) != types.Alert {
		run.Summary.Normal++
		log.Debug().Str("incident", string(incident.ID)).Msg("Incident does not affect any configured instance")
		return nil
	}

	run.Summary.Abnormal++
	AlertsDetected.Inc()
	log.Warn().
		Str("incident", string(incident.ID)).
		Strs("instances", classifier.MatchingInstances(incident, instances)).
		Msg("Incident affects configured instance")

	detail, err := source.IncidentDetail(ctx, incident.ID)
	if err != nil {
		run.Summary.FeedErrors++
		FeedErrors.Inc()
		log.Err(err).Str("incident", string(incident.ID)).Msg(operationFailedMessage)
		return err
	}
	run.Summary.ImpactCount += len(detail.Impacts)

	run.Publish(ctx, BuildSalesforceEvent(detail, run.EntityIDs))
	return nil
}
