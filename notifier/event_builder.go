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
	"fmt"
	"strings"

	"github.com/rfd-devops/status-feed-notifier/types"
)

// Fixed parts of event payload
const (
	availabilityEventType = "AVAILABILITY_EVENT"
	eventTimeoutMinutes   = 10

	awsEventSource        = "AWS Status Extension"
	oktaEventSource       = "OKTA Status Extension"
	salesforceEventSource = "Salesforce Status Extension"

	awsServiceStatusSuffix = " Service Status"
	awsDescriptionPrefix   = "This may potentially impact the identified application.\n\n"

	oktaEventTitle = "Okta Status"
	oktaFeedNotice = "This is a message retrieved from the Okta Trust RSS Feed (%s)"

	salesforceStatusPage = "https://status.salesforce.com/"
)

func newEvent(title, description, source string, ids []types.EntityID) types.EventPayload {
	return types.EventPayload{
		Title:          title,
		Description:    description,
		EventType:      availabilityEventType,
		TimeoutMinutes: eventTimeoutMinutes,
		Source:         source,
		AttachRules:    types.AttachRules{EntityIDs: ids},
	}
}

// AWSServiceName returns name of service taken from feed subtitle
func AWSServiceName(subtitle string) string {
	return strings.Replace(subtitle, awsServiceStatusSuffix, "", 1)
}

// BuildAWSEvent builds event for AWS service whose status is not normal
func BuildAWSEvent(subtitle string, entry types.FeedEntry, ids []types.EntityID) types.EventPayload {
	return newEvent(
		AWSServiceName(subtitle),
		awsDescriptionPrefix+entry.Title,
		awsEventSource,
		ids)
}

// BuildOktaEvent builds event for open Okta issue
func BuildOktaEvent(feedURL string, entry types.FeedEntry, ids []types.EntityID) types.EventPayload {
	description := "\n" + entry.Summary + "\n\n" + entry.Link + "\n\n" +
		fmt.Sprintf(oktaFeedNotice, feedURL) + "\n\n"
	return newEvent(oktaEventTitle, description, oktaEventSource, ids)
}

// BuildSalesforceEvent builds event for Salesforce incident that affects
// at least one instance used by customer. Incident detail with at least one
// impact is expected.
func BuildSalesforceEvent(incident types.Incident, ids []types.EntityID) types.EventPayload {
	title := ""
	impacts := make([]string, 0, len(incident.Impacts))
	for i, impact := range incident.Impacts {
		if i == 0 {
			title = impact.Label
		}
		impacts = append(impacts, fmt.Sprintf("(%s): %s", impact.Label, impact.Text))
	}

	var description strings.Builder
	description.WriteString(strings.Join(impacts, "\n\n"))
	description.WriteString("\n\nImpacted Services: ")
	description.WriteString(strings.Join(incident.ServiceKeys, ", "))
	description.WriteString("\nImpacted Instances: ")
	description.WriteString(strings.Join(incident.InstanceKeys, ", "))
	description.WriteString("\n\n")
	description.WriteString(salesforceStatusPage)

	return newEvent(title, description.String(), salesforceEventSource, ids)
}
