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

// Package classifier contains rules that decide whether status feed entry
// or incident represents normal operation or alert. All functions are pure:
// the same input always leads to the same classification.
package classifier

// Generated documentation is available at:
// https://pkg.go.dev/github.com/rfd-devops/status-feed-notifier/classifier

import (
	"strings"

	"github.com/RedHatInsights/insights-operator-utils/collections"

	"github.com/rfd-devops/status-feed-notifier/types"
)

// Keywords used by classification rules. Matching is case-insensitive.
const (
	normalKeyword        = "normal"
	informationalKeyword = "informational"
	resolvedKeyword      = "resolved"
	insufficientKeyword  = "insufficient"
	degradationKeyword   = "degradation"
	disruptionKeyword    = "disruption"
	resolveKeyword       = "resolve"
)

func contains(text, keyword string) bool {
	return strings.Contains(strings.ToLower(text), keyword)
}

// ClassifyAWS classifies AWS service feed. Only the most recent entry
// (the first one) is taken into account. Feed without any entry has no
// status.
func ClassifyAWS(entries []types.FeedEntry) types.Classification {
	if len(entries) == 0 {
		return types.NoStatus
	}
	return ClassifyAWSEntry(entries[0])
}

// ClassifyAWSEntry classifies one AWS feed entry by its title. Everything
// that is not explicitly normal leads to alert.
func ClassifyAWSEntry(entry types.FeedEntry) types.Classification {
	title := entry.Title
	if contains(title, normalKeyword) {
		return types.Normal
	}
	if contains(title, informationalKeyword) &&
		(contains(title, resolvedKeyword) || contains(title, insufficientKeyword)) {
		return types.Normal
	}
	return types.Alert
}

// ClassifyOkta classifies one Okta feed entry by its title
func ClassifyOkta(entry types.FeedEntry) types.Classification {
	title := entry.Title
	if !contains(title, degradationKeyword) && !contains(title, disruptionKeyword) {
		return types.Other
	}
	if contains(title, resolveKeyword) {
		return types.Resolved
	}
	return types.Alert
}

// ClassifySalesforce classifies active incident. Incident that affects at
// least one instance from allow list is an alert, others are not relevant
// for the customer.
func ClassifySalesforce(incident types.Incident, allowList []string) types.Classification {
	normalized := make([]string, 0, len(allowList))
	for _, instance := range allowList {
		normalized = append(normalized, strings.ToUpper(strings.TrimSpace(instance)))
	}

	for _, instance := range incident.InstanceKeys {
		if collections.StringInSlice(strings.ToUpper(instance), normalized) {
			return types.Alert
		}
	}
	return types.Normal
}

// MatchingInstances returns instance keys of given incident that are in
// allow list
func MatchingInstances(incident types.Incident, allowList []string) []string {
	matching := []string{}
	for _, instance := range incident.InstanceKeys {
		for _, allowed := range allowList {
			if strings.EqualFold(instance, strings.TrimSpace(allowed)) {
				matching = append(matching, instance)
				break
			}
		}
	}
	return matching
}
