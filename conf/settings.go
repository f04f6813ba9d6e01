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

package conf

// This source file contains functions to read settings specific for given
// customer and environment. Such settings are stored in INI file, in section
// named <customer>_<environment>. Settings that are the same for all
// customers are stored in sections named by provider (OKTA, SALESFORCE).
//
// An example of such file:
//
// [RFD_PRD]
// api_token = dt0c01.XXXX
// tenant_url = https://abc12345.live.dynatrace.com
// entity_application_feed_url = https://abc12345.live.dynatrace.com/api/v1/entity/applications?tag=AWS_STATUS
// event_feed_url = https://abc12345.live.dynatrace.com/api/v1/events
// aws_rss_feeds = /etc/status-feed/aws_feeds.txt
// aws_region = us-east-1
// sf_instances = NA1,NA45,CS12
//
// [OKTA]
// rss_feed = http://feeds.feedburner.com/OktaTrustRSS
//
// [SALESFORCE]
// active_incident_feed = https://api.status.salesforce.com/v1/incidents/active
// incident_detail_feed = https://api.status.salesforce.com/v1/incidents/_INCIDENT_NUMBER_

import (
	"strings"

	httputils "github.com/RedHatInsights/insights-operator-utils/http"
	"gopkg.in/ini.v1"

	"github.com/rfd-devops/status-feed-notifier/types"
)

// Names of settings keys
const (
	APITokenKey                 = "api_token"
	EntityApplicationFeedURLKey = "entity_application_feed_url"
	EventFeedURLKey             = "event_feed_url"
	TenantURLKey                = "tenant_url"
	AWSRSSFeedsKey              = "aws_rss_feeds"
	AWSRegionKey                = "aws_region"
	SFInstancesKey              = "sf_instances"

	OktaSection    = "OKTA"
	OktaRSSFeedKey = "rss_feed"

	SalesforceSection               = "SALESFORCE"
	SalesforceActiveIncidentFeedKey = "active_incident_feed"
	SalesforceIncidentDetailFeedKey = "incident_detail_feed"

	// IncidentNumberPlaceholder is replaced by incident ID in incident
	// detail feed URL
	IncidentNumberPlaceholder = "_INCIDENT_NUMBER_"

	salesforceEventsEndpoint = "/api/v1/events"
)

// Settings provides access to customer/environment scoped settings
type Settings struct {
	file    *ini.File
	section string
}

// PlatformSettings contains settings needed to talk with monitoring
// platform
type PlatformSettings struct {
	APIToken                 string
	TenantURL                string
	EntityApplicationFeedURL string
	EventFeedURL             string
}

// AWSSettings contains all settings needed by AWS status tool
type AWSSettings struct {
	Platform     PlatformSettings
	ManifestPath string
	Region       string
}

// OktaSettings contains all settings needed by Okta status tool
type OktaSettings struct {
	Platform PlatformSettings
	RSSFeed  string
}

// SalesforceSettings contains all settings needed by Salesforce status tool
type SalesforceSettings struct {
	Platform           PlatformSettings
	Instances          []string
	ActiveIncidentFeed string
	IncidentDetailFeed string
}

// LoadSettings reads INI file and checks that section for given
// customer and environment exists
func LoadSettings(path, section string) (*Settings, error) {
	// ';' and '#' are legal inside entity selectors and API tokens
	file, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, path)
	if err != nil {
		return nil, err
	}

	if !file.HasSection(section) {
		return nil, &types.ConfigMissingError{Section: section}
	}

	return &Settings{
		file:    file,
		section: section,
	}, nil
}

// Section returns name of customer/environment section
func (settings *Settings) Section() string {
	return settings.section
}

// value returns non-empty value stored under given key
func (settings *Settings) value(section, key string) (string, error) {
	if !settings.file.HasSection(section) {
		return "", &types.ConfigMissingError{Section: section}
	}
	value := strings.TrimSpace(settings.file.Section(section).Key(key).String())
	if value == "" {
		return "", &types.ConfigMissingError{Section: section, Key: key}
	}
	return value, nil
}

// optionalValue returns value stored under given key or empty string
func (settings *Settings) optionalValue(section, key string) string {
	if !settings.file.HasSection(section) {
		return ""
	}
	return strings.TrimSpace(settings.file.Section(section).Key(key).String())
}

// values reads all required keys from customer/environment section, the
// first missing key is reported
func (settings *Settings) values(keys ...string) (map[string]string, error) {
	values := make(map[string]string, len(keys))
	for _, key := range keys {
		value, err := settings.value(settings.section, key)
		if err != nil {
			return nil, err
		}
		values[key] = value
	}
	return values, nil
}

// AWS returns settings for AWS status tool
func (settings *Settings) AWS() (AWSSettings, error) {
	values, err := settings.values(APITokenKey, EntityApplicationFeedURLKey,
		EventFeedURLKey, AWSRSSFeedsKey, AWSRegionKey)
	if err != nil {
		return AWSSettings{}, err
	}

	return AWSSettings{
		Platform: PlatformSettings{
			APIToken:                 values[APITokenKey],
			TenantURL:                settings.optionalValue(settings.section, TenantURLKey),
			EntityApplicationFeedURL: values[EntityApplicationFeedURLKey],
			EventFeedURL:             values[EventFeedURLKey],
		},
		ManifestPath: values[AWSRSSFeedsKey],
		Region:       values[AWSRegionKey],
	}, nil
}

// Okta returns settings for Okta status tool
func (settings *Settings) Okta() (OktaSettings, error) {
	values, err := settings.values(APITokenKey, EntityApplicationFeedURLKey, EventFeedURLKey)
	if err != nil {
		return OktaSettings{}, err
	}

	feed, err := settings.value(OktaSection, OktaRSSFeedKey)
	if err != nil {
		return OktaSettings{}, err
	}

	return OktaSettings{
		Platform: PlatformSettings{
			APIToken:                 values[APITokenKey],
			TenantURL:                settings.optionalValue(settings.section, TenantURLKey),
			EntityApplicationFeedURL: values[EntityApplicationFeedURLKey],
			EventFeedURL:             values[EventFeedURLKey],
		},
		RSSFeed: feed,
	}, nil
}

// Salesforce returns settings for Salesforce status tool. Event feed URL is
// optional here, events endpoint of the tenant is used when it is not set.
func (settings *Settings) Salesforce() (SalesforceSettings, error) {
	values, err := settings.values(APITokenKey, TenantURLKey, SFInstancesKey)
	if err != nil {
		return SalesforceSettings{}, err
	}

	instances := SplitList(values[SFInstancesKey])
	if len(instances) == 0 {
		return SalesforceSettings{}, &types.ConfigMissingError{Section: settings.section, Key: SFInstancesKey}
	}

	activeFeed, err := settings.value(SalesforceSection, SalesforceActiveIncidentFeedKey)
	if err != nil {
		return SalesforceSettings{}, err
	}
	detailFeed, err := settings.value(SalesforceSection, SalesforceIncidentDetailFeedKey)
	if err != nil {
		return SalesforceSettings{}, err
	}

	tenantURL := strings.TrimSuffix(httputils.SetHTTPPrefix(values[TenantURLKey]), "/")
	eventFeedURL := settings.optionalValue(settings.section, EventFeedURLKey)
	if eventFeedURL == "" {
		eventFeedURL = tenantURL + salesforceEventsEndpoint
	}

	return SalesforceSettings{
		Platform: PlatformSettings{
			APIToken:     values[APITokenKey],
			TenantURL:    tenantURL,
			EventFeedURL: eventFeedURL,
		},
		Instances:          instances,
		ActiveIncidentFeed: activeFeed,
		IncidentDetailFeed: detailFeed,
	}, nil
}

// SplitList splits comma separated list, items are trimmed and empty items
// are skipped
func SplitList(list string) []string {
	var items []string
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
