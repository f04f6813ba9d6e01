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
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/rfd-devops/status-feed-notifier/conf"
	"github.com/rfd-devops/status-feed-notifier/dynatrace"
	"github.com/rfd-devops/status-feed-notifier/feed"
	"github.com/rfd-devops/status-feed-notifier/producer"
	"github.com/rfd-devops/status-feed-notifier/types"
	"github.com/rfd-devops/status-feed-notifier/utils"
)

// DefaultUserAgent is sent when no user agent is configured
const DefaultUserAgent = "status-feed-notifier"

// New constructs notifier that talks to real feeds and to monitoring
// platform
func New(httpClient utils.HTTPClient, platform conf.PlatformSettings, userAgent string, mirror producer.Producer) *Notifier {
	client := dynatrace.NewClient(httpClient, platform, userAgent)
	return &Notifier{
		Applications: client,
		Devices:      client,
		Feeds:        feed.NewFetcher(httpClient, userAgent),
		Publisher:    client,
		Mirror:       mirror,
	}
}

// Run function is entry point to all status feed tools. Exit status is
// returned.
func Run(config conf.ConfigStruct, cliFlags types.CliFlags, provider types.Provider) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str(providerAttribute, string(provider)).Msg("Status feed check started")
	log.Info().Msg(separator)

	registerMetrics(conf.GetMetricsConfiguration(&config))

	settings, err := conf.LoadSettings(cliFlags.IniFile, cliFlags.SectionName())
	if err != nil {
		log.Err(err).Str("file", cliFlags.IniFile).Msg("Load settings")
		return ExitStatusError
	}

	log.Info().Msg("Preparing Kafka producer")
	mirror, err := producer.New(&config)
	if err != nil {
		ProducerSetupErrors.Inc()
		log.Err(err).Msg(operationFailedMessage)
		return ExitStatusError
	}

	summary, err := runProvider(ctx, &config, settings, provider, mirror)
	if err != nil {
		log.Err(err).Str(providerAttribute, string(provider)).Msg("Status feed check failed")
	}

	log.Info().Msg(separator)
	logSummary(summary)
	log.Info().Msg(separator)

	closeProducer(mirror)

	if pushErr := pushMetrics(conf.GetMetricsConfiguration(&config)); pushErr != nil {
		log.Err(pushErr).Msg(metricsPushFailedMessage)
	}

	if err != nil {
		return ExitStatusError
	}
	log.Info().Msg("Status feed check finished")
	return ExitStatusOK
}

func runProvider(ctx context.Context, config *conf.ConfigStruct, settings *conf.Settings,
	provider types.Provider, mirror producer.Producer) (types.RunSummary, error) {
	httpConfig := conf.GetHTTPConfiguration(config)
	httpClient := utils.NewHTTPClient(httpConfig)
	userAgent := httpConfig.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	empty := types.RunSummary{Provider: provider}

	switch provider {
	case types.ProviderAWS:
		awsSettings, err := settings.AWS()
		if err != nil {
			return empty, err
		}
		manifest, err := os.Open(awsSettings.ManifestPath)
		if err != nil {
			return empty, err
		}
		defer func() {
			if err := manifest.Close(); err != nil {
				log.Err(err).Msg("Unable to close manifest")
			}
		}()
		return New(httpClient, awsSettings.Platform, userAgent, mirror).RunAWS(ctx, awsSettings, manifest)

	case types.ProviderOkta:
		oktaSettings, err := settings.Okta()
		if err != nil {
			return empty, err
		}
		return New(httpClient, oktaSettings.Platform, userAgent, mirror).RunOkta(ctx, oktaSettings)

	case types.ProviderSalesforce:
		sfSettings, err := settings.Salesforce()
		if err != nil {
			return empty, err
		}
		notifier := New(httpClient, sfSettings.Platform, userAgent, mirror)
		notifier.Incidents = feed.NewSalesforceClient(feed.NewFetcher(httpClient, userAgent), sfSettings)
		return notifier.RunSalesforce(ctx, sfSettings)
	}

	return empty, fmt.Errorf("unknown provider %q", provider)
}

func closeProducer(mirror producer.Producer) {
	if err := mirror.Close(); err != nil {
		log.Err(err).Msg(operationFailedMessage)
	}
}

// logSummary logs counters collected during the run
func logSummary(summary types.RunSummary) {
	event := log.Info().
		Str(providerAttribute, string(summary.Provider)).
		Int("events sent", summary.EventsSent).
		Int("events failed", summary.EventsFailed)

	switch summary.Provider {
	case types.ProviderAWS:
		event.
			Int("services checked", summary.GroupsChecked).
			Int("services by region checked", summary.FeedsChecked).
			Int("skipped feeds", summary.FeedsSkipped).
			Int("feed errors", summary.FeedErrors).
			Int("no status", summary.NoStatus).
			Int("normal", summary.Normal).
			Int("abnormal", summary.Abnormal)
	case types.ProviderOkta:
		event.
			Int("entries checked", summary.EntriesChecked).
			Int("feed errors", summary.FeedErrors).
			Int("open issues", summary.Abnormal).
			Int("resolved issues", summary.Resolved).
			Int("other entries", summary.Other)
		if !summary.OldestEntry.IsZero() {
			event.Time("going back as far as", summary.OldestEntry)
		}
	case types.ProviderSalesforce:
		event.
			Int("instances checked", summary.InstancesChecked).
			Int("impacting incidents", summary.Abnormal).
			Int("not impacting incidents", summary.Normal).
			Int("impact count", summary.ImpactCount)
	}

	event.Msg("Summary")
}
