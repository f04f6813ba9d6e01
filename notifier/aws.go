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
	"io"

	"github.com/rs/zerolog/log"

	"github.com/rfd-devops/status-feed-notifier/classifier"
	"github.com/rfd-devops/status-feed-notifier/conf"
	"github.com/rfd-devops/status-feed-notifier/feed"
	"github.com/rfd-devops/status-feed-notifier/types"
)

// RunAWS checks all AWS service feeds listed in manifest. Feeds for other
// regions than the configured one are skipped. Problem with one feed does
// not stop the run.
func (notifier *Notifier) RunAWS(ctx context.Context, settings conf.AWSSettings, manifest io.Reader) (types.RunSummary, error) {
	run := notifier.NewRunContext(types.ProviderAWS)

	log.Info().Msg(separator)
	log.Info().Msg("Retrieving tagged applications")
	ids, err := notifier.Applications.ResolveTaggedApplications(ctx, settings.Platform.EntityApplicationFeedURL)
	if err != nil {
		EntityResolutionErrors.Inc()
		log.Err(err).Msg(operationFailedMessage)
		return run.Summary, err
	}
	run.resolved(ids)

	lines, err := feed.ReadManifest(manifest)
	if err != nil {
		log.Err(err).Msg(operationFailedMessage)
		return run.Summary, err
	}

	log.Info().Msg(separator)
	log.Info().Str("region", settings.Region).Msg("Checking AWS service feeds")
	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return run.Summary, err
		}
		run.checkAWSFeed(ctx, notifier.Feeds, line, settings.Region)
	}

	return run.Summary, nil
}

func (run *RunContext) checkAWSFeed(ctx context.Context, feeds SyndicationFetcher, line feed.ManifestLine, region string) {
	if line.Group {
		run.Summary.GroupsChecked++
		log.Debug().Str("group", line.Text).Msg("Processing group")
		return
	}

	if !line.InRegion(region) {
		run.Summary.FeedsSkipped++
		log.Debug().Str(urlAttribute, line.Text).Msg("Skipping feed for another region")
		return
	}

	run.Summary.FeedsChecked++
	FeedsChecked.Inc()

	parsed, err := feeds.FetchSyndication(ctx, line.Text)
	if err != nil {
		run.Summary.FeedErrors++
		FeedErrors.Inc()
		log.Error().Err(err).Int("line", line.Number).Str(urlAttribute, line.Text).Msg("Feed skipped")
		return
	}

	var entries []types.FeedEntry
	if entry, ok := parsed.Next(); ok {
		entries = append(entries, entry)
	}

	classification := classifier.ClassifyAWS(entries)
	service := AWSServiceName(parsed.Subtitle)
	log.Debug().
		Str("service", service).
		Str("classification", classification.String()).
		Msg("Service status")

	switch classification {
	case types.NoStatus:
		run.Summary.NoStatus++
	case types.Normal:
		run.Summary.Normal++
	default:
		run.Summary.Abnormal++
		AlertsDetected.Inc()
		log.Warn().Str("service", service).Str(statusAttribute, entries[0].Title).Msg("Service alert")
		run.Publish(ctx, BuildAWSEvent(parsed.Subtitle, entries[0], run.EntityIDs))
	}
}
