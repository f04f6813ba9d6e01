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
	"github.com/rfd-devops/status-feed-notifier/types"
)

// OktaEntriesLimit is the maximum number of feed entries processed. Okta
// keeps around two years of history in the feed.
const OktaEntriesLimit = 5

// RunOkta checks the most recent entries of Okta trust feed. Unavailable
// feed is fatal.
func (notifier *Notifier) RunOkta(ctx context.Context, settings conf.OktaSettings) (types.RunSummary, error) {
	run := notifier.NewRunContext(types.ProviderOkta)

	log.Info().Msg(separator)
	log.Info().Msg("Retrieving tagged applications")
	ids, err := notifier.Applications.ResolveTaggedApplications(ctx, settings.Platform.EntityApplicationFeedURL)
	if err != nil {
		EntityResolutionErrors.Inc()
		log.Err(err).Msg(operationFailedMessage)
		return run.Summary, err
	}
	run.resolved(ids)

	log.Info().Msg(separator)
	log.Info().Str(urlAttribute, settings.RSSFeed).Msg("Checking Okta feed")

	run.Summary.FeedsChecked++
	FeedsChecked.Inc()
	parsed, err := notifier.Feeds.FetchSyndication(ctx, settings.RSSFeed)
	if err != nil {
		run.Summary.FeedErrors++
		FeedErrors.Inc()
		log.Err(err).Str(urlAttribute, settings.RSSFeed).Msg(operationFailedMessage)
		return run.Summary, err
	}

	for run.Summary.EntriesChecked < OktaEntriesLimit {
		entry, ok := parsed.Next()
		if !ok {
			break
		}
		run.checkOktaEntry(ctx, settings.RSSFeed, entry)
	}

	return run.Summary, nil
}

func (run *RunContext) checkOktaEntry(ctx context.Context, feedURL string, entry types.FeedEntry) {
	run.Summary.EntriesChecked++
	if !entry.UpdatedAt.IsZero() &&
		(run.Summary.OldestEntry.IsZero() || entry.UpdatedAt.Before(run.Summary.OldestEntry)) {
		run.Summary.OldestEntry = entry.UpdatedAt
	}

	classification := classifier.ClassifyOkta(entry)
	log.Debug().
		Str(titleAttribute, entry.Title).
		Str("link", entry.Link).
		Time("updated", entry.UpdatedAt).
		Str("classification", classification.String()).
		Msg("Feed entry")

	switch classification {
	case types.Alert:
		run.Summary.Abnormal++
		AlertsDetected.Inc()
		log.Warn().Str(titleAttribute, entry.Title).Msg("Open issue")
		run.Publish(ctx, BuildOktaEvent(feedURL, entry, run.EntityIDs))
	case types.Resolved:
		run.Summary.Resolved++
	default:
		run.Summary.Other++
	}
}
