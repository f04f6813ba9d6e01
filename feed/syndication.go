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

// Package feed contains fetchers of third party status feeds. Syndication
// feeds (RSS, Atom) are used by AWS and Okta, Salesforce publishes active
// incidents through REST API. This package also contains parser of the
// manifest file with list of AWS status feeds.
package feed

// Generated documentation is available at:
// https://pkg.go.dev/github.com/rfd-devops/status-feed-notifier/feed

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog/log"

	"github.com/rfd-devops/status-feed-notifier/types"
	"github.com/rfd-devops/status-feed-notifier/utils"
)

const syndicationAccept = "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8"

// Fetcher retrieves status feeds using provided HTTP client
type Fetcher struct {
	client    utils.HTTPClient
	userAgent string
}

// NewFetcher constructs new feed fetcher
func NewFetcher(client utils.HTTPClient, userAgent string) *Fetcher {
	return &Fetcher{
		client:    client,
		userAgent: userAgent,
	}
}

// SyndicationFeed represents parsed RSS or Atom feed. Entries are provided
// one by one by Next method, in the order used by feed publisher (usually
// the most recent first). The sequence can not be restarted.
type SyndicationFeed struct {
	Title    string
	Subtitle string
	items    []*gofeed.Item
	position int
}

// Len returns total number of entries in the feed
func (feed *SyndicationFeed) Len() int {
	return len(feed.items)
}

// Next returns next entry from the feed. False is returned when there are
// no more entries.
func (feed *SyndicationFeed) Next() (types.FeedEntry, bool) {
	if feed.position >= len(feed.items) {
		return types.FeedEntry{}, false
	}
	item := feed.items[feed.position]
	feed.position++
	return feedEntryFromItem(item), true
}

func feedEntryFromItem(item *gofeed.Item) types.FeedEntry {
	entry := types.FeedEntry{
		Title:   strings.TrimSpace(item.Title),
		Summary: strings.TrimSpace(item.Description),
		Link:    strings.TrimSpace(item.Link),
	}
	if entry.Summary == "" {
		entry.Summary = strings.TrimSpace(item.Content)
	}

	var updated *time.Time
	switch {
	case item.UpdatedParsed != nil:
		updated = item.UpdatedParsed
	case item.PublishedParsed != nil:
		updated = item.PublishedParsed
	}
	if updated != nil {
		entry.UpdatedAt = *updated
	}
	return entry
}

// get performs GET request and converts all problems into
// FeedUnavailableError
func (fetcher *Fetcher) get(ctx context.Context, url, accept string) (utils.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("Error setting up HTTP GET request")
		return utils.Response{}, &types.FeedUnavailableError{URL: url, Err: err}
	}
	req.Header.Set(utils.AcceptHeader, accept)
	if fetcher.userAgent != "" {
		req.Header.Set(utils.UserAgentHeader, fetcher.userAgent)
	}

	response, err := utils.SendRequest(fetcher.client, req)
	if err != nil {
		return response, &types.FeedUnavailableError{URL: url, StatusCode: response.StatusCode, Err: err}
	}
	if !response.Successful() {
		log.Error().
			Str("url", url).
			Int("status", response.StatusCode).
			Msg("Unexpected status code returned by feed")
		return response, &types.FeedUnavailableError{URL: url, StatusCode: response.StatusCode}
	}
	return response, nil
}

// FetchSyndication retrieves and parses RSS or Atom feed
func (fetcher *Fetcher) FetchSyndication(ctx context.Context, url string) (*SyndicationFeed, error) {
	response, err := fetcher.get(ctx, url, syndicationAccept)
	if err != nil {
		return nil, err
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(response.Body))
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("Unable to parse syndication feed")
		return nil, &types.FeedUnavailableError{URL: url, StatusCode: response.StatusCode, Err: err}
	}

	log.Debug().
		Str("url", url).
		Str("title", parsed.Title).
		Int("entries", len(parsed.Items)).
		Msg("Syndication feed retrieved")

	return &SyndicationFeed{
		Title:    strings.TrimSpace(parsed.Title),
		Subtitle: strings.TrimSpace(parsed.Description),
		items:    parsed.Items,
	}, nil
}
