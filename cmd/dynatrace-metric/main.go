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

// Entry point to the metric utility.
//
// The utility sends one metric value to local Dynatrace metric ingestion
// endpoint, for example:
//
//	dynatrace-metric --name rfd.batch.duration --value 42
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/rfd-devops/status-feed-notifier/conf"
	"github.com/rfd-devops/status-feed-notifier/dynatrace"
	"github.com/rfd-devops/status-feed-notifier/notifier"
	"github.com/rfd-devops/status-feed-notifier/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, output io.Writer) int {
	flags, err := parseCliFlags(args, output)
	if errors.Is(err, flag.ErrHelp) {
		return ExitStatusOK
	}
	if err != nil {
		return ExitStatusError
	}

	if flags.ShowVersion {
		fmt.Fprintln(output, versionMessage)
		return ExitStatusOK
	}

	config, err := notifier.Configure()
	if err != nil {
		log.Err(err).Msg("Load configuration")
		return ExitStatusError
	}

	client := utils.NewHTTPClient(conf.GetHTTPConfiguration(&config))
	result, err := dynatrace.IngestMetric(context.Background(), client, flags.URL, flags.Name, flags.Value)
	if err != nil {
		log.Err(err).Str("url", flags.URL).Msg("Metric not sent")
		return ExitStatusError
	}

	fmt.Fprintln(output, result.Body)
	return ExitStatusOK
}
