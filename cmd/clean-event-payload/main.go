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

// Entry point to the event payload cleanup utility.
//
// Custom event configuration exported from Dynatrace contains metadata that
// is refused when the configuration is sent back. The utility removes the
// metadata element and sets the enabled flag, so the custom event can be
// switched on or off during maintenance windows:
//
//	clean-event-payload --json event.json --action DISABLE
//
// The file is rewritten in place.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/rfd-devops/status-feed-notifier/notifier"
	"github.com/rfd-devops/status-feed-notifier/payload"
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

	action, err := checkArgs(flags)
	if err != nil {
		fmt.Fprintln(output, err)
		return ExitStatusError
	}

	if _, err := notifier.Configure(); err != nil {
		log.Err(err).Msg("Load configuration")
		return ExitStatusError
	}

	_, err = payload.CleanFile(flags.JSONFile, action)
	if err != nil {
		log.Err(err).Str("file", flags.JSONFile).Msg("Unable to clean event payload")
		return ExitStatusError
	}
	return ExitStatusOK
}
