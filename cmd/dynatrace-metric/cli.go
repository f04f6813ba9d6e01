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

package main

// This source file contains definition of command line options

import (
	"flag"
	"io"

	"github.com/rfd-devops/status-feed-notifier/dynatrace"
)

// Exit codes
const (
	// ExitStatusOK means that the tool finished with success
	ExitStatusOK = iota
	// ExitStatusError is returned when metric can not be sent
	ExitStatusError
)

const versionMessage = "Dynatrace metric utility version 1.0"

// cliFlags contains all command line options
type cliFlags struct {
	Name        string
	Value       string
	URL         string
	ShowVersion bool
}

// parseCliFlags defines and parses all command line options
func parseCliFlags(args []string, output io.Writer) (cliFlags, error) {
	var flags cliFlags

	flagSet := flag.NewFlagSet("dynatrace-metric", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.StringVar(&flags.Name, "name", "", "metric name")
	flagSet.StringVar(&flags.Value, "value", "", "metric value")
	flagSet.StringVar(&flags.URL, "url", dynatrace.DefaultMetricIngestURL, "metric ingestion endpoint")
	flagSet.BoolVar(&flags.ShowVersion, "show-version", false, "show version and exit")

	err := flagSet.Parse(args)
	return flags, err
}
