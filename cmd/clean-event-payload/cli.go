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
	"errors"
	"flag"
	"io"

	"github.com/rfd-devops/status-feed-notifier/payload"
)

// Exit codes
const (
	// ExitStatusOK means that the tool finished with success
	ExitStatusOK = iota
	// ExitStatusError is returned when payload can not be cleaned
	ExitStatusError
)

const versionMessage = "Event payload cleanup version 1.0"

// cliFlags contains all command line options
type cliFlags struct {
	JSONFile    string
	Action      string
	ShowVersion bool
}

// parseCliFlags defines and parses all command line options
func parseCliFlags(args []string, output io.Writer) (cliFlags, error) {
	var flags cliFlags

	flagSet := flag.NewFlagSet("clean-event-payload", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.StringVar(&flags.JSONFile, "json", "", "JSON file with event payload to be cleaned")
	flagSet.StringVar(&flags.Action, "action", "", "ENABLE or DISABLE")
	flagSet.BoolVar(&flags.ShowVersion, "show-version", false, "show version and exit")

	err := flagSet.Parse(args)
	return flags, err
}

// checkArgs checks that payload file and valid action are provided
func checkArgs(flags cliFlags) (payload.Action, error) {
	if flags.JSONFile == "" {
		return "", errors.New("missing command line argument: json")
	}
	return payload.ParseAction(flags.Action)
}
