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

// Entry point to the AWS status feed tool.
//
// The tool reads list of AWS service status feeds from manifest file, checks
// the most recent entry of each feed for the configured region and publishes
// availability event to Dynatrace for every service that does not operate
// normally. Events are attached to all applications tagged for AWS status
// checks.
//
// Usage:
//
//	aws-status-feed --customer RFD --environment PRD --iniFile settings.ini
package main

// Generated documentation is available at:
// https://pkg.go.dev/github.com/rfd-devops/status-feed-notifier/cmd/aws-status-feed

import (
	"os"

	"github.com/rfd-devops/status-feed-notifier/notifier"
	"github.com/rfd-devops/status-feed-notifier/types"
)

func main() {
	os.Exit(notifier.Execute("aws-status-feed", types.ProviderAWS, os.Args[1:], os.Stdout))
}
