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

// Entry point to the Okta status feed tool.
//
// The tool checks the five most recent entries of Okta trust feed and
// publishes availability event for each open service disruption or
// degradation.
package main

import (
	"os"

	"github.com/rfd-devops/status-feed-notifier/notifier"
	"github.com/rfd-devops/status-feed-notifier/types"
)

func main() {
	os.Exit(notifier.Execute("okta-status-feed", types.ProviderOkta, os.Args[1:], os.Stdout))
}
