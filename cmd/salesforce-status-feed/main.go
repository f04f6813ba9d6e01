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

// Entry point to the Salesforce status tool.
//
// The tool reads active incidents from Salesforce status API and publishes
// availability event for every incident that affects one of the instances
// used by customer. Events are attached to Salesforce custom device that is
// registered in Dynatrace on the first run.
package main

import (
	"os"

	"github.com/rfd-devops/status-feed-notifier/notifier"
	"github.com/rfd-devops/status-feed-notifier/types"
)

func main() {
	os.Exit(notifier.Execute("salesforce-status-feed", types.ProviderSalesforce, os.Args[1:], os.Stdout))
}
