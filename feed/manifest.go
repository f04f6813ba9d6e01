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

package feed

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// groupPrefix marks lines with group headers in manifest file
const groupPrefix = "["

// regionToken matches AWS region names like us-east-1, eu-central-2 or
// us-gov-west-1
var regionToken = regexp.MustCompile(
	`\b(?:us|eu|ap|sa|ca|me|af|il|mx|cn)(?:-gov|-iso[a-z]?)?-(?:north|south|east|west|central|northeast|northwest|southeast|southwest)-\d+\b`)

// ManifestLine represents one non-empty line read from the manifest file
// with AWS status feeds
type ManifestLine struct {
	Number int
	Text   string
	Group  bool
}

// Region returns AWS region token contained in the line. Empty string is
// returned for global services.
func (line ManifestLine) Region() string {
	return regionToken.FindString(line.Text)
}

// InRegion decides whether the feed should be fetched for selected region.
// Feeds for global services (without region token) are always fetched.
func (line ManifestLine) InRegion(region string) bool {
	tokens := regionToken.FindAllString(line.Text, -1)
	if len(tokens) == 0 {
		return true
	}
	for _, token := range tokens {
		if strings.EqualFold(token, region) {
			return true
		}
	}
	return false
}

// ReadManifest reads all lines from AWS feed manifest. Blank lines are
// ignored, group headers are marked.
func ReadManifest(reader io.Reader) ([]ManifestLine, error) {
	var lines []ManifestLine

	scanner := bufio.NewScanner(reader)
	number := 0
	for scanner.Scan() {
		number++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		lines = append(lines, ManifestLine{
			Number: number,
			Text:   text,
			Group:  strings.HasPrefix(text, groupPrefix),
		})
	}

	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Int("line", number).Msg("Unable to read manifest")
		return nil, err
	}

	log.Debug().Int("lines", len(lines)).Msg("Manifest read")
	return lines, nil
}
