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

// Package payload contains cleanup of custom event state payload exported
// from monitoring platform. The payload is rewritten so that it can be sent
// back to the platform: metadata element is removed and the enabled flag is
// set according to requested action. Order of other keys is kept.
package payload

// Generated documentation is available at:
// https://pkg.go.dev/github.com/rfd-devops/status-feed-notifier/payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/rs/zerolog/log"

	"github.com/rfd-devops/status-feed-notifier/types"
)

// Action represents requested state of custom event
type Action string

// Supported actions
const (
	ActionEnable  Action = "ENABLE"
	ActionDisable Action = "DISABLE"
)

const (
	metadataKey = "metadata"
	enabledKey  = "enabled"
	record      = "event payload"
)

// Result describes changes made in the payload
type Result struct {
	MetadataRemoved bool
	EnabledAdded    bool
}

// ParseAction converts action name given on command line, case does not
// matter
func ParseAction(name string) (Action, error) {
	action := Action(strings.ToUpper(strings.TrimSpace(name)))
	switch action {
	case ActionEnable, ActionDisable:
		return action, nil
	}
	return "", fmt.Errorf("unsupported action %q, use %s or %s", name, ActionEnable, ActionDisable)
}

// value returns JSON string stored into enabled element
func (action Action) value() []byte {
	if action == ActionEnable {
		return []byte(`"true"`)
	}
	return []byte(`"false"`)
}

// Clean rewrites JSON object: metadata element is removed and enabled
// element is replaced by string "true" or "false". Enabled element is
// appended when not present.
func Clean(document []byte, action Action) ([]byte, Result, error) {
	var result Result

	_, dataType, _, err := jsonparser.Get(document)
	if err != nil {
		return nil, result, &types.DecodeError{Record: record, Err: err}
	}
	if dataType != jsonparser.Object {
		return nil, result, &types.DecodeError{Record: record, Err: fmt.Errorf("JSON object expected, got %v", dataType)}
	}

	var members [][]byte
	enabledFound := false

	err = jsonparser.ObjectEach(document, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		name := string(key)
		switch name {
		case metadataKey:
			result.MetadataRemoved = true
			return nil
		case enabledKey:
			enabledFound = true
			value = action.value()
		default:
			if dataType == jsonparser.String {
				value = quote(value)
			}
		}

		pair, err := member(name, value)
		if err != nil {
			return err
		}
		members = append(members, pair)
		return nil
	})
	if err != nil {
		return nil, result, &types.DecodeError{Record: record, Err: err}
	}

	if !enabledFound {
		result.EnabledAdded = true
		enabled, err := member(enabledKey, action.value())
		if err != nil {
			return nil, result, err
		}
		members = append(members, enabled)
	}

	var out bytes.Buffer
	out.WriteByte('{')
	out.Write(bytes.Join(members, []byte(", ")))
	out.WriteByte('}')
	return out.Bytes(), result, nil
}

// member renders one "key": value pair, key is escaped again
func member(key string, value []byte) ([]byte, error) {
	name, err := json.Marshal(key)
	if err != nil {
		return nil, err
	}
	return append(append(name, ':', ' '), value...), nil
}

// quote wraps raw (still escaped) string content into quotes
func quote(raw []byte) []byte {
	quoted := make([]byte, 0, len(raw)+2)
	quoted = append(quoted, '"')
	quoted = append(quoted, raw...)
	return append(quoted, '"')
}

// CleanFile cleans payload stored in given file. The file is rewritten in
// place with its original permissions.
func CleanFile(path string, action Action) (Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Result{}, err
	}

	document, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}

	cleaned, result, err := Clean(document, action)
	if err != nil {
		return result, err
	}

	if result.MetadataRemoved {
		log.Info().Str("file", path).Msg("Removed metadata element")
	}
	if result.EnabledAdded {
		log.Warn().Str("file", path).Msg("Enabled element was not present, added")
	}

	err = os.WriteFile(path, cleaned, info.Mode().Perm())
	if err != nil {
		return result, err
	}

	log.Info().
		Str("file", path).
		Str("action", string(action)).
		Msg("Payload cleaned")
	return result, nil
}
