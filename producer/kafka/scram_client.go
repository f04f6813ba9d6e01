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

package kafka

import (
	"crypto/sha512"

	"github.com/xdg/scram"
)

// SHA512 generates hashes used during SCRAM-SHA-512 exchange
var SHA512 scram.HashGeneratorFcn = sha512.New

// SCRAMClient implements sarama.SCRAMClient interface
type SCRAMClient struct {
	*scram.Client
	*scram.ClientConversation
	scram.HashGeneratorFcn
}

// Begin starts new SCRAM conversation
func (client *SCRAMClient) Begin(userName, password, authzID string) (err error) {
	client.Client, err = client.HashGeneratorFcn.NewClient(userName, password, authzID)
	if err != nil {
		return err
	}
	client.ClientConversation = client.Client.NewConversation()
	return nil
}

// Step performs one step of SCRAM conversation
func (client *SCRAMClient) Step(challenge string) (response string, err error) {
	response, err = client.ClientConversation.Step(challenge)
	return
}

// Done returns true when the conversation is finished
func (client *SCRAMClient) Done() bool {
	return client.ClientConversation.Done()
}
