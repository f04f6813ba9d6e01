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

package mocks

import (
	context "context"

	types "github.com/rfd-devops/status-feed-notifier/types"
	mock "github.com/stretchr/testify/mock"
)

// EventPublisher is a mock type for the EventPublisher type
type EventPublisher struct {
	mock.Mock
}

// PublishEvent provides a mock function with given fields: ctx, event
func (_m *EventPublisher) PublishEvent(ctx context.Context, event types.EventPayload) (types.PublishResult, error) {
	ret := _m.Called(ctx, event)

	var r0 types.PublishResult
	if rf, ok := ret.Get(0).(func(context.Context, types.EventPayload) types.PublishResult); ok {
		r0 = rf(ctx, event)
	} else {
		r0 = ret.Get(0).(types.PublishResult)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, types.EventPayload) error); ok {
		r1 = rf(ctx, event)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}
