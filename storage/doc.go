// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package storage defines the persistence interfaces for user feedback and
// the serialization helpers shared by backend implementations.
//
// Feedback events are the only durable state in the system: places are
// fetched fresh (or from a short-lived cache) and ranking results are never
// persisted. The FeedbackRepository interface is deliberately narrow; the
// personalization layer only ever needs a user's most recent events in
// reverse chronological order.
//
// The badger subpackage provides the embedded BadgerDB implementation.
package storage
