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


package overpass

import (
	"errors"
	"fmt"
)

var (
	// ErrNoEndpoints is returned when a client is configured with an empty
	// endpoint list.
	ErrNoEndpoints = errors.New("at least one endpoint required")

	// ErrMalformedResponse marks a response body that could not be parsed.
	// It is recoverable: the client fails over to the next endpoint exactly
	// as it would for a network error.
	ErrMalformedResponse = errors.New("malformed response body")
)

// AcquisitionError is returned when every configured endpoint failed on
// every retry attempt. No partial results are ever returned alongside it.
type AcquisitionError struct {
	// LastErr is the last transport-level error observed before giving up.
	LastErr error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("place data source unavailable after retries, last error: %v", e.LastErr)
}

func (e *AcquisitionError) Unwrap() error {
	return e.LastErr
}
