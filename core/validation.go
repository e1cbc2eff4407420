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


package core

import (
	"fmt"
	"time"
)

// ValidateFeedback validates a Feedback record according to domain rules.
//
// Validation rules:
//   - UserID must not be empty
//   - PlaceID must not be empty
//   - Action must be a known value (like, dislike, click)
//   - CreatedAt must not be in the future
//
// NOT validated:
//   - CategoryHint (empty is allowed; such events are skipped by aggregation)
//   - ID (0 is valid from database sequences)
func ValidateFeedback(fb *Feedback) error {
	if fb == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidFeedback)
	}

	if fb.UserID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFeedback, ErrEmptyUserID)
	}

	if fb.PlaceID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFeedback, ErrEmptyPlaceID)
	}

	if err := ValidateAction(fb.Action); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFeedback, err)
	}

	if !fb.CreatedAt.IsZero() && !IsValidTimestamp(fb.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidFeedback, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateAction validates that an Action has a known value.
func ValidateAction(action Action) error {
	if action != ActionLike && action != ActionDislike && action != ActionClick {
		return fmt.Errorf("%w: value %d", ErrInvalidAction, action)
	}
	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
