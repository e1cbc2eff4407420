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
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the stored domain types. Timestamps travel as Unix
// microseconds; all other fields are plain varint/ordinary encodings.

// IDMUS serializes ID values.
var IDMUS = idMUS{}

type idMUS struct{}

var _ mus.Serializer[ID] = IDMUS

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

// ActionMUS serializes Action values.
var ActionMUS = actionMUS{}

type actionMUS struct{}

var _ mus.Serializer[Action] = ActionMUS

func (actionMUS) Marshal(a Action, bs []byte) int {
	return varint.Int.Marshal(int(a), bs)
}

func (actionMUS) Unmarshal(bs []byte) (Action, int, error) {
	v, n, err := varint.Int.Unmarshal(bs)
	return Action(v), n, err
}

func (actionMUS) Size(a Action) int {
	return varint.Int.Size(int(a))
}

func (actionMUS) Skip(bs []byte) (int, error) {
	return varint.Int.Skip(bs)
}

// FeedbackMUS serializes Feedback records for storage.
var FeedbackMUS = feedbackMUS{}

type feedbackMUS struct{}

var _ mus.Serializer[Feedback] = FeedbackMUS

func (feedbackMUS) Marshal(fb Feedback, bs []byte) (n int) {
	n = IDMUS.Marshal(fb.Id, bs)
	n += ord.String.Marshal(fb.UserID, bs[n:])
	n += ord.String.Marshal(fb.PlaceID, bs[n:])
	n += ActionMUS.Marshal(fb.Action, bs[n:])
	n += ord.String.Marshal(fb.CategoryHint, bs[n:])
	n += varint.Int64.Marshal(fb.CreatedAt.UnixMicro(), bs[n:])
	return n
}

func (feedbackMUS) Unmarshal(bs []byte) (fb Feedback, n int, err error) {
	var n1 int
	if fb.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if fb.UserID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return fb, n + n1, err
	}
	n += n1
	if fb.PlaceID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return fb, n + n1, err
	}
	n += n1
	if fb.Action, n1, err = ActionMUS.Unmarshal(bs[n:]); err != nil {
		return fb, n + n1, err
	}
	n += n1
	if fb.CategoryHint, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return fb, n + n1, err
	}
	n += n1
	var micros int64
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return fb, n + n1, err
	}
	n += n1
	fb.CreatedAt = time.UnixMicro(micros).UTC()
	return fb, n, nil
}

func (feedbackMUS) Size(fb Feedback) (size int) {
	size = IDMUS.Size(fb.Id)
	size += ord.String.Size(fb.UserID)
	size += ord.String.Size(fb.PlaceID)
	size += ActionMUS.Size(fb.Action)
	size += ord.String.Size(fb.CategoryHint)
	size += varint.Int64.Size(fb.CreatedAt.UnixMicro())
	return size
}

func (feedbackMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = IDMUS.Skip(bs); err != nil {
		return
	}
	for i := 0; i < 2; i++ {
		if n1, err = ord.String.Skip(bs[n:]); err != nil {
			return n + n1, err
		}
		n += n1
	}
	if n1, err = ActionMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = varint.Int64.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	return n + n1, nil
}
