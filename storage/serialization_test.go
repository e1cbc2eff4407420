package storage

import (
	"testing"
	"time"

	"github.com/poiesic/loci/core"
)

func TestMarshalUnmarshalID(t *testing.T) {
	id := core.ID(1234567890)
	data := MarshalID(id)

	got, err := UnmarshalID(data)
	if err != nil {
		t.Fatalf("UnmarshalID failed: %v", err)
	}
	if got != id {
		t.Errorf("got %d, want %d", got, id)
	}
}

func TestUnmarshalIDTruncated(t *testing.T) {
	if _, err := UnmarshalID(nil); err == nil {
		t.Error("expected error for empty data")
	}
}

func TestMarshalUnmarshalFeedback(t *testing.T) {
	event := &core.Feedback{
		Id:           core.ID(42),
		UserID:       "user-1",
		PlaceID:      "osm:node:123",
		Action:       core.ActionLike,
		CategoryHint: "amenity:cafe",
		CreatedAt:    time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
	}

	data := MarshalFeedback(event)
	got, err := UnmarshalFeedback(data)
	if err != nil {
		t.Fatalf("UnmarshalFeedback failed: %v", err)
	}

	if got.Id != event.Id {
		t.Errorf("Id: got %d, want %d", got.Id, event.Id)
	}
	if got.UserID != event.UserID {
		t.Errorf("UserID: got %q, want %q", got.UserID, event.UserID)
	}
	if got.PlaceID != event.PlaceID {
		t.Errorf("PlaceID: got %q, want %q", got.PlaceID, event.PlaceID)
	}
	if got.Action != event.Action {
		t.Errorf("Action: got %v, want %v", got.Action, event.Action)
	}
	if got.CategoryHint != event.CategoryHint {
		t.Errorf("CategoryHint: got %q, want %q", got.CategoryHint, event.CategoryHint)
	}
	if !got.CreatedAt.Equal(event.CreatedAt) {
		t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, event.CreatedAt)
	}
}

func TestUnmarshalFeedbackGarbage(t *testing.T) {
	if _, err := UnmarshalFeedback([]byte{}); err == nil {
		t.Error("expected error for empty data")
	}
}
