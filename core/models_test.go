package core

import (
	"testing"
	"time"
)

func TestIDFromContent(t *testing.T) {
	a := IDFromContent("osm:node:123")
	b := IDFromContent("osm:node:123")
	c := IDFromContent("osm:node:124")

	if a != b {
		t.Fatalf("Expected identical content to produce identical IDs, got %d and %d", a, b)
	}
	if a == c {
		t.Fatal("Expected different content to produce different IDs")
	}
	if a == 0 {
		t.Fatal("Expected non-zero ID")
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		input   string
		want    Action
		wantErr bool
	}{
		{"like", ActionLike, false},
		{"dislike", ActionDislike, false},
		{"click", ActionClick, false},
		{"", 0, true},
		{"Like", 0, true},
		{"favorite", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseAction(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseAction(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAction(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if got.String() != tt.input {
			t.Errorf("Action.String() = %q, want %q", got.String(), tt.input)
		}
	}
}

func TestFeedbackMUSRoundTrip(t *testing.T) {
	fb := Feedback{
		Id:           42,
		UserID:       "nitin_test",
		PlaceID:      "osm:node:123456",
		Action:       ActionLike,
		CategoryHint: "amenity:cafe",
		CreatedAt:    time.Date(2025, 11, 3, 12, 30, 0, 0, time.UTC),
	}

	bs := make([]byte, FeedbackMUS.Size(fb))
	n := FeedbackMUS.Marshal(fb, bs)
	if n != len(bs) {
		t.Fatalf("Marshal wrote %d bytes, Size reported %d", n, len(bs))
	}

	got, n, err := FeedbackMUS.Unmarshal(bs)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if n != len(bs) {
		t.Fatalf("Unmarshal consumed %d bytes, expected %d", n, len(bs))
	}
	if got != fb {
		t.Fatalf("Round trip mismatch: got %+v, want %+v", got, fb)
	}
}
