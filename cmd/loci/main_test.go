package main

import (
	"flag"
	"testing"
	"time"

	"github.com/poiesic/loci/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestParseFeedbackLine(t *testing.T) {
	t.Run("full event", func(t *testing.T) {
		event, err := parseFeedbackLine([]byte(`{
			"user_id": "alice",
			"place_id": "osm:node:42",
			"action": "like",
			"category_hint": "amenity:cafe",
			"created_at": "2025-06-01T12:00:00Z"
		}`))
		require.NoError(t, err)

		assert.Equal(t, "alice", event.UserID)
		assert.Equal(t, "osm:node:42", event.PlaceID)
		assert.Equal(t, core.ActionLike, event.Action)
		assert.Equal(t, "amenity:cafe", event.CategoryHint)
		assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), event.CreatedAt)
	})

	t.Run("minimal event", func(t *testing.T) {
		event, err := parseFeedbackLine([]byte(`{"user_id":"bob","place_id":"osm:way:7","action":"click"}`))
		require.NoError(t, err)

		assert.Equal(t, core.ActionClick, event.Action)
		assert.Empty(t, event.CategoryHint)
		assert.True(t, event.CreatedAt.IsZero())
	})

	t.Run("unknown action", func(t *testing.T) {
		_, err := parseFeedbackLine([]byte(`{"user_id":"bob","place_id":"p","action":"meh"}`))
		assert.ErrorIs(t, err, core.ErrInvalidAction)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := parseFeedbackLine([]byte(`user,place,like`))
		assert.Error(t, err)
	})
}

func TestSetupLogger(t *testing.T) {
	makeContext := func(level string) *cli.Context {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.String("log-level", level, "")
		return cli.NewContext(cli.NewApp(), set, nil)
	}

	t.Run("valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "INFO"} {
			assert.NoError(t, setupLogger(makeContext(level)), "level %q", level)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		assert.Error(t, setupLogger(makeContext("verbose")))
	})
}
