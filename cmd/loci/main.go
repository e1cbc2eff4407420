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


package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/loci"
	"github.com/poiesic/loci/ai"
	"github.com/poiesic/loci/core"
	"github.com/poiesic/loci/ingestion"
	"github.com/urfave/cli/v2"
)

func main() {
	dbFlag := &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
	}

	app := &cli.App{
		Name:   "loci",
		Usage:  "Personalized point-of-interest recommendations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "recommend",
				Usage:  "Fetch and rank places around a coordinate",
				Action: recommendCommand,
				Flags: []cli.Flag{
					dbFlag,
					&cli.Float64Flag{
						Name:     "lat",
						Usage:    "Latitude of the search center",
						Required: true,
					},
					&cli.Float64Flag{
						Name:     "lng",
						Usage:    "Longitude of the search center",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Free-text intent, e.g. \"quiet place to work\"",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "radius",
						Usage: "Search radius in meters",
						Value: loci.DefaultRadiusMeters,
					},
					&cli.IntFlag{
						Name:  "max-results",
						Usage: "Maximum number of results",
						Value: loci.DefaultMaxResults,
					},
					&cli.StringSliceFlag{
						Name:  "category",
						Usage: "Category keyword filter (repeatable)",
					},
					&cli.StringFlag{
						Name:  "user",
						Usage: "User ID for personalization (optional)",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
				},
			},
			{
				Name:  "feedback",
				Usage: "Manage user feedback history",
				Subcommands: []*cli.Command{
					{
						Name:   "add",
						Usage:  "Record a single feedback event",
						Action: feedbackAddCommand,
						Flags: []cli.Flag{
							dbFlag,
							&cli.StringFlag{
								Name:     "user",
								Usage:    "User ID",
								Required: true,
							},
							&cli.StringFlag{
								Name:     "place",
								Usage:    "Place ID, e.g. osm:node:123",
								Required: true,
							},
							&cli.StringFlag{
								Name:     "action",
								Usage:    "One of: like, dislike, click",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "category",
								Usage: "Category tag the reaction applies to, e.g. amenity:cafe",
							},
						},
					},
					{
						Name:   "clear",
						Usage:  "Delete a user's entire feedback history",
						Action: feedbackClearCommand,
						Flags: []cli.Flag{
							dbFlag,
							&cli.StringFlag{
								Name:     "user",
								Usage:    "User ID",
								Required: true,
							},
						},
					},
					{
						Name:   "import",
						Usage:  "Bulk import feedback events from a JSONL file",
						Action: feedbackImportCommand,
						Flags: []cli.Flag{
							dbFlag,
							&cli.StringFlag{
								Name:     "file",
								Aliases:  []string{"f"},
								Usage:    "Path to JSONL file (one event per line)",
								Required: true,
							},
							&cli.IntFlag{
								Name:  "batch-size",
								Usage: "Events per write batch",
								Value: 100,
							},
							&cli.IntFlag{
								Name:  "workers",
								Usage: "Concurrent write workers",
								Value: 4,
							},
						},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func recommendCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	rec, err := loci.NewRecommender(c.String("db"), loci.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open recommender: %w", err)
	}
	defer rec.Close()

	results, err := rec.Recommend(ctx, loci.RecommendRequest{
		Lat:        c.Float64("lat"),
		Lng:        c.Float64("lng"),
		Query:      c.String("query"),
		Radius:     c.Int("radius"),
		MaxResults: c.Int("max-results"),
		Categories: c.StringSlice("category"),
		UserID:     c.String("user"),
	})
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No places found.")
		return nil
	}

	for i, place := range results {
		fmt.Printf("%d. %s (%.4f)\n", i+1, place.Name, place.Score)
		fmt.Printf("   %s  %.0fm away\n", place.ID, place.DistanceMeters)
		if len(place.Categories) > 0 {
			fmt.Printf("   %s\n", strings.Join(place.Categories, " "))
		}
		if place.Address != "" {
			fmt.Printf("   %s\n", place.Address)
		}
	}
	return nil
}

func feedbackAddCommand(c *cli.Context) error {
	ctx := context.Background()

	action, err := core.ParseAction(c.String("action"))
	if err != nil {
		return fmt.Errorf("invalid action %q: must be one of like, dislike, click", c.String("action"))
	}

	rec, err := loci.NewRecommender(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open recommender: %w", err)
	}
	defer rec.Close()

	events, err := rec.RecordFeedback(ctx, &core.Feedback{
		UserID:       c.String("user"),
		PlaceID:      c.String("place"),
		Action:       action,
		CategoryHint: c.String("category"),
	})
	if err != nil {
		return fmt.Errorf("failed to record feedback: %w", err)
	}

	fmt.Printf("Recorded %s for %s (event %d)\n", action, c.String("place"), events[0].Id)
	return nil
}

func feedbackClearCommand(c *cli.Context) error {
	ctx := context.Background()

	rec, err := loci.NewRecommender(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open recommender: %w", err)
	}
	defer rec.Close()

	deleted, err := rec.ClearFeedback(ctx, c.String("user"))
	if err != nil {
		return fmt.Errorf("failed to clear feedback: %w", err)
	}

	fmt.Printf("Deleted %d feedback events for %s\n", deleted, c.String("user"))
	return nil
}

// feedbackLine is the JSONL import format for one feedback event.
type feedbackLine struct {
	UserID       string    `json:"user_id"`
	PlaceID      string    `json:"place_id"`
	Action       string    `json:"action"`
	CategoryHint string    `json:"category_hint,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

func parseFeedbackLine(data []byte) (*core.Feedback, error) {
	var line feedbackLine
	if err := json.Unmarshal(data, &line); err != nil {
		return nil, err
	}

	action, err := core.ParseAction(line.Action)
	if err != nil {
		return nil, fmt.Errorf("invalid action %q: %w", line.Action, err)
	}

	return &core.Feedback{
		UserID:       line.UserID,
		PlaceID:      line.PlaceID,
		Action:       action,
		CategoryHint: line.CategoryHint,
		CreatedAt:    line.CreatedAt,
	}, nil
}

func feedbackImportCommand(c *cli.Context) error {
	ctx := context.Background()

	file, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer file.Close()

	rec, err := loci.NewRecommender(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open recommender: %w", err)
	}
	defer rec.Close()

	pipeline, err := rec.NewPipeline(ingestion.WithPoolSize(c.Int("workers")))
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	batchSize := c.Int("batch-size")
	if batchSize <= 0 {
		batchSize = 100
	}

	var batch []*core.Feedback
	total := 0
	lineNo := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		event, err := parseFeedbackLine([]byte(text))
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}

		batch = append(batch, event)
		if len(batch) >= batchSize {
			if err := pipeline.Record(ctx, batch...); err != nil {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			total += len(batch)
			batch = nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed reading import file: %w", err)
	}

	if len(batch) > 0 {
		if err := pipeline.Record(ctx, batch...); err != nil {
			return fmt.Errorf("failed to record final batch: %w", err)
		}
		total += len(batch)
	}

	if failed := pipeline.Drain(); failed > 0 {
		return fmt.Errorf("%d write batches failed, see log for details", failed)
	}

	fmt.Printf("Imported %d feedback events\n", total)
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
