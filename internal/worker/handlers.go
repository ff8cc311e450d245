package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hibiken/asynq"

	"radiorsser/internal/cover"
	"radiorsser/internal/db"
	"radiorsser/internal/feed"
	"radiorsser/internal/lifecycle"
	"radiorsser/internal/notify"
	"radiorsser/internal/scrape"
	"radiorsser/pkg/tasks"
)

type TaskHandler struct {
	asynqClient tasks.TaskEnqueuer
	notifier    notify.Notifier
	covers      cover.Generator
	feedsDir    string
}

func NewTaskHandler(client tasks.TaskEnqueuer, notifier notify.Notifier, covers cover.Generator, feedsDir string) *TaskHandler {
	return &TaskHandler{
		asynqClient: client,
		notifier:    notifier,
		covers:      covers,
		feedsDir:    feedsDir,
	}
}

// HandleUpdateAllProgramsTask enqueues one roster refresh per station.
func (h *TaskHandler) HandleUpdateAllProgramsTask(ctx context.Context, t *asynq.Task) error {
	log.Println("Refreshing program rosters for all stations...")

	stations, err := db.GetAllStations()
	if err != nil {
		return fmt.Errorf("failed to get stations: %w", err)
	}

	for _, station := range stations {
		task, err := tasks.NewUpdateProgramsTask(station.ID)
		if err != nil {
			log.Printf("failed to create update task for station %d: %v", station.ID, err)
			continue
		}
		if _, err := h.asynqClient.Enqueue(task); err != nil {
			log.Printf("failed to enqueue update task for station %d: %v", station.ID, err)
			continue
		}
	}

	return nil
}

// HandleUpdateProgramsTask reconciles one station's roster against the live
// listing.
func (h *TaskHandler) HandleUpdateProgramsTask(ctx context.Context, t *asynq.Task) error {
	var p tasks.UpdateProgramsTaskPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %w", err)
	}

	station, err := db.GetStationByID(p.StationID)
	if err != nil {
		return fmt.Errorf("failed to get station %d: %w", p.StationID, err)
	}

	strategy, ok := scrape.ForStation(station.Name)
	if !ok {
		return fmt.Errorf("no extraction strategy registered for station %q", station.Name)
	}

	log.Printf("Updating programs for station: %s", station.Name)
	return lifecycle.UpdatePrograms(ctx, station, strategy, h.notifier)
}

// HandleBuildAllFeedsTask enqueues one feed rebuild per station.
func (h *TaskHandler) HandleBuildAllFeedsTask(ctx context.Context, t *asynq.Task) error {
	log.Println("Rebuilding feeds for all stations...")

	stations, err := db.GetAllStations()
	if err != nil {
		return fmt.Errorf("failed to get stations: %w", err)
	}

	for _, station := range stations {
		task, err := tasks.NewBuildFeedsTask(station.ID)
		if err != nil {
			log.Printf("failed to create build task for station %d: %v", station.ID, err)
			continue
		}
		if _, err := h.asynqClient.Enqueue(task); err != nil {
			log.Printf("failed to enqueue build task for station %d: %v", station.ID, err)
			continue
		}
	}

	return nil
}

// HandleBuildFeedsTask rebuilds every feed file for one station, program by
// program. The first failing program aborts the station run; asynq's retry
// backoff picks it up again later.
func (h *TaskHandler) HandleBuildFeedsTask(ctx context.Context, t *asynq.Task) error {
	var p tasks.BuildFeedsTaskPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %w", err)
	}

	station, err := db.GetStationByID(p.StationID)
	if err != nil {
		return fmt.Errorf("failed to get station %d: %w", p.StationID, err)
	}

	strategy, ok := scrape.ForStation(station.Name)
	if !ok {
		return fmt.Errorf("no extraction strategy registered for station %q", station.Name)
	}

	programs, err := db.GetActivePrograms(station.ID)
	if err != nil {
		return fmt.Errorf("failed to get programs for station %s: %w", station.Name, err)
	}

	for _, program := range programs {
		if program.Image == "" {
			imageURL, err := h.covers.Generate(program.Title, program.Slug)
			if err != nil {
				log.Printf("failed to generate cover for %q: %v", program.Title, err)
			} else if err := db.UpdateProgramImage(program.ID, imageURL); err != nil {
				log.Printf("failed to store cover for %q: %v", program.Title, err)
			} else {
				program.Image = imageURL
			}
		}

		episodes, err := strategy.ExtractEpisodes(ctx, program)
		if err != nil {
			return fmt.Errorf("failed to extract episodes for %q: %w", program.Title, err)
		}

		document, err := feed.Build(station, program, episodes)
		if err != nil {
			return fmt.Errorf("failed to build feed for %q: %w", program.Title, err)
		}

		if err := writeFeedFile(h.feedsDir, station.ShortName, program.Slug, document); err != nil {
			return fmt.Errorf("failed to write feed for %q: %w", program.Title, err)
		}

		log.Printf("Built feed for %s (%d episodes)", program.Title, len(episodes))
	}

	return nil
}

// writeFeedFile replaces {feedsDir}/{station}/{slug}.xml atomically so feed
// readers never see a half-written document.
func writeFeedFile(feedsDir, stationSlug, programSlug, content string) error {
	dir := filepath.Join(feedsDir, stationSlug)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	target := filepath.Join(dir, programSlug+".xml")
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
