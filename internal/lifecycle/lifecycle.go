// Package lifecycle reconciles a freshly extracted program list against the
// stored roster. The transition computation is a pure function; store
// mutation and notification are separate side effects applied afterwards.
package lifecycle

import (
	"context"
	"fmt"
	"log"
	"strings"

	"radiorsser/internal/db"
	"radiorsser/internal/models"
	"radiorsser/internal/notify"
	"radiorsser/internal/scrape"
)

// repeatMarker flags rerun listings on the site; those are never tracked as
// programs.
const repeatMarker = "повтор"

// Result partitions programs by what this run's extraction says about them.
type Result struct {
	Current  []models.Program // stored programs still on the live listing
	New      []models.Program // extracted programs not stored yet
	Archived []models.Program // stored programs gone from the live listing
}

// Reconcile computes lifecycle transitions from the stored roster and a
// fresh extraction. Pure: no store access, no side effects.
func Reconcile(stored, fresh []models.Program) Result {
	byTitle := make(map[string]models.Program, len(stored))
	for _, p := range stored {
		byTitle[p.Title] = p
	}

	seen := make(map[string]bool, len(fresh))
	var result Result
	for _, p := range fresh {
		if strings.Contains(p.Title, repeatMarker) {
			continue
		}
		if seen[p.Title] {
			continue
		}
		seen[p.Title] = true

		if existing, ok := byTitle[p.Title]; ok {
			result.Current = append(result.Current, existing)
		} else {
			result.New = append(result.New, p)
		}
	}

	for _, p := range stored {
		if !seen[p.Title] {
			result.Archived = append(result.Archived, p)
		}
	}

	return result
}

// UpdatePrograms refreshes the stored roster for one station: re-extract the
// live program list, apply the computed transitions, then notify subscribers
// about changes. Archived programs are deleted only after delivery is
// confirmed; otherwise they stay stored with status archive so the next run
// retries the notification.
func UpdatePrograms(ctx context.Context, station models.Station, strategy scrape.Strategy, notifier notify.Notifier) error {
	stored, err := db.GetProgramsByStation(station.ID)
	if err != nil {
		return fmt.Errorf("failed to load stored programs: %w", err)
	}

	fresh, err := strategy.ExtractPrograms(ctx, station)
	if err != nil {
		return fmt.Errorf("failed to extract programs for station %s: %w", station.Name, err)
	}

	result := Reconcile(stored, fresh)

	if err := db.MarkStationPrograms(station.ID, models.StatusArchive); err != nil {
		return fmt.Errorf("failed to reset program statuses: %w", err)
	}
	for _, p := range result.Current {
		if err := db.UpdateProgramStatus(p.ID, models.StatusCurrent); err != nil {
			return fmt.Errorf("failed to mark program %q current: %w", p.Title, err)
		}
	}
	for _, p := range result.New {
		p.Status = models.StatusNew
		if _, err := db.CreateProgram(p); err != nil {
			return fmt.Errorf("failed to store new program %q: %w", p.Title, err)
		}
	}

	if len(result.New) == 0 && len(result.Archived) == 0 {
		return nil
	}

	subscribers, err := db.GetNotifiableSubscribers()
	if err != nil {
		return fmt.Errorf("failed to load subscribers: %w", err)
	}
	recipients := make([]string, 0, len(subscribers))
	for _, s := range subscribers {
		recipients = append(recipients, s.Email)
	}

	delivered := notifier.Notify(recipients, notify.Change{
		StationName: station.Name,
		New:         result.New,
		Archived:    result.Archived,
	})
	if !delivered {
		log.Printf("Notification for station %s not confirmed, keeping archived programs", station.Name)
		return nil
	}

	if err := db.DeleteProgramsByStatus(station.ID, models.StatusArchive); err != nil {
		return fmt.Errorf("failed to purge archived programs: %w", err)
	}

	return nil
}
