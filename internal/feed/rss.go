package feed

import (
	"fmt"
	"time"

	"github.com/eduncan911/podcast"

	"radiorsser/internal/models"
	"radiorsser/internal/textutil"
)

// Build assembles the podcast RSS document for one program. Episodes are
// appended in extraction order; the GUID of every entry is the md5 of its
// audio URL, so the same file keeps the same id across runs and feed readers
// can deduplicate.
func Build(station models.Station, program models.Program, episodes []models.Episode) (string, error) {
	now := time.Now()
	p := podcast.New(
		fmt.Sprintf("%s :: %s", program.Title, station.Name),
		program.URL,
		program.Description,
		nil, &now,
	)
	p.Language = "ru"
	if program.Image != "" {
		p.AddImage(program.Image)
	}

	for _, episode := range episodes {
		description := episode.Description
		if description == "" {
			description = program.Description
		}

		pubDate := episode.Date.UTC()
		item := podcast.Item{
			GUID:        textutil.StringHash(episode.Record.URL),
			Title:       episode.Title,
			Link:        program.URL,
			Description: description,
			PubDate:     &pubDate,
			IDuration:   formatDuration(episode.Record.Duration),
		}
		item.AddEnclosure(episode.Record.URL, podcast.MP3, episode.Record.Size)

		if _, err := p.AddItem(item); err != nil {
			return "", fmt.Errorf("failed to add episode %q: %w", episode.Title, err)
		}
	}

	return p.String(), nil
}

func formatDuration(seconds int) string {
	minutes, secs := seconds/60, seconds%60
	hours, mins := minutes/60, minutes%60
	return fmt.Sprintf("%02d:%02d:%02d", hours, mins, secs)
}
