package models

import "time"

// Program lifecycle statuses. Transitions happen only during roster
// reconciliation.
const (
	StatusNew     = "new"
	StatusCurrent = "current"
	StatusArchive = "archive"
)

// Program is a recurring show on a station. Title is the reconciliation key:
// it is unique per station across scraping runs.
type Program struct {
	ID          int       `db:"id"`
	StationID   int       `db:"station_id"`
	Title       string    `db:"title"`
	Slug        string    `db:"slug"`
	Description string    `db:"description"`
	URL         string    `db:"url"`
	FeedURL     string    `db:"feed_url"`
	Image       string    `db:"image"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
