package models

import "time"

// Guest is a person featured in an episode.
type Guest struct {
	Image string
	Name  string
	Title string
}

// Record is the downloadable audio file attached to an episode.
type Record struct {
	Name     string
	URL      string
	Duration int
	Size     int64
}

// Episode is built from the live page on every extraction run and never
// persisted; only the feed entry derived from it survives, as a file.
type Episode struct {
	Date        time.Time
	Title       string
	Description string
	Guests      []Guest
	Record      Record
}

// EpisodeRecord caches probed audio file metadata keyed by the md5 of the
// file URL. Append-only: created on cache miss, read on hit, never updated.
type EpisodeRecord struct {
	ID        int       `db:"id"`
	URL       string    `db:"url"`
	URLHash   string    `db:"url_hash"`
	Duration  int       `db:"duration_seconds"`
	Size      int64     `db:"size_bytes"`
	CreatedAt time.Time `db:"created_at"`
}
