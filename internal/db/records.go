package db

import (
	"radiorsser/internal/models"
)

func GetEpisodeRecordByHash(hash string) (models.EpisodeRecord, error) {
	record := models.EpisodeRecord{}
	err := DB.Get(&record, "SELECT * FROM episode_records WHERE url_hash = $1", hash)
	return record, err
}

// CreateEpisodeRecord persists probed audio metadata. Concurrent probes of
// the same URL race harmlessly: the first insert wins, the rest are no-ops.
func CreateEpisodeRecord(url, hash string, duration int, size int64) error {
	_, err := DB.Exec(`
		INSERT INTO episode_records (url, url_hash, duration_seconds, size_bytes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (url_hash) DO NOTHING`,
		url, hash, duration, size)
	return err
}
