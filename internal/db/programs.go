package db

import (
	"log"

	"radiorsser/internal/models"
)

func GetProgramsByStation(stationID int) ([]models.Program, error) {
	var programs []models.Program
	err := DB.Select(&programs, "SELECT * FROM programs WHERE station_id = $1 ORDER BY title", stationID)
	return programs, err
}

// GetActivePrograms returns every program for a station that has not been
// marked archive.
func GetActivePrograms(stationID int) ([]models.Program, error) {
	var programs []models.Program
	err := DB.Select(&programs,
		"SELECT * FROM programs WHERE station_id = $1 AND status <> $2 ORDER BY title",
		stationID, models.StatusArchive)
	return programs, err
}

func CreateProgram(p models.Program) (models.Program, error) {
	query := `
		INSERT INTO programs (station_id, title, slug, description, url, feed_url, image, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING *
	`
	created := models.Program{}
	err := DB.Get(&created, query,
		p.StationID, p.Title, p.Slug, p.Description, p.URL, p.FeedURL, p.Image, p.Status)
	if err != nil {
		log.Printf("Error creating program %q: %v", p.Title, err)
		return created, err
	}
	return created, nil
}

// MarkStationPrograms bulk-updates the status of every program belonging to
// the station.
func MarkStationPrograms(stationID int, status string) error {
	_, err := DB.Exec(
		"UPDATE programs SET status = $1, updated_at = NOW() WHERE station_id = $2",
		status, stationID)
	return err
}

func UpdateProgramStatus(id int, status string) error {
	_, err := DB.Exec(
		"UPDATE programs SET status = $1, updated_at = NOW() WHERE id = $2",
		status, id)
	return err
}

func UpdateProgramImage(id int, image string) error {
	_, err := DB.Exec(
		"UPDATE programs SET image = $1, updated_at = NOW() WHERE id = $2",
		image, id)
	return err
}

func DeleteProgramsByStatus(stationID int, status string) error {
	_, err := DB.Exec(
		"DELETE FROM programs WHERE station_id = $1 AND status = $2",
		stationID, status)
	return err
}
