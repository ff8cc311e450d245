package db

import (
	"radiorsser/internal/models"
)

func GetAllStations() ([]models.Station, error) {
	var stations []models.Station
	err := DB.Select(&stations, "SELECT * FROM stations ORDER BY id")
	return stations, err
}

func GetStationByID(id int) (models.Station, error) {
	station := models.Station{}
	err := DB.Get(&station, "SELECT * FROM stations WHERE id = $1", id)
	return station, err
}

func GetHostsByStation(stationID int) ([]models.Host, error) {
	var hosts []models.Host
	err := DB.Select(&hosts, "SELECT * FROM hosts WHERE station_id = $1 ORDER BY last_name, first_name", stationID)
	return hosts, err
}
