package models

// Station is a radio station whose site gets scraped. Seed data, rarely changed.
type Station struct {
	ID           int    `db:"id"`
	Name         string `db:"name"`
	ShortName    string `db:"short_name"`
	URL          string `db:"url"`
	Logo         string `db:"logo"`
	ProgramsRoot string `db:"programs_root"`
}

// Host presents one or more programs on a station.
type Host struct {
	ID        int     `db:"id"`
	StationID int     `db:"station_id"`
	FirstName string  `db:"first_name"`
	LastName  string  `db:"last_name"`
	Photo     *string `db:"photo"`
}

func (h Host) FullName() string {
	return h.FirstName + " " + h.LastName
}
