package handlers

import (
	"html/template"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"

	"radiorsser/internal/db"
	"radiorsser/internal/models"
)

type Handlers struct {
	templates *template.Template
	feedsDir  string
}

func New(templates *template.Template, feedsDir string) *Handlers {
	return &Handlers{
		templates: templates,
		feedsDir:  feedsDir,
	}
}

type stationView struct {
	Station  models.Station
	Programs []models.Program
	Hosts    []models.Host
}

// Index lists every station with its non-archived programs and their feed
// links.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	stations, err := db.GetAllStations()
	if err != nil {
		log.Printf("Error getting stations: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	views := make([]stationView, 0, len(stations))
	for _, station := range stations {
		programs, err := db.GetActivePrograms(station.ID)
		if err != nil {
			log.Printf("Error getting programs for station %d: %v", station.ID, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		hosts, err := db.GetHostsByStation(station.ID)
		if err != nil {
			log.Printf("Error getting hosts for station %d: %v", station.ID, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		views = append(views, stationView{Station: station, Programs: programs, Hosts: hosts})
	}

	if err := h.templates.ExecuteTemplate(w, "index.html", views); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// GetFeed serves one generated feed file.
func (h *Handlers) GetFeed(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	station := filepath.Base(vars["station"])
	file := filepath.Base(vars["file"])

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	http.ServeFile(w, r, filepath.Join(h.feedsDir, station, file))
}

// Subscribe opts an email address in to roster change notifications.
func (h *Handlers) Subscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	if email == "" {
		http.Error(w, "Email is required", http.StatusBadRequest)
		return
	}

	if _, err := db.AddSubscriber(email); err != nil {
		http.Error(w, "Failed to subscribe", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
