package main

import (
	"html/template"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"radiorsser/internal/config"
	"radiorsser/internal/db"
	"radiorsser/internal/handlers"
	"radiorsser/internal/middleware"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	db.InitDB()
	cfg := config.Load()

	templates := template.Must(template.ParseGlob(filepath.Join("web", "templates", "*.html")))
	h := handlers.New(templates, cfg.FeedsDir)
	limiter := middleware.NewRateLimiterMiddleware(rate.Limit(5), 10)

	r := mux.NewRouter()
	r.HandleFunc("/", h.Index).Methods(http.MethodGet)
	r.HandleFunc("/subscribe", h.Subscribe).Methods(http.MethodPost)
	r.Handle("/feeds/{station}/{file}", limiter.Middleware(http.HandlerFunc(h.GetFeed))).Methods(http.MethodGet)

	log.Printf("Starting server on :%s (commit: %s)", cfg.Port, CommitSHA)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
