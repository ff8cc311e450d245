package main

import (
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"radiorsser/internal/audiocache"
	"radiorsser/internal/config"
	"radiorsser/internal/cover"
	"radiorsser/internal/db"
	"radiorsser/internal/fetch"
	"radiorsser/internal/notify"
	"radiorsser/internal/scrape"
	"radiorsser/internal/worker"
	"radiorsser/pkg/tasks"
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

	fetcher := fetch.New(cfg.ScrapeDelay)
	cache := audiocache.New(fetcher, cfg.TmpDir)
	scrape.Register("Говорит Москва", scrape.NewGovoritMoskva(fetcher, cache, cfg.RootURL))

	notifier := notify.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPUsername, cfg.SMTPPassword)
	covers := cover.NewStatic(cfg.RootURL)

	client := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer client.Close()

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		asynq.Config{
			Concurrency: 1, // Process one task at a time to be gentle with the scraped site
			Queues: map[string]int{
				"high":    2,
				"default": 1,
			},
			// Custom retry delay function for exponential backoff
			RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
				delay := 5 * time.Minute
				maxDelay := 24 * time.Hour

				// Exponential backoff: 5min, 10min, 20min, 40min, 80min, etc.
				for i := 0; i < n; i++ {
					delay *= 2
					if delay > maxDelay {
						delay = maxDelay
						break
					}
				}

				log.Printf("Task %s failed %d times, retrying in %v", task.Type(), n+1, delay)
				return delay
			},
		},
	)

	mux := asynq.NewServeMux()
	taskHandler := worker.NewTaskHandler(client, notifier, covers, cfg.FeedsDir)

	mux.HandleFunc(tasks.TypeUpdateAllPrograms, taskHandler.HandleUpdateAllProgramsTask)
	mux.HandleFunc(tasks.TypeUpdatePrograms, taskHandler.HandleUpdateProgramsTask)
	mux.HandleFunc(tasks.TypeBuildAllFeeds, taskHandler.HandleBuildAllFeedsTask)
	mux.HandleFunc(tasks.TypeBuildFeeds, taskHandler.HandleBuildFeedsTask)

	log.Printf("Worker starting (commit: %s)", CommitSHA)
	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
