package main

import (
	"log"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"radiorsser/internal/config"
	"radiorsser/pkg/tasks"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	cfg := config.Load()

	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		&asynq.SchedulerOpts{},
	)

	updateTask, err := tasks.NewUpdateAllProgramsTask()
	if err != nil {
		log.Fatalf("could not create roster task: %v", err)
	}
	// Roster changes are rare; once a day is plenty.
	if _, err := scheduler.Register("@every 24h", updateTask); err != nil {
		log.Fatalf("could not register roster task: %v", err)
	}

	buildTask, err := tasks.NewBuildAllFeedsTask()
	if err != nil {
		log.Fatalf("could not create feed task: %v", err)
	}
	if _, err := scheduler.Register("@every 1h", buildTask); err != nil {
		log.Fatalf("could not register feed task: %v", err)
	}

	log.Printf("Scheduler starting (commit: %s)", CommitSHA)
	if err := scheduler.Run(); err != nil {
		log.Fatalf("could not run scheduler: %v", err)
	}
}
