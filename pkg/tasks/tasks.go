package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TypeUpdateAllPrograms = "programs:update_all"
	TypeUpdatePrograms    = "programs:update"
	TypeBuildAllFeeds     = "feeds:build_all"
	TypeBuildFeeds        = "feeds:build"
)

type UpdateProgramsTaskPayload struct {
	StationID int
}

type BuildFeedsTaskPayload struct {
	StationID int
}

// NewUpdateAllProgramsTask fans out one roster refresh task per station.
func NewUpdateAllProgramsTask() (*asynq.Task, error) {
	return asynq.NewTask(TypeUpdateAllPrograms, nil), nil
}

func NewUpdateProgramsTask(stationID int) (*asynq.Task, error) {
	payload, err := json.Marshal(UpdateProgramsTaskPayload{StationID: stationID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeUpdatePrograms, payload), nil
}

// NewBuildAllFeedsTask fans out one feed rebuild task per station.
func NewBuildAllFeedsTask() (*asynq.Task, error) {
	return asynq.NewTask(TypeBuildAllFeeds, nil), nil
}

func NewBuildFeedsTask(stationID int) (*asynq.Task, error) {
	payload, err := json.Marshal(BuildFeedsTaskPayload{StationID: stationID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBuildFeeds, payload), nil
}
