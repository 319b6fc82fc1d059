package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskSnapshotRefresh = "leads.snapshot.refresh"

type SnapshotRefreshPayload struct {
	Reason string `json:"reason"`
}

func NewSnapshotRefreshTask(payload SnapshotRefreshPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSnapshotRefresh, data), nil
}

func ParseSnapshotRefreshPayload(task *asynq.Task) (SnapshotRefreshPayload, error) {
	var payload SnapshotRefreshPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return SnapshotRefreshPayload{}, err
	}
	return payload, nil
}
