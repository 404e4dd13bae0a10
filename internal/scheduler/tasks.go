package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskWishlistMonitorRun triggers a wishlist monitoring batch. An empty
// WishlistItemID means all active items.
const TaskWishlistMonitorRun = "wishlist.monitor.run"

type WishlistMonitorRunPayload struct {
	WishlistItemID string `json:"wishlistItemId,omitempty"`
}

func NewWishlistMonitorRunTask(payload WishlistMonitorRunPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskWishlistMonitorRun, data), nil
}

func ParseWishlistMonitorRunPayload(task *asynq.Task) (WishlistMonitorRunPayload, error) {
	var payload WishlistMonitorRunPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return WishlistMonitorRunPayload{}, err
	}
	return payload, nil
}
