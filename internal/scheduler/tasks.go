package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskTaskReminder = "tasks.reminder"

// TaskReminderPayload identifies the task whose reminder came due.
type TaskReminderPayload struct {
	TaskID string `json:"taskId"`
}

func NewTaskReminderTask(payload TaskReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTaskReminder, data), nil
}

func ParseTaskReminderPayload(task *asynq.Task) (TaskReminderPayload, error) {
	var payload TaskReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return TaskReminderPayload{}, err
	}
	return payload, nil
}
