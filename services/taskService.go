package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Yashgithub77/lifeeloopp/models"
	"github.com/Yashgithub77/lifeeloopp/store"
)

// TaskService owns task status transitions and the goal progress
// counters fed by completed-task counts.
type TaskService struct {
	store store.Store
	log   *zap.Logger
}

func NewTaskService(st store.Store, log *zap.Logger) *TaskService {
	return &TaskService{store: st, log: log}
}

// TaskPatch carries the merge-patch fields a client may change on a
// task. Nil means "leave as is".
type TaskPatch struct {
	Status        *string `json:"status"`
	ActualMinutes *int    `json:"actualMinutes"`
	Notes         *string `json:"notes"`
}

func (s *TaskService) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	return s.store.GetTasks(ctx, userID)
}

func (s *TaskService) CreateTask(ctx context.Context, userID string, t models.Task) (models.Task, error) {
	t.ID = "task-" + uuid.NewString()
	t.UserID = userID
	t.CreatedAt = time.Now()
	if t.Status == "" {
		t.Status = models.TaskStatusPending
	}
	if t.Date == "" {
		t.Date = time.Now().AddDate(0, 0, t.DayIndex).Format(dateLayout)
	}
	if err := s.store.AddTask(ctx, t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// UpdateTask applies a merge patch to one task. The completion
// timestamp is stamped exactly when the status transitions to done and
// cleared when it reverts to pending. Completing a task also recounts
// the owning goal's progress from done tasks.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID string, patch TaskPatch) (*models.Task, error) {
	task, err := s.store.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if patch.Status != nil {
		task.Status = *patch.Status
		switch task.Status {
		case models.TaskStatusDone:
			now := time.Now()
			task.CompletedAt = &now
		case models.TaskStatusPending:
			task.CompletedAt = nil
		}
	}
	if patch.ActualMinutes != nil {
		task.ActualMinutes = *patch.ActualMinutes
	}
	if patch.Notes != nil {
		task.Notes = *patch.Notes
	}

	if err := s.store.UpdateTask(ctx, *task); err != nil {
		return nil, err
	}

	if patch.Status != nil && *patch.Status == models.TaskStatusDone && task.GoalID != "" {
		if err := s.recountGoalProgress(ctx, userID, task.GoalID); err != nil {
			s.log.Warn("failed to update goal progress",
				zap.String("goal_id", task.GoalID), zap.Error(err))
		}
	}

	if patch.Status != nil {
		action := models.AgentAction{
			ID:        "action-" + uuid.NewString(),
			UserID:    userID,
			Type:      "check_progress",
			Timestamp: time.Now(),
			Input:     fmt.Sprintf("Task %q status change", task.Title),
			Output:    fmt.Sprintf("Task %q marked as %s", task.Title, task.Status),
			Status:    "completed",
		}
		if err := s.store.AppendAgentAction(ctx, action); err != nil {
			s.log.Warn("failed to persist agent action", zap.Error(err))
		}
	}

	return task, nil
}

func (s *TaskService) recountGoalProgress(ctx context.Context, userID, goalID string) error {
	tasks, err := s.store.GetTasks(ctx, userID)
	if err != nil {
		return err
	}
	done := 0
	for _, t := range tasks {
		if t.GoalID == goalID && t.Status == models.TaskStatusDone {
			done++
		}
	}
	return s.store.UpdateGoal(ctx, userID, goalID, map[string]interface{}{
		"currentValue": done,
	})
}
