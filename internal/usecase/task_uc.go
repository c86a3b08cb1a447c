package usecase

import (
	"strings"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
	"github.com/adityarizkyr/reviora/pkg/metrics"
)

// CompleteTask settles a task as done and credits its profit. The repository
// owns the transaction; a lost race against another settlement surfaces as
// ErrTaskNotActionable.
func (uc *taskUsecase) CompleteTask(userID, taskID, proof string) (*domain.CompletionResult, error) {
	if strings.TrimSpace(proof) == "" {
		return nil, domain.ErrProofRequired
	}

	result, err := uc.taskRepo.Complete(taskID, userID, proof)
	if err != nil {
		return nil, err
	}

	metrics.RecordTaskSettled("completed", result.ProfitAmount)
	logger.Info("Task completed",
		logger.String("task_id", taskID),
		logger.String("user_id", userID),
		logger.Float64("profit", result.ProfitAmount),
	)
	return result, nil
}

// DeclineTask settles a task as rejected, clawing back its profit from both
// pools when one was set.
func (uc *taskUsecase) DeclineTask(userID, taskID string) (*domain.DeclineResult, error) {
	result, err := uc.taskRepo.Decline(taskID, userID)
	if err != nil {
		return nil, err
	}

	metrics.RecordTaskSettled("rejected", result.Task.ProfitAmount)
	logger.Info("Task declined",
		logger.String("task_id", taskID),
		logger.String("user_id", userID),
	)
	return result, nil
}

func (uc *taskUsecase) GetCurrentTask(userID string) (*domain.UserTask, error) {
	return uc.taskRepo.GetCurrent(userID)
}

func (uc *taskUsecase) ListTasks(userID string, filter domain.TaskFilter) ([]*domain.UserTask, error) {
	return uc.taskRepo.ListActive(userID, filter)
}

func (uc *taskUsecase) ListHistory(userID string, filter domain.HistoryFilter) ([]*domain.UserTask, int, error) {
	return uc.taskRepo.ListHistory(userID, filter)
}
