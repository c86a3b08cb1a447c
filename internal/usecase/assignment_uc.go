package usecase

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
	"github.com/adityarizkyr/reviora/pkg/metrics"
	"github.com/adityarizkyr/reviora/pkg/utils"
)

type taskUsecase struct {
	taskRepo    domain.TaskRepository
	userRepo    domain.UserRepository
	productRepo domain.ProductRepository
	cacheRepo   domain.CacheRepository

	mu  sync.Mutex
	rng *rand.Rand
}

// NewTaskUsecase creates the assignment engine and task lifecycle usecase.
// A nil source falls back to a time-seeded one; tests inject a fixed seed to
// make product selection reproducible.
func NewTaskUsecase(
	taskRepo domain.TaskRepository,
	userRepo domain.UserRepository,
	productRepo domain.ProductRepository,
	cacheRepo domain.CacheRepository,
	source rand.Source,
) domain.TaskUsecase {
	if source == nil {
		source = rand.NewSource(time.Now().UnixNano())
	}
	return &taskUsecase{
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
		cacheRepo:   cacheRepo,
		rng:         rand.New(source),
	}
}

// pickIndex draws a uniform index under the mutex; rand.Rand is not safe for
// concurrent use.
func (uc *taskUsecase) pickIndex(n int) int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.rng.Intn(n)
}

// activeProducts reads the catalog through the cache, falling back to the
// database on a miss. Cache write failures only log; assignment proceeds.
func (uc *taskUsecase) activeProducts() ([]*domain.Product, error) {
	if uc.cacheRepo != nil {
		cached, err := uc.cacheRepo.GetActiveProducts()
		if err == nil && cached != nil {
			return cached, nil
		}
	}

	products, err := uc.productRepo.ListActive()
	if err != nil {
		return nil, err
	}

	if uc.cacheRepo != nil && len(products) > 0 {
		if err := uc.cacheRepo.CacheActiveProducts(products); err != nil {
			logger.Warn("Failed to cache active products", logger.ErrorField(err))
		}
	}
	return products, nil
}

// AssignBatch builds and installs a fresh task batch for a user, replacing
// any previously active one.
func (uc *taskUsecase) AssignBatch(input domain.AssignmentInput) (*domain.AssignmentResult, error) {
	user, err := uc.userRepo.GetByID(input.UserID)
	if err != nil {
		return nil, err
	}
	if user.IsBlocked {
		return nil, domain.ErrUserBlocked
	}
	if !user.CanReceiveTasks {
		return nil, domain.ErrTasksDisabled
	}

	if input.TaskCount < 1 {
		return nil, fmt.Errorf("%w: task count must be at least 1", domain.ErrValidation)
	}
	if input.TotalProfit <= 0 {
		return nil, fmt.Errorf("%w: total profit must be positive", domain.ErrValidation)
	}
	if input.ForcedNumber != nil {
		if *input.ForcedNumber < 1 || *input.ForcedNumber > input.TaskCount {
			return nil, fmt.Errorf("%w: forced task number must be within 1..%d", domain.ErrValidation, input.TaskCount)
		}
		if input.DepositAmount == nil || *input.DepositAmount <= 0 {
			return nil, fmt.Errorf("%w: a forced task requires a positive deposit amount", domain.ErrValidation)
		}
	}

	products, err := uc.activeProducts()
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, domain.ErrNoActiveProducts
	}

	baseProfit := utils.RoundMoney(input.TotalProfit / float64(input.TaskCount))

	tasks := make([]*domain.UserTask, 0, input.TaskCount)
	forcedCount := 0
	totalProfit := 0.0

	for number := 1; number <= input.TaskCount; number++ {
		product := products[uc.pickIndex(len(products))]

		profit := baseProfit
		if number == input.TaskCount {
			// The last task absorbs the rounding remainder so the batch
			// sums to the requested total.
			profit = utils.RoundMoney(input.TotalProfit - baseProfit*float64(input.TaskCount-1))
		}

		task := &domain.UserTask{
			ID:           utils.GenerateUUID(),
			UserID:       input.UserID,
			ProductID:    product.ID,
			TaskNumber:   number,
			Status:       domain.TaskStatusAssigned,
			ProfitAmount: profit,
			IsActive:     true,
			ProductName:  product.Name,
		}

		if input.ForcedNumber != nil && number == *input.ForcedNumber {
			task.IsForced = true
			task.DepositAmount = input.DepositAmount
			depositStatus := domain.TaskDepositPending
			task.DepositStatus = &depositStatus
			if input.CustomProfit != nil {
				task.ProfitAmount = utils.RoundMoney(*input.CustomProfit)
			}
			forcedCount++
		}

		totalProfit += task.ProfitAmount
		tasks = append(tasks, task)
	}

	if err := uc.taskRepo.ReplaceBatch(input.UserID, tasks, input.TaskCount+1); err != nil {
		return nil, err
	}

	metrics.RecordBatchAssigned(len(tasks), forcedCount)
	logger.Info("Task batch assigned",
		logger.String("user_id", input.UserID),
		logger.Int("task_count", len(tasks)),
		logger.Int("forced_count", forcedCount),
	)

	totalProfit = utils.RoundMoney(totalProfit)
	return &domain.AssignmentResult{
		Tasks: tasks,
		Stats: domain.BatchStats{
			TaskCount:     len(tasks),
			ForcedCount:   forcedCount,
			TotalProfit:   totalProfit,
			AverageProfit: utils.RoundMoney(totalProfit / float64(len(tasks))),
		},
	}, nil
}

// EditTask applies an admin adjustment to a single task. The forced-task
// invariant (a forced task always carries a deposit amount) is enforced
// against the merged result.
func (uc *taskUsecase) EditTask(taskID string, edit domain.TaskEdit) (*domain.UserTask, error) {
	task, err := uc.taskRepo.GetByID(taskID)
	if err != nil {
		return nil, err
	}

	if edit.Status != nil && !domain.IsValidTaskStatus(*edit.Status) {
		return nil, fmt.Errorf("%w: unknown task status %q", domain.ErrValidation, *edit.Status)
	}
	if edit.ProfitAmount != nil && *edit.ProfitAmount < 0 {
		return nil, fmt.Errorf("%w: profit amount cannot be negative", domain.ErrValidation)
	}
	if edit.DepositAmount != nil && *edit.DepositAmount <= 0 {
		return nil, fmt.Errorf("%w: deposit amount must be positive", domain.ErrValidation)
	}

	forced := task.IsForced
	if edit.IsForced != nil {
		forced = *edit.IsForced
	}
	deposit := task.DepositAmount
	if edit.DepositAmount != nil {
		deposit = edit.DepositAmount
	}
	if forced && deposit == nil {
		return nil, fmt.Errorf("%w: a forced task requires a deposit amount", domain.ErrValidation)
	}

	updated, err := uc.taskRepo.AdminUpdate(taskID, edit)
	if err != nil {
		return nil, err
	}

	logger.Info("Task edited by admin",
		logger.String("task_id", taskID),
		logger.String("user_id", updated.UserID),
	)
	return updated, nil
}
