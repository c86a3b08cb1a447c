package postgres

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
)

const taskColumns = `
	t.id, t.user_id, t.product_id, t.task_number, t.status,
	t.profit_amount, t.is_forced, t.deposit_amount, t.deposit_status,
	t.is_active, t.replaced_by_id, t.proof,
	p.name AS product_name,
	t.created_at, t.completed_at, t.declined_at`

type taskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) domain.TaskRepository {
	return &taskRepository{db: db}
}

// ReplaceBatch atomically installs a new task batch for a user. The user's
// task counter is advanced first, which takes the row lock and serializes
// concurrent replacements for the same user; then the new rows are inserted
// (IDs are generated client-side) and every previously active task is
// deactivated and linked to the first new task. All three steps commit
// together or roll back.
func (r *taskRepository) ReplaceBatch(userID string, tasks []*domain.UserTask, nextTaskNumber int) error {
	if len(tasks) == 0 {
		return fmt.Errorf("%w: empty batch", domain.ErrValidation)
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin batch transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE users SET next_task_number = $1, updated_at = NOW() WHERE id = $2`, nextTaskNumber, userID)
	if err != nil {
		return fmt.Errorf("failed to advance task counter: %w", err)
	}
	if affected, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	} else if affected == 0 {
		return domain.ErrUserNotFound
	}

	insert := `
		INSERT INTO user_tasks (
			id, user_id, product_id, task_number, status,
			profit_amount, is_forced, deposit_amount, deposit_status,
			is_active, created_at
		) VALUES (
			:id, :user_id, :product_id, :task_number, :status,
			:profit_amount, :is_forced, :deposit_amount, :deposit_status,
			TRUE, NOW()
		)`

	newIDs := make([]string, 0, len(tasks))
	for _, task := range tasks {
		if _, err := tx.NamedExec(insert, task); err != nil {
			logger.Error("Failed to insert batch task",
				logger.String("user_id", userID),
				logger.Int("task_number", task.TaskNumber),
				logger.ErrorField(err),
			)
			return fmt.Errorf("failed to insert task: %w", err)
		}
		newIDs = append(newIDs, task.ID)
	}

	deactivate := `
		UPDATE user_tasks
		SET is_active = FALSE, replaced_by_id = $1
		WHERE user_id = $2 AND is_active = TRUE AND id <> ALL($3)`

	if _, err := tx.Exec(deactivate, tasks[0].ID, userID, pq.Array(newIDs)); err != nil {
		logger.Error("Failed to deactivate previous batch",
			logger.String("user_id", userID),
			logger.ErrorField(err),
		)
		return fmt.Errorf("failed to deactivate previous tasks: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch transaction: %w", err)
	}

	logger.Info("Task batch replaced",
		logger.String("user_id", userID),
		logger.Int("task_count", len(tasks)),
	)

	return nil
}

func (r *taskRepository) GetByID(id string) (*domain.UserTask, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM user_tasks t
		JOIN products p ON p.id = t.product_id
		WHERE t.id = $1`

	var task domain.UserTask
	if err := r.db.Get(&task, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrTaskNotFound
		}
		logger.Error("Failed to get task",
			logger.String("task_id", id),
			logger.ErrorField(err),
		)
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

// GetCurrent returns the earliest still-assigned active task of the user.
func (r *taskRepository) GetCurrent(userID string) (*domain.UserTask, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM user_tasks t
		JOIN products p ON p.id = t.product_id
		WHERE t.user_id = $1 AND t.is_active = TRUE AND t.status = $2
		ORDER BY t.task_number ASC
		LIMIT 1`

	var task domain.UserTask
	if err := r.db.Get(&task, query, userID, domain.TaskStatusAssigned); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get current task: %w", err)
	}
	return &task, nil
}

func (r *taskRepository) ListActive(userID string, filter domain.TaskFilter) ([]*domain.UserTask, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM user_tasks t
		JOIN products p ON p.id = t.product_id
		WHERE t.user_id = $1 AND t.is_active = TRUE`

	args := []interface{}{userID}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND t.status = $%d", len(args))
	}
	if filter.IsForced != nil {
		args = append(args, *filter.IsForced)
		query += fmt.Sprintf(" AND t.is_forced = $%d", len(args))
	}
	query += " ORDER BY t.task_number ASC"

	var tasks []*domain.UserTask
	if err := r.db.Select(&tasks, query, args...); err != nil {
		logger.Error("Failed to list active tasks",
			logger.String("user_id", userID),
			logger.ErrorField(err),
		)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (r *taskRepository) ListHistory(userID string, filter domain.HistoryFilter) ([]*domain.UserTask, int, error) {
	where := "t.user_id = $1"
	args := []interface{}{userID}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND t.status = $%d", len(args))
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM user_tasks t WHERE " + where
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count task history: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := `
		SELECT ` + taskColumns + `
		FROM user_tasks t
		JOIN products p ON p.id = t.product_id
		WHERE ` + where + `
		ORDER BY t.created_at DESC, t.task_number DESC` +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var tasks []*domain.UserTask
	if err := r.db.Select(&tasks, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list task history: %w", err)
	}
	return tasks, total, nil
}

// Complete settles a task as completed: a status-guarded update flips the
// row, the user's profit balance is credited, the daily counter advances and
// a ledger entry is appended, all in one transaction. A concurrent second
// call loses the guard and gets ErrTaskNotActionable.
func (r *taskRepository) Complete(taskID, userID, proof string) (*domain.CompletionResult, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin completion transaction: %w", err)
	}
	defer tx.Rollback()

	var task domain.UserTask
	lookup := `
		SELECT ` + taskColumns + `
		FROM user_tasks t
		JOIN products p ON p.id = t.product_id
		WHERE t.id = $1 AND t.user_id = $2`
	if err := tx.Get(&task, lookup, taskID, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}

	guard := `
		UPDATE user_tasks
		SET status = $3, proof = $4, completed_at = NOW()
		WHERE id = $1 AND user_id = $2 AND is_active = TRUE AND status = $5`
	res, err := tx.Exec(guard, taskID, userID, domain.TaskStatusCompleted, proof, domain.TaskStatusAssigned)
	if err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}
	if affected, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	} else if affected == 0 {
		return nil, domain.ErrTaskNotActionable
	}

	var newProfitBalance float64
	credit := `
		UPDATE users
		SET profit_balance = profit_balance + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING profit_balance`
	if err := tx.Get(&newProfitBalance, credit, task.ProfitAmount, userID); err != nil {
		return nil, fmt.Errorf("failed to credit profit balance: %w", err)
	}

	if _, err := tx.Exec(`
		UPDATE profiles
		SET daily_tasks_completed = daily_tasks_completed + 1, updated_at = NOW()
		WHERE user_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("failed to advance daily counter: %w", err)
	}

	refType, refID := domain.LedgerRefTask, taskID
	if err := appendLedgerEntry(tx, &domain.LedgerEntry{
		UserID:        userID,
		Pool:          domain.LedgerPoolProfit,
		Reason:        domain.LedgerReasonTaskProfit,
		Delta:         task.ProfitAmount,
		BalanceAfter:  newProfitBalance,
		ReferenceType: &refType,
		ReferenceID:   &refID,
	}); err != nil {
		return nil, err
	}

	var completedAt sql.NullTime
	if err := tx.Get(&completedAt, `SELECT completed_at FROM user_tasks WHERE id = $1`, taskID); err != nil {
		return nil, fmt.Errorf("failed to read completion time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit completion: %w", err)
	}

	logger.Info("Task completed",
		logger.String("task_id", taskID),
		logger.String("user_id", userID),
		logger.Float64("profit", task.ProfitAmount),
	)

	return &domain.CompletionResult{
		TaskID:        taskID,
		ProductName:   task.ProductName,
		ProfitAmount:  task.ProfitAmount,
		ProfitBalance: newProfitBalance,
		CompletedAt:   completedAt.Time,
	}, nil
}

// Decline settles a task as rejected. When the task carried provisional
// profit, both pools are clawed back and two ledger entries record it.
func (r *taskRepository) Decline(taskID, userID string) (*domain.DeclineResult, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin decline transaction: %w", err)
	}
	defer tx.Rollback()

	var task domain.UserTask
	lookup := `
		SELECT ` + taskColumns + `
		FROM user_tasks t
		JOIN products p ON p.id = t.product_id
		WHERE t.id = $1 AND t.user_id = $2`
	if err := tx.Get(&task, lookup, taskID, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}

	guard := `
		UPDATE user_tasks
		SET status = $3, declined_at = NOW()
		WHERE id = $1 AND user_id = $2 AND is_active = TRUE AND status = $4`
	res, err := tx.Exec(guard, taskID, userID, domain.TaskStatusRejected, domain.TaskStatusAssigned)
	if err != nil {
		return nil, fmt.Errorf("failed to decline task: %w", err)
	}
	if affected, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	} else if affected == 0 {
		return nil, domain.ErrTaskNotActionable
	}

	result := &domain.DeclineResult{}

	if task.ProfitAmount > 0 {
		var balances struct {
			Balance       float64 `db:"balance"`
			ProfitBalance float64 `db:"profit_balance"`
		}
		penalty := `
			UPDATE users
			SET profit_balance = profit_balance - $1,
				balance = balance - $1,
				updated_at = NOW()
			WHERE id = $2
			RETURNING balance, profit_balance`
		if err := tx.Get(&balances, penalty, task.ProfitAmount, userID); err != nil {
			return nil, fmt.Errorf("failed to apply decline penalty: %w", err)
		}

		refType, refID := domain.LedgerRefTask, taskID
		for _, entry := range []*domain.LedgerEntry{
			{
				UserID: userID, Pool: domain.LedgerPoolProfit,
				Reason: domain.LedgerReasonTaskPenalty,
				Delta:  -task.ProfitAmount, BalanceAfter: balances.ProfitBalance,
				ReferenceType: &refType, ReferenceID: &refID,
			},
			{
				UserID: userID, Pool: domain.LedgerPoolBalance,
				Reason: domain.LedgerReasonTaskPenalty,
				Delta:  -task.ProfitAmount, BalanceAfter: balances.Balance,
				ReferenceType: &refType, ReferenceID: &refID,
			},
		} {
			if err := appendLedgerEntry(tx, entry); err != nil {
				return nil, err
			}
		}

		result.Balance = &balances.Balance
		result.ProfitBalance = &balances.ProfitBalance
	}

	var declinedAt sql.NullTime
	if err := tx.Get(&declinedAt, `SELECT declined_at FROM user_tasks WHERE id = $1`, taskID); err != nil {
		return nil, fmt.Errorf("failed to read decline time: %w", err)
	}

	updated := task
	updated.Status = domain.TaskStatusRejected
	if declinedAt.Valid {
		updated.DeclinedAt = &declinedAt.Time
	}
	result.Task = &updated

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit decline: %w", err)
	}

	logger.Info("Task declined",
		logger.String("task_id", taskID),
		logger.String("user_id", userID),
		logger.Float64("penalty", task.ProfitAmount),
	)

	return result, nil
}

func (r *taskRepository) AdminUpdate(id string, edit domain.TaskEdit) (*domain.UserTask, error) {
	sets := []string{}
	args := []interface{}{}

	appendSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if edit.Status != nil {
		appendSet("status", *edit.Status)
	}
	if edit.ProfitAmount != nil {
		appendSet("profit_amount", *edit.ProfitAmount)
	}
	if edit.IsForced != nil {
		appendSet("is_forced", *edit.IsForced)
	}
	if edit.DepositAmount != nil {
		appendSet("deposit_amount", *edit.DepositAmount)
	}
	if edit.DepositStatus != nil {
		appendSet("deposit_status", *edit.DepositStatus)
	}
	if len(sets) == 0 {
		return r.GetByID(id)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE user_tasks SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	res, err := r.db.Exec(query, args...)
	if err != nil {
		logger.Error("Failed to update task",
			logger.String("task_id", id),
			logger.ErrorField(err),
		)
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if affected, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	} else if affected == 0 {
		return nil, domain.ErrTaskNotFound
	}

	return r.GetByID(id)
}
