package domain

import (
	"time"
)

// TaskStatus is the lifecycle state of a user task. Completed and rejected
// are terminal.
type TaskStatus string

const (
	TaskStatusAssigned  TaskStatus = "assigned"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusRejected  TaskStatus = "rejected"
)

// Deposit state of a forced task. Only forced tasks carry one.
const (
	TaskDepositPending  = "pending"
	TaskDepositApproved = "approved"
	TaskDepositRefunded = "refunded"
)

// UserTask is one entry of a user's ordered task batch. At most one task per
// (user, task_number) is active at a time; regenerating a batch deactivates
// the previous one and links it via ReplacedByID.
type UserTask struct {
	ID         string     `json:"id" db:"id"`
	UserID     string     `json:"user_id" db:"user_id"`
	ProductID  string     `json:"product_id" db:"product_id"`
	TaskNumber int        `json:"task_number" db:"task_number"`
	Status     TaskStatus `json:"status" db:"status"`

	ProfitAmount  float64  `json:"profit_amount" db:"profit_amount"`
	IsForced      bool     `json:"is_forced" db:"is_forced"`
	DepositAmount *float64 `json:"deposit_amount" db:"deposit_amount"`
	DepositStatus *string  `json:"deposit_status" db:"deposit_status"`

	IsActive     bool    `json:"is_active" db:"is_active"`
	ReplacedByID *string `json:"replaced_by_id" db:"replaced_by_id"`
	Proof        *string `json:"proof" db:"proof"`

	// Joined from products on reads
	ProductName string `json:"product_name,omitempty" db:"product_name"`

	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	CompletedAt *time.Time `json:"completed_at" db:"completed_at"`
	DeclinedAt  *time.Time `json:"declined_at" db:"declined_at"`
}

// AssignmentInput is the admin request to (re)generate a user's task batch.
type AssignmentInput struct {
	UserID        string
	TaskCount     int
	TotalProfit   float64
	ForcedNumber  *int
	DepositAmount *float64
	CustomProfit  *float64
}

// BatchStats summarizes a created batch.
type BatchStats struct {
	TaskCount     int     `json:"task_count"`
	ForcedCount   int     `json:"forced_count"`
	TotalProfit   float64 `json:"total_profit"`
	AverageProfit float64 `json:"average_profit"`
}

// AssignmentResult is the created batch plus its aggregate stats.
type AssignmentResult struct {
	Tasks []*UserTask `json:"tasks"`
	Stats BatchStats  `json:"stats"`
}

// TaskEdit carries the fields an admin may adjust on a single task. Nil
// pointers leave the current value untouched.
type TaskEdit struct {
	Status        *TaskStatus `json:"status"`
	ProfitAmount  *float64    `json:"profit_amount"`
	IsForced      *bool       `json:"is_forced"`
	DepositAmount *float64    `json:"deposit_amount"`
	DepositStatus *string     `json:"deposit_status"`
}

// TaskFilter narrows active-task listings.
type TaskFilter struct {
	Status   *TaskStatus
	IsForced *bool
}

// HistoryFilter narrows and paginates task history listings.
type HistoryFilter struct {
	Status *TaskStatus
	Page   int
	Limit  int
}

// CompletionResult is returned after a successful task completion.
type CompletionResult struct {
	TaskID        string    `json:"task_id"`
	ProductName   string    `json:"product_name"`
	ProfitAmount  float64   `json:"profit_amount"`
	ProfitBalance float64   `json:"profit_balance"`
	CompletedAt   time.Time `json:"completed_at"`
}

// DeclineResult is returned after a successful task decline. Balance figures
// are only present when the decline clawed back profit.
type DeclineResult struct {
	Task          *UserTask `json:"task"`
	Balance       *float64  `json:"balance,omitempty"`
	ProfitBalance *float64  `json:"profit_balance,omitempty"`
}

// TaskRepository defines operations for task data access. The multi-step
// methods (ReplaceBatch, Complete, Decline) run inside a single database
// transaction.
type TaskRepository interface {
	ReplaceBatch(userID string, tasks []*UserTask, nextTaskNumber int) error
	GetByID(id string) (*UserTask, error)
	GetCurrent(userID string) (*UserTask, error)
	ListActive(userID string, filter TaskFilter) ([]*UserTask, error)
	ListHistory(userID string, filter HistoryFilter) ([]*UserTask, int, error)
	Complete(taskID, userID, proof string) (*CompletionResult, error)
	Decline(taskID, userID string) (*DeclineResult, error)
	AdminUpdate(id string, edit TaskEdit) (*UserTask, error)
}

// TaskUsecase defines business logic for the assignment engine and the task
// lifecycle.
type TaskUsecase interface {
	AssignBatch(input AssignmentInput) (*AssignmentResult, error)
	EditTask(taskID string, edit TaskEdit) (*UserTask, error)
	CompleteTask(userID, taskID, proof string) (*CompletionResult, error)
	DeclineTask(userID, taskID string) (*DeclineResult, error)
	GetCurrentTask(userID string) (*UserTask, error)
	ListTasks(userID string, filter TaskFilter) ([]*UserTask, error)
	ListHistory(userID string, filter HistoryFilter) ([]*UserTask, int, error)
}

// IsTerminal reports whether the task has reached a final state.
func (t *UserTask) IsTerminal() bool {
	return t.Status == TaskStatusCompleted || t.Status == TaskStatusRejected
}

// IsValidTaskStatus checks a status string coming from the API.
func IsValidTaskStatus(s TaskStatus) bool {
	return s == TaskStatusAssigned || s == TaskStatusCompleted || s == TaskStatusRejected
}
