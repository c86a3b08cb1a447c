package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
	"github.com/adityarizkyr/reviora/pkg/utils"
	"github.com/adityarizkyr/reviora/pkg/xresponse"
)

// TaskHandler handles the assignment engine and task lifecycle endpoints
type TaskHandler struct {
	taskUC    domain.TaskUsecase
	roleGuard *RoleGuard
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskUC domain.TaskUsecase) *TaskHandler {
	return &TaskHandler{
		taskUC:    taskUC,
		roleGuard: NewRoleGuard(),
	}
}

// AssignBatchRequest represents the admin batch assignment payload
type AssignBatchRequest struct {
	UserID        string   `json:"user_id" binding:"required"`
	TaskCount     int      `json:"task_count" binding:"required"`
	TotalProfit   float64  `json:"total_profit" binding:"required"`
	ForcedNumber  *int     `json:"forced_number,omitempty"`
	DepositAmount *float64 `json:"deposit_amount,omitempty"`
	CustomProfit  *float64 `json:"custom_profit,omitempty"`
}

// CompleteTaskRequest carries the completion proof
type CompleteTaskRequest struct {
	Proof string `json:"proof" binding:"required"`
}

// AssignBatch creates a fresh task batch for a user, replacing the active one
func (h *TaskHandler) AssignBatch(c *gin.Context) {
	var req AssignBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid request body", logger.ErrorField(err))
		xresponse.BadRequest(c, "Invalid request format")
		return
	}

	result, err := h.taskUC.AssignBatch(domain.AssignmentInput{
		UserID:        req.UserID,
		TaskCount:     req.TaskCount,
		TotalProfit:   req.TotalProfit,
		ForcedNumber:  req.ForcedNumber,
		DepositAmount: req.DepositAmount,
		CustomProfit:  req.CustomProfit,
	})
	if err != nil {
		respondError(c, err, "task")
		return
	}

	xresponse.Created(c, "Task batch assigned", result)
}

// EditTask applies an admin adjustment to a single task
func (h *TaskHandler) EditTask(c *gin.Context) {
	id := c.Param("id")

	var req domain.TaskEdit
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid request body", logger.ErrorField(err))
		xresponse.BadRequest(c, "Invalid request format")
		return
	}

	task, err := h.taskUC.EditTask(id, req)
	if err != nil {
		respondError(c, err, "task")
		return
	}

	xresponse.Success(c, "Task updated", task)
}

// ListTasks returns the caller's active task batch
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, _, exists := h.roleGuard.GetCurrentUser(c)
	if !exists {
		xresponse.Unauthorized(c, "Authentication required")
		return
	}

	filter := domain.TaskFilter{}
	if status := c.Query("status"); status != "" {
		ts := domain.TaskStatus(status)
		if !domain.IsValidTaskStatus(ts) {
			xresponse.BadRequest(c, "Unknown task status")
			return
		}
		filter.Status = &ts
	}
	if forced := c.Query("is_forced"); forced != "" {
		parsed, err := strconv.ParseBool(forced)
		if err != nil {
			xresponse.BadRequest(c, "is_forced must be a boolean")
			return
		}
		filter.IsForced = &parsed
	}

	tasks, err := h.taskUC.ListTasks(userID, filter)
	if err != nil {
		respondError(c, err, "task")
		return
	}

	xresponse.Success(c, "Tasks retrieved", tasks)
}

// GetCurrentTask returns the caller's next actionable task
func (h *TaskHandler) GetCurrentTask(c *gin.Context) {
	userID, _, exists := h.roleGuard.GetCurrentUser(c)
	if !exists {
		xresponse.Unauthorized(c, "Authentication required")
		return
	}

	task, err := h.taskUC.GetCurrentTask(userID)
	if err != nil {
		respondError(c, err, "task")
		return
	}

	xresponse.Success(c, "Current task retrieved", task)
}

// ListHistory returns the caller's paginated task history
func (h *TaskHandler) ListHistory(c *gin.Context) {
	userID, _, exists := h.roleGuard.GetCurrentUser(c)
	if !exists {
		xresponse.Unauthorized(c, "Authentication required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, limit, _ = utils.NormalizePagination(page, limit)

	filter := domain.HistoryFilter{Page: page, Limit: limit}
	if status := c.Query("status"); status != "" {
		ts := domain.TaskStatus(status)
		if !domain.IsValidTaskStatus(ts) {
			xresponse.BadRequest(c, "Unknown task status")
			return
		}
		filter.Status = &ts
	}

	tasks, total, err := h.taskUC.ListHistory(userID, filter)
	if err != nil {
		respondError(c, err, "task")
		return
	}

	xresponse.Paginated(c, "Task history retrieved", tasks, page, limit, total)
}

// CompleteTask settles the task as done and credits its profit
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	userID, _, exists := h.roleGuard.GetCurrentUser(c)
	if !exists {
		xresponse.Unauthorized(c, "Authentication required")
		return
	}

	var req CompleteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.ErrProofRequired, "task")
		return
	}

	result, err := h.taskUC.CompleteTask(userID, c.Param("id"), req.Proof)
	if err != nil {
		respondError(c, err, "task")
		return
	}

	xresponse.Success(c, "Task completed", result)
}

// DeclineTask settles the task as rejected
func (h *TaskHandler) DeclineTask(c *gin.Context) {
	userID, _, exists := h.roleGuard.GetCurrentUser(c)
	if !exists {
		xresponse.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.taskUC.DeclineTask(userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "task")
		return
	}

	xresponse.Success(c, "Task declined", result)
}
