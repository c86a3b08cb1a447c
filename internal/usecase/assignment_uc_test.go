package usecase

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/adityarizkyr/reviora/internal/domain"
)

func ptrInt(v int) *int           { return &v }
func ptrFloat(v float64) *float64 { return &v }
func ptrBool(v bool) *bool        { return &v }
func ptrString(v string) *string  { return &v }

func activeProduct(id, name string) *domain.Product {
	return &domain.Product{ID: id, Name: name, IsActive: true}
}

func assignableUser(id string) *domain.User {
	return &domain.User{ID: id, CanReceiveTasks: true, NextTaskNumber: 1}
}

func newAssignmentFixture(users []*domain.User, products []*domain.Product) (domain.TaskUsecase, *fakeTaskRepo) {
	taskRepo := &fakeTaskRepo{tasks: map[string]*domain.UserTask{}}
	uc := NewTaskUsecase(
		taskRepo,
		newFakeUserRepo(users...),
		&fakeProductRepo{products: products},
		&fakeCacheRepo{},
		rand.NewSource(1),
	)
	return uc, taskRepo
}

func TestAssignBatchSplitsProfitEvenly(t *testing.T) {
	uc, taskRepo := newAssignmentFixture(
		[]*domain.User{assignableUser("u1")},
		[]*domain.Product{activeProduct("p1", "Phone"), activeProduct("p2", "Laptop")},
	)

	result, err := uc.AssignBatch(domain.AssignmentInput{
		UserID:      "u1",
		TaskCount:   5,
		TotalProfit: 100,
	})
	if err != nil {
		t.Fatalf("AssignBatch: %v", err)
	}

	if len(result.Tasks) != 5 {
		t.Fatalf("task count = %d, want 5", len(result.Tasks))
	}
	for i, task := range result.Tasks {
		if task.TaskNumber != i+1 {
			t.Errorf("task %d has number %d", i, task.TaskNumber)
		}
		if task.ProfitAmount != 20 {
			t.Errorf("task %d profit = %v, want 20", i, task.ProfitAmount)
		}
		if task.IsForced {
			t.Errorf("task %d unexpectedly forced", i)
		}
		if task.Status != domain.TaskStatusAssigned || !task.IsActive {
			t.Errorf("task %d not assigned/active", i)
		}
	}

	if result.Stats.TotalProfit != 100 || result.Stats.ForcedCount != 0 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if taskRepo.replacedUserID != "u1" {
		t.Errorf("ReplaceBatch user = %q", taskRepo.replacedUserID)
	}
	if taskRepo.replacedNext != 6 {
		t.Errorf("next task number = %d, want 6", taskRepo.replacedNext)
	}
}

func TestAssignBatchForcedTask(t *testing.T) {
	uc, _ := newAssignmentFixture(
		[]*domain.User{assignableUser("u1")},
		[]*domain.Product{activeProduct("p1", "Phone")},
	)

	result, err := uc.AssignBatch(domain.AssignmentInput{
		UserID:        "u1",
		TaskCount:     4,
		TotalProfit:   40,
		ForcedNumber:  ptrInt(3),
		DepositAmount: ptrFloat(500),
		CustomProfit:  ptrFloat(75),
	})
	if err != nil {
		t.Fatalf("AssignBatch: %v", err)
	}

	forced := 0
	for _, task := range result.Tasks {
		if !task.IsForced {
			if task.ProfitAmount != 10 {
				t.Errorf("regular task %d profit = %v, want 10", task.TaskNumber, task.ProfitAmount)
			}
			if task.DepositAmount != nil {
				t.Errorf("regular task %d carries a deposit", task.TaskNumber)
			}
			continue
		}
		forced++
		if task.TaskNumber != 3 {
			t.Errorf("forced task at number %d, want 3", task.TaskNumber)
		}
		if task.DepositAmount == nil || *task.DepositAmount != 500 {
			t.Errorf("forced deposit = %v, want 500", task.DepositAmount)
		}
		if task.DepositStatus == nil || *task.DepositStatus != domain.TaskDepositPending {
			t.Errorf("forced deposit status = %v, want pending", task.DepositStatus)
		}
		if task.ProfitAmount != 75 {
			t.Errorf("forced profit = %v, want custom 75", task.ProfitAmount)
		}
	}
	if forced != 1 {
		t.Fatalf("forced count = %d, want 1", forced)
	}
	if result.Stats.ForcedCount != 1 {
		t.Errorf("stats forced count = %d", result.Stats.ForcedCount)
	}
	// 3 regular tasks at 10 plus the custom 75
	if result.Stats.TotalProfit != 105 {
		t.Errorf("stats total profit = %v, want 105", result.Stats.TotalProfit)
	}
}

func TestAssignBatchValidation(t *testing.T) {
	blocked := assignableUser("blocked")
	blocked.IsBlocked = true
	disabled := assignableUser("disabled")
	disabled.CanReceiveTasks = false

	uc, _ := newAssignmentFixture(
		[]*domain.User{assignableUser("u1"), blocked, disabled},
		[]*domain.Product{activeProduct("p1", "Phone")},
	)

	cases := []struct {
		name    string
		input   domain.AssignmentInput
		wantErr error
	}{
		{
			name:    "unknown user",
			input:   domain.AssignmentInput{UserID: "ghost", TaskCount: 3, TotalProfit: 30},
			wantErr: domain.ErrUserNotFound,
		},
		{
			name:    "blocked user",
			input:   domain.AssignmentInput{UserID: "blocked", TaskCount: 3, TotalProfit: 30},
			wantErr: domain.ErrUserBlocked,
		},
		{
			name:    "tasks disabled",
			input:   domain.AssignmentInput{UserID: "disabled", TaskCount: 3, TotalProfit: 30},
			wantErr: domain.ErrTasksDisabled,
		},
		{
			name:    "zero task count",
			input:   domain.AssignmentInput{UserID: "u1", TaskCount: 0, TotalProfit: 30},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "non-positive profit",
			input:   domain.AssignmentInput{UserID: "u1", TaskCount: 3, TotalProfit: 0},
			wantErr: domain.ErrValidation,
		},
		{
			name: "forced number out of range",
			input: domain.AssignmentInput{
				UserID: "u1", TaskCount: 3, TotalProfit: 30,
				ForcedNumber: ptrInt(4), DepositAmount: ptrFloat(100),
			},
			wantErr: domain.ErrValidation,
		},
		{
			name: "forced without deposit",
			input: domain.AssignmentInput{
				UserID: "u1", TaskCount: 3, TotalProfit: 30,
				ForcedNumber: ptrInt(2),
			},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.AssignBatch(tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestAssignBatchNoActiveProducts(t *testing.T) {
	uc, _ := newAssignmentFixture(
		[]*domain.User{assignableUser("u1")},
		[]*domain.Product{{ID: "p1", Name: "Retired", IsActive: false}},
	)

	_, err := uc.AssignBatch(domain.AssignmentInput{UserID: "u1", TaskCount: 3, TotalProfit: 30})
	if !errors.Is(err, domain.ErrNoActiveProducts) {
		t.Fatalf("err = %v, want ErrNoActiveProducts", err)
	}
}

func TestAssignBatchDeactivatesPriorBatch(t *testing.T) {
	uc, taskRepo := newAssignmentFixture(
		[]*domain.User{assignableUser("u1")},
		[]*domain.Product{activeProduct("p1", "Phone")},
	)

	first, err := uc.AssignBatch(domain.AssignmentInput{UserID: "u1", TaskCount: 3, TotalProfit: 30})
	if err != nil {
		t.Fatalf("AssignBatch: %v", err)
	}
	second, err := uc.AssignBatch(domain.AssignmentInput{UserID: "u1", TaskCount: 2, TotalProfit: 20})
	if err != nil {
		t.Fatalf("AssignBatch: %v", err)
	}

	for _, old := range first.Tasks {
		stored := taskRepo.tasks[old.ID]
		if stored.IsActive {
			t.Errorf("task %d of the replaced batch still active", stored.TaskNumber)
		}
		if stored.ReplacedByID == nil || *stored.ReplacedByID != second.Tasks[0].ID {
			t.Errorf("task %d replaced_by = %v, want %q", stored.TaskNumber, stored.ReplacedByID, second.Tasks[0].ID)
		}
	}

	active, err := uc.ListTasks("u1", domain.TaskFilter{})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("active tasks = %d, want only the new batch", len(active))
	}
	for _, task := range active {
		if task.ReplacedByID != nil {
			t.Errorf("new task %d carries a replaced_by link", task.TaskNumber)
		}
	}
}

func TestAssignBatchSeededSelectionIsReproducible(t *testing.T) {
	products := []*domain.Product{
		activeProduct("p1", "Phone"),
		activeProduct("p2", "Laptop"),
		activeProduct("p3", "Watch"),
	}
	input := domain.AssignmentInput{UserID: "u1", TaskCount: 6, TotalProfit: 60}

	ucA, _ := newAssignmentFixture([]*domain.User{assignableUser("u1")}, products)
	ucB, _ := newAssignmentFixture([]*domain.User{assignableUser("u1")}, products)

	resultA, err := ucA.AssignBatch(input)
	if err != nil {
		t.Fatalf("AssignBatch: %v", err)
	}
	resultB, err := ucB.AssignBatch(input)
	if err != nil {
		t.Fatalf("AssignBatch: %v", err)
	}

	for i := range resultA.Tasks {
		if resultA.Tasks[i].ProductID != resultB.Tasks[i].ProductID {
			t.Fatalf("task %d product differs: %q vs %q",
				i, resultA.Tasks[i].ProductID, resultB.Tasks[i].ProductID)
		}
	}
}

func TestAssignBatchUnevenSplitSumsToTotal(t *testing.T) {
	uc, _ := newAssignmentFixture(
		[]*domain.User{assignableUser("u1")},
		[]*domain.Product{activeProduct("p1", "Phone")},
	)

	result, err := uc.AssignBatch(domain.AssignmentInput{UserID: "u1", TaskCount: 3, TotalProfit: 100})
	if err != nil {
		t.Fatalf("AssignBatch: %v", err)
	}
	for _, task := range result.Tasks[:2] {
		if task.ProfitAmount != 33.33 {
			t.Errorf("task %d profit = %v, want 33.33", task.TaskNumber, task.ProfitAmount)
		}
	}
	// The last task absorbs the rounding remainder.
	if last := result.Tasks[2]; last.ProfitAmount != 33.34 {
		t.Errorf("last task profit = %v, want 33.34", last.ProfitAmount)
	}
	if result.Stats.TotalProfit != 100 {
		t.Errorf("stats total = %v, want exactly 100", result.Stats.TotalProfit)
	}
}

func TestEditTaskKeepsForcedDepositInvariant(t *testing.T) {
	taskRepo := &fakeTaskRepo{tasks: map[string]*domain.UserTask{
		"t1": {ID: "t1", UserID: "u1", Status: domain.TaskStatusAssigned, ProfitAmount: 10},
	}}
	uc := NewTaskUsecase(taskRepo, newFakeUserRepo(), &fakeProductRepo{}, &fakeCacheRepo{}, rand.NewSource(1))

	_, err := uc.EditTask("t1", domain.TaskEdit{IsForced: ptrBool(true)})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("forcing without deposit: err = %v, want ErrValidation", err)
	}

	updated, err := uc.EditTask("t1", domain.TaskEdit{
		IsForced:      ptrBool(true),
		DepositAmount: ptrFloat(250),
	})
	if err != nil {
		t.Fatalf("EditTask: %v", err)
	}
	if !updated.IsForced || updated.DepositAmount == nil || *updated.DepositAmount != 250 {
		t.Errorf("updated task = %+v", updated)
	}

	badStatus := domain.TaskStatus("weird")
	if _, err := uc.EditTask("t1", domain.TaskEdit{Status: &badStatus}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("unknown status: err = %v, want ErrValidation", err)
	}

	if _, err := uc.EditTask("missing", domain.TaskEdit{}); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("missing task: err = %v, want ErrTaskNotFound", err)
	}
}
