package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/adityarizkyr/reviora/internal/domain"
)

func TestRespondErrorTaxonomy(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("%w: task count must be at least 1", domain.ErrValidation), http.StatusBadRequest},
		{"proof required", domain.ErrProofRequired, http.StatusBadRequest},
		{"user blocked", domain.ErrUserBlocked, http.StatusBadRequest},
		{"no active products", domain.ErrNoActiveProducts, http.StatusBadRequest},
		{"task not actionable", domain.ErrTaskNotActionable, http.StatusBadRequest},
		{"no withdrawal address", domain.ErrNoWithdrawalAddress, http.StatusBadRequest},
		{"below withdrawal minimum", domain.ErrBelowWithdrawalMinimum, http.StatusBadRequest},
		{"insufficient profit", domain.ErrInsufficientProfitBalance, http.StatusBadRequest},
		{"deposit already resolved", domain.ErrDepositAlreadyResolved, http.StatusBadRequest},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"task not found", domain.ErrTaskNotFound, http.StatusNotFound},
		{"vip level not found", domain.ErrVipLevelNotFound, http.StatusNotFound},
		{"email taken", domain.ErrEmailTaken, http.StatusConflict},
		{"username taken", domain.ErrUsernameTaken, http.StatusConflict},
		{"product in use", domain.ErrProductInUse, http.StatusConflict},
		{"unknown", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)

			respondError(c, tc.err, "test")
			if recorder.Code != tc.want {
				t.Fatalf("status = %d, want %d", recorder.Code, tc.want)
			}
		})
	}
}
