package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
	"github.com/adityarizkyr/reviora/pkg/metrics"
	"github.com/adityarizkyr/reviora/pkg/xresponse"
)

// respondError maps domain sentinels onto the HTTP error taxonomy: bad input
// and failed preconditions are 400, missing entities 404, uniqueness and
// reference conflicts 409. Anything unmatched is an internal error whose
// detail stays behind the development-mode flag.
func respondError(c *gin.Context, err error, component string) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrProofRequired),
		errors.Is(err, domain.ErrUserBlocked),
		errors.Is(err, domain.ErrTasksDisabled),
		errors.Is(err, domain.ErrNoActiveProducts),
		errors.Is(err, domain.ErrTaskNotActionable),
		errors.Is(err, domain.ErrNoWithdrawalAddress),
		errors.Is(err, domain.ErrBelowWithdrawalMinimum),
		errors.Is(err, domain.ErrInsufficientProfitBalance),
		errors.Is(err, domain.ErrDepositAlreadyResolved),
		errors.Is(err, domain.ErrWithdrawalAlreadyResolved):
		xresponse.BadRequest(c, err.Error())

	case errors.Is(err, domain.ErrInvalidCredentials):
		xresponse.Unauthorized(c, err.Error())

	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrDepositNotFound),
		errors.Is(err, domain.ErrWithdrawalNotFound),
		errors.Is(err, domain.ErrVipLevelNotFound),
		errors.Is(err, domain.ErrNotificationNotFound):
		xresponse.NotFound(c, err.Error())

	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrProductInUse):
		xresponse.Conflict(c, err.Error())

	default:
		logger.Error("Unhandled error",
			logger.String("component", component),
			logger.ErrorField(err),
		)
		metrics.RecordSystemError("internal", component)
		xresponse.Internal(c, "Internal server error", err)
	}
}
