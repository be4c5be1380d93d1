package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
	"github.com/yukikurage/taskboard-api/internal/services"
)

// respondServiceError maps service errors to responses. Anything
// unrecognized becomes a 500 carrying faultMessage and the error text.
func respondServiceError(c *gin.Context, err error, faultMessage string) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrCategoryNotFound):
		apierrors.NotFound(c, "Category not found")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrCategoryHasTasks):
		apierrors.Conflict(c, "Category has associated tasks")
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalErrorWithCause(c, faultMessage, err)
	}
}
