package utils

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldError is one entry of the details array attached to validation failures.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error writes the standard error envelope.
func Error(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"error": message})
}

// ValidationError maps a gin binding error onto a 400 with field-level details.
func ValidationError(ctx *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, FieldError{
				Field:   strings.ToLower(fe.Field()),
				Message: fieldErrorMessage(fe),
			})
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": details})
		return
	}
	Error(ctx, http.StatusBadRequest, "Invalid input")
}

// Internal logs the underlying error and masks it from the client.
func Internal(ctx *gin.Context, msg string, err error) {
	if Sugar != nil {
		Sugar.Errorf("%s: %v", msg, err)
	}
	Error(ctx, http.StatusInternalServerError, "Internal server error")
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
