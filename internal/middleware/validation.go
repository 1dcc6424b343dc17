package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/ayushgpt/facalloc/internal/app/models/dto"
)

var validate = validator.New()

// ValidateStruct runs the request DTO through the shared validator instance.
func ValidateStruct(obj interface{}) error {
	return validate.Struct(obj)
}

// HandleBindingError turns a binding or validation failure into the standard
// 400 response, with per-field details when the validator produced them.
func HandleBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]dto.ErrorDetail, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, dto.ErrorDetail{
				Code:     dto.ErrorCodeValidationFailed,
				Message:  "failed on rule " + fe.Tag(),
				Field:    fe.Field(),
				Severity: dto.ErrorSeverityError,
			})
		}
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Request validation failed")
		errorDetail = errorDetail.WithDetails(details)
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		c.Abort()
		return
	}

	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
	errorDetail = errorDetail.WithDetails(err.Error())
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
	c.Abort()
}
