package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayushgpt/facalloc/internal/allocation"
	"github.com/ayushgpt/facalloc/internal/app/models/dto"
	"github.com/ayushgpt/facalloc/internal/pkg/apperrors"
)

// HandleAPIError maps application errors onto the HTTP error taxonomy:
// configuration and input errors are the caller's to fix (400), unknown runs
// are 404, anything unrecognized is a 500 with a generic message.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrMissingColumn):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeMissingColumn, err.Error(), err)
	case apperrors.Is(err, apperrors.ErrConfiguration, allocation.ErrNoFaculties):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeConfiguration, err.Error(), err)
	case apperrors.Is(err, apperrors.ErrMalformedTable, apperrors.ErrEmptyTable):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeMalformedTable, err.Error(), err)
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err.Error(), err)
	case errors.Is(err, apperrors.ErrRunNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeRunNotFound, "Allocation run not found", err)
	default:
		// Unexpected computation errors surface a generic message only.
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error", nil)
	}
}

// respondError writes the error envelope, surfacing any structured context a
// CustomError in the chain carries.
func respondError(c *gin.Context, status int, code dto.ErrorCode, message string, err error) {
	detail := dto.NewErrorDetail(code, message)

	var ce *apperrors.CustomError
	if err != nil && errors.As(err, &ce) && ce.Details != nil {
		detail = detail.WithDetails(ce.Details)
	}

	c.JSON(status, dto.APIResponse{Error: detail})
}
