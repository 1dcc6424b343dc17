package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ayushgpt/facalloc/internal/app/models/dto"
	"github.com/ayushgpt/facalloc/internal/app/services"
	"github.com/ayushgpt/facalloc/internal/middleware"
	"github.com/ayushgpt/facalloc/internal/pkg/apperrors"
	"github.com/ayushgpt/facalloc/internal/pkg/filestorage"
)

// AllocationController handles allocation run operations
type AllocationController struct {
	allocationService services.AllocationService
}

// NewAllocationController creates a new AllocationController
func NewAllocationController(allocationService services.AllocationService) *AllocationController {
	return &AllocationController{
		allocationService: allocationService,
	}
}

// RunAllocation executes an allocation over an uploaded table
// @Summary Run an allocation
// @Description Uploads a student preference table and runs the merit-ordered allocation over it
// @Tags allocations
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Input CSV (Roll, Name, Email, CGPA, faculty columns)"
// @Param autoDetect formData bool false "Use every column after the anchor as a faculty column (default true)"
// @Param facultyCount formData int false "Number of faculty columns when autoDetect is false"
// @Success 201 {object} dto.APIResponse{data=dto.RunSummaryResponse} "Allocation completed"
// @Failure 400 {object} dto.ErrorResponse "Configuration or input error"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /allocations [post]
func (c *AllocationController) RunAllocation(ctx *gin.Context) {
	var req dto.RunAllocationRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	if err := middleware.ValidateStruct(req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Input CSV file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("could not read uploaded file"))
		return
	}
	defer file.Close()

	opts := services.RunOptions{
		AutoDetect:   req.AutoDetect,
		FacultyCount: req.FacultyCount,
	}

	run, err := c.allocationService.Run(ctx, file, opts)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.NewRunSummaryResponse(run),
		Timestamp: time.Now(),
	})
}

// GetRun retrieves a completed run's summary
// @Summary Get run summary
// @Description Retrieves the summary of a completed allocation run
// @Tags allocations
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} dto.APIResponse{data=dto.RunSummaryResponse} "Run retrieved"
// @Failure 404 {object} dto.ErrorResponse "Run not found"
// @Router /allocations/{id} [get]
func (c *AllocationController) GetRun(ctx *gin.Context) {
	run, err := c.allocationService.GetRun(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewRunSummaryResponse(run),
		Timestamp: time.Now(),
	})
}

// DownloadResult serves the allocation output table
// @Summary Download allocation CSV
// @Description Downloads the Roll,Name,Email,CGPA,Allocated table for a run
// @Tags allocations
// @Produce text/csv
// @Param id path string true "Run ID"
// @Success 200 {file} file "Allocation CSV"
// @Failure 404 {object} dto.ErrorResponse "Run not found"
// @Router /allocations/{id}/result [get]
func (c *AllocationController) DownloadResult(ctx *gin.Context) {
	run, err := c.allocationService.GetRun(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.FileAttachment(run.ResultPath, filestorage.ResultFileName)
}

// DownloadTally serves the preference tally table
// @Summary Download preference tally CSV
// @Description Downloads the per-faculty preference count table for a run
// @Tags allocations
// @Produce text/csv
// @Param id path string true "Run ID"
// @Success 200 {file} file "Preference tally CSV"
// @Failure 404 {object} dto.ErrorResponse "Run or tally not found"
// @Router /allocations/{id}/tally [get]
func (c *AllocationController) DownloadTally(ctx *gin.Context) {
	run, err := c.allocationService.GetRun(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if run.TallyPath == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeRunNotFound, "Preference tally is not available for this run")
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))
		return
	}

	ctx.FileAttachment(run.TallyPath, filestorage.TallyFileName)
}

// DeleteRun removes a run and its stored files
// @Summary Delete a run
// @Description Removes a completed run from the registry along with its stored files
// @Tags allocations
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} dto.APIResponse "Run deleted"
// @Failure 404 {object} dto.ErrorResponse "Run not found"
// @Router /allocations/{id} [delete]
func (c *AllocationController) DeleteRun(ctx *gin.Context) {
	if err := c.allocationService.DeleteRun(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      nil,
		Timestamp: time.Now(),
	})
}
