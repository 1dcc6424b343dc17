package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ayushgpt/facalloc/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	allocationController *controllers.AllocationController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	allocations := v1.Group("/allocations")
	{
		allocations.POST("", allocationController.RunAllocation)
		allocations.GET("/:id", allocationController.GetRun)
		allocations.GET("/:id/result", allocationController.DownloadResult)
		allocations.GET("/:id/tally", allocationController.DownloadTally)
		allocations.DELETE("/:id", allocationController.DeleteRun)
	}
}
