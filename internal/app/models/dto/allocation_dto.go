package dto

import (
	"time"

	"github.com/ayushgpt/facalloc/internal/app/models"
)

// RunAllocationRequest carries the form options accompanying the uploaded
// table. Both fields are optional overrides of the configured selection
// defaults: omitting them runs with the server-side configuration.
type RunAllocationRequest struct {
	AutoDetect   *bool `form:"autoDetect"`
	FacultyCount int   `form:"facultyCount" validate:"omitempty,min=1"`
}

// FacultyLoad is one faculty's capacity and final load.
type FacultyLoad struct {
	Faculty  string `json:"faculty" example:"Dr. Rao"`
	Capacity int    `json:"capacity" example:"5"`
	Load     int    `json:"load" example:"5"`
}

// AssignmentRow is one row of the allocation output table.
type AssignmentRow struct {
	Roll      string  `json:"roll" example:"21CS001"`
	Name      string  `json:"name" example:"Asha"`
	Email     string  `json:"email" example:"asha@example.edu"`
	CGPA      float64 `json:"cgpa" example:"9.1"`
	Allocated string  `json:"allocated" example:"Dr. Rao"`
}

// TallyRowData is one row of the preference tally table.
type TallyRowData struct {
	Faculty string `json:"faculty" example:"Dr. Rao"`
	Counts  []int  `json:"counts"`
}

// RunDownloads holds the download URLs for a run's output tables.
type RunDownloads struct {
	Result string `json:"result" example:"/api/v1/allocations/6e1f/result"`
	Tally  string `json:"tally,omitempty" example:"/api/v1/allocations/6e1f/tally"`
}

// RunSummaryResponse is the API view of a completed allocation run.
type RunSummaryResponse struct {
	ID            string          `json:"id" example:"6e1fb9ce-6b9d-4c3a-b3ff-1f0a3c1f8f2f"`
	CreatedAt     time.Time       `json:"createdAt"`
	StudentCount  int             `json:"studentCount" example:"120"`
	FacultyCount  int             `json:"facultyCount" example:"18"`
	FallbackCount int             `json:"fallbackCount" example:"3"`
	Faculties     []FacultyLoad   `json:"faculties"`
	Assignments   []AssignmentRow `json:"assignments"`
	Tally         []TallyRowData  `json:"tally,omitempty"`
	Warnings      []string        `json:"warnings,omitempty"`
	Downloads     RunDownloads    `json:"downloads"`
}

// NewRunSummaryResponse builds the API view from a stored run.
func NewRunSummaryResponse(run *models.Run) *RunSummaryResponse {
	resp := &RunSummaryResponse{
		ID:            run.ID,
		CreatedAt:     run.CreatedAt,
		StudentCount:  run.StudentCount,
		FacultyCount:  len(run.Faculties),
		FallbackCount: run.Result.Fallback,
		Faculties:     make([]FacultyLoad, 0, len(run.Faculties)),
		Assignments:   make([]AssignmentRow, 0, len(run.Result.Assignments)),
		Warnings:      run.Warnings,
		Downloads: RunDownloads{
			Result: "/api/v1/allocations/" + run.ID + "/result",
		},
	}

	for _, fac := range run.Faculties {
		resp.Faculties = append(resp.Faculties, FacultyLoad{
			Faculty:  fac,
			Capacity: run.Result.Capacities[fac],
			Load:     run.Result.Loads[fac],
		})
	}

	for _, a := range run.Result.Assignments {
		resp.Assignments = append(resp.Assignments, AssignmentRow{
			Roll:      a.Roll,
			Name:      a.Name,
			Email:     a.Email,
			CGPA:      a.CGPA,
			Allocated: a.Faculty,
		})
	}

	if run.Tally != nil {
		resp.Tally = make([]TallyRowData, 0, len(run.Tally.Rows))
		for _, row := range run.Tally.Rows {
			resp.Tally = append(resp.Tally, TallyRowData{Faculty: row.Faculty, Counts: row.Counts})
		}
		resp.Downloads.Tally = "/api/v1/allocations/" + run.ID + "/tally"
	}

	return resp
}
