package controllers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ayushgpt/facalloc/internal/app/controllers"
	"github.com/ayushgpt/facalloc/internal/app/routes"
	"github.com/ayushgpt/facalloc/internal/app/services"
	"github.com/ayushgpt/facalloc/internal/config"
	"github.com/ayushgpt/facalloc/internal/pkg/filestorage"
)

const uploadCSV = `Roll,Name,Email,CGPA,Dr. Rao,Dr. Sen
r1,One,one@x.edu,9.0,1,2
r2,Two,two@x.edu,8.0,1,2
`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	storage, err := filestorage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	defaults := config.AllocationConfig{AnchorColumn: "CGPA", SelectionMode: "auto"}
	svc := services.NewAllocationService(services.NewRunStore(), storage, defaults, zerolog.Nop())

	router := gin.New()
	routes.SetupRouter(router, controllers.NewAllocationController(svc))
	return router
}

func multipartUpload(t *testing.T, csvBody string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", "input.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(csvBody))
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

type runEnvelope struct {
	Data struct {
		ID           string `json:"id"`
		StudentCount int    `json:"studentCount"`
		FacultyCount int    `json:"facultyCount"`
		Faculties    []struct {
			Faculty  string `json:"faculty"`
			Capacity int    `json:"capacity"`
			Load     int    `json:"load"`
		} `json:"faculties"`
		Assignments []struct {
			Roll      string `json:"roll"`
			Allocated string `json:"allocated"`
		} `json:"assignments"`
		Downloads struct {
			Result string `json:"result"`
			Tally  string `json:"tally"`
		} `json:"downloads"`
	} `json:"data"`
}

func postAllocation(t *testing.T, router *gin.Engine, csvBody string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartUpload(t, csvBody, fields)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/allocations", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRunAllocation_Created(t *testing.T) {
	router := newTestRouter(t)

	w := postAllocation(t, router, uploadCSV, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var env runEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotEmpty(t, env.Data.ID)
	require.Equal(t, 2, env.Data.StudentCount)
	require.Equal(t, 2, env.Data.FacultyCount)
	require.Len(t, env.Data.Assignments, 2)
	require.Equal(t, "r1", env.Data.Assignments[0].Roll)
	require.Equal(t, "Dr. Rao", env.Data.Assignments[0].Allocated)
	require.Equal(t, "Dr. Sen", env.Data.Assignments[1].Allocated)
	require.NotEmpty(t, env.Data.Downloads.Result)
	require.NotEmpty(t, env.Data.Downloads.Tally)
}

func TestRunAllocation_ThenFetchAndDownload(t *testing.T) {
	router := newTestRouter(t)

	w := postAllocation(t, router, uploadCSV, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var env runEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))

	// Summary endpoint returns the same run.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/allocations/"+env.Data.ID, nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	require.Equal(t, http.StatusOK, w2.Code)

	// Allocation CSV download.
	req = httptest.NewRequest(http.MethodGet, env.Data.Downloads.Result, nil)
	w3 := httptest.NewRecorder()
	router.ServeHTTP(w3, req)
	require.Equal(t, http.StatusOK, w3.Code)
	require.Contains(t, w3.Header().Get("Content-Disposition"), "attachment")
	require.Contains(t, w3.Body.String(), "Roll,Name,Email,CGPA,Allocated")
	require.Contains(t, w3.Body.String(), "r1,One,one@x.edu,9,Dr. Rao")

	// Tally CSV download.
	req = httptest.NewRequest(http.MethodGet, env.Data.Downloads.Tally, nil)
	w4 := httptest.NewRecorder()
	router.ServeHTTP(w4, req)
	require.Equal(t, http.StatusOK, w4.Code)
	require.Contains(t, w4.Body.String(), "Fac,Count Pref 1,Count Pref 2")
}

func TestRunAllocation_ManualSelection(t *testing.T) {
	router := newTestRouter(t)

	w := postAllocation(t, router, uploadCSV, map[string]string{
		"autoDetect":   "false",
		"facultyCount": "1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var env runEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Equal(t, 1, env.Data.FacultyCount)
	require.Equal(t, "Dr. Rao", env.Data.Faculties[0].Faculty)
	require.Equal(t, 2, env.Data.Faculties[0].Load)
}

func TestRunAllocation_NoFacultyColumns(t *testing.T) {
	router := newTestRouter(t)

	w := postAllocation(t, router, "Roll,Name,Email,CGPA\nr1,One,one@x.edu,9.0\n", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "CFG_001")
}

func TestRunAllocation_MissingColumns(t *testing.T) {
	router := newTestRouter(t)

	w := postAllocation(t, router, "Roll,Name,Score,F1\nr1,One,9.0,1\n", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "CFG_002")
	require.Contains(t, w.Body.String(), "CGPA")
}

func TestRunAllocation_FileMissing(t *testing.T) {
	router := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/allocations", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "VAL_001")
}

func TestGetRun_NotFound(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/allocations/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "RES_001")
}

func TestDeleteRun(t *testing.T) {
	router := newTestRouter(t)

	w := postAllocation(t, router, uploadCSV, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var env runEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/allocations/"+env.Data.ID, nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	require.Equal(t, http.StatusOK, w2.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/allocations/"+env.Data.ID, nil)
	w3 := httptest.NewRecorder()
	router.ServeHTTP(w3, req)
	require.Equal(t, http.StatusNotFound, w3.Code)
}
