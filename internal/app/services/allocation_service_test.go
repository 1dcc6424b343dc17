package services_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ayushgpt/facalloc/internal/app/services"
	"github.com/ayushgpt/facalloc/internal/config"
	"github.com/ayushgpt/facalloc/internal/pkg/apperrors"
	"github.com/ayushgpt/facalloc/internal/pkg/filestorage"
)

const serviceCSV = `Roll,Name,Email,CGPA,Dr. Rao,Dr. Sen
r1,One,one@x.edu,9.0,1,2
r2,Two,two@x.edu,8.5,1,2
r3,Three,three@x.edu,8.0,2,1
r4,Four,four@x.edu,7.5,,
`

func newService(t *testing.T) services.AllocationService {
	t.Helper()
	return newServiceWithDefaults(t, config.AllocationConfig{AnchorColumn: "CGPA", SelectionMode: "auto"})
}

func newServiceWithDefaults(t *testing.T, defaults config.AllocationConfig) services.AllocationService {
	t.Helper()
	storage, err := filestorage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return services.NewAllocationService(services.NewRunStore(), storage, defaults, zerolog.Nop())
}

func boolPtr(b bool) *bool { return &b }

func TestRun_EndToEnd(t *testing.T) {
	svc := newService(t)

	run, err := svc.Run(context.Background(), strings.NewReader(serviceCSV), services.RunOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, run.ID)
	require.Equal(t, 4, run.StudentCount)
	require.Equal(t, []string{"Dr. Rao", "Dr. Sen"}, run.Faculties)

	// Capacities 2/2; r1 and r2 take Rao, r3 takes Sen, r4 falls back to Sen.
	require.Equal(t, 2, run.Result.Loads["Dr. Rao"])
	require.Equal(t, 2, run.Result.Loads["Dr. Sen"])
	require.Equal(t, 1, run.Result.Fallback)

	require.NotNil(t, run.Tally)
	require.Len(t, run.Tally.Rows, 2)

	// Both output files are on disk.
	for _, path := range []string{run.ResultPath, run.TallyPath} {
		require.NotEmpty(t, path)
		_, err := os.Stat(path)
		require.NoError(t, err)
	}

	// The stored run is retrievable.
	got, err := svc.GetRun(context.Background(), run.ID)
	require.NoError(t, err)
	require.Equal(t, run.ID, got.ID)
}

func TestRun_ManualSelectionClampsWithWarning(t *testing.T) {
	svc := newService(t)

	run, err := svc.Run(context.Background(), strings.NewReader(serviceCSV), services.RunOptions{AutoDetect: boolPtr(false), FacultyCount: 9})
	require.NoError(t, err)
	require.Len(t, run.Faculties, 2)
	require.NotEmpty(t, run.Warnings)
	require.Contains(t, run.Warnings[0], "only 2 found")
}

func TestRun_ManualPrefixSelection(t *testing.T) {
	svc := newService(t)

	run, err := svc.Run(context.Background(), strings.NewReader(serviceCSV), services.RunOptions{AutoDetect: boolPtr(false), FacultyCount: 1})
	require.NoError(t, err)
	require.Equal(t, []string{"Dr. Rao"}, run.Faculties)
	// A single faculty column means everyone lands on it, preference or not.
	require.Equal(t, 4, run.Result.Loads["Dr. Rao"])
}

func TestRun_ConfiguredManualDefaultApplies(t *testing.T) {
	svc := newServiceWithDefaults(t, config.AllocationConfig{
		AnchorColumn:  "CGPA",
		SelectionMode: "manual",
		FacultyCount:  1,
	})

	// No request overrides: the configured manual selection takes effect.
	run, err := svc.Run(context.Background(), strings.NewReader(serviceCSV), services.RunOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{"Dr. Rao"}, run.Faculties)
}

func TestRun_RequestOverridesConfiguredMode(t *testing.T) {
	svc := newServiceWithDefaults(t, config.AllocationConfig{
		AnchorColumn:  "CGPA",
		SelectionMode: "manual",
		FacultyCount:  1,
	})

	run, err := svc.Run(context.Background(), strings.NewReader(serviceCSV), services.RunOptions{AutoDetect: boolPtr(true)})
	require.NoError(t, err)
	require.Equal(t, []string{"Dr. Rao", "Dr. Sen"}, run.Faculties)
}

func TestRun_NoFacultyColumns(t *testing.T) {
	svc := newService(t)

	in := "Roll,Name,Email,CGPA\nr1,One,one@x.edu,9.0\n"
	_, err := svc.Run(context.Background(), strings.NewReader(in), services.RunOptions{})
	require.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestRun_MissingAnchorColumn(t *testing.T) {
	svc := newService(t)

	in := "Roll,Name,Email,Score,F1\nr1,One,one@x.edu,9.0,1\n"
	_, err := svc.Run(context.Background(), strings.NewReader(in), services.RunOptions{})
	require.ErrorIs(t, err, apperrors.ErrMissingColumn)
	require.Contains(t, err.Error(), "CGPA")
}

func TestGetRun_NotFound(t *testing.T) {
	svc := newService(t)
	_, err := svc.GetRun(context.Background(), "missing")
	require.ErrorIs(t, err, apperrors.ErrRunNotFound)
}

func TestDeleteRun(t *testing.T) {
	svc := newService(t)

	run, err := svc.Run(context.Background(), strings.NewReader(serviceCSV), services.RunOptions{})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRun(context.Background(), run.ID))
	_, err = svc.GetRun(context.Background(), run.ID)
	require.ErrorIs(t, err, apperrors.ErrRunNotFound)
	_, err = os.Stat(run.ResultPath)
	require.True(t, os.IsNotExist(err))

	require.ErrorIs(t, svc.DeleteRun(context.Background(), run.ID), apperrors.ErrRunNotFound)
}
