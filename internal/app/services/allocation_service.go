package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ayushgpt/facalloc/internal/allocation"
	"github.com/ayushgpt/facalloc/internal/app/models"
	"github.com/ayushgpt/facalloc/internal/config"
	"github.com/ayushgpt/facalloc/internal/pkg/csvio"
	"github.com/ayushgpt/facalloc/internal/pkg/filestorage"
)

// RunOptions are the per-run faculty selection overrides supplied by the
// caller. A nil AutoDetect and a zero FacultyCount fall through to the
// configured defaults.
type RunOptions struct {
	AutoDetect   *bool
	FacultyCount int
}

// AllocationService defines the interface for allocation run operations
type AllocationService interface {
	Run(ctx context.Context, input io.Reader, opts RunOptions) (*models.Run, error)
	GetRun(ctx context.Context, id string) (*models.Run, error)
	DeleteRun(ctx context.Context, id string) error
}

// allocationServiceImpl implements the AllocationService interface
type allocationServiceImpl struct {
	store    *RunStore
	storage  *filestorage.LocalStorage
	defaults config.AllocationConfig
	logger   zerolog.Logger
}

// NewAllocationService creates a new allocation service instance. defaults
// supplies the anchor column and the faculty selection applied when a request
// carries no overrides.
func NewAllocationService(store *RunStore, storage *filestorage.LocalStorage, defaults config.AllocationConfig, logger zerolog.Logger) AllocationService {
	return &allocationServiceImpl{
		store:    store,
		storage:  storage,
		defaults: defaults,
		logger:   logger,
	}
}

// selection folds the per-request overrides into the configured defaults:
// AutoDetect switches the mode when set, FacultyCount replaces the configured
// count when positive.
func (s *allocationServiceImpl) selection(opts RunOptions) csvio.Selection {
	sel := csvio.Selection{AnchorColumn: s.defaults.AnchorColumn, Mode: csvio.SelectionAuto}

	manual := s.defaults.SelectionMode == string(csvio.SelectionManual)
	if opts.AutoDetect != nil {
		manual = !*opts.AutoDetect
	}
	if manual {
		sel.Mode = csvio.SelectionManual
		sel.Count = s.defaults.FacultyCount
		if opts.FacultyCount > 0 {
			sel.Count = opts.FacultyCount
		}
	}
	return sel
}

// Run executes one full allocation over the uploaded table: parse, select
// faculty columns, plan capacities, allocate, tally, persist the two output
// tables. Configuration and parse errors abort the run with no outputs; a
// tally failure degrades to a warning because the two passes are independent.
func (s *allocationServiceImpl) Run(ctx context.Context, input io.Reader, opts RunOptions) (*models.Run, error) {
	raw, err := io.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	table, err := csvio.ParseTable(bytes.NewReader(raw), s.defaults.AnchorColumn)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int("students", len(table.Students)).Int("columns", len(table.Columns)).Msg("Input table parsed")

	faculties, warnings, err := table.SelectFaculties(s.selection(opts))
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		s.logger.Warn().Str("warning", w).Msg("Faculty selection")
	}
	s.logger.Info().Int("faculties", len(faculties)).Msg("Faculty columns selected")

	result, err := allocation.Allocate(table.Students, faculties)
	if err != nil {
		return nil, err
	}
	if result.Fallback > 0 {
		s.logger.Warn().Int("count", result.Fallback).Msg("Students assigned by fallback pass")
	}

	// The tally is diagnostic: its failure never voids a finished allocation.
	tally, tallyWarnings, err := allocation.TallyPreferences(table.Students, faculties, table.Columns)
	if err != nil {
		s.logger.Error().Err(err).Msg("Preference tally failed")
		warnings = append(warnings, fmt.Sprintf("preference tally failed: %v", err))
		tally = nil
	}
	warnings = append(warnings, tallyWarnings...)

	run := &models.Run{
		ID:           uuid.New().String(),
		CreatedAt:    time.Now(),
		Faculties:    faculties,
		StudentCount: len(table.Students),
		Result:       result,
		Tally:        tally,
		Warnings:     warnings,
	}

	if err := s.persistRun(run, raw); err != nil {
		return nil, err
	}

	s.store.Put(run)
	s.logger.Info().Str("runId", run.ID).Int("assigned", len(result.Assignments)).Msg("Allocation run complete")
	return run, nil
}

// persistRun writes the input copy and the output tables for a run. The
// allocation CSV is mandatory; a tally write failure is downgraded to a
// warning on the run.
func (s *allocationServiceImpl) persistRun(run *models.Run, raw []byte) error {
	if _, err := s.storage.SaveInput(run.ID, bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("storing input copy: %w", err)
	}

	var resultBuf bytes.Buffer
	if err := csvio.WriteAllocation(&resultBuf, run.Result); err != nil {
		return fmt.Errorf("rendering allocation table: %w", err)
	}
	resultPath, err := s.storage.WriteOutput(run.ID, filestorage.ResultFileName, resultBuf.Bytes())
	if err != nil {
		return fmt.Errorf("storing allocation table: %w", err)
	}
	run.ResultPath = resultPath

	if run.Tally == nil {
		return nil
	}
	var tallyBuf bytes.Buffer
	if err := csvio.WriteTally(&tallyBuf, run.Tally); err != nil {
		s.logger.Error().Err(err).Str("runId", run.ID).Msg("Rendering tally table failed")
		run.Warnings = append(run.Warnings, fmt.Sprintf("preference tally not stored: %v", err))
		run.Tally = nil
		return nil
	}
	tallyPath, err := s.storage.WriteOutput(run.ID, filestorage.TallyFileName, tallyBuf.Bytes())
	if err != nil {
		s.logger.Error().Err(err).Str("runId", run.ID).Msg("Storing tally table failed")
		run.Warnings = append(run.Warnings, fmt.Sprintf("preference tally not stored: %v", err))
		run.Tally = nil
		return nil
	}
	run.TallyPath = tallyPath
	return nil
}

// GetRun returns a completed run by ID.
func (s *allocationServiceImpl) GetRun(ctx context.Context, id string) (*models.Run, error) {
	return s.store.Get(id)
}

// DeleteRun removes a run and its stored files.
func (s *allocationServiceImpl) DeleteRun(ctx context.Context, id string) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}
	if err := s.storage.DeleteRun(id); err != nil {
		s.logger.Error().Err(err).Str("runId", id).Msg("Failed to remove run files")
		return err
	}
	return nil
}
