package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/civic-report-service/internal/domain"
	"github.com/spec-kit/civic-report-service/internal/events"
	"github.com/spec-kit/civic-report-service/internal/persistence"
	"github.com/spec-kit/civic-report-service/internal/repository"
	apperrors "github.com/spec-kit/civic-report-service/pkg/util"
)

const (
	statsCacheKey = "report_stats"
	statsCacheTTL = 30 * time.Second
)

// ReportService coordinates the report lifecycle: creation by citizens,
// triage mutations by admins, and the aggregate dashboard snapshot.
type ReportService struct {
	reports    repository.ReportRepository
	dispatcher events.Dispatcher
	cache      *persistence.Redis
}

// NewReportService constructs the service. The cache is optional; without it
// every stats call hits the store.
func NewReportService(reports repository.ReportRepository, dispatcher events.Dispatcher, cache *persistence.Redis) *ReportService {
	return &ReportService{reports: reports, dispatcher: dispatcher, cache: cache}
}

// ReportCreateInput describes the citizen-supplied report fields. The owner is
// never part of the input: it is bound from the authenticated caller.
type ReportCreateInput struct {
	Category    domain.ReportCategory
	Description string
	Location    *domain.GeoPoint
	Address     string
	ImageURL    *string
	Priority    domain.ReportPriority
}

// ReportUpdateInput is the admin triage patch. Nil fields are left unchanged.
type ReportUpdateInput struct {
	Category    *domain.ReportCategory
	Description *string
	Location    *domain.GeoPoint
	Address     *string
	ImageURL    *string
	Status      *domain.ReportStatus
	Priority    *domain.ReportPriority
	AssignedTo  *string
}

// Create validates and persists a new report owned by the caller.
func (s *ReportService) Create(ctx context.Context, principal ReportActor, input ReportCreateInput) (*domain.Report, error) {
	if err := validateCreateInput(&input); err != nil {
		return nil, err
	}

	report := &domain.Report{
		UserID:      principal.UserID,
		Category:    input.Category,
		Description: strings.TrimSpace(input.Description),
		Location:    input.Location,
		Address:     strings.TrimSpace(input.Address),
		ImageURL:    input.ImageURL,
		Status:      domain.ReportStatusPending,
		Priority:    input.Priority,
		AssignedTo:  domain.DefaultAssignee,
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.invalidateStats(ctx)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventReportCreated,
		ReportID: report.ID,
		Actor:    actorFor(principal),
		Payload: events.ReportCreatedPayload{
			Category: report.Category,
			Priority: report.Priority,
			Address:  report.Address,
		},
	})
	return report, nil
}

// ListAll returns every report with the owner's email joined in, for any
// authenticated role.
func (s *ReportService) ListAll(ctx context.Context) ([]domain.Report, error) {
	reports, err := s.reports.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return reports, nil
}

// ListMine returns exactly the caller's reports.
func (s *ReportService) ListMine(ctx context.Context, userID string) ([]domain.Report, error) {
	reports, err := s.reports.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return reports, nil
}

// Get fetches a single report by id.
func (s *ReportService) Get(ctx context.Context, id string) (*domain.Report, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("report", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return report, nil
}

// Update applies an admin triage patch, re-validating every enum field. Status
// may move to any valid value in any order; no transition ordering is
// enforced.
func (s *ReportService) Update(ctx context.Context, principal ReportActor, id string, input ReportUpdateInput) (*domain.Report, error) {
	report, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := report.Status
	oldPriority := report.Priority
	oldAssignee := report.AssignedTo

	if err := applyUpdate(report, input); err != nil {
		return nil, err
	}

	if err := s.reports.Update(ctx, report); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("report", nil)
		}
		return nil, apperrors.MapError(err)
	}

	s.invalidateStats(ctx)
	actor := actorFor(principal)
	if report.Status != oldStatus {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventReportStatusChanged,
			ReportID: report.ID,
			Actor:    actor,
			Payload: events.ReportStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: report.Status,
			},
		})
	}
	if report.Priority != oldPriority {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventReportPriorityChanged,
			ReportID: report.ID,
			Actor:    actor,
			Payload: events.ReportPriorityChangedPayload{
				OldPriority: oldPriority,
				NewPriority: report.Priority,
			},
		})
	}
	if report.AssignedTo != oldAssignee {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventReportAssigned,
			ReportID: report.ID,
			Actor:    actor,
			Payload:  events.ReportAssignedPayload{AssignedTo: report.AssignedTo},
		})
	}
	return report, nil
}

// Delete removes a report permanently. No soft delete.
func (s *ReportService) Delete(ctx context.Context, principal ReportActor, id string) error {
	report, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := s.reports.Delete(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !deleted {
		return apperrors.NewNotFound("report", nil)
	}

	s.invalidateStats(ctx)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventReportDeleted,
		ReportID: report.ID,
		Actor:    actorFor(principal),
		Payload: events.ReportDeletedPayload{
			Category: report.Category,
			Status:   report.Status,
		},
	})
	return nil
}

// Stats returns the dashboard snapshot, served from cache when fresh. The
// snapshot is eventually consistent; the buckets may briefly disagree with the
// total under concurrent writes.
func (s *ReportService) Stats(ctx context.Context) (*domain.StatusCounts, error) {
	if cached := s.cachedStats(ctx); cached != nil {
		return cached, nil
	}

	counts, err := s.reports.CountByStatus(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.storeStats(ctx, counts)
	return counts, nil
}

// ReportActor identifies the authenticated caller for event attribution.
type ReportActor struct {
	UserID string
	Role   domain.Role
}

func actorFor(principal ReportActor) events.Actor {
	return events.Actor{UserID: principal.UserID, Role: principal.Role}
}

func (s *ReportService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func (s *ReportService) cachedStats(ctx context.Context) *domain.StatusCounts {
	if s.cache == nil || s.cache.Client == nil {
		return nil
	}
	raw, err := s.cache.Client.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var counts domain.StatusCounts
	if err := json.Unmarshal(raw, &counts); err != nil {
		return nil
	}
	return &counts
}

func (s *ReportService) storeStats(ctx context.Context, counts *domain.StatusCounts) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	raw, err := json.Marshal(counts)
	if err != nil {
		return
	}
	_ = s.cache.Client.Set(ctx, statsCacheKey, raw, statsCacheTTL).Err()
}

func (s *ReportService) invalidateStats(ctx context.Context) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	_ = s.cache.Client.Del(ctx, statsCacheKey).Err()
}

func validateCreateInput(input *ReportCreateInput) error {
	if input.Category == "" {
		return apperrors.NewValidationError("please select a category", nil)
	}
	if !input.Category.Valid() {
		return apperrors.NewValidationError("unknown category", map[string]any{"category": input.Category})
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return apperrors.NewValidationError("please add a description", nil)
	}
	if utf8.RuneCountInString(description) > domain.MaxDescriptionLength {
		return apperrors.NewValidationError("description can not be more than 500 characters", nil)
	}
	if strings.TrimSpace(input.Address) == "" {
		return apperrors.NewValidationError("please add an address or location description", nil)
	}
	if err := validateLocation(input.Location); err != nil {
		return err
	}
	if input.Priority == "" {
		input.Priority = domain.ReportPriorityMedium
	} else if !input.Priority.Valid() {
		return apperrors.NewValidationError("unknown priority", map[string]any{"priority": input.Priority})
	}
	return nil
}

func applyUpdate(report *domain.Report, input ReportUpdateInput) error {
	if input.Category != nil {
		if !input.Category.Valid() {
			return apperrors.NewValidationError("unknown category", map[string]any{"category": *input.Category})
		}
		report.Category = *input.Category
	}
	if input.Description != nil {
		trimmed := strings.TrimSpace(*input.Description)
		if trimmed == "" {
			return apperrors.NewValidationError("please add a description", nil)
		}
		if utf8.RuneCountInString(trimmed) > domain.MaxDescriptionLength {
			return apperrors.NewValidationError("description can not be more than 500 characters", nil)
		}
		report.Description = trimmed
	}
	if input.Location != nil {
		if err := validateLocation(input.Location); err != nil {
			return err
		}
		report.Location = input.Location
	}
	if input.Address != nil {
		trimmed := strings.TrimSpace(*input.Address)
		if trimmed == "" {
			return apperrors.NewValidationError("please add an address or location description", nil)
		}
		report.Address = trimmed
	}
	if input.ImageURL != nil {
		report.ImageURL = input.ImageURL
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return apperrors.NewValidationError("unknown status", map[string]any{"status": *input.Status})
		}
		report.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return apperrors.NewValidationError("unknown priority", map[string]any{"priority": *input.Priority})
		}
		report.Priority = *input.Priority
	}
	if input.AssignedTo != nil {
		assignee := strings.TrimSpace(*input.AssignedTo)
		if assignee == "" {
			assignee = domain.DefaultAssignee
		}
		report.AssignedTo = assignee
	}
	return nil
}

func validateLocation(point *domain.GeoPoint) error {
	if point == nil {
		return nil
	}
	if point.Longitude < -180 || point.Longitude > 180 {
		return apperrors.NewValidationError("longitude out of range", nil)
	}
	if point.Latitude < -90 || point.Latitude > 90 {
		return apperrors.NewValidationError("latitude out of range", nil)
	}
	return nil
}
