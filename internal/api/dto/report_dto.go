package dto

import (
	"time"

	"github.com/spec-kit/civic-report-service/internal/domain"
)

// LocationPayload is the GeoJSON-style point on the wire: type tag plus
// [longitude, latitude].
type LocationPayload struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// CreateReportRequest payload. The owner is taken from the bearer token, never
// from the body.
type CreateReportRequest struct {
	Category    domain.ReportCategory `json:"category"`
	Description string                `json:"description"`
	Location    *LocationPayload      `json:"location"`
	Address     string                `json:"address"`
	ImageURL    *string               `json:"imageUrl"`
	Priority    domain.ReportPriority `json:"priority"`
}

// UpdateReportRequest is the admin triage patch; absent fields stay unchanged.
type UpdateReportRequest struct {
	Category    *domain.ReportCategory `json:"category"`
	Description *string                `json:"description"`
	Location    *LocationPayload       `json:"location"`
	Address     *string                `json:"address"`
	ImageURL    *string                `json:"imageUrl"`
	Status      *domain.ReportStatus   `json:"status"`
	Priority    *domain.ReportPriority `json:"priority"`
	AssignedTo  *string                `json:"assignedTo"`
}

// ReportOwner is the minimal owner projection joined into list responses.
type ReportOwner struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// ReportResponse is the public projection of a report.
type ReportResponse struct {
	ID          string                `json:"id"`
	User        ReportOwner           `json:"user"`
	Category    domain.ReportCategory `json:"category"`
	Description string                `json:"description"`
	Location    *LocationPayload      `json:"location,omitempty"`
	Address     string                `json:"address"`
	ImageURL    *string               `json:"imageUrl,omitempty"`
	Status      domain.ReportStatus   `json:"status"`
	Priority    domain.ReportPriority `json:"priority"`
	AssignedTo  string                `json:"assignedTo"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// StatsResponse is the dashboard aggregate snapshot.
type StatsResponse struct {
	TotalIssues int64 `json:"totalIssues"`
	Pending     int64 `json:"pending"`
	InProgress  int64 `json:"inProgress"`
	Resolved    int64 `json:"resolved"`
}

// NewReportResponse maps a domain report to its response shape.
func NewReportResponse(report *domain.Report) ReportResponse {
	resp := ReportResponse{
		ID:          report.ID,
		User:        ReportOwner{ID: report.UserID, Email: report.ReporterEmail},
		Category:    report.Category,
		Description: report.Description,
		Address:     report.Address,
		ImageURL:    report.ImageURL,
		Status:      report.Status,
		Priority:    report.Priority,
		AssignedTo:  report.AssignedTo,
		CreatedAt:   report.CreatedAt,
		UpdatedAt:   report.UpdatedAt,
	}
	if report.Location != nil {
		resp.Location = &LocationPayload{
			Type:        "Point",
			Coordinates: []float64{report.Location.Longitude, report.Location.Latitude},
		}
	}
	return resp
}

// NewReportResponses maps a slice of reports.
func NewReportResponses(reports []domain.Report) []ReportResponse {
	out := make([]ReportResponse, 0, len(reports))
	for i := range reports {
		out = append(out, NewReportResponse(&reports[i]))
	}
	return out
}

// NewStatsResponse maps aggregate counts.
func NewStatsResponse(counts *domain.StatusCounts) StatsResponse {
	return StatsResponse{
		TotalIssues: counts.Total,
		Pending:     counts.Pending,
		InProgress:  counts.InProgress,
		Resolved:    counts.Resolved,
	}
}
