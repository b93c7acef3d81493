package domain

import "time"

// ReportStatus enumerates lifecycle states for civic reports.
type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "pending"
	ReportStatusInProgress ReportStatus = "in-progress"
	ReportStatusResolved   ReportStatus = "resolved"
)

// Valid reports whether the status is a known value.
func (s ReportStatus) Valid() bool {
	switch s {
	case ReportStatusPending, ReportStatusInProgress, ReportStatusResolved:
		return true
	}
	return false
}

// ReportPriority enumerates triage urgency.
type ReportPriority string

const (
	ReportPriorityLow    ReportPriority = "low"
	ReportPriorityMedium ReportPriority = "medium"
	ReportPriorityHigh   ReportPriority = "high"
)

// Valid reports whether the priority is a known value.
func (p ReportPriority) Valid() bool {
	switch p {
	case ReportPriorityLow, ReportPriorityMedium, ReportPriorityHigh:
		return true
	}
	return false
}

// ReportCategory is the closed set of issue categories citizens may pick from.
type ReportCategory string

// Categories lists every accepted report category.
var Categories = []ReportCategory{
	"Roads & Potholes",
	"Water & Utilities",
	"Sanitation & Waste",
	"Streetlights & Power",
	"Pan Masala Spitting & Stains",
	"Littering & Garbage Dumping",
	"Illegal Parking",
	"Noise Pollution",
	"Parks & Public Spaces",
	"Public Safety",
	"Drainage & Sewerage",
	"Illegal Construction",
	"Encroachment on Footpaths",
	"Other",
}

// Valid reports whether the category is part of the closed set.
func (c ReportCategory) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// MaxDescriptionLength bounds the free-text description of a report.
const MaxDescriptionLength = 500

// DefaultAssignee is the assignment placeholder for untriaged reports.
const DefaultAssignee = "Unassigned"

// GeoPoint is a GeoJSON-style point: longitude first, then latitude.
// Stored for potential proximity queries; no endpoint queries it yet.
type GeoPoint struct {
	Longitude float64
	Latitude  float64
}

// Report is the aggregate for a single citizen-submitted civic issue.
// Ownership is by reference: UserID points at the creator and is always bound
// server-side from the authenticated caller.
type Report struct {
	ID          string
	UserID      string
	Category    ReportCategory
	Description string
	Location    *GeoPoint
	Address     string
	ImageURL    *string
	Status      ReportStatus
	Priority    ReportPriority
	AssignedTo  string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// ReporterEmail is a minimal owner projection populated only by joined
	// list queries; empty elsewhere.
	ReporterEmail string
}

// StatusCounts is an aggregate snapshot of report totals per status. The four
// numbers are read independently and may not be mutually consistent under
// concurrent writes.
type StatusCounts struct {
	Total      int64
	Pending    int64
	InProgress int64
	Resolved   int64
}
