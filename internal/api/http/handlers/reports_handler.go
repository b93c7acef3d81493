package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/civic-report-service/internal/api/dto"
	"github.com/spec-kit/civic-report-service/internal/auth"
	"github.com/spec-kit/civic-report-service/internal/domain"
	"github.com/spec-kit/civic-report-service/internal/service"
	apperrors "github.com/spec-kit/civic-report-service/pkg/util"
)

// ReportsHandler manages report endpoints.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reportService}
}

// Create POST /api/reports.
func (h *ReportsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	location, err := parseLocation(req.Location)
	if err != nil {
		return err
	}

	input := service.ReportCreateInput{
		Category:    req.Category,
		Description: req.Description,
		Location:    location,
		Address:     req.Address,
		ImageURL:    req.ImageURL,
		Priority:    req.Priority,
	}
	report, err := h.reports.Create(c.Context(), actorFromPrincipal(principal), input)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    dto.NewReportResponse(report),
	})
}

// List GET /api/reports.
func (h *ReportsHandler) List(c *fiber.Ctx) error {
	reports, err := h.reports.ListAll(c.Context())
	if err != nil {
		return err
	}
	items := dto.NewReportResponses(reports)
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(items),
		"data":    items,
	})
}

// ListMine GET /api/reports/my-reports.
func (h *ReportsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	reports, err := h.reports.ListMine(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	items := dto.NewReportResponses(reports)
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(items),
		"data":    items,
	})
}

// Stats GET /api/reports/stats. Admin only, enforced at the route.
func (h *ReportsHandler) Stats(c *fiber.Ctx) error {
	counts, err := h.reports.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewStatsResponse(counts),
	})
}

// Get GET /api/reports/:id.
func (h *ReportsHandler) Get(c *fiber.Ctx) error {
	report, err := h.reports.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewReportResponse(report),
	})
}

// Update PUT /api/reports/:id. Admin only, enforced at the route.
func (h *ReportsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	location, err := parseLocation(req.Location)
	if err != nil {
		return err
	}

	input := service.ReportUpdateInput{
		Category:    req.Category,
		Description: req.Description,
		Location:    location,
		Address:     req.Address,
		ImageURL:    req.ImageURL,
		Status:      req.Status,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
	}
	report, err := h.reports.Update(c.Context(), actorFromPrincipal(principal), c.Params("id"), input)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewReportResponse(report),
	})
}

// Delete DELETE /api/reports/:id. Admin only, enforced at the route.
func (h *ReportsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.reports.Delete(c.Context(), actorFromPrincipal(principal), c.Params("id")); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{},
	})
}

func actorFromPrincipal(principal *auth.Principal) service.ReportActor {
	return service.ReportActor{UserID: principal.User.ID, Role: principal.Role}
}

func parseLocation(payload *dto.LocationPayload) (*domain.GeoPoint, error) {
	if payload == nil {
		return nil, nil
	}
	if payload.Type != "Point" {
		return nil, apperrors.NewValidationError("location type must be Point", nil)
	}
	if len(payload.Coordinates) != 2 {
		return nil, apperrors.NewValidationError("location coordinates must be [longitude, latitude]", nil)
	}
	return &domain.GeoPoint{
		Longitude: payload.Coordinates[0],
		Latitude:  payload.Coordinates[1],
	}, nil
}
