package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/triage-dashboard/internal/api/dto"
	"github.com/spec-kit/triage-dashboard/internal/service"
	"github.com/spec-kit/triage-dashboard/internal/view"
	apperrors "github.com/spec-kit/triage-dashboard/pkg/util"
)

// DashboardHandler serves the derived view: the filtered/sorted ticket list,
// aggregate stats, the agent roster and the view parameters.
type DashboardHandler struct {
	service *service.DashboardService
	agents  []string
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService, agents []string) *DashboardHandler {
	return &DashboardHandler{service: dashboardService, agents: agents}
}

// ListTickets GET /dashboard/tickets returns the view for the current
// parameters.
func (h *DashboardHandler) ListTickets(c *fiber.Ctx) error {
	tickets := h.service.SortedTickets()
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{
		"data":      items,
		"analyzing": h.service.IsAnalyzing(),
	})
}

// Stats GET /dashboard/stats aggregates the whole collection regardless of
// filters.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats := h.service.Stats()
	resp := dto.StatsResponse{
		Total:            stats.Total,
		Open:             stats.Open,
		Resolved:         stats.Resolved,
		HighPriorityOpen: stats.HighPriorityOpen,
	}
	for _, count := range stats.ByCategory {
		resp.Categories = append(resp.Categories, dto.CountResponse{Name: string(count.Name), Count: count.Count})
	}
	for _, count := range stats.ByPriority {
		resp.Priorities = append(resp.Priorities, dto.CountResponse{Name: string(count.Name), Count: count.Count})
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Agents GET /dashboard/agents returns the support agent roster.
func (h *DashboardHandler) Agents(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.agents})
}

// SetView PUT /dashboard/view updates view parameters; absent fields keep
// their current value.
func (h *DashboardHandler) SetView(c *fiber.Ctx) error {
	var req dto.ViewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Category != nil {
		h.service.SetFilterCategory(*req.Category)
	}
	if req.Priority != nil {
		h.service.SetFilterPriority(*req.Priority)
	}
	if req.Status != nil {
		h.service.SetFilterStatus(*req.Status)
	}
	if req.Query != nil {
		h.service.SetSearchQuery(*req.Query)
	}
	if req.Sort != nil {
		h.service.SetSortMode(view.ParseSortMode(*req.Sort))
	}
	return c.JSON(fiber.Map{"data": viewResponse(h.service.Params())})
}

// ClearView POST /dashboard/view/clear resets the filters and search query,
// leaving the sort mode alone.
func (h *DashboardHandler) ClearView(c *fiber.Ctx) error {
	h.service.ClearFilters()
	return c.JSON(fiber.Map{"data": viewResponse(h.service.Params())})
}

func viewResponse(params view.Params) dto.ViewResponse {
	return dto.ViewResponse{
		Category: params.Category,
		Priority: params.Priority,
		Status:   params.Status,
		Query:    params.Query,
		Sort:     string(params.Sort),
	}
}
