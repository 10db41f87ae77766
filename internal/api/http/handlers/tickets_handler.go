package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/triage-dashboard/internal/api/dto"
	"github.com/spec-kit/triage-dashboard/internal/domain"
	"github.com/spec-kit/triage-dashboard/internal/seed"
	"github.com/spec-kit/triage-dashboard/internal/service"
	apperrors "github.com/spec-kit/triage-dashboard/pkg/util"
)

// TicketsHandler manages ticket mutation endpoints.
type TicketsHandler struct {
	service *service.DashboardService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(dashboardService *service.DashboardService) *TicketsHandler {
	return &TicketsHandler{service: dashboardService}
}

// CreateTicket POST /dashboard/tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Message) == "" || strings.TrimSpace(req.CustomerName) == "" {
		return apperrors.NewValidationError("message, customer_name required", nil)
	}
	input, err := createInputFromRequest(req)
	if err != nil {
		return err
	}
	ticket, err := h.service.CreateTicket(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// SimulateTicket POST /dashboard/tickets/simulate creates a random sample
// ticket with both fields auto-detected.
func (h *TicketsHandler) SimulateTicket(c *fiber.Ctx) error {
	message, customerName := seed.RandomSample()
	ticket, err := h.service.CreateTicket(c.Context(), service.TicketCreateInput{
		Message:      message,
		CustomerName: customerName,
		Status:       domain.TicketStatusOpen,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// ToggleStatus POST /dashboard/tickets/:id/toggle flips Open/Resolved.
// Unknown ids succeed without effect.
func (h *TicketsHandler) ToggleStatus(c *fiber.Ctx) error {
	ticket := h.service.ToggleStatus(c.Context(), c.Params("id"))
	if ticket == nil {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// AssignTicket POST /dashboard/tickets/:id/assign sets or clears the
// assignee. Unknown ids succeed without effect.
func (h *TicketsHandler) AssignTicket(c *fiber.Ctx) error {
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket := h.service.AssignTicket(c.Context(), c.Params("id"), req.Agent)
	if ticket == nil {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// UpdateTicket PUT /dashboard/tickets/:id replaces the mutable fields.
// Unknown ids succeed without effect.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := parseCategory(req.Category)
	if err != nil {
		return err
	}
	priority, err := parsePriority(req.Priority)
	if err != nil {
		return err
	}
	status, err := parseStatus(req.Status)
	if err != nil {
		return err
	}
	ticket := h.service.UpdateTicket(c.Context(), c.Params("id"), service.TicketUpdateInput{
		Category:   category,
		Priority:   priority,
		Status:     status,
		AssignedTo: req.AssignedTo,
	})
	if ticket == nil {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

func createInputFromRequest(req dto.CreateTicketRequest) (service.TicketCreateInput, error) {
	input := service.TicketCreateInput{
		Message:      req.Message,
		CustomerName: req.CustomerName,
		AssignedTo:   req.AssignedTo,
		Status:       domain.TicketStatusOpen,
	}
	if req.Category != "" && req.Category != dto.AutoDetect {
		category, err := parseCategory(req.Category)
		if err != nil {
			return service.TicketCreateInput{}, err
		}
		input.Category = category
	}
	if req.Priority != "" && req.Priority != dto.AutoDetect {
		priority, err := parsePriority(req.Priority)
		if err != nil {
			return service.TicketCreateInput{}, err
		}
		input.Priority = priority
	}
	if req.Status != "" {
		status, err := parseStatus(req.Status)
		if err != nil {
			return service.TicketCreateInput{}, err
		}
		input.Status = status
	}
	return input, nil
}

func parseCategory(raw string) (domain.TicketCategory, error) {
	for _, cat := range domain.Categories() {
		if string(cat) == raw {
			return cat, nil
		}
	}
	return "", apperrors.NewValidationError("unknown category", map[string]any{"category": raw})
}

func parsePriority(raw string) (domain.TicketPriority, error) {
	for _, prio := range domain.Priorities() {
		if string(prio) == raw {
			return prio, nil
		}
	}
	return "", apperrors.NewValidationError("unknown priority", map[string]any{"priority": raw})
}

func parseStatus(raw string) (domain.TicketStatus, error) {
	for _, status := range domain.Statuses() {
		if string(status) == raw {
			return status, nil
		}
	}
	return "", apperrors.NewValidationError("unknown status", map[string]any{"status": raw})
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:           ticket.ID,
		CustomerName: ticket.CustomerName,
		Message:      ticket.Message,
		Timestamp:    ticket.Timestamp,
		Category:     ticket.Category,
		Priority:     ticket.Priority,
		Status:       ticket.Status,
		AIConfidence: ticket.AIConfidence,
		AssignedTo:   ticket.AssignedTo,
	}
}
