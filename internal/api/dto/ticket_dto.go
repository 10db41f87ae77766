package dto

import (
	"time"

	"github.com/spec-kit/triage-dashboard/internal/domain"
)

// AutoDetect is the selector value requesting classifier-driven detection
// of a ticket field.
const AutoDetect = "Auto"

// CreateTicketRequest payload. Category and Priority accept an enumerated
// value or "Auto".
type CreateTicketRequest struct {
	Message      string `json:"message"`
	CustomerName string `json:"customer_name"`
	AssignedTo   string `json:"assigned_to"`
	Category     string `json:"category"`
	Priority     string `json:"priority"`
	Status       string `json:"status"`
}

// UpdateTicketRequest replaces the mutable fields of a ticket.
type UpdateTicketRequest struct {
	Category   string `json:"category"`
	Priority   string `json:"priority"`
	Status     string `json:"status"`
	AssignedTo string `json:"assigned_to"`
}

// AssignTicketRequest payload. An empty agent clears the assignment.
type AssignTicketRequest struct {
	Agent string `json:"agent"`
}

// ViewRequest sets view parameters. Absent fields are left unchanged.
type ViewRequest struct {
	Category *string `json:"category"`
	Priority *string `json:"priority"`
	Status   *string `json:"status"`
	Query    *string `json:"query"`
	Sort     *string `json:"sort"`
}

// TicketResponse is the wire form of a ticket.
type TicketResponse struct {
	ID           string                `json:"id"`
	CustomerName string                `json:"customer_name"`
	Message      string                `json:"message"`
	Timestamp    time.Time             `json:"timestamp"`
	Category     domain.TicketCategory `json:"category"`
	Priority     domain.TicketPriority `json:"priority"`
	Status       domain.TicketStatus   `json:"status"`
	AIConfidence *float64              `json:"ai_confidence,omitempty"`
	AssignedTo   string                `json:"assigned_to,omitempty"`
}

// CountResponse is one bar of a chart breakdown.
type CountResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// StatsResponse aggregates the unfiltered ticket collection.
type StatsResponse struct {
	Total            int             `json:"total"`
	Open             int             `json:"open"`
	Resolved         int             `json:"resolved"`
	HighPriorityOpen int             `json:"high_priority_open"`
	Categories       []CountResponse `json:"categories"`
	Priorities       []CountResponse `json:"priorities"`
}

// ViewResponse reports the current view parameters.
type ViewResponse struct {
	Category string `json:"category"`
	Priority string `json:"priority"`
	Status   string `json:"status"`
	Query    string `json:"query"`
	Sort     string `json:"sort"`
}
