package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen     TicketStatus = "Open"
	TicketStatusResolved TicketStatus = "Resolved"
)

// Toggled returns the opposite status. Toggling is the only transition a
// ticket's status supports.
func (s TicketStatus) Toggled() TicketStatus {
	if s == TicketStatusOpen {
		return TicketStatusResolved
	}
	return TicketStatusOpen
}

// Statuses lists every status in display order.
func Statuses() []TicketStatus {
	return []TicketStatus{TicketStatusOpen, TicketStatusResolved}
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityHigh   TicketPriority = "High"
	TicketPriorityMedium TicketPriority = "Medium"
	TicketPriorityLow    TicketPriority = "Low"
)

// Rank orders priorities for sorting, High first.
func (p TicketPriority) Rank() int {
	switch p {
	case TicketPriorityHigh:
		return 0
	case TicketPriorityMedium:
		return 1
	default:
		return 2
	}
}

// Priorities lists every priority from most to least urgent.
func Priorities() []TicketPriority {
	return []TicketPriority{TicketPriorityHigh, TicketPriorityMedium, TicketPriorityLow}
}

// TicketCategory enumerates classification buckets for a ticket's subject.
type TicketCategory string

const (
	TicketCategoryBug            TicketCategory = "Bug"
	TicketCategoryBilling        TicketCategory = "Billing"
	TicketCategoryFeatureRequest TicketCategory = "Feature Request"
	TicketCategoryGeneral        TicketCategory = "General"
)

// Categories lists every category in display order.
func Categories() []TicketCategory {
	return []TicketCategory{
		TicketCategoryBug,
		TicketCategoryBilling,
		TicketCategoryFeatureRequest,
		TicketCategoryGeneral,
	}
}

// Ticket is the aggregate for customer support requests.
//
// CustomerName, Message and Timestamp are immutable after creation.
// AIConfidence is present only on tickets that went through the creation
// flow (1.0 when both category and priority were chosen explicitly, the
// classifier's score otherwise); seeded tickets may carry none. AssignedTo
// is a display name from the agent roster; empty means unassigned. Roster
// membership is never enforced here.
type Ticket struct {
	ID           string
	CustomerName string
	Message      string
	Timestamp    time.Time
	Category     TicketCategory
	Priority     TicketPriority
	Status       TicketStatus
	AIConfidence *float64
	AssignedTo   string
}

// Confidence returns the AI confidence score, treating absence as zero.
func (t Ticket) Confidence() float64 {
	if t.AIConfidence == nil {
		return 0
	}
	return *t.AIConfidence
}
