// Package seed holds the demo dataset: the initial ticket list plus sample
// messages and customer names backing the "simulate ticket" flow. None of it
// affects core behavior.
package seed

import (
	"math/rand/v2"
	"time"

	"github.com/spec-kit/triage-dashboard/internal/domain"
)

// Tickets returns the initial demo collection, ids T-1001 through T-1018,
// with creation times spread over the last few days relative to now.
func Tickets(now time.Time) []domain.Ticket {
	return []domain.Ticket{
		{
			ID:           "T-1001",
			CustomerName: "Alice Johnson",
			Message:      "My invoice is wrong for last month – I was charged twice.",
			Timestamp:    now.Add(-2 * time.Hour),
			Category:     domain.TicketCategoryBilling,
			Priority:     domain.TicketPriorityHigh,
			Status:       domain.TicketStatusOpen,
			AssignedTo:   "Agent Smith",
		},
		{
			ID:           "T-1002",
			CustomerName: "Bob Smith",
			Message:      "The app keeps crashing when I try to upload a file.",
			Timestamp:    now.Add(-5 * time.Hour),
			Category:     domain.TicketCategoryBug,
			Priority:     domain.TicketPriorityHigh,
			Status:       domain.TicketStatusOpen,
			AssignedTo:   "Agent Scully",
		},
		{
			ID:           "T-1003",
			CustomerName: "Charlie Davis",
			Message:      "Can you add support for dark mode in the next release?",
			Timestamp:    now.Add(-24 * time.Hour),
			Category:     domain.TicketCategoryFeatureRequest,
			Priority:     domain.TicketPriorityLow,
			Status:       domain.TicketStatusOpen,
		},
		{
			ID:           "T-1004",
			CustomerName: "Dana Lee",
			Message:      "I forgot my password and the reset link is not working.",
			Timestamp:    now.Add(-26 * time.Hour),
			Category:     domain.TicketCategoryBug,
			Priority:     domain.TicketPriorityMedium,
			Status:       domain.TicketStatusOpen,
			AssignedTo:   "Agent Mulder",
		},
		{
			ID:           "T-1005",
			CustomerName: "Evan Wright",
			Message:      "How do I change my profile picture?",
			Timestamp:    now.Add(-48 * time.Hour),
			Category:     domain.TicketCategoryGeneral,
			Priority:     domain.TicketPriorityLow,
			Status:       domain.TicketStatusResolved,
			AssignedTo:   "Agent Cooper",
		},
		{
			ID:           "T-1006",
			CustomerName: "Fiona Gallagher",
			Message:      "I need to upgrade my plan to Enterprise. Who do I talk to?",
			Timestamp:    now.Add(-3 * time.Hour),
			Category:     domain.TicketCategoryBilling,
			Priority:     domain.TicketPriorityMedium,
			Status:       domain.TicketStatusOpen,
		},
		{
			ID:           "T-1007",
			CustomerName: "George Miller",
			Message:      "Error 500 when accessing the dashboard api.",
			Timestamp:    now.Add(-30 * time.Minute),
			Category:     domain.TicketCategoryBug,
			Priority:     domain.TicketPriorityHigh,
			Status:       domain.TicketStatusOpen,
			AssignedTo:   "Agent Smith",
		},
		{
			ID:           "T-1008",
			CustomerName: "Hannah Abbott",
			Message:      "Is there an integration with Slack available?",
			Timestamp:    now.Add(-12 * time.Hour),
			Category:     domain.TicketCategoryFeatureRequest,
			Priority:     domain.TicketPriorityLow,
			Status:       domain.TicketStatusOpen,
		},
		{
			ID:           "T-1009",
			CustomerName: "Ian Malcolm",
			Message:      "The export to PDF function is cutting off the last column.",
			Timestamp:    now.Add(-6 * time.Hour),
			Category:     domain.TicketCategoryBug,
			Priority:     domain.TicketPriorityMedium,
			Status:       domain.TicketStatusOpen,
			AssignedTo:   "Agent Starling",
		},
		{
			ID:           "T-1010",
			CustomerName: "Jane Doe",
			Message:      "Where can I find the privacy policy?",
			Timestamp:    now.Add(-72 * time.Hour),
			Category:     domain.TicketCategoryGeneral,
			Priority:     domain.TicketPriorityLow,
			Status:       domain.TicketStatusResolved,
		},
		{
			ID:           "T-1011",
			CustomerName: "Kevin Hart",
			Message:      "Cancel my subscription immediately.",
			Timestamp:    now.Add(-45 * time.Minute),
			Category:     domain.TicketCategoryBilling,
			Priority:     domain.TicketPriorityHigh,
			Status:       domain.TicketStatusOpen,
			AssignedTo:   "Agent Scully",
		},
		{
			ID:           "T-1012",
			CustomerName: "Laura Palmer",
			Message:      "The mobile view is distorted on iPhone 13.",
			Timestamp:    now.Add(-18 * time.Hour),
			Category:     domain.TicketCategoryBug,
			Priority:     domain.TicketPriorityMedium,
			Status:       domain.TicketStatusOpen,
		},
		{
			ID:           "T-1013",
			CustomerName: "Mike Ross",
			Message:      "Can we pay via wire transfer instead of credit card?",
			Timestamp:    now.Add(-20 * time.Hour),
			Category:     domain.TicketCategoryBilling,
			Priority:     domain.TicketPriorityMedium,
			Status:       domain.TicketStatusOpen,
		},
		{
			ID:           "T-1014",
			CustomerName: "Natalie Portman",
			Message:      "Suggestion: It would be great to have multi-user support.",
			Timestamp:    now.Add(-30 * time.Hour),
			Category:     domain.TicketCategoryFeatureRequest,
			Priority:     domain.TicketPriorityLow,
			Status:       domain.TicketStatusOpen,
		},
		{
			ID:           "T-1015",
			CustomerName: "Oscar Isaac",
			Message:      `Nothing happens when I click the "Save" button.`,
			Timestamp:    now.Add(-15 * time.Minute),
			Category:     domain.TicketCategoryBug,
			Priority:     domain.TicketPriorityHigh,
			Status:       domain.TicketStatusOpen,
			AssignedTo:   "Agent Mulder",
		},
		{
			ID:           "T-1016",
			CustomerName: "Paul Atreides",
			Message:      "I was charged for the annual plan but I selected monthly.",
			Timestamp:    now.Add(-time.Hour),
			Category:     domain.TicketCategoryBilling,
			Priority:     domain.TicketPriorityHigh,
			Status:       domain.TicketStatusOpen,
		},
		{
			ID:           "T-1017",
			CustomerName: "Quentin Tarantino",
			Message:      "Just wanted to say the new update is fantastic!",
			Timestamp:    now.Add(-50 * time.Hour),
			Category:     domain.TicketCategoryGeneral,
			Priority:     domain.TicketPriorityLow,
			Status:       domain.TicketStatusResolved,
		},
		{
			ID:           "T-1018",
			CustomerName: "Rachel Green",
			Message:      "The login page loads very slowly.",
			Timestamp:    now.Add(-4 * time.Hour),
			Category:     domain.TicketCategoryBug,
			Priority:     domain.TicketPriorityMedium,
			Status:       domain.TicketStatusOpen,
		},
	}
}

var sampleMessages = []string{
	"I'm getting a 404 error on the settings page.",
	"Please send me my receipts for 2023.",
	"Can you integrate with Zapier?",
	"The font size is too small on the dashboard.",
	"My account is locked out.",
	"I found a typo on the home page.",
	"Is the service down? I can't connect.",
	"How do I delete my account?",
}

var sampleCustomers = []string{
	"Sarah Connor", "John Wick", "Ellen Ripley", "Marty McFly",
	"Tony Stark", "Bruce Wayne", "Clark Kent", "Diana Prince",
	"Peter Parker", "Wanda Maximoff", "Jean-Luc Picard", "James T. Kirk",
}

// RandomSample picks a message and customer name for a simulated incoming
// ticket.
func RandomSample() (message, customerName string) {
	return sampleMessages[rand.IntN(len(sampleMessages))],
		sampleCustomers[rand.IntN(len(sampleCustomers))]
}
