package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/triage-dashboard/internal/domain"
	"github.com/spec-kit/triage-dashboard/internal/events"
	"github.com/spec-kit/triage-dashboard/internal/repository"
	"github.com/spec-kit/triage-dashboard/internal/triage"
	"github.com/spec-kit/triage-dashboard/internal/view"
	apperrors "github.com/spec-kit/triage-dashboard/pkg/util"
)

// Seeded ids start at T-1001; new ids continue from the current count.
const ticketIDBase = 1000

// DashboardService is the single source of truth for tickets and view
// parameters. Mutations go through it exclusively and each one is applied as
// one indivisible step, so readers of the derived pipeline never observe a
// partially applied change.
type DashboardService struct {
	tickets    repository.TicketRepository
	classifier *triage.Classifier
	dispatcher events.Dispatcher
	logger     *zap.Logger
	clock      func() time.Time

	mu     sync.RWMutex
	params view.Params

	// analyzing guards the creation flow against re-entrant submission
	// while a classification is pending. Other operations stay available.
	analyzing atomic.Bool
}

// DashboardDependencies bundles collaborators for the dashboard service.
type DashboardDependencies struct {
	TicketRepo repository.TicketRepository
	Classifier *triage.Classifier
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Clock      func() time.Time
}

// TicketCreateInput describes the ticket creation payload. An empty
// Category or Priority requests automatic detection by the classifier.
type TicketCreateInput struct {
	Message      string
	CustomerName string
	AssignedTo   string
	Category     domain.TicketCategory
	Priority     domain.TicketPriority
	Status       domain.TicketStatus
}

// TicketUpdateInput replaces the mutable fields of a ticket in one step.
// Values are trusted as-is; upstream input validation restricts them to the
// enumerated sets.
type TicketUpdateInput struct {
	Category   domain.TicketCategory
	Priority   domain.TicketPriority
	Status     domain.TicketStatus
	AssignedTo string
}

// NewDashboardService constructs the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &DashboardService{
		tickets:    deps.TicketRepo,
		classifier: deps.Classifier,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		clock:      clock,
		params:     view.DefaultParams(),
	}
}

// CreateTicket creates a ticket, invoking the classifier for any field left
// to automatic detection. Confidence is 1.0 only when both category and
// priority were chosen explicitly. The new ticket is prepended to the
// collection. Only one creation may be in flight at a time.
func (s *DashboardService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	if !s.analyzing.CompareAndSwap(false, true) {
		return nil, apperrors.NewConflict("a ticket is already being analyzed", nil)
	}
	defer s.analyzing.Store(false)

	category := input.Category
	priority := input.Priority
	confidence := 1.0
	autoDetected := category == "" || priority == ""

	if autoDetected {
		result, err := s.classifier.Classify(ctx, input.Message)
		if err != nil {
			// No partial ticket: the collection is untouched on failure.
			s.logger.Error("ticket analysis failed", zap.Error(err))
			return nil, apperrors.MapError(err)
		}
		if category == "" {
			category = result.Category
		}
		if priority == "" {
			priority = result.Priority
		}
		confidence = result.Confidence
	}

	status := input.Status
	if status == "" {
		status = domain.TicketStatusOpen
	}

	ticket := domain.Ticket{
		ID:           s.nextTicketID(),
		CustomerName: input.CustomerName,
		Message:      input.Message,
		Timestamp:    s.clock(),
		Category:     category,
		Priority:     priority,
		Status:       status,
		AIConfidence: &confidence,
		AssignedTo:   strings.TrimSpace(input.AssignedTo),
	}
	s.tickets.Insert(ticket)

	s.logger.Info("ticket created",
		zap.String("ticket_id", ticket.ID),
		zap.String("category", string(ticket.Category)),
		zap.String("priority", string(ticket.Priority)),
		zap.Bool("auto_detected", autoDetected))
	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			CustomerName: ticket.CustomerName,
			Category:     ticket.Category,
			Priority:     ticket.Priority,
			AutoDetected: autoDetected,
			AIConfidence: ticket.AIConfidence,
		},
	})
	return &ticket, nil
}

// IsAnalyzing reports whether a creation is pending classification.
func (s *DashboardService) IsAnalyzing() bool {
	return s.analyzing.Load()
}

// ToggleStatus flips a ticket between Open and Resolved. Unknown ids are
// tolerated as a no-op.
func (s *DashboardService) ToggleStatus(ctx context.Context, id string) *domain.Ticket {
	var oldStatus domain.TicketStatus
	ticket, ok := s.tickets.Update(id, func(t *domain.Ticket) {
		oldStatus = t.Status
		t.Status = t.Status.Toggled()
	})
	if !ok {
		return nil
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: ticket.Status,
		},
	})
	return &ticket
}

// AssignTicket sets or clears a ticket's assignee. An empty agent name
// clears the assignment. Unknown ids are tolerated as a no-op. Roster
// membership is deliberately not enforced.
func (s *DashboardService) AssignTicket(ctx context.Context, id, agent string) *domain.Ticket {
	agent = strings.TrimSpace(agent)
	ticket, ok := s.tickets.Update(id, func(t *domain.Ticket) {
		t.AssignedTo = agent
	})
	if !ok {
		return nil
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Payload:  events.TicketAssignedPayload{Agent: agent},
	})
	return &ticket
}

// UpdateTicket replaces all mutable fields of a ticket atomically. Unknown
// ids are tolerated as a no-op.
func (s *DashboardService) UpdateTicket(ctx context.Context, id string, input TicketUpdateInput) *domain.Ticket {
	ticket, ok := s.tickets.Update(id, func(t *domain.Ticket) {
		t.Category = input.Category
		t.Priority = input.Priority
		t.Status = input.Status
		t.AssignedTo = strings.TrimSpace(input.AssignedTo)
	})
	if !ok {
		return nil
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticket.ID,
		Payload: events.TicketUpdatedPayload{
			Category: ticket.Category,
			Priority: ticket.Priority,
			Status:   ticket.Status,
		},
	})
	return &ticket
}

// Params returns the current view parameters.
func (s *DashboardService) Params() view.Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

// SetFilterCategory sets the category filter ("All" or a category value).
func (s *DashboardService) SetFilterCategory(val string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Category = val
}

// SetFilterPriority sets the priority filter ("All" or a priority value).
func (s *DashboardService) SetFilterPriority(val string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Priority = val
}

// SetFilterStatus sets the status filter ("All" or a status value).
func (s *DashboardService) SetFilterStatus(val string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Status = val
}

// SetSearchQuery sets the free-text search query.
func (s *DashboardService) SetSearchQuery(val string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Query = val
}

// SetSortMode sets the list ordering.
func (s *DashboardService) SetSortMode(mode view.SortMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Sort = mode
}

// ClearFilters resets the category, priority and status filters and the
// search query. The sort mode is untouched.
func (s *DashboardService) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = s.params.ClearFilters()
}

// SortedTickets recomputes the filtered, sorted view from current state and
// current view parameters.
func (s *DashboardService) SortedTickets() []domain.Ticket {
	params := s.Params()
	return view.Sort(view.Filter(s.tickets.List(), params), params.Sort)
}

// Stats aggregates the entire unfiltered collection.
func (s *DashboardService) Stats() domain.Stats {
	return view.ComputeStats(s.tickets.List())
}

func (s *DashboardService) nextTicketID() string {
	return fmt.Sprintf("T-%d", ticketIDBase+s.tickets.Count()+1)
}

func (s *DashboardService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.clock()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
