package repository

import (
	"sync"

	"github.com/spec-kit/triage-dashboard/internal/domain"
)

// TicketRepository owns the canonical ordered ticket collection. The
// dashboard keeps all state in process memory; there is no persistence
// layer behind it.
type TicketRepository interface {
	// Insert prepends a ticket, keeping newest-first insertion order.
	Insert(ticket domain.Ticket)
	// Get returns a copy of the ticket with the given id.
	Get(id string) (domain.Ticket, bool)
	// Update applies mutate to the ticket with the given id as one
	// indivisible step and returns the updated copy. Unknown ids report
	// false without touching the collection.
	Update(id string, mutate func(*domain.Ticket)) (domain.Ticket, bool)
	// List returns a snapshot of the whole collection in insertion order.
	List() []domain.Ticket
	// Count returns the number of stored tickets.
	Count() int
}

type memoryTicketRepository struct {
	mu      sync.RWMutex
	tickets []domain.Ticket
}

// NewTicketRepository builds an in-memory repository pre-populated with the
// seed tickets, newest first.
func NewTicketRepository(seed []domain.Ticket) TicketRepository {
	tickets := make([]domain.Ticket, len(seed))
	copy(tickets, seed)
	return &memoryTicketRepository{tickets: tickets}
}

func (r *memoryTicketRepository) Insert(ticket domain.Ticket) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets = append([]domain.Ticket{ticket}, r.tickets...)
}

func (r *memoryTicketRepository) Get(id string) (domain.Ticket, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.tickets {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Ticket{}, false
}

func (r *memoryTicketRepository) Update(id string, mutate func(*domain.Ticket)) (domain.Ticket, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tickets {
		if r.tickets[i].ID == id {
			mutate(&r.tickets[i])
			return r.tickets[i], true
		}
	}
	return domain.Ticket{}, false
}

func (r *memoryTicketRepository) List() []domain.Ticket {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snapshot := make([]domain.Ticket, len(r.tickets))
	copy(snapshot, r.tickets)
	return snapshot
}

func (r *memoryTicketRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tickets)
}
