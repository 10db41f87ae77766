package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spec-kit/triage-dashboard/internal/domain"
	"github.com/spec-kit/triage-dashboard/internal/events"
	"github.com/spec-kit/triage-dashboard/internal/repository"
	"github.com/spec-kit/triage-dashboard/internal/seed"
	"github.com/spec-kit/triage-dashboard/internal/service"
	"github.com/spec-kit/triage-dashboard/internal/triage"
	"github.com/spec-kit/triage-dashboard/internal/view"
	apperrors "github.com/spec-kit/triage-dashboard/pkg/util"
)

// testClock hands out strictly increasing timestamps so sort assertions
// never hit ties.
func testClock() func() time.Time {
	var mu sync.Mutex
	current := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

func newService(t *testing.T, latency time.Duration, seedTickets []domain.Ticket) *service.DashboardService {
	t.Helper()
	return service.NewDashboardService(service.DashboardDependencies{
		TicketRepo: repository.NewTicketRepository(seedTickets),
		Classifier: triage.NewClassifier(latency),
		Dispatcher: events.NewInMemoryDispatcher(),
		Clock:      testClock(),
	})
}

func TestCreateWithExplicitFieldsSkipsClassifier(t *testing.T) {
	// A nil classifier guarantees any classification attempt panics; the
	// explicit path must never reach it.
	svc := service.NewDashboardService(service.DashboardDependencies{
		TicketRepo: repository.NewTicketRepository(nil),
		Dispatcher: events.NewInMemoryDispatcher(),
		Clock:      testClock(),
	})

	ticket, err := svc.CreateTicket(context.Background(), service.TicketCreateInput{
		Message:      "System crashed, urgent!",
		CustomerName: "Sarah Connor",
		Category:     domain.TicketCategoryBug,
		Priority:     domain.TicketPriorityHigh,
		Status:       domain.TicketStatusOpen,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ticket.AIConfidence == nil || *ticket.AIConfidence != 1.0 {
		t.Fatalf("confidence = %v, want exactly 1.0", ticket.AIConfidence)
	}
	if ticket.Category != domain.TicketCategoryBug || ticket.Priority != domain.TicketPriorityHigh {
		t.Fatalf("fields not taken from input: %s/%s", ticket.Category, ticket.Priority)
	}
}

func TestCreateWithAutoCategoryUsesClassifier(t *testing.T) {
	svc := newService(t, 0, nil)

	ticket, err := svc.CreateTicket(context.Background(), service.TicketCreateInput{
		Message:      "System crashed, urgent!",
		CustomerName: "Sarah Connor",
		Priority:     domain.TicketPriorityHigh, // explicit
		Status:       domain.TicketStatusOpen,
		// Category left empty: auto-detect.
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ticket.Category != domain.TicketCategoryBug {
		t.Fatalf("category = %s, want Bug from classifier", ticket.Category)
	}
	if ticket.Priority != domain.TicketPriorityHigh {
		t.Fatalf("priority = %s, want explicit High", ticket.Priority)
	}
	if ticket.AIConfidence == nil || *ticket.AIConfidence == 1.0 {
		t.Fatalf("confidence = %v, want classifier score, not 1.0", ticket.AIConfidence)
	}
	if *ticket.AIConfidence < 0.80 || *ticket.AIConfidence > 0.90 {
		t.Fatalf("confidence %v outside classifier match band", *ticket.AIConfidence)
	}
}

func TestCreatePrependsTicket(t *testing.T) {
	svc := newService(t, 0, seed.Tickets(time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)))

	ticket, err := svc.CreateTicket(context.Background(), service.TicketCreateInput{
		Message:      "Hello there",
		CustomerName: "John Wick",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	svc.SetSortMode(view.SortDefault)
	svc.ClearFilters()
	// The raw collection keeps newest-first insertion order; check through
	// a search that isolates the new ticket.
	svc.SetSearchQuery(ticket.ID)
	got := svc.SortedTickets()
	if len(got) != 1 || got[0].ID != ticket.ID {
		t.Fatalf("new ticket not retrievable by id: %v", got)
	}
}

func TestTicketIDsUniqueAndMonotonic(t *testing.T) {
	seedTickets := seed.Tickets(time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC))
	svc := newService(t, 0, seedTickets)

	seen := map[string]bool{}
	for _, tk := range seedTickets {
		seen[tk.ID] = true
	}
	for i := 0; i < 10; i++ {
		ticket, err := svc.CreateTicket(context.Background(), service.TicketCreateInput{
			Message:      "Hello there",
			CustomerName: "Ellen Ripley",
		})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if seen[ticket.ID] {
			t.Fatalf("duplicate id %s", ticket.ID)
		}
		seen[ticket.ID] = true
	}
	if len(seen) != len(seedTickets)+10 {
		t.Fatalf("got %d distinct ids, want %d", len(seen), len(seedTickets)+10)
	}
}

func TestCreateGuardRejectsConcurrentCreation(t *testing.T) {
	svc := newService(t, 100*time.Millisecond, nil)

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		_, err := svc.CreateTicket(context.Background(), service.TicketCreateInput{
			Message:      "Hello there",
			CustomerName: "Marty McFly",
		})
		done <- err
	}()

	<-started
	time.Sleep(20 * time.Millisecond)
	if !svc.IsAnalyzing() {
		t.Fatal("expected analyzing flag while creation pending")
	}

	_, err := svc.CreateTicket(context.Background(), service.TicketCreateInput{
		Message:      "second",
		CustomerName: "Tony Stark",
	})
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "CONFLICT" {
		t.Fatalf("expected conflict for re-entrant creation, got %v", err)
	}

	// Other operations stay available while the creation is pending.
	_ = svc.SortedTickets()
	_ = svc.Stats()

	if err := <-done; err != nil {
		t.Fatalf("first creation failed: %v", err)
	}
	if svc.IsAnalyzing() {
		t.Fatal("analyzing flag not cleared")
	}
}

func TestCreateCancelledClassificationLeavesStoreUnchanged(t *testing.T) {
	svc := newService(t, time.Minute, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.CreateTicket(ctx, service.TicketCreateInput{
		Message:      "Hello there",
		CustomerName: "Bruce Wayne",
	}); err == nil {
		t.Fatal("expected creation failure")
	}
	if stats := svc.Stats(); stats.Total != 0 {
		t.Fatalf("partial ticket created: total = %d", stats.Total)
	}
	if svc.IsAnalyzing() {
		t.Fatal("analyzing flag stuck after failure")
	}
}

func TestToggleStatusTwiceRestoresOriginal(t *testing.T) {
	seedTickets := seed.Tickets(time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC))
	svc := newService(t, 0, seedTickets)
	ctx := context.Background()

	first := svc.ToggleStatus(ctx, "T-1001")
	if first == nil || first.Status != domain.TicketStatusResolved {
		t.Fatalf("first toggle: %+v", first)
	}
	second := svc.ToggleStatus(ctx, "T-1001")
	if second == nil || second.Status != domain.TicketStatusOpen {
		t.Fatalf("second toggle: %+v", second)
	}
}

func TestToggleUnknownIDIsNoop(t *testing.T) {
	svc := newService(t, 0, seed.Tickets(time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)))

	before := svc.Stats()
	if got := svc.ToggleStatus(context.Background(), "T-9999"); got != nil {
		t.Fatalf("expected nil for unknown id, got %+v", got)
	}
	after := svc.Stats()
	if !statsEqual(before, after) {
		t.Fatal("unknown-id toggle changed state")
	}
}

func TestAssignSetAndClear(t *testing.T) {
	svc := newService(t, 0, seed.Tickets(time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)))
	ctx := context.Background()

	assigned := svc.AssignTicket(ctx, "T-1003", "Agent Cooper")
	if assigned == nil || assigned.AssignedTo != "Agent Cooper" {
		t.Fatalf("assign: %+v", assigned)
	}

	cleared := svc.AssignTicket(ctx, "T-1003", "  ")
	if cleared == nil || cleared.AssignedTo != "" {
		t.Fatalf("clear: %+v", cleared)
	}

	if got := svc.AssignTicket(ctx, "T-9999", "Agent Smith"); got != nil {
		t.Fatalf("unknown id should no-op, got %+v", got)
	}
}

func TestUpdateReplacesOnlyMutableFields(t *testing.T) {
	seedTickets := seed.Tickets(time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC))
	svc := newService(t, 0, seedTickets)

	updated := svc.UpdateTicket(context.Background(), "T-1003", service.TicketUpdateInput{
		Category:   domain.TicketCategoryBug,
		Priority:   domain.TicketPriorityHigh,
		Status:     domain.TicketStatusResolved,
		AssignedTo: "Agent Starling",
	})
	if updated == nil {
		t.Fatal("ticket not found")
	}
	if updated.Category != domain.TicketCategoryBug || updated.Priority != domain.TicketPriorityHigh ||
		updated.Status != domain.TicketStatusResolved || updated.AssignedTo != "Agent Starling" {
		t.Fatalf("mutable fields not replaced: %+v", updated)
	}
	if updated.Message != "Can you add support for dark mode in the next release?" {
		t.Fatalf("immutable message changed: %q", updated.Message)
	}
	if updated.CustomerName != "Charlie Davis" {
		t.Fatalf("immutable customer name changed: %q", updated.CustomerName)
	}
}

func TestStatsIndependentOfViewParameters(t *testing.T) {
	svc := newService(t, 0, seed.Tickets(time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)))

	before := svc.Stats()

	svc.SetFilterCategory("Bug")
	svc.SetFilterPriority("High")
	svc.SetFilterStatus("Resolved")
	svc.SetSearchQuery("invoice")
	svc.SetSortMode(view.SortConfidenceAsc)

	after := svc.Stats()
	if !statsEqual(before, after) {
		t.Fatalf("stats changed with view parameters:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestSortedTicketsAppliesFiltersAndSort(t *testing.T) {
	svc := newService(t, 0, seed.Tickets(time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)))

	svc.SetFilterCategory("Billing")
	svc.SetFilterStatus("Open")
	got := svc.SortedTickets()
	if len(got) == 0 {
		t.Fatal("expected billing tickets")
	}
	for _, tk := range got {
		if tk.Category != domain.TicketCategoryBilling || tk.Status != domain.TicketStatusOpen {
			t.Fatalf("filter leak: %+v", tk)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Priority.Rank() > got[i].Priority.Rank() {
			t.Fatalf("default sort violated at %d", i)
		}
	}
}

func TestClearFiltersLeavesSortMode(t *testing.T) {
	svc := newService(t, 0, nil)

	svc.SetFilterCategory("Bug")
	svc.SetSearchQuery("crash")
	svc.SetSortMode(view.SortConfidenceDesc)
	svc.ClearFilters()

	params := svc.Params()
	if params.Category != view.FilterAll || params.Query != "" {
		t.Fatalf("filters not cleared: %+v", params)
	}
	if params.Sort != view.SortConfidenceDesc {
		t.Fatalf("sort mode reset to %q", params.Sort)
	}
}

func TestCreatePublishesEvent(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	var received []events.Event
	dispatcher.Subscribe(events.EventTicketCreated, func(ctx context.Context, event events.Event) error {
		received = append(received, event)
		return nil
	})

	svc := service.NewDashboardService(service.DashboardDependencies{
		TicketRepo: repository.NewTicketRepository(nil),
		Classifier: triage.NewClassifier(0),
		Dispatcher: dispatcher,
		Clock:      testClock(),
	})
	ticket, err := svc.CreateTicket(context.Background(), service.TicketCreateInput{
		Message:      "Cancel my subscription immediately.",
		CustomerName: "Kevin Hart",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(received) != 1 {
		t.Fatalf("got %d events, want 1", len(received))
	}
	if received[0].TicketID != ticket.ID || received[0].ID == "" {
		t.Fatalf("event not filled: %+v", received[0])
	}
	payload, ok := received[0].Payload.(events.TicketCreatedPayload)
	if !ok || !payload.AutoDetected || payload.Category != domain.TicketCategoryBilling {
		t.Fatalf("payload = %+v", received[0].Payload)
	}
}

func statsEqual(a, b domain.Stats) bool {
	if a.Total != b.Total || a.Open != b.Open || a.Resolved != b.Resolved || a.HighPriorityOpen != b.HighPriorityOpen {
		return false
	}
	for i := range a.ByCategory {
		if a.ByCategory[i] != b.ByCategory[i] {
			return false
		}
	}
	for i := range a.ByPriority {
		if a.ByPriority[i] != b.ByPriority[i] {
			return false
		}
	}
	return true
}
