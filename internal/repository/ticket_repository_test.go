package repository_test

import (
	"testing"
	"time"

	"github.com/spec-kit/triage-dashboard/internal/domain"
	"github.com/spec-kit/triage-dashboard/internal/repository"
)

func ticket(id string) domain.Ticket {
	return domain.Ticket{
		ID:           id,
		CustomerName: "Test Customer",
		Message:      "test message",
		Timestamp:    time.Now(),
		Category:     domain.TicketCategoryGeneral,
		Priority:     domain.TicketPriorityLow,
		Status:       domain.TicketStatusOpen,
	}
}

func TestInsertPrependsNewestFirst(t *testing.T) {
	repo := repository.NewTicketRepository([]domain.Ticket{ticket("T-1001")})
	repo.Insert(ticket("T-1002"))
	repo.Insert(ticket("T-1003"))

	list := repo.List()
	want := []string{"T-1003", "T-1002", "T-1001"}
	if len(list) != len(want) {
		t.Fatalf("got %d tickets, want %d", len(list), len(want))
	}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("list[%d] = %s, want %s", i, list[i].ID, id)
		}
	}
	if repo.Count() != 3 {
		t.Fatalf("count = %d, want 3", repo.Count())
	}
}

func TestUpdateMutatesInPlace(t *testing.T) {
	repo := repository.NewTicketRepository([]domain.Ticket{ticket("T-1001"), ticket("T-1002")})

	updated, ok := repo.Update("T-1002", func(tk *domain.Ticket) {
		tk.Status = domain.TicketStatusResolved
	})
	if !ok {
		t.Fatal("expected T-1002 to be found")
	}
	if updated.Status != domain.TicketStatusResolved {
		t.Fatalf("returned status = %s", updated.Status)
	}

	stored, ok := repo.Get("T-1002")
	if !ok || stored.Status != domain.TicketStatusResolved {
		t.Fatalf("stored ticket not updated: %+v", stored)
	}
	if repo.Count() != 2 {
		t.Fatalf("count changed to %d", repo.Count())
	}
}

func TestUpdateUnknownIDReportsFalse(t *testing.T) {
	repo := repository.NewTicketRepository(nil)
	if _, ok := repo.Update("T-9999", func(tk *domain.Ticket) {
		t.Fatal("mutate must not run for unknown id")
	}); ok {
		t.Fatal("expected ok=false for unknown id")
	}
}

func TestListReturnsSnapshot(t *testing.T) {
	repo := repository.NewTicketRepository([]domain.Ticket{ticket("T-1001")})

	list := repo.List()
	list[0].Status = domain.TicketStatusResolved
	list[0].ID = "mutated"

	stored, ok := repo.Get("T-1001")
	if !ok {
		t.Fatal("original ticket missing")
	}
	if stored.Status != domain.TicketStatusOpen {
		t.Fatal("mutating the snapshot leaked into the repository")
	}
}
