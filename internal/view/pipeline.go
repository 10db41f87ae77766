// Package view derives the dashboard's ticket view. Everything here is a
// pure function of (ticket list, view parameters); the store recomputes the
// pipeline on every read instead of caching.
package view

import (
	"sort"
	"strings"

	"github.com/spec-kit/triage-dashboard/internal/domain"
)

// FilterAll matches every value of a filter dimension.
const FilterAll = "All"

// SortMode selects the ordering of the ticket list.
type SortMode string

const (
	SortDefault        SortMode = "Default"
	SortConfidenceDesc SortMode = "ConfidenceDesc"
	SortConfidenceAsc  SortMode = "ConfidenceAsc"
)

// ParseSortMode maps a raw string onto a SortMode, defaulting to SortDefault.
func ParseSortMode(raw string) SortMode {
	switch SortMode(raw) {
	case SortConfidenceDesc, SortConfidenceAsc:
		return SortMode(raw)
	default:
		return SortDefault
	}
}

// Params are the transient, user-controlled filter, search and sort
// settings. They are never persisted.
type Params struct {
	Category string
	Priority string
	Status   string
	Query    string
	Sort     SortMode
}

// DefaultParams returns the unfiltered, default-sorted view settings.
func DefaultParams() Params {
	return Params{
		Category: FilterAll,
		Priority: FilterAll,
		Status:   FilterAll,
		Sort:     SortDefault,
	}
}

// ClearFilters resets the four filter parameters to their defaults. The
// sort mode is left untouched.
func (p Params) ClearFilters() Params {
	cleared := DefaultParams()
	cleared.Sort = p.Sort
	return cleared
}

// Matches reports whether a ticket satisfies every filter predicate: the
// category, priority and status filters plus the free-text search. The
// predicates combine as a conjunction.
func Matches(t domain.Ticket, p Params) bool {
	if p.Category != FilterAll && p.Category != "" && string(t.Category) != p.Category {
		return false
	}
	if p.Priority != FilterAll && p.Priority != "" && string(t.Priority) != p.Priority {
		return false
	}
	if p.Status != FilterAll && p.Status != "" && string(t.Status) != p.Status {
		return false
	}
	query := strings.ToLower(strings.TrimSpace(p.Query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Message), query) ||
		strings.Contains(strings.ToLower(t.CustomerName), query) ||
		strings.Contains(strings.ToLower(t.ID), query)
}

// Filter returns the tickets passing every predicate, preserving order.
func Filter(tickets []domain.Ticket, p Params) []domain.Ticket {
	filtered := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if Matches(t, p) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// Sort returns a sorted copy of the tickets.
//
// The confidence modes order by AIConfidence (absent scored as zero). The
// default mode is a multi-key sort: Open before Resolved, then priority rank
// High before Medium before Low, then newest first.
func Sort(tickets []domain.Ticket, mode SortMode) []domain.Ticket {
	sorted := make([]domain.Ticket, len(tickets))
	copy(sorted, tickets)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch mode {
		case SortConfidenceDesc:
			return a.Confidence() > b.Confidence()
		case SortConfidenceAsc:
			return a.Confidence() < b.Confidence()
		}
		if a.Status != b.Status {
			return a.Status == domain.TicketStatusOpen
		}
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() < b.Priority.Rank()
		}
		return a.Timestamp.After(b.Timestamp)
	})
	return sorted
}

// ComputeStats aggregates the entire unfiltered collection. View parameters
// never influence the result.
func ComputeStats(tickets []domain.Ticket) domain.Stats {
	stats := domain.Stats{Total: len(tickets)}

	byCategory := make(map[domain.TicketCategory]int, len(tickets))
	byPriority := make(map[domain.TicketPriority]int, len(tickets))
	for _, t := range tickets {
		switch t.Status {
		case domain.TicketStatusOpen:
			stats.Open++
			if t.Priority == domain.TicketPriorityHigh {
				stats.HighPriorityOpen++
			}
		case domain.TicketStatusResolved:
			stats.Resolved++
		}
		byCategory[t.Category]++
		byPriority[t.Priority]++
	}

	for _, cat := range domain.Categories() {
		stats.ByCategory = append(stats.ByCategory, domain.CategoryCount{Name: cat, Count: byCategory[cat]})
	}
	for _, prio := range domain.Priorities() {
		stats.ByPriority = append(stats.ByPriority, domain.PriorityCount{Name: prio, Count: byPriority[prio]})
	}
	return stats
}
