package domain

// CategoryCount is a per-category tally for charting.
type CategoryCount struct {
	Name  TicketCategory
	Count int
}

// PriorityCount is a per-priority tally for charting.
type PriorityCount struct {
	Name  TicketPriority
	Count int
}

// Stats aggregates the whole ticket collection, independent of any view
// filters. The breakdowns cover every enumerated value, zeros included.
type Stats struct {
	Total            int
	Open             int
	Resolved         int
	HighPriorityOpen int
	ByCategory       []CategoryCount
	ByPriority       []PriorityCount
}
