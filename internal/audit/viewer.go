package audit

import "sort"

// EmptyPlaceholder is the distinct rendering for a trail with no events yet.
const EmptyPlaceholder = "no events recorded"

// Entry is one renderable audit row: the event plus its display category.
type Entry struct {
	Event
	Category Category
}

// Presentation is the viewer's ordered, categorized snapshot. Empty input is
// a first-class branch carrying a placeholder rather than an empty list.
type Presentation struct {
	Empty       bool
	Placeholder string
	Entries     []Entry
}

// Present orders and categorizes a snapshot of events for display. It is a
// pure function of its input: the snapshot may arrive in any order, and the
// viewer establishes the presentation order itself, most recent first. The
// input slice is not modified.
func Present(events []Event) Presentation {
	if len(events) == 0 {
		return Presentation{Empty: true, Placeholder: EmptyPlaceholder}
	}

	entries := make([]Entry, 0, len(events))
	for _, event := range events {
		entries = append(entries, Entry{Event: event, Category: event.Action.Category()})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	return Presentation{Entries: entries}
}
