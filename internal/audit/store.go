package audit

import "context"

// Store is the external audit log collaborator. It is append-mostly: this
// service appends and queries, it never updates or deletes. List results carry
// no ordering guarantee; presentation ordering is the viewer's job.
type Store interface {
	Append(ctx context.Context, event Event) error
	List(ctx context.Context) ([]Event, error)
}
