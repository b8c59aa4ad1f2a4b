package audit

import (
	"time"

	"github.com/google/uuid"
)

// UserType is the access class the event's subject authenticated under.
type UserType string

const (
	UserTypeAdmin  UserType = "admin"
	UserTypeClient UserType = "client"
)

// Action names the access transition an event records. The set is open on the
// wire: stores may hold values written by newer deployments, so unrecognized
// actions stay representable and categorize as "other" instead of failing.
type Action string

const (
	ActionLogin  Action = "login"
	ActionLogout Action = "logout"
)

// Category is the display grouping the viewer assigns to an event.
type Category string

const (
	CategoryLogin  Category = "login"
	CategoryLogout Category = "logout"
	CategoryOther  Category = "other"
)

// Category returns the display category for this action.
// Unknown actions fall back to CategoryOther.
func (a Action) Category() Category {
	switch a {
	case ActionLogin:
		return CategoryLogin
	case ActionLogout:
		return CategoryLogout
	default:
		return CategoryOther
	}
}

// Event is an immutable record of one access transition. Timestamp reflects
// the moment the transition was accepted, not when the store persisted it.
// Events are never mutated or deleted by this service; retention belongs to
// the store.
type Event struct {
	ID        uuid.UUID
	UserType  UserType
	UserName  string
	Action    Action
	Timestamp time.Time
}
