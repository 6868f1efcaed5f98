package event

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeUserRegistered    Type = "user.registered"
	TypeStaffCreated      Type = "user.staff_created"
	TypeComplaintCreated  Type = "complaint.created"
	TypeComplaintApproved Type = "complaint.approved"
	TypeComplaintRejected Type = "complaint.rejected"
)

type Event struct {
	ID        string `json:"id"`
	Type      Type   `json:"type"`
	Payload   any    `json:"payload"`
	Timestamp string `json:"timestamp"`
	// ActorID is the user who triggered the event.
	ActorID   int64  `json:"actor_id,omitempty"`
}

// New stamps an event with a fresh id and the current UTC time.
func New(typ Type, actorID int64, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      typ,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		ActorID:   actorID,
	}
}

type Publisher interface {
	Publish(e Event)
}

type Bus interface {
	Publisher
	// Subscribe returns the event channel and a function that unsubscribes it.
	Subscribe() (<-chan Event, func())
}

// Discard drops every event. Used when nothing listens.
type Discard struct{}

func (Discard) Publish(Event) {}
