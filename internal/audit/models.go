package audit

import "time"

// Action names a lifecycle transition worth keeping a record of.
type Action string

const (
	ActionRequestCreated    Action = "friend_request.created"
	ActionRequestAccepted   Action = "friend_request.accepted"
	ActionRequestRejected   Action = "friend_request.rejected"
	ActionRequestCancelled  Action = "friend_request.cancelled"
	ActionFriendshipRemoved Action = "friendship.removed"
	ActionRequestsPurged    Action = "friend_request.purged"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	UserID    string    `json:"user_id,omitempty"`
	SubjectID string    `json:"subject_id,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Count     int       `json:"count,omitempty"`

	// CorrelationID is the inbound request id the event was produced under.
	CorrelationID string `json:"correlation_id,omitempty"`
}
