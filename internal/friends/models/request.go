package models

import (
	"strings"
	"time"
	"unicode/utf8"

	id "divelog/pkg/domain"
	dErrors "divelog/pkg/domain-errors"
)

// DefaultRequestTTL is how long a request stays actionable after creation, and how long
// a resolved request stays visible after acceptance or rejection.
const DefaultRequestTTL = 14 * 24 * time.Hour

// MaxReasonLength bounds the optional rejection reason, in runes.
const MaxReasonLength = 500

// RequestStatus is derived from Accepted and ExpiresAt; it is never persisted.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
	RequestStatusExpired  RequestStatus = "expired"
)

// FriendRequest is a directional, time-limited proposal from FromUserID to ToUserID.
//
// Invariants:
//   - FromUserID != ToUserID
//   - ExpiresAt is after CreatedAt
//   - Accepted is nil while pending; once set it never changes again
//   - a request whose ExpiresAt is before now is expired whatever Accepted says
type FriendRequest struct {
	ID         id.FriendRequestID `json:"id"`
	FromUserID id.UserID          `json:"from_user_id"`
	ToUserID   id.UserID          `json:"to_user_id"`
	CreatedAt  time.Time          `json:"created_at"`
	ExpiresAt  time.Time          `json:"expires_at"`
	Accepted   *bool              `json:"accepted"`
	Reason     *string            `json:"reason,omitempty"`
}

// NewFriendRequest builds a pending request that expires ttl after now.
func NewFriendRequest(requestID id.FriendRequestID, from, to id.UserID, now time.Time, ttl time.Duration) (*FriendRequest, error) {
	if from.IsNil() || to.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "user ids are required")
	}
	if from == to {
		return nil, dErrors.New(dErrors.CodeInvalidOperation, "cannot send a friend request to yourself")
	}
	if ttl <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "request ttl must be positive")
	}
	return &FriendRequest{
		ID:         requestID,
		FromUserID: from,
		ToUserID:   to,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}, nil
}

// IsResolved reports whether the request was accepted or rejected.
func (r *FriendRequest) IsResolved() bool {
	return r.Accepted != nil
}

// IsExpired uses strict comparison: a request expiring exactly at now is still live.
func (r *FriendRequest) IsExpired(now time.Time) bool {
	return r.ExpiresAt.Before(now)
}

// Status derives the lifecycle state at now. Expiry wins over resolution.
func (r *FriendRequest) Status(now time.Time) RequestStatus {
	switch {
	case r.IsExpired(now):
		return RequestStatusExpired
	case r.Accepted == nil:
		return RequestStatusPending
	case *r.Accepted:
		return RequestStatusAccepted
	default:
		return RequestStatusRejected
	}
}

// CanResolve checks whether accept/reject may act on the request at now.
// Resolution is checked before expiry, so a resolved request always reports
// CodeInvalidOperation.
func (r *FriendRequest) CanResolve(now time.Time) error {
	if r.IsResolved() {
		return dErrors.New(dErrors.CodeInvalidOperation, "friend request has already been resolved")
	}
	if r.IsExpired(now) {
		return dErrors.New(dErrors.CodeExpired, "friend request has expired")
	}
	return nil
}

// ApplyAcceptance marks the request accepted and restarts its display window.
// Must only be called after CanResolve returns nil.
func (r *FriendRequest) ApplyAcceptance(now time.Time, ttl time.Duration) {
	accepted := true
	r.Accepted = &accepted
	r.Reason = nil
	r.ExpiresAt = now.Add(ttl)
}

// ApplyRejection marks the request rejected, records the reason and restarts its
// display window. Must only be called after CanResolve returns nil.
func (r *FriendRequest) ApplyRejection(now time.Time, ttl time.Duration, reason *string) {
	accepted := false
	r.Accepted = &accepted
	r.Reason = reason
	r.ExpiresAt = now.Add(ttl)
}

// Involves reports whether userID is either side of the request.
func (r *FriendRequest) Involves(userID id.UserID) bool {
	return r.FromUserID == userID || r.ToUserID == userID
}

// NormalizeReason trims the reason and drops it when blank.
func NormalizeReason(reason *string) (*string, error) {
	if reason == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*reason)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > MaxReasonLength {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "reason must be 500 characters or less")
	}
	return &trimmed, nil
}
