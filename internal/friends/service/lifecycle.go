package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/trace"

	"divelog/internal/audit"
	"divelog/internal/friends/models"
	id "divelog/pkg/domain"
	dErrors "divelog/pkg/domain-errors"
	"divelog/pkg/platform/sentinel"
	"divelog/pkg/requestcontext"
)

const (
	opCreate = "create"
	opAccept = "accept"
	opReject = "reject"
	opCancel = "cancel"
	opRemove = "remove_friendship"
)

// LifecycleService owns every write to friend requests and friendships.
//
// Idempotency policy, applied to every mutation:
//   - no matching row: (false, nil)
//   - request already accepted or rejected: CodeInvalidOperation
//   - request unresolved but past ExpiresAt: CodeExpired
//
// Concurrency: accept and reject read the request with a row lock inside the
// transaction and resolve it with a conditional update. A second resolver
// blocks on the lock, then sees the request resolved and fails with
// CodeInvalidOperation; friendship rows are therefore written once.
type LifecycleService struct {
	requests    RequestStore
	friendships FriendshipStore
	tx          FriendStoreTx
	settings
}

// NewLifecycleService constructs the lifecycle manager. requests and friendships
// serve single-statement operations; tx serves the multi-row ones.
func NewLifecycleService(requests RequestStore, friendships FriendshipStore, tx FriendStoreTx, opts ...Option) (*LifecycleService, error) {
	if requests == nil {
		return nil, errors.New("request store is required")
	}
	if friendships == nil {
		return nil, errors.New("friendship store is required")
	}
	if tx == nil {
		return nil, errors.New("transaction runner is required")
	}
	return &LifecycleService{
		requests:    requests,
		friendships: friendships,
		tx:          tx,
		settings:    newSettings(opts),
	}, nil
}

// CreateRequest proposes a friendship from requesterID to recipientID.
func (s *LifecycleService) CreateRequest(ctx context.Context, requesterID, recipientID id.UserID) (*models.FriendRequest, error) {
	ctx, span := s.startSpan(ctx, "CreateRequest", requesterID, recipientID)
	defer span.End()

	now := s.now(ctx)
	req, err := models.NewFriendRequest(id.NewFriendRequestID(), requesterID, recipientID, now, s.ttl)
	if err != nil {
		return nil, s.fail(ctx, span, opCreate, err, "")
	}

	err = s.tx.RunInTx(ctx, func(stores TxStores) error {
		friends, err := stores.Friendships.FriendshipExists(ctx, requesterID, recipientID)
		if err != nil {
			return err
		}
		if friends {
			return dErrors.New(dErrors.CodeConflict, "users are already friends")
		}
		if _, err := stores.Requests.ClearStaleRequests(ctx, requesterID, recipientID, now); err != nil {
			return err
		}
		if err := stores.Requests.CreateRequest(ctx, req); err != nil {
			switch {
			case errors.Is(err, sentinel.ErrConflict):
				return dErrors.New(dErrors.CodeConflict, "a friend request between these users already exists")
			case errors.Is(err, sentinel.ErrNotFound):
				return dErrors.New(dErrors.CodeNotFound, "user not found")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, span, opCreate, err, "failed to create friend request")
	}

	s.logger.InfoContext(ctx, "friend request created",
		"request_id", requestcontext.RequestID(ctx),
		"friend_request_id", req.ID.String(),
		"from_user_id", requesterID.String(),
		"to_user_id", recipientID.String(),
	)
	if s.metrics != nil {
		s.metrics.IncrementRequestsCreated()
	}
	s.emit(ctx, audit.Event{
		Timestamp: now,
		Action:    audit.ActionRequestCreated,
		UserID:    requesterID.String(),
		SubjectID: recipientID.String(),
		RequestID: req.ID.String(),
	})
	return req, nil
}

// AcceptRequest accepts the fromID→toID request and creates both friendship rows
// in the same transaction. Returns false when no such request exists.
func (s *LifecycleService) AcceptRequest(ctx context.Context, fromID, toID id.UserID) (bool, error) {
	ctx, span := s.startSpan(ctx, "AcceptRequest", fromID, toID)
	defer span.End()

	req, err := s.resolve(ctx, fromID, toID, func(stores TxStores, req *models.FriendRequest, now time.Time) error {
		req.ApplyAcceptance(now, s.ttl)
		if err := resolveRequest(ctx, stores, req); err != nil {
			return err
		}
		pair := models.NewFriendshipPair(req.FromUserID, req.ToUserID, now)
		if err := stores.Friendships.CreateFriendshipPair(ctx, pair); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeConflict, "users are already friends")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return false, s.fail(ctx, span, opAccept, err, "failed to accept friend request")
	}
	if req == nil {
		return false, nil
	}

	s.logger.InfoContext(ctx, "friend request accepted",
		"request_id", requestcontext.RequestID(ctx),
		"friend_request_id", req.ID.String(),
		"from_user_id", fromID.String(),
		"to_user_id", toID.String(),
	)
	if s.metrics != nil {
		s.metrics.IncrementRequestsResolved(string(models.RequestStatusAccepted))
	}
	s.emit(ctx, audit.Event{
		Action:    audit.ActionRequestAccepted,
		UserID:    toID.String(),
		SubjectID: fromID.String(),
		RequestID: req.ID.String(),
	})
	return true, nil
}

// RejectRequest declines the fromID→toID request, keeping it visible with the
// optional reason until its window lapses. Returns false when no such request exists.
func (s *LifecycleService) RejectRequest(ctx context.Context, fromID, toID id.UserID, reason *string) (bool, error) {
	ctx, span := s.startSpan(ctx, "RejectRequest", fromID, toID)
	defer span.End()

	normalized, err := models.NormalizeReason(reason)
	if err != nil {
		return false, s.fail(ctx, span, opReject, err, "")
	}

	req, err := s.resolve(ctx, fromID, toID, func(stores TxStores, req *models.FriendRequest, now time.Time) error {
		req.ApplyRejection(now, s.ttl, normalized)
		return resolveRequest(ctx, stores, req)
	})
	if err != nil {
		return false, s.fail(ctx, span, opReject, err, "failed to reject friend request")
	}
	if req == nil {
		return false, nil
	}

	s.logger.InfoContext(ctx, "friend request rejected",
		"request_id", requestcontext.RequestID(ctx),
		"friend_request_id", req.ID.String(),
		"from_user_id", fromID.String(),
		"to_user_id", toID.String(),
	)
	if s.metrics != nil {
		s.metrics.IncrementRequestsResolved(string(models.RequestStatusRejected))
	}
	event := audit.Event{
		Action:    audit.ActionRequestRejected,
		UserID:    toID.String(),
		SubjectID: fromID.String(),
		RequestID: req.ID.String(),
	}
	if normalized != nil {
		event.Reason = *normalized
	}
	s.emit(ctx, event)
	return true, nil
}

// CancelRequest deletes the fromID→toID request whatever its state.
func (s *LifecycleService) CancelRequest(ctx context.Context, fromID, toID id.UserID) (bool, error) {
	ctx, span := s.startSpan(ctx, "CancelRequest", fromID, toID)
	defer span.End()

	if err := requireUsers(fromID, toID); err != nil {
		return false, s.fail(ctx, span, opCancel, err, "")
	}
	deleted, err := s.requests.DeleteRequest(ctx, fromID, toID)
	if err != nil {
		return false, s.fail(ctx, span, opCancel, err, "failed to cancel friend request")
	}
	if !deleted {
		return false, nil
	}

	s.logger.InfoContext(ctx, "friend request cancelled",
		"request_id", requestcontext.RequestID(ctx),
		"from_user_id", fromID.String(),
		"to_user_id", toID.String(),
	)
	if s.metrics != nil {
		s.metrics.IncrementRequestsCancelled()
	}
	s.emit(ctx, audit.Event{
		Action:    audit.ActionRequestCancelled,
		UserID:    fromID.String(),
		SubjectID: toID.String(),
	})
	return true, nil
}

// RemoveFriendship deletes both directional rows for the pair in one statement.
func (s *LifecycleService) RemoveFriendship(ctx context.Context, userID, friendID id.UserID) (bool, error) {
	ctx, span := s.startSpan(ctx, "RemoveFriendship", userID, friendID)
	defer span.End()

	if err := requireUsers(userID, friendID); err != nil {
		return false, s.fail(ctx, span, opRemove, err, "")
	}
	removed, err := s.friendships.DeleteFriendshipPair(ctx, userID, friendID)
	if err != nil {
		return false, s.fail(ctx, span, opRemove, err, "failed to remove friendship")
	}
	if removed == 0 {
		return false, nil
	}

	s.logger.InfoContext(ctx, "friendship removed",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", userID.String(),
		"friend_id", friendID.String(),
		"rows", removed,
	)
	if s.metrics != nil {
		s.metrics.IncrementFriendshipsRemoved()
	}
	s.emit(ctx, audit.Event{
		Action:    audit.ActionFriendshipRemoved,
		UserID:    userID.String(),
		SubjectID: friendID.String(),
	})
	return true, nil
}

type resolveFunc func(stores TxStores, req *models.FriendRequest, now time.Time) error

// resolve runs the shared accept/reject precondition checks on a freshly locked
// row, then apply. A nil request with a nil error means nothing matched.
func (s *LifecycleService) resolve(ctx context.Context, fromID, toID id.UserID, apply resolveFunc) (*models.FriendRequest, error) {
	if err := requireUsers(fromID, toID); err != nil {
		return nil, err
	}
	now := s.now(ctx)

	var resolved *models.FriendRequest
	err := s.tx.RunInTx(ctx, func(stores TxStores) error {
		req, err := stores.Requests.FindRequestForUpdate(ctx, fromID, toID)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := req.CanResolve(now); err != nil {
			return err
		}
		if err := apply(stores, req, now); err != nil {
			return err
		}
		resolved = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

func resolveRequest(ctx context.Context, stores TxStores, req *models.FriendRequest) error {
	err := stores.Requests.ResolveRequest(ctx, req)
	if errors.Is(err, sentinel.ErrInvalidState) || errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeInvalidOperation, "friend request has already been resolved")
	}
	return err
}

// fail translates err, records it on the span and in logs/metrics, and returns it.
func (s *LifecycleService) fail(ctx context.Context, span trace.Span, op string, err error, message string) error {
	if message == "" {
		message = "friend " + op + " failed"
	}
	err = translate(err, message)
	recordSpanError(span, err)

	if isDomainRejection(err) {
		s.logger.WarnContext(ctx, "friend operation rejected",
			"request_id", requestcontext.RequestID(ctx),
			"operation", op,
			"code", string(dErrors.CodeOf(err)),
			"error", err.Error(),
		)
		if s.metrics != nil {
			s.metrics.IncrementOperationRejected(op, string(dErrors.CodeOf(err)))
		}
		return err
	}
	s.logger.ErrorContext(ctx, "friend operation failed",
		"request_id", requestcontext.RequestID(ctx),
		"operation", op,
		"error", err.Error(),
	)
	return err
}

// emit records an audit event; a failing sink never fails the operation.
func (s *LifecycleService) emit(ctx context.Context, event audit.Event) {
	if s.audit == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now(ctx)
	}
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", string(event.Action),
			"error", err.Error(),
		)
	}
}
