package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/trace"

	"divelog/internal/friends/models"
	id "divelog/pkg/domain"
	dErrors "divelog/pkg/domain-errors"
	"divelog/pkg/platform/sentinel"
)

// QueryService answers read-only questions about friends and friend requests.
// It never writes and needs no transaction.
type QueryService struct {
	requests    RequestStore
	friendships FriendshipStore
	settings
}

func NewQueryService(requests RequestStore, friendships FriendshipStore, opts ...Option) (*QueryService, error) {
	if requests == nil {
		return nil, errors.New("request store is required")
	}
	if friendships == nil {
		return nil, errors.New("friendship store is required")
	}
	return &QueryService{
		requests:    requests,
		friendships: friendships,
		settings:    newSettings(opts),
	}, nil
}

// ListFriends returns one page of userID's friends with their profiles.
func (s *QueryService) ListFriends(ctx context.Context, userID id.UserID, opts models.FriendListOptions) (*models.Page[models.FriendView], error) {
	ctx, span := s.startSpan(ctx, "ListFriends", userID, userID)
	defer span.End()

	if userID.IsNil() {
		return nil, s.reject(span, dErrors.New(dErrors.CodeInvalidInput, "user id is required"))
	}
	opts = opts.Normalize()
	if err := opts.Validate(); err != nil {
		return nil, s.reject(span, err)
	}

	items, total, err := s.friendships.ListFriends(ctx, userID, opts)
	if err != nil {
		return nil, s.reject(span, translate(err, "failed to list friends"))
	}
	if items == nil {
		items = []models.FriendView{}
	}
	return &models.Page[models.FriendView]{
		Items:      items,
		TotalCount: total,
		Skip:       opts.Skip,
		Limit:      opts.Limit,
	}, nil
}

// ListFriendRequests returns one page of userID's requests with derived status.
func (s *QueryService) ListFriendRequests(ctx context.Context, userID id.UserID, opts models.RequestListOptions) (*models.Page[models.FriendRequestView], error) {
	ctx, span := s.startSpan(ctx, "ListFriendRequests", userID, userID)
	defer span.End()

	if userID.IsNil() {
		return nil, s.reject(span, dErrors.New(dErrors.CodeInvalidInput, "user id is required"))
	}
	opts = opts.Normalize()
	if err := opts.Validate(); err != nil {
		return nil, s.reject(span, err)
	}

	now := s.now(ctx)
	items, total, err := s.requests.ListRequests(ctx, userID, opts, now)
	if err != nil {
		return nil, s.reject(span, translate(err, "failed to list friend requests"))
	}
	if items == nil {
		items = []models.FriendRequestView{}
	}
	for i := range items {
		items[i].Status = items[i].FriendRequest.Status(now)
	}
	return &models.Page[models.FriendRequestView]{
		Items:      items,
		TotalCount: total,
		Skip:       opts.Skip,
		Limit:      opts.Limit,
	}, nil
}

// GetFriend returns friendID as seen from userID, or nil when they are not friends.
func (s *QueryService) GetFriend(ctx context.Context, userID, friendID id.UserID) (*models.FriendView, error) {
	ctx, span := s.startSpan(ctx, "GetFriend", userID, friendID)
	defer span.End()

	if err := requireUsers(userID, friendID); err != nil {
		return nil, s.reject(span, err)
	}
	view, err := s.friendships.FindFriend(ctx, userID, friendID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, s.reject(span, translate(err, "failed to get friend"))
	}
	return view, nil
}

// GetFriendRequest returns the request between the two users in either
// direction, or nil when there is none.
func (s *QueryService) GetFriendRequest(ctx context.Context, userID, friendID id.UserID) (*models.FriendRequestView, error) {
	ctx, span := s.startSpan(ctx, "GetFriendRequest", userID, friendID)
	defer span.End()

	if err := requireUsers(userID, friendID); err != nil {
		return nil, s.reject(span, err)
	}
	view, err := s.requests.FindRequestView(ctx, userID, friendID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, s.reject(span, translate(err, "failed to get friend request"))
	}
	view.Status = view.FriendRequest.Status(s.now(ctx))
	return view, nil
}

func (s *QueryService) AreFriends(ctx context.Context, userID, friendID id.UserID) (bool, error) {
	ctx, span := s.startSpan(ctx, "AreFriends", userID, friendID)
	defer span.End()

	if err := requireUsers(userID, friendID); err != nil {
		return false, s.reject(span, err)
	}
	ok, err := s.friendships.FriendshipExists(ctx, userID, friendID)
	if err != nil {
		return false, s.reject(span, translate(err, "failed to check friendship"))
	}
	return ok, nil
}

func (s *QueryService) reject(span trace.Span, err error) error {
	recordSpanError(span, err)
	if !isDomainRejection(err) {
		s.logger.Error("friend query failed", "error", err.Error())
	}
	return err
}
