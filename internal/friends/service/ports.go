package service

import (
	"context"
	"time"

	"divelog/internal/audit"
	"divelog/internal/friends/models"
	id "divelog/pkg/domain"
)

// RequestStore persists friend requests. Implementations return sentinel errors:
// ErrNotFound for missing rows or missing referenced users, ErrConflict when the
// unordered-pair uniqueness rejects an insert, ErrInvalidState when a conditional
// resolve matched no pending row.
type RequestStore interface {
	CreateRequest(ctx context.Context, req *models.FriendRequest) error
	// FindRequestForUpdate reads the from→to request and locks it for the
	// remainder of the enclosing transaction.
	FindRequestForUpdate(ctx context.Context, from, to id.UserID) (*models.FriendRequest, error)
	// ClearStaleRequests deletes rows for the unordered pair that no longer block a
	// new proposal: expired rows and accepted rows whose friendship was removed.
	ClearStaleRequests(ctx context.Context, a, b id.UserID, now time.Time) (int, error)
	ResolveRequest(ctx context.Context, req *models.FriendRequest) error
	DeleteRequest(ctx context.Context, from, to id.UserID) (bool, error)
	DeleteExpiredRequests(ctx context.Context, cutoff time.Time) (int, error)
	FindRequestView(ctx context.Context, userID, otherID id.UserID) (*models.FriendRequestView, error)
	ListRequests(ctx context.Context, userID id.UserID, opts models.RequestListOptions, now time.Time) ([]models.FriendRequestView, int, error)
}

// FriendshipStore persists the directional friendship rows.
type FriendshipStore interface {
	CreateFriendshipPair(ctx context.Context, pair [2]models.Friendship) error
	FriendshipExists(ctx context.Context, a, b id.UserID) (bool, error)
	DeleteFriendshipPair(ctx context.Context, a, b id.UserID) (int, error)
	FindFriend(ctx context.Context, userID, friendID id.UserID) (*models.FriendView, error)
	ListFriends(ctx context.Context, userID id.UserID, opts models.FriendListOptions) ([]models.FriendView, int, error)
}

// TxStores are the stores bound to one transaction.
type TxStores struct {
	Requests    RequestStore
	Friendships FriendshipStore
}

// FriendStoreTx provides a transactional boundary for lifecycle mutations.
// Implementations wrap a database transaction or, in-memory, a lock plus snapshot.
// Returning an error from fn rolls back every write made through stores.
type FriendStoreTx interface {
	RunInTx(ctx context.Context, fn func(stores TxStores) error) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
