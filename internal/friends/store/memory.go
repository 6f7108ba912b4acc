package store

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"divelog/internal/friends/models"
	id "divelog/pkg/domain"
	"divelog/pkg/platform/sentinel"
)

type memoryState struct {
	users       map[id.UserID]models.UserProfile
	requests    map[id.FriendRequestID]models.FriendRequest
	friendships map[id.FriendshipID]models.Friendship
}

func (st *memoryState) clone() *memoryState {
	return &memoryState{
		users:       maps.Clone(st.users),
		requests:    maps.Clone(st.requests),
		friendships: maps.Clone(st.friendships),
	}
}

// InMemoryStore mirrors PostgresStore, constraints included, for tests and local
// runs. Transactions hold the store lock for their whole duration and work on a
// copy that replaces the live state only on success.
type InMemoryStore struct {
	mu    *sync.RWMutex
	state *memoryState
	inTx  bool
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		mu: &sync.RWMutex{},
		state: &memoryState{
			users:       make(map[id.UserID]models.UserProfile),
			requests:    make(map[id.FriendRequestID]models.FriendRequest),
			friendships: make(map[id.FriendshipID]models.Friendship),
		},
	}
}

// PutUser stands in for the users table that another service owns.
func (s *InMemoryStore) PutUser(profile models.UserProfile) {
	s.lock()
	defer s.unlock()
	s.state.users[profile.ID] = profile
}

// RunInTx runs fn against a private copy of the state. The copy is committed
// when fn returns nil and ctx is still live; otherwise it is discarded.
func (s *InMemoryStore) RunInTx(ctx context.Context, fn func(txStore *InMemoryStore) error) error {
	if s.inTx {
		return fn(s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	txStore := &InMemoryStore{mu: s.mu, state: s.state.clone(), inTx: true}
	if err := fn(txStore); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.state = txStore.state
	return nil
}

func (s *InMemoryStore) lock() {
	if !s.inTx {
		s.mu.Lock()
	}
}

func (s *InMemoryStore) unlock() {
	if !s.inTx {
		s.mu.Unlock()
	}
}

func (s *InMemoryStore) rlock() {
	if !s.inTx {
		s.mu.RLock()
	}
}

func (s *InMemoryStore) runlock() {
	if !s.inTx {
		s.mu.RUnlock()
	}
}

// =============================================================================
// Requests
// =============================================================================

func (s *InMemoryStore) CreateRequest(_ context.Context, req *models.FriendRequest) error {
	s.lock()
	defer s.unlock()

	if req.FromUserID == req.ToUserID || !req.ExpiresAt.After(req.CreatedAt) {
		return fmt.Errorf("insert friend request: %w", sentinel.ErrInvalidState)
	}
	if !s.hasUser(req.FromUserID) || !s.hasUser(req.ToUserID) {
		return fmt.Errorf("insert friend request: %w", sentinel.ErrNotFound)
	}
	if _, exists := s.state.requests[req.ID]; exists {
		return fmt.Errorf("insert friend request: %w", sentinel.ErrConflict)
	}
	for _, existing := range s.state.requests {
		if samePair(existing.FromUserID, existing.ToUserID, req.FromUserID, req.ToUserID) {
			return fmt.Errorf("insert friend request: %w", sentinel.ErrConflict)
		}
	}
	s.state.requests[req.ID] = *req
	return nil
}

func (s *InMemoryStore) FindRequestForUpdate(_ context.Context, from, to id.UserID) (*models.FriendRequest, error) {
	s.rlock()
	defer s.runlock()

	req, ok := s.findDirected(from, to)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &req, nil
}

func (s *InMemoryStore) ClearStaleRequests(_ context.Context, a, b id.UserID, now time.Time) (int, error) {
	s.lock()
	defer s.unlock()

	removed := 0
	for reqID, req := range s.state.requests {
		if !samePair(req.FromUserID, req.ToUserID, a, b) {
			continue
		}
		orphaned := req.Accepted != nil && *req.Accepted && !s.hasDirectedFriendship(req.FromUserID, req.ToUserID)
		if req.ExpiresAt.Before(now) || orphaned {
			delete(s.state.requests, reqID)
			removed++
		}
	}
	return removed, nil
}

func (s *InMemoryStore) ResolveRequest(_ context.Context, req *models.FriendRequest) error {
	s.lock()
	defer s.unlock()

	current, ok := s.state.requests[req.ID]
	if !ok || current.Accepted != nil {
		return fmt.Errorf("resolve friend request %s: %w", req.ID, sentinel.ErrInvalidState)
	}
	current.Accepted = req.Accepted
	current.Reason = req.Reason
	current.ExpiresAt = req.ExpiresAt
	s.state.requests[req.ID] = current
	return nil
}

func (s *InMemoryStore) DeleteRequest(_ context.Context, from, to id.UserID) (bool, error) {
	s.lock()
	defer s.unlock()

	req, ok := s.findDirected(from, to)
	if !ok {
		return false, nil
	}
	delete(s.state.requests, req.ID)
	return true, nil
}

func (s *InMemoryStore) DeleteExpiredRequests(_ context.Context, cutoff time.Time) (int, error) {
	s.lock()
	defer s.unlock()

	removed := 0
	for reqID, req := range s.state.requests {
		if req.ExpiresAt.Before(cutoff) {
			delete(s.state.requests, reqID)
			removed++
		}
	}
	return removed, nil
}

func (s *InMemoryStore) FindRequestView(_ context.Context, userID, otherID id.UserID) (*models.FriendRequestView, error) {
	s.rlock()
	defer s.runlock()

	var matches []models.FriendRequest
	for _, req := range s.state.requests {
		if samePair(req.FromUserID, req.ToUserID, userID, otherID) {
			matches = append(matches, req)
		}
	}
	if len(matches) == 0 {
		return nil, sentinel.ErrNotFound
	}
	slices.SortFunc(matches, compareRequests)
	view := s.requestView(matches[0])
	return &view, nil
}

func (s *InMemoryStore) ListRequests(_ context.Context, userID id.UserID, opts models.RequestListOptions, now time.Time) ([]models.FriendRequestView, int, error) {
	s.rlock()
	defer s.runlock()

	var matches []models.FriendRequest
	for _, req := range s.state.requests {
		switch opts.Direction {
		case models.DirectionIncoming:
			if req.ToUserID != userID {
				continue
			}
		case models.DirectionOutgoing:
			if req.FromUserID != userID {
				continue
			}
		default:
			if !req.Involves(userID) {
				continue
			}
		}
		if !opts.ShowAcknowledged && req.Accepted != nil {
			continue
		}
		if !opts.ShowExpired && !req.ExpiresAt.After(now) {
			continue
		}
		matches = append(matches, req)
	}
	slices.SortFunc(matches, compareRequests)

	views := make([]models.FriendRequestView, 0)
	for _, req := range page(matches, opts.Skip, opts.Limit) {
		views = append(views, s.requestView(req))
	}
	return views, len(matches), nil
}

// =============================================================================
// Friendships
// =============================================================================

func (s *InMemoryStore) CreateFriendshipPair(_ context.Context, pair [2]models.Friendship) error {
	s.lock()
	defer s.unlock()

	for _, f := range pair {
		if f.UserID == f.FriendID {
			return fmt.Errorf("insert friendship pair: %w", sentinel.ErrInvalidState)
		}
		if !s.hasUser(f.UserID) || !s.hasUser(f.FriendID) {
			return fmt.Errorf("insert friendship pair: %w", sentinel.ErrNotFound)
		}
		if s.hasDirectedFriendship(f.UserID, f.FriendID) {
			return fmt.Errorf("insert friendship pair: %w", sentinel.ErrConflict)
		}
	}
	if pair[0].UserID == pair[1].UserID && pair[0].FriendID == pair[1].FriendID {
		return fmt.Errorf("insert friendship pair: %w", sentinel.ErrConflict)
	}
	for _, f := range pair {
		s.state.friendships[f.ID] = f
	}
	return nil
}

func (s *InMemoryStore) FriendshipExists(_ context.Context, a, b id.UserID) (bool, error) {
	s.rlock()
	defer s.runlock()
	return s.hasDirectedFriendship(a, b) || s.hasDirectedFriendship(b, a), nil
}

func (s *InMemoryStore) DeleteFriendshipPair(_ context.Context, a, b id.UserID) (int, error) {
	s.lock()
	defer s.unlock()

	removed := 0
	for fid, f := range s.state.friendships {
		if samePair(f.UserID, f.FriendID, a, b) {
			delete(s.state.friendships, fid)
			removed++
		}
	}
	return removed, nil
}

func (s *InMemoryStore) FindFriend(_ context.Context, userID, friendID id.UserID) (*models.FriendView, error) {
	s.rlock()
	defer s.runlock()

	for _, f := range s.state.friendships {
		if f.UserID == userID && f.FriendID == friendID {
			view := s.friendView(f)
			return &view, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) ListFriends(_ context.Context, userID id.UserID, opts models.FriendListOptions) ([]models.FriendView, int, error) {
	s.rlock()
	defer s.runlock()

	var matches []models.FriendView
	for _, f := range s.state.friendships {
		if f.UserID == userID {
			matches = append(matches, s.friendView(f))
		}
	}
	slices.SortFunc(matches, friendComparator(opts))

	return append(make([]models.FriendView, 0), page(matches, opts.Skip, opts.Limit)...), len(matches), nil
}

// =============================================================================
// Helpers
// =============================================================================

func (s *InMemoryStore) hasUser(userID id.UserID) bool {
	_, ok := s.state.users[userID]
	return ok
}

func (s *InMemoryStore) hasDirectedFriendship(userID, friendID id.UserID) bool {
	for _, f := range s.state.friendships {
		if f.UserID == userID && f.FriendID == friendID {
			return true
		}
	}
	return false
}

func (s *InMemoryStore) findDirected(from, to id.UserID) (models.FriendRequest, bool) {
	for _, req := range s.state.requests {
		if req.FromUserID == from && req.ToUserID == to {
			return req, true
		}
	}
	return models.FriendRequest{}, false
}

func (s *InMemoryStore) requestView(req models.FriendRequest) models.FriendRequestView {
	return models.FriendRequestView{
		FriendRequest: req,
		From:          s.state.users[req.FromUserID],
		To:            s.state.users[req.ToUserID],
	}
}

func (s *InMemoryStore) friendView(f models.Friendship) models.FriendView {
	return models.FriendView{
		FriendshipID: f.ID,
		UserID:       f.UserID,
		Friend:       s.state.users[f.FriendID],
		FriendsSince: f.FriendsSince,
	}
}

func samePair(a1, b1, a2, b2 id.UserID) bool {
	return (a1 == a2 && b1 == b2) || (a1 == b2 && b1 == a2)
}

// compareRequests orders newest first, then by id ascending.
func compareRequests(a, b models.FriendRequest) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return bytes.Compare(a.ID[:], b.ID[:])
}

func friendComparator(opts models.FriendListOptions) func(a, b models.FriendView) int {
	return func(a, b models.FriendView) int {
		var c int
		switch opts.SortBy {
		case models.SortByUsername:
			c = strings.Compare(a.Friend.Username, b.Friend.Username)
		case models.SortByMemberSince:
			c = a.Friend.MemberSince.Compare(b.Friend.MemberSince)
		default:
			c = a.FriendsSince.Compare(b.FriendsSince)
		}
		if opts.Order != models.SortAsc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return bytes.Compare(a.FriendshipID[:], b.FriendshipID[:])
	}
}

func page[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return nil
	}
	end := len(items)
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return items[skip:end]
}
