//go:build integration

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"divelog/internal/friends/models"
	id "divelog/pkg/domain"
	"divelog/pkg/platform/sentinel"
	"divelog/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *PostgresStore
	ctx      context.Context
	now      time.Time
	alice    id.UserID
	bob      id.UserID
	carol    id.UserID
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = NewPostgres(s.postgres.DB)
	s.ctx = context.Background()
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(s.ctx, "friendships", "friend_requests", "users"))
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.alice = s.insertUser("alice", s.now.Add(-300*24*time.Hour))
	s.bob = s.insertUser("bob", s.now.Add(-200*24*time.Hour))
	s.carol = s.insertUser("carol", s.now.Add(-100*24*time.Hour))
}

func (s *PostgresStoreSuite) insertUser(username string, memberSince time.Time) id.UserID {
	userID := id.UserID(uuid.New())
	s.Require().NoError(s.postgres.Exec(s.ctx,
		`INSERT INTO users (id, username, display_name, member_since) VALUES ($1, $2, $3, $4)`,
		userID, username, username, memberSince))
	return userID
}

func (s *PostgresStoreSuite) request(from, to id.UserID, createdAt time.Time) *models.FriendRequest {
	req, err := models.NewFriendRequest(id.NewFriendRequestID(), from, to, createdAt, models.DefaultRequestTTL)
	s.Require().NoError(err)
	return req
}

func (s *PostgresStoreSuite) TestRequestConstraints() {
	s.Require().NoError(s.store.CreateRequest(s.ctx, s.request(s.alice, s.bob, s.now)))

	s.Run("reverse direction violates the pair index", func() {
		err := s.store.CreateRequest(s.ctx, s.request(s.bob, s.alice, s.now))
		s.ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("unknown user violates the foreign key", func() {
		err := s.store.CreateRequest(s.ctx, s.request(s.alice, id.UserID(uuid.New()), s.now))
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("round trip keeps nullable columns", func() {
		got, err := s.findLocked(s.alice, s.bob)
		s.Require().NoError(err)
		s.Nil(got.Accepted)
		s.Nil(got.Reason)
		s.True(got.CreatedAt.Equal(s.now))
	})
}

// findLocked reads a request with its row lock inside a throwaway transaction.
func (s *PostgresStoreSuite) findLocked(from, to id.UserID) (*models.FriendRequest, error) {
	var found *models.FriendRequest
	err := s.store.RunInTx(s.ctx, func(tx *PostgresStore) error {
		req, err := tx.FindRequestForUpdate(s.ctx, from, to)
		found = req
		return err
	})
	return found, err
}

func (s *PostgresStoreSuite) TestResolveAndFriendshipsCommitTogether() {
	req := s.request(s.alice, s.bob, s.now)
	s.Require().NoError(s.store.CreateRequest(s.ctx, req))

	s.Run("failure after resolve rolls back the resolution", func() {
		boom := errors.New("boom")
		err := s.store.RunInTx(s.ctx, func(tx *PostgresStore) error {
			locked, err := tx.FindRequestForUpdate(s.ctx, s.alice, s.bob)
			s.Require().NoError(err)
			locked.ApplyAcceptance(s.now, models.DefaultRequestTTL)
			s.Require().NoError(tx.ResolveRequest(s.ctx, locked))
			s.Require().NoError(tx.CreateFriendshipPair(s.ctx, models.NewFriendshipPair(s.alice, s.bob, s.now)))
			return boom
		})
		s.ErrorIs(err, boom)

		got, err := s.findLocked(s.alice, s.bob)
		s.Require().NoError(err)
		s.Nil(got.Accepted)
		exists, err := s.store.FriendshipExists(s.ctx, s.alice, s.bob)
		s.Require().NoError(err)
		s.False(exists)
	})

	s.Run("second resolve of the same row is an invalid state", func() {
		req.ApplyRejection(s.now, models.DefaultRequestTTL, nil)
		s.Require().NoError(s.store.ResolveRequest(s.ctx, req))
		s.ErrorIs(s.store.ResolveRequest(s.ctx, req), sentinel.ErrInvalidState)
	})
}

func (s *PostgresStoreSuite) TestFriendships() {
	s.Require().NoError(s.store.CreateFriendshipPair(s.ctx, models.NewFriendshipPair(s.alice, s.bob, s.now)))
	s.Require().NoError(s.store.CreateFriendshipPair(s.ctx, models.NewFriendshipPair(s.carol, s.alice, s.now.Add(time.Hour))))

	s.Run("duplicate pair violates the unique key", func() {
		err := s.store.CreateFriendshipPair(s.ctx, models.NewFriendshipPair(s.bob, s.alice, s.now))
		s.ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("list sorts and counts", func() {
		views, total, err := s.store.ListFriends(s.ctx, s.alice, models.FriendListOptions{
			SortBy: models.SortByUsername, Order: models.SortDesc, Limit: 1,
		})
		s.Require().NoError(err)
		s.Equal(2, total)
		s.Require().Len(views, 1)
		s.Equal("carol", views[0].Friend.Username)
	})

	s.Run("delete removes both rows in one statement", func() {
		n, err := s.store.DeleteFriendshipPair(s.ctx, s.bob, s.alice)
		s.Require().NoError(err)
		s.Equal(2, n)
		_, err = s.store.FindFriend(s.ctx, s.alice, s.bob)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *PostgresStoreSuite) TestListRequests() {
	s.Require().NoError(s.store.CreateRequest(s.ctx, s.request(s.alice, s.bob, s.now)))
	s.Require().NoError(s.store.CreateRequest(s.ctx, s.request(s.carol, s.alice, s.now.Add(time.Hour))))
	at := s.now.Add(2 * time.Hour)

	s.Run("both returns each row once, newest first", func() {
		views, total, err := s.store.ListRequests(s.ctx, s.alice, models.RequestListOptions{}.Normalize(), at)
		s.Require().NoError(err)
		s.Equal(2, total)
		s.Require().Len(views, 2)
		s.Equal(s.carol, views[0].FromUserID)
		s.Equal("carol", views[0].From.Username)
		s.Equal("alice", views[0].To.Username)
	})

	s.Run("expired rows are hidden at their exact expiry", func() {
		views, _, err := s.store.ListRequests(s.ctx, s.bob, models.RequestListOptions{}.Normalize(), s.now.Add(models.DefaultRequestTTL))
		s.Require().NoError(err)
		s.Empty(views)
	})

	s.Run("purge is strict on the cutoff", func() {
		n, err := s.store.DeleteExpiredRequests(s.ctx, s.now.Add(models.DefaultRequestTTL))
		s.Require().NoError(err)
		s.Zero(n)
		n, err = s.store.DeleteExpiredRequests(s.ctx, s.now.Add(models.DefaultRequestTTL+time.Second))
		s.Require().NoError(err)
		s.Equal(1, n)
	})
}
