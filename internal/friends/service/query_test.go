package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"divelog/internal/friends/models"
	"divelog/internal/friends/service/mocks"
	id "divelog/pkg/domain"
	dErrors "divelog/pkg/domain-errors"
	"divelog/pkg/platform/sentinel"
)

type QueryServiceSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockRequests    *mocks.MockRequestStore
	mockFriendships *mocks.MockFriendshipStore
	service         *QueryService
	now             time.Time
	alice           id.UserID
	bob             id.UserID
}

func TestQueryServiceSuite(t *testing.T) {
	suite.Run(t, new(QueryServiceSuite))
}

func (s *QueryServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRequests = mocks.NewMockRequestStore(s.ctrl)
	s.mockFriendships = mocks.NewMockFriendshipStore(s.ctrl)
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.alice = id.UserID(uuid.New())
	s.bob = id.UserID(uuid.New())

	var err error
	s.service, err = NewQueryService(s.mockRequests, s.mockFriendships, WithClock(func() time.Time { return s.now }))
	s.Require().NoError(err)
}

func (s *QueryServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *QueryServiceSuite) TestListFriends() {
	ctx := context.Background()

	s.Run("zero options are normalized before reaching the store", func() {
		want := models.FriendListOptions{SortBy: models.SortByFriendsSince, Order: models.SortDesc, Limit: models.DefaultPageLimit}
		s.mockFriendships.EXPECT().ListFriends(gomock.Any(), s.alice, want).Return(nil, 0, nil)

		page, err := s.service.ListFriends(ctx, s.alice, models.FriendListOptions{})
		s.Require().NoError(err)
		s.NotNil(page.Items)
		s.Empty(page.Items)
		s.Equal(models.DefaultPageLimit, page.Limit)
	})

	s.Run("page carries the total count", func() {
		views := []models.FriendView{{UserID: s.alice, Friend: models.UserProfile{ID: s.bob, Username: "bob"}}}
		s.mockFriendships.EXPECT().ListFriends(gomock.Any(), s.alice, gomock.Any()).Return(views, 7, nil)

		page, err := s.service.ListFriends(ctx, s.alice, models.FriendListOptions{Skip: 5, Limit: 1})
		s.Require().NoError(err)
		s.Equal(7, page.TotalCount)
		s.Equal(5, page.Skip)
		s.Len(page.Items, 1)
	})

	s.Run("invalid options are rejected before the store", func() {
		for _, opts := range []models.FriendListOptions{
			{SortBy: "password"},
			{Order: "sideways"},
			{Skip: -1},
			{Limit: models.MaxPageLimit + 1},
			{Limit: -3},
		} {
			_, err := s.service.ListFriends(ctx, s.alice, opts)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput), "%+v", opts)
		}
	})

	s.Run("nil user is invalid input", func() {
		_, err := s.service.ListFriends(ctx, id.UserID(uuid.Nil), models.FriendListOptions{})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("store failure is internal", func() {
		s.mockFriendships.EXPECT().ListFriends(gomock.Any(), s.alice, gomock.Any()).Return(nil, 0, assert.AnError)

		_, err := s.service.ListFriends(ctx, s.alice, models.FriendListOptions{})
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *QueryServiceSuite) TestListFriendRequests() {
	ctx := context.Background()

	s.Run("status is derived at the query time", func() {
		pending, err := models.NewFriendRequest(id.NewFriendRequestID(), s.bob, s.alice, s.now.Add(-time.Hour), models.DefaultRequestTTL)
		s.Require().NoError(err)
		stale, err := models.NewFriendRequest(id.NewFriendRequestID(), s.alice, s.bob, s.now.Add(-20*24*time.Hour), models.DefaultRequestTTL)
		s.Require().NoError(err)
		views := []models.FriendRequestView{{FriendRequest: *pending}, {FriendRequest: *stale}}

		want := models.RequestListOptions{Direction: models.DirectionBoth, ShowExpired: true, Limit: models.DefaultPageLimit}
		s.mockRequests.EXPECT().ListRequests(gomock.Any(), s.alice, want, s.now).Return(views, 2, nil)

		page, err := s.service.ListFriendRequests(ctx, s.alice, models.RequestListOptions{ShowExpired: true})
		s.Require().NoError(err)
		s.Require().Len(page.Items, 2)
		s.Equal(models.RequestStatusPending, page.Items[0].Status)
		s.Equal(models.RequestStatusExpired, page.Items[1].Status)
	})

	s.Run("invalid direction is invalid input", func() {
		_, err := s.service.ListFriendRequests(ctx, s.alice, models.RequestListOptions{Direction: "sideways"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("empty result is an empty slice", func() {
		s.mockRequests.EXPECT().ListRequests(gomock.Any(), s.alice, gomock.Any(), s.now).Return(nil, 0, nil)

		page, err := s.service.ListFriendRequests(ctx, s.alice, models.RequestListOptions{Direction: models.DirectionIncoming})
		s.Require().NoError(err)
		s.NotNil(page.Items)
		s.Zero(page.TotalCount)
	})
}

func (s *QueryServiceSuite) TestLookups() {
	ctx := context.Background()

	s.Run("absent friend is nil without error", func() {
		s.mockFriendships.EXPECT().FindFriend(gomock.Any(), s.alice, s.bob).Return(nil, sentinel.ErrNotFound)

		view, err := s.service.GetFriend(ctx, s.alice, s.bob)
		s.NoError(err)
		s.Nil(view)
	})

	s.Run("absent request is nil without error", func() {
		s.mockRequests.EXPECT().FindRequestView(gomock.Any(), s.alice, s.bob).Return(nil, sentinel.ErrNotFound)

		view, err := s.service.GetFriendRequest(ctx, s.alice, s.bob)
		s.NoError(err)
		s.Nil(view)
	})

	s.Run("found request carries its status", func() {
		req, err := models.NewFriendRequest(id.NewFriendRequestID(), s.bob, s.alice, s.now, models.DefaultRequestTTL)
		s.Require().NoError(err)
		req.ApplyRejection(s.now, models.DefaultRequestTTL, nil)
		s.mockRequests.EXPECT().FindRequestView(gomock.Any(), s.alice, s.bob).Return(&models.FriendRequestView{FriendRequest: *req}, nil)

		view, err := s.service.GetFriendRequest(ctx, s.alice, s.bob)
		s.Require().NoError(err)
		s.Equal(models.RequestStatusRejected, view.Status)
	})

	s.Run("are friends delegates to the store", func() {
		s.mockFriendships.EXPECT().FriendshipExists(gomock.Any(), s.alice, s.bob).Return(true, nil)

		ok, err := s.service.AreFriends(ctx, s.alice, s.bob)
		s.Require().NoError(err)
		s.True(ok)
	})

	s.Run("lookup failures are internal", func() {
		s.mockFriendships.EXPECT().FindFriend(gomock.Any(), s.alice, s.bob).Return(nil, assert.AnError)

		_, err := s.service.GetFriend(ctx, s.alice, s.bob)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("nil ids are invalid input", func() {
		_, err := s.service.AreFriends(ctx, s.alice, id.UserID(uuid.Nil))
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}
