//go:build integration

package friends

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"divelog/internal/friends/models"
	"divelog/internal/friends/store"
	id "divelog/pkg/domain"
	dErrors "divelog/pkg/domain-errors"
	"divelog/pkg/testutil"
	"divelog/pkg/testutil/containers"
)

func setupPostgresModule(t *testing.T) (*containers.PostgresContainer, *Module, id.UserID, id.UserID) {
	t.Helper()
	ctx := context.Background()
	pg := containers.GetManager().GetPostgres(t)
	require.NoError(t, pg.TruncateTables(ctx, "friendships", "friend_requests", "users"))

	users := make([]id.UserID, 2)
	for i, username := range []string{"alice", "bob"} {
		users[i] = id.UserID(uuid.New())
		require.NoError(t, pg.Exec(ctx,
			`INSERT INTO users (id, username, display_name, member_since) VALUES ($1, $2, $2, $3)`,
			users[i], username, time.Now().Add(-24*time.Hour)))
	}

	module, err := NewPostgres(store.NewPostgres(pg.DB), Deps{})
	require.NoError(t, err)
	return pg, module, users[0], users[1]
}

func TestPostgresConcurrentAccept(t *testing.T) {
	pg, module, alice, bob := setupPostgresModule(t)
	ctx := context.Background()
	_, err := module.Lifecycle.CreateRequest(ctx, alice, bob)
	require.NoError(t, err)

	testutil.Given(t, "a pending request in postgres", func(t *testing.T) {
		testutil.When(t, "ten goroutines accept it at once", func(t *testing.T) {
			const workers = 10
			var (
				wg       sync.WaitGroup
				accepted atomic.Int32
				rejected atomic.Int32
			)
			wg.Add(workers)
			for range workers {
				go func() {
					defer wg.Done()
					ok, err := module.Lifecycle.AcceptRequest(ctx, alice, bob)
					switch {
					case err == nil && ok:
						accepted.Add(1)
					case dErrors.HasCode(err, dErrors.CodeInvalidOperation):
						rejected.Add(1)
					}
				}()
			}
			wg.Wait()

			testutil.Then(t, "the row lock lets exactly one through", func(t *testing.T) {
				assert.Equal(t, int32(1), accepted.Load())
				assert.Equal(t, int32(workers-1), rejected.Load())
			})

			testutil.And(t, "two friendship rows exist", func(t *testing.T) {
				var rows int
				require.NoError(t, pg.DB.QueryRowContext(ctx, `SELECT count(*) FROM friendships`).Scan(&rows))
				assert.Equal(t, 2, rows)
			})
		})
	})
}

func TestPostgresConcurrentOpposingProposals(t *testing.T) {
	pg, module, alice, bob := setupPostgresModule(t)

	var (
		wg        sync.WaitGroup
		created   atomic.Int32
		conflicts atomic.Int32
	)
	for _, pair := range [][2]id.UserID{{alice, bob}, {bob, alice}} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := module.Lifecycle.CreateRequest(context.Background(), pair[0], pair[1])
			if err == nil {
				created.Add(1)
			} else if dErrors.HasCode(err, dErrors.CodeConflict) {
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), created.Load())
	assert.Equal(t, int32(1), conflicts.Load())

	var rows int
	require.NoError(t, pg.DB.QueryRowContext(context.Background(), `SELECT count(*) FROM friend_requests`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestPostgresRequestRoundTrip(t *testing.T) {
	_, module, alice, bob := setupPostgresModule(t)
	ctx := context.Background()

	created, err := module.Lifecycle.CreateRequest(ctx, alice, bob)
	require.NoError(t, err)
	reason := "not now"
	ok, err := module.Lifecycle.RejectRequest(ctx, alice, bob, &reason)
	require.NoError(t, err)
	require.True(t, ok)

	view, err := module.Queries.GetFriendRequest(ctx, bob, alice)
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, created.ID, view.ID)
	assert.Equal(t, models.RequestStatusRejected, view.Status)
	require.NotNil(t, view.Reason)
	assert.Equal(t, reason, *view.Reason)

	page, err := module.Queries.ListFriendRequests(ctx, bob, models.RequestListOptions{ShowAcknowledged: true})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)
}
