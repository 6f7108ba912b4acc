package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"divelog/internal/friends/models"
	id "divelog/pkg/domain"
	"divelog/pkg/platform/sentinel"
)

const requestColumns = `id, from_user_id, to_user_id, created_at, expires_at, accepted, reason`

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresStore) CreateRequest(ctx context.Context, req *models.FriendRequest) error {
	query := `
		INSERT INTO friend_requests (id, from_user_id, to_user_id, created_at, expires_at, accepted, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		req.ID, req.FromUserID, req.ToUserID, req.CreatedAt, req.ExpiresAt,
		nullBool(req.Accepted), nullString(req.Reason),
	)
	if err != nil {
		return mapWriteError("insert friend request", err)
	}
	return nil
}

// FindRequestForUpdate must run inside RunInTx for the row lock to matter.
func (s *PostgresStore) FindRequestForUpdate(ctx context.Context, from, to id.UserID) (*models.FriendRequest, error) {
	query := `SELECT ` + requestColumns + `
		FROM friend_requests
		WHERE from_user_id = $1 AND to_user_id = $2
		FOR UPDATE`
	req, err := scanRequest(s.db.QueryRowContext(ctx, query, from, to))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find friend request for update: %w", err)
	}
	return req, nil
}

func (s *PostgresStore) ClearStaleRequests(ctx context.Context, a, b id.UserID, now time.Time) (int, error) {
	query := `
		DELETE FROM friend_requests r
		WHERE ((r.from_user_id = $1 AND r.to_user_id = $2) OR (r.from_user_id = $2 AND r.to_user_id = $1))
		  AND (
			r.expires_at < $3
			OR (r.accepted = TRUE AND NOT EXISTS (
				SELECT 1 FROM friendships f
				WHERE f.user_id = r.from_user_id AND f.friend_id = r.to_user_id
			))
		  )
	`
	res, err := s.db.ExecContext(ctx, query, a, b, now)
	if err != nil {
		return 0, fmt.Errorf("clear stale friend requests: %w", err)
	}
	return rowsAffected("clear stale friend requests", res)
}

// ResolveRequest writes the resolution only while the row is still pending.
// Returns ErrInvalidState when another writer resolved it first.
func (s *PostgresStore) ResolveRequest(ctx context.Context, req *models.FriendRequest) error {
	query := `
		UPDATE friend_requests
		SET accepted = $2, reason = $3, expires_at = $4
		WHERE id = $1 AND accepted IS NULL
	`
	res, err := s.db.ExecContext(ctx, query, req.ID, nullBool(req.Accepted), nullString(req.Reason), req.ExpiresAt)
	if err != nil {
		return mapWriteError("resolve friend request", err)
	}
	n, err := rowsAffected("resolve friend request", res)
	if err != nil {
		return err
	}
	if n != 1 {
		return fmt.Errorf("resolve friend request %s: %w", req.ID, sentinel.ErrInvalidState)
	}
	return nil
}

func (s *PostgresStore) DeleteRequest(ctx context.Context, from, to id.UserID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM friend_requests WHERE from_user_id = $1 AND to_user_id = $2`, from, to)
	if err != nil {
		return false, fmt.Errorf("delete friend request: %w", err)
	}
	n, err := rowsAffected("delete friend request", res)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteExpiredRequests removes rows whose window closed strictly before cutoff.
func (s *PostgresStore) DeleteExpiredRequests(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM friend_requests WHERE expires_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired friend requests: %w", err)
	}
	return rowsAffected("delete expired friend requests", res)
}

// FindRequestView returns the request between the two users in either direction.
func (s *PostgresStore) FindRequestView(ctx context.Context, userID, otherID id.UserID) (*models.FriendRequestView, error) {
	query := `SELECT ` + requestViewColumns + `
		FROM ` + requestViewFrom + `
		WHERE (r.from_user_id = $1 AND r.to_user_id = $2) OR (r.from_user_id = $2 AND r.to_user_id = $1)
		ORDER BY r.created_at DESC, r.id ASC
		LIMIT 1`
	view, err := scanRequestView(s.db.QueryRowContext(ctx, query, userID, otherID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find friend request view: %w", err)
	}
	return view, nil
}

func (s *PostgresStore) ListRequests(ctx context.Context, userID id.UserID, opts models.RequestListOptions, now time.Time) ([]models.FriendRequestView, int, error) {
	q := BuildRequestListQuery(userID, opts, now)

	var total int
	if err := s.db.QueryRowContext(ctx, q.Count, q.CountArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count friend requests: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, q.Select, q.SelectArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list friend requests: %w", err)
	}
	defer rows.Close()

	views := make([]models.FriendRequestView, 0)
	for rows.Next() {
		view, err := scanRequestView(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan friend request: %w", err)
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate friend requests: %w", err)
	}
	return views, total, nil
}

func scanRequest(row rowScanner) (*models.FriendRequest, error) {
	var (
		req      models.FriendRequest
		accepted sql.NullBool
		reason   sql.NullString
	)
	if err := row.Scan(&req.ID, &req.FromUserID, &req.ToUserID, &req.CreatedAt, &req.ExpiresAt, &accepted, &reason); err != nil {
		return nil, err
	}
	req.Accepted = boolPtr(accepted)
	req.Reason = stringPtr(reason)
	return &req, nil
}

func scanRequestView(row rowScanner) (*models.FriendRequestView, error) {
	var (
		view     models.FriendRequestView
		accepted sql.NullBool
		reason   sql.NullString
	)
	err := row.Scan(
		&view.ID, &view.FromUserID, &view.ToUserID, &view.CreatedAt, &view.ExpiresAt, &accepted, &reason,
		&view.From.ID, &view.From.Username, &view.From.DisplayName, &view.From.AvatarURL, &view.From.Location, &view.From.MemberSince,
		&view.To.ID, &view.To.Username, &view.To.DisplayName, &view.To.AvatarURL, &view.To.Location, &view.To.MemberSince,
	)
	if err != nil {
		return nil, err
	}
	view.Accepted = boolPtr(accepted)
	view.Reason = stringPtr(reason)
	return &view, nil
}

func nullBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func boolPtr(b sql.NullBool) *bool {
	if !b.Valid {
		return nil
	}
	v := b.Bool
	return &v
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
