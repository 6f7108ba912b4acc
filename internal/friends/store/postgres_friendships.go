package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"divelog/internal/friends/models"
	id "divelog/pkg/domain"
	"divelog/pkg/platform/sentinel"
)

// CreateFriendshipPair inserts both directional rows in one statement.
func (s *PostgresStore) CreateFriendshipPair(ctx context.Context, pair [2]models.Friendship) error {
	query := `
		INSERT INTO friendships (id, user_id, friend_id, friends_since)
		VALUES ($1, $2, $3, $4), ($5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		pair[0].ID, pair[0].UserID, pair[0].FriendID, pair[0].FriendsSince,
		pair[1].ID, pair[1].UserID, pair[1].FriendID, pair[1].FriendsSince,
	)
	if err != nil {
		return mapWriteError("insert friendship pair", err)
	}
	return nil
}

func (s *PostgresStore) FriendshipExists(ctx context.Context, a, b id.UserID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM friendships
			WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)
		)
	`
	var exists bool
	if err := s.db.QueryRowContext(ctx, query, a, b).Scan(&exists); err != nil {
		return false, fmt.Errorf("check friendship: %w", err)
	}
	return exists, nil
}

// DeleteFriendshipPair removes both directions at once and returns the row count.
func (s *PostgresStore) DeleteFriendshipPair(ctx context.Context, a, b id.UserID) (int, error) {
	query := `
		DELETE FROM friendships
		WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)
	`
	res, err := s.db.ExecContext(ctx, query, a, b)
	if err != nil {
		return 0, fmt.Errorf("delete friendship pair: %w", err)
	}
	return rowsAffected("delete friendship pair", res)
}

func (s *PostgresStore) FindFriend(ctx context.Context, userID, friendID id.UserID) (*models.FriendView, error) {
	query := `SELECT ` + friendViewColumns + `
		FROM friendships f
		JOIN users u ON u.id = f.friend_id
		WHERE f.user_id = $1 AND f.friend_id = $2`
	view, err := scanFriendView(s.db.QueryRowContext(ctx, query, userID, friendID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find friend: %w", err)
	}
	return view, nil
}

func (s *PostgresStore) ListFriends(ctx context.Context, userID id.UserID, opts models.FriendListOptions) ([]models.FriendView, int, error) {
	q := BuildFriendListQuery(userID, opts)

	var total int
	if err := s.db.QueryRowContext(ctx, q.Count, q.CountArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count friends: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, q.Select, q.SelectArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list friends: %w", err)
	}
	defer rows.Close()

	views := make([]models.FriendView, 0)
	for rows.Next() {
		view, err := scanFriendView(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan friend: %w", err)
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate friends: %w", err)
	}
	return views, total, nil
}

func scanFriendView(row rowScanner) (*models.FriendView, error) {
	var view models.FriendView
	err := row.Scan(
		&view.FriendshipID, &view.UserID, &view.FriendsSince,
		&view.Friend.ID, &view.Friend.Username, &view.Friend.DisplayName,
		&view.Friend.AvatarURL, &view.Friend.Location, &view.Friend.MemberSince,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
