package store

import (
	"fmt"
	"strings"
	"time"

	"divelog/internal/friends/models"
	id "divelog/pkg/domain"
)

// ListQuery is a parameterised page query plus its matching count query.
type ListQuery struct {
	Select     string
	SelectArgs []any
	Count      string
	CountArgs  []any
}

// friendSortColumns maps the allowlisted sort fields to SQL columns. Input text
// never reaches the ORDER BY clause.
var friendSortColumns = map[models.FriendSortField]string{
	models.SortByUsername:     "u.username",
	models.SortByMemberSince:  "u.member_since",
	models.SortByFriendsSince: "f.friends_since",
}

const friendViewColumns = `f.id, f.user_id, f.friends_since,
	u.id, u.username, u.display_name, COALESCE(u.avatar_url, ''), COALESCE(u.location, ''), u.member_since`

const requestViewColumns = `r.id, r.from_user_id, r.to_user_id, r.created_at, r.expires_at, r.accepted, r.reason,
	fu.id, fu.username, fu.display_name, COALESCE(fu.avatar_url, ''), COALESCE(fu.location, ''), fu.member_since,
	tu.id, tu.username, tu.display_name, COALESCE(tu.avatar_url, ''), COALESCE(tu.location, ''), tu.member_since`

const requestViewFrom = `friend_requests r
	JOIN users fu ON fu.id = r.from_user_id
	JOIN users tu ON tu.id = r.to_user_id`

// BuildFriendListQuery translates a normalized friend listing into SQL. Ties on
// the sort column are broken by friendship id so pages are stable.
func BuildFriendListQuery(userID id.UserID, opts models.FriendListOptions) ListQuery {
	column, ok := friendSortColumns[opts.SortBy]
	if !ok {
		column = friendSortColumns[models.SortByFriendsSince]
	}
	direction := "DESC"
	if opts.Order == models.SortAsc {
		direction = "ASC"
	}

	selectSQL := fmt.Sprintf(`SELECT %s
	FROM friendships f
	JOIN users u ON u.id = f.friend_id
	WHERE f.user_id = $1
	ORDER BY %s %s, f.id ASC
	LIMIT $2 OFFSET $3`, friendViewColumns, column, direction)

	return ListQuery{
		Select:     selectSQL,
		SelectArgs: []any{userID, opts.Limit, opts.Skip},
		Count:      `SELECT COUNT(*) FROM friendships f WHERE f.user_id = $1`,
		CountArgs:  []any{userID},
	}
}

// BuildRequestListQuery translates a normalized request listing into SQL. The
// "both" direction is a single OR predicate, so a row can never appear twice.
func BuildRequestListQuery(userID id.UserID, opts models.RequestListOptions, now time.Time) ListQuery {
	args := []any{userID}
	var where []string

	switch opts.Direction {
	case models.DirectionIncoming:
		where = append(where, "r.to_user_id = $1")
	case models.DirectionOutgoing:
		where = append(where, "r.from_user_id = $1")
	default:
		where = append(where, "(r.to_user_id = $1 OR r.from_user_id = $1)")
	}
	if !opts.ShowAcknowledged {
		where = append(where, "r.accepted IS NULL")
	}
	if !opts.ShowExpired {
		args = append(args, now)
		where = append(where, fmt.Sprintf("r.expires_at > $%d", len(args)))
	}
	predicate := strings.Join(where, " AND ")

	countArgs := append([]any(nil), args...)
	selectArgs := append(args, opts.Limit, opts.Skip)

	selectSQL := fmt.Sprintf(`SELECT %s
	FROM %s
	WHERE %s
	ORDER BY r.created_at DESC, r.id ASC
	LIMIT $%d OFFSET $%d`, requestViewColumns, requestViewFrom, predicate, len(selectArgs)-1, len(selectArgs))

	return ListQuery{
		Select:     selectSQL,
		SelectArgs: selectArgs,
		Count:      "SELECT COUNT(*) FROM friend_requests r WHERE " + predicate,
		CountArgs:  countArgs,
	}
}
