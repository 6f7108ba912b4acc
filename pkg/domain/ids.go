// Package domain holds the shared kernel: typed identifiers used across packages.
//
// Typed IDs keep a user ID from being passed where a request ID is expected. They are
// plain uuid.UUID underneath, so they compare, hash and serialise like UUIDs.
package domain

import (
	"database/sql/driver"

	"github.com/google/uuid"

	dErrors "divelog/pkg/domain-errors"
)

// UserID identifies a platform user. Users are owned by the profile service; this
// module only references them.
type UserID uuid.UUID

// FriendRequestID identifies a single directional friend request.
type FriendRequestID uuid.UUID

// FriendshipID identifies one of the two directional friendship rows.
type FriendshipID uuid.UUID

// ParseUserID constructs a UserID from external input.
//
// Errors: returns CodeInvalidInput for empty, malformed or nil UUIDs.
func ParseUserID(s string) (UserID, error) {
	u, err := parseID(s, "user id")
	return UserID(u), err
}

// ParseFriendRequestID constructs a FriendRequestID from external input.
func ParseFriendRequestID(s string) (FriendRequestID, error) {
	u, err := parseID(s, "friend request id")
	return FriendRequestID(u), err
}

// ParseFriendshipID constructs a FriendshipID from external input.
func ParseFriendshipID(s string) (FriendshipID, error) {
	u, err := parseID(s, "friendship id")
	return FriendshipID(u), err
}

func parseID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return u, nil
}

func (id UserID) String() string          { return uuid.UUID(id).String() }
func (id FriendRequestID) String() string { return uuid.UUID(id).String() }
func (id FriendshipID) String() string    { return uuid.UUID(id).String() }

// IsNil reports whether the ID is the zero UUID.
func (id UserID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// NewFriendRequestID returns a random request ID.
func NewFriendRequestID() FriendRequestID { return FriendRequestID(uuid.New()) }

// NewFriendshipID returns a random friendship row ID.
func NewFriendshipID() FriendshipID { return FriendshipID(uuid.New()) }

// Value and Scan let typed IDs travel through database/sql as UUIDs.
func (id UserID) Value() (driver.Value, error)          { return uuid.UUID(id).Value() }
func (id FriendRequestID) Value() (driver.Value, error) { return uuid.UUID(id).Value() }
func (id FriendshipID) Value() (driver.Value, error)    { return uuid.UUID(id).Value() }

func (id *UserID) Scan(src any) error          { return (*uuid.UUID)(id).Scan(src) }
func (id *FriendRequestID) Scan(src any) error { return (*uuid.UUID)(id).Scan(src) }
func (id *FriendshipID) Scan(src any) error    { return (*uuid.UUID)(id).Scan(src) }

func (id UserID) MarshalText() ([]byte, error)          { return uuid.UUID(id).MarshalText() }
func (id FriendRequestID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id FriendshipID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error          { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *FriendRequestID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *FriendshipID) UnmarshalText(b []byte) error    { return (*uuid.UUID)(id).UnmarshalText(b) }
