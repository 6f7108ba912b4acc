package models

import (
	"time"

	id "divelog/pkg/domain"
)

// Friendship is one directional row of a confirmed friendship. Every friendship
// exists as exactly two rows, (A,B) and (B,A), sharing FriendsSince.
type Friendship struct {
	ID           id.FriendshipID `json:"id"`
	UserID       id.UserID       `json:"user_id"`
	FriendID     id.UserID       `json:"friend_id"`
	FriendsSince time.Time       `json:"friends_since"`
}

// NewFriendshipPair builds both directional rows for an accepted request.
func NewFriendshipPair(a, b id.UserID, since time.Time) [2]Friendship {
	return [2]Friendship{
		{ID: id.NewFriendshipID(), UserID: a, FriendID: b, FriendsSince: since},
		{ID: id.NewFriendshipID(), UserID: b, FriendID: a, FriendsSince: since},
	}
}

// UserProfile is the read-only projection of a user that listings embed.
type UserProfile struct {
	ID          id.UserID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Location    string    `json:"location,omitempty"`
	MemberSince time.Time `json:"member_since"`
}

// FriendView is a friendship row from UserID's perspective with the friend's profile.
type FriendView struct {
	FriendshipID id.FriendshipID `json:"friendship_id"`
	UserID       id.UserID       `json:"user_id"`
	Friend       UserProfile     `json:"friend"`
	FriendsSince time.Time       `json:"friends_since"`
}

// FriendRequestView is a request with both participants' profiles and its derived status.
type FriendRequestView struct {
	FriendRequest
	Status RequestStatus `json:"status"`
	From   UserProfile   `json:"from"`
	To     UserProfile   `json:"to"`
}

// Page is one slice of a listing together with the total match count.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
	Skip       int `json:"skip"`
	Limit      int `json:"limit"`
}
