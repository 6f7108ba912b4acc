package models

import (
	dErrors "divelog/pkg/domain-errors"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// FriendSortField is the allowlisted set of columns a friend listing may sort by.
type FriendSortField string

const (
	SortByUsername     FriendSortField = "username"
	SortByMemberSince  FriendSortField = "memberSince"
	SortByFriendsSince FriendSortField = "friendsSince"
)

func (f FriendSortField) IsValid() bool {
	switch f {
	case SortByUsername, SortByMemberSince, SortByFriendsSince:
		return true
	}
	return false
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func (o SortOrder) IsValid() bool {
	return o == SortAsc || o == SortDesc
}

// RequestDirection selects requests by which side the listing user is on.
type RequestDirection string

const (
	DirectionIncoming RequestDirection = "incoming"
	DirectionOutgoing RequestDirection = "outgoing"
	DirectionBoth     RequestDirection = "both"
)

func (d RequestDirection) IsValid() bool {
	switch d {
	case DirectionIncoming, DirectionOutgoing, DirectionBoth:
		return true
	}
	return false
}

// FriendListOptions is an immutable description of a friend listing. Methods
// return copies; nothing mutates the receiver.
type FriendListOptions struct {
	SortBy FriendSortField
	Order  SortOrder
	Skip   int
	Limit  int
}

// Normalize fills zero values with defaults: friendsSince, descending, 20 per page.
func (o FriendListOptions) Normalize() FriendListOptions {
	if o.SortBy == "" {
		o.SortBy = SortByFriendsSince
	}
	if o.Order == "" {
		o.Order = SortDesc
	}
	if o.Limit == 0 {
		o.Limit = DefaultPageLimit
	}
	return o
}

func (o FriendListOptions) Validate() error {
	if !o.SortBy.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid sort field: "+string(o.SortBy))
	}
	if !o.Order.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid sort order: "+string(o.Order))
	}
	return validatePaging(o.Skip, o.Limit)
}

// RequestListOptions is an immutable description of a friend request listing.
type RequestListOptions struct {
	Direction        RequestDirection
	ShowAcknowledged bool
	ShowExpired      bool
	Skip             int
	Limit            int
}

// Normalize fills zero values with defaults: both directions, 20 per page.
func (o RequestListOptions) Normalize() RequestListOptions {
	if o.Direction == "" {
		o.Direction = DirectionBoth
	}
	if o.Limit == 0 {
		o.Limit = DefaultPageLimit
	}
	return o
}

func (o RequestListOptions) Validate() error {
	if !o.Direction.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid direction: "+string(o.Direction))
	}
	return validatePaging(o.Skip, o.Limit)
}

func validatePaging(skip, limit int) error {
	if skip < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "skip must not be negative")
	}
	if limit < 1 || limit > MaxPageLimit {
		return dErrors.New(dErrors.CodeInvalidInput, "limit must be between 1 and 100")
	}
	return nil
}
