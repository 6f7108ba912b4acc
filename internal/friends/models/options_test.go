package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "divelog/pkg/domain-errors"
)

func TestFriendListOptions(t *testing.T) {
	t.Run("defaults to newest friendships first", func(t *testing.T) {
		opts := FriendListOptions{}.Normalize()
		assert.Equal(t, SortByFriendsSince, opts.SortBy)
		assert.Equal(t, SortDesc, opts.Order)
		assert.Equal(t, DefaultPageLimit, opts.Limit)
		assert.NoError(t, opts.Validate())
	})

	t.Run("normalize does not touch the receiver", func(t *testing.T) {
		orig := FriendListOptions{Skip: 5}
		_ = orig.Normalize()
		assert.Equal(t, FriendListOptions{Skip: 5}, orig)
	})

	tests := []struct {
		name string
		opts FriendListOptions
	}{
		{"unknown sort field", FriendListOptions{SortBy: "password", Order: SortAsc, Limit: 10}},
		{"unknown order", FriendListOptions{SortBy: SortByUsername, Order: "sideways", Limit: 10}},
		{"negative skip", FriendListOptions{SortBy: SortByUsername, Order: SortAsc, Skip: -1, Limit: 10}},
		{"limit above max", FriendListOptions{SortBy: SortByUsername, Order: SortAsc, Limit: MaxPageLimit + 1}},
		{"negative limit", FriendListOptions{SortBy: SortByUsername, Order: SortAsc, Limit: -3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, dErrors.HasCode(tt.opts.Validate(), dErrors.CodeInvalidInput))
		})
	}
}

func TestRequestListOptions(t *testing.T) {
	opts := RequestListOptions{}.Normalize()
	assert.Equal(t, DirectionBoth, opts.Direction)
	assert.False(t, opts.ShowAcknowledged)
	assert.False(t, opts.ShowExpired)
	assert.NoError(t, opts.Validate())

	bad := RequestListOptions{Direction: "sideways", Limit: 10}
	assert.True(t, dErrors.HasCode(bad.Validate(), dErrors.CodeInvalidInput))
}
