package domainerrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("matches direct error", func(t *testing.T) {
		err := New(CodeConflict, "friend request already exists")
		assert.True(t, HasCode(err, CodeConflict))
		assert.False(t, HasCode(err, CodeExpired))
	})

	t.Run("matches through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("create request: %w", New(CodeInvalidOperation, "cannot befriend yourself"))
		assert.True(t, HasCode(err, CodeInvalidOperation))
		assert.Equal(t, CodeInvalidOperation, CodeOf(err))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
		assert.False(t, HasCode(nil, CodeInternal))
		assert.Equal(t, Code(""), CodeOf(errors.New("boom")))
	})
}

func TestWrap_PreservesCause(t *testing.T) {
	err := Wrap(context.Canceled, CodeTimeout, "transaction aborted")

	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, Is(err, CodeTimeout))
	assert.Equal(t, "transaction aborted: context canceled", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeInvalidOperation: http.StatusBadRequest,
		CodeExpired:          http.StatusBadRequest,
		CodeConflict:         http.StatusConflict,
		CodeNotFound:         http.StatusNotFound,
		CodeInternal:         http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatus(code), string(code))
	}
}
