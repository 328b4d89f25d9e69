package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsAppError_Wrapped(t *testing.T) {
	base := NewInsufficientStock("item-1", "5", "2")
	wrapped := fmt.Errorf("record movement: %w", base)

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeInsufficientStock, appErr.Code)
	assert.Equal(t, "insufficient stock", appErr.Message)
	assert.Equal(t, "2", appErr.Details["available"])
	assert.True(t, IsInsufficientStock(wrapped))
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(wrapped))
}

func TestGetHTTPStatus_PlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("boom")))
}

func TestError_IncludesCause(t *testing.T) {
	err := NewInternal(errors.New("db down"))
	assert.Contains(t, err.Error(), "db down")
	assert.ErrorIs(t, err, err.Err)
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFound("supplier", "x")))
	assert.True(t, IsValidation(NewFieldValidation("quantity", "quantity must be positive")))
	assert.True(t, IsConcurrentModification(NewConcurrentModification("inventory_item", 1)))
	assert.False(t, IsNotFound(errors.New("nope")))

	v := NewFieldValidation("reason", "reason is required")
	assert.Equal(t, "reason", v.Details["field"])
}
