package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActingUser(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, SystemUser, ActingUser(ctx))

	ctx = WithUser(ctx, &UserContext{UserID: "chef-1"})
	assert.Equal(t, "chef-1", ActingUser(ctx))
	assert.Equal(t, "chef-1", GetUserID(ctx))
}

func TestNewTraceContext(t *testing.T) {
	tc := NewTraceContext(context.Background(), "", "")
	assert.NotEmpty(t, tc.RequestID)
	assert.Equal(t, tc.RequestID, tc.TraceID)

	tc = NewTraceContext(context.Background(), "trace", "req")
	assert.Equal(t, "trace", tc.TraceID)
	assert.Equal(t, "req", tc.RequestID)

	ctx := WithTrace(context.Background(), tc)
	assert.Equal(t, "req", GetRequestID(ctx))
	assert.Empty(t, GetRequestID(context.Background()))
}
