package service

import (
	"context"
	"strings"
	"testing"

	"cancelflow-be/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSession(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSessionService(env.factory, mockUserId, "user1@example.com")

	res, err := svc.GetSession(context.Background(), mockUserId)
	require.NoError(t, err)
	assert.Equal(t, mockUserId, res.UserId)
	assert.Equal(t, "user1@example.com", res.Email)
	require.NotNil(t, res.Subscription)
	assert.Equal(t, int64(2500), res.Subscription.MonthlyPrice)
	assert.Equal(t, "active", res.Subscription.Status)
}

func TestGetSession_UnknownUser(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSessionService(env.factory, mockUserId, "user1@example.com")

	_, err := svc.GetSession(context.Background(), uuid.NewString())
	assert.True(t, apperror.IsNotFound(err))

	_, err = svc.GetSession(context.Background(), "not-a-user")
	assert.True(t, apperror.IsValidation(err))
}

func TestGetSession_DemoUserIdIsNormalised(t *testing.T) {
	env := newTestEnv(t)
	demoUser := "550E8400-E29B-41D4-A716-446655440099"
	svc := NewSessionService(env.factory, " "+demoUser+" ", "demo@example.com")

	res, err := svc.GetSession(context.Background(), strings.ToLower(demoUser))
	require.NoError(t, err)
	assert.Equal(t, strings.ToLower(demoUser), res.UserId)
	assert.Equal(t, "demo@example.com", res.Email)
	assert.Nil(t, res.Subscription)
}

func TestGetSession_InvalidDemoUserIdNeverMatches(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSessionService(env.factory, "not-a-uuid", "demo@example.com")

	_, err := svc.GetSession(context.Background(), uuid.Nil.String())
	assert.True(t, apperror.IsNotFound(err))
}
