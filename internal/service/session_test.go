package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderline/synckit/internal/logger"
	"github.com/wanderline/synckit/internal/store"
	"github.com/wanderline/synckit/internal/store/storetest"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func newTestSession(t *testing.T) (*Session, *storetest.Memory) {
	t.Helper()
	mem := storetest.NewMemory()
	return NewSession(mem, logger.Nop()), mem
}

func TestSession_SaveAndToken(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	token := signToken(t, jwt.MapClaims{
		"sub": "user-42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, s.Save(ctx, token))

	got, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, token, got)

	owner, err := s.OwnerID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-42", owner)
}

func TestSession_TokenWithoutExpiryIsUsable(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	token := signToken(t, jwt.MapClaims{"sub": "user-42"})
	require.NoError(t, s.Save(ctx, token))

	_, err := s.Token(ctx)
	assert.NoError(t, err)
}

func TestSession_ExpiredTokenIsNoSession(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	token := signToken(t, jwt.MapClaims{
		"sub": "user-42",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	require.NoError(t, s.Save(ctx, token))

	_, err := s.Token(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSession_SaveRejectsTokenWithoutSubject(t *testing.T) {
	s, _ := newTestSession(t)

	token := signToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	err := s.Save(context.Background(), token)
	assert.Error(t, err)
}

func TestSession_SaveRejectsMalformedToken(t *testing.T) {
	s, _ := newTestSession(t)

	err := s.Save(context.Background(), "not-a-jwt")
	assert.Error(t, err)
}

func TestSession_MissingSession(t *testing.T) {
	s, _ := newTestSession(t)

	_, err := s.Token(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = s.OwnerID(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSession_Clear(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	token := signToken(t, jwt.MapClaims{"sub": "user-42"})
	require.NoError(t, s.Save(ctx, token))
	require.NoError(t, s.Clear(ctx))

	_, err := s.Token(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSession_UndecodableRecordIsDropped(t *testing.T) {
	s, mem := newTestSession(t)
	ctx := context.Background()

	require.NoError(t, mem.Put(ctx, store.CollectionUserData, sessionRecordID, json.RawMessage(`{broken`)))

	_, err := s.Token(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = mem.Get(ctx, store.CollectionUserData, sessionRecordID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
