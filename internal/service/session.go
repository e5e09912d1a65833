package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wanderline/synckit/internal/logger"
	"github.com/wanderline/synckit/internal/store"
)

// sessionRecordID is the fixed key of the single session row in userData.
const sessionRecordID = "session"

// ErrNoSession is returned when no usable session is stored locally.
var ErrNoSession = errors.New("no local session")

type sessionRecord struct {
	ID             string `json:"id"`
	OwnerID        string `json:"ownerId"`
	CollectionType string `json:"collectionType"`
	Token          string `json:"token"`
	SavedAt        int64  `json:"savedAt"`
}

// Session persists the bearer token handed over by the host's auth flow and
// derives the owner id from the token's subject claim. Token minting and
// refresh stay with the host; the engine only attaches the stored token to
// queued actions.
type Session struct {
	store  store.LocalStore
	logger *logger.Logger

	now func() time.Time
}

// NewSession builds a Session over the userData collection.
func NewSession(st store.LocalStore, log *logger.Logger) *Session {
	return &Session{store: st, logger: log, now: time.Now}
}

// Save stores the token after extracting its subject. The signature is not
// verified: the client has no key material, and a forged token simply fails
// server-side on replay.
func (s *Session) Save(ctx context.Context, token string) error {
	ownerID, _, err := inspectToken(token)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	rec := sessionRecord{
		ID:             sessionRecordID,
		OwnerID:        ownerID,
		CollectionType: "session",
		Token:          token,
		SavedAt:        s.now().UnixMilli(),
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err = s.store.Put(ctx, store.CollectionUserData, rec.ID, payload); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.logger.Debug().Str("owner_id", ownerID).Msg("session saved")
	return nil
}

// Token returns the stored bearer token. An expired token is reported as
// ErrNoSession so callers fall back to unauthenticated behavior instead of
// replaying requests guaranteed to be rejected.
func (s *Session) Token(ctx context.Context) (string, error) {
	rec, err := s.load(ctx)
	if err != nil {
		return "", err
	}

	_, expiry, err := inspectToken(rec.Token)
	if err != nil {
		return "", fmt.Errorf("stored token unusable: %w", ErrNoSession)
	}
	if expiry != nil && s.now().After(*expiry) {
		return "", fmt.Errorf("stored token expired: %w", ErrNoSession)
	}

	return rec.Token, nil
}

// OwnerID returns the user id the session belongs to.
func (s *Session) OwnerID(ctx context.Context) (string, error) {
	rec, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	return rec.OwnerID, nil
}

// Clear removes the stored session.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, store.CollectionUserData, sessionRecordID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Session) load(ctx context.Context) (sessionRecord, error) {
	rec, err := s.store.Get(ctx, store.CollectionUserData, sessionRecordID)
	if err != nil {
		// Missing row and broken storage degrade the same way.
		return sessionRecord{}, ErrNoSession
	}

	var session sessionRecord
	if err = json.Unmarshal(rec.Payload, &session); err != nil {
		s.logger.Err(err).Msg("dropping undecodable session record")
		_ = s.store.Delete(ctx, store.CollectionUserData, sessionRecordID)
		return sessionRecord{}, ErrNoSession
	}

	return session, nil
}

// inspectToken extracts the subject and optional expiry from a JWT without
// verifying its signature.
func inspectToken(tokenString string) (subject string, expiry *time.Time, err error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", nil, errors.New("invalid token claims")
	}

	subject, err = claims.GetSubject()
	if err != nil || subject == "" {
		return "", nil, errors.New("token has no subject")
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return "", nil, fmt.Errorf("read token expiry: %w", err)
	}
	if exp != nil {
		expiry = &exp.Time
	}

	return subject, expiry, nil
}
