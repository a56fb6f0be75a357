package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/penalties-go/internal/dependencies/clock"
	"github.com/mcoot/penalties-go/internal/dependencies/random"
	"github.com/mcoot/penalties-go/internal/model"
	"github.com/mcoot/penalties-go/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrUsernameExists     = errors.New("username already exists")
)

// Session represents an authenticated referee session
type Session struct {
	Token     string
	RefereeID model.RefereeID
	Referee   model.Referee
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service handles referee accounts and session management
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new AuthService
func New(storage storage.Storage, clock clock.Clock, random random.Random, cfg Config, logger *slog.Logger) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		random:          random,
		logger:          logger,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// RegisterReferee creates a referee account and session
func (s *Service) RegisterReferee(ctx context.Context, username, password, displayName string) (*Session, error) {
	// Check if username exists
	_, err := s.storage.GetRegisteredRefereeByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameExists
	}
	if !errors.Is(err, model.ErrRefereeNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	refereeID := model.RefereeID(s.generateID("r_"))
	now := s.clock.Now()

	referee := &model.Referee{
		ID:          refereeID,
		DisplayName: displayName,
		CreatedAt:   now,
	}

	registered := &model.RegisteredReferee{
		RefereeID:    refereeID,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveReferee(ctx, referee); err != nil {
		return nil, err
	}

	if err := s.storage.SaveRegisteredReferee(ctx, registered); err != nil {
		return nil, err
	}

	s.logger.Info("referee registered",
		slog.String("referee_id", string(refereeID)),
		slog.String("username", username),
	)

	return s.createSession(referee)
}

// Login authenticates a referee and creates a session
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	rr, err := s.storage.GetRegisteredRefereeByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrRefereeNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rr.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("failed login", slog.String("username", username))
		return nil, ErrInvalidCredentials
	}

	referee, err := s.storage.GetReferee(ctx, rr.RefereeID)
	if err != nil {
		return nil, err
	}

	return s.createSession(referee)
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// createSession creates a new session for a referee
func (s *Service) createSession(referee *model.Referee) (*Session, error) {
	token := s.generateID("sess_")
	now := s.clock.Now()

	session := &Session{
		Token:     token,
		RefereeID: referee.ID,
		Referee:   *referee,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session, nil
}

// generateID generates a random ID with a prefix
func (s *Service) generateID(prefix string) string {
	return prefix + s.random.Token(16)
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}
