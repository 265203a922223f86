package users

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"stress-backend/internal/shared/auth"
	"stress-backend/internal/shared/telemetry"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 64
	minPasswordLen = 6
	// bcrypt ignores input past 72 bytes.
	maxPasswordLen = 72
)

type Service struct {
	Repo      Repo
	HashCost  int
	SignToken func(auth.Claims) (string, error)
	Now       func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, HashCost: bcrypt.DefaultCost}
}

// Session is returned on successful login.
type Session struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
	User      User   `json:"user"`
}

// Register creates an account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, username, password string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	username = strings.TrimSpace(username)
	if n := utf8.RuneCountInString(username); n < minUsernameLen || n > maxUsernameLen {
		return User{}, ErrInvalidUsername
	}
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return User{}, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost())
	if err != nil {
		return User{}, err
	}
	user := User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	telemetry.Info("user.registered", map[string]any{"user_id": user.ID, "username": user.Username})
	return user, nil
}

// Authenticate checks a username/password pair.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	user, err := s.Repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			telemetry.Warn("user.auth_failed", map[string]any{"username": username, "reason": "unknown_user"})
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		telemetry.Warn("user.auth_failed", map[string]any{"username": username, "reason": "bad_password"})
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and issues a session token.
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return Session{}, err
	}
	now := s.now()
	claims := auth.Claims{
		Sub:      user.ID,
		Username: user.Username,
		Iat:      now.Unix(),
		Exp:      now.Add(auth.DefaultTTL).Unix(),
	}
	sign := s.SignToken
	if sign == nil {
		sign = auth.SignJWT
	}
	token, err := sign(claims)
	if err != nil {
		return Session{}, err
	}
	telemetry.Info("user.login", map[string]any{"user_id": user.ID})
	return Session{Token: token, ExpiresAt: claims.Exp, User: user}, nil
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

func (s *Service) hashCost() int {
	if s.HashCost < bcrypt.MinCost {
		return bcrypt.DefaultCost
	}
	return s.HashCost
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
