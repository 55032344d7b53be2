package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"funews/internal/auth"
	"funews/internal/models"
	"funews/internal/store"
)

// MsgInvalidCredentials is returned for both unknown emails and wrong
// passwords.
const MsgInvalidCredentials = "Invalid email or password."

const msgProfileNotFound = "Profile not found"

// TokenRevoker records tokens that must no longer be accepted.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// LoginResult is a freshly issued bearer token.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Account   *models.Account
}

// ProfileChanges is a partial update of the caller's own account. The role
// cannot be changed this way.
type ProfileChanges struct {
	Name     string
	Email    string
	Password string
}

// AuthService handles login, registration, profile access and logout.
type AuthService struct {
	uow     store.UnitOfWork
	issuer  *auth.Issuer
	revoker TokenRevoker
}

// NewAuthService creates an AuthService. revoker may be nil, in which case
// Logout is a no-op.
func NewAuthService(uow store.UnitOfWork, issuer *auth.Issuer, revoker TokenRevoker) *AuthService {
	return &AuthService{uow: uow, issuer: issuer, revoker: revoker}
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	a, err := s.uow.Accounts().FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if a == nil || !auth.VerifyPassword(password, a.PasswordHash) {
		return nil, unauthorized(MsgInvalidCredentials)
	}

	token, expiresAt, err := s.issuer.Issue(a.ID, a.Email, string(a.Role))
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	slog.Debug("login succeeded", "account_id", a.ID)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Account: a}, nil
}

// Register creates an account with the same rules as an administrator
// would.
func (s *AuthService) Register(ctx context.Context, in NewAccount) (*models.Account, error) {
	return createAccount(ctx, s.uow.Accounts(), in)
}

// Profile returns the caller's own account.
func (s *AuthService) Profile(ctx context.Context, accountID int64) (*models.Account, error) {
	a, err := s.uow.Accounts().FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if a == nil {
		return nil, notFound(msgProfileNotFound)
	}
	return a, nil
}

// UpdateProfile applies ch to the caller's own account.
func (s *AuthService) UpdateProfile(ctx context.Context, accountID int64, ch ProfileChanges) (*models.Account, error) {
	var updated *models.Account
	err := s.uow.Do(ctx, func(tx store.Repositories) error {
		a, err := applyAccountChanges(ctx, tx.Accounts(), accountID, AccountChanges{
			Name:     ch.Name,
			Email:    ch.Email,
			Password: ch.Password,
		})
		updated = a
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Logout revokes the token identified by claims until it expires.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if s.revoker == nil {
		return nil
	}
	if err := s.revoker.Revoke(ctx, claims.TokenID(), claims.ExpiresAtTime()); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	slog.Debug("token revoked", "subject", claims.Subject)
	return nil
}
