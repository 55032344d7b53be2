package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"funews/internal/auth"
	"funews/internal/models"
	"funews/internal/store"
)

// Account messages shared with the auth flows.
const (
	MsgEmailExists           = "Email already exists."
	MsgAccountNotFound       = "Account not found."
	MsgAccountHasArticles    = "Cannot delete account. This account has created news articles."
	MsgPasswordTooLong       = "Account password is too long."
	msgAccountLookupNotFound = "Account not found"
)

// NewAccount carries the fields needed to create an account.
type NewAccount struct {
	Name     string
	Email    string
	Role     models.Role
	Password string
}

// AccountChanges is a partial update. Empty fields are left unchanged.
type AccountChanges struct {
	Name     string
	Email    string
	Role     models.Role
	Password string
}

// AccountService manages accounts on behalf of administrators.
type AccountService struct {
	uow store.UnitOfWork
}

// NewAccountService creates an AccountService.
func NewAccountService(uow store.UnitOfWork) *AccountService {
	return &AccountService{uow: uow}
}

// List returns every live account.
func (s *AccountService) List(ctx context.Context) ([]models.Account, error) {
	accounts, err := s.uow.Accounts().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// Get returns a live account by id.
func (s *AccountService) Get(ctx context.Context, id int64) (*models.Account, error) {
	a, err := s.uow.Accounts().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if a == nil {
		return nil, notFound(msgAccountLookupNotFound)
	}
	return a, nil
}

// Search matches name, email or role.
func (s *AccountService) Search(ctx context.Context, term string) ([]models.Account, error) {
	accounts, err := s.uow.Accounts().Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search accounts: %w", err)
	}
	return accounts, nil
}

// Create adds an account after checking the email is free among live
// accounts.
func (s *AccountService) Create(ctx context.Context, in NewAccount) (*models.Account, error) {
	return createAccount(ctx, s.uow.Accounts(), in)
}

func createAccount(ctx context.Context, repo store.AccountRepository, in NewAccount) (*models.Account, error) {
	taken, err := repo.EmailTaken(ctx, in.Email, 0)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	if taken {
		return nil, conflict(MsgEmailExists)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	created, err := repo.Create(ctx, &models.Account{
		Name:         in.Name,
		Email:        in.Email,
		Role:         in.Role,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, duplicateAs(err, MsgEmailExists)
	}

	slog.Debug("account created", "account_id", created.ID, "role", created.Role)
	return created, nil
}

// Update applies the non-empty fields of ch to a live account.
func (s *AccountService) Update(ctx context.Context, id int64, ch AccountChanges) (*models.Account, error) {
	var updated *models.Account
	err := s.uow.Do(ctx, func(tx store.Repositories) error {
		a, err := applyAccountChanges(ctx, tx.Accounts(), id, ch)
		updated = a
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// applyAccountChanges loads the account, merges ch and writes it back.
func applyAccountChanges(ctx context.Context, repo store.AccountRepository, id int64, ch AccountChanges) (*models.Account, error) {
	a, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}
	if a == nil {
		return nil, notFound(MsgAccountNotFound)
	}

	if ch.Name != "" {
		a.Name = ch.Name
	}
	if ch.Email != "" {
		taken, err := repo.EmailTaken(ctx, ch.Email, id)
		if err != nil {
			return nil, fmt.Errorf("update account: %w", err)
		}
		if taken {
			return nil, conflict(MsgEmailExists)
		}
		a.Email = ch.Email
	}
	if ch.Role != "" {
		a.Role = ch.Role
	}
	if ch.Password != "" {
		hash, err := hashPassword(ch.Password)
		if err != nil {
			return nil, fmt.Errorf("update account: %w", err)
		}
		a.PasswordHash = hash
	}

	if err := repo.Update(ctx, a); err != nil {
		return nil, missingAs(duplicateAs(err, MsgEmailExists), MsgAccountNotFound)
	}
	return a, nil
}

// CanDelete reports whether accounts may be deleted right now. The check
// looks for any live article in the system, not only the account's own.
func (s *AccountService) CanDelete(ctx context.Context, id int64) (bool, error) {
	found, err := s.uow.Articles().AnyLive(ctx)
	if err != nil {
		return false, fmt.Errorf("check account %d: %w", id, err)
	}
	return !found, nil
}

// Delete soft-deletes an account when CanDelete allows it.
func (s *AccountService) Delete(ctx context.Context, id int64) error {
	return s.uow.Do(ctx, func(tx store.Repositories) error {
		found, err := tx.Articles().AnyLive(ctx)
		if err != nil {
			return fmt.Errorf("delete account: %w", err)
		}
		if found {
			return conflict(MsgAccountHasArticles)
		}

		if err := tx.Accounts().SoftDelete(ctx, id); err != nil {
			return missingAs(err, MsgAccountNotFound)
		}
		slog.Debug("account deleted", "account_id", id)
		return nil
	})
}

// hashPassword reports an over-long password as a validation error.
func hashPassword(plain string) (string, error) {
	hash, err := auth.HashPassword(plain)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", invalid(MsgPasswordTooLong)
	}
	return hash, err
}
