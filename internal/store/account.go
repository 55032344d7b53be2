package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"funews/internal/models"
)

// AccountStore handles all account-related database operations.
type AccountStore struct {
	db Querier
}

// NewAccountStore creates a new AccountStore over the given pool or transaction.
func NewAccountStore(db Querier) *AccountStore {
	return &AccountStore{db: db}
}

const accountColumns = `account_id, account_name, account_email, account_role, account_password,
	created_at, updated_at, deleted_at, is_deleted`

func scanAccount(scanner interface{ Scan(...any) error }) (*models.Account, error) {
	var a models.Account
	err := scanner.Scan(
		&a.ID, &a.Name, &a.Email, &a.Role, &a.PasswordHash,
		&a.CreatedAt, &a.UpdatedAt, &a.DeletedAt, &a.IsDeleted,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AccountStore) query(ctx context.Context, op, q string, args ...any) ([]models.Account, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := []models.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

func (s *AccountStore) one(ctx context.Context, op, q string, args ...any) (*models.Account, error) {
	a, err := scanAccount(s.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// List returns all live accounts ordered by id.
func (s *AccountStore) List(ctx context.Context) ([]models.Account, error) {
	return s.query(ctx, "list accounts",
		`SELECT `+accountColumns+` FROM accounts WHERE NOT is_deleted ORDER BY account_id`)
}

// FindByID retrieves a live account. Returns nil if not found.
func (s *AccountStore) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	return s.one(ctx, "find account by id",
		`SELECT `+accountColumns+` FROM accounts WHERE account_id = $1 AND NOT is_deleted`, id)
}

// FindByEmail retrieves a live account by exact email. Returns nil if not found.
func (s *AccountStore) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	return s.one(ctx, "find account by email",
		`SELECT `+accountColumns+` FROM accounts WHERE account_email = $1 AND NOT is_deleted`, email)
}

// EmailTaken reports whether another live account uses email. Pass 0 as
// excludeID when creating.
func (s *AccountStore) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	var taken bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM accounts
			WHERE account_email = $1 AND account_id <> $2 AND NOT is_deleted
		)`, email, excludeID).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check account email: %w", err)
	}
	return taken, nil
}

// Search matches name, email or role by case-insensitive substring.
func (s *AccountStore) Search(ctx context.Context, term string) ([]models.Account, error) {
	return s.query(ctx, "search accounts", `
		SELECT `+accountColumns+` FROM accounts
		WHERE NOT is_deleted
		  AND (account_name ILIKE $1 OR account_email ILIKE $1 OR account_role ILIKE $1)
		ORDER BY account_id`, likePattern(term))
}

// Create inserts an account whose password is already hashed.
func (s *AccountStore) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO accounts (account_name, account_email, account_role, account_password)
		VALUES ($1, $2, $3, $4)
		RETURNING `+accountColumns,
		a.Name, a.Email, a.Role, a.PasswordHash,
	)
	created, err := scanAccount(row)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", translate(err))
	}
	return created, nil
}

// Update replaces every mutable column of a live account.
func (s *AccountStore) Update(ctx context.Context, a *models.Account) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE accounts SET
			account_name = $1, account_email = $2, account_role = $3,
			account_password = $4, updated_at = NOW()
		WHERE account_id = $5 AND NOT is_deleted
	`, a.Name, a.Email, a.Role, a.PasswordHash, a.ID)
	if err != nil {
		return fmt.Errorf("update account: %w", translate(err))
	}
	if err := mustAffect(res); err != nil {
		return fmt.Errorf("update account %d: %w", a.ID, err)
	}
	return nil
}

// SoftDelete flags a live account as deleted.
func (s *AccountStore) SoftDelete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE accounts SET is_deleted = TRUE, deleted_at = NOW()
		WHERE account_id = $1 AND NOT is_deleted
	`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if err := mustAffect(res); err != nil {
		return fmt.Errorf("delete account %d: %w", id, err)
	}
	return nil
}
