package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Repositories exposes one store per entity type.
type Repositories interface {
	Accounts() AccountRepository
	Categories() CategoryRepository
	Tags() TagRepository
	Articles() NewsArticleRepository
}

// UnitOfWork groups the repositories and runs multi-step writes in a single
// transaction that commits once.
type UnitOfWork interface {
	Repositories
	Do(ctx context.Context, fn func(tx Repositories) error) error
}

// repos binds every store to the same Querier.
type repos struct {
	accounts   *AccountStore
	categories *CategoryStore
	tags       *TagStore
	articles   *NewsArticleStore
}

func newRepos(q Querier) *repos {
	return &repos{
		accounts:   NewAccountStore(q),
		categories: NewCategoryStore(q),
		tags:       NewTagStore(q),
		articles:   NewNewsArticleStore(q),
	}
}

func (r *repos) Accounts() AccountRepository     { return r.accounts }
func (r *repos) Categories() CategoryRepository  { return r.categories }
func (r *repos) Tags() TagRepository             { return r.tags }
func (r *repos) Articles() NewsArticleRepository { return r.articles }

// DBUnitOfWork is the PostgreSQL UnitOfWork. Reads outside Do go straight
// to the pool.
type DBUnitOfWork struct {
	*repos
	db *sql.DB
}

// NewUnitOfWork returns a UnitOfWork over the pool.
func NewUnitOfWork(db *sql.DB) *DBUnitOfWork {
	return &DBUnitOfWork{repos: newRepos(db), db: db}
}

// Do begins a transaction, hands fn stores bound to it and commits if fn
// returns nil. Any error or panic rolls the transaction back.
func (u *DBUnitOfWork) Do(ctx context.Context, fn func(tx Repositories) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(newRepos(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
