package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariebrainware/medical-staff/model"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var errNoRowsAffected = errors.New("no rows affected")

// AccountRepository stores accounts of a single kind. The table is chosen by T.
type AccountRepository[T model.Account[T]] struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewAccountRepository binds a repository to a (usually request scoped) gorm session.
func NewAccountRepository[T model.Account[T]](db *gorm.DB, logger zerolog.Logger) *AccountRepository[T] {
	return &AccountRepository[T]{
		db:     db,
		logger: logger.With().Str("kind", model.KindOf[T]().String()).Logger(),
	}
}

func (r *AccountRepository[T]) session(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Get finds the account whose CPF matches key once normalized.
func (r *AccountRepository[T]) Get(ctx context.Context, key string) Operation[T] {
	var account T
	err := r.session(ctx).Where("cpf = ?", model.NormalizeNationalID(key)).First(&account).Error
	switch {
	case err == nil:
		return Succeeded(account)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound[T]()
	default:
		return r.failed("get", err)
	}
}

func (r *AccountRepository[T]) List(ctx context.Context) ([]T, error) {
	accounts := []T{}
	if err := r.session(ctx).Order("created_at").Find(&accounts).Error; err != nil {
		r.logger.Error().Err(err).Str("op", "list").Msg("failed to list accounts")
		return nil, fmt.Errorf("list %s accounts: %w", model.KindOf[T](), err)
	}
	return accounts, nil
}

// Create inserts the account with its CPF normalized. A CPF that already has an
// account yields AlreadyExists.
func (r *AccountRepository[T]) Create(ctx context.Context, account T) Operation[T] {
	account = account.Normalized()
	result := r.session(ctx).Create(&account)
	switch {
	case errors.Is(result.Error, gorm.ErrDuplicatedKey):
		return AlreadyExists[T]()
	case result.Error != nil:
		return r.failed("create", result.Error)
	case result.RowsAffected == 0:
		return r.failed("create", errNoRowsAffected)
	}
	return Succeeded(account)
}

// Update replaces every column of the stored account with the same ID, except created_at.
func (r *AccountRepository[T]) Update(ctx context.Context, account T) Operation[T] {
	account = account.Normalized()
	result := r.session(ctx).Model(&account).Select("*").Omit("id", "created_at").Updates(&account)
	switch {
	case errors.Is(result.Error, gorm.ErrDuplicatedKey):
		return AlreadyExists[T]()
	case result.Error != nil:
		return r.failed("update", result.Error)
	case result.RowsAffected == 0:
		return NotFound[T]()
	}

	var stored T
	if err := r.session(ctx).Where("id = ?", account.Identifier()).First(&stored).Error; err != nil {
		return r.failed("update", err)
	}
	return Succeeded(stored)
}

// Delete removes the account found by key and returns it.
func (r *AccountRepository[T]) Delete(ctx context.Context, key string) Operation[T] {
	found := r.Get(ctx, key)
	if !found.OK() {
		return found
	}

	account := found.Value
	result := r.session(ctx).Where("id = ?", account.Identifier()).Delete(&account)
	switch {
	case result.Error != nil:
		return r.failed("delete", result.Error)
	case result.RowsAffected == 0:
		return NotFound[T]()
	}
	return Succeeded(account)
}

func (r *AccountRepository[T]) failed(op string, err error) Operation[T] {
	r.logger.Error().Err(err).Str("op", op).Msg("account storage failure")
	return Failed[T](err)
}
