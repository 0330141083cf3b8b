package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariebrainware/medical-staff/model"
	"github.com/ariebrainware/medical-staff/repository"
	"github.com/ariebrainware/medical-staff/util"
	"github.com/rs/zerolog"
)

var (
	errInvalidStoredAccount = errors.New("stored account is not valid")
	errInvalidResult        = errors.New("updated account is not valid")
)

// AccountService applies account rules on top of an AccountStore: credential lookup,
// validity checks, conflict detection and password hashing.
type AccountService[T model.Account[T]] struct {
	store  AccountStore[T]
	logger zerolog.Logger
}

func NewAccountService[T model.Account[T]](store AccountStore[T], logger zerolog.Logger) *AccountService[T] {
	return &AccountService[T]{
		store:  store,
		logger: logger.With().Str("kind", model.KindOf[T]().String()).Logger(),
	}
}

func (s *AccountService[T]) List(ctx context.Context) ([]T, error) {
	return s.store.List(ctx)
}

func (s *AccountService[T]) Get(ctx context.Context, key string) repository.Operation[T] {
	return s.store.Get(ctx, key)
}

// Credential returns the stored password of the account. An account without one is
// reported as NotFound.
func (s *AccountService[T]) Credential(ctx context.Context, key string) repository.Operation[model.Credential] {
	found := s.store.Get(ctx, key)
	if !found.OK() {
		return repository.Relay[model.Credential](found)
	}
	credential := model.CredentialOf(found.Value)
	if credential.IsEmpty() {
		return repository.NotFound[model.Credential]()
	}
	return repository.Succeeded(credential)
}

// Create stores a new account with its password hashed. A CPF that already has a
// credential yields AlreadyExists.
func (s *AccountService[T]) Create(ctx context.Context, account T) repository.Operation[T] {
	existing := s.Credential(ctx, account.NationalID())
	switch existing.Status {
	case repository.StatusSuccess:
		return repository.AlreadyExists[T]()
	case repository.StatusFailed:
		return repository.Relay[T](existing)
	}

	hashed, err := s.hash(account.Secret())
	if err != nil {
		return repository.Failed[T](err)
	}
	return s.store.Create(ctx, account.WithSecret(hashed))
}

// Replace overwrites the account found by key with replacement, keeping its ID.
func (s *AccountService[T]) Replace(ctx context.Context, key string, replacement T) repository.Operation[T] {
	current := s.store.Get(ctx, key)
	if !current.OK() {
		return current
	}
	if !current.Value.Valid() {
		s.logger.Warn().Str("op", "replace").Str("id", current.Value.Identifier().String()).Msg("stored account is not valid")
		return repository.Failed[T](errInvalidStoredAccount)
	}

	hashed, err := s.hash(replacement.Secret())
	if err != nil {
		return repository.Failed[T](err)
	}

	updated := s.store.Update(ctx, replacement.WithIdentity(current.Value.Identifier()).WithSecret(hashed))
	if updated.OK() && !updated.Value.Valid() {
		return repository.Failed[T](errInvalidResult)
	}
	return updated
}

// Delete removes the account found by key and returns it.
func (s *AccountService[T]) Delete(ctx context.Context, key string) repository.Operation[T] {
	current := s.store.Get(ctx, key)
	if !current.OK() {
		return current
	}
	if !current.Value.Valid() {
		s.logger.Warn().Str("op", "delete").Str("id", current.Value.Identifier().String()).Msg("stored account is not valid")
		return repository.Failed[T](errInvalidStoredAccount)
	}
	return s.store.Delete(ctx, key)
}

// Authenticate checks password against the stored credential. A wrong password is
// reported as NotFound so callers cannot tell it apart from a missing account.
func (s *AccountService[T]) Authenticate(ctx context.Context, key, password string) repository.Operation[T] {
	found := s.store.Get(ctx, key)
	if !found.OK() {
		return found
	}
	ok, err := util.VerifyPassword(found.Value.Secret(), password)
	if err != nil {
		s.logger.Warn().Err(err).Str("op", "authenticate").Msg("stored credential is not verifiable")
		return repository.NotFound[T]()
	}
	if !ok {
		return repository.NotFound[T]()
	}
	return found
}

func (s *AccountService[T]) hash(password string) (string, error) {
	hashed, err := util.HashPassword(password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hashed, nil
}
