package service

import (
	"context"
	"errors"

	"github.com/ariebrainware/medical-staff/model"
	"github.com/ariebrainware/medical-staff/repository"
	"github.com/google/uuid"
)

var _ AccountStore[model.Patient] = (*mockAccountStore[model.Patient])(nil)

var errNotImplemented = errors.New("not implemented in mock")

// mockAccountStore is an AccountStore whose behavior is set per test through its func fields.
type mockAccountStore[T model.Account[T]] struct {
	GetFunc    func(ctx context.Context, key string) repository.Operation[T]
	ListFunc   func(ctx context.Context) ([]T, error)
	CreateFunc func(ctx context.Context, account T) repository.Operation[T]
	UpdateFunc func(ctx context.Context, account T) repository.Operation[T]
	DeleteFunc func(ctx context.Context, key string) repository.Operation[T]

	CreateCalls int
	UpdateCalls int
	DeleteCalls int
}

func (m *mockAccountStore[T]) Get(ctx context.Context, key string) repository.Operation[T] {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return repository.Failed[T](errNotImplemented)
}

func (m *mockAccountStore[T]) List(ctx context.Context) ([]T, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, errNotImplemented
}

func (m *mockAccountStore[T]) Create(ctx context.Context, account T) repository.Operation[T] {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	return repository.Failed[T](errNotImplemented)
}

func (m *mockAccountStore[T]) Update(ctx context.Context, account T) repository.Operation[T] {
	m.UpdateCalls++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, account)
	}
	return repository.Failed[T](errNotImplemented)
}

func (m *mockAccountStore[T]) Delete(ctx context.Context, key string) repository.Operation[T] {
	m.DeleteCalls++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return repository.Failed[T](errNotImplemented)
}

// mockRecordStore is a RecordStore whose behavior is set per test through its func fields.
type mockRecordStore struct {
	CreateFunc func(ctx context.Context, record model.PatientRecord) repository.Operation[model.PatientRecord]
	UpdateFunc func(ctx context.Context, record model.PatientRecord) repository.Operation[model.PatientRecord]
}

func (m *mockRecordStore) Get(ctx context.Context, id uuid.UUID) repository.Operation[model.PatientRecord] {
	return repository.NotFound[model.PatientRecord]()
}

func (m *mockRecordStore) ListByNationalID(ctx context.Context, key string) ([]model.PatientRecord, error) {
	return []model.PatientRecord{}, nil
}

func (m *mockRecordStore) Create(ctx context.Context, record model.PatientRecord) repository.Operation[model.PatientRecord] {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	return repository.Failed[model.PatientRecord](errNotImplemented)
}

func (m *mockRecordStore) Update(ctx context.Context, record model.PatientRecord) repository.Operation[model.PatientRecord] {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, record)
	}
	return repository.Failed[model.PatientRecord](errNotImplemented)
}

func (m *mockRecordStore) Delete(ctx context.Context, id uuid.UUID) repository.Operation[model.PatientRecord] {
	return repository.NotFound[model.PatientRecord]()
}
