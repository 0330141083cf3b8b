package service

import (
	"context"

	"github.com/ariebrainware/medical-staff/model"
	"github.com/ariebrainware/medical-staff/repository"
	"github.com/google/uuid"
)

// AccountStore is the persistence the account service needs; repository.AccountRepository satisfies it.
type AccountStore[T model.Account[T]] interface {
	Get(ctx context.Context, key string) repository.Operation[T]
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, account T) repository.Operation[T]
	Update(ctx context.Context, account T) repository.Operation[T]
	Delete(ctx context.Context, key string) repository.Operation[T]
}

// RecordStore is the persistence the record service needs; repository.RecordRepository satisfies it.
type RecordStore interface {
	Get(ctx context.Context, id uuid.UUID) repository.Operation[model.PatientRecord]
	ListByNationalID(ctx context.Context, key string) ([]model.PatientRecord, error)
	Create(ctx context.Context, record model.PatientRecord) repository.Operation[model.PatientRecord]
	Update(ctx context.Context, record model.PatientRecord) repository.Operation[model.PatientRecord]
	Delete(ctx context.Context, id uuid.UUID) repository.Operation[model.PatientRecord]
}

var (
	_ AccountStore[model.Physician] = (*repository.AccountRepository[model.Physician])(nil)
	_ AccountStore[model.Patient]   = (*repository.AccountRepository[model.Patient])(nil)
	_ RecordStore                   = (*repository.RecordRepository)(nil)
)
