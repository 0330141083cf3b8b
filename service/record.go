package service

import (
	"context"
	"time"

	"github.com/ariebrainware/medical-staff/model"
	"github.com/ariebrainware/medical-staff/repository"
	"github.com/google/uuid"
)

// RecordService manages patient records through a RecordStore.
type RecordService struct {
	store RecordStore
}

func NewRecordService(store RecordStore) *RecordService {
	return &RecordService{store: store}
}

func (s *RecordService) Get(ctx context.Context, id uuid.UUID) repository.Operation[model.PatientRecord] {
	return s.store.Get(ctx, id)
}

func (s *RecordService) ListByNationalID(ctx context.Context, key string) ([]model.PatientRecord, error) {
	return s.store.ListByNationalID(ctx, key)
}

// Create files a new record. Any client supplied ID or creation time is discarded.
func (s *RecordService) Create(ctx context.Context, record model.PatientRecord) repository.Operation[model.PatientRecord] {
	record.ID = uuid.New()
	record.Created = time.Time{}
	return s.store.Create(ctx, record.Normalized())
}

// Replace overwrites the record with the given id, keeping its ID and creation time.
func (s *RecordService) Replace(ctx context.Context, id uuid.UUID, replacement model.PatientRecord) repository.Operation[model.PatientRecord] {
	replacement.ID = id
	return s.store.Update(ctx, replacement.Normalized())
}

func (s *RecordService) Delete(ctx context.Context, id uuid.UUID) repository.Operation[model.PatientRecord] {
	return s.store.Delete(ctx, id)
}
