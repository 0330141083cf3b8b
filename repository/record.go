package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariebrainware/medical-staff/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var errDuplicateRecord = errors.New("duplicate patient record")

// RecordRepository stores patient medical records.
type RecordRepository struct {
	db     *gorm.DB
	logger zerolog.Logger
}

func NewRecordRepository(db *gorm.DB, logger zerolog.Logger) *RecordRepository {
	return &RecordRepository{
		db:     db,
		logger: logger.With().Str("kind", "patient_record").Logger(),
	}
}

func (r *RecordRepository) session(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *RecordRepository) Get(ctx context.Context, id uuid.UUID) Operation[model.PatientRecord] {
	var record model.PatientRecord
	err := r.session(ctx).Where("id = ?", id).First(&record).Error
	switch {
	case err == nil:
		return Succeeded(record)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound[model.PatientRecord]()
	default:
		return r.failed("get", err)
	}
}

// ListByNationalID returns every record filed under the CPF, oldest first.
// The result is empty, never nil, when there are none.
func (r *RecordRepository) ListByNationalID(ctx context.Context, key string) ([]model.PatientRecord, error) {
	records := []model.PatientRecord{}
	err := r.session(ctx).
		Where("cpf = ?", model.NormalizeNationalID(key)).
		Order("created").
		Find(&records).Error
	if err != nil {
		r.logger.Error().Err(err).Str("op", "list").Msg("failed to list patient records")
		return nil, fmt.Errorf("list patient records: %w", err)
	}
	return records, nil
}

// Create inserts the record unless an identical one (same CPF, name, birth, email,
// picture, phone and address) is already stored. Check and insert share a transaction.
func (r *RecordRepository) Create(ctx context.Context, record model.PatientRecord) Operation[model.PatientRecord] {
	record = record.Normalized()
	err := r.session(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.PatientRecord{}).
			Where("cpf = ? AND name = ? AND birth = ? AND email = ? AND picture_location = ? AND phone = ? AND address = ?",
				record.CPF, record.Name, record.Birth, record.Email, record.PictureLocation, record.Phone, record.Address).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errDuplicateRecord
		}

		result := tx.Create(&record)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errNoRowsAffected
		}
		return nil
	})

	switch {
	case errors.Is(err, errDuplicateRecord):
		return AlreadyExists[model.PatientRecord]()
	case err != nil:
		return r.failed("create", err)
	}
	return Succeeded(record)
}

// Update overwrites every field of the stored record except ID and Created.
func (r *RecordRepository) Update(ctx context.Context, record model.PatientRecord) Operation[model.PatientRecord] {
	found := r.Get(ctx, record.ID)
	if !found.OK() {
		return found
	}

	updated := found.Value.Replace(record)
	result := r.session(ctx).Model(&updated).Select("*").Omit("id", "created").Updates(&updated)
	if result.Error != nil {
		return r.failed("update", result.Error)
	}
	if result.RowsAffected == 0 {
		// Some drivers report zero for an unchanged row, so only a vanished row is NotFound.
		if current := r.Get(ctx, updated.ID); !current.OK() {
			return current
		}
	}
	return Succeeded(updated)
}

// Delete removes the record and returns it.
func (r *RecordRepository) Delete(ctx context.Context, id uuid.UUID) Operation[model.PatientRecord] {
	found := r.Get(ctx, id)
	if !found.OK() {
		return found
	}

	record := found.Value
	result := r.session(ctx).Where("id = ?", record.ID).Delete(&record)
	switch {
	case result.Error != nil:
		return r.failed("delete", result.Error)
	case result.RowsAffected == 0:
		return NotFound[model.PatientRecord]()
	}
	return Succeeded(record)
}

func (r *RecordRepository) failed(op string, err error) Operation[model.PatientRecord] {
	r.logger.Error().Err(err).Str("op", op).Msg("patient record storage failure")
	return Failed[model.PatientRecord](err)
}
