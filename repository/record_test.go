package repository

import (
	"context"
	"testing"
	"time"

	"github.com/ariebrainware/medical-staff/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newRecord() model.PatientRecord {
	return model.PatientRecord{
		Name:            "João Lima",
		CPF:             "987.654.321-00",
		Birth:           datatypes.Date(time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)),
		Email:           "joao@test.com",
		Phone:           "5511912345678",
		Address:         "Rua das Flores, 10",
		PictureLocation: "https://cdn.test/p/1.png",
	}
}

func TestRecordRepository_CreateAndGet(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewRecordRepository(db, nopLogger())
	ctx := context.Background()

	before := time.Now().Truncate(time.Second)
	created := repo.Create(ctx, newRecord())
	require.True(t, created.OK())
	assert.NotEqual(t, uuid.Nil, created.Value.ID)
	assert.Equal(t, "98765432100", created.Value.CPF)

	found := repo.Get(ctx, created.Value.ID)
	require.True(t, found.OK())
	assert.Equal(t, "João Lima", found.Value.Name)
	assert.False(t, found.Value.Created.Before(before))
	assert.Equal(t, "1990-04-12", found.Value.BirthDate().Format(model.DateLayout))
}

func TestRecordRepository_CreateDuplicateTuple(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewRecordRepository(db, nopLogger())
	ctx := context.Background()

	require.True(t, repo.Create(ctx, newRecord()).OK())
	assert.Equal(t, StatusAlreadyExists, repo.Create(ctx, newRecord()).Status)

	records, err := repo.ListByNationalID(ctx, "98765432100")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestRecordRepository_CreateDuplicateTupleWithPhonePlus(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewRecordRepository(db, nopLogger())
	ctx := context.Background()

	require.True(t, repo.Create(ctx, newRecord()).OK())
	withPlus := newRecord()
	withPlus.Phone = "+5511912345678"
	assert.Equal(t, StatusAlreadyExists, repo.Create(ctx, withPlus).Status)
}

func TestRecordRepository_SameCPFDifferentRecord(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewRecordRepository(db, nopLogger())
	ctx := context.Background()

	require.True(t, repo.Create(ctx, newRecord()).OK())
	other := newRecord()
	other.Address = "Rua B, 20"
	require.True(t, repo.Create(ctx, other).OK())

	records, err := repo.ListByNationalID(ctx, "987.654.321-00")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRecordRepository_ListEmpty(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewRecordRepository(db, nopLogger())

	records, err := repo.ListByNationalID(context.Background(), "00000000000")
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestRecordRepository_GetMissing(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewRecordRepository(db, nopLogger())

	assert.Equal(t, StatusNotFound, repo.Get(context.Background(), uuid.New()).Status)
}

func TestRecordRepository_UpdateKeepsIDAndCreated(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewRecordRepository(db, nopLogger())
	ctx := context.Background()

	created := repo.Create(ctx, newRecord())
	require.True(t, created.OK())

	replacement := newRecord()
	replacement.ID = created.Value.ID
	replacement.Name = "João L. Lima"
	replacement.Created = time.Now().Add(48 * time.Hour)

	updated := repo.Update(ctx, replacement)
	require.True(t, updated.OK())
	assert.Equal(t, created.Value.ID, updated.Value.ID)
	assert.True(t, created.Value.Created.Equal(updated.Value.Created))

	found := repo.Get(ctx, created.Value.ID)
	require.True(t, found.OK())
	assert.Equal(t, "João L. Lima", found.Value.Name)
	assert.True(t, found.Value.Created.Equal(created.Value.Created))
}

func TestRecordRepository_UpdateMissing(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewRecordRepository(db, nopLogger())

	record := newRecord()
	record.ID = uuid.New()
	assert.Equal(t, StatusNotFound, repo.Update(context.Background(), record).Status)
}

func TestRecordRepository_UpdateRowDeletedConcurrently(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewRecordRepository(db, nopLogger())
	ctx := context.Background()

	created := repo.Create(ctx, newRecord())
	require.True(t, created.OK())

	// Removes the row after Update has loaded it but before the UPDATE runs.
	err := db.Callback().Update().Before("gorm:update").Register("test:delete_record", func(tx *gorm.DB) {
		if tx.Statement.Table != "patient_records" {
			return
		}
		tx.Session(&gorm.Session{NewDB: true}).Exec("DELETE FROM patient_records WHERE id = ?", created.Value.ID)
	})
	require.NoError(t, err)

	replacement := newRecord()
	replacement.ID = created.Value.ID
	replacement.Name = "João L. Lima"
	assert.Equal(t, StatusNotFound, repo.Update(ctx, replacement).Status)

	var count int64
	require.NoError(t, db.Model(&model.PatientRecord{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecordRepository_UpdateUnchanged(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewRecordRepository(db, nopLogger())
	ctx := context.Background()

	created := repo.Create(ctx, newRecord())
	require.True(t, created.OK())

	same := newRecord()
	same.ID = created.Value.ID
	updated := repo.Update(ctx, same)
	require.True(t, updated.OK())
	assert.Equal(t, created.Value.ID, updated.Value.ID)
}

func TestRecordRepository_Delete(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewRecordRepository(db, nopLogger())
	ctx := context.Background()

	created := repo.Create(ctx, newRecord())
	require.True(t, created.OK())

	deleted := repo.Delete(ctx, created.Value.ID)
	require.True(t, deleted.OK())
	assert.Equal(t, created.Value.ID, deleted.Value.ID)
	assert.Equal(t, StatusNotFound, repo.Get(ctx, created.Value.ID).Status)
	assert.Equal(t, StatusNotFound, repo.Delete(ctx, created.Value.ID).Status)
}

func TestRecordRepository_StorageFailure(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewRecordRepository(db, nopLogger())
	ctx := context.Background()
	closeDB(t, db)

	assert.Equal(t, StatusFailed, repo.Get(ctx, uuid.New()).Status)
	assert.Equal(t, StatusFailed, repo.Create(ctx, newRecord()).Status)
	_, err := repo.ListByNationalID(ctx, "98765432100")
	assert.Error(t, err)
}
