package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/ariebrainware/medical-staff/model"
	"github.com/ariebrainware/medical-staff/repository"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&model.Physician{}, &model.Patient{}, &model.PatientRecord{}); err != nil {
		t.Fatalf("failed to auto-migrate models: %v", err)
	}
	return db
}

func newPhysicianService(db *gorm.DB) *AccountService[model.Physician] {
	return NewAccountService[model.Physician](repository.NewAccountRepository[model.Physician](db, zerolog.Nop()), zerolog.Nop())
}

func newPatientService(db *gorm.DB) *AccountService[model.Patient] {
	return NewAccountService[model.Patient](repository.NewAccountRepository[model.Patient](db, zerolog.Nop()), zerolog.Nop())
}
