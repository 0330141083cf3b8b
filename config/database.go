package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ariebrainware/medical-staff/model"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Dialector builds the gorm dialector for the configured driver. The test
// environment always gets a private in-memory sqlite database.
func (c *Config) Dialector() (gorm.Dialector, error) {
	if c.IsTest() {
		return sqlite.Open(fmt.Sprintf("file:medical_staff_%d?mode=memory&cache=shared", time.Now().UnixNano())), nil
	}

	switch c.DBDriver {
	case "mysql":
		// clientFoundRows makes an update that changes nothing still report the matched row.
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&clientFoundRows=true",
			c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName, c.DBSSLMode)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(c.SQLitePath), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.DBDriver)
	}
}

// ConnectDatabase opens the configured database. Driver errors for unique
// violations are translated to gorm.ErrDuplicatedKey.
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	dialector, err := cfg.Dialector()
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if cfg.IsTest() {
		level = logger.Silent
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}

	if cfg.IsTest() {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// Shared-cache sqlite reports lock errors under concurrent writers.
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Migrate creates or updates every table the service uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Physician{},
		&model.Patient{},
		&model.PatientRecord{},
		&model.SecurityLog{},
	)
}
