package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DateLayout is the wire format of PatientRecord.Birth.
const DateLayout = "2006-01-02"

// PatientRecord is a medical record filed under a patient's CPF. Several records may
// share the same CPF.
// @Description Patient medical record
type PatientRecord struct {
	ID              uuid.UUID      `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name            string         `json:"name" gorm:"type:varchar(100);not null" example:"João Lima"`
	CPF             string         `json:"cpf" gorm:"column:cpf;type:varchar(11);index;not null" example:"98765432100"`
	Birth           datatypes.Date `json:"birth" gorm:"not null" swaggertype:"string" example:"1990-04-12"`
	Email           string         `json:"email" gorm:"type:varchar(100)" example:"joao@example.com"`
	Phone           string         `json:"phone" gorm:"type:varchar(14)" example:"5511912345678"`
	Address         string         `json:"address" gorm:"type:varchar(100)" example:"Rua das Flores, 10"`
	PictureLocation string         `json:"picture_location" gorm:"column:picture_location;type:varchar(300)" example:"https://cdn.example.com/p/1.png"`
	Created         time.Time      `json:"created" gorm:"autoCreateTime"`
}

func (r *PatientRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Normalized strips CPF punctuation and the optional leading + of the phone so the
// duplicate check compares stored forms.
func (r PatientRecord) Normalized() PatientRecord {
	r.CPF = NormalizeNationalID(r.CPF)
	r.Phone = strings.TrimPrefix(r.Phone, "+")
	return r
}

// Replace copies every field of other except the identity and creation time.
func (r PatientRecord) Replace(other PatientRecord) PatientRecord {
	other.ID = r.ID
	other.Created = r.Created
	return other.Normalized()
}

// BirthDate returns Birth as a time.Time at midnight UTC.
func (r PatientRecord) BirthDate() time.Time {
	return time.Time(r.Birth)
}

// MarshalJSON renders birth as a plain date.
func (r PatientRecord) MarshalJSON() ([]byte, error) {
	type record PatientRecord
	return json.Marshal(struct {
		record
		Birth string `json:"birth"`
	}{record(r), r.BirthDate().Format(DateLayout)})
}
