package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient represents a patient account
// @Description Patient account information
type Patient struct {
	ID        uuid.UUID `json:"id" gorm:"type:varchar(36);primaryKey" example:"0c7d2a9e-33b4-4c1e-8f49-2d5d1c8e7f20"`
	CPF       string    `json:"cpf" gorm:"column:cpf;type:varchar(11);uniqueIndex;not null" example:"98765432100"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null" example:"João Lima"`
	Email     string    `json:"email" gorm:"type:varchar(100);not null" example:"joao@example.com"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p Patient) Kind() Kind            { return KindPatient }
func (p Patient) Identifier() uuid.UUID { return p.ID }
func (p Patient) NationalID() string    { return p.CPF }
func (p Patient) Secret() string        { return p.Password }

func (p Patient) Valid() bool {
	return p.ID != uuid.Nil && p.CPF != "" && p.Name != "" && p.Email != "" &&
		p.Password != "" && p.Kind().Role() == RolePatient
}

func (p Patient) Normalized() Patient {
	p.CPF = NormalizeNationalID(p.CPF)
	return p
}

func (p Patient) WithIdentity(id uuid.UUID) Patient {
	p.ID = id
	return p
}

func (p Patient) WithSecret(secret string) Patient {
	p.Password = secret
	return p
}

// MarshalJSON adds the derived role to the serialized account.
func (p Patient) MarshalJSON() ([]byte, error) {
	type patient Patient
	return json.Marshal(struct {
		patient
		Role Role `json:"role"`
	}{patient(p), p.Kind().Role()})
}
