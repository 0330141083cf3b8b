package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Physician represents a physician account
// @Description Physician account information
type Physician struct {
	ID        uuid.UUID `json:"id" gorm:"type:varchar(36);primaryKey" example:"8b1e3c52-5c1f-4a43-9d4e-0f5f4f0b9a11"`
	CRM       string    `json:"crm" gorm:"column:crm;type:varchar(13);not null" example:"CRM/SP 123456"`
	CPF       string    `json:"cpf" gorm:"column:cpf;type:varchar(11);uniqueIndex;not null" example:"12345678901"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null" example:"Dr. Ana Souza"`
	Email     string    `json:"email" gorm:"type:varchar(100);not null" example:"ana@example.com"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Physician) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p Physician) Kind() Kind            { return KindPhysician }
func (p Physician) Identifier() uuid.UUID { return p.ID }
func (p Physician) NationalID() string    { return p.CPF }
func (p Physician) Secret() string        { return p.Password }

func (p Physician) Valid() bool {
	return p.ID != uuid.Nil && p.CRM != "" && p.CPF != "" && p.Name != "" &&
		p.Email != "" && p.Password != "" && p.Kind().Role() == RolePhysician
}

func (p Physician) Normalized() Physician {
	p.CPF = NormalizeNationalID(p.CPF)
	return p
}

func (p Physician) WithIdentity(id uuid.UUID) Physician {
	p.ID = id
	return p
}

func (p Physician) WithSecret(secret string) Physician {
	p.Password = secret
	return p
}

// MarshalJSON adds the derived role to the serialized account.
func (p Physician) MarshalJSON() ([]byte, error) {
	type physician Physician
	return json.Marshal(struct {
		physician
		Role Role `json:"role"`
	}{physician(p), p.Kind().Role()})
}
