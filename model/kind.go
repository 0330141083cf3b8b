package model

import "errors"

// ErrUnsupportedKind is raised when an account kind outside the closed set reaches the storage layer.
var ErrUnsupportedKind = errors.New("unsupported account kind")

// Kind identifies which account table a value belongs to.
type Kind uint8

const (
	KindPhysician Kind = iota + 1
	KindPatient
)

func (k Kind) String() string {
	switch k {
	case KindPhysician:
		return "physician"
	case KindPatient:
		return "patient"
	default:
		return "unknown"
	}
}

// Role returns the role every account of this kind carries.
func (k Kind) Role() Role {
	switch k {
	case KindPhysician:
		return RolePhysician
	case KindPatient:
		return RolePatient
	default:
		return RoleUnspecified
	}
}

// Role is derived from the account kind and is never stored.
type Role uint16

const (
	RoleUnspecified Role = iota
	RolePhysician
	RolePatient
)

func (r Role) String() string {
	switch r {
	case RolePhysician:
		return "physician"
	case RolePatient:
		return "patient"
	default:
		return "unspecified"
	}
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
