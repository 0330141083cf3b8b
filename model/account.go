package model

import "github.com/google/uuid"

// Account is the closed set of account kinds the repositories can store.
// T is the implementing type itself so copies can be returned without pointers.
type Account[T any] interface {
	Physician | Patient

	Kind() Kind
	Identifier() uuid.UUID
	NationalID() string
	Secret() string
	// Valid reports whether the account was loaded from storage and carries every
	// field its kind requires.
	Valid() bool
	Normalized() T
	WithIdentity(id uuid.UUID) T
	WithSecret(secret string) T
}

// KindOf resolves the kind for an account type parameter.
func KindOf[T Account[T]]() Kind {
	var zero T
	switch any(zero).(type) {
	case Physician:
		return KindPhysician
	case Patient:
		return KindPatient
	}
	panic(ErrUnsupportedKind)
}

// Credential exposes only the stored password of an account.
type Credential struct {
	Credential string `json:"credential"`
}

func (c Credential) IsEmpty() bool {
	return c.Credential == ""
}

func CredentialOf[T Account[T]](account T) Credential {
	return Credential{Credential: account.Secret()}
}
