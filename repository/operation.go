package repository

import "fmt"

// Status is the outcome of a repository or service operation.
type Status uint8

const (
	StatusSuccess Status = iota + 1
	StatusAlreadyExists
	// StatusNotFound covers both a missing target and a target that is not in a
	// usable state for the requested operation.
	StatusNotFound
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusAlreadyExists:
		return "already exists"
	case StatusNotFound:
		return "not found"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Operation carries the status of a point operation and, on success, its value.
// Err holds the underlying cause for logging and is never shown to clients.
type Operation[T any] struct {
	Status Status
	Value  T
	Err    error
}

func (o Operation[T]) OK() bool {
	return o.Status == StatusSuccess
}

func Succeeded[T any](value T) Operation[T] {
	return Operation[T]{Status: StatusSuccess, Value: value}
}

func AlreadyExists[T any]() Operation[T] {
	return Operation[T]{Status: StatusAlreadyExists}
}

func NotFound[T any]() Operation[T] {
	return Operation[T]{Status: StatusNotFound}
}

func Failed[T any](err error) Operation[T] {
	return Operation[T]{Status: StatusFailed, Err: err}
}

// Relay re-types an unsuccessful operation, keeping its status and cause.
func Relay[T, U any](op Operation[U]) Operation[T] {
	return Operation[T]{Status: op.Status, Err: op.Err}
}
