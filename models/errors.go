package models

import "fmt"

// ErrorNotFound is returned when an entity, or the parent a child refers to, does not exist.
type ErrorNotFound struct {
	Resource string
	ID       string
}

func (e ErrorNotFound) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

type ErrorValidation struct {
	Message string
}

func (e ErrorValidation) Error() string {
	return e.Message
}

// ErrorInternalServer wraps a failure of the persistence layer.
type ErrorInternalServer struct {
	Op  string
	Err error
}

func (e ErrorInternalServer) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e ErrorInternalServer) Unwrap() error {
	return e.Err
}
