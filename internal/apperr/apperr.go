// Package apperr classifies the failures a request can run into so that
// handlers can pick a response by kind instead of by message.
//
// ValidationError is raised before any storage access, NotFoundError when an
// id does not resolve to a row, and StorageError when a transaction fails and
// has been rolled back.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound matches every NotFoundError through errors.Is.
var ErrNotFound = errors.New("not found")

// FieldError is the first violated rule of one form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists field errors in field declaration order, one per field.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

// Messages returns the per-field messages in order.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return msgs
}

// Field returns the message recorded for name, if any.
func (e *ValidationError) Field(name string) (string, bool) {
	for _, f := range e.Fields {
		if f.Field == name {
			return f.Message, true
		}
	}
	return "", false
}

type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func NotFound(entity string, id uint) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// StorageError wraps a failed, rolled back storage operation.
type StorageError struct {
	Op     string
	Entity string
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func Storage(op, entity string, err error) error {
	return &StorageError{Op: op, Entity: entity, Err: err}
}

func IsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	ok := errors.As(err, &verr)
	return verr, ok
}

func IsStorage(err error) bool {
	var serr *StorageError
	return errors.As(err, &serr)
}
