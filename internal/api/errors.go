// Package api composes the resource pipelines for users, posts, and
// comments. Every route is a chain of stages; every failure anywhere in a
// chain is classified into one of a fixed set of error kinds and serialized
// in one place as {"error": message}.
package api

import (
	"errors"
	"fmt"
	"net/http"

	"blogapi/internal/model"
	"blogapi/internal/pipe"
	"blogapi/internal/store"
)

// Kind is the classification of a pipeline failure.
type Kind int

const (
	// InvalidIdentifier rejects a malformed path identifier.
	InvalidIdentifier Kind = iota
	// InvalidReference rejects a malformed or dangling foreign identifier
	// embedded in a request body.
	InvalidReference
	// ValidationFailed rejects a document that violates its field rules,
	// collides on a unique field, or carries a weak credential.
	ValidationFailed
	// NotFound reports an absent entity or route.
	NotFound
	// StoreFailure reports an underlying store error, including anything
	// unclassified.
	StoreFailure
)

// Status maps each kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case InvalidIdentifier, InvalidReference, ValidationFailed:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified pipeline failure.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Errf builds a classified error with a formatted message.
func Errf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// classify is the terminal error handler: it maps any error raised by a
// stage to its response shape. Errors no stage classified explicitly are
// store failures.
func classify(err error) *pipe.StageError {

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return &pipe.StageError{
			Code: apiErr.Kind.Status(),
			Obj:  pipe.H{"error": apiErr.Message},
		}
	}

	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		return &pipe.StageError{
			Code: ValidationFailed.Status(),
			Obj:  pipe.H{"error": validationErr.Message},
		}
	}

	var dupErr *store.DuplicateKeyError
	if errors.As(err, &dupErr) {
		return &pipe.StageError{
			Code: ValidationFailed.Status(),
			Obj:  pipe.H{"error": dupErr.Error()},
		}
	}

	if errors.Is(err, store.ErrNoDocuments) {
		return &pipe.StageError{
			Code: NotFound.Status(),
			Obj:  pipe.H{"error": "Not found"},
		}
	}

	return &pipe.StageError{
		Code: StoreFailure.Status(),
		Obj:  pipe.H{"error": err.Error()},
	}
}
