// Package store defines the document store collaborator that the resource
// pipelines persist through. Documents are keyed by ObjectID; the API layer
// never sees a concrete store implementation.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IDHexLength is the length of a document identifier in its hex string form,
// the store's primary key format.
const IDHexLength = 24

// ErrNoDocuments reports a lookup that matched nothing.
var ErrNoDocuments = errors.New("no documents in result")

// DuplicateKeyError reports a write rejected by a unique index.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	if e.Field == "" {
		return "duplicate key error"
	}
	return fmt.Sprintf("duplicate key error: %s must be unique", e.Field)
}

// Store is a set of named document collections.
type Store interface {
	C(name string) Collection
}

// Collection provides CRUD over documents of one resource type. The result
// and results parameters follow the mongo-driver decode convention: result
// is a pointer to a document struct, results a pointer to a slice of them.
type Collection interface {
	FindAll(ctx context.Context, results any) error
	FindByID(ctx context.Context, id primitive.ObjectID, result any) error
	Insert(ctx context.Context, doc any) error
	Replace(ctx context.Context, id primitive.ObjectID, doc any) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	DeleteAll(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// Collection names, shared by every store implementation and the pipelines.
const (
	Users    = "users"
	Posts    = "posts"
	Comments = "comments"
)
