package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"blogapi/internal/model"
	"blogapi/internal/pipe"
	"blogapi/internal/store"
)

// Context keys for request-scoped pipeline state.
const (
	ctxStore = "store"
	ctxBody  = "req.body"
)

// stage builds a domain stage whose errors go through the central
// classifier.
func stage(print string, f func(any, *gin.Context, pipe.Logger) (any, error)) *pipe.Stage {
	return &pipe.Stage{
		P: func() string {
			return print
		},
		F: f,
		E: classify,
	}
}

func storeFrom(c *gin.Context) store.Store {
	return c.MustGet(ctxStore).(store.Store)
}

// entity is a stored document that knows its own identifier.
type entity interface {
	DocumentID() primitive.ObjectID
	Validate() error
	Touch(now time.Time)
}

// ParseID validates a path identifier and decodes it. Validation is by
// length only; a well-lengthed but undecodable identifier surfaces from the
// decoder as a store failure.
func ParseID(resource string) *pipe.Stage {
	return stage(
		pipe.FuncStr("parse_"+strings.ToLower(resource)+"_id"),
		func(in any, c *gin.Context, lgr pipe.Logger) (any, error) {

			id := in.(string)
			if len(id) != store.IDHexLength {
				return nil, Errf(InvalidIdentifier, "Invalid %s ID", strings.ToLower(resource))
			}
			return primitive.ObjectIDFromHex(id)
		})
}

// FetchDoc loads the entity for a decoded identifier into a fresh document
// from the factory.
func FetchDoc(coll string, resource string, factory func() any) *pipe.Stage {
	return stage(
		pipe.FuncStr("fetch_"+coll, ctxStore),
		func(in any, c *gin.Context, lgr pipe.Logger) (any, error) {

			id := in.(primitive.ObjectID)
			doc := factory()

			err := storeFrom(c).C(coll).FindByID(c, id, doc)
			if errors.Is(err, store.ErrNoDocuments) {
				return nil, Errf(NotFound, "%s not found", resource)
			}
			if err != nil {
				return nil, err
			}
			return doc, nil
		})
}

// FetchAllDocs loads every document of a collection into a fresh slice from
// the factory. An empty collection yields an empty array, never null.
func FetchAllDocs(coll string, factory func() any) *pipe.Stage {
	return stage(
		pipe.FuncStr("fetch_all_"+coll, ctxStore),
		func(in any, c *gin.Context, lgr pipe.Logger) (any, error) {

			results := factory()
			if err := storeFrom(c).C(coll).FindAll(c, results); err != nil {
				return nil, err
			}
			return results, nil
		})
}

// ValidateDoc applies the entity's field rules. It runs immediately before
// persistence so a failing write never mutates the store.
func ValidateDoc() *pipe.Stage {
	return stage(
		pipe.FuncStr("validate_document"),
		func(in any, c *gin.Context, lgr pipe.Logger) (any, error) {

			if err := in.(entity).Validate(); err != nil {
				return nil, err
			}
			return in, nil
		})
}

// InsertDoc persists a new document and passes it through.
func InsertDoc(coll string) *pipe.Stage {
	return stage(
		pipe.FuncStr("insert_"+coll, ctxStore),
		func(in any, c *gin.Context, lgr pipe.Logger) (any, error) {

			if err := storeFrom(c).C(coll).Insert(c, in); err != nil {
				return nil, err
			}
			return in, nil
		})
}

// ReplaceDoc persists a mutated document under its own identifier.
func ReplaceDoc(coll string) *pipe.Stage {
	return stage(
		pipe.FuncStr("replace_"+coll, ctxStore),
		func(in any, c *gin.Context, lgr pipe.Logger) (any, error) {

			doc := in.(entity)
			if err := storeFrom(c).C(coll).Replace(c, doc.DocumentID(), doc); err != nil {
				return nil, err
			}
			return doc, nil
		})
}

// DeleteDoc removes the loaded entity from its collection.
func DeleteDoc(coll string) *pipe.Stage {
	return stage(
		pipe.FuncStr("delete_"+coll, ctxStore),
		func(in any, c *gin.Context, lgr pipe.Logger) (any, error) {

			doc := in.(entity)
			if err := storeFrom(c).C(coll).DeleteByID(c, doc.DocumentID()); err != nil {
				return nil, err
			}
			return nil, nil
		})
}

// DeleteAllDocs clears a collection. Clearing an empty collection succeeds.
func DeleteAllDocs(coll string) *pipe.Stage {
	return stage(
		pipe.FuncStr("delete_all_"+coll, ctxStore),
		func(in any, c *gin.Context, lgr pipe.Logger) (any, error) {

			if _, err := storeFrom(c).C(coll).DeleteAll(c); err != nil {
				return nil, err
			}
			return nil, nil
		})
}

// RequirePassword enforces the minimum plaintext password length before any
// hashing happens. Creation-only.
func RequirePassword() *pipe.Stage {
	return stage(
		pipe.FuncStr("check_password"),
		func(in any, c *gin.Context, lgr pipe.Logger) (any, error) {

			p := in.(*model.UserPayload)
			if p.Password == nil || len(*p.Password) < model.MinPasswordLength {
				return nil, Errf(ValidationFailed,
					"Password must be at least %d characters long", model.MinPasswordLength)
			}
			return p, nil
		})
}

// HashPassword replaces the payload's plaintext password with its bcrypt
// hash. Payloads without a password pass through untouched.
func HashPassword(cost int) *pipe.Stage {
	return stage(
		pipe.FuncStr("hash_password"),
		func(in any, c *gin.Context, lgr pipe.Logger) (any, error) {

			p := in.(*model.UserPayload)
			if p.Password == nil {
				return p, nil
			}
			hash, err := model.HashPassword(*p.Password, cost)
			if err != nil {
				return nil, err
			}
			p.Password = &hash
			return p, nil
		})
}

// CheckPostRef verifies a comment payload's post reference: first that it is
// a syntactically valid identifier, then that the post exists. Either
// failure is a client error against the payload, never a 404. Outputs the
// decoded post identifier.
func CheckPostRef() *pipe.Stage {
	return stage(
		pipe.FuncStr("check_post_ref", ctxStore),
		func(in any, c *gin.Context, lgr pipe.Logger) (any, error) {

			p := in.(*model.CommentPayload)
			if p.Post == nil {
				return nil, Errf(InvalidReference, "Invalid post ID")
			}

			id, err := model.ParsePostRef(*p.Post)
			if err != nil {
				return nil, Errf(InvalidReference, "Invalid post ID")
			}

			exists, err := storeFrom(c).C(store.Posts).Exists(c, id)
			if err != nil {
				return nil, err
			}
			if !exists {
				return nil, Errf(InvalidReference, "Referenced post does not exist")
			}
			return id, nil
		})
}

// Respond terminates a chain with the previous stage's output as the body.
func Respond(code int) *pipe.Stage {
	return stage(
		pipe.FuncStr("respond"),
		func(in any, c *gin.Context, lgr pipe.Logger) (any, error) {
			return &pipe.Response{Code: code, Obj: in}, nil
		})
}

// RespondMessage terminates a chain with a fixed {"message": ...} body.
func RespondMessage(code int, message string) *pipe.Stage {
	return stage(
		pipe.FuncStr("respond_message"),
		func(in any, c *gin.Context, lgr pipe.Logger) (any, error) {
			return &pipe.Response{Code: code, Obj: pipe.H{"message": message}}, nil
		})
}
