package model

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum plaintext password length, enforced on
// user creation before hashing.
const MinPasswordLength = 6

// DefaultBcryptCost is the default work factor for password hashing.
const DefaultBcryptCost = 10

var emailPattern = regexp.MustCompile(`^[\w\-.]+@([\w\-]+\.)+[\w\-]{2,4}$`)

// User is a stored user document. Password holds the bcrypt hash only and is
// never serialized into responses.
type User struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Name      *string            `bson:"name,omitempty" json:"name"`
	Email     *string            `bson:"email,omitempty" json:"email"`
	Password  *string            `bson:"password,omitempty" json:"-"`
	IsAdmin   bool               `bson:"isAdmin" json:"isAdmin"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserPayload is the writable field set of a user request body. Pointer
// fields distinguish absent from zero.
type UserPayload struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	IsAdmin  *bool   `json:"isAdmin"`
}

// NewUser builds a user document from a payload whose password has already
// been hashed.
func NewUser(p *UserPayload, now time.Time) *User {
	u := &User{
		ID:        primitive.NewObjectID(),
		Name:      p.Name,
		Email:     p.Email,
		Password:  p.Password,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if p.IsAdmin != nil {
		u.IsAdmin = *p.IsAdmin
	}
	return u
}

// Merge overwrites only the fields present in the payload. The password, if
// present, must already be hashed.
func (u *User) Merge(p *UserPayload) {
	if p.Name != nil {
		u.Name = p.Name
	}
	if p.Email != nil {
		u.Email = p.Email
	}
	if p.Password != nil {
		u.Password = p.Password
	}
	if p.IsAdmin != nil {
		u.IsAdmin = *p.IsAdmin
	}
}

// Replace sets every writable field from the payload, clearing fields the
// payload omits. The stored password hash is the one exception: it is
// retained when the payload carries no password.
func (u *User) Replace(p *UserPayload) {
	u.Name = p.Name
	u.Email = p.Email
	if p.Password != nil {
		u.Password = p.Password
	}
	u.IsAdmin = false
	if p.IsAdmin != nil {
		u.IsAdmin = *p.IsAdmin
	}
}

// Validate applies the user field rules.
func (u *User) Validate() error {
	if err := checkAll([]rule{
		{Field: "name", MinLen: 1, MaxLen: 50},
		{Field: "email", MinLen: 5, MaxLen: 255},
	}, []*string{u.Name, u.Email}); err != nil {
		return err
	}
	if !emailPattern.MatchString(*u.Email) {
		return validationErrorf("email is not a valid email address")
	}
	if u.Password == nil {
		return validationErrorf("password is required")
	}
	return nil
}

func (u *User) Touch(now time.Time) {
	u.UpdatedAt = now
}

func (u *User) DocumentID() primitive.ObjectID {
	return u.ID
}

// HashPassword derives the stored bcrypt hash from a plaintext password.
// Cost values outside bcrypt's range fall back to the default work factor.
func HashPassword(plaintext string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
