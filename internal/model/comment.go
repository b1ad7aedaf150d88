package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"blogapi/internal/store"
)

// Comment is a stored comment document. Post references the commented post
// by identifier. Comments are active by default.
type Comment struct {
	ID        primitive.ObjectID  `bson:"_id" json:"id"`
	Content   *string             `bson:"content,omitempty" json:"content"`
	Author    *string             `bson:"author,omitempty" json:"author"`
	Post      *primitive.ObjectID `bson:"post,omitempty" json:"post"`
	IsActive  bool                `bson:"isActive" json:"isActive"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// CommentPayload is the writable field set of a comment request body. The
// post reference arrives as a hex identifier string.
type CommentPayload struct {
	Content *string `json:"content"`
	Author  *string `json:"author"`
	Post    *string `json:"post"`
}

// ParsePostRef decodes a payload's post reference into an ObjectID.
func ParsePostRef(ref string) (primitive.ObjectID, error) {
	if len(ref) != store.IDHexLength {
		return primitive.NilObjectID, validationErrorf("Invalid post ID")
	}
	id, err := primitive.ObjectIDFromHex(ref)
	if err != nil {
		return primitive.NilObjectID, validationErrorf("Invalid post ID")
	}
	return id, nil
}

// NewComment builds a comment document. The post reference must have been
// resolved by the referential check already.
func NewComment(p *CommentPayload, postID primitive.ObjectID, now time.Time) *Comment {
	return &Comment{
		ID:        primitive.NewObjectID(),
		Content:   p.Content,
		Author:    p.Author,
		Post:      &postID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Merge overwrites only the fields present in the payload. A present but
// malformed post reference fails.
func (c *Comment) Merge(in *CommentPayload) error {
	if in.Content != nil {
		c.Content = in.Content
	}
	if in.Author != nil {
		c.Author = in.Author
	}
	if in.Post != nil {
		id, err := ParsePostRef(*in.Post)
		if err != nil {
			return err
		}
		c.Post = &id
	}
	return nil
}

// Replace sets every writable field from the payload, clearing fields the
// payload omits. An omitted post reference clears the field and fails the
// required-field rule at validation.
func (c *Comment) Replace(in *CommentPayload) error {
	c.Content = in.Content
	c.Author = in.Author
	c.Post = nil
	if in.Post != nil {
		id, err := ParsePostRef(*in.Post)
		if err != nil {
			return err
		}
		c.Post = &id
	}
	return nil
}

// Validate applies the comment field rules.
func (c *Comment) Validate() error {
	if err := checkAll([]rule{
		{Field: "content", MinLen: 1, MaxLen: 1000},
		{Field: "author", MinLen: 3, MaxLen: 50},
	}, []*string{c.Content, c.Author}); err != nil {
		return err
	}
	if c.Post == nil {
		return validationErrorf("post is required")
	}
	return nil
}

func (c *Comment) Touch(now time.Time) {
	c.UpdatedAt = now
}

func (c *Comment) DocumentID() primitive.ObjectID {
	return c.ID
}
