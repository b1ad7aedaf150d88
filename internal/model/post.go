package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a stored post document. Posts are unpublished by default.
type Post struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        *string            `bson:"name,omitempty" json:"name"`
	Content     *string            `bson:"content,omitempty" json:"content"`
	Author      *string            `bson:"author,omitempty" json:"author"`
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PostPayload is the writable field set of a post request body.
type PostPayload struct {
	Name    *string `json:"name"`
	Content *string `json:"content"`
	Author  *string `json:"author"`
}

func NewPost(p *PostPayload, now time.Time) *Post {
	return &Post{
		ID:        primitive.NewObjectID(),
		Name:      p.Name,
		Content:   p.Content,
		Author:    p.Author,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Merge overwrites only the fields present in the payload.
func (p *Post) Merge(in *PostPayload) {
	if in.Name != nil {
		p.Name = in.Name
	}
	if in.Content != nil {
		p.Content = in.Content
	}
	if in.Author != nil {
		p.Author = in.Author
	}
}

// Replace sets every writable field from the payload, clearing fields the
// payload omits.
func (p *Post) Replace(in *PostPayload) {
	p.Name = in.Name
	p.Content = in.Content
	p.Author = in.Author
}

// Validate applies the post field rules.
func (p *Post) Validate() error {
	return checkAll([]rule{
		{Field: "name", MinLen: 3, MaxLen: 100},
		{Field: "content", MinLen: 10},
		{Field: "author", MinLen: 3, MaxLen: 50},
	}, []*string{p.Name, p.Content, p.Author})
}

func (p *Post) Touch(now time.Time) {
	p.UpdatedAt = now
}

func (p *Post) DocumentID() primitive.ObjectID {
	return p.ID
}
