// Package seed loads deterministic fixture data into the store for local
// development. Each run clears the three collections before inserting.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"blogapi/internal/model"
	"blogapi/internal/store"
)

func str(s string) *string { return &s }

// Seed clears users, posts, and comments and inserts fresh fixtures. Comment
// fixtures reference the seeded posts, so referential integrity holds from
// the first request.
func Seed(ctx context.Context, st store.Store, bcryptCost int) error {

	for _, name := range []string{store.Users, store.Posts, store.Comments} {
		if _, err := st.C(name).DeleteAll(ctx); err != nil {
			return fmt.Errorf("clear %s: %w", name, err)
		}
	}

	now := time.Now().UTC()

	users := []*model.UserPayload{
		{Name: str("John Doe"), Email: str("john.doe@example.com"), Password: str("sekret1")},
		{Name: str("Jane Doe"), Email: str("jane.doe@example.com"), Password: str("sekret2")},
		{Name: str("Sam Smith"), Email: str("sam.smith@example.com"), Password: str("sekret3")},
	}
	for _, p := range users {
		hash, err := model.HashPassword(*p.Password, bcryptCost)
		if err != nil {
			return err
		}
		p.Password = &hash
		u := model.NewUser(p, now)
		if err := st.C(store.Users).Insert(ctx, u); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}

	posts := []*model.PostPayload{
		{Name: str("My First Post"), Content: str("This is the content of the post."), Author: str("John Doe")},
		{Name: str("Getting Started"), Content: str("A short guide to getting started."), Author: str("Jane Doe")},
		{Name: str("Release Notes"), Content: str("Everything that changed this week."), Author: str("Sam Smith")},
		{Name: str("On Writing"), Content: str("Some thoughts on writing well."), Author: str("Jane Doe")},
		{Name: str("Closing Thoughts"), Content: str("A retrospective on the project."), Author: str("John Doe")},
	}
	postIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		doc := model.NewPost(p, now)
		if err := st.C(store.Posts).Insert(ctx, doc); err != nil {
			return fmt.Errorf("seed posts: %w", err)
		}
		postIDs = append(postIDs, doc.ID.Hex())
	}

	comments := []struct {
		content string
		author  string
		post    int
	}{
		{"Great first post!", "Jane Doe", 0},
		{"Looking forward to more.", "Sam Smith", 0},
		{"This guide saved me an afternoon.", "John Doe", 1},
		{"Nice summary.", "Jane Doe", 2},
		{"Agreed on every point.", "Sam Smith", 3},
	}
	for _, cm := range comments {
		postID, err := model.ParsePostRef(postIDs[cm.post])
		if err != nil {
			return err
		}
		doc := model.NewComment(&model.CommentPayload{
			Content: str(cm.content),
			Author:  str(cm.author),
		}, postID, now)
		if err := st.C(store.Comments).Insert(ctx, doc); err != nil {
			return fmt.Errorf("seed comments: %w", err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"users":    len(users),
		"posts":    len(posts),
		"comments": len(comments),
	}).Info("data seeded")

	return nil
}
