package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogapi/internal/model"
	"blogapi/internal/store"
)

func str(s string) *string { return &s }

func newPost(name string) *model.Post {
	return model.NewPost(&model.PostPayload{
		Name:    str(name),
		Content: str("This is the content of the post."),
		Author:  str("John Doe"),
	}, time.Now().UTC())
}

func TestInsertAndFindByID(t *testing.T) {
	st := New()
	ctx := context.Background()

	p := newPost("My First Post")
	require.NoError(t, st.C(store.Posts).Insert(ctx, p))

	var got model.Post
	require.NoError(t, st.C(store.Posts).FindByID(ctx, p.ID, &got))
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "My First Post", *got.Name)
}

func TestFindByIDMissing(t *testing.T) {
	st := New()

	var got model.Post
	err := st.C(store.Posts).FindByID(context.Background(), newPost("x").ID, &got)
	assert.ErrorIs(t, err, store.ErrNoDocuments)
}

func TestFindAllPreservesInsertionOrder(t *testing.T) {
	st := New()
	ctx := context.Background()

	names := []string{"First", "Second", "Third"}
	for _, n := range names {
		require.NoError(t, st.C(store.Posts).Insert(ctx, newPost(n)))
	}

	var posts []model.Post
	require.NoError(t, st.C(store.Posts).FindAll(ctx, &posts))
	require.Len(t, posts, 3)
	for i, n := range names {
		assert.Equal(t, n, *posts[i].Name)
	}
}

func TestFindAllEmptyIsNotNil(t *testing.T) {
	st := New()

	var posts []model.Post
	require.NoError(t, st.C(store.Posts).FindAll(context.Background(), &posts))
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestDocumentsAreIsolated(t *testing.T) {
	st := New()
	ctx := context.Background()

	p := newPost("Original")
	require.NoError(t, st.C(store.Posts).Insert(ctx, p))

	// mutating the caller's document must not change the stored copy
	p.Name = str("Mutated")

	var got model.Post
	require.NoError(t, st.C(store.Posts).FindByID(ctx, p.ID, &got))
	assert.Equal(t, "Original", *got.Name)
}

func TestReplace(t *testing.T) {
	st := New()
	ctx := context.Background()

	p := newPost("Before")
	require.NoError(t, st.C(store.Posts).Insert(ctx, p))

	p.Name = str("After")
	require.NoError(t, st.C(store.Posts).Replace(ctx, p.ID, p))

	var got model.Post
	require.NoError(t, st.C(store.Posts).FindByID(ctx, p.ID, &got))
	assert.Equal(t, "After", *got.Name)

	err := st.C(store.Posts).Replace(ctx, newPost("x").ID, p)
	assert.ErrorIs(t, err, store.ErrNoDocuments)
}

func TestUniqueEmailEnforced(t *testing.T) {
	st := New()
	ctx := context.Background()
	now := time.Now().UTC()

	u1 := model.NewUser(&model.UserPayload{
		Name: str("John Doe"), Email: str("john@example.com"), Password: str("hash"),
	}, now)
	u2 := model.NewUser(&model.UserPayload{
		Name: str("Jane Doe"), Email: str("john@example.com"), Password: str("hash"),
	}, now)

	require.NoError(t, st.C(store.Users).Insert(ctx, u1))

	var dup *store.DuplicateKeyError
	err := st.C(store.Users).Insert(ctx, u2)
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "email", dup.Field)

	// a document may keep its own unique value on replace
	require.NoError(t, st.C(store.Users).Replace(ctx, u1.ID, u1))
}

func TestDeleteAndDeleteAll(t *testing.T) {
	st := New()
	ctx := context.Background()

	p := newPost("Doomed")
	require.NoError(t, st.C(store.Posts).Insert(ctx, p))

	require.NoError(t, st.C(store.Posts).DeleteByID(ctx, p.ID))
	exists, err := st.C(store.Posts).Exists(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	// deleting an absent document is a no-op
	require.NoError(t, st.C(store.Posts).DeleteByID(ctx, p.ID))

	require.NoError(t, st.C(store.Posts).Insert(ctx, newPost("A")))
	require.NoError(t, st.C(store.Posts).Insert(ctx, newPost("B")))
	n, err := st.C(store.Posts).DeleteAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = st.C(store.Posts).DeleteAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpsCountsCollectionOperations(t *testing.T) {
	st := New()
	ctx := context.Background()

	assert.Zero(t, st.Ops())
	require.NoError(t, st.C(store.Posts).Insert(ctx, newPost("A")))
	_, err := st.C(store.Posts).Exists(ctx, newPost("B").ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, st.Ops())
}
