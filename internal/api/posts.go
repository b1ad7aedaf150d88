package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blogapi/internal/model"
	"blogapi/internal/pipe"
	"blogapi/internal/store"
)

const ctxPostDoc = "document.post"

func newPostPayload() any { return &model.PostPayload{} }
func newPostDoc() any     { return &model.Post{} }
func newPostList() any    { return &[]model.Post{} }

func makePost() *pipe.Stage {
	return stage(
		pipe.FuncStr("make_post", ctxBody),
		func(in any, c *gin.Context, lgr pipe.Logger) (any, error) {
			return model.NewPost(in.(*model.PostPayload), time.Now().UTC()), nil
		})
}

// PostRoutes returns the seven post endpoints.
func PostRoutes() []*pipe.Route {

	list := pipe.MakeChain(
		FetchAllDocs(store.Posts, newPostList)).Then(
		Respond(http.StatusOK))

	get := pipe.First(
		pipe.URLParam("id")).Then(
		ParseID("Post")).Then(
		FetchDoc(store.Posts, "Post", newPostDoc)).Then(
		Respond(http.StatusOK))

	create := pipe.First(
		pipe.Bind(newPostPayload)).Then(
		makePost()).Then(
		ValidateDoc()).Then(
		InsertDoc(store.Posts)).Then(
		Respond(http.StatusCreated))

	update := pipe.First(
		pipe.URLParam("id")).Then(
		ParseID("Post")).Then(
		FetchDoc(store.Posts, "Post", newPostDoc)).Then(
		pipe.CtxSet(ctxPostDoc)).Then(
		pipe.Bind(newPostPayload)).Then(
		stage(pipe.FuncStr("merge_post", ctxPostDoc),
			func(in any, c *gin.Context, lgr pipe.Logger) (any, error) {
				p := c.MustGet(ctxPostDoc).(*model.Post)
				p.Merge(in.(*model.PostPayload))
				p.Touch(time.Now().UTC())
				return p, nil
			})).Then(
		ValidateDoc()).Then(
		ReplaceDoc(store.Posts)).Then(
		Respond(http.StatusOK))

	replace := pipe.First(
		pipe.URLParam("id")).Then(
		ParseID("Post")).Then(
		FetchDoc(store.Posts, "Post", newPostDoc)).Then(
		pipe.CtxSet(ctxPostDoc)).Then(
		pipe.Bind(newPostPayload)).Then(
		stage(pipe.FuncStr("replace_post_fields", ctxPostDoc),
			func(in any, c *gin.Context, lgr pipe.Logger) (any, error) {
				p := c.MustGet(ctxPostDoc).(*model.Post)
				p.Replace(in.(*model.PostPayload))
				p.Touch(time.Now().UTC())
				return p, nil
			})).Then(
		ValidateDoc()).Then(
		ReplaceDoc(store.Posts)).Then(
		Respond(http.StatusOK))

	del := pipe.First(
		pipe.URLParam("id")).Then(
		ParseID("Post")).Then(
		FetchDoc(store.Posts, "Post", newPostDoc)).Then(
		DeleteDoc(store.Posts)).Then(
		RespondMessage(http.StatusOK, "Post deleted"))

	delAll := pipe.MakeChain(
		DeleteAllDocs(store.Posts)).Then(
		RespondMessage(http.StatusOK, "All posts deleted"))

	return []*pipe.Route{
		{HttpMethod: http.MethodGet, RelativePath: "/posts", Pipe: list},
		{HttpMethod: http.MethodGet, RelativePath: "/posts/:id", Pipe: get},
		{HttpMethod: http.MethodPost, RelativePath: "/posts", Pipe: create},
		{HttpMethod: http.MethodPatch, RelativePath: "/posts/:id", Pipe: update},
		{HttpMethod: http.MethodPut, RelativePath: "/posts/:id", Pipe: replace},
		{HttpMethod: http.MethodDelete, RelativePath: "/posts/:id", Pipe: del},
		{HttpMethod: http.MethodDelete, RelativePath: "/posts", Pipe: delAll},
	}
}
