package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"blogapi/internal/model"
	"blogapi/internal/pipe"
	"blogapi/internal/store"
)

const ctxCommentDoc = "document.comment"

func newCommentPayload() any { return &model.CommentPayload{} }
func newCommentDoc() any     { return &model.Comment{} }
func newCommentList() any    { return &[]model.Comment{} }

// CommentRoutes returns the seven comment endpoints. Creation checks the
// post reference before the comment is built; updates re-parse the reference
// but do not re-check existence.
func CommentRoutes() []*pipe.Route {

	list := pipe.MakeChain(
		FetchAllDocs(store.Comments, newCommentList)).Then(
		Respond(http.StatusOK))

	get := pipe.First(
		pipe.URLParam("id")).Then(
		ParseID("Comment")).Then(
		FetchDoc(store.Comments, "Comment", newCommentDoc)).Then(
		Respond(http.StatusOK))

	create := pipe.First(
		pipe.Bind(newCommentPayload)).Then(
		pipe.CtxSet(ctxBody)).Then(
		CheckPostRef()).Then(
		stage(pipe.FuncStr("make_comment", ctxBody),
			func(in any, c *gin.Context, lgr pipe.Logger) (any, error) {
				postID := in.(primitive.ObjectID)
				p := c.MustGet(ctxBody).(*model.CommentPayload)
				return model.NewComment(p, postID, time.Now().UTC()), nil
			})).Then(
		ValidateDoc()).Then(
		InsertDoc(store.Comments)).Then(
		Respond(http.StatusCreated))

	update := pipe.First(
		pipe.URLParam("id")).Then(
		ParseID("Comment")).Then(
		FetchDoc(store.Comments, "Comment", newCommentDoc)).Then(
		pipe.CtxSet(ctxCommentDoc)).Then(
		pipe.Bind(newCommentPayload)).Then(
		stage(pipe.FuncStr("merge_comment", ctxCommentDoc),
			func(in any, c *gin.Context, lgr pipe.Logger) (any, error) {
				cm := c.MustGet(ctxCommentDoc).(*model.Comment)
				if err := cm.Merge(in.(*model.CommentPayload)); err != nil {
					return nil, err
				}
				cm.Touch(time.Now().UTC())
				return cm, nil
			})).Then(
		ValidateDoc()).Then(
		ReplaceDoc(store.Comments)).Then(
		Respond(http.StatusOK))

	replace := pipe.First(
		pipe.URLParam("id")).Then(
		ParseID("Comment")).Then(
		FetchDoc(store.Comments, "Comment", newCommentDoc)).Then(
		pipe.CtxSet(ctxCommentDoc)).Then(
		pipe.Bind(newCommentPayload)).Then(
		stage(pipe.FuncStr("replace_comment_fields", ctxCommentDoc),
			func(in any, c *gin.Context, lgr pipe.Logger) (any, error) {
				cm := c.MustGet(ctxCommentDoc).(*model.Comment)
				if err := cm.Replace(in.(*model.CommentPayload)); err != nil {
					return nil, err
				}
				cm.Touch(time.Now().UTC())
				return cm, nil
			})).Then(
		ValidateDoc()).Then(
		ReplaceDoc(store.Comments)).Then(
		Respond(http.StatusOK))

	del := pipe.First(
		pipe.URLParam("id")).Then(
		ParseID("Comment")).Then(
		FetchDoc(store.Comments, "Comment", newCommentDoc)).Then(
		DeleteDoc(store.Comments)).Then(
		RespondMessage(http.StatusOK, "Comment deleted"))

	delAll := pipe.MakeChain(
		DeleteAllDocs(store.Comments)).Then(
		RespondMessage(http.StatusOK, "All comments deleted"))

	return []*pipe.Route{
		{HttpMethod: http.MethodGet, RelativePath: "/comments", Pipe: list},
		{HttpMethod: http.MethodGet, RelativePath: "/comments/:id", Pipe: get},
		{HttpMethod: http.MethodPost, RelativePath: "/comments", Pipe: create},
		{HttpMethod: http.MethodPatch, RelativePath: "/comments/:id", Pipe: update},
		{HttpMethod: http.MethodPut, RelativePath: "/comments/:id", Pipe: replace},
		{HttpMethod: http.MethodDelete, RelativePath: "/comments/:id", Pipe: del},
		{HttpMethod: http.MethodDelete, RelativePath: "/comments", Pipe: delAll},
	}
}
