package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blogapi/internal/model"
	"blogapi/internal/pipe"
	"blogapi/internal/store"
)

const ctxUserDoc = "document.user"

func newUserPayload() any { return &model.UserPayload{} }
func newUserDoc() any     { return &model.User{} }
func newUserList() any    { return &[]model.User{} }

// hashBodyPassword hashes the bound payload's password only when the
// payload carries one. Updates without a password leave the stored hash
// untouched.
func hashBodyPassword(cost int) *pipe.Stage {
	return pipe.If(
		func(in any, c *gin.Context) bool {
			return c.MustGet(ctxBody).(*model.UserPayload).Password != nil
		},
		pipe.First(
			pipe.CtxGet(ctxBody)).Then(
			HashPassword(cost)),
		nil)
}

func makeUser() *pipe.Stage {
	return stage(
		pipe.FuncStr("make_user", ctxBody),
		func(in any, c *gin.Context, lgr pipe.Logger) (any, error) {
			return model.NewUser(in.(*model.UserPayload), time.Now().UTC()), nil
		})
}

// UserRoutes returns the seven user endpoints. Passwords are hashed with the
// given bcrypt cost before they ever reach the store.
func UserRoutes(bcryptCost int) []*pipe.Route {

	list := pipe.MakeChain(
		FetchAllDocs(store.Users, newUserList)).Then(
		Respond(http.StatusOK))

	get := pipe.First(
		pipe.URLParam("id")).Then(
		ParseID("User")).Then(
		FetchDoc(store.Users, "User", newUserDoc)).Then(
		Respond(http.StatusOK))

	create := pipe.First(
		pipe.Bind(newUserPayload)).Then(
		RequirePassword()).Then(
		HashPassword(bcryptCost)).Then(
		makeUser()).Then(
		ValidateDoc()).Then(
		InsertDoc(store.Users)).Then(
		Respond(http.StatusCreated))

	update := pipe.First(
		pipe.URLParam("id")).Then(
		ParseID("User")).Then(
		FetchDoc(store.Users, "User", newUserDoc)).Then(
		pipe.CtxSet(ctxUserDoc)).Then(
		pipe.Bind(newUserPayload)).Then(
		pipe.CtxSet(ctxBody)).Then(
		hashBodyPassword(bcryptCost)).Then(
		stage(pipe.FuncStr("merge_user", ctxUserDoc, ctxBody),
			func(in any, c *gin.Context, lgr pipe.Logger) (any, error) {
				u := c.MustGet(ctxUserDoc).(*model.User)
				u.Merge(c.MustGet(ctxBody).(*model.UserPayload))
				u.Touch(time.Now().UTC())
				return u, nil
			})).Then(
		ValidateDoc()).Then(
		ReplaceDoc(store.Users)).Then(
		Respond(http.StatusOK))

	replace := pipe.First(
		pipe.URLParam("id")).Then(
		ParseID("User")).Then(
		FetchDoc(store.Users, "User", newUserDoc)).Then(
		pipe.CtxSet(ctxUserDoc)).Then(
		pipe.Bind(newUserPayload)).Then(
		pipe.CtxSet(ctxBody)).Then(
		hashBodyPassword(bcryptCost)).Then(
		stage(pipe.FuncStr("replace_user_fields", ctxUserDoc, ctxBody),
			func(in any, c *gin.Context, lgr pipe.Logger) (any, error) {
				u := c.MustGet(ctxUserDoc).(*model.User)
				u.Replace(c.MustGet(ctxBody).(*model.UserPayload))
				u.Touch(time.Now().UTC())
				return u, nil
			})).Then(
		ValidateDoc()).Then(
		ReplaceDoc(store.Users)).Then(
		Respond(http.StatusOK))

	del := pipe.First(
		pipe.URLParam("id")).Then(
		ParseID("User")).Then(
		FetchDoc(store.Users, "User", newUserDoc)).Then(
		DeleteDoc(store.Users)).Then(
		RespondMessage(http.StatusOK, "User deleted"))

	delAll := pipe.MakeChain(
		DeleteAllDocs(store.Users)).Then(
		RespondMessage(http.StatusOK, "All users deleted"))

	return []*pipe.Route{
		{HttpMethod: http.MethodGet, RelativePath: "/users", Pipe: list},
		{HttpMethod: http.MethodGet, RelativePath: "/users/:id", Pipe: get},
		{HttpMethod: http.MethodPost, RelativePath: "/users", Pipe: create},
		{HttpMethod: http.MethodPatch, RelativePath: "/users/:id", Pipe: update},
		{HttpMethod: http.MethodPut, RelativePath: "/users/:id", Pipe: replace},
		{HttpMethod: http.MethodDelete, RelativePath: "/users/:id", Pipe: del},
		{HttpMethod: http.MethodDelete, RelativePath: "/users", Pipe: delAll},
	}
}
