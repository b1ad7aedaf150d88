package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blogapi/internal/model"
	"blogapi/internal/pipe"
	"blogapi/internal/store"
)

// Options configures the router.
type Options struct {
	BcryptCost int         // password hashing work factor; 0 means the default
	Logger     pipe.Logger // per-stage pipeline logger; nil disables it
}

// NewRouter builds the gin engine with every resource route registered and
// the store injected into each request's context.
func NewRouter(st store.Store, opts Options) *gin.Engine {

	if opts.BcryptCost == 0 {
		opts.BcryptCost = model.DefaultBcryptCost
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(injectStore(st))

	engine.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/users")
	})

	routes := UserRoutes(opts.BcryptCost)
	routes = append(routes, PostRoutes()...)
	routes = append(routes, CommentRoutes()...)
	for _, route := range routes {
		route.Logger = opts.Logger
		pipe.AddRoute(engine, route)
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(NotFound.Status(), pipe.H{"error": "Not found"})
	})

	return engine
}

func injectStore(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxStore, st)
		c.Next()
	}
}
