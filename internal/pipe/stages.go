package pipe

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	BR  = http.StatusBadRequest
	ISR = http.StatusInternalServerError
)

var ErrNotFound = errors.New("not found")

// S creates a generic stage that executes the given function.
// E's default code is http.StatusBadRequest since that is common.
func S(name string, f func(any, *gin.Context, Logger) (any, error)) *Stage {

	return &Stage{
		P: func() string {
			return name
		},
		F: f,
		E: func(err error) *StageError {
			return &StageError{
				Code: BR,
				Obj:  H{"error": err.Error()},
			}
		},
	}
}

// Bind parses the request body as JSON into a fresh object from the given
// factory. The factory keeps bound payloads request-scoped; concurrent
// requests through the same chain must never share one.
func Bind(factory func() any) *Stage {
	return &Stage{

		P: func() string {
			return "Req.Body =>"
		},

		F: func(in any, c *gin.Context, lgr Logger) (any, error) {
			obj := factory()
			if err := c.ShouldBindJSON(obj); err != nil {
				return nil, err
			}
			return obj, nil
		},

		E: func(err error) *StageError {
			return &StageError{
				Code: BR,
				Obj:  H{"error": "Invalid request: " + err.Error()},
			}
		},
	}
}

// URLParam outputs the named path parameter.
func URLParam(key string) *Stage {
	return &Stage{

		P: func() string {
			return "Req.URL(\"" + key + "\") =>"
		},

		F: func(in any, c *gin.Context, lgr Logger) (any, error) {
			return c.Param(key), nil
		},
	}
}

// QueryParam outputs the named query parameter.
func QueryParam(key string) *Stage {
	return &Stage{

		P: func() string {
			return "Req.Query(\"" + key + "\") =>"
		},

		F: func(in any, c *gin.Context, lgr Logger) (any, error) {
			return c.Query(key), nil
		},
	}
}

// CtxGet outputs the request-scoped value stored under key.
func CtxGet(key string) *Stage {
	return &Stage{

		P: func() string {
			return "[\"" + key + "\"] =>"
		},

		F: func(in any, c *gin.Context, lgr Logger) (any, error) {
			val, ok := c.Get(key)
			if !ok {
				return nil, ErrNotFound
			}
			return val, nil
		},

		E: func(err error) *StageError {
			return &StageError{
				Code: ISR,
				Obj:  H{"error": "Key not found: " + key},
			}
		},
	}
}

// CtxSet stores in under key in the request context and passes it through.
func CtxSet(key string) *Stage {
	return &Stage{

		P: func() string {
			return "  => [\"" + key + "\"]"
		},

		F: func(in any, c *gin.Context, lgr Logger) (any, error) {
			c.Set(key, in)
			return in, nil
		},
	}
}

type ChainExecutionError struct {
	StageError *StageError
}

func (e ChainExecutionError) Error() string {
	return "chain execution error"
}

// If executes then when cond holds and els otherwise. A nil branch is a
// no-op that passes nil downstream.
func If(cond func(any, *gin.Context) bool, then *Chain, els *Chain) *Stage {
	return &Stage{

		P: func() string {
			if then != nil && els == nil {
				return "If => then"
			}
			return "If => then/else"
		},

		F: func(in any, c *gin.Context, lgr Logger) (any, error) {

			var ch *Chain
			if cond(in, c) {
				ch = then
			} else {
				ch = els
			}

			if ch == nil {
				return nil, nil
			}

			o, e := Execute(ch, c, lgr)
			if e != nil {
				return nil, ChainExecutionError{StageError: e}
			}
			return o, nil
		},

		E: func(err error) *StageError {
			return err.(ChainExecutionError).StageError
		},
	}
}

// CatchPrefix prepends errorPrefix to the stage's classified error message.
func (s *Stage) CatchPrefix(errorPrefix string) *Stage {

	if errorPrefix == "" || s.E == nil {
		return s
	}

	e := s.E
	s.E = func(err error) *StageError {
		stageError := e(err)
		stageError.Obj.(H)["error"] = errorPrefix + ": " + stageError.Obj.(H)["error"].(string)
		return stageError
	}

	return s
}
