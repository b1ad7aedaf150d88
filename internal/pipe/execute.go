package pipe

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Response is the terminal output of a successfully executed chain.
type Response struct {
	Code int // HTTP status code
	Obj  any // JSON response data
}

// StageError is the classified network response for a failed stage.
type StageError struct {
	Code int // HTTP status code
	Obj  any // JSON response data
}

// Execute runs every stage of ch in order, feeding each stage's output into
// the next. It stops at the first failing stage and returns its classified
// error.
func Execute(ch *Chain, c *gin.Context, lgr Logger) (any, *StageError) {

	if lgr != nil {
		lgr.LogMessage("Starting execution chain...")
	}

	s := ch.First
	var d any // Data passed between successive stages
	var e *StageError

	for s != nil {

		if lgr != nil {
			lgr.LogStageStart(s.P(), d)
		}

		t := time.Now()

		d, e = s.Execute(d, c, lgr)

		if lgr != nil {
			lgr.LogStageComplete(e == nil, time.Since(t), s.P(), d)
			if e != nil {
				lgr.LogStageError(e)
			}
		}

		if e != nil {
			return nil, e
		}

		s = s.n
	}

	return d, nil
}

// Execute executes the stage by calling the F function followed by the E
// function if there's an error. A stage without an E function reports its
// error as an internal server failure.
func (s *Stage) Execute(in any, c *gin.Context, lgr Logger) (any, *StageError) {

	out, err := s.F(in, c, lgr)
	if err != nil {
		if s.E == nil {
			return nil, &StageError{
				Code: http.StatusInternalServerError,
				Obj:  H{"error": err.Error()},
			}
		}
		return nil, s.E(err)
	}

	return out, nil
}

// MakeGinHandlerFunc adapts a chain into a gin handler. Exactly one of the
// chain's Response or StageError is serialized as the network response.
func MakeGinHandlerFunc(ch *Chain, lgr Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, e := Execute(ch, c, lgr)
		if e != nil {
			c.JSON(e.Code, e.Obj)
			return
		}

		res := o.(*Response)
		c.JSON(res.Code, res.Obj)
	}
}
