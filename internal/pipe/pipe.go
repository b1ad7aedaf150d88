// Package pipe implements the request pipeline that every resource endpoint
// is composed from. A pipeline is a linked chain of stages. Each stage's F
// function receives the previous stage's output plus the request context and
// either produces a value for the next stage or an error, which the stage's E
// function classifies into the HTTP status code and JSON body to return.
// The final stage of a chain must output a *Response.
package pipe

import "github.com/gin-gonic/gin"

// H is shorthand for a JSON object body.
type H map[string]any

// Stage is one step in a request pipeline. Stages are connected into
// double-linked lists by n and l.
type Stage struct {
	P func() string                                // Print string, for logging
	F func(any, *gin.Context, Logger) (any, error) // Function to execute
	E func(error) *StageError                      // Classifies F's error into a network response
	n *Stage                                       // Next stage
	l *Stage                                       // Last stage
}

// Chain is a pipeline of stages, executed first to last.
type Chain struct {
	First *Stage
	Last  *Stage
}

// Pipelines read like:
//
//	pipeline := First(stage0).Then(stage1).Then(stage2) ...
func First(s *Stage) *Chain {
	return &Chain{
		First: s,
		Last:  s,
	}
}

// MakeChain wraps a single stage into a chain. It is equivalent to First.
func MakeChain(s *Stage) *Chain {
	return First(s)
}

func (ch *Chain) Then(n *Stage) *Chain {
	ch.Last.n = n
	n.l = ch.Last
	ch.Last = n
	return ch
}

// Catch overrides the last stage's E function with a fixed code and message:
//
//	pipeline := First(
//	    stage0).Then(
//	    stage1).Catch(http.StatusBadRequest, "stage1 failed").Then(
//	    stage2) ...
func (ch *Chain) Catch(code int, message string) *Chain {
	ch.Last.E = func(err error) *StageError {
		return &StageError{
			Code: code,
			Obj:  H{"error": message},
		}
	}
	return ch
}

// Append concatenates multiple chains into one.
func Append(chains ...*Chain) *Chain {

	if len(chains) == 0 {
		return nil
	}

	ch := chains[0]

	for i := range chains {

		if i == len(chains)-1 {
			break
		}

		// Link ch's last stage to the next chain's first stage
		ch.Last.n = chains[i+1].First
		chains[i+1].First.l = ch.Last

		ch.Last = chains[i+1].Last
	}

	return ch
}

// InSequence is an alias for Append that reads better at route definitions.
func InSequence(chains ...*Chain) *Chain {
	return Append(chains...)
}
