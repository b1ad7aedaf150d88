package pipe

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext() *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c
}

// appendStage records its name into the trace and passes the trace along.
func appendStage(name string, trace *[]string) *Stage {
	return S(name, func(in any, c *gin.Context, lgr Logger) (any, error) {
		*trace = append(*trace, name)
		return in, nil
	})
}

func failStage(err error) *Stage {
	return S("fail", func(in any, c *gin.Context, lgr Logger) (any, error) {
		return nil, err
	})
}

func respondStage(code int, obj any) *Stage {
	return S("respond", func(in any, c *gin.Context, lgr Logger) (any, error) {
		return &Response{Code: code, Obj: obj}, nil
	})
}

func TestExecuteRunsStagesInOrder(t *testing.T) {
	var trace []string

	ch := First(
		appendStage("one", &trace)).Then(
		appendStage("two", &trace)).Then(
		appendStage("three", &trace))

	_, e := Execute(ch, testContext(), nil)
	require.Nil(t, e)
	assert.Equal(t, []string{"one", "two", "three"}, trace)
}

func TestExecuteStopsAtFirstError(t *testing.T) {
	var trace []string

	ch := First(
		appendStage("one", &trace)).Then(
		failStage(errors.New("boom"))).Then(
		appendStage("never", &trace))

	_, e := Execute(ch, testContext(), nil)
	require.NotNil(t, e)
	assert.Equal(t, http.StatusBadRequest, e.Code)
	assert.Equal(t, H{"error": "boom"}, e.Obj)
	assert.Equal(t, []string{"one"}, trace)
}

func TestCatchOverridesClassification(t *testing.T) {
	ch := First(
		failStage(errors.New("boom"))).Catch(http.StatusTeapot, "spilled")

	_, e := Execute(ch, testContext(), nil)
	require.NotNil(t, e)
	assert.Equal(t, http.StatusTeapot, e.Code)
	assert.Equal(t, H{"error": "spilled"}, e.Obj)
}

func TestStageWithoutClassifierDefaultsToServerError(t *testing.T) {
	s := &Stage{
		P: func() string { return "bare" },
		F: func(in any, c *gin.Context, lgr Logger) (any, error) {
			return nil, errors.New("unexpected")
		},
	}

	_, e := Execute(First(s), testContext(), nil)
	require.NotNil(t, e)
	assert.Equal(t, http.StatusInternalServerError, e.Code)
}

func TestAppendLinksChains(t *testing.T) {
	var trace []string

	ch := Append(
		First(appendStage("a", &trace)),
		First(appendStage("b", &trace)).Then(appendStage("c", &trace)),
		First(appendStage("d", &trace)),
	)

	_, e := Execute(ch, testContext(), nil)
	require.Nil(t, e)
	assert.Equal(t, []string{"a", "b", "c", "d"}, trace)
}

func TestIfBranches(t *testing.T) {
	then := func() *Chain {
		return First(S("then", func(in any, c *gin.Context, lgr Logger) (any, error) {
			return "then", nil
		}))
	}
	els := func() *Chain {
		return First(S("else", func(in any, c *gin.Context, lgr Logger) (any, error) {
			return "else", nil
		}))
	}

	out, e := Execute(First(If(func(any, *gin.Context) bool { return true }, then(), els())), testContext(), nil)
	require.Nil(t, e)
	assert.Equal(t, "then", out)

	out, e = Execute(First(If(func(any, *gin.Context) bool { return false }, then(), els())), testContext(), nil)
	require.Nil(t, e)
	assert.Equal(t, "else", out)

	// a nil branch is a no-op
	out, e = Execute(First(If(func(any, *gin.Context) bool { return false }, then(), nil)), testContext(), nil)
	require.Nil(t, e)
	assert.Nil(t, out)
}

func TestIfPropagatesBranchError(t *testing.T) {
	branch := First(failStage(errors.New("branch failed")))

	_, e := Execute(First(If(func(any, *gin.Context) bool { return true }, branch, nil)), testContext(), nil)
	require.NotNil(t, e)
	assert.Equal(t, http.StatusBadRequest, e.Code)
	assert.Equal(t, H{"error": "branch failed"}, e.Obj)
}

func TestInParallelCollectsResultsInOrder(t *testing.T) {
	mk := func(v string) *Chain {
		return First(S(v, func(in any, c *gin.Context, lgr Logger) (any, error) {
			return v, nil
		}))
	}

	out, e := Execute(InParallel(mk("a"), mk("b"), mk("c")), testContext(), nil)
	require.Nil(t, e)
	assert.Equal(t, []any{"a", "b", "c"}, out)
}

func TestInParallelPropagatesError(t *testing.T) {
	ok := First(S("ok", func(in any, c *gin.Context, lgr Logger) (any, error) {
		return "ok", nil
	}))
	bad := First(failStage(errors.New("parallel boom")))

	_, e := Execute(InParallel(ok, bad), testContext(), nil)
	require.NotNil(t, e)
	assert.Equal(t, H{"error": "parallel boom"}, e.Obj)
}

func TestMakeGinHandlerFunc(t *testing.T) {
	engine := gin.New()
	engine.GET("/ok", MakeGinHandlerFunc(First(respondStage(http.StatusOK, H{"message": "hello"})), nil))
	engine.GET("/fail", MakeGinHandlerFunc(First(failStage(errors.New("nope"))), nil))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"hello"}`, w.Body.String())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"nope"}`, w.Body.String())
}

func TestFuncStrAndCtxOutStr(t *testing.T) {
	assert.Equal(t, `load(["a"], ["b"])`, FuncStr("load", "a", "b"))
	assert.Equal(t, ` => ["x"], ["y"]`, CtxOutStr("x", "y"))
	assert.Equal(t, "", CtxOutStr())
}
