package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newProblemTestContext(t *testing.T, path string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, path, nil)
	return c, recorder
}

func TestRespondFillsInstanceAndContentType(t *testing.T) {
	c, recorder := newProblemTestContext(t, "/v1/orders/abc")

	Respond(c, ErrNotFound.WithDetail("order abc not found"))

	require.Equal(t, http.StatusNotFound, recorder.Code)
	require.Equal(t, ContentTypeProblemJSON, recorder.Header().Get("Content-Type"))
	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &problem))
	require.Equal(t, "/v1/orders/abc", problem.Instance)
	require.Equal(t, "order abc not found", problem.Detail)
}

func TestRespondKeepsExplicitInstance(t *testing.T) {
	c, recorder := newProblemTestContext(t, "/v1/orders")

	Respond(c, ErrConflict.WithInstance("/v1/orders/42"))

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &problem))
	require.Equal(t, "/v1/orders/42", problem.Instance)
}

func TestRespondErrorHidesPlainErrors(t *testing.T) {
	c, recorder := newProblemTestContext(t, "/v1/orders")

	RespondError(c, errors.New("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	require.NotContains(t, recorder.Body.String(), "pq:")
	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &problem))
	require.Empty(t, problem.Detail)
}

func TestRespondErrorUnwrapsProblems(t *testing.T) {
	c, recorder := newProblemTestContext(t, "/v1/orders/42")

	RespondError(c, fmt.Errorf("authorizing: %w", ErrForbidden.WithDetail("not the owner")))

	require.Equal(t, http.StatusForbidden, recorder.Code)
	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &problem))
	require.Equal(t, "not the owner", problem.Detail)
}
