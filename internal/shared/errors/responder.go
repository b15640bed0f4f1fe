package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// Respond writes a ProblemDetail with the problem+json content type. The
// request path fills Instance when the problem does not carry one, and a
// missing status defaults to 500 rather than producing an invalid response.
func Respond(c *gin.Context, problem ProblemDetail) {
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	if problem.Status == 0 {
		problem.Status = http.StatusInternalServerError
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError writes err as a problem response. ProblemDetail errors pass
// through unchanged, wrapped or not. Anything else becomes the generic
// internal problem with no detail, so storage and driver messages never
// reach booking clients.
func RespondError(c *gin.Context, err error) {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		Respond(c, problem)
		return
	}
	Respond(c, ErrInternal)
}
