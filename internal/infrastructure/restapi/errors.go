package restapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"market_scout/internal/domain/entity"
)

// APIErrorResponse is the body of every non-2xx response.
type APIErrorResponse struct {
	Error      string   `json:"error"`
	Candidates []string `json:"candidates,omitempty"`
}

// statusFor maps domain errors to HTTP status codes. Order matters:
// ErrNotFound is always paired with ErrMalformedResponse.
func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrNotFound), errors.Is(err, entity.ErrUnknownAddress):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrAmbiguousAddress):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, entity.ErrScanAborted),
		errors.Is(err, entity.ErrTransport),
		errors.Is(err, entity.ErrMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	resp := APIErrorResponse{Error: err.Error()}
	var resErr *entity.ResolutionError
	if errors.As(err, &resErr) {
		resp.Candidates = resErr.Candidates
	}
	c.AbortWithStatusJSON(statusFor(err), resp)
}
