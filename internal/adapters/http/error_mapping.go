package httpadapter

import (
	"net/http"

	"github.com/kirillkom/product-advisor/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrProductNotFound), domain.IsKind(err, domain.ErrNoMatches):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrRateLimited), domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
