package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/affan/clubsphere/internal/pkg/apperrors"
)

// ParseIDParam reads a positive int64 path parameter.
func ParseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrBadRequest
	}
	return id, nil
}
