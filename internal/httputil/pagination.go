package httputil

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/mealguard/internal/errors"
)

// Page size bounds for list endpoints.
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

var (
	errInvalidOffset = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid offset parameter: must be a non-negative integer")
	errInvalidLimit  = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid limit parameter: must be between 1 and 100")
)

// ParsePagination reads the offset and limit query parameters. Offset defaults
// to 0 and limit to DefaultPageLimit, capped at MaxPageLimit.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offset, ok := queryInt(c, "offset", 0)
	if !ok || offset < 0 {
		return 0, 0, errInvalidOffset
	}

	limit, ok = queryInt(c, "limit", DefaultPageLimit)
	if !ok || limit < 1 || limit > MaxPageLimit {
		return 0, 0, errInvalidLimit
	}

	return offset, limit, nil
}

func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw, present := c.GetQuery(name)
	if !present {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	return value, err == nil
}
