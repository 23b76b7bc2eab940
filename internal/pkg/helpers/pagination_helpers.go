package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
	DefaultPage  = 1 // Default page is 1-based

	// MaxPage bounds the page number so (page-1)*limit stays well inside
	// int64 even at MaxLimit.
	MaxPage = 1 << 31
)

// CalculateOffsetLimit calculates the offset and limit for SQL queries based
// on a 1-based page index. Out-of-range values fall back to the defaults.
func CalculateOffsetLimit(page, limit int64) (offset, clampedLimit int64) {
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}

	return (page - 1) * limit, limit
}

// ParseListParams extracts the page and limit query parameters from the
// request. Missing or invalid values yield the defaults.
func ParseListParams(c *gin.Context) (page, limit int64) {
	pageStr := c.DefaultQuery("page", "1")
	page, err := strconv.ParseInt(pageStr, 10, 64)
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limitStr := c.DefaultQuery("limit", "10")
	limit, err = strconv.ParseInt(limitStr, 10, 64)
	if err != nil || limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return page, limit
}
