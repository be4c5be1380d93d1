package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ParseIDParam parses a path parameter as an unsigned identifier
func ParseIDParam(c *gin.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// ParseOptionalIDQuery parses a query parameter as an unsigned identifier.
// An absent or empty parameter yields nil.
func ParseOptionalIDQuery(c *gin.Context, key string) (*uint64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// OptionalBoolQuery reports whether a query flag equals "true".
// An absent parameter yields nil; any value other than "true" is false.
func OptionalBoolQuery(c *gin.Context, key string) *bool {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	value := raw == "true"
	return &value
}
