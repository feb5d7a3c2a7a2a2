package server

import (
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
)

// monthPattern accepts calendar months only; the ledger itself treats the
// key as opaque, so malformed input is rejected here at the boundary.
var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

func validMonth(month string) bool {
	return monthPattern.MatchString(month)
}

func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return parsed
}

func queryBoolPtr(c *gin.Context, key string) *bool {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &parsed
}
