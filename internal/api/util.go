package api

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

var roomCodeRegex = regexp.MustCompile("^[A-Z0-9]{6}$")

func normalizeRoomCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// parseUintParam parses a numeric path parameter; ok is false when the
// value is absent or not a positive integer.
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
