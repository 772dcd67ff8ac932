package middleware

// identity.go holds the shared requester-identity helper used by the
// rate limiter and the cache layer when building per-requester keys.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentRequester returns the authenticated requester id as a decimal
// string, or "anon" when the request carries no identity. RequesterAuth
// stores the id under "requester_id" as a uint64.
func currentRequester(c echo.Context) string {
	if v := c.Get("requester_id"); v != nil {
		if id, ok := v.(uint64); ok && id > 0 {
			return strconv.FormatUint(id, 10)
		}
	}
	return "anon"
}
