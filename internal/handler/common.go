package handler // handler defines the HTTP handlers of the booking service

import (
	"errors"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// getRequesterID extracts the authenticated requester id placed in the
// context by the JWT middleware.  The id is opaque and unforgeable as
// far as this service is concerned; the identity provider owns it.
func getRequesterID(c echo.Context) (uint64, error) {
	v := c.Get("requester_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case float64: // JSON numbers decode to float64 in jwt claims
		if t > 0 {
			return uint64(t), nil
		}
	case string:
		s := strings.TrimSpace(t)
		if s != "" {
			if id, err := strconv.ParseUint(s, 10, 64); err == nil && id > 0 {
				return id, nil
			}
		}
	}
	return 0, errors.New("missing requester id")
}

// pathUint parses a positive integer path parameter.
func pathUint(c echo.Context, name string) (uint64, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, errors.New("invalid " + name)
	}
	return n, nil
}

// pathIndex parses a non-negative slot index path parameter.
func pathIndex(c echo.Context, name string) (int, error) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil || n < 0 {
		return 0, errors.New("invalid " + name)
	}
	return n, nil
}
