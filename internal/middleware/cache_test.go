package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aventra/activity-booking/internal/config"
)

func cacheCfg() config.CacheConfig {
	return config.CacheConfig{
		Enabled: true,
		Methods: map[string]bool{"GET": true},
		TTL:     30 * time.Second,
		Prefix:  "seatview",
	}
}

func runCached(t *testing.T, mw echo.MiddlewareFunc, handlerRan *bool) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/events/7/slots/2/seats", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/events/:id/slots/:index/seats")

	handler := mw(func(c echo.Context) error {
		*handlerRan = true
		return c.JSON(http.StatusOK, echo.Map{"free": 3})
	})
	require.NoError(t, handler(c))
	return rec
}

func TestRedisCacheMissStoresResponse(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	key := SlotSeatsKey(cacheCfg(), 7, 2)
	mock.ExpectGet(key).RedisNil()
	mock.CustomMatch(func(expected, actual []interface{}) error { return nil }).
		ExpectSetEx(key, "", 30*time.Second).SetVal("OK")

	ran := false
	rec := runCached(t, NewRedisCache(cacheCfg(), rdb), &ran)

	assert.True(t, ran, "handler runs on a miss")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Contains(t, rec.Body.String(), `"free":3`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheHitSkipsHandler(t *testing.T) {
	cfg := cacheCfg()
	key := SlotSeatsKey(cfg, 7, 2)

	hdr := http.Header{}
	hdr.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	payload, err := encodePayload(http.StatusOK, hdr, []byte(`{"free":2}`))
	require.NoError(t, err)

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet(key).SetVal(string(payload))

	ran := false
	rec := runCached(t, NewRedisCache(cfg, rdb), &ran)

	assert.False(t, ran, "handler is skipped on a hit")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, `{"free":2}`, rec.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheSkipsNonListedMethods(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/events/7/slots/2/seats", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ran := false
	handler := NewRedisCache(cacheCfg(), rdb)(func(c echo.Context) error {
		ran = true
		return c.NoContent(http.StatusNoContent)
	})
	require.NoError(t, handler(c))

	assert.True(t, ran)
	assert.Empty(t, rec.Header().Get("X-Cache"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotSeatsKeyMatchesRequestKey(t *testing.T) {
	cfg := cacheCfg()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/events/7/slots/2/seats", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/events/:id/slots/:index/seats")

	assert.Equal(t, cacheKeyFrom(cfg, c), SlotSeatsKey(cfg, 7, 2),
		"invalidation must target the same key the middleware stores under")
}

func TestInvalidateSlotSeats(t *testing.T) {
	cfg := cacheCfg()
	rdb, mock := redismock.NewClientMock()
	mock.ExpectDel(SlotSeatsKey(cfg, 7, 2)).SetVal(1)

	require.NoError(t, InvalidateSlotSeats(context.Background(), rdb, cfg, 7, 2))
	require.NoError(t, mock.ExpectationsWereMet())

	// Disabled cache or missing client is a silent no-op.
	cfg.Enabled = false
	require.NoError(t, InvalidateSlotSeats(context.Background(), rdb, cfg, 7, 2))
	require.NoError(t, InvalidateSlotSeats(context.Background(), nil, cacheCfg(), 7, 2))
}
