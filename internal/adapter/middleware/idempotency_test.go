package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const testInvestorID = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

func newEnv(t *testing.T) (*echo.Echo, *redis.Client) {
	t.Helper()
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return echo.New(), rdb
}

func invoke(e *echo.Echo, rdb *redis.Client, reqID, body string, calls *int) *httptest.ResponseRecorder {
	h := Idempotency(rdb, 5*time.Minute)(func(c echo.Context) error {
		*calls++
		return c.JSON(http.StatusCreated, map[string]string{"investment_id": "inv-" + strconv.Itoa(*calls)})
	})

	req := httptest.NewRequest(http.MethodPost, "/api/invest", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if reqID != "" {
		req.Header.Set("X-Request-Id", reqID)
		req.Header.Set("X-Request-At", strconv.FormatInt(time.Now().Unix(), 10))
		req.Header.Set("X-Investor-Id", testInvestorID)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/invest")
	_ = h(c)
	return rec
}

func TestIdempotency_ReplaysFinishedResponse(t *testing.T) {
	e, rdb := newEnv(t)
	calls := 0
	const reqID = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	const body = `{"project_id":"p","amount":"10.00"}`

	first := invoke(e, rdb, reqID, body, &calls)
	if first.Code != http.StatusCreated {
		t.Fatalf("first code = %d", first.Code)
	}
	second := invoke(e, rdb, reqID, body, &calls)
	if second.Code != http.StatusCreated {
		t.Fatalf("replay code = %d", second.Code)
	}
	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("replay body differs: %s vs %s", first.Body.String(), second.Body.String())
	}
}

func TestIdempotency_RejectsReusedIDWithDifferentBody(t *testing.T) {
	e, rdb := newEnv(t)
	calls := 0
	const reqID = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

	_ = invoke(e, rdb, reqID, `{"amount":"10.00"}`, &calls)
	rec := invoke(e, rdb, reqID, `{"amount":"99.00"}`, &calls)
	if rec.Code != http.StatusConflict {
		t.Fatalf("code = %d, want 409", rec.Code)
	}
	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
}

func TestIdempotency_AcceptsUUIDRequestID(t *testing.T) {
	e, rdb := newEnv(t)
	calls := 0
	rec := invoke(e, rdb, "123e4567-e89b-12d3-a456-426614174000", `{}`, &calls)
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestIdempotency_MissingHeaders(t *testing.T) {
	e, rdb := newEnv(t)
	calls := 0
	rec := invoke(e, rdb, "", `{}`, &calls)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", rec.Code)
	}
	if calls != 0 {
		t.Fatal("handler must not run without idempotency headers")
	}
}

func TestIdempotency_SkipsGet(t *testing.T) {
	e, rdb := newEnv(t)
	ran := false
	h := Idempotency(rdb, time.Minute)(func(c echo.Context) error {
		ran = true
		return c.NoContent(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/api/investments/x", nil)
	rec := httptest.NewRecorder()
	_ = h(e.NewContext(req, rec))
	if !ran {
		t.Fatal("GET must bypass idempotency")
	}
}

func TestParseRequestAt(t *testing.T) {
	if _, err := parseRequestAt(""); err == nil {
		t.Fatal("empty must fail")
	}
	if _, err := parseRequestAt("2025-09-05T10:00:00"); err == nil {
		t.Fatal("naive timestamp must fail")
	}
	if ts, err := parseRequestAt("2025-09-05T10:00:00Z"); err != nil || ts.IsZero() {
		t.Fatalf("RFC3339 Z: %v", err)
	}
	if ts, err := parseRequestAt("1736123456789"); err != nil || ts.UnixMilli() != 1736123456789 {
		t.Fatalf("epoch ms: %v %v", ts, err)
	}
	if ts, err := parseRequestAt("1736123456"); err != nil || ts.Unix() != 1736123456 {
		t.Fatalf("epoch s: %v %v", ts, err)
	}
}

func TestValidReqID(t *testing.T) {
	if !validReqID("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa") {
		t.Fatal("hex32 must pass")
	}
	if !validReqID("123e4567-e89b-12d3-a456-426614174000") {
		t.Fatal("uuid must pass")
	}
	if validReqID("not-a-request-id") {
		t.Fatal("garbage must fail")
	}
}
