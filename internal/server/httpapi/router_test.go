package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/fitcal/internal/ledger"
	"github.com/dmitrijs2005/fitcal/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

func do(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, NewRouter(fakePinger{}, logging.Nop()), http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(t, NewRouter(fakePinger{err: errors.New("db down")}, logging.Nop()), http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(t, NewRouter(nil, logging.Nop()), http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListFoods(t *testing.T) {
	r := NewRouter(nil, logging.Nop())

	rec := do(t, r, http.MethodGet, "/api/v1/foods")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var all foodsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Equal(t, 25, all.Count)
	assert.Len(t, all.Items, 25)

	rec = do(t, r, http.MethodGet, "/api/v1/foods?q=BANANA")
	var some foodsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &some))
	require.Equal(t, 1, some.Count)
	assert.Equal(t, "Banana", some.Items[0].Name)

	rec = do(t, r, http.MethodGet, "/api/v1/foods?q=zzz")
	var none foodsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &none))
	assert.Equal(t, 0, none.Count)
}

func TestGetFood(t *testing.T) {
	r := NewRouter(nil, logging.Nop())

	rec := do(t, r, http.MethodGet, "/api/v1/foods/3")
	require.Equal(t, http.StatusOK, rec.Code)
	var item ledger.FoodItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, "Banana", item.Name)
	assert.Equal(t, 89.0, item.Calories)

	rec = do(t, r, http.MethodGet, "/api/v1/foods/999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	rec := do(t, NewRouter(nil, logging.Nop()), http.MethodPost, "/api/v1/foods")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRecoverPanics(t *testing.T) {
	h := &handlers{log: logging.Nop()}
	wrapped := h.recoverPanics(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaput")
	}))

	rec := do(t, wrapped, http.MethodGet, "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := NewServer("", nil, logging.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + lis.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
