package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthAlwaysOK(t *testing.T) {
	srv := httptest.NewServer(NewRouter(stubPinger{err: errors.New("down")}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestReadyReflectsDatabase(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		srv := httptest.NewServer(NewRouter(stubPinger{}))
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/ready")
		assert.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(NewRouter(stubPinger{err: errors.New("no route")}))
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/ready")
		assert.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}
