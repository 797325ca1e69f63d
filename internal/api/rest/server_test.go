package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danilovkiri/dk_go_study_helper/internal/config"
	"github.com/danilovkiri/dk_go_study_helper/internal/mocks"
	"github.com/danilovkiri/dk_go_study_helper/internal/storage/inmemory"
)

func TestNewRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	cfg := config.NewDefaultConfiguration()
	cfg.UserKey = "jds__63h3_7ds"
	cfg.AuthKey = "user"
	cfg.TrustedSubnet = "127.0.0.0/8"
	router, err := NewRouter(cfg, inmemory.InitStorage(), mocks.NewMockExtractor(ctrl), mocks.NewMockAssistant(ctrl))
	require.NoError(t, err)
	ts := httptest.NewServer(router)
	defer ts.Close()

	tests := []struct {
		name string
		path string
		code int
	}{
		{name: "ping", path: "/ping", code: http.StatusOK},
		{name: "metrics", path: "/metrics", code: http.StatusOK},
		{name: "expvar", path: "/debug/vars", code: http.StatusOK},
		{name: "stats from trusted subnet", path: "/api/internal/stats", code: http.StatusOK},
		{name: "no document yet", path: "/api/documents", code: http.StatusNotFound},
		{name: "empty board", path: "/api/posts", code: http.StatusOK},
		{name: "unknown route", path: "/api/unknown", code: http.StatusNotFound},
	}
	client := resty.New().SetBaseURL(ts.URL)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := client.R().Get(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.code, res.StatusCode())
		})
	}

	res, err := client.R().Get("/api/posts")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Cookies(), "identity cookie is issued on first API call")
	res, err = client.R().Get("/debug/vars")
	require.NoError(t, err)
	assert.Contains(t, res.String(), "system.uptime")
}

func TestInitServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	cfg := config.NewDefaultConfiguration()
	cfg.ServerAddress = ":18080"
	srv, err := InitServer(context.Background(), cfg, inmemory.InitStorage(), mocks.NewMockExtractor(ctrl), mocks.NewMockAssistant(ctrl))
	require.NoError(t, err)
	assert.Equal(t, ":18080", srv.Addr)
	assert.NotNil(t, srv.Handler)
}

func TestNewRouterNilStorage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	_, err := NewRouter(config.NewDefaultConfiguration(), nil, mocks.NewMockExtractor(ctrl), mocks.NewMockAssistant(ctrl))
	assert.Error(t, err)
}
