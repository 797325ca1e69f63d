package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-resty/resty/v2"
	"github.com/golang/mock/gomock"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danilovkiri/dk_go_study_helper/internal/config"
	"github.com/danilovkiri/dk_go_study_helper/internal/mocks"
)

func TestLogHandle(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s := mocks.NewMockSecretary(ctrl)
	s.EXPECT().Decode("token").Return("some-user-id", nil)
	cookieHandler, err := NewCookieHandler(s, config.NewDefaultConfiguration())
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Use(chiMiddleware.RequestID)
	router.Use(LogHandle)
	router.Use(cookieHandler.CookieHandle)
	router.Get("/teapot", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	ts := httptest.NewServer(router)
	defer ts.Close()

	res, err := resty.New().R().SetCookie(&http.Cookie{Name: "user", Value: "token"}).Get(ts.URL + "/teapot")
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, res.StatusCode())

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, log.InfoLevel, entry.Level)
	assert.Equal(t, http.StatusTeapot, entry.Data["status"])
	assert.Equal(t, "/teapot", entry.Data["path"])
	assert.Equal(t, "some-user-id", entry.Data["user"])
	assert.NotEmpty(t, entry.Data["request_id"])
}
