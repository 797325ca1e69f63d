package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-resty/resty/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danilovkiri/dk_go_study_helper/internal/config"
	"github.com/danilovkiri/dk_go_study_helper/internal/mocks"
)

func newCookieRouter(t *testing.T, s *mocks.MockSecretary) *httptest.Server {
	router := chi.NewRouter()
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	cfg := config.NewDefaultConfiguration()
	cfg.AuthKey = "user"
	cookieHandler, err := NewCookieHandler(s, cfg)
	require.NoError(t, err)
	router.Use(cookieHandler.CookieHandle)
	router.Get("/get", func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(userID))
	})
	return ts
}

func TestCookieHandleAbsentCookie(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s := mocks.NewMockSecretary(ctrl)
	ts := newCookieRouter(t, s)
	requestCookie := &http.Cookie{
		Name:  "some-other-key",
		Value: "some-token",
		Path:  "/",
	}
	s.EXPECT().Encode(gomock.Any()).Return("some-expected-token")
	client := resty.New()
	res, err := client.R().SetCookie(requestCookie).Get(ts.URL + "/get")
	require.NoError(t, err)

	assert.Equal(t, 200, res.StatusCode())
	require.Len(t, res.Cookies(), 1)
	assert.Equal(t, "user", res.Cookies()[0].Name)
	assert.Equal(t, "some-expected-token", res.Cookies()[0].Value)
	assert.Len(t, res.String(), 36)
}

func TestCookieHandleGoodCookie(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s := mocks.NewMockSecretary(ctrl)
	ts := newCookieRouter(t, s)
	requestCookie := &http.Cookie{
		Name:  "user",
		Value: "some-expected-token",
		Path:  "/",
	}
	s.EXPECT().Decode("some-expected-token").Return("some-user-id", nil)
	client := resty.New()
	res, err := client.R().SetCookie(requestCookie).Get(ts.URL + "/get")
	require.NoError(t, err)

	assert.Equal(t, 200, res.StatusCode())
	assert.Equal(t, "some-user-id", res.String())
	assert.Empty(t, res.Cookies())
}

func TestCookieHandleBadCookie(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s := mocks.NewMockSecretary(ctrl)
	ts := newCookieRouter(t, s)
	requestCookie := &http.Cookie{
		Name:  "user",
		Value: "some-erroneous-token",
		Path:  "/",
	}
	s.EXPECT().Decode(gomock.Any()).Return("", errors.New("some-generic-error"))
	client := resty.New()
	res, err := client.R().SetCookie(requestCookie).Get(ts.URL + "/get")
	require.NoError(t, err)

	assert.Equal(t, 401, res.StatusCode())
	assert.NotContains(t, res.String(), "some-user-id")
}

func TestNewCookieHandlerNilSecretary(t *testing.T) {
	_, err := NewCookieHandler(nil, config.NewDefaultConfiguration())
	assert.Error(t, err)
}
