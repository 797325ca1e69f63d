// Package rest provides functionality for initializing the REST server of the study helper.
package rest

import (
	"context"
	"expvar"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danilovkiri/dk_go_study_helper/internal/api/rest/handlers"
	"github.com/danilovkiri/dk_go_study_helper/internal/api/rest/middleware"
	"github.com/danilovkiri/dk_go_study_helper/internal/config"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/community/v1"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/extractor"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/llm"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/reviewer/v1"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/secretary/v1"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/vision/v1"
	"github.com/danilovkiri/dk_go_study_helper/internal/storage"
)

var (
	serverStart = time.Now()
)

// uptime returns time in seconds since the server start-up.
func uptime() interface{} {
	return int64(time.Since(serverStart).Seconds())
}

func init() {
	expvar.Publish("system.uptime", expvar.Func(uptime))
}

// InitServer returns a http.Server object ready to be listening and serving.
func InitServer(ctx context.Context, cfg *config.Config, st storage.StudyStorage, ext extractor.Extractor, assistant llm.Assistant) (server *http.Server, err error) {
	router, err := NewRouter(cfg, st, ext, assistant)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      router,
		IdleTimeout:  60 * time.Second,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}
	return srv, nil
}

// NewRouter wires services, handlers and middlewares into a chi router.
func NewRouter(cfg *config.Config, st storage.StudyStorage, ext extractor.Extractor, assistant llm.Assistant) (*chi.Mux, error) {
	reviewerService, err := reviewer.InitReviewer(st, ext, assistant, cfg.ReviewCacheSize)
	if err != nil {
		return nil, err
	}
	communityService, err := community.InitCommunity(st)
	if err != nil {
		return nil, err
	}
	visionService, err := vision.InitVision(assistant, resty.New().SetTimeout(30*time.Second), cfg.MaxUploadBytes)
	if err != nil {
		return nil, err
	}
	studyHandler, err := handlers.InitStudyHandler(reviewerService, communityService, visionService, st, cfg)
	if err != nil {
		return nil, err
	}
	secretaryService, err := secretary.NewSecretaryService(cfg)
	if err != nil {
		return nil, err
	}
	cookieHandler, err := middleware.NewCookieHandler(secretaryService, cfg)
	if err != nil {
		return nil, err
	}
	trustedNetHandler := middleware.NewTrustedNetHandler(cfg)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.LogHandle)
	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/debug", chiMiddleware.Profiler())
	r.Group(func(r chi.Router) {
		r.Use(middleware.CompressHandle)
		r.Use(middleware.DecompressHandle)
		r.Get("/ping", studyHandler.HandlePingDB())
		r.Route("/api", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(cookieHandler.CookieHandle)
				r.Post("/documents", studyHandler.HandlePostDocuments())
				r.Get("/documents", studyHandler.HandleGetDocument())
				r.Post("/chat", studyHandler.HandlePostQuestion())
				r.Get("/chat", studyHandler.HandleGetHistory())
				r.Post("/posts", studyHandler.HandlePostPost())
				r.Get("/posts", studyHandler.HandleGetPosts())
				r.Get("/posts/{slug}", studyHandler.HandleGetPost())
				r.Post("/posts/{slug}/comments", studyHandler.HandlePostComment())
				r.Get("/posts/{slug}/files/{name}", studyHandler.HandleGetAttachment())
				r.Post("/images/compare", studyHandler.HandleCompareImages())
			})
			r.Route("/internal", func(r chi.Router) {
				r.Use(trustedNetHandler.TrustedNetworkHandler)
				r.Get("/stats", studyHandler.HandleGetStats())
			})
		})
	})
	return r, nil
}
