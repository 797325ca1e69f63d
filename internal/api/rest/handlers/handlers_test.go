package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-resty/resty/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/danilovkiri/dk_go_study_helper/internal/api/rest/middleware"
	"github.com/danilovkiri/dk_go_study_helper/internal/api/rest/modeldto"
	"github.com/danilovkiri/dk_go_study_helper/internal/config"
	"github.com/danilovkiri/dk_go_study_helper/internal/mocks"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/community/v1"
	serviceErrors "github.com/danilovkiri/dk_go_study_helper/internal/service/errors"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/modelstudy"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/reviewer/v1"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/secretary/v1"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/vision/v1"
	"github.com/danilovkiri/dk_go_study_helper/internal/storage/inmemory"
	"github.com/danilovkiri/dk_go_study_helper/internal/storage/modelstorage"
)

type HandlersTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	extractor *mocks.MockExtractor
	assistant *mocks.MockAssistant
	storage   *inmemory.Storage
	handler   *StudyHandler
	ts        *httptest.Server
	client    *resty.Client
}

func (suite *HandlersTestSuite) SetupTest() {
	cfg := config.NewDefaultConfiguration()
	cfg.UserKey = "jds__63h3_7ds"
	cfg.AuthKey = "user"
	cfg.MaxUploadBytes = 1 << 20
	suite.ctrl = gomock.NewController(suite.T())
	suite.extractor = mocks.NewMockExtractor(suite.ctrl)
	suite.assistant = mocks.NewMockAssistant(suite.ctrl)
	suite.storage = inmemory.InitStorage()

	reviewerService, err := reviewer.InitReviewer(suite.storage, suite.extractor, suite.assistant, 8)
	suite.Require().NoError(err)
	communityService, err := community.InitCommunity(suite.storage)
	suite.Require().NoError(err)
	visionService, err := vision.InitVision(suite.assistant, resty.New(), 0)
	suite.Require().NoError(err)
	suite.handler, err = InitStudyHandler(reviewerService, communityService, visionService, suite.storage, cfg)
	suite.Require().NoError(err)
	secretaryService, err := secretary.NewSecretaryService(cfg)
	suite.Require().NoError(err)
	cookieHandler, err := middleware.NewCookieHandler(secretaryService, cfg)
	suite.Require().NoError(err)

	router := chi.NewRouter()
	router.Get("/ping", suite.handler.HandlePingDB())
	router.Get("/api/internal/stats", suite.handler.HandleGetStats())
	router.Group(func(r chi.Router) {
		r.Use(cookieHandler.CookieHandle)
		r.Post("/api/documents", suite.handler.HandlePostDocuments())
		r.Get("/api/documents", suite.handler.HandleGetDocument())
		r.Post("/api/chat", suite.handler.HandlePostQuestion())
		r.Get("/api/chat", suite.handler.HandleGetHistory())
		r.Post("/api/posts", suite.handler.HandlePostPost())
		r.Get("/api/posts", suite.handler.HandleGetPosts())
		r.Get("/api/posts/{slug}", suite.handler.HandleGetPost())
		r.Post("/api/posts/{slug}/comments", suite.handler.HandlePostComment())
		r.Get("/api/posts/{slug}/files/{name}", suite.handler.HandleGetAttachment())
		r.Post("/api/images/compare", suite.handler.HandleCompareImages())
	})
	suite.ts = httptest.NewServer(router)
	// the client keeps the identity cookie between requests
	suite.client = resty.New().SetBaseURL(suite.ts.URL)
}

func (suite *HandlersTestSuite) TearDownTest() {
	suite.ts.Close()
	suite.ctrl.Finish()
}

// TestHandlersTestSuite initializes test suite for being accessible
func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (suite *HandlersTestSuite) uploadDocuments() modelstudy.Review {
	suite.extractor.EXPECT().Extract(gomock.Any(), "cells.docx", gomock.Any()).
		Return(modelstudy.Document{Name: "cells.docx", Format: "docx", Text: "cell membrane and cell wall"}, nil)
	suite.extractor.EXPECT().Extract(gomock.Any(), "notes.txt", gomock.Any()).
		Return(modelstudy.Document{}, &serviceErrors.UnsupportedFormatError{Name: "notes.txt", Format: "txt"})
	suite.assistant.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("model output", nil).Times(3)

	res, err := suite.client.R().
		SetFileReader("files", "cells.docx", bytes.NewReader([]byte("docx bytes"))).
		SetFileReader("files", "notes.txt", bytes.NewReader([]byte("plain"))).
		Post("/api/documents")
	suite.Require().NoError(err)
	suite.Require().Equal(http.StatusCreated, res.StatusCode(), res.String())
	var review modelstudy.Review
	suite.Require().NoError(json.Unmarshal(res.Body(), &review))
	return review
}

func (suite *HandlersTestSuite) TestDocuments() {
	res, err := suite.client.R().Get("/api/documents")
	suite.Require().NoError(err)
	suite.Equal(http.StatusNotFound, res.StatusCode())

	res, err = suite.client.R().SetMultipartFormData(map[string]string{"note": "nothing attached"}).Post("/api/documents")
	suite.Require().NoError(err)
	suite.Equal(http.StatusBadRequest, res.StatusCode())

	review := suite.uploadDocuments()
	suite.Equal("model output", review.Summary)
	suite.Equal("model output", review.Questions)
	suite.Equal("model output", review.Corrections)
	suite.Require().Len(review.Files, 2)
	suite.Equal("cells.docx", review.Files[0].Name)
	suite.Empty(review.Files[0].Error)
	suite.NotEmpty(review.Files[1].Error)
	suite.Contains(review.DocumentText, "[unsupported file format]")
	suite.Equal("cell", review.Keywords[0])

	res, err = suite.client.R().Get("/api/documents")
	suite.Require().NoError(err)
	suite.Equal(http.StatusOK, res.StatusCode())
	var stored modelstudy.Review
	suite.Require().NoError(json.Unmarshal(res.Body(), &stored))
	suite.Equal(review.DocumentText, stored.DocumentText)
}

func (suite *HandlersTestSuite) TestDocumentsModelFailure() {
	suite.extractor.EXPECT().Extract(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(modelstudy.Document{Name: "a.pdf", Format: "pdf", Text: "text"}, nil)
	suite.assistant.EXPECT().Complete(gomock.Any(), gomock.Any()).
		Return("", &serviceErrors.NoProviderError{}).MinTimes(1).MaxTimes(3)
	res, err := suite.client.R().SetFileReader("files", "a.pdf", bytes.NewReader([]byte("%PDF"))).Post("/api/documents")
	suite.Require().NoError(err)
	suite.Equal(http.StatusBadGateway, res.StatusCode())
}

func (suite *HandlersTestSuite) TestChat() {
	res, err := suite.client.R().SetBody(modeldto.RequestQuestion{Question: "what is a cell?"}).Post("/api/chat")
	suite.Require().NoError(err)
	suite.Equal(http.StatusConflict, res.StatusCode())

	res, err = suite.client.R().SetBody(`{"question":""}`).SetHeader("Content-Type", "application/json").Post("/api/chat")
	suite.Require().NoError(err)
	suite.Equal(http.StatusBadRequest, res.StatusCode())

	res, err = suite.client.R().SetBody(`{"question":"   "}`).SetHeader("Content-Type", "application/json").Post("/api/chat")
	suite.Require().NoError(err)
	suite.Equal(http.StatusBadRequest, res.StatusCode())

	res, err = suite.client.R().SetBody(`{"question":`).SetHeader("Content-Type", "application/json").Post("/api/chat")
	suite.Require().NoError(err)
	suite.Equal(http.StatusBadRequest, res.StatusCode())

	suite.uploadDocuments()
	suite.assistant.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("the smallest unit of life", nil)
	res, err = suite.client.R().SetBody(modeldto.RequestQuestion{Question: "what is a cell?"}).Post("/api/chat")
	suite.Require().NoError(err)
	suite.Require().Equal(http.StatusOK, res.StatusCode())
	var answer modeldto.ResponseAnswer
	suite.Require().NoError(json.Unmarshal(res.Body(), &answer))
	suite.Equal("the smallest unit of life", answer.Answer)

	res, err = suite.client.R().Get("/api/chat")
	suite.Require().NoError(err)
	suite.Require().Equal(http.StatusOK, res.StatusCode())
	var history []modelstudy.Message
	suite.Require().NoError(json.Unmarshal(res.Body(), &history))
	suite.Require().Len(history, 2)
	suite.Equal(modelstudy.RoleUser, history[0].Role)
	suite.Equal("what is a cell?", history[0].Content)
	suite.Equal(modelstudy.RoleAssistant, history[1].Role)
}

func (suite *HandlersTestSuite) TestEmptyHistory() {
	res, err := suite.client.R().Get("/api/chat")
	suite.Require().NoError(err)
	suite.Equal(http.StatusOK, res.StatusCode())
	suite.JSONEq(`[]`, res.String())
}

func (suite *HandlersTestSuite) TestPosts() {
	res, err := suite.client.R().SetMultipartFormData(map[string]string{"content": "no title"}).Post("/api/posts")
	suite.Require().NoError(err)
	suite.Equal(http.StatusBadRequest, res.StatusCode())

	res, err = suite.client.R().
		SetMultipartFormData(map[string]string{"title": "Exam", "content": "notes"}).
		SetFileReader("files", "virus.exe", bytes.NewReader([]byte("MZ"))).
		Post("/api/posts")
	suite.Require().NoError(err)
	suite.Equal(http.StatusBadRequest, res.StatusCode())

	res, err = suite.client.R().
		SetMultipartFormData(map[string]string{"title": "Biology Midterm", "content": "Chapter 3 summary"}).
		SetFileReader("files", "chapter3.pdf", bytes.NewReader([]byte("%PDF-1.4 body"))).
		Post("/api/posts")
	suite.Require().NoError(err)
	suite.Require().Equal(http.StatusCreated, res.StatusCode(), res.String())
	var post modelstudy.Post
	suite.Require().NoError(json.Unmarshal(res.Body(), &post))
	suite.NotEmpty(post.Slug)
	suite.Equal(1, post.Seq)
	suite.Require().Len(post.Attachments, 1)
	suite.Equal("pdf", post.Attachments[0].Ext)

	tests := []struct {
		name  string
		query string
		count int
	}{
		{name: "no query", query: "", count: 1},
		{name: "title match ignoring case", query: "biology", count: 1},
		{name: "content match", query: "CHAPTER", count: 1},
		{name: "no match", query: "physics", count: 0},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			res, err := suite.client.R().SetQueryParam("q", tt.query).Get("/api/posts")
			suite.Require().NoError(err)
			suite.Require().Equal(http.StatusOK, res.StatusCode())
			var posts []modelstudy.Post
			suite.Require().NoError(json.Unmarshal(res.Body(), &posts))
			suite.Len(posts, tt.count)
		})
	}

	res, err = suite.client.R().SetPathParam("slug", post.Slug).Get("/api/posts/{slug}")
	suite.Require().NoError(err)
	suite.Equal(http.StatusOK, res.StatusCode())

	res, err = suite.client.R().SetPathParam("slug", "missing").Get("/api/posts/{slug}")
	suite.Require().NoError(err)
	suite.Equal(http.StatusNotFound, res.StatusCode())

	res, err = suite.client.R().SetPathParams(map[string]string{"slug": post.Slug, "name": "chapter3.pdf"}).Get("/api/posts/{slug}/files/{name}")
	suite.Require().NoError(err)
	suite.Require().Equal(http.StatusOK, res.StatusCode())
	suite.Equal("application/pdf", res.Header().Get("Content-Type"))
	suite.Equal("13", res.Header().Get("Content-Length"))
	suite.Equal("%PDF-1.4 body", res.String())

	res, err = suite.client.R().SetPathParams(map[string]string{"slug": post.Slug, "name": "other.pdf"}).Get("/api/posts/{slug}/files/{name}")
	suite.Require().NoError(err)
	suite.Equal(http.StatusNotFound, res.StatusCode())
}

func (suite *HandlersTestSuite) TestComments() {
	post, err := suite.storage.DumpPost(suite.T().Context(), modelstudy.Post{Slug: "abcde", Title: "t", Content: "c"})
	suite.Require().NoError(err)

	tests := []struct {
		name string
		slug string
		body string
		code int
	}{
		{name: "empty content", slug: post.Slug, body: `{"content":""}`, code: http.StatusBadRequest},
		{name: "blank content", slug: post.Slug, body: `{"content":"  "}`, code: http.StatusBadRequest},
		{name: "unknown post", slug: "zzzzz", body: `{"content":"hello"}`, code: http.StatusNotFound},
		{name: "comment added", slug: post.Slug, body: `{"content":"hello"}`, code: http.StatusCreated},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			res, err := suite.client.R().
				SetHeader("Content-Type", "application/json").
				SetBody(tt.body).
				SetPathParam("slug", tt.slug).
				Post("/api/posts/{slug}/comments")
			suite.Require().NoError(err)
			suite.Equal(tt.code, res.StatusCode(), res.String())
		})
	}

	res, err := suite.client.R().SetPathParam("slug", post.Slug).Get("/api/posts/{slug}")
	suite.Require().NoError(err)
	var stored modelstudy.Post
	suite.Require().NoError(json.Unmarshal(res.Body(), &stored))
	suite.Require().Len(stored.Comments, 1)
	suite.Regexp(`^user_[1-9]\d\d$`, stored.Comments[0].Author)
	suite.Equal("hello", stored.Comments[0].Content)
}

func (suite *HandlersTestSuite) TestCompareImages() {
	res, err := suite.client.R().SetMultipartFormData(map[string]string{"note": "none"}).Post("/api/images/compare")
	suite.Require().NoError(err)
	suite.Equal(http.StatusBadRequest, res.StatusCode())

	var img bytes.Buffer
	suite.Require().NoError(png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 3, 2))))
	suite.assistant.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("both are tiny", nil)
	res, err = suite.client.R().
		SetFileReader("images", "a.png", bytes.NewReader(img.Bytes())).
		SetFormDataFromValues(url.Values{"url": {"not a url"}}).
		Post("/api/images/compare")
	suite.Require().NoError(err)
	suite.Require().Equal(http.StatusOK, res.StatusCode(), res.String())
	var comparison modelstudy.Comparison
	suite.Require().NoError(json.Unmarshal(res.Body(), &comparison))
	suite.Equal("both are tiny", comparison.Answer)
	suite.Require().Len(comparison.Descriptions, 2)
	suite.Equal("Image1 size: (3, 2)", comparison.Descriptions[0])
	suite.Contains(comparison.Descriptions[1], "Image2 download error")
}

func (suite *HandlersTestSuite) TestPingAndStats() {
	res, err := suite.client.R().Get("/ping")
	suite.Require().NoError(err)
	suite.Equal(http.StatusOK, res.StatusCode())

	_, err = suite.storage.DumpPost(suite.T().Context(), modelstudy.Post{Slug: "abcde", Title: "t", Content: "c"})
	suite.Require().NoError(err)
	res, err = suite.client.R().Get("/api/internal/stats")
	suite.Require().NoError(err)
	suite.Require().Equal(http.StatusOK, res.StatusCode())
	var stats modelstorage.Stats
	suite.Require().NoError(json.Unmarshal(res.Body(), &stats))
	suite.Equal(modelstorage.Stats{Posts: 1}, stats)
}

func (suite *HandlersTestSuite) TestForgedCookie() {
	res, err := resty.New().R().SetCookie(&http.Cookie{Name: "user", Value: "forged"}).Get(suite.ts.URL + "/api/chat")
	suite.Require().NoError(err)
	suite.Equal(http.StatusUnauthorized, res.StatusCode())
}

func TestInitStudyHandlerNilDependencies(t *testing.T) {
	_, err := InitStudyHandler(nil, nil, nil, nil, config.NewDefaultConfiguration())
	var nilDep *serviceErrors.ServiceFoundNilDependency
	assert.ErrorAs(t, err, &nilDep)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	assistant := mocks.NewMockAssistant(ctrl)
	st := inmemory.InitStorage()
	reviewerService, _ := reviewer.InitReviewer(st, mocks.NewMockExtractor(ctrl), assistant, 1)
	communityService, _ := community.InitCommunity(st)
	visionService, _ := vision.InitVision(assistant, nil, 0)
	_, err = InitStudyHandler(reviewerService, communityService, visionService, nil, config.NewDefaultConfiguration())
	var nilStorage *serviceErrors.ServiceFoundNilStorage
	assert.ErrorAs(t, err, &nilStorage)
}
