// Package handlers provides http.HandlerFunc handler functions to be used for endpoints.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"github.com/danilovkiri/dk_go_study_helper/internal/api/rest/middleware"
	"github.com/danilovkiri/dk_go_study_helper/internal/api/rest/modeldto"
	"github.com/danilovkiri/dk_go_study_helper/internal/config"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/community"
	serviceErrors "github.com/danilovkiri/dk_go_study_helper/internal/service/errors"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/modelstudy"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/reviewer"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/vision"
	"github.com/danilovkiri/dk_go_study_helper/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_study_helper/internal/storage/errors"
)

const (
	// storageTimeout bounds handlers that only touch storage.
	storageTimeout = 500 * time.Millisecond
	// uploadTimeout bounds handlers that persist uploaded files.
	uploadTimeout = 5 * time.Second
	// modelTimeout bounds handlers that wait for a language model.
	modelTimeout = 110 * time.Second
	// multipartMemory is the part of a multipart body kept in memory, the rest spills to disk.
	multipartMemory = 8 << 20
	// defaultMaxUpload applies when the configuration leaves the upload limit unset.
	defaultMaxUpload = 32 << 20
)

// StudyHandler defines data structure handling and provides support for adding new implementations.
type StudyHandler struct {
	processor reviewer.Processor
	board     community.Board
	comparer  vision.Comparer
	storage   storage.StudyStorage
	validate  *validator.Validate
	maxUpload int64
}

// InitStudyHandler initializes a StudyHandler object and sets its attributes.
func InitStudyHandler(processor reviewer.Processor, board community.Board, comparer vision.Comparer, st storage.StudyStorage, cfg *config.Config) (*StudyHandler, error) {
	if processor == nil || board == nil || comparer == nil {
		return nil, &serviceErrors.ServiceFoundNilDependency{Msg: "nil service was passed to study handler initializer"}
	}
	if st == nil {
		return nil, &serviceErrors.ServiceFoundNilStorage{Msg: "nil storage was passed to study handler initializer"}
	}
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUpload
	}
	return &StudyHandler{
		processor: processor,
		board:     board,
		comparer:  comparer,
		storage:   st,
		validate:  validator.New(),
		maxUpload: maxUpload,
	}, nil
}

// userID returns the identity resolved by the cookie middleware.
func userID(r *http.Request) (string, error) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return "", errors.New("user identity is missing from request context")
	}
	return id, nil
}

// decodeJSON reads a JSON request body into dst and validates it.
func (h *StudyHandler) decodeJSON(r *http.Request, dst interface{}) error {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return err
	}
	return h.validate.Struct(dst)
}

// parseMultipart caps the request body and parses it as multipart/form-data.
func (h *StudyHandler) parseMultipart(w http.ResponseWriter, r *http.Request) (int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	err := r.ParseMultipartForm(multipartMemory)
	if err == nil {
		return http.StatusOK, nil
	}
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return http.StatusRequestEntityTooLarge, fmt.Errorf("upload exceeds %d bytes", maxBytesErr.Limit)
	}
	return http.StatusBadRequest, err
}

// formFiles reads every file sent under the multipart field, in the order received.
func formFiles(r *http.Request, field string) ([]modelstudy.File, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	files := make([]modelstudy.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, modelstudy.File{Name: fh.Filename, Data: data})
	}
	return files, nil
}

// statusOf maps service and storage errors onto HTTP status codes.
func statusOf(err error) int {
	var (
		timeoutErr     *storageErrors.ContextTimeoutExceededError
		notFoundErr    *storageErrors.NotFoundError
		noProviderErr  *serviceErrors.NoProviderError
		quotaErr       *serviceErrors.ProviderQuotaError
		noDocumentErr  *serviceErrors.NoDocumentError
		noFilesErr     *serviceErrors.NoFilesError
		noImagesErr    *serviceErrors.NoImagesError
		emptyQErr      *serviceErrors.EmptyQuestionError
		emptyFieldErr  *serviceErrors.EmptyFieldError
		unsupportedErr *serviceErrors.UnsupportedFormatError
		validationErrs validator.ValidationErrors
	)
	switch {
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &noProviderErr), errors.As(err, &quotaErr):
		return http.StatusBadGateway
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &noDocumentErr):
		return http.StatusConflict
	case errors.As(err, &noFilesErr), errors.As(err, &noImagesErr), errors.As(err, &emptyQErr),
		errors.As(err, &emptyFieldErr), errors.As(err, &unsupportedErr), errors.As(err, &validationErrs):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeJSON serializes v and sends it with the given status code.
func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	resBody, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(resBody)
}

// writeError logs err under the handler name and sends it as a JSON error body.
func writeError(w http.ResponseWriter, handler string, code int, err error) {
	entry := log.WithFields(log.Fields{"handler": handler, "status": code})
	if code >= http.StatusInternalServerError {
		entry.Error(err)
	} else {
		entry.Info(err)
	}
	writeJSON(w, code, modeldto.ResponseError{Error: err.Error()})
}
