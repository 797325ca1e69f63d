package handlers

import (
	"context"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/danilovkiri/dk_go_study_helper/internal/api/rest/modeldto"
	serviceErrors "github.com/danilovkiri/dk_go_study_helper/internal/service/errors"
)

// HandlePostDocuments reviews the uploaded files and makes them the user's current document.
func (h *StudyHandler) HandlePostDocuments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), modelTimeout)
		defer cancel()
		user, err := userID(r)
		if err != nil {
			writeError(w, "HandlePostDocuments", http.StatusInternalServerError, err)
			return
		}
		if code, err := h.parseMultipart(w, r); err != nil {
			writeError(w, "HandlePostDocuments", code, err)
			return
		}
		files, err := formFiles(r, "files")
		if err != nil {
			writeError(w, "HandlePostDocuments", http.StatusBadRequest, err)
			return
		}
		log.WithFields(log.Fields{"user": user, "files": len(files)}).Info("document review requested")
		review, err := h.processor.Review(ctx, user, files)
		if err != nil {
			writeError(w, "HandlePostDocuments", statusOf(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, review)
	}
}

// HandleGetDocument returns the user's current review.
func (h *StudyHandler) HandleGetDocument() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), storageTimeout)
		defer cancel()
		user, err := userID(r)
		if err != nil {
			writeError(w, "HandleGetDocument", http.StatusInternalServerError, err)
			return
		}
		review, err := h.processor.Workspace(ctx, user)
		if err != nil {
			code := statusOf(err)
			var noDocumentErr *serviceErrors.NoDocumentError
			if errors.As(err, &noDocumentErr) {
				code = http.StatusNotFound
			}
			writeError(w, "HandleGetDocument", code, err)
			return
		}
		writeJSON(w, http.StatusOK, review)
	}
}

// HandlePostQuestion accepts JSON as {"question":"<text>"} and answers it using the user's current document.
func (h *StudyHandler) HandlePostQuestion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), modelTimeout)
		defer cancel()
		user, err := userID(r)
		if err != nil {
			writeError(w, "HandlePostQuestion", http.StatusInternalServerError, err)
			return
		}
		var request modeldto.RequestQuestion
		if err := h.decodeJSON(r, &request); err != nil {
			writeError(w, "HandlePostQuestion", http.StatusBadRequest, err)
			return
		}
		answer, err := h.processor.Ask(ctx, user, request.Question)
		if err != nil {
			writeError(w, "HandlePostQuestion", statusOf(err), err)
			return
		}
		writeJSON(w, http.StatusOK, modeldto.ResponseAnswer{Answer: answer})
	}
}

// HandleGetHistory returns the user's chat history.
func (h *StudyHandler) HandleGetHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), storageTimeout)
		defer cancel()
		user, err := userID(r)
		if err != nil {
			writeError(w, "HandleGetHistory", http.StatusInternalServerError, err)
			return
		}
		messages, err := h.processor.History(ctx, user)
		if err != nil {
			writeError(w, "HandleGetHistory", statusOf(err), err)
			return
		}
		writeJSON(w, http.StatusOK, messages)
	}
}
