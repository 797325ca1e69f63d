package handlers

import (
	"context"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/danilovkiri/dk_go_study_helper/internal/api/rest/modeldto"
)

// HandlePostPost publishes a community post from the multipart fields title, content and files.
func (h *StudyHandler) HandlePostPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), uploadTimeout)
		defer cancel()
		user, err := userID(r)
		if err != nil {
			writeError(w, "HandlePostPost", http.StatusInternalServerError, err)
			return
		}
		if code, err := h.parseMultipart(w, r); err != nil {
			writeError(w, "HandlePostPost", code, err)
			return
		}
		request := modeldto.RequestPost{
			Title:   r.FormValue("title"),
			Content: r.FormValue("content"),
		}
		if err := h.validate.Struct(request); err != nil {
			writeError(w, "HandlePostPost", http.StatusBadRequest, err)
			return
		}
		files, err := formFiles(r, "files")
		if err != nil {
			writeError(w, "HandlePostPost", http.StatusBadRequest, err)
			return
		}
		post, err := h.board.Publish(ctx, user, request.Title, request.Content, files)
		if err != nil {
			writeError(w, "HandlePostPost", statusOf(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, post)
	}
}

// HandleGetPosts lists posts, filtered by the optional q query parameter.
func (h *StudyHandler) HandleGetPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), storageTimeout)
		defer cancel()
		posts, err := h.board.List(ctx, r.URL.Query().Get("q"))
		if err != nil {
			writeError(w, "HandleGetPosts", statusOf(err), err)
			return
		}
		writeJSON(w, http.StatusOK, posts)
	}
}

// HandleGetPost returns one post with its comments.
func (h *StudyHandler) HandleGetPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), storageTimeout)
		defer cancel()
		post, err := h.board.Get(ctx, chi.URLParam(r, "slug"))
		if err != nil {
			writeError(w, "HandleGetPost", statusOf(err), err)
			return
		}
		writeJSON(w, http.StatusOK, post)
	}
}

// HandlePostComment accepts JSON as {"content":"<text>"} and adds it as a comment to a post.
func (h *StudyHandler) HandlePostComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), storageTimeout)
		defer cancel()
		var request modeldto.RequestComment
		if err := h.decodeJSON(r, &request); err != nil {
			writeError(w, "HandlePostComment", http.StatusBadRequest, err)
			return
		}
		comment, err := h.board.Comment(ctx, chi.URLParam(r, "slug"), request.Content)
		if err != nil {
			writeError(w, "HandlePostComment", statusOf(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, comment)
	}
}

// HandleGetAttachment sends the raw bytes of one post attachment.
func (h *StudyHandler) HandleGetAttachment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), storageTimeout)
		defer cancel()
		attachment, err := h.board.Attachment(ctx, chi.URLParam(r, "slug"), chi.URLParam(r, "name"))
		if err != nil {
			writeError(w, "HandleGetAttachment", statusOf(err), err)
			return
		}
		contentType := mime.TypeByExtension("." + attachment.Ext)
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": attachment.Name}))
		w.Header().Set("Content-Length", strconv.Itoa(len(attachment.Data)))
		w.WriteHeader(http.StatusOK)
		w.Write(attachment.Data)
	}
}
