package handlers

import (
	"context"
	"net/http"
)

// HandleCompareImages compares the multipart images and the repeated url fields.
func (h *StudyHandler) HandleCompareImages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), modelTimeout)
		defer cancel()
		if code, err := h.parseMultipart(w, r); err != nil {
			writeError(w, "HandleCompareImages", code, err)
			return
		}
		uploads, err := formFiles(r, "images")
		if err != nil {
			writeError(w, "HandleCompareImages", http.StatusBadRequest, err)
			return
		}
		var urls []string
		for _, u := range r.MultipartForm.Value["url"] {
			if u != "" {
				urls = append(urls, u)
			}
		}
		comparison, err := h.comparer.Compare(ctx, uploads, urls)
		if err != nil {
			writeError(w, "HandleCompareImages", statusOf(err), err)
			return
		}
		writeJSON(w, http.StatusOK, comparison)
	}
}
