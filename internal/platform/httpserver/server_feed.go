package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	feederrors "postline/contexts/content/feed-service/domain/errors"
	feedhttp "postline/contexts/content/feed-service/transport/http"
)

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	page := 1
	if pageRaw := r.URL.Query().Get("page"); pageRaw != "" {
		parsed, err := strconv.Atoi(pageRaw)
		if err != nil {
			writeFeedError(w, http.StatusBadRequest, "invalid_page", "page must be an integer")
			return
		}
		page = parsed
	}

	resp, err := s.feed.Handler.ListPostsHandler(r.Context(), s.resolveSession(r), page)
	if err != nil {
		s.writeFeedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req feedhttp.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFeedError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.feed.Handler.CreatePostHandler(r.Context(), s.resolveSession(r), req)
	if err != nil {
		s.writeFeedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("post_id")
	resp, err := s.feed.Handler.GetPostHandler(r.Context(), s.resolveSession(r), postID)
	if err != nil {
		s.writeFeedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	var req feedhttp.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFeedError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	postID := r.PathValue("post_id")
	resp, err := s.feed.Handler.UpdatePostHandler(r.Context(), s.resolveSession(r), postID, req)
	if err != nil {
		s.writeFeedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("post_id")
	resp, err := s.feed.Handler.DeletePostHandler(r.Context(), s.resolveSession(r), postID)
	if err != nil {
		s.writeFeedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeFeedDomainError(w http.ResponseWriter, err error) {
	var validationErr *feederrors.ValidationError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusUnprocessableEntity, feedhttp.ErrorResponse{
			Code:    "validation_failed",
			Message: "validation failed",
			Data:    toFeedFieldViolations(validationErr.Violations),
		})
	case errors.Is(err, feederrors.ErrUnauthenticated):
		writeFeedError(w, http.StatusUnauthorized, "unauthenticated", "not authenticated")
	case errors.Is(err, feederrors.ErrForbidden):
		writeFeedError(w, http.StatusForbidden, "forbidden", "not authorized")
	case errors.Is(err, feederrors.ErrPostNotFound):
		writeFeedError(w, http.StatusNotFound, "post_not_found", err.Error())
	default:
		s.logger.Error("feed request failed",
			"event", "http_feed_request_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err,
		)
		writeFeedError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func toFeedFieldViolations(violations []feederrors.FieldViolation) []feedhttp.FieldViolation {
	out := make([]feedhttp.FieldViolation, len(violations))
	for i, v := range violations {
		out[i] = feedhttp.FieldViolation{Field: v.Field, Message: v.Message}
	}
	return out
}

func writeFeedError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, feedhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
