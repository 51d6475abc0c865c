package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	autherrors "postline/contexts/identity/auth-service/domain/errors"
	authhttp "postline/contexts/identity/auth-service/transport/http"
)

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req authhttp.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.auth.Handler.SignupHandler(r.Context(), req)
	if err != nil {
		s.writeAuthDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req authhttp.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.auth.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		s.writeAuthDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := s.auth.Handler.GetStatusHandler(r.Context(), s.resolveSession(r))
	if err != nil {
		s.writeAuthDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req authhttp.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.auth.Handler.UpdateStatusHandler(r.Context(), s.resolveSession(r), req)
	if err != nil {
		s.writeAuthDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeAuthDomainError(w http.ResponseWriter, err error) {
	var validationErr *autherrors.ValidationError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusUnprocessableEntity, authhttp.ErrorResponse{
			Code:    "validation_failed",
			Message: "validation failed",
			Data:    toAuthFieldViolations(validationErr.Violations),
		})
	case errors.Is(err, autherrors.ErrEmailTaken):
		writeAuthError(w, http.StatusConflict, "email_taken", err.Error())
	case errors.Is(err, autherrors.ErrInvalidCredentials):
		writeAuthError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, autherrors.ErrUnauthenticated),
		errors.Is(err, autherrors.ErrTokenInvalid):
		writeAuthError(w, http.StatusUnauthorized, "unauthenticated", "not authenticated")
	case errors.Is(err, autherrors.ErrUserNotFound):
		writeAuthError(w, http.StatusNotFound, "user_not_found", err.Error())
	default:
		s.logger.Error("auth request failed",
			"event", "http_auth_request_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err,
		)
		writeAuthError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func toAuthFieldViolations(violations []autherrors.FieldViolation) []authhttp.FieldViolation {
	out := make([]authhttp.FieldViolation, len(violations))
	for i, v := range violations {
		out[i] = authhttp.FieldViolation{Field: v.Field, Message: v.Message}
	}
	return out
}

func writeAuthError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, authhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
