package httpserver

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	feed "postline/contexts/content/feed-service"
	auth "postline/contexts/identity/auth-service"
)

func newTestServer() *Server {
	return New(
		auth.NewInMemoryModule(slog.Default()),
		feed.NewInMemoryModule(slog.Default()),
		slog.Default(),
		":0",
		"images",
	)
}

func signupAndLogin(t *testing.T, server *Server, email string) string {
	t.Helper()

	signupBody := []byte(`{"email":"` + email + `","name":"Tester","password":"sekret"}`)
	req := httptest.NewRequest(http.MethodPut, "/auth/signup", bytes.NewReader(signupBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	loginBody := []byte(`{"email":"` + email + `","password":"sekret"}`)
	req = httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding login response: %v", err)
	}
	if resp.Data.Token == "" {
		t.Fatalf("login returned no token: %s", rr.Body.String())
	}
	return resp.Data.Token
}

func TestSignupValidationReportsAllFields(t *testing.T) {
	server := newTestServer()

	body := []byte(`{"email":"not-an-email","name":"Tester","password":"x"}`)
	req := httptest.NewRequest(http.MethodPut, "/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Data []struct {
			Field string `json:"field"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected both violations reported, got %d", len(resp.Data))
	}
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	server := newTestServer()
	signupAndLogin(t, server, "dup@example.com")

	body := []byte(`{"email":"dup@example.com","name":"Other","password":"sekret"}`)
	req := httptest.NewRequest(http.MethodPut, "/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestLoginBadCredentialsUnauthorized(t *testing.T) {
	server := newTestServer()
	signupAndLogin(t, server, "login@example.com")

	body := []byte(`{"email":"login@example.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestStatusRequiresToken(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("get without token: expected 401, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("get with bad token: expected 401, got %d", rr.Code)
	}
}

func TestStatusUpdateRoundTripOverHTTP(t *testing.T) {
	server := newTestServer()
	token := signupAndLogin(t, server, "status@example.com")

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("initial get: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	body := []byte(`{"status":"Exploring the feed"}`)
	req = httptest.NewRequest(http.MethodPatch, "/auth/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	var resp struct {
		Data struct {
			UserStatus string `json:"user_status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding status response: %v", err)
	}
	if resp.Data.UserStatus != "Exploring the feed" {
		t.Fatalf("expected updated status, got %q", resp.Data.UserStatus)
	}
}

func TestSignupRejectsMalformedJSON(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodPut, "/auth/signup", bytes.NewReader([]byte(`{not json`)))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}
