package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func errorServer(t *testing.T, status int, message string) *Session {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "message": message})
	}))
	t.Cleanup(srv.Close)
	session := NewSession(srv.URL)
	session.SetToken("tok", 1)
	return session
}

func TestSessionClassifiesUnauthorized(t *testing.T) {
	session := errorServer(t, http.StatusUnauthorized, "Invalid or expired token.")
	_, err := session.Users(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestSessionClassifiesForbidden(t *testing.T) {
	session := errorServer(t, http.StatusForbidden, "Not a participant.")
	_, err := session.ListConversation(context.Background(), 1, 2)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSessionClassifiesValidation(t *testing.T) {
	session := errorServer(t, http.StatusBadRequest, "Message content is required.")
	_, err := session.SendMessage(context.Background(), 2, "")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Message != "Message content is required." {
		t.Fatalf("server message lost: %q", ve.Message)
	}
}

func TestSessionClassifiesStorage(t *testing.T) {
	session := errorServer(t, http.StatusInternalServerError, "insert failed")
	_, err := session.SendMessage(context.Background(), 2, "hi")
	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if se.StatusCode != http.StatusInternalServerError {
		t.Fatalf("wrong status code: %d", se.StatusCode)
	}
}

func TestSessionErrorEnvelopeWithOKStatus(t *testing.T) {
	// Some failures come back 200 with an error envelope; the body wins.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "message": "soft failure"})
	}))
	defer srv.Close()

	session := NewSession(srv.URL)
	session.SetToken("tok", 1)
	_, err := session.Users(context.Background())
	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %v", err)
	}
}

func TestSessionSendsBearerHeader(t *testing.T) {
	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("token")
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "success", "users": []User{}})
	}))
	defer srv.Close()

	session := NewSession(srv.URL)
	session.SetToken("secret", 1)
	if _, err := session.Users(context.Background()); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if gotQuery != "" {
		t.Fatalf("token must not leak into the query string, got %q", gotQuery)
	}
}

func TestSessionSendsQueryToken(t *testing.T) {
	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("token")
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "success", "users": []User{}})
	}))
	defer srv.Close()

	session := NewSession(srv.URL)
	session.UseQueryToken = true
	session.SetToken("secret", 1)
	if _, err := session.Users(context.Background()); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if gotQuery != "secret" {
		t.Fatalf("expected token query parameter, got %q", gotQuery)
	}
	if gotAuth != "" {
		t.Fatalf("header must be empty in query mode, got %q", gotAuth)
	}
}

func TestSessionLoginBindsTokenAndIdentity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "success",
			"message": "Login successful.",
			"token":   "issued-token",
			"user":    User{ID: 7, Name: "Alice Martin", Email: "alice@example.com"},
		})
	}))
	defer srv.Close()

	session := NewSession(srv.URL)
	if err := session.Login(context.Background(), "alice@example.com", "password123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session.SelfID() != 7 {
		t.Fatalf("self id not bound: %d", session.SelfID())
	}
	if session.Name() != "Alice Martin" {
		t.Fatalf("name not bound: %q", session.Name())
	}
	if session.token != "issued-token" {
		t.Fatalf("token not bound: %q", session.token)
	}
}

func TestSessionLogoutClearsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "success", "message": "Logged out."})
	}))
	defer srv.Close()

	session := NewSession(srv.URL)
	session.SetToken("tok", 1)
	if err := session.Logout(context.Background()); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if session.token != "" {
		t.Fatal("token should be cleared after logout")
	}
}
