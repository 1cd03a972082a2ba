package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRegisterLoginLogoutFlow(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     "Alice Martin",
		"email":    "alice@example.com",
		"password": "password123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["token"] == "" || body["token"] == nil {
		t.Fatal("register must issue a token")
	}

	w = env.request(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	body = decodeBody(t, w)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("login must issue a token")
	}
	user := body["user"].(map[string]interface{})
	if user["status"] != "online" {
		t.Fatalf("login must flip status online, got %v", user["status"])
	}
	if _, exposed := user["password_hash"]; exposed {
		t.Fatal("password hash must never appear on the wire")
	}

	w = env.request(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("logout failed: %d %s", w.Code, w.Body.String())
	}
	id := int64(user["id"].(float64))
	stored, err := env.users.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("lookup after logout: %v", err)
	}
	if stored.Status != "offline" {
		t.Fatalf("logout must flip status offline, got %s", stored.Status)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	env := newTestEnv(t)

	env.request(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     "Alice Martin",
		"email":    "alice@example.com",
		"password": "password123",
	})

	w := env.request(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	w = env.request(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unknown email: expected 401, got %d", w.Code)
	}
}

func TestGetUsersExcludesCaller(t *testing.T) {
	env := newTestEnv(t)
	_, aliceToken := env.addUser(t, "Alice", "alice@example.com")
	env.addUser(t, "Bob", "bob@example.com")
	env.addUser(t, "Carol", "carol@example.com")

	w := env.request(t, http.MethodGet, "/api/v1/users", aliceToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	users := body["users"].([]interface{})
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	for _, raw := range users {
		u := raw.(map[string]interface{})
		if u["email"] == "alice@example.com" {
			t.Fatal("caller must not appear in the directory")
		}
	}
}
