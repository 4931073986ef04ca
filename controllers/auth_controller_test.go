package controllers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRegisterAndMe(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Alice",
		"email":    "Alice@Example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["success"] != true {
		t.Fatalf("expected success, got %s", w.Body.String())
	}
	user := body["user"].(map[string]interface{})
	if user["email"] != "alice@example.com" {
		t.Errorf("email not lowercased: %v", user["email"])
	}
	if user["role"] != "USER" {
		t.Errorf("role = %v, want USER", user["role"])
	}

	var cookie string
	for _, c := range w.Result().Cookies() {
		if c.Name == "auth-token" {
			cookie = c.Value
			if !c.HttpOnly {
				t.Error("auth cookie not HttpOnly")
			}
		}
	}
	if cookie == "" {
		t.Fatal("auth-token cookie not set")
	}

	token := body["token"].(string)
	w = doJSON(t, r, http.MethodGet, "/api/auth/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me: status %d body %s", w.Code, w.Body.String())
	}
	me := decodeBody(t, w)["user"].(map[string]interface{})
	if me["name"] != "Alice" {
		t.Errorf("me name = %v", me["name"])
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, _ := newTestRouter(t)
	registerUser(t, r, "Alice", "alice@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Other Alice",
		"email":    "ALICE@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
	if msg := decodeBody(t, w)["error"]; msg != "User with this email already exists" {
		t.Errorf("error = %v", msg)
	}
}

func TestRegisterValidationDetails(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "A",
		"email":    "not-an-email",
		"password": "123",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != "Invalid input" {
		t.Errorf("error = %v", body["error"])
	}
	details, ok := body["details"].([]interface{})
	if !ok || len(details) != 3 {
		t.Fatalf("details = %v, want three field errors", body["details"])
	}
}

func TestLoginWrongPassword(t *testing.T) {
	r, _ := newTestRouter(t)
	registerUser(t, r, "Alice", "alice@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
	if msg := decodeBody(t, w)["error"]; msg != "Invalid email or password" {
		t.Errorf("error = %v", msg)
	}

	// Unknown account yields the same message so emails cannot be probed
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "nobody@example.com",
		"password": "whatever1",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
	if msg := decodeBody(t, w)["error"]; msg != "Invalid email or password" {
		t.Errorf("error = %v", msg)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	r, _ := newTestRouter(t)
	_, token := registerUser(t, r, "Alice", "alice@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/logout", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("logout: status %d body %s", w.Code, w.Body.String())
	}
	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "auth-token" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("auth cookie not cleared on logout")
	}

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout: status %d, want 401", w.Code)
	}
}

func TestMeWithoutToken(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/auth/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
}

func TestAPINotFound(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/nope", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Route not found") {
		t.Errorf("body = %s", w.Body.String())
	}
}
