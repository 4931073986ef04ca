package controllers_test

import (
	"net/http"
	"testing"

	"github.com/askloop/askloop/models"
)

func TestListTagsMergesCatalogAndUsage(t *testing.T) {
	r, db := newTestRouter(t)
	_, token := registerUser(t, r, "Alice", "alice@example.com")

	// Curated entry with a description; usage comes from questions
	if err := db.Create(&models.Tag{Name: "go", Description: "The Go programming language"}).Error; err != nil {
		t.Fatalf("seed tag: %v", err)
	}
	postQuestion(t, r, token, "How do I parse JSON in Go today?", "go", "json")
	postQuestion(t, r, token, "Why does my goroutine never finish?", "go")

	w := doJSON(t, r, http.MethodGet, "/api/tags", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
	tags := decodeBody(t, w)["tags"].([]interface{})

	byName := map[string]map[string]interface{}{}
	for _, raw := range tags {
		tag := raw.(map[string]interface{})
		byName[tag["name"].(string)] = tag
	}

	goTag, ok := byName["go"]
	if !ok {
		t.Fatal("go tag missing")
	}
	if goTag["count"].(float64) != 2 {
		t.Errorf("go count = %v, want 2", goTag["count"])
	}
	if goTag["description"] != "The Go programming language" {
		t.Errorf("go description = %v", goTag["description"])
	}

	// json entered the catalog through question creation, without a description
	jsonTag, ok := byName["json"]
	if !ok {
		t.Fatal("json tag missing")
	}
	if jsonTag["count"].(float64) != 1 {
		t.Errorf("json count = %v, want 1", jsonTag["count"])
	}
}

func TestListTagsSearch(t *testing.T) {
	r, _ := newTestRouter(t)
	_, token := registerUser(t, r, "Alice", "alice@example.com")

	postQuestion(t, r, token, "How do I parse JSON in Go today?", "go", "json")
	postQuestion(t, r, token, "How do I center a div in CSS now?", "css")

	w := doJSON(t, r, http.MethodGet, "/api/tags?search=jso", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
	tags := decodeBody(t, w)["tags"].([]interface{})
	if len(tags) != 1 {
		t.Fatalf("got %d tags, want 1", len(tags))
	}
	if name := tags[0].(map[string]interface{})["name"]; name != "json" {
		t.Errorf("name = %v, want json", name)
	}
}
