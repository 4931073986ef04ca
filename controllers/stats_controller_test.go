package controllers_test

import (
	"net/http"
	"testing"
)

func TestStatsOverview(t *testing.T) {
	r, _ := newTestRouter(t)
	_, askToken := registerUser(t, r, "Alice", "alice@example.com")
	_, answerToken := registerUser(t, r, "Bob", "bob@example.com")

	questionID := postQuestion(t, r, askToken, "Do detail reads count as page views?")
	postAnswer(t, r, answerToken, questionID)

	// Two successful detail reads land in today's view tally
	for i := 0; i < 2; i++ {
		if w := doJSON(t, r, http.MethodGet, "/api/questions/"+questionID, "", nil); w.Code != http.StatusOK {
			t.Fatalf("detail: status %d", w.Code)
		}
	}
	// A missing question does not
	doJSON(t, r, http.MethodGet, "/api/questions/no-such-id", "", nil)

	w := doJSON(t, r, http.MethodGet, "/api/stats", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats: status %d body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["users"].(float64) != 2 {
		t.Errorf("users = %v, want 2", body["users"])
	}
	if body["questions"].(float64) != 1 {
		t.Errorf("questions = %v, want 1", body["questions"])
	}
	if body["answers"].(float64) != 1 {
		t.Errorf("answers = %v, want 1", body["answers"])
	}
	if body["viewsToday"].(float64) != 2 {
		t.Errorf("viewsToday = %v, want 2", body["viewsToday"])
	}
}
