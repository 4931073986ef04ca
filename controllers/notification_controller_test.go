package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/askloop/askloop/models"
)

func TestListNotifications(t *testing.T) {
	r, _ := newTestRouter(t)
	_, askToken := registerUser(t, r, "Alice", "alice@example.com")
	_, answerToken := registerUser(t, r, "Bob", "bob@example.com")

	questionID := postQuestion(t, r, askToken, "How many notifications will I get?")
	postAnswer(t, r, answerToken, questionID)
	postAnswer(t, r, answerToken, questionID)

	w := doJSON(t, r, http.MethodGet, "/api/notifications", askToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	notifications := body["notifications"].([]interface{})
	if len(notifications) != 2 {
		t.Fatalf("got %d notifications, want 2", len(notifications))
	}
	if body["unreadCount"].(float64) != 2 {
		t.Errorf("unreadCount = %v, want 2", body["unreadCount"])
	}
	first := notifications[0].(map[string]interface{})
	related, ok := first["relatedQuestion"].(map[string]interface{})
	if !ok || related["id"] != questionID {
		t.Errorf("relatedQuestion = %v, want id %s", first["relatedQuestion"], questionID)
	}
}

func TestNotificationsRequireAuth(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/notifications", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
}

func TestMarkAllNotificationsRead(t *testing.T) {
	r, _ := newTestRouter(t)
	_, askToken := registerUser(t, r, "Alice", "alice@example.com")
	_, answerToken := registerUser(t, r, "Bob", "bob@example.com")

	questionID := postQuestion(t, r, askToken, "Will marking all as read clear these?")
	postAnswer(t, r, answerToken, questionID)
	postAnswer(t, r, answerToken, questionID)

	w := doJSON(t, r, http.MethodPatch, "/api/notifications", askToken, gin.H{"markAllAsRead": true})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/notifications?unreadOnly=true", askToken, nil)
	body := decodeBody(t, w)
	if got := len(body["notifications"].([]interface{})); got != 0 {
		t.Errorf("got %d unread notifications, want 0", got)
	}
	if body["unreadCount"].(float64) != 0 {
		t.Errorf("unreadCount = %v, want 0", body["unreadCount"])
	}
}

func TestMarkSpecificNotificationsRead(t *testing.T) {
	r, db := newTestRouter(t)
	askerID, askToken := registerUser(t, r, "Alice", "alice@example.com")
	_, answerToken := registerUser(t, r, "Bob", "bob@example.com")

	questionID := postQuestion(t, r, askToken, "Can I mark just one of these read?")
	postAnswer(t, r, answerToken, questionID)
	postAnswer(t, r, answerToken, questionID)

	var all []models.Notification
	if err := db.Where("user_id = ?", askerID).Find(&all).Error; err != nil {
		t.Fatalf("load notifications: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d notifications, want 2", len(all))
	}

	w := doJSON(t, r, http.MethodPatch, "/api/notifications", askToken, gin.H{
		"notificationIds": []string{all[0].ID},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/notifications", askToken, nil)
	if got := decodeBody(t, w)["unreadCount"].(float64); got != 1 {
		t.Errorf("unreadCount = %v, want 1", got)
	}
}

func TestMarkReadScopedToOwner(t *testing.T) {
	r, db := newTestRouter(t)
	askerID, askToken := registerUser(t, r, "Alice", "alice@example.com")
	_, answerToken := registerUser(t, r, "Bob", "bob@example.com")
	_, strangerToken := registerUser(t, r, "Mallory", "mallory@example.com")

	questionID := postQuestion(t, r, askToken, "Can a stranger mark my feed as read?")
	postAnswer(t, r, answerToken, questionID)

	var n models.Notification
	if err := db.Where("user_id = ?", askerID).First(&n).Error; err != nil {
		t.Fatalf("load notification: %v", err)
	}

	w := doJSON(t, r, http.MethodPatch, "/api/notifications", strangerToken, gin.H{
		"notificationIds": []string{n.ID},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}

	// Another user's rows stay untouched
	if err := db.First(&n, "id = ?", n.ID).Error; err != nil {
		t.Fatalf("reload notification: %v", err)
	}
	if n.IsRead {
		t.Error("stranger marked someone else's notification read")
	}
}

func TestMarkReadEmptyRequest(t *testing.T) {
	r, _ := newTestRouter(t)
	_, token := registerUser(t, r, "Alice", "alice@example.com")

	w := doJSON(t, r, http.MethodPatch, "/api/notifications", token, gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
}
