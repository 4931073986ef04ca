package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/askloop/askloop/models"
)

func TestCreateAnswerUnknownQuestion(t *testing.T) {
	r, _ := newTestRouter(t)
	_, token := registerUser(t, r, "Bob", "bob@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/answers", token, gin.H{
		"questionId": "no-such-question",
		"content":    "An answer long enough to pass content validation.",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", w.Code)
	}
	if msg := decodeBody(t, w)["error"]; msg != "Question not found" {
		t.Errorf("error = %v", msg)
	}
}

func TestCreateAnswerNotifiesQuestionAuthor(t *testing.T) {
	r, db := newTestRouter(t)
	askerID, askToken := registerUser(t, r, "Alice", "alice@example.com")
	_, answerToken := registerUser(t, r, "Bob", "bob@example.com")

	questionID := postQuestion(t, r, askToken, "Does answering trigger a notification?")
	postAnswer(t, r, answerToken, questionID)

	var notifications []models.Notification
	if err := db.Where("user_id = ?", askerID).Find(&notifications).Error; err != nil {
		t.Fatalf("load notifications: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifications))
	}
	n := notifications[0]
	if n.Type != models.NotificationAnswer {
		t.Errorf("type = %s, want %s", n.Type, models.NotificationAnswer)
	}
	if n.RelatedQuestionID == nil || *n.RelatedQuestionID != questionID {
		t.Errorf("relatedQuestionID = %v, want %s", n.RelatedQuestionID, questionID)
	}
	if n.IsRead {
		t.Error("new notification already marked read")
	}
}

func TestSelfAnswerEmitsNoNotification(t *testing.T) {
	r, db := newTestRouter(t)
	askerID, askToken := registerUser(t, r, "Alice", "alice@example.com")

	questionID := postQuestion(t, r, askToken, "Can I answer my own question here?")
	postAnswer(t, r, askToken, questionID)

	var count int64
	db.Model(&models.Notification{}).Where("user_id = ?", askerID).Count(&count)
	if count != 0 {
		t.Fatalf("got %d notifications, want 0", count)
	}
}

func TestAcceptRequiresQuestionAuthor(t *testing.T) {
	r, _ := newTestRouter(t)
	_, askToken := registerUser(t, r, "Alice", "alice@example.com")
	_, answerToken := registerUser(t, r, "Bob", "bob@example.com")

	questionID := postQuestion(t, r, askToken, "Who gets to accept this answer then?")
	answerID := postAnswer(t, r, answerToken, questionID)

	w := doJSON(t, r, http.MethodPatch, "/api/answers/"+answerID, answerToken, gin.H{"isAccepted": true})
	if w.Code != http.StatusForbidden {
		t.Fatalf("status %d, want 403", w.Code)
	}
	if msg := decodeBody(t, w)["error"]; msg != "Only the question author can accept answers" {
		t.Errorf("error = %v", msg)
	}
}

func TestAcceptMovesBetweenAnswers(t *testing.T) {
	r, db := newTestRouter(t)
	_, askToken := registerUser(t, r, "Alice", "alice@example.com")
	bobID, answerToken := registerUser(t, r, "Bob", "bob@example.com")

	questionID := postQuestion(t, r, askToken, "Which of my answers is the best one?")
	first := postAnswer(t, r, answerToken, questionID)
	second := postAnswer(t, r, answerToken, questionID)

	w := doJSON(t, r, http.MethodPatch, "/api/answers/"+first, askToken, gin.H{"isAccepted": true})
	if w.Code != http.StatusOK {
		t.Fatalf("accept first: status %d body %s", w.Code, w.Body.String())
	}

	// Accepting the second must clear the first in the same operation
	w = doJSON(t, r, http.MethodPatch, "/api/answers/"+second, askToken, gin.H{"isAccepted": true})
	if w.Code != http.StatusOK {
		t.Fatalf("accept second: status %d body %s", w.Code, w.Body.String())
	}

	var accepted []models.Answer
	if err := db.Where("question_id = ? AND is_accepted = ?", questionID, true).Find(&accepted).Error; err != nil {
		t.Fatalf("load answers: %v", err)
	}
	if len(accepted) != 1 || accepted[0].ID != second {
		t.Fatalf("accepted = %v, want exactly [%s]", accepted, second)
	}

	// Both accept transitions notified the answer author
	var count int64
	db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", bobID, models.NotificationAccepted).
		Count(&count)
	if count != 2 {
		t.Errorf("got %d accepted notifications, want 2", count)
	}
}

func TestUnacceptAnswer(t *testing.T) {
	r, db := newTestRouter(t)
	_, askToken := registerUser(t, r, "Alice", "alice@example.com")
	bobID, answerToken := registerUser(t, r, "Bob", "bob@example.com")

	questionID := postQuestion(t, r, askToken, "Can an accepted answer be taken back?")
	answerID := postAnswer(t, r, answerToken, questionID)

	for _, accepted := range []bool{true, false} {
		w := doJSON(t, r, http.MethodPatch, "/api/answers/"+answerID, askToken, gin.H{"isAccepted": accepted})
		if w.Code != http.StatusOK {
			t.Fatalf("set accepted=%v: status %d body %s", accepted, w.Code, w.Body.String())
		}
	}

	var answer models.Answer
	if err := db.First(&answer, "id = ?", answerID).Error; err != nil {
		t.Fatalf("load answer: %v", err)
	}
	if answer.IsAccepted {
		t.Error("answer still accepted after unaccept")
	}

	// Only the false->true transition notifies
	var count int64
	db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", bobID, models.NotificationAccepted).
		Count(&count)
	if count != 1 {
		t.Errorf("got %d accepted notifications, want 1", count)
	}
}

func TestAcceptUnknownAnswer(t *testing.T) {
	r, _ := newTestRouter(t)
	_, token := registerUser(t, r, "Alice", "alice@example.com")

	w := doJSON(t, r, http.MethodPatch, "/api/answers/no-such-answer", token, gin.H{"isAccepted": true})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", w.Code)
	}
}
