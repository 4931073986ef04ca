package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types emitted by answer, comment and accept actions.
const (
	NotificationAnswer   = "ANSWER"
	NotificationComment  = "COMMENT"
	NotificationAccepted = "ACCEPTED"
)

// Notification is a terminal, append-only event record for a user. Emission is
// best-effort: a failed insert never rolls back the mutation that triggered it.
type Notification struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	UserID            string    `gorm:"size:36;index;not null" json:"user_id"`
	Type              string    `gorm:"size:16;not null" json:"type"`
	Title             string    `gorm:"size:255;not null" json:"title"`
	Message           string    `gorm:"type:text;not null" json:"message"`
	RelatedQuestionID *string   `gorm:"size:36" json:"related_question_id"`
	RelatedUserID     *string   `gorm:"size:36" json:"related_user_id"`
	IsRead            bool      `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt         time.Time `json:"created_at"`
	RelatedQuestion   *Question `gorm:"foreignKey:RelatedQuestionID" json:"related_question,omitempty"`
}

// BeforeCreate assigns a uuid primary key.
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
