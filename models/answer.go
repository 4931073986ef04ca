package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Answer belongs to exactly one question. At most one answer per question may
// carry IsAccepted=true; the accept handler enforces this with a bulk clear
// inside the same transaction that sets the flag.
type Answer struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	QuestionID string    `gorm:"size:36;index;not null" json:"question_id"`
	AuthorID   string    `gorm:"size:36;index;not null" json:"author_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsAccepted bool      `gorm:"not null;default:false" json:"is_accepted"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Author     User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Comments   []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments,omitempty"`
}

// BeforeCreate assigns a uuid primary key.
func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
