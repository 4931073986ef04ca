package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vote target kinds and directions.
const (
	TargetQuestion = "QUESTION"
	TargetAnswer   = "ANSWER"

	VoteUp   = "UP"
	VoteDown = "DOWN"
)

// Vote records a single user's vote on a question or answer. The composite
// unique index guarantees at most one row per (user, target); repeat votes
// toggle off or flip direction in place instead of inserting.
type Vote struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     string    `gorm:"size:36;not null;uniqueIndex:idx_votes_user_target" json:"user_id"`
	TargetType string    `gorm:"size:16;not null;uniqueIndex:idx_votes_user_target" json:"target_type"`
	TargetID   string    `gorm:"size:36;not null;index;uniqueIndex:idx_votes_user_target" json:"target_id"`
	VoteType   string    `gorm:"size:8;not null" json:"vote_type"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeforeCreate assigns a uuid primary key.
func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
