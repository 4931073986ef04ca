package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Question is a post asking for answers. Description is a sanitized HTML blob
// produced by the client's rich-text editor. Tags are stored denormalized as a
// JSON array of names in a text column; the explicit Tag catalog is maintained
// separately and reconciled at read time.
type Question struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	AuthorID    string    `gorm:"size:36;index;not null" json:"author_id"`
	TagNames    string    `gorm:"type:text" json:"-"` // JSON array of tag names
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Author      User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Answers     []Answer  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"answers,omitempty"`
}

// BeforeCreate assigns a uuid primary key.
func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// Tags decodes the denormalized tag-name list. A corrupt column yields nil.
func (q *Question) Tags() []string {
	if q.TagNames == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(q.TagNames), &tags); err != nil {
		return nil
	}
	return tags
}

// SetTags encodes the tag-name list into the denormalized column.
func (q *Question) SetTags(tags []string) {
	b, err := json.Marshal(tags)
	if err != nil {
		return
	}
	q.TagNames = string(b)
}
