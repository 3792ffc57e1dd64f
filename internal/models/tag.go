package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag represents a tag attached to entries. Name is the identity key:
// tag resolution reuses a tag with a matching name and never mutates it.
type Tag struct {
	ID   uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Name string    `json:"name" gorm:"not null;uniqueIndex;size:64"`
	Slug string    `json:"slug" gorm:"not null;index;size:64"`

	// Many-to-Many Relations
	Entries []*Entry `json:"entries,omitempty" gorm:"many2many:entry_tags"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
