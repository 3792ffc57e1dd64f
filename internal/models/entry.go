package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntryStatus represents the visibility status of an entry
type EntryStatus string

const (
	EntryStatusPublic  EntryStatus = "PUBLIC"
	EntryStatusDraft   EntryStatus = "DRAFT"
	EntryStatusDeleted EntryStatus = "DELETED"
)

// Valid reports whether s is one of the known entry statuses.
func (s EntryStatus) Valid() bool {
	switch s {
	case EntryStatusPublic, EntryStatusDraft, EntryStatusDeleted:
		return true
	}
	return false
}

// Entry represents a blog entry. The slug is always re-derived from the
// title on save; DELETED is a terminal visibility status, never row removal.
type Entry struct {
	ID        uuid.UUID   `json:"id" gorm:"primaryKey;type:uuid"`
	Title     string      `json:"title" gorm:"not null;size:100"`
	Slug      string      `json:"slug" gorm:"not null;uniqueIndex;size:100"`
	Body      string      `json:"body" gorm:"not null"`
	Status    EntryStatus `json:"status" gorm:"not null;type:varchar(20);default:'PUBLIC';index:idx_entries_author_status"`
	AuthorID  uuid.UUID   `json:"author_id" gorm:"not null;type:uuid;index:idx_entries_author_status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	// Foreign Key Relations
	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`

	// One-to-Many Relations
	Comments []*Comment `json:"comments,omitempty" gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE"`

	// Many-to-Many Relations
	Tags []*Tag `json:"tags,omitempty" gorm:"many2many:entry_tags"`
}

func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
