package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentStatus represents the moderation status of a comment
type CommentStatus string

const (
	CommentStatusPublic CommentStatus = "PUBLIC"
	CommentStatusSpam   CommentStatus = "SPAM"
)

// Comment represents a reader-submitted comment on an entry. Comments are
// anonymous-capable: name, email, url and ip_address are optional submitter
// data, and there is no author reference.
type Comment struct {
	ID        uuid.UUID     `json:"id" gorm:"primaryKey;type:uuid"`
	EntryID   uuid.UUID     `json:"entry_id" gorm:"not null;type:uuid;index:idx_comments_entry"`
	Name      string        `json:"name" gorm:"size:64"`
	Email     string        `json:"email" gorm:"size:64"`
	URL       string        `json:"url" gorm:"size:200"`
	IPAddress string        `json:"ip_address" gorm:"size:64"`
	Body      string        `json:"body" gorm:"not null"`
	Status    CommentStatus `json:"status" gorm:"not null;type:varchar(20);default:'PUBLIC'"`
	CreatedAt time.Time     `json:"created_at"`

	// Foreign Key Relations
	Entry *Entry `json:"entry,omitempty" gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
