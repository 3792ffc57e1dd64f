package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an author account. The password is only ever stored as a
// one-way hash; Password is a transient write-only field used by the admin
// console and the CLI to supply a new plaintext for hashing.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Email        string    `json:"email" gorm:"not null;uniqueIndex;size:64"`
	PasswordHash string    `json:"-" gorm:"not null;size:255"`
	Name         string    `json:"name" gorm:"not null;size:64"`
	Slug         string    `json:"slug" gorm:"not null;index;size:64"`
	Active       bool      `json:"active" gorm:"not null;default:true"`
	Admin        bool      `json:"admin" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`

	Password string `json:"password,omitempty" gorm:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
