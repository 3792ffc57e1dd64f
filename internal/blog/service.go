// Package blog implements the entry visibility and tagging rules: the entry
// lifecycle, tag resolution, viewer scoping and comment intake. All failures
// of business rules are returned as values (ErrNotFound, ValidationError);
// only storage faults propagate as-is.
package blog

import (
	"gorm.io/gorm"
)

// DefaultPageSize is the listing page size when none is configured.
const DefaultPageSize = 20

// Service implements the entry domain operations on top of the relational
// store. Every mutating call runs inside a single transaction.
type Service struct {
	db       *gorm.DB
	pageSize int
}

// NewService creates a new blog service.
func NewService(db *gorm.DB, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{db: db, pageSize: pageSize}
}
