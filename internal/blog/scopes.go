package blog

import (
	"github.com/quillworks/quill/internal/models"
	"gorm.io/gorm"
)

// VisibleTo scopes an entry query to what viewer may see. Anonymous viewers
// get PUBLIC entries only; authenticated viewers additionally see their own
// entries in any status except DELETED.
func VisibleTo(viewer *models.User) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if viewer == nil {
			return db.Where("entries.status = ?", models.EntryStatusPublic)
		}
		return db.Where("(entries.status = ? OR (entries.author_id = ? AND entries.status <> ?))",
			models.EntryStatusPublic, viewer.ID, models.EntryStatusDeleted)
	}
}

// Listed restricts a query to statuses that may appear in listings and
// search. DELETED entries never list, not even for their author.
func Listed() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("entries.status IN ?",
			[]models.EntryStatus{models.EntryStatusPublic, models.EntryStatusDraft})
	}
}

// Search filters by substring containment on title or body. Applied after
// status scoping; a blank term is a no-op.
func Search(q string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q == "" {
			return db
		}
		like := "%" + q + "%"
		return db.Where("(entries.title LIKE ? OR entries.body LIKE ?)", like, like)
	}
}
