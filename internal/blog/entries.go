package blog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/quillworks/quill/internal/models"
	"github.com/quillworks/quill/internal/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EntryForm carries the writable entry fields from a request. Tags is the
// comma-separated tag list exactly as typed.
type EntryForm struct {
	Title  string             `json:"title"`
	Body   string             `json:"body"`
	Status models.EntryStatus `json:"status"`
	Tags   string             `json:"tags"`
}

func (f *EntryForm) validate() error {
	ve := NewValidationError()
	if strings.TrimSpace(f.Title) == "" {
		ve.Add("title", "required")
	}
	if strings.TrimSpace(f.Body) == "" {
		ve.Add("body", "required")
	}
	// DELETED is owned by the delete flow, never set through the form.
	switch f.Status {
	case "", models.EntryStatusPublic, models.EntryStatusDraft:
	default:
		ve.Add("status", "must be PUBLIC or DRAFT")
	}
	if !ve.Empty() {
		return ve
	}
	return nil
}

// SaveEntry populates entry from form, re-derives the slug from the title
// and persists the result (create or update) with its resolved tag set,
// all in one transaction. CreatedAt is set once at first persistence;
// UpdatedAt refreshes on every save.
func (s *Service) SaveEntry(ctx context.Context, form *EntryForm, entry *models.Entry) (*models.Entry, error) {
	if err := form.validate(); err != nil {
		return nil, err
	}

	tags, err := s.ResolveTags(ctx, form.Tags)
	if err != nil {
		return nil, err
	}

	entry.Title = strings.TrimSpace(form.Title)
	entry.Body = form.Body
	entry.Status = form.Status
	if entry.Status == "" {
		entry.Status = models.EntryStatusPublic
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		derived, err := UniqueEntrySlug(tx, entry)
		if err != nil {
			return err
		}
		entry.Slug = derived

		if entry.ID == uuid.Nil {
			if err := tx.Omit(clause.Associations).Create(entry).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Omit(clause.Associations).Save(entry).Error; err != nil {
				return err
			}
		}

		assoc := tx.Model(entry).Association("Tags")
		if len(tags) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(tags)
	})
	if err != nil {
		return nil, err
	}

	entry.Tags = tags
	return entry, nil
}

// DeleteEntry marks entry DELETED. Rows are never physically removed.
func (s *Service) DeleteEntry(ctx context.Context, entry *models.Entry) error {
	return s.db.WithContext(ctx).Model(entry).
		Update("status", models.EntryStatusDeleted).Error
}

// ListEntries returns one page of entries visible to viewer, newest first,
// optionally filtered by the search term q, plus the total row count.
func (s *Service) ListEntries(ctx context.Context, viewer *models.User, q string, page int) ([]*models.Entry, int64, error) {
	scoped := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&models.Entry{}).
			Scopes(VisibleTo(viewer), Listed(), Search(q))
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []*models.Entry
	err := scoped().
		Preload("Author").
		Preload("Tags").
		Order("entries.created_at DESC").
		Offset(s.offset(page)).
		Limit(s.pageSize).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// GetEntry looks up a single entry by slug under viewer scoping. Unlike
// listings this reaches the author's own DRAFT entries, but never DELETED
// ones.
func (s *Service) GetEntry(ctx context.Context, slugStr string, viewer *models.User) (*models.Entry, error) {
	var entry models.Entry
	err := s.db.WithContext(ctx).
		Scopes(VisibleTo(viewer)).
		Preload("Author").
		Preload("Tags").
		Where("entries.slug = ?", slugStr).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetEntryForAuthor looks up an entry by slug and owning author, ignoring
// status. Used by the edit and delete flows, which must reach DELETED rows.
func (s *Service) GetEntryForAuthor(ctx context.Context, slugStr string, author *models.User) (*models.Entry, error) {
	var entry models.Entry
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Where("entries.slug = ? AND entries.author_id = ?", slugStr, author.ID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// UniqueEntrySlug derives the slug from the title, appending the smallest
// numeric suffix that avoids a collision with any other entry. Every entry
// write path runs through it, including the admin console.
func UniqueEntrySlug(tx *gorm.DB, entry *models.Entry) (string, error) {
	base := slug.Make(entry.Title)
	if base == "" {
		ve := NewValidationError()
		ve.Add("title", "must contain at least one letter or digit")
		return "", ve
	}

	candidate := base
	for n := 2; ; n++ {
		var count int64
		q := tx.Model(&models.Entry{}).Where("slug = ?", candidate)
		if entry.ID != uuid.Nil {
			q = q.Where("id <> ?", entry.ID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = slug.WithSuffix(base, n)
	}
}

func (s *Service) offset(page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * s.pageSize
}
