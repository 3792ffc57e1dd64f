package admin

import (
	"strings"

	"github.com/quillworks/quill/internal/auth"
	"github.com/quillworks/quill/internal/blog"
	"github.com/quillworks/quill/internal/models"
	"github.com/quillworks/quill/internal/slug"
	"gorm.io/gorm"
)

// Resources returns the descriptors for the admin-managed entities. Every
// write hook regenerates slugs the same way the primary flows do.
func Resources() []*Resource {
	return []*Resource{
		{
			Name:      "entries",
			NewRecord: func() any { return &models.Entry{} },
			NewSlice:  func() any { return &[]*models.Entry{} },
			Choices: map[string][]string{
				"status": {
					string(models.EntryStatusPublic),
					string(models.EntryStatusDraft),
					string(models.EntryStatusDeleted),
				},
			},
			BeforeSave: entryBeforeSave,
			Delete:     entryDelete,
		},
		{
			Name:       "tags",
			NewRecord:  func() any { return &models.Tag{} },
			NewSlice:   func() any { return &[]*models.Tag{} },
			BeforeSave: tagBeforeSave,
		},
		{
			Name:       "users",
			NewRecord:  func() any { return &models.User{} },
			NewSlice:   func() any { return &[]*models.User{} },
			BeforeSave: userBeforeSave,
		},
	}
}

func entryBeforeSave(tx *gorm.DB, record any, created bool) error {
	entry := record.(*models.Entry)

	ve := blog.NewValidationError()
	if strings.TrimSpace(entry.Title) == "" {
		ve.Add("title", "required")
	}
	if entry.Status == "" {
		entry.Status = models.EntryStatusPublic
	}
	if !entry.Status.Valid() {
		ve.Add("status", "must be PUBLIC, DRAFT or DELETED")
	}
	if !ve.Empty() {
		return ve
	}

	derived, err := blog.UniqueEntrySlug(tx, entry)
	if err != nil {
		return err
	}
	entry.Slug = derived
	return nil
}

// entryDelete soft-deletes: entries leave visibility, never the table.
func entryDelete(tx *gorm.DB, record any) error {
	entry := record.(*models.Entry)
	return tx.Model(entry).Update("status", models.EntryStatusDeleted).Error
}

func tagBeforeSave(tx *gorm.DB, record any, created bool) error {
	tag := record.(*models.Tag)

	if strings.TrimSpace(tag.Name) == "" {
		ve := blog.NewValidationError()
		ve.Add("name", "required")
		return ve
	}
	tag.Slug = slug.Make(tag.Name)
	return nil
}

func userBeforeSave(tx *gorm.DB, record any, created bool) error {
	user := record.(*models.User)

	ve := blog.NewValidationError()
	if !strings.Contains(user.Email, "@") {
		ve.Add("email", "must be a valid address")
	}
	if created && user.Password == "" {
		ve.Add("password", "required")
	}
	if !ve.Empty() {
		return ve
	}

	return auth.PrepareUser(tx, user)
}
