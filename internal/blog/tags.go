package blog

import (
	"context"
	"errors"
	"strings"

	"github.com/quillworks/quill/internal/models"
	"github.com/quillworks/quill/internal/slug"
	"gorm.io/gorm"
)

// ResolveTags parses a comma-separated tag string into a deduplicated tag
// set: existing tags (matched by exact name) first, then fresh unpersisted
// tags for the remaining names. Existing tags are reused, never mutated.
// Empty input yields an empty set, which detaches all tags on save.
func (s *Service) ResolveTags(ctx context.Context, raw string) ([]*models.Tag, error) {
	names := splitTagNames(raw)
	if len(names) == 0 {
		return []*models.Tag{}, nil
	}

	var existing []*models.Tag
	err := s.db.WithContext(ctx).
		Where("name IN ?", names).
		Order("name").
		Find(&existing).Error
	if err != nil {
		return nil, err
	}

	have := make(map[string]bool, len(existing))
	for _, t := range existing {
		have[t.Name] = true
	}

	resolved := existing
	for _, name := range names {
		if !have[name] {
			resolved = append(resolved, &models.Tag{Name: name, Slug: slug.Make(name)})
		}
	}
	return resolved, nil
}

// splitTagNames splits on commas, trims whitespace, and drops empties and
// duplicates (case-sensitive), preserving first-seen order.
func splitTagNames(raw string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// TagNames renders a tag set back to the comma-separated form field value.
func TagNames(tags []*models.Tag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}

// ListTags returns all tags ordered by name.
func (s *Service) ListTags(ctx context.Context) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := s.db.WithContext(ctx).Order("name").Find(&tags).Error
	return tags, err
}

// GetTag looks up a tag by slug.
func (s *Service) GetTag(ctx context.Context, slugStr string) (*models.Tag, error) {
	var tag models.Tag
	err := s.db.WithContext(ctx).Where("slug = ?", slugStr).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// ListEntriesForTag returns one page of the tag's entries under the same
// visibility rules as the main listing.
func (s *Service) ListEntriesForTag(ctx context.Context, tag *models.Tag, viewer *models.User, page int) ([]*models.Entry, int64, error) {
	scoped := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&models.Entry{}).
			Joins("JOIN entry_tags ON entry_tags.entry_id = entries.id").
			Where("entry_tags.tag_id = ?", tag.ID).
			Scopes(VisibleTo(viewer), Listed())
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
