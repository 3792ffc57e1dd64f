package blog

import (
	"context"
	"strings"

	"github.com/quillworks/quill/internal/models"
)

// CommentForm carries a reader-submitted comment. Everything but the body
// is optional.
type CommentForm struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	URL   string `json:"url"`
	Body  string `json:"body"`
}

// SubmitComment validates and stores a comment against entry. On validation
// failure nothing is persisted. Comments have no edit or delete path.
func (s *Service) SubmitComment(ctx context.Context, entry *models.Entry, form *CommentForm, ipAddress string) (*models.Comment, error) {
	ve := NewValidationError()
	if strings.TrimSpace(form.Body) == "" {
		ve.Add("body", "required")
	}
	if !ve.Empty() {
		return nil, ve
	}

	comment := &models.Comment{
		EntryID:   entry.ID,
		Name:      strings.TrimSpace(form.Name),
		Email:     strings.TrimSpace(form.Email),
		URL:       strings.TrimSpace(form.URL),
		IPAddress: ipAddress,
		Body:      form.Body,
		Status:    models.CommentStatusPublic,
	}
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns the entry's public comments, oldest first.
func (s *Service) ListComments(ctx context.Context, entry *models.Entry) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := s.db.WithContext(ctx).
		Where("entry_id = ? AND status = ?", entry.ID, models.CommentStatusPublic).
		Order("created_at").
		Find(&comments).Error
	return comments, err
}
