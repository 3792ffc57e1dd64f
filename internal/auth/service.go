// Package auth implements credential verification and session identity:
// bcrypt password hashing, email+password authentication, and JWT session
// cookies resolved into an explicit per-request viewer.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quillworks/quill/internal/blog"
	"github.com/quillworks/quill/internal/config"
	"github.com/quillworks/quill/internal/models"
	"github.com/quillworks/quill/internal/slug"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is the single failure for every authentication
// mismatch. Unknown email and wrong password are indistinguishable to avoid
// account enumeration.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service verifies credentials and issues/resolves session tokens.
type Service struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
}

// NewService creates a new auth service from the session configuration.
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		secret: []byte(cfg.Session.Secret),
		ttl:    cfg.Session.TTL,
	}
}

// SessionTTL returns the configured session lifetime.
func (s *Service) SessionTTL() time.Duration {
	return s.ttl
}

// Authenticate looks up the user by exact email match and verifies the
// password hash. Inactive accounts fail the same way as bad credentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.Active || !CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// IssueSession issues a session token for user.
func (s *Service) IssueSession(user *models.User) (string, error) {
	return GenerateToken(user.ID, s.secret, s.ttl)
}

// ResolveSession maps a session token back to its user. Invalid tokens,
// unknown ids and inactive accounts all resolve to nil: the caller treats
// the request as anonymous.
func (s *Service) ResolveSession(ctx context.Context, token string) (*models.User, error) {
	id, err := ParseToken(token, s.secret)
	if err != nil {
		return nil, nil
	}

	var user models.User
	err = s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, nil
	}
	return &user, nil
}

// CreateUser creates an author account with a hashed password and a slug
// derived from the name.
func (s *Service) CreateUser(ctx context.Context, email, name, password string, admin bool) (*models.User, error) {
	ve := blog.NewValidationError()
	if !strings.Contains(email, "@") {
		ve.Add("email", "must be a valid address")
	}
	if strings.TrimSpace(name) == "" {
		ve.Add("name", "required")
	}
	if password == "" {
		ve.Add("password", "required")
	}
	if !ve.Empty() {
		return nil, ve
	}

	user := &models.User{
		Email:    strings.TrimSpace(email),
		Name:     strings.TrimSpace(name),
		Password: password,
		Active:   true,
		Admin:    admin,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := PrepareUser(tx, user); err != nil {
			return err
		}
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// PrepareUser readies a user for persistence: hashes a newly supplied
// plaintext password, and re-derives the slug from the name with numeric
// suffix disambiguation. Runs before every user write, including admin
// console writes.
func PrepareUser(tx *gorm.DB, user *models.User) error {
	if user.Password != "" {
		hash, err := MakePassword(user.Password)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
		user.Password = ""
	}

	base := slug.Make(user.Name)
	if base == "" {
		ve := blog.NewValidationError()
		ve.Add("name", "must contain at least one letter or digit")
		return ve
	}

	candidate := base
	for n := 2; ; n++ {
		var count int64
		q := tx.Model(&models.User{}).Where("slug = ?", candidate)
		if user.ID != uuid.Nil {
			q = q.Where("id <> ?", user.ID)
		}
		if err := q.Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			user.Slug = candidate
			return nil
		}
		candidate = slug.WithSuffix(base, n)
	}
}
