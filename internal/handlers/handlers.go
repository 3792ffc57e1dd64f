// Package handlers contains the gin handlers for the public blog API:
// entries, tags, comments, login and image upload.
package handlers

import (
	"github.com/quillworks/quill/internal/auth"
	"github.com/quillworks/quill/internal/blog"
	"github.com/quillworks/quill/internal/config"
)

// Handler bundles the services the HTTP layer drives.
type Handler struct {
	blog *blog.Service
	auth *auth.Service
	cfg  *config.Config
}

// New creates a new Handler.
func New(blogSvc *blog.Service, authSvc *auth.Service, cfg *config.Config) *Handler {
	return &Handler{blog: blogSvc, auth: authSvc, cfg: cfg}
}
