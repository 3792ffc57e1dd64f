package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quillworks/quill/internal/auth"
	"github.com/quillworks/quill/internal/blog"
)

// ListComments lists the public comments on an entry the current viewer
// may see.
func (h *Handler) ListComments(c *gin.Context) {
	viewer := auth.CurrentUser(c)

	entry, err := h.blog.GetEntry(c.Request.Context(), c.Param("slug"), viewer)
	if err != nil {
		respondError(c, err)
		return
	}

	comments, err := h.blog.ListComments(c.Request.Context(), entry)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// CreateComment submits a comment on an entry the current viewer may see.
// Validation failures come back as a structured 400 and persist nothing.
func (h *Handler) CreateComment(c *gin.Context) {
	viewer := auth.CurrentUser(c)

	entry, err := h.blog.GetEntry(c.Request.Context(), c.Param("slug"), viewer)
	if err != nil {
		respondError(c, err)
		return
	}

	var form blog.CommentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.blog.SubmitComment(c.Request.Context(), entry, &form, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}
