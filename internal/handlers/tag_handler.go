package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quillworks/quill/internal/auth"
)

// ListTags lists all tags ordered by name.
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.blog.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// GetTag retrieves a tag and one page of its entries visible to the
// current viewer.
func (h *Handler) GetTag(c *gin.Context) {
	tag, err := h.blog.GetTag(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	viewer := auth.CurrentUser(c)
	page := pageParam(c)

	entries, total, err := h.blog.ListEntriesForTag(c.Request.Context(), tag, viewer, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tag":     tag,
		"entries": entries,
		"total":   total,
		"page":    page,
	})
}
