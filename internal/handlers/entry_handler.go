package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quillworks/quill/internal/auth"
	"github.com/quillworks/quill/internal/blog"
	"github.com/quillworks/quill/internal/models"
)

// ListEntries lists entries visible to the current viewer, newest first,
// with optional free-text search via the q parameter.
func (h *Handler) ListEntries(c *gin.Context) {
	viewer := auth.CurrentUser(c)
	page := pageParam(c)

	entries, total, err := h.blog.ListEntries(c.Request.Context(), viewer, c.Query("q"), page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"total":   total,
		"page":    page,
	})
}

// GetEntry retrieves a single entry by slug under viewer scoping.
func (h *Handler) GetEntry(c *gin.Context) {
	viewer := auth.CurrentUser(c)

	entry, err := h.blog.GetEntry(c.Request.Context(), c.Param("slug"), viewer)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// CreateEntry creates a new entry owned by the current viewer.
func (h *Handler) CreateEntry(c *gin.Context) {
	var form blog.EntryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	viewer := auth.CurrentUser(c)
	entry := &models.Entry{AuthorID: viewer.ID, Author: viewer}

	entry, err := h.blog.SaveEntry(c.Request.Context(), &form, entry)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// UpdateEntry updates an entry the current viewer owns. The slug is
// re-derived from the title, so the entry's URL may change.
func (h *Handler) UpdateEntry(c *gin.Context) {
	viewer := auth.CurrentUser(c)

	entry, err := h.blog.GetEntryForAuthor(c.Request.Context(), c.Param("slug"), viewer)
	if err != nil {
		respondError(c, err)
		return
	}

	var form blog.EntryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err = h.blog.SaveEntry(c.Request.Context(), &form, entry)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteEntry marks an entry the current viewer owns as deleted. The row
// stays; it just stops being visible anywhere.
func (h *Handler) DeleteEntry(c *gin.Context) {
	viewer := auth.CurrentUser(c)

	entry, err := h.blog.GetEntryForAuthor(c.Request.Context(), c.Param("slug"), viewer)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.blog.DeleteEntry(c.Request.Context(), entry); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted successfully"})
}
