package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quillworks/quill/internal/auth"
	"github.com/quillworks/quill/internal/blog"
	"github.com/quillworks/quill/internal/repository"
)

// respondError maps business failures to their HTTP shape. Validation
// failures carry the per-field messages; everything unexpected is a 500.
func respondError(c *gin.Context, err error) {
	var ve *blog.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form submission", "fields": ve.Fields})
	case errors.Is(err, blog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case repository.IsUniqueViolation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Value already in use"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// pageParam extracts the 1-based page number from the query string.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
