package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// UploadImage stores an uploaded image under the configured images
// directory. The filename is reduced to its base name so a crafted name
// cannot escape the directory.
func (h *Handler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	name := sanitizeFilename(file.Filename)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filename"})
		return
	}

	if err := os.MkdirAll(h.cfg.Files.ImagesDir, 0o755); err != nil {
		respondError(c, err)
		return
	}

	dst := filepath.Join(h.cfg.Files.ImagesDir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"filename": name})
}

func sanitizeFilename(name string) string {
	name = filepath.Base(filepath.Clean(name))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return ""
	}
	// Hidden files stay out of the images directory.
	if strings.HasPrefix(name, ".") {
		return ""
	}
	return name
}
