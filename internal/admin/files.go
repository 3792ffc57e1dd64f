package admin

import (
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// FileAdmin manages the static files directory: listing and deletion.
// Paths are resolved strictly inside the root.
type FileAdmin struct {
	root string
}

// NewFileAdmin creates a file admin rooted at dir.
func NewFileAdmin(dir string) *FileAdmin {
	return &FileAdmin{root: dir}
}

// Mount registers the file routes on rg.
func (f *FileAdmin) Mount(rg *gin.RouterGroup) {
	rg.GET("/files", f.list)
	rg.DELETE("/files/*path", f.delete)
}

func (f *FileAdmin) list(c *gin.Context) {
	var files []gin.H
	err := filepath.WalkDir(f.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(f.root, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, gin.H{"path": rel, "size": info.Size()})
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list files"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"files": files})
}

func (f *FileAdmin) delete(c *gin.Context) {
	rel := strings.TrimPrefix(c.Param("path"), "/")

	target := filepath.Join(f.root, filepath.Clean(rel))
	if !strings.HasPrefix(target, filepath.Clean(f.root)+string(filepath.Separator)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid path"})
		return
	}

	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
}
