// Package admin implements the generic CRUD console: one engine mounting
// list/get/create/update/delete routes for a set of resource descriptors.
// Customization happens through composition (hooks on the descriptor), not
// through view subclassing.
package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quillworks/quill/internal/blog"
	"github.com/quillworks/quill/internal/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Resource describes one admin-managed entity: factories for records and
// record slices, the selectable choices surfaced to the UI, and the write
// and delete hooks.
type Resource struct {
	Name      string
	NewRecord func() any
	NewSlice  func() any
	Choices   map[string][]string

	// BeforeSave runs inside the write transaction on every create and
	// update. Slug regeneration and password hashing live here.
	BeforeSave func(tx *gorm.DB, record any, created bool) error

	// Delete overrides row removal. Entries use it to soft-delete.
	Delete func(tx *gorm.DB, record any) error
}

// Engine serves CRUD routes for its resources.
type Engine struct {
	db        *gorm.DB
	pageSize  int
	resources []*Resource
}

// NewEngine creates an admin engine over the given resources.
func NewEngine(db *gorm.DB, pageSize int, resources ...*Resource) *Engine {
	if pageSize <= 0 {
		pageSize = blog.DefaultPageSize
	}
	return &Engine{db: db, pageSize: pageSize, resources: resources}
}

// Mount registers the CRUD routes for every resource on rg. Access control
// (admin users only) is the caller's middleware concern.
func (e *Engine) Mount(rg *gin.RouterGroup) {
	for _, res := range e.resources {
		grp := rg.Group("/" + res.Name)
		grp.GET("", e.list(res))
		grp.POST("", e.create(res))
		grp.GET("/:id", e.get(res))
		grp.PUT("/:id", e.update(res))
		grp.DELETE("/:id", e.delete(res))
	}
}

func (e *Engine) list(res *Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}

		var total int64
		if err := e.db.Model(res.NewRecord()).Count(&total).Error; err != nil {
			respondError(c, err)
			return
		}

		records := res.NewSlice()
		err = e.db.Model(res.NewRecord()).
			Offset((page - 1) * e.pageSize).
			Limit(e.pageSize).
			Find(records).Error
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items":   records,
			"total":   total,
			"page":    page,
			"choices": res.Choices,
		})
	}
}

func (e *Engine) get(res *Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		record, ok := e.load(c, res)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, record)
	}
}

func (e *Engine) create(res *Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		record := res.NewRecord()
		if err := c.ShouldBindJSON(record); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		err := e.db.Transaction(func(tx *gorm.DB) error {
			if res.BeforeSave != nil {
				if err := res.BeforeSave(tx, record, true); err != nil {
					return err
				}
			}
			return tx.Omit(clause.Associations).Create(record).Error
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, record)
	}
}

func (e *Engine) update(res *Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		record, ok := e.load(c, res)
		if !ok {
			return
		}

		// Binding over the loaded record keeps fields the payload omits.
		if err := c.ShouldBindJSON(record); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		err := e.db.Transaction(func(tx *gorm.DB) error {
			if res.BeforeSave != nil {
				if err := res.BeforeSave(tx, record, false); err != nil {
					return err
				}
			}
			return tx.Omit(clause.Associations).Save(record).Error
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, record)
	}
}

func (e *Engine) delete(res *Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		record, ok := e.load(c, res)
		if !ok {
			return
		}

		err := e.db.Transaction(func(tx *gorm.DB) error {
			if res.Delete != nil {
				return res.Delete(tx, record)
			}
			return tx.Delete(record).Error
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
	}
}

func (e *Engine) load(c *gin.Context, res *Resource) (any, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return nil, false
	}

	record := res.NewRecord()
	err = e.db.First(record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return nil, false
	}
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return record, true
}

func respondError(c *gin.Context, err error) {
	var ve *blog.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form submission", "fields": ve.Fields})
	case repository.IsUniqueViolation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Value already in use"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
