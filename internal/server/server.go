// Package server assembles the gin engine: middleware, public API routes
// and the admin console.
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/quillworks/quill/internal/admin"
	"github.com/quillworks/quill/internal/auth"
	"github.com/quillworks/quill/internal/blog"
	"github.com/quillworks/quill/internal/config"
	"github.com/quillworks/quill/internal/handlers"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New builds the HTTP engine with all routes registered.
func New(cfg *config.Config, log *zap.Logger, db *gorm.DB) *gin.Engine {
	blogSvc := blog.NewService(db, cfg.Blog.PageSize)
	authSvc := auth.NewService(db, cfg)
	h := handlers.New(blogSvc, authSvc, cfg)

	r := gin.New()
	r.Use(RequestLogger(log))
	r.Use(gin.Recovery())
	r.Use(authSvc.Middleware())

	// Ping endpoint for health check
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		v1.POST("/login", h.Login)
		v1.POST("/logout", h.Logout)

		v1.GET("/entries", h.ListEntries)
		v1.GET("/entries/:slug", h.GetEntry)
		v1.GET("/entries/:slug/comments", h.ListComments)
		v1.POST("/entries/:slug/comments", h.CreateComment)

		v1.GET("/tags", h.ListTags)
		v1.GET("/tags/:slug", h.GetTag)

		// Authoring routes
		authed := v1.Group("", auth.RequireUser())
		{
			authed.POST("/entries", h.CreateEntry)
			authed.PUT("/entries/:slug", h.UpdateEntry)
			authed.DELETE("/entries/:slug", h.DeleteEntry)
			authed.POST("/images", h.UploadImage)
		}
	}

	// Admin console
	adm := r.Group("/admin", auth.RequireAdmin())
	{
		engine := admin.NewEngine(db, cfg.Blog.PageSize, admin.Resources()...)
		admin.NewFileAdmin(cfg.Files.StaticDir).Mount(adm)
		engine.Mount(adm)
	}

	// Uploaded images are served as plain static files.
	r.Static("/static", cfg.Files.StaticDir)

	return r
}
