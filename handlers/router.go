// router.go - Route table

package handlers

import (
	"log/slog"

	"go-tree-catalog/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the gin engine with the full API surface. Used by main
// and by the handler tests.
func SetupRouter(h *Handler, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Session(h.sessions))

	// Uploaded avatars are served statically so stored paths resolve.
	r.Static("/uploads", h.cfg.UploadDir)

	api := r.Group("/api")
	{
		api.GET("/auth/check", h.Check)
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)
		api.POST("/auth/logout", h.Logout)

		api.GET("/trees", h.ListTrees)
		api.GET("/trees/:id", h.GetTree)

		authed := api.Group("", middleware.RequireAuth())
		{
			authed.GET("/user/profile", h.Profile)
			authed.POST("/user/avatar", h.UploadAvatar)
			authed.POST("/trees", h.CreateTree)
			authed.PUT("/trees/:id", h.UpdateTree)
			authed.DELETE("/trees/:id", h.DeleteTree)
		}

		admin := api.Group("/admin", middleware.RequireAdmin())
		{
			admin.GET("/users", h.ListUsers)
			admin.DELETE("/users/:id", h.DeleteUser)
		}
	}

	return r
}
